//go:build windows

package device

import "path/filepath"

// IdentifyFile returns the drive-letter prefix of path (e.g. "C:"),
// which is the closest cheap proxy for a physical volume on Windows.
func IdentifyFile(path string) (string, error) {
	vol := filepath.VolumeName(path)
	if vol == "" {
		return UnknownDevice, nil
	}
	return vol, nil
}
