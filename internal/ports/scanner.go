// Package ports declares the seam interfaces between the Library
// Service orchestrator and its four collaborators: the file scanner,
// the metadata extractor, the library repository, and the progress
// reporter. The Rust source expresses this seam as four type
// parameters on the orchestrator; the idiomatic Go translation is
// small interfaces injected at construction.
package ports

// ScannedFile is the minimal information the domain needs about a
// file found during scanning, before it is mapped to a FileDetails.
type ScannedFile struct {
	Path         string
	SizeBytes    uint64
	ModifiedUnix uint64
}

// ScanDevice identifies a logical storage volume. The id format is an
// adapter decision: st_dev on Unix, a drive letter on Windows.
type ScanDevice struct {
	ID string

	// BandwidthMBs is the measured (or cached) read throughput of this
	// device, if the adapter measured it.
	BandwidthMBs *float64
}

// ScanGroup is the set of files co-located on one device, the unit of
// per-device concurrency budgeting.
type ScanGroup struct {
	Device ScanDevice
	Files  []ScannedFile
}

// FileScanner discovers library files and returns them already
// grouped by device. Implementations may be arbitrarily parallel
// internally; from the caller's perspective this is a single
// synchronous call.
type FileScanner interface {
	ScanLibraryFiles() ([]ScanGroup, error)
}
