package probe

import (
	"strconv"
	"strings"
)

// Tag alias tables, one ordered list per canonical field, covering
// ID3v2, Vorbis, MP4 atoms, RIFF INFO, and iTunes spellings. Keys are
// matched against a lowercased tag map.
var (
	KeysTitle       = []string{"title", "tit2", "inam", "©nam", "name"}
	KeysAlbum       = []string{"album", "talb", "iprd", "©alb"}
	KeysArtistTrack = []string{"artist", "tpe1", "iart", "©art", "auth"}
	// FFmpeg sometimes normalizes album-artist to "album_artist".
	KeysArtistAlbum = []string{"album_artist", "album artist", "albumartist", "tpe2", "aart"}
	KeysDate        = []string{"date", "year", "original_year", "originalyear", "releasedate", "tdrc", "tyer", "tdor", "©day", "icrd"}
	KeysGenre       = []string{"genre", "tcon", "ignr", "©gen"}
	KeysTrackNumber = []string{"track", "trck", "iprt", "itrk", "trkn"}
	KeysDiscNumber  = []string{"disc", "tpos", "disk"}
)

// FindTagValue returns the first non-empty value among keys, assuming
// tags is already lowercased.
func FindTagValue(tags map[string]string, keys []string) (string, bool) {
	for _, key := range keys {
		if v, ok := tags[key]; ok {
			trimmed := strings.TrimSpace(v)
			if trimmed != "" {
				return trimmed, true
			}
		}
	}
	return "", false
}

// FindTagNumber parses an integer tag that may arrive as "N" or
// "N/M" (track/disc numbers commonly do); returns (0, false) when
// absent or unparseable.
func FindTagNumber(tags map[string]string, keys []string) (uint32, bool) {
	raw, ok := FindTagValue(tags, keys)
	if !ok {
		return 0, false
	}
	token := strings.SplitN(raw, "/", 2)[0]
	token = strings.TrimSpace(token)

	n, err := strconv.ParseUint(token, 10, 32)
	if err != nil {
		return 0, false
	}
	return uint32(n), true
}
