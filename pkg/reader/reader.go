// Package reader loads URL lists from local files in the formats the
// provider layer also speaks on the wire: plain text, URLTeam-style gzip
// dumps, and WARC archives.
package reader

import (
	"path/filepath"
	"strings"
)

// FileReader extracts URLs out of a single file.
type FileReader interface {
	ReadURLs(path string) ([]string, error)
}

// Format identifies one of the supported on-disk URL formats.
type Format int

const (
	FormatText Format = iota
	FormatURLTeam
	FormatWarc
)

// DetectFormat guesses a file's format from its extension first, then from
// substrings in its filename, defaulting to plain text.
func DetectFormat(path string) Format {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	name := strings.ToLower(filepath.Base(path))

	switch ext {
	case "warc":
		return FormatWarc
	case "gz", "bz2":
		return FormatURLTeam
	case "txt", "list":
		return FormatText
	}

	switch {
	case strings.Contains(name, "warc"):
		return FormatWarc
	case strings.Contains(name, "urlteam"), strings.Contains(name, "url_team"):
		return FormatURLTeam
	default:
		return FormatText
	}
}

// ReadURLsFromFile auto-detects path's format and reads its URLs with the
// matching reader.
func ReadURLsFromFile(path string) ([]string, error) {
	var r FileReader
	switch DetectFormat(path) {
	case FormatWarc:
		r = NewWarcFileReader()
	case FormatURLTeam:
		r = NewURLTeamFileReader()
	default:
		r = NewTextFileReader()
	}
	return r.ReadURLs(path)
}

func looksLikeURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}
