package reader

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// WarcFileReader extracts URLs from WARC archives: WARC-Target-URI header
// values, plus any bare http(s) URLs appearing in the record bodies.
type WarcFileReader struct{}

func NewWarcFileReader() *WarcFileReader {
	return &WarcFileReader{}
}

func (r *WarcFileReader) ReadURLs(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening WARC file %s: %w", path, err)
	}
	defer f.Close()

	var urls []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()

		if rest, ok := strings.CutPrefix(line, "WARC-Target-URI:"); ok {
			u := strings.TrimSpace(rest)
			if looksLikeURL(u) {
				urls = append(urls, u)
			}
			continue
		}

		trimmed := strings.TrimSpace(line)
		if looksLikeURL(trimmed) && strings.Contains(trimmed, "://") && !strings.Contains(trimmed, " ") {
			urls = append(urls, trimmed)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading WARC file %s: %w", path, err)
	}

	return urls, nil
}
