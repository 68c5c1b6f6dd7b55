// Package output renders a collection of discovered URLs (optionally
// annotated with tester status strings) in plain, JSON, or CSV form.
package output

import "strings"

// UrlData pairs a URL with an optional status string produced by a tester
// (e.g. "200 OK").
type UrlData struct {
	URL    string
	Status *string
}

// New wraps a bare URL with no status.
func New(url string) UrlData {
	return UrlData{URL: url}
}

// WithStatus wraps a URL alongside a tester-reported status.
func WithStatus(url, status string) UrlData {
	return UrlData{URL: url, Status: &status}
}

// FromString parses a tester result line of the form "{url} - {status}"
// into a UrlData, falling back to a bare UrlData if the separator is
// absent.
func FromString(line string) UrlData {
	if url, status, ok := strings.Cut(line, " - "); ok {
		return WithStatus(url, status)
	}
	return New(line)
}
