package filter

import (
	"net/url"
	"strings"
)

// HostValidator accepts a URL iff it parses and its lowercased hostname
// exactly matches one of the configured domains.
type HostValidator struct {
	domains map[string]struct{}
}

// NewHostValidator normalises each domain (trim, lowercase) before indexing
// it for exact-match lookups.
func NewHostValidator(domains []string) *HostValidator {
	set := make(map[string]struct{}, len(domains))
	for _, d := range domains {
		set[strings.ToLower(strings.TrimSpace(d))] = struct{}{}
	}
	return &HostValidator{domains: set}
}

// IsValidHost reports whether rawURL parses and its host exactly matches a
// configured domain. Malformed URLs and URLs with no host are rejected.
func (h *HostValidator) IsValidHost(rawURL string) bool {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" {
		return false
	}
	_, ok := h.domains[strings.ToLower(parsed.Hostname())]
	return ok
}

// FilterValidHosts returns the subset of urls whose host matches a
// configured domain, in input order.
func (h *HostValidator) FilterValidHosts(urls []string) []string {
	out := make([]string, 0, len(urls))
	for _, u := range urls {
		if h.IsValidHost(u) {
			out = append(out, u)
		}
	}
	return out
}
