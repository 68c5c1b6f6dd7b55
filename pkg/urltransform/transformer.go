// Package urltransform reshapes collected URL sets for presentation:
// normalizing them for stable deduplication, merging endpoints that share a
// host and path, and projecting down to just the host, path, or query
// portion.
package urltransform

import (
	"net/url"
	"sort"
	"strings"
)

// Transformer applies a configurable pipeline of URL reshaping steps. The
// zero value performs no transformation.
type Transformer struct {
	mergeEndpoint bool
	onlyHost      bool
	onlyPath      bool
	onlyParam     bool
	normalize     bool
}

// New returns a Transformer with every stage disabled.
func New() *Transformer {
	return &Transformer{}
}

// WithMergeEndpoint toggles merging of same host+path URLs into one entry
// whose query string is the union of all their parameters.
func (t *Transformer) WithMergeEndpoint(v bool) *Transformer {
	t.mergeEndpoint = v
	return t
}

// WithShowOnlyHost toggles projecting each URL down to its hostname.
func (t *Transformer) WithShowOnlyHost(v bool) *Transformer {
	t.onlyHost = v
	return t
}

// WithShowOnlyPath toggles projecting each URL down to its path.
func (t *Transformer) WithShowOnlyPath(v bool) *Transformer {
	t.onlyPath = v
	return t
}

// WithShowOnlyParam toggles projecting each URL down to its raw query string.
func (t *Transformer) WithShowOnlyParam(v bool) *Transformer {
	t.onlyParam = v
	return t
}

// WithNormalizeURL toggles path/query normalization ahead of the other
// stages.
func (t *Transformer) WithNormalizeURL(v bool) *Transformer {
	t.normalize = v
	return t
}

// Transform runs the configured pipeline: normalize, then merge-endpoint,
// then at most one of the show-only-X projections, in that order.
func (t *Transformer) Transform(urls []string) []string {
	result := urls

	if t.normalize {
		result = t.normalizeURLs(result)
	}
	if t.mergeEndpoint {
		result = t.mergeEndpoints(result)
	}
	if t.onlyHost || t.onlyPath || t.onlyParam {
		result = t.extractParts(result)
	}

	return result
}

func (t *Transformer) normalizeURLs(urls []string) []string {
	out := make([]string, 0, len(urls))

	for _, raw := range urls {
		parsed, err := url.Parse(raw)
		if err != nil {
			out = append(out, raw)
			continue
		}

		path := parsed.Path
		if len(path) > 1 && strings.HasSuffix(path, "/") {
			parsed.Path = path[:len(path)-1]
		}

		if parsed.RawQuery != "" {
			values := parsed.Query()
			type kv struct{ k, v string }
			var pairs []kv
			for k, vs := range values {
				for _, v := range vs {
					pairs = append(pairs, kv{k, v})
				}
			}
			sort.Slice(pairs, func(i, j int) bool {
				if pairs[i].k != pairs[j].k {
					return pairs[i].k < pairs[j].k
				}
				return pairs[i].v < pairs[j].v
			})
			parts := make([]string, 0, len(pairs))
			for _, p := range pairs {
				parts = append(parts, p.k+"="+p.v)
			}
			parsed.RawQuery = strings.Join(parts, "&")
		}

		out = append(out, parsed.String())
	}

	sort.Strings(out)
	return dedupSorted(out)
}

func (t *Transformer) mergeEndpoints(urls []string) []string {
	type group struct {
		base   *url.URL
		rawURL string
		pairs  [][2]string
	}
	groups := make(map[string]*group)
	order := make([]string, 0, len(urls))

	for _, raw := range urls {
		parsed, err := url.Parse(raw)
		key := raw
		if err == nil {
			key = parsed.Host + parsed.Path
		}

		g, ok := groups[key]
		if !ok {
			g = &group{base: parsed, rawURL: raw}
			groups[key] = g
			order = append(order, key)
		}
		if err != nil {
			continue
		}
		for k, vs := range parsed.Query() {
			for _, v := range vs {
				found := false
				for _, existing := range g.pairs {
					if existing[0] == k && existing[1] == v {
						found = true
						break
					}
				}
				if !found {
					g.pairs = append(g.pairs, [2]string{k, v})
				}
			}
		}
	}

	merged := make([]string, 0, len(order))
	for _, key := range order {
		g := groups[key]
		if g.base == nil {
			merged = append(merged, g.rawURL)
			continue
		}
		result := *g.base
		if len(g.pairs) == 0 {
			result.RawQuery = ""
		} else {
			sort.Slice(g.pairs, func(i, j int) bool {
				if g.pairs[i][0] != g.pairs[j][0] {
					return g.pairs[i][0] < g.pairs[j][0]
				}
				return g.pairs[i][1] < g.pairs[j][1]
			})
			parts := make([]string, 0, len(g.pairs))
			for _, p := range g.pairs {
				parts = append(parts, p[0]+"="+p[1])
			}
			result.RawQuery = strings.Join(parts, "&")
		}
		merged = append(merged, result.String())
	}

	sort.Strings(merged)
	return merged
}

func (t *Transformer) extractParts(urls []string) []string {
	out := make([]string, 0, len(urls))

	for _, raw := range urls {
		parsed, err := url.Parse(raw)
		if err != nil {
			out = append(out, raw)
			continue
		}

		switch {
		case t.onlyHost:
			if parsed.Host != "" {
				out = append(out, parsed.Hostname())
			}
		case t.onlyPath:
			if parsed.Path != "" && parsed.Path != "/" {
				out = append(out, parsed.Path)
			}
		case t.onlyParam:
			if parsed.RawQuery != "" {
				out = append(out, parsed.RawQuery)
			}
		}
	}

	sort.Strings(out)
	return dedupSorted(out)
}

func dedupSorted(sorted []string) []string {
	if len(sorted) == 0 {
		return sorted
	}
	out := sorted[:1]
	for _, v := range sorted[1:] {
		if v != out[len(out)-1] {
			out = append(out, v)
		}
	}
	return out
}
