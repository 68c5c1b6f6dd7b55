package filter

import (
	"net/url"
	"path"
	"sort"
	"strings"
)

// Filter applies extension, pattern, and length constraints to a set of
// URLs. The canonical extraction strategy parses the URL and reads the
// extension of the last path segment, falling back to naive string slicing
// for URLs that fail to parse.
type Filter struct {
	extensions        []string
	excludeExtensions []string
	patterns          []string
	excludePatterns   []string
	minLength         *int
	maxLength         *int
}

// NewFilter creates an empty URL filter — no constraints configured.
func NewFilter() *Filter {
	return &Filter{}
}

// ApplyPresets merges each named preset's extensions into the existing
// include/exclude extension lists. Unknown preset names are ignored.
func (f *Filter) ApplyPresets(presets []string) *Filter {
	for _, name := range presets {
		p, ok := ParsePreset(name)
		if !ok {
			continue
		}
		f.extensions = append(f.extensions, p.IncludeExtensions()...)
		f.excludeExtensions = append(f.excludeExtensions, p.ExcludeExtensions()...)
	}
	return f
}

// WithExtensions merges extensions into the include list.
func (f *Filter) WithExtensions(extensions []string) *Filter {
	f.extensions = append(f.extensions, extensions...)
	return f
}

// WithExcludeExtensions merges extensions into the exclude list.
func (f *Filter) WithExcludeExtensions(extensions []string) *Filter {
	f.excludeExtensions = append(f.excludeExtensions, extensions...)
	return f
}

// WithPatterns merges patterns into the include list.
func (f *Filter) WithPatterns(patterns []string) *Filter {
	f.patterns = append(f.patterns, patterns...)
	return f
}

// WithExcludePatterns merges patterns into the exclude list.
func (f *Filter) WithExcludePatterns(patterns []string) *Filter {
	f.excludePatterns = append(f.excludePatterns, patterns...)
	return f
}

// WithMinLength sets the minimum URL length, or clears it if nil.
func (f *Filter) WithMinLength(min *int) *Filter {
	f.minLength = min
	return f
}

// WithMaxLength sets the maximum URL length, or clears it if nil.
func (f *Filter) WithMaxLength(max *int) *Filter {
	f.maxLength = max
	return f
}

// extractExtension extracts the lowercase terminal-segment extension of a
// URL, parsing it first and falling back to slash/dot slicing for URLs
// that fail to parse.
func extractExtension(rawURL string) (string, bool) {
	if parsed, err := url.Parse(rawURL); err == nil {
		if parsed.Path == "" {
			return "", false
		}
		segments := strings.Split(strings.Trim(parsed.Path, "/"), "/")
		last := segments[len(segments)-1]
		ext := path.Ext(last)
		if ext == "" {
			return "", false
		}
		return strings.ToLower(strings.TrimPrefix(ext, ".")), true
	}

	parts := strings.Split(rawURL, "/")
	last := parts[len(parts)-1]
	dotParts := strings.Split(last, ".")
	if len(dotParts) <= 1 {
		return "", false
	}
	tail := dotParts[len(dotParts)-1]
	tail, _, _ = strings.Cut(tail, "?")
	return strings.ToLower(tail), tail != ""
}

func containsFold(list []string, val string) bool {
	for _, item := range list {
		if strings.EqualFold(item, val) {
			return true
		}
	}
	return false
}

// Apply runs the filter stage (§4.9) over the given URL set and returns the
// sorted list of survivors.
func (f *Filter) Apply(urls map[string]struct{}) []string {
	result := make([]string, 0, len(urls))

	for u := range urls {
		if f.minLength != nil && len(u) < *f.minLength {
			continue
		}
		if f.maxLength != nil && len(u) > *f.maxLength {
			continue
		}

		ext, hasExt := extractExtension(u)

		if len(f.excludeExtensions) > 0 && hasExt && containsFold(f.excludeExtensions, ext) {
			continue
		}

		if len(f.excludePatterns) > 0 {
			lower := strings.ToLower(u)
			excluded := false
			for _, p := range f.excludePatterns {
				if strings.Contains(lower, strings.ToLower(p)) {
					excluded = true
					break
				}
			}
			if excluded {
				continue
			}
		}

		include := true
		if len(f.extensions) > 0 {
			include = hasExt && containsFold(f.extensions, ext)
		}

		if include && len(f.patterns) > 0 {
			lower := strings.ToLower(u)
			include = false
			for _, p := range f.patterns {
				if strings.Contains(lower, strings.ToLower(p)) {
					include = true
					break
				}
			}
		}

		if include {
			result = append(result, u)
		}
	}

	sort.Strings(result)
	return result
}

// ApplySlice is a convenience wrapper over Apply for callers holding a
// slice rather than a set; duplicate URLs collapse to one entry.
func (f *Filter) ApplySlice(urls []string) []string {
	set := make(map[string]struct{}, len(urls))
	for _, u := range urls {
		set[u] = struct{}{}
	}
	return f.Apply(set)
}
