package filter

// Config is the closed set of recognised filter options (§3 FilterConfig).
// It is created once per invocation and read thereafter; callers obtain a
// *Filter and *HostValidator from it rather than mutating it in place.
type Config struct {
	IncludeSubdomains bool
	Extensions        []string
	ExcludeExtensions []string
	Patterns          []string
	ExcludePatterns   []string
	Presets           []string
	MinLength         *int
	MaxLength         *int
	StrictHost        bool
	NormalizeURL      bool
	MergeEndpoint     bool
}

// NewFilter builds a *Filter from this configuration, expanding preset
// bundles additively into the explicit include/exclude extension lists.
func (c Config) NewFilter() *Filter {
	f := NewFilter()
	f.WithExtensions(c.Extensions)
	f.WithExcludeExtensions(c.ExcludeExtensions)
	f.WithPatterns(c.Patterns)
	f.WithExcludePatterns(c.ExcludePatterns)
	f.WithMinLength(c.MinLength)
	f.WithMaxLength(c.MaxLength)
	f.ApplyPresets(c.Presets)
	return f
}
