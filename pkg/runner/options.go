package runner

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/projectdiscovery/goflags"
	"github.com/projectdiscovery/gologger"
	envutil "github.com/projectdiscovery/utils/env"
	folderutil "github.com/projectdiscovery/utils/folder"

	"github.com/hahwul/urx-sub000/pkg/config"
)

var (
	configDir            = folderutil.AppConfigDirOrDefault(".", "urx")
	defaultConfigAtPath  = filepath.Join(configDir, "config.toml")
	defaultProviders     = []string{"wayback", "cc", "otx"}
	defaultCCIndex       = "CC-MAIN-2025-13"
	defaultNetworkScope  = "all"
	defaultTimeoutSecs   = 120
	defaultRetries       = 2
	defaultParallel      = 5
	defaultCacheType     = "sqlite"
	defaultCacheTTLSecs  = 86400
	defaultOutputFormat  = "plain"
)

// Options is the fully resolved set of knobs driving a single urx
// invocation: CLI flags merged over an optional TOML file, merged over the
// defaults above.
type Options struct {
	Domains goflags.StringSlice
	Files   goflags.StringSlice

	ConfigPath string
	Output     string
	Format     string

	MergeEndpoint bool
	NormalizeURL  bool

	Providers      goflags.StringSlice
	Subs           bool
	CCIndex        string
	VTApiKeys      goflags.StringSlice
	URLScanApiKeys goflags.StringSlice
	ExcludeRobots  bool
	ExcludeSitemap bool

	Verbose    bool
	Silent     bool
	NoProgress bool

	Preset            goflags.StringSlice
	Extensions        goflags.StringSlice
	ExcludeExtensions goflags.StringSlice
	Patterns          goflags.StringSlice
	ExcludePatterns   goflags.StringSlice
	ShowOnlyHost      bool
	ShowOnlyPath      bool
	ShowOnlyParam     bool
	MinLength         int
	MaxLength         int
	Strict            bool

	NetworkScope string
	Proxy        string
	ProxyAuth    string
	Insecure     bool
	RandomAgent  bool
	Timeout      int
	Retries      int
	Parallel     int
	RateLimit    float64

	CheckStatus   bool
	IncludeStatus goflags.StringSlice
	ExcludeStatus goflags.StringSlice
	ExtractLinks  bool

	Incremental bool
	CacheType   string
	CachePath   string
	RedisURL    string
	CacheTTL    int
	NoCache     bool
}

// ParseOptions parses the command line flags, merges in the config file (if
// any), and applies environment-variable fallbacks for API keys.
func ParseOptions() *Options {
	options := &Options{}

	flagSet := goflags.NewFlagSet()
	flagSet.SetDescription("urx aggregates URLs for a domain from web archives, threat feeds, and site-declared sources, then filters and transforms the result.")

	flagSet.CreateGroup("input", "Target",
		flagSet.StringSliceVarP(&options.Domains, "domain", "d", nil, "target domains to discover urls for", goflags.NormalizedStringSliceOptions),
		flagSet.StringSliceVarP(&options.Files, "files", "", nil, "input files of already-collected urls (repeatable)", goflags.FileNormalizedStringSliceOptions),
		flagSet.StringVarP(&options.ConfigPath, "config", "c", defaultConfigAtPath, "TOML configuration file"),
	)

	flagSet.CreateGroup("provider", "Providers",
		flagSet.StringSliceVar(&options.Providers, "providers", defaultProviders, "comma-separated providers to query", goflags.NormalizedStringSliceOptions),
		flagSet.BoolVar(&options.Subs, "subs", false, "include subdomains in provider queries"),
		flagSet.StringVar(&options.CCIndex, "cc-index", defaultCCIndex, "Common Crawl index id"),
		flagSet.StringSliceVarP(&options.VTApiKeys, "vt-api-key", "", nil, "VirusTotal API key (repeatable)", goflags.StringSliceOptions),
		flagSet.StringSliceVarP(&options.URLScanApiKeys, "urlscan-api-key", "", nil, "urlscan.io API key (repeatable)", goflags.StringSliceOptions),
		flagSet.BoolVar(&options.ExcludeRobots, "exclude-robots", false, "disable the default robots.txt provider"),
		flagSet.BoolVar(&options.ExcludeSitemap, "exclude-sitemap", false, "disable the default sitemap.xml provider"),
	)

	flagSet.CreateGroup("filter", "Filtering",
		flagSet.StringSliceVarP(&options.Preset, "preset", "p", nil, "named filter preset bundles", goflags.NormalizedStringSliceOptions),
		flagSet.StringSliceVarP(&options.Extensions, "extensions", "e", nil, "include only these extensions", goflags.NormalizedStringSliceOptions),
		flagSet.StringSliceVar(&options.ExcludeExtensions, "exclude-extensions", nil, "exclude these extensions", goflags.NormalizedStringSliceOptions),
		flagSet.StringSliceVar(&options.Patterns, "patterns", nil, "include only urls containing these substrings", goflags.NormalizedStringSliceOptions),
		flagSet.StringSliceVar(&options.ExcludePatterns, "exclude-patterns", nil, "exclude urls containing these substrings", goflags.NormalizedStringSliceOptions),
		flagSet.BoolVar(&options.ShowOnlyHost, "show-only-host", false, "project each url down to its host"),
		flagSet.BoolVar(&options.ShowOnlyPath, "show-only-path", false, "project each url down to its path"),
		flagSet.BoolVar(&options.ShowOnlyParam, "show-only-param", false, "project each url down to its query string"),
		flagSet.IntVar(&options.MinLength, "min-length", 0, "drop urls shorter than this"),
		flagSet.IntVar(&options.MaxLength, "max-length", 0, "drop urls longer than this (0 = unlimited)"),
		flagSet.BoolVar(&options.Strict, "strict", false, "reject urls whose host does not exactly match a target domain"),
	)

	flagSet.CreateGroup("transform", "Transformation",
		flagSet.BoolVar(&options.MergeEndpoint, "merge-endpoint", false, "union query parameters across urls sharing host+path"),
		flagSet.BoolVar(&options.NormalizeURL, "normalize-url", false, "strip trailing slash and sort query parameters"),
	)

	flagSet.CreateGroup("network", "Network",
		flagSet.StringVar(&options.NetworkScope, "network-scope", defaultNetworkScope, "apply network settings to all|providers|testers"),
		flagSet.StringVar(&options.Proxy, "proxy", "", "HTTP/SOCKS proxy url"),
		flagSet.StringVar(&options.ProxyAuth, "proxy-auth", "", "proxy basic-auth credentials, user:pass"),
		flagSet.BoolVar(&options.Insecure, "insecure", false, "skip TLS certificate verification"),
		flagSet.BoolVar(&options.RandomAgent, "random-agent", false, "randomize the User-Agent per request"),
		flagSet.IntVar(&options.Timeout, "timeout", defaultTimeoutSecs, "per-request timeout in seconds"),
		flagSet.IntVar(&options.Retries, "retries", defaultRetries, "per-request retry count"),
		flagSet.IntVar(&options.Parallel, "parallel", defaultParallel, "parallelism degree kept in the network settings (domains are scanned one at a time)"),
		flagSet.Float64Var(&options.RateLimit, "rate-limit", 0, "requests per second cap (0 = unlimited)"),
	)

	flagSet.CreateGroup("testing", "Testing",
		flagSet.BoolVar(&options.CheckStatus, "check-status", false, "GET each surviving url and record its status"),
		flagSet.StringSliceVar(&options.IncludeStatus, "include-status", nil, "keep only these status codes", goflags.NormalizedStringSliceOptions),
		flagSet.StringSliceVar(&options.ExcludeStatus, "exclude-status", nil, "drop these status codes", goflags.NormalizedStringSliceOptions),
		flagSet.BoolVar(&options.ExtractLinks, "extract-links", false, "follow each surviving url and extract its links"),
	)

	flagSet.CreateGroup("output", "Output",
		flagSet.StringVarP(&options.Output, "output", "o", "", "output file path"),
		flagSet.StringVarP(&options.Format, "format", "f", defaultOutputFormat, "output format: plain|json|csv"),
		flagSet.BoolVarP(&options.Verbose, "verbose", "v", false, "verbose output"),
		flagSet.BoolVar(&options.Silent, "silent", false, "suppress diagnostics, print urls only"),
		flagSet.BoolVar(&options.NoProgress, "no-progress", false, "disable progress indicators"),
	)

	flagSet.CreateGroup("cache", "Caching",
		flagSet.BoolVar(&options.Incremental, "incremental", false, "emit only urls not seen in a previous cached scan"),
		flagSet.StringVar(&options.CacheType, "cache-type", defaultCacheType, "cache backend: sqlite|redis"),
		flagSet.StringVar(&options.CachePath, "cache-path", "", "sqlite cache database path"),
		flagSet.StringVar(&options.RedisURL, "redis-url", "", "redis cache connection url"),
		flagSet.IntVar(&options.CacheTTL, "cache-ttl", defaultCacheTTLSecs, "cache entry time-to-live in seconds"),
		flagSet.BoolVar(&options.NoCache, "no-cache", false, "disable caching entirely"),
	)

	if err := flagSet.Parse(); err != nil {
		fmt.Println(err.Error())
		os.Exit(1)
	}

	options.mergeConfigFile()
	options.applyAPIKeyEnvFallback()

	if !options.Silent {
		showBanner()
	}

	if options.CachePath == "" {
		options.CachePath = defaultCachePath()
	}

	if err := options.validate(); err != nil {
		gologger.Fatal().Msgf("%s\n", err)
	}

	return options
}

// mergeConfigFile loads the TOML document at ConfigPath (if it exists) and
// fills in any field still at its zero/default value, CLI flags having
// already taken priority by virtue of being parsed first.
func (o *Options) mergeConfigFile() {
	path := o.ConfigPath
	if path == defaultConfigAtPath {
		if _, err := os.Stat(path); err != nil {
			return
		}
	}

	cfg, err := config.Load(path)
	if err != nil {
		if !o.Silent {
			gologger.Warning().Msgf("could not load config from %s: %s\n", path, err)
		}
		return
	}

	o.applyConfig(cfg)
	if !o.Silent {
		LogConfig(path)
	}
}

func (o *Options) applyConfig(cfg *config.Config) {
	if o.Output == "" && cfg.Output.Output != nil {
		o.Output = *cfg.Output.Output
	}
	if o.Format == defaultOutputFormat && cfg.Output.Format != nil {
		o.Format = *cfg.Output.Format
	}
	if !o.MergeEndpoint && cfg.Output.MergeEndpoint != nil {
		o.MergeEndpoint = *cfg.Output.MergeEndpoint
	}

	if equalStringSlices(o.Providers, defaultProviders) && len(cfg.Provider.Providers) > 0 {
		o.Providers = cfg.Provider.Providers
	}
	if !o.Subs && cfg.Provider.Subs != nil {
		o.Subs = *cfg.Provider.Subs
	}
	if o.CCIndex == defaultCCIndex && cfg.Provider.CCIndex != nil {
		o.CCIndex = *cfg.Provider.CCIndex
	}

	if len(o.Preset) == 0 && len(cfg.Filter.Preset) > 0 {
		o.Preset = cfg.Filter.Preset
	}
	if len(o.Extensions) == 0 && len(cfg.Filter.Extensions) > 0 {
		o.Extensions = cfg.Filter.Extensions
	}
	if len(o.ExcludeExtensions) == 0 && len(cfg.Filter.ExcludeExtensions) > 0 {
		o.ExcludeExtensions = cfg.Filter.ExcludeExtensions
	}
	if len(o.Patterns) == 0 && len(cfg.Filter.Patterns) > 0 {
		o.Patterns = cfg.Filter.Patterns
	}
	if len(o.ExcludePatterns) == 0 && len(cfg.Filter.ExcludePatterns) > 0 {
		o.ExcludePatterns = cfg.Filter.ExcludePatterns
	}
	if !o.ShowOnlyHost && cfg.Filter.ShowOnlyHost != nil {
		o.ShowOnlyHost = *cfg.Filter.ShowOnlyHost
	}
	if !o.ShowOnlyPath && cfg.Filter.ShowOnlyPath != nil {
		o.ShowOnlyPath = *cfg.Filter.ShowOnlyPath
	}
	if !o.ShowOnlyParam && cfg.Filter.ShowOnlyParam != nil {
		o.ShowOnlyParam = *cfg.Filter.ShowOnlyParam
	}
	if o.MinLength == 0 && cfg.Filter.MinLength != nil {
		o.MinLength = *cfg.Filter.MinLength
	}
	if o.MaxLength == 0 && cfg.Filter.MaxLength != nil {
		o.MaxLength = *cfg.Filter.MaxLength
	}
	if !o.NormalizeURL && cfg.Filter.NormalizeURL != nil {
		o.NormalizeURL = *cfg.Filter.NormalizeURL
	}
	if !o.Strict && cfg.Filter.Strict != nil {
		o.Strict = *cfg.Filter.Strict
	}

	if o.NetworkScope == defaultNetworkScope && cfg.Network.NetworkScope != nil {
		o.NetworkScope = *cfg.Network.NetworkScope
	}
	if o.Proxy == "" && cfg.Network.Proxy != nil {
		o.Proxy = *cfg.Network.Proxy
	}
	if o.ProxyAuth == "" && cfg.Network.ProxyAuth != nil {
		o.ProxyAuth = *cfg.Network.ProxyAuth
	}
	if !o.Insecure && cfg.Network.Insecure != nil {
		o.Insecure = *cfg.Network.Insecure
	}
	if !o.RandomAgent && cfg.Network.RandomAgent != nil {
		o.RandomAgent = *cfg.Network.RandomAgent
	}
	if o.Timeout == defaultTimeoutSecs && cfg.Network.Timeout != nil {
		o.Timeout = *cfg.Network.Timeout
	}
	if o.Retries == defaultRetries && cfg.Network.Retries != nil {
		o.Retries = *cfg.Network.Retries
	}
	if o.Parallel == defaultParallel && cfg.Network.Parallel != nil {
		o.Parallel = *cfg.Network.Parallel
	}
	if o.RateLimit == 0 && cfg.Network.RateLimit != nil {
		o.RateLimit = *cfg.Network.RateLimit
	}

	if !o.CheckStatus && cfg.Testing.CheckStatus != nil {
		o.CheckStatus = *cfg.Testing.CheckStatus
	}
	if len(o.IncludeStatus) == 0 && len(cfg.Testing.IncludeStatus) > 0 {
		o.IncludeStatus = cfg.Testing.IncludeStatus
	}
	if len(o.ExcludeStatus) == 0 && len(cfg.Testing.ExcludeStatus) > 0 {
		o.ExcludeStatus = cfg.Testing.ExcludeStatus
	}
	if !o.ExtractLinks && cfg.Testing.ExtractLinks != nil {
		o.ExtractLinks = *cfg.Testing.ExtractLinks
	}
}

func equalStringSlices(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// applyAPIKeyEnvFallback appends comma-split URX_VT_API_KEY/URX_URLSCAN_API_KEY
// values to whatever keys were already given on the command line.
func (o *Options) applyAPIKeyEnvFallback() {
	if vt := envutil.GetEnvOrDefault("URX_VT_API_KEY", ""); vt != "" {
		o.VTApiKeys = append(o.VTApiKeys, strings.Split(vt, ",")...)
	}
	if us := envutil.GetEnvOrDefault("URX_URLSCAN_API_KEY", ""); us != "" {
		o.URLScanApiKeys = append(o.URLScanApiKeys, strings.Split(us, ",")...)
	}
}

func (o *Options) validate() error {
	switch o.Format {
	case "plain", "json", "csv":
	default:
		return fmt.Errorf("unknown output format %q", o.Format)
	}

	switch o.NetworkScope {
	case "all", "providers", "testers", "providers,testers", "testers,providers":
	default:
		return fmt.Errorf("unknown network scope %q", o.NetworkScope)
	}

	switch o.CacheType {
	case "sqlite", "redis":
	default:
		return fmt.Errorf("unknown cache type %q", o.CacheType)
	}

	if o.ConfigPath != "" && o.ConfigPath != defaultConfigAtPath {
		if _, err := os.Stat(o.ConfigPath); err != nil {
			return fmt.Errorf("config file %s: %w", o.ConfigPath, err)
		}
	}

	return nil
}

// defaultCachePath returns the platform cache directory joined with
// urx-cache.db, used when --cache-path is not given.
func defaultCachePath() string {
	return filepath.Join(configDir, "urx-cache.db")
}
