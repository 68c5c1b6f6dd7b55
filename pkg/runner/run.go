package runner

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/projectdiscovery/gologger"

	"github.com/hahwul/urx-sub000/pkg/apikey"
	"github.com/hahwul/urx-sub000/pkg/cache"
	"github.com/hahwul/urx-sub000/pkg/filter"
	"github.com/hahwul/urx-sub000/pkg/network"
	"github.com/hahwul/urx-sub000/pkg/output"
	"github.com/hahwul/urx-sub000/pkg/provider"
	"github.com/hahwul/urx-sub000/pkg/reader"
	"github.com/hahwul/urx-sub000/pkg/tester"
	"github.com/hahwul/urx-sub000/pkg/urltransform"
)

// Run executes one full urx invocation: gather domains, probe the cache,
// fan out across providers, filter and transform the result, optionally
// test surviving URLs, and write the output. It implements the orchestrator
// sequence documented for the runner package.
func Run(opts *Options) error {
	ctx := context.Background()

	domains := gatherDomains(opts)
	if len(domains) == 0 {
		gologger.Warning().Msg("no domains given on the command line or standard input\n")
		return nil
	}

	settings := buildNetworkSettings(opts)
	providers := buildProviders(opts, settings)
	if len(providers) == 0 && !opts.Silent {
		gologger.Warning().Msg("no providers configured; nothing to query\n")
	}

	filterCfg := buildFilterConfig(opts)
	backend, backendErr := openCacheBackend(opts)
	if backendErr != nil && !opts.Silent {
		gologger.Warning().Msgf("cache disabled: %s\n", backendErr)
	}

	var allResults []output.UrlData

	for _, domain := range domains {
		key := cache.NewKey(domain, []string(opts.Providers), toCacheFilters(filterCfg))

		if backend != nil && !opts.NoCache && !opts.Incremental {
			if entry, err := backend.Get(ctx, key); err == nil && entry != nil && !entry.Expired(cacheTTL(opts)) {
				if opts.Verbose && !opts.Silent {
					gologger.Info().Msgf("cache hit for %s\n", domain)
				}
				allResults = append(allResults, wrapURLs(entry.URLs)...)
				continue
			}
		}

		urls := collectDomainURLs(ctx, domain, providers, opts, filterCfg)

		if backend != nil && !opts.NoCache {
			final := urls
			if opts.Incremental {
				newURLs := diffAgainstCache(ctx, backend, key, urls)
				if err := backend.Set(ctx, key, cache.NewEntry(urls)); err != nil && !opts.Silent {
					gologger.Warning().Msgf("cache write failed for %s: %s\n", domain, err)
				}
				final = newURLs
			} else {
				if err := backend.Set(ctx, key, cache.NewEntry(urls)); err != nil && !opts.Silent {
					gologger.Warning().Msgf("cache write failed for %s: %s\n", domain, err)
				}
			}
			allResults = append(allResults, wrapURLs(final)...)
			continue
		}

		allResults = append(allResults, wrapURLs(urls)...)
	}

	if opts.CheckStatus || opts.ExtractLinks {
		allResults = runTesterPipeline(ctx, opts, settings, allResults)
	}

	allResults = applyStatusFilters(allResults, opts.IncludeStatus, opts.ExcludeStatus)

	outputter := output.CreateOutputter(opts.Format)
	if err := outputter.Output(allResults, opts.Output, opts.Silent); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}

	return nil
}

// gatherDomains returns the explicit --domain values, falling back to
// whitespace-stripped, non-empty standard-input lines when none were given.
func gatherDomains(opts *Options) []string {
	if len(opts.Domains) > 0 {
		return []string(opts.Domains)
	}

	stat, err := os.Stdin.Stat()
	if err != nil || (stat.Mode()&os.ModeCharDevice) != 0 {
		return nil
	}

	var domains []string
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			domains = append(domains, line)
		}
	}
	return domains
}

func buildNetworkSettings(opts *Options) network.Settings {
	return network.Settings{
		Proxy:             opts.Proxy,
		ProxyAuth:         opts.ProxyAuth,
		Timeout:           time.Duration(opts.Timeout) * time.Second,
		Retries:           opts.Retries,
		RandomAgent:       opts.RandomAgent,
		Insecure:          opts.Insecure,
		Parallel:          opts.Parallel,
		RateLimit:         opts.RateLimit,
		IncludeSubdomains: opts.Subs,
		Scope:             network.ParseScope(opts.NetworkScope),
	}
}

// buildProviders assembles the registry's selection: the explicitly named
// --providers set, plus robots.txt and sitemap.xml unless opted out, since
// those two are on by default regardless of the --providers list.
func buildProviders(opts *Options, settings network.Settings) []provider.Provider {
	var limiter *network.Limiter
	if settings.RateLimit > 0 && settings.AppliesToProviders() {
		limiter = network.NewLimiter(context.Background(), settings.RateLimit)
	}

	ns := settings
	if !settings.AppliesToProviders() {
		ns = network.DefaultSettings()
	}

	providerOpts := provider.Options{
		IncludeSubdomains: opts.Subs,
		Proxy:             ns.Proxy,
		ProxyAuth:         ns.ProxyAuth,
		Timeout:           int(ns.Timeout / time.Second),
		Retries:           ns.Retries,
		RandomAgent:       ns.RandomAgent,
		Insecure:          ns.Insecure,
		RateLimiter:       limiter,
	}

	vtRotator := apikey.NewRotator([]string(opts.VTApiKeys))
	urlscanRotator := apikey.NewRotator([]string(opts.URLScanApiKeys))

	registry := provider.NewRegistry(
		provider.NewArchiveProvider(providerOpts),
		provider.NewIndexProvider(providerOpts, opts.CCIndex),
		provider.NewThreatFeedProvider(providerOpts),
		provider.NewCredentialedHeaderProvider(providerOpts, urlscanRotator, ""),
		provider.NewCredentialedQueryProvider(providerOpts, vtRotator, ""),
		provider.NewRobotsProvider(providerOpts),
		provider.NewSitemapProvider(providerOpts),
	)

	selected := registry.Select([]string(opts.Providers))

	have := make(map[string]struct{}, len(selected))
	for _, p := range selected {
		have[p.Name()] = struct{}{}
	}

	if !opts.ExcludeRobots {
		if _, ok := have["robots"]; !ok {
			selected = append(selected, provider.NewRobotsProvider(providerOpts))
		}
	}
	if !opts.ExcludeSitemap {
		if _, ok := have["sitemap"]; !ok {
			selected = append(selected, provider.NewSitemapProvider(providerOpts))
		}
	}

	return selected
}

func buildFilterConfig(opts *Options) filter.Config {
	cfg := filter.Config{
		IncludeSubdomains: opts.Subs,
		Extensions:        []string(opts.Extensions),
		ExcludeExtensions: []string(opts.ExcludeExtensions),
		Patterns:          []string(opts.Patterns),
		ExcludePatterns:   []string(opts.ExcludePatterns),
		Presets:           []string(opts.Preset),
		StrictHost:        opts.Strict,
		NormalizeURL:      opts.NormalizeURL,
		MergeEndpoint:     opts.MergeEndpoint,
	}
	if opts.MinLength > 0 {
		min := opts.MinLength
		cfg.MinLength = &min
	}
	if opts.MaxLength > 0 {
		max := opts.MaxLength
		cfg.MaxLength = &max
	}
	return cfg
}

func toCacheFilters(cfg filter.Config) cache.Filters {
	return cache.Filters{
		Subs:              cfg.IncludeSubdomains,
		Extensions:        cfg.Extensions,
		ExcludeExtensions: cfg.ExcludeExtensions,
		Patterns:          cfg.Patterns,
		ExcludePatterns:   cfg.ExcludePatterns,
		Presets:           cfg.Presets,
		MinLength:         cfg.MinLength,
		MaxLength:         cfg.MaxLength,
		Strict:            cfg.StrictHost,
		NormalizeURL:      cfg.NormalizeURL,
		MergeEndpoint:     cfg.MergeEndpoint,
	}
}

func cacheTTL(opts *Options) time.Duration {
	return time.Duration(opts.CacheTTL) * time.Second
}

func openCacheBackend(opts *Options) (cache.Backend, error) {
	if opts.NoCache {
		return nil, nil
	}

	switch opts.CacheType {
	case "redis":
		if opts.RedisURL == "" {
			return nil, fmt.Errorf("cache-type redis requires --redis-url")
		}
		return cache.NewRedisCache(context.Background(), opts.RedisURL)
	default:
		return cache.NewSqliteCache(opts.CachePath)
	}
}

// collectDomainURLs runs the fan-out, folds in file-ingested URLs, then
// host-validates, filters, and transforms the aggregate for one domain.
func collectDomainURLs(ctx context.Context, domain string, providers []provider.Provider, opts *Options, filterCfg filter.Config) []string {
	results := fanOut(ctx, []string{domain}, providers, opts.Verbose, opts.Silent)

	urlSet := make(map[string]struct{})
	for _, r := range results {
		for _, u := range r.URLs {
			urlSet[u] = struct{}{}
		}
	}

	for _, path := range opts.Files {
		fileURLs, err := reader.ReadURLsFromFile(path)
		if err != nil {
			if !opts.Silent {
				gologger.Warning().Msgf("reading %s: %s\n", path, err)
			}
			continue
		}
		for _, u := range fileURLs {
			urlSet[u] = struct{}{}
		}
	}

	urls := make([]string, 0, len(urlSet))
	for u := range urlSet {
		urls = append(urls, u)
	}

	if filterCfg.StrictHost {
		validator := filter.NewHostValidator([]string{domain})
		urls = validator.FilterValidHosts(urls)
	}

	urls = filterCfg.NewFilter().ApplySlice(urls)

	transformer := urltransform.New().
		WithNormalizeURL(filterCfg.NormalizeURL).
		WithMergeEndpoint(filterCfg.MergeEndpoint).
		WithShowOnlyHost(opts.ShowOnlyHost).
		WithShowOnlyPath(opts.ShowOnlyPath).
		WithShowOnlyParam(opts.ShowOnlyParam)
	urls = transformer.Transform(urls)

	sort.Strings(urls)
	return urls
}

// diffAgainstCache returns the subset of urls absent from the cached entry
// for key, or urls verbatim when no cached entry exists.
func diffAgainstCache(ctx context.Context, backend cache.Backend, key cache.Key, urls []string) []string {
	entry, err := backend.Get(ctx, key)
	if err != nil || entry == nil {
		return urls
	}

	previous := make(map[string]struct{}, len(entry.URLs))
	for _, u := range entry.URLs {
		previous[u] = struct{}{}
	}

	var fresh []string
	for _, u := range urls {
		if _, ok := previous[u]; !ok {
			fresh = append(fresh, u)
		}
	}
	return fresh
}

func wrapURLs(urls []string) []output.UrlData {
	out := make([]output.UrlData, 0, len(urls))
	for _, u := range urls {
		out = append(out, output.New(u))
	}
	return out
}

func runTesterPipeline(ctx context.Context, opts *Options, settings network.Settings, results []output.UrlData) []output.UrlData {
	urls := make([]string, 0, len(results))
	for _, r := range results {
		urls = append(urls, r.URL)
	}

	ns := settings
	if !settings.AppliesToTesters() {
		ns = network.DefaultSettings()
	}

	testerOpts := tester.Options{
		Timeout:     int(ns.Timeout / time.Second),
		Retries:     ns.Retries,
		Proxy:       ns.Proxy,
		ProxyAuth:   ns.ProxyAuth,
		Insecure:    ns.Insecure,
		RandomAgent: ns.RandomAgent,
	}
	if settings.RateLimit > 0 && settings.AppliesToTesters() {
		testerOpts.RateLimiter = network.NewLimiter(ctx, settings.RateLimit)
	}

	var testers []tester.Tester
	if opts.CheckStatus {
		testers = append(testers, tester.NewStatusChecker(testerOpts))
	}
	if opts.ExtractLinks {
		testers = append(testers, tester.NewLinkExtractor(testerOpts))
	}

	pipeline := &tester.Pipeline{
		Testers:      testers,
		CheckStatus:  opts.CheckStatus,
		ExtractLinks: opts.ExtractLinks,
		Verbose:      opts.Verbose,
		Silent:       opts.Silent,
	}

	return pipeline.Run(ctx, urls)
}

func applyStatusFilters(results []output.UrlData, include, exclude []string) []output.UrlData {
	if len(include) == 0 && len(exclude) == 0 {
		return results
	}

	includeSet := make(map[string]struct{}, len(include))
	for _, c := range include {
		includeSet[c] = struct{}{}
	}
	excludeSet := make(map[string]struct{}, len(exclude))
	for _, c := range exclude {
		excludeSet[c] = struct{}{}
	}

	out := make([]output.UrlData, 0, len(results))
	for _, r := range results {
		code, ok := statusCode(r.Status)
		if !ok {
			out = append(out, r)
			continue
		}
		if len(includeSet) > 0 {
			if _, ok := includeSet[code]; !ok {
				continue
			}
		}
		if _, ok := excludeSet[code]; ok {
			continue
		}
		out = append(out, r)
	}
	return out
}

// statusCode extracts the leading numeric status code from a "{code}
// {reason}" status string, e.g. "200 OK" -> "200".
func statusCode(status *string) (string, bool) {
	if status == nil {
		return "", false
	}
	code, _, ok := strings.Cut(*status, " ")
	return code, ok
}
