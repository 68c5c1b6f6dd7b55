// Package provider implements the URL discovery backends: archived-page
// indexes, threat-intelligence feeds, credentialed search APIs, and
// site-declared URL sources (robots.txt, sitemaps).
package provider

import (
	"context"
	"time"

	"github.com/hahwul/urx-sub000/pkg/apikey"
	"github.com/hahwul/urx-sub000/pkg/network"
)

// Provider discovers URLs known to belong to domain. Implementations own
// their own HTTP client construction from Options so that each provider can
// be configured (timeout, proxy, rate limit) independently of the others.
type Provider interface {
	Name() string
	FetchURLs(ctx context.Context, domain string) ([]string, error)
	NeedsKey() bool
}

// Options carries the subset of network.Settings a provider consults when
// building its HTTP client and request loop.
type Options struct {
	IncludeSubdomains bool
	Proxy             string
	ProxyAuth         string
	Timeout           int
	Retries           int
	RandomAgent       bool
	Insecure          bool
	RateLimiter       *network.Limiter
}

// clientConfig converts Options into a network.ClientConfig, whose
// BuildClient method constructs the provider's HTTP client.
func (o Options) clientConfig() network.ClientConfig {
	timeout := time.Duration(o.Timeout) * time.Second
	if o.Timeout <= 0 {
		timeout = network.DefaultClientConfig().Timeout
	}
	return network.ClientConfig{
		Timeout:     timeout,
		Insecure:    o.Insecure,
		RandomAgent: o.RandomAgent,
		Proxy:       o.Proxy,
		ProxyAuth:   o.ProxyAuth,
	}
}

func (o Options) take(ctx context.Context) {
	if o.RateLimiter != nil {
		o.RateLimiter.Take()
	}
}

// Registry is an ordered collection of named providers, built up once at
// startup and then fanned out over per domain.
type Registry struct {
	providers []Provider
}

// NewRegistry returns a Registry containing providers in the given order.
func NewRegistry(providers ...Provider) *Registry {
	return &Registry{providers: providers}
}

// All returns every registered provider.
func (r *Registry) All() []Provider {
	return r.providers
}

// Select returns the subset of registered providers whose Name is in names.
// An empty names selects every provider whose NeedsKey is false, matching
// the "default providers only" behavior when no --providers flag is given.
func (r *Registry) Select(names []string) []Provider {
	if len(names) == 0 {
		out := make([]Provider, 0, len(r.providers))
		for _, p := range r.providers {
			if !p.NeedsKey() {
				out = append(out, p)
			}
		}
		return out
	}

	wanted := make(map[string]struct{}, len(names))
	for _, n := range names {
		wanted[n] = struct{}{}
	}

	out := make([]Provider, 0, len(names))
	for _, p := range r.providers {
		if _, ok := wanted[p.Name()]; ok {
			out = append(out, p)
		}
	}
	return out
}

// apiKeyFor resolves the next key from a rotator, or empty if the rotator
// has no keys configured.
func apiKeyFor(rotator *apikey.Rotator) string {
	if rotator == nil {
		return ""
	}
	key, ok := rotator.Next()
	if !ok {
		return ""
	}
	return key
}
