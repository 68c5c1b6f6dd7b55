package network

import (
	"strings"
	"time"
)

// Scope determines which pipeline stage receives a NetworkSettings value.
type Scope int

const (
	ScopeAll Scope = iota
	ScopeProviders
	ScopeTesters
)

// Settings centralizes the network configuration shared across providers
// and testers so that each request path does not repeat timeout, proxy, and
// agent handling.
type Settings struct {
	Proxy             string
	ProxyAuth         string
	Timeout           time.Duration
	Retries           int
	RandomAgent       bool
	Insecure          bool
	Parallel          int
	RateLimit         float64 // requests per second; 0 means unlimited
	IncludeSubdomains bool
	Scope             Scope
}

// DefaultSettings holds the network settings a provider or tester uses when
// --network-scope leaves it out: a 30s timeout, 3 retries, no proxy.
func DefaultSettings() Settings {
	return Settings{
		Timeout:  30 * time.Second,
		Retries:  3,
		Parallel: 5,
		Scope:    ScopeAll,
	}
}

// ParseScope maps a --network-scope value onto a Scope, treating
// "providers,testers" and "testers,providers" as ScopeAll per the runner's
// documented handling of that combination.
func ParseScope(raw string) Scope {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "providers":
		return ScopeProviders
	case "testers":
		return ScopeTesters
	case "providers,testers", "testers,providers":
		return ScopeAll
	default:
		return ScopeAll
	}
}

// ClientConfig derives a provider/tester ClientConfig from these settings.
func (s Settings) ClientConfig() ClientConfig {
	return ClientConfig{
		Timeout:     s.Timeout,
		Insecure:    s.Insecure,
		RandomAgent: s.RandomAgent,
		Proxy:       s.Proxy,
		ProxyAuth:   s.ProxyAuth,
	}
}

// AppliesToProviders reports whether settings configured with this scope
// should be pushed onto provider instances.
func (s Settings) AppliesToProviders() bool {
	return s.Scope == ScopeAll || s.Scope == ScopeProviders
}

// AppliesToTesters reports whether settings configured with this scope
// should be pushed onto tester instances.
func (s Settings) AppliesToTesters() bool {
	return s.Scope == ScopeAll || s.Scope == ScopeTesters
}
