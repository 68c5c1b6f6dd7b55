// Package tester probes discovered URLs after collection: a status checker
// records each URL's live HTTP status, and a link extractor follows a page
// to harvest further URLs from its anchor tags.
package tester

import (
	"context"
	"time"

	"github.com/hahwul/urx-sub000/pkg/network"
)

// Tester probes a single URL and returns the result lines it produced —
// a status line for a status checker, or extracted links for a link
// extractor.
type Tester interface {
	TestURL(ctx context.Context, targetURL string) ([]string, error)
}

// Options carries the network settings a Tester consults when building its
// HTTP client.
type Options struct {
	Timeout     int
	Retries     int
	RandomAgent bool
	Insecure    bool
	Proxy       string
	ProxyAuth   string
	RateLimiter *network.Limiter
}

// take blocks until RateLimiter permits the next request, a no-op if no
// limiter was configured.
func (o Options) take() {
	o.RateLimiter.Take()
}

func (o Options) clientConfig() network.ClientConfig {
	cfg := network.DefaultClientConfig()
	if o.Timeout > 0 {
		cfg.Timeout = time.Duration(o.Timeout) * time.Second
	}
	cfg.Insecure = o.Insecure
	cfg.RandomAgent = o.RandomAgent
	cfg.Proxy = o.Proxy
	cfg.ProxyAuth = o.ProxyAuth
	return cfg
}
