package runner

import (
	"context"
	"sync"

	"github.com/projectdiscovery/gologger"
	"github.com/rs/xid"
	"golang.org/x/exp/maps"

	"github.com/hahwul/urx-sub000/pkg/provider"
)

// domainResult is the outcome of fanning out every selected provider over a
// single domain.
type domainResult struct {
	Domain string
	URLs   []string
}

// fanOut processes domains sequentially. For each domain it runs every
// provider concurrently, waits for all of them, and folds the successes
// into a per-domain deduplicated URL set. A provider failure is logged and
// skipped rather than aborting the domain or the run.
func fanOut(ctx context.Context, domains []string, providers []provider.Provider, verbose, silent bool) []domainResult {
	results := make([]domainResult, 0, len(domains))

	for _, domain := range domains {
		runID := xid.New().String()
		seen := make(map[string]struct{})
		var mu sync.Mutex
		var wg sync.WaitGroup

		wg.Add(len(providers))
		for _, p := range providers {
			p := p
			go func() {
				defer wg.Done()

				urls, err := p.FetchURLs(ctx, domain)
				if err != nil {
					if !silent {
						gologger.Warning().Msgf("[%s] provider %s failed for %s: %s\n", runID, p.Name(), domain, err)
					}
					return
				}
				if verbose && !silent {
					gologger.Info().Msgf("[%s] provider %s returned %d urls for %s\n", runID, p.Name(), len(urls), domain)
				}

				mu.Lock()
				for _, u := range urls {
					seen[u] = struct{}{}
				}
				mu.Unlock()
			}()
		}
		wg.Wait()

		results = append(results, domainResult{Domain: domain, URLs: maps.Keys(seen)})
	}

	return results
}
