package tester

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/hahwul/urx-sub000/pkg/output"
)

// chunkSize is the number of URLs handed to a single worker goroutine. URLs
// within a chunk are tested sequentially; chunks run concurrently.
const chunkSize = 10

// Pipeline runs a set of testers over a URL collection. testers[0] is
// treated as the status checker when CheckStatus is set; any tester after
// it is treated as a link extractor when ExtractLinks is set.
type Pipeline struct {
	Testers      []Tester
	CheckStatus  bool
	ExtractLinks bool
	Verbose      bool
	Silent       bool
}

// Run processes every URL through the configured testers and returns the
// resulting UrlData collection sorted by URL.
func (p *Pipeline) Run(ctx context.Context, urls []string) []output.UrlData {
	chunks := chunkStrings(urls, chunkSize)

	results := make([][]output.UrlData, len(chunks))
	var wg sync.WaitGroup
	wg.Add(len(chunks))

	for i, chunk := range chunks {
		i, chunk := i, chunk
		go func() {
			defer wg.Done()
			results[i] = p.processChunk(ctx, chunk)
		}()
	}
	wg.Wait()

	var out []output.UrlData
	for _, r := range results {
		out = append(out, r...)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].URL < out[j].URL })
	return out
}

func (p *Pipeline) processChunk(ctx context.Context, urls []string) []output.UrlData {
	var result []output.UrlData

	for _, u := range urls {
		var statusLines []string
		var gotStatus bool
		var linkLines []string
		var gotLinks bool

		for i, t := range p.Testers {
			lines, err := t.TestURL(ctx, u)
			if err != nil {
				if p.Verbose && !p.Silent {
					fmt.Printf("error testing url %s: %v\n", u, err)
				}
				continue
			}

			if i == 0 && p.CheckStatus {
				statusLines = lines
				gotStatus = true
			} else if p.ExtractLinks {
				linkLines = lines
				gotLinks = true
			}
		}

		switch {
		case gotStatus:
			for _, line := range statusLines {
				result = append(result, output.FromString(line))
			}
		case p.CheckStatus:
			result = append(result, output.WithStatus(u, "Status check failed"))
		default:
			result = append(result, output.New(u))
		}

		if gotLinks {
			for _, link := range linkLines {
				result = append(result, output.New(link))
			}
		}
	}

	return result
}

func chunkStrings(items []string, size int) [][]string {
	if len(items) == 0 {
		return nil
	}
	var chunks [][]string
	for i := 0; i < len(items); i += size {
		end := i + size
		if end > len(items) {
			end = len(items)
		}
		chunks = append(chunks, items[i:end])
	}
	return chunks
}
