package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/hahwul/urx-sub000/pkg/network"
)

// ArchiveProvider discovers URLs previously archived by the Wayback
// Machine's CDX index.
type ArchiveProvider struct {
	opts Options
}

// NewArchiveProvider builds an ArchiveProvider from opts.
func NewArchiveProvider(opts Options) *ArchiveProvider {
	return &ArchiveProvider{opts: opts}
}

func (p *ArchiveProvider) Name() string   { return "wayback" }
func (p *ArchiveProvider) NeedsKey() bool { return false }

func (p *ArchiveProvider) FetchURLs(ctx context.Context, domain string) ([]string, error) {
	var searchURL string
	if p.opts.IncludeSubdomains {
		searchURL = fmt.Sprintf("https://web.archive.org/cdx/search/cdx?url=*.%s/*&output=json&fl=original", domain)
	} else {
		searchURL = fmt.Sprintf("https://web.archive.org/cdx/search/cdx?url=%s/*&output=json&fl=original", domain)
	}

	p.opts.take(ctx)

	cfg := p.opts.clientConfig()
	client, err := cfg.BuildClient()
	if err != nil {
		return nil, fmt.Errorf("building archive client: %w", err)
	}

	text, err := network.GetWithRetry(client, cfg, searchURL, p.opts.Retries)
	if err != nil {
		return nil, fmt.Errorf("fetching archive CDX index: %w", err)
	}

	return parseCDXResponse(text)
}

// parseCDXResponse decodes a Wayback Machine CDX "output=json" body: a JSON
// array of rows, whose first row is the field-name header rather than a
// result.
func parseCDXResponse(text string) ([]string, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}

	var rows [][]string
	if err := json.Unmarshal([]byte(text), &rows); err != nil {
		return nil, fmt.Errorf("decoding archive CDX response: %w", err)
	}

	urls := make([]string, 0, len(rows))
	for i, row := range rows {
		if i == 0 {
			continue
		}
		if len(row) > 0 {
			urls = append(urls, row[0])
		}
	}

	sort.Strings(urls)
	return dedupSorted(urls), nil
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
