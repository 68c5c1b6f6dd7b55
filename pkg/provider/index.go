package provider

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/hahwul/urx-sub000/pkg/network"
)

// IndexProvider discovers URLs via a Common Crawl style index: a
// newline-delimited JSON endpoint keyed by crawl identifier.
type IndexProvider struct {
	opts  Options
	index string
}

// DefaultCrawlIndex is the Common Crawl index queried when no specific
// index is configured.
const DefaultCrawlIndex = "CC-MAIN-2025-13"

// NewIndexProvider builds an IndexProvider against the given crawl index.
// An empty index falls back to DefaultCrawlIndex.
func NewIndexProvider(opts Options, index string) *IndexProvider {
	if index == "" {
		index = DefaultCrawlIndex
	}
	return &IndexProvider{opts: opts, index: index}
}

func (p *IndexProvider) Name() string   { return "cc" }
func (p *IndexProvider) NeedsKey() bool { return false }

type indexRecord struct {
	URL string `json:"url"`
}

func (p *IndexProvider) FetchURLs(ctx context.Context, domain string) ([]string, error) {
	var searchURL string
	if p.opts.IncludeSubdomains {
		searchURL = fmt.Sprintf("https://index.commoncrawl.org/%s-index?url=*.%s/*&output=json", p.index, domain)
	} else {
		searchURL = fmt.Sprintf("https://index.commoncrawl.org/%s-index?url=%s/*&output=json", p.index, domain)
	}

	p.opts.take(ctx)

	cfg := p.opts.clientConfig()
	client, err := cfg.BuildClient()
	if err != nil {
		return nil, fmt.Errorf("building index client: %w", err)
	}

	text, err := network.GetWithRetry(client, cfg, searchURL, p.opts.Retries)
	if err != nil {
		return nil, fmt.Errorf("fetching crawl index: %w", err)
	}

	return parseIndexResponse(text), nil
}

// parseIndexResponse decodes a Common Crawl index body: one JSON object per
// line.
func parseIndexResponse(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	var urls []string
	scanner := bufio.NewScanner(strings.NewReader(text))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		var rec indexRecord
		if err := json.Unmarshal([]byte(line), &rec); err == nil && rec.URL != "" {
			urls = append(urls, rec.URL)
		}
	}

	sort.Strings(urls)
	return dedupSorted(urls)
}
