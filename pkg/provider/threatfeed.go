package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/projectdiscovery/retryablehttp-go"
	"github.com/tomnomnom/linkheader"

	"github.com/hahwul/urx-sub000/pkg/network"
)

// ThreatFeedProvider discovers URLs recorded against a domain by an
// AlienVault OTX style threat-intelligence feed. Pagination is driven
// primarily by a "Link: rel=next" response header; feeds that omit it fall
// back to the page/has_next fields carried in the JSON body itself.
type ThreatFeedProvider struct {
	opts Options
}

// NewThreatFeedProvider builds a ThreatFeedProvider from opts.
func NewThreatFeedProvider(opts Options) *ThreatFeedProvider {
	return &ThreatFeedProvider{opts: opts}
}

func (p *ThreatFeedProvider) Name() string   { return "otx" }
func (p *ThreatFeedProvider) NeedsKey() bool { return false }

const threatFeedPageLimit = 200

type threatFeedResponse struct {
	HasNext    bool                 `json:"has_next"`
	ActualSize int                  `json:"actual_size"`
	URLList    []threatFeedURLEntry `json:"url_list"`
}

type threatFeedURLEntry struct {
	Domain   string `json:"domain"`
	URL      string `json:"url"`
	Hostname string `json:"hostname"`
}

func (p *ThreatFeedProvider) formatURL(domain string, page int) string {
	hasSubdomain := strings.Count(domain, ".") > 1

	switch {
	case !hasSubdomain:
		return fmt.Sprintf("https://otx.alienvault.com/api/v1/indicators/domain/%s/url_list?limit=%d&page=%d", domain, threatFeedPageLimit, page)
	case p.opts.IncludeSubdomains:
		parts := strings.Split(domain, ".")
		main := domain
		if len(parts) >= 2 {
			main = strings.Join(parts[len(parts)-2:], ".")
		}
		return fmt.Sprintf("https://otx.alienvault.com/api/v1/indicators/domain/%s/url_list?limit=%d&page=%d", main, threatFeedPageLimit, page)
	default:
		return fmt.Sprintf("https://otx.alienvault.com/api/v1/indicators/hostname/%s/url_list?limit=%d&page=%d", domain, threatFeedPageLimit, page)
	}
}

func (p *ThreatFeedProvider) FetchURLs(ctx context.Context, domain string) ([]string, error) {
	cfg := p.opts.clientConfig()
	client, err := cfg.BuildClient()
	if err != nil {
		return nil, fmt.Errorf("building threat feed client: %w", err)
	}

	var allURLs []string
	page := 0
	hasSubdomain := strings.Count(domain, ".") > 1

	for {
		p.opts.take(ctx)

		reqURL := p.formatURL(domain, page)
		body, headers, err := p.fetchPage(ctx, client, cfg, reqURL)
		if err != nil {
			return nil, err
		}

		var parsed threatFeedResponse
		if err := json.Unmarshal(body, &parsed); err != nil {
			return nil, fmt.Errorf("decoding threat feed response: %w", err)
		}

		for _, entry := range parsed.URLList {
			if p.opts.IncludeSubdomains {
				if !hasSubdomain || strings.Contains(strings.ToLower(entry.Hostname), strings.ToLower(domain)) {
					allURLs = append(allURLs, entry.URL)
				}
			} else if strings.EqualFold(domain, entry.Hostname) {
				allURLs = append(allURLs, entry.URL)
			}
		}

		next, ok := nextPageFromLinkHeader(headers.Get("Link"))
		if ok {
			page = next
			continue
		}

		if !parsed.HasNext {
			break
		}
		page++
	}

	return allURLs, nil
}

// nextPageFromLinkHeader extracts a "page" query parameter from a
// rel="next" entry in an RFC 5988 Link header.
func nextPageFromLinkHeader(raw string) (int, bool) {
	if raw == "" {
		return 0, false
	}
	for _, link := range linkheader.Parse(raw) {
		if link.Rel != "next" {
			continue
		}
		if idx := strings.Index(link.URL, "page="); idx != -1 {
			rest := link.URL[idx+len("page="):]
			if amp := strings.IndexByte(rest, '&'); amp != -1 {
				rest = rest[:amp]
			}
			if n, err := strconv.Atoi(rest); err == nil {
				return n, true
			}
		}
	}
	return 0, false
}

func (p *ThreatFeedProvider) fetchPage(ctx context.Context, client *retryablehttp.Client, cfg network.ClientConfig, url string) ([]byte, http.Header, error) {
	var lastErr error

	for attempt := 0; attempt <= p.opts.Retries; attempt++ {
		if attempt > 0 {
			time.Sleep(time.Duration(attempt) * 500 * time.Millisecond)
		}

		req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, nil, fmt.Errorf("building threat feed request: %w", err)
		}
		if ua := cfg.UserAgent(); ua != "" {
			req.Header.Set("User-Agent", ua)
		}

		resp, err := client.Do(req)
		if err != nil {
			lastErr = err
			continue
		}

		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			lastErr = err
			continue
		}

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			lastErr = fmt.Errorf("unexpected status code: %d", resp.StatusCode)
			continue
		}

		return body, resp.Header, nil
	}

	return nil, nil, fmt.Errorf("threat feed request failed after %d attempts: %w", p.opts.Retries+1, lastErr)
}
