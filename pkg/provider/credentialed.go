package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/projectdiscovery/retryablehttp-go"

	"github.com/hahwul/urx-sub000/pkg/apikey"
	"github.com/hahwul/urx-sub000/pkg/network"
)

// CredentialedHeaderProvider discovers URLs from a search API that accepts
// its API key as a request header (modeled on urlscan.io's "API-Key"
// header). It returns no results, rather than an error, when the rotator
// holds no keys — missing credentials disable an optional provider instead
// of failing the whole run.
type CredentialedHeaderProvider struct {
	opts    Options
	rotator *apikey.Rotator
	baseURL string
}

// NewCredentialedHeaderProvider builds the provider against baseURL (override
// in tests), drawing API keys from rotator.
func NewCredentialedHeaderProvider(opts Options, rotator *apikey.Rotator, baseURL string) *CredentialedHeaderProvider {
	if baseURL == "" {
		baseURL = "https://urlscan.io"
	}
	return &CredentialedHeaderProvider{opts: opts, rotator: rotator, baseURL: baseURL}
}

func (p *CredentialedHeaderProvider) Name() string   { return "urlscan" }
func (p *CredentialedHeaderProvider) NeedsKey() bool { return true }

type headerProviderPage struct {
	Results []struct {
		Page struct {
			Domain string `json:"domain"`
			URL    string `json:"url"`
		} `json:"page"`
	} `json:"results"`
	HasMore bool `json:"has_more"`
}

func (p *CredentialedHeaderProvider) FetchURLs(ctx context.Context, domain string) ([]string, error) {
	key := apiKeyFor(p.rotator)
	if key == "" {
		return nil, nil
	}

	cfg := p.opts.clientConfig()
	client, err := cfg.BuildClient()
	if err != nil {
		return nil, fmt.Errorf("building credentialed client: %w", err)
	}

	reqURL := fmt.Sprintf("%s/api/v1/search/?q=domain:%s&size=100", p.baseURL, url.QueryEscape(domain))

	var urls []string
	var lastErr error

	for attempt := 0; attempt <= p.opts.Retries; attempt++ {
		if attempt > 0 {
			time.Sleep(time.Duration(attempt) * 500 * time.Millisecond)
		}

		p.opts.take(ctx)

		req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
		if err != nil {
			return nil, fmt.Errorf("building credentialed request: %w", err)
		}
		req.Header.Set("API-Key", key)
		if ua := cfg.UserAgent(); ua != "" {
			req.Header.Set("User-Agent", ua)
		}

		resp, err := client.Do(req)
		if err != nil {
			lastErr = err
			continue
		}

		var page headerProviderPage
		decodeErr := json.NewDecoder(resp.Body).Decode(&page)
		resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			lastErr = fmt.Errorf("unexpected status code: %d", resp.StatusCode)
			continue
		}
		if decodeErr != nil {
			lastErr = decodeErr
			continue
		}

		for _, r := range page.Results {
			if strings.EqualFold(r.Page.Domain, domain) || strings.HasSuffix(strings.ToLower(r.Page.Domain), "."+strings.ToLower(domain)) {
				urls = append(urls, r.Page.URL)
			}
		}
		return urls, nil
	}

	return nil, fmt.Errorf("credentialed header provider failed after %d attempts: %w", p.opts.Retries+1, lastErr)
}

// CredentialedQueryProvider discovers URLs from a search API that accepts
// its API key as a query parameter (modeled on VirusTotal's passive-DNS
// style endpoints).
type CredentialedQueryProvider struct {
	opts    Options
	rotator *apikey.Rotator
	baseURL string
}

// NewCredentialedQueryProvider builds the provider against baseURL (override
// in tests), drawing API keys from rotator.
func NewCredentialedQueryProvider(opts Options, rotator *apikey.Rotator, baseURL string) *CredentialedQueryProvider {
	if baseURL == "" {
		baseURL = "https://www.virustotal.com"
	}
	return &CredentialedQueryProvider{opts: opts, rotator: rotator, baseURL: baseURL}
}

func (p *CredentialedQueryProvider) Name() string   { return "vt" }
func (p *CredentialedQueryProvider) NeedsKey() bool { return true }

type queryProviderResponse struct {
	URLs []struct {
		URL string `json:"url"`
	} `json:"detected_urls"`
}

func (p *CredentialedQueryProvider) FetchURLs(ctx context.Context, domain string) ([]string, error) {
	key := apiKeyFor(p.rotator)
	if key == "" {
		return nil, nil
	}

	cfg := p.opts.clientConfig()
	client, err := cfg.BuildClient()
	if err != nil {
		return nil, fmt.Errorf("building credentialed client: %w", err)
	}

	reqURL := fmt.Sprintf("%s/vtapi/v2/domain/report?apikey=%s&domain=%s", p.baseURL, url.QueryEscape(key), url.QueryEscape(domain))

	text, err := network.GetWithRetry(client, cfg, reqURL, p.opts.Retries)
	if err != nil {
		return nil, fmt.Errorf("fetching credentialed query provider: %w", err)
	}

	var parsed queryProviderResponse
	if err := json.Unmarshal([]byte(text), &parsed); err != nil {
		return nil, fmt.Errorf("decoding credentialed query provider response: %w", err)
	}

	urls := make([]string, 0, len(parsed.URLs))
	for _, u := range parsed.URLs {
		urls = append(urls, u.URL)
	}
	return urls, nil
}
