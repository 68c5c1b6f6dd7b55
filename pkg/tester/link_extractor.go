package tester

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/projectdiscovery/retryablehttp-go"
)

// LinkExtractor fetches a URL and harvests every anchor href on the page,
// resolving relative links against the page's own URL.
type LinkExtractor struct {
	opts Options
}

// NewLinkExtractor builds a LinkExtractor from opts.
func NewLinkExtractor(opts Options) *LinkExtractor {
	return &LinkExtractor{opts: opts}
}

func (l *LinkExtractor) TestURL(ctx context.Context, targetURL string) ([]string, error) {
	base, err := url.Parse(targetURL)
	if err != nil {
		return nil, fmt.Errorf("parsing url %s: %w", targetURL, err)
	}

	cfg := l.opts.clientConfig()
	client, err := cfg.BuildClient()
	if err != nil {
		return nil, fmt.Errorf("building link extractor client: %w", err)
	}

	var lastErr error
	for attempt := 0; attempt <= l.opts.Retries; attempt++ {
		if attempt > 0 {
			time.Sleep(time.Duration(500*attempt) * time.Millisecond)
		}

		req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, targetURL, nil)
		if err != nil {
			return nil, fmt.Errorf("building link request: %w", err)
		}
		if ua := cfg.UserAgent(); ua != "" {
			req.Header.Set("User-Agent", ua)
		}

		l.opts.take()
		resp, err := client.Do(req)
		if err != nil {
			lastErr = err
			continue
		}

		links, err := extractLinks(resp.Body, base)
		resp.Body.Close()
		if err != nil {
			lastErr = err
			continue
		}
		return links, nil
	}

	return nil, fmt.Errorf("extracting links from %s: %w", targetURL, lastErr)
}

func extractLinks(body io.Reader, base *url.URL) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		return nil, fmt.Errorf("parsing html: %w", err)
	}

	var links []string
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, ok := sel.Attr("href")
		if !ok {
			return
		}
		ref, err := url.Parse(href)
		if err != nil {
			return
		}
		links = append(links, base.ResolveReference(ref).String())
	})

	return links, nil
}
