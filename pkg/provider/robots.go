package provider

import (
	"context"
	"fmt"
	"strings"

	"github.com/hahwul/urx-sub000/pkg/network"
)

// RobotsProvider discovers URLs named in a domain's robots.txt: every
// Disallow path is turned into an absolute URL, and every Sitemap directive
// is returned verbatim so the caller can hand it to SitemapProvider.
type RobotsProvider struct {
	opts Options
}

// NewRobotsProvider builds a RobotsProvider from opts.
func NewRobotsProvider(opts Options) *RobotsProvider {
	return &RobotsProvider{opts: opts}
}

func (p *RobotsProvider) Name() string   { return "robots" }
func (p *RobotsProvider) NeedsKey() bool { return false }

func (p *RobotsProvider) FetchURLs(ctx context.Context, domain string) ([]string, error) {
	cfg := p.opts.clientConfig()
	client, err := cfg.BuildClient()
	if err != nil {
		return nil, fmt.Errorf("building robots client: %w", err)
	}

	p.opts.take(ctx)

	scheme := "https"
	text, err := network.GetWithRetry(client, cfg, fmt.Sprintf("https://%s/robots.txt", domain), p.opts.Retries)
	if err != nil {
		scheme = "http"
		text, err = network.GetWithRetry(client, cfg, fmt.Sprintf("http://%s/robots.txt", domain), p.opts.Retries)
		if err != nil {
			return nil, nil
		}
	}

	return parseRobotsTxt(text, scheme, domain), nil
}

// parseRobotsTxt turns every Disallow directive into an absolute URL under
// scheme://domain, and passes every Sitemap directive through verbatim.
func parseRobotsTxt(text, scheme, domain string) []string {
	var urls []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(line, "Disallow:"):
			path := strings.TrimSpace(strings.TrimPrefix(line, "Disallow:"))
			if path != "" && path != "/" {
				urls = append(urls, fmt.Sprintf("%s://%s%s", scheme, domain, path))
			}
		case strings.HasPrefix(line, "Sitemap:"):
			link := strings.TrimSpace(strings.TrimPrefix(line, "Sitemap:"))
			if link != "" {
				urls = append(urls, link)
			}
		}
	}
	return urls
}
