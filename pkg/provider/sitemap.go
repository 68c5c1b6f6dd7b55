package provider

import (
	"context"
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/projectdiscovery/retryablehttp-go"

	"github.com/hahwul/urx-sub000/pkg/network"
)

// SitemapProvider discovers URLs declared in a domain's sitemap.xml,
// sitemap_index.xml, or sitemap.txt, recursing into any nested sitemap
// index files it encounters.
type SitemapProvider struct {
	opts Options
}

// NewSitemapProvider builds a SitemapProvider from opts.
func NewSitemapProvider(opts Options) *SitemapProvider {
	return &SitemapProvider{opts: opts}
}

func (p *SitemapProvider) Name() string   { return "sitemap" }
func (p *SitemapProvider) NeedsKey() bool { return false }

type sitemapIndex struct {
	XMLName  xml.Name `xml:"sitemapindex"`
	Sitemaps []struct {
		Loc string `xml:"loc"`
	} `xml:"sitemap"`
}

type urlSet struct {
	XMLName xml.Name `xml:"urlset"`
	URLs    []struct {
		Loc string `xml:"loc"`
	} `xml:"url"`
}

func (p *SitemapProvider) FetchURLs(ctx context.Context, domain string) ([]string, error) {
	cfg := p.opts.clientConfig()
	client, err := cfg.BuildClient()
	if err != nil {
		return nil, fmt.Errorf("building sitemap client: %w", err)
	}

	candidates := []string{
		fmt.Sprintf("https://%s/sitemap.xml", domain),
		fmt.Sprintf("https://%s/sitemap_index.xml", domain),
		fmt.Sprintf("https://%s/sitemap.txt", domain),
		fmt.Sprintf("http://%s/sitemap.xml", domain),
		fmt.Sprintf("http://%s/sitemap_index.xml", domain),
		fmt.Sprintf("http://%s/sitemap.txt", domain),
	}

	var urls []string
	for _, candidate := range candidates {
		p.opts.take(ctx)
		found, err := p.parseSitemap(client, cfg, candidate, 0)
		if err != nil {
			continue
		}
		urls = append(urls, found...)
	}

	return urls, nil
}

const maxSitemapRecursion = 5

func (p *SitemapProvider) parseSitemap(client *retryablehttp.Client, cfg network.ClientConfig, sitemapURL string, depth int) ([]string, error) {
	if depth > maxSitemapRecursion {
		return nil, nil
	}

	text, err := network.GetWithRetry(client, cfg, sitemapURL, p.opts.Retries)
	if err != nil {
		return nil, err
	}

	var index sitemapIndex
	if err := xml.Unmarshal([]byte(text), &index); err == nil && len(index.Sitemaps) > 0 {
		var urls []string
		for _, s := range index.Sitemaps {
			if s.Loc == "" {
				continue
			}
			nested, err := p.parseSitemap(client, cfg, s.Loc, depth+1)
			if err != nil {
				continue
			}
			urls = append(urls, nested...)
		}
		return urls, nil
	}

	var set urlSet
	if err := xml.Unmarshal([]byte(text), &set); err == nil && len(set.URLs) > 0 {
		urls := make([]string, 0, len(set.URLs))
		for _, u := range set.URLs {
			if u.Loc != "" {
				urls = append(urls, u.Loc)
			}
		}
		return urls, nil
	}

	var urls []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "http") {
			urls = append(urls, line)
		}
	}
	return urls, nil
}
