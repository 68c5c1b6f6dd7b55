package provider

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hahwul/urx-sub000/pkg/apikey"
)

func testOptions() Options {
	return Options{Timeout: 5, Retries: 1}
}

func TestArchiveProviderName(t *testing.T) {
	p := NewArchiveProvider(testOptions())
	assert.Equal(t, "wayback", p.Name())
	assert.False(t, p.NeedsKey())
}

func TestParseCDXResponseSkipsHeaderRow(t *testing.T) {
	urls, err := parseCDXResponse(`[["original"],["https://example.com/b"],["https://example.com/a"]]`)
	require.NoError(t, err)
	assert.Equal(t, []string{"https://example.com/a", "https://example.com/b"}, urls)
}

func TestParseCDXResponseEmpty(t *testing.T) {
	urls, err := parseCDXResponse("   ")
	require.NoError(t, err)
	assert.Nil(t, urls)
}

func TestIndexProviderDefaultsIndex(t *testing.T) {
	p := NewIndexProvider(testOptions(), "")
	assert.Equal(t, DefaultCrawlIndex, p.index)
	assert.Equal(t, "cc", p.Name())
}

func TestParseIndexResponseDedupsAndSorts(t *testing.T) {
	urls := parseIndexResponse("{\"url\":\"https://example.com/two\"}\n{\"url\":\"https://example.com/one\"}\n{\"url\":\"https://example.com/one\"}\n")
	assert.Equal(t, []string{"https://example.com/one", "https://example.com/two"}, urls)
}

func TestParseRobotsTxt(t *testing.T) {
	text := "User-agent: *\nDisallow: /admin\nDisallow: /\nSitemap: https://example.com/sitemap.xml\n"
	urls := parseRobotsTxt(text, "https", "example.com")
	assert.Equal(t, []string{"https://example.com/admin", "https://example.com/sitemap.xml"}, urls)
}

func TestSitemapProviderParsesUrlSet(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<?xml version="1.0"?><urlset><url><loc>https://example.com/a</loc></url><url><loc>https://example.com/b</loc></url></urlset>`)
	}))
	defer srv.Close()

	p := NewSitemapProvider(testOptions())
	cfg := p.opts.clientConfig()
	client, err := cfg.BuildClient()
	require.NoError(t, err)

	urls, err := p.parseSitemap(client, cfg, srv.URL, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"https://example.com/a", "https://example.com/b"}, urls)
}

func TestSitemapProviderFollowsIndex(t *testing.T) {
	var nestedURL string
	mux := http.NewServeMux()
	mux.HandleFunc("/index.xml", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `<?xml version="1.0"?><sitemapindex><sitemap><loc>%s</loc></sitemap></sitemapindex>`, nestedURL)
	})
	mux.HandleFunc("/nested.xml", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<?xml version="1.0"?><urlset><url><loc>https://example.com/nested</loc></url></urlset>`)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()
	nestedURL = srv.URL + "/nested.xml"

	p := NewSitemapProvider(testOptions())
	cfg := p.opts.clientConfig()
	client, err := cfg.BuildClient()
	require.NoError(t, err)

	urls, err := p.parseSitemap(client, cfg, srv.URL+"/index.xml", 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"https://example.com/nested"}, urls)
}

func TestThreatFeedFormatURL(t *testing.T) {
	p := NewThreatFeedProvider(testOptions())
	assert.Contains(t, p.formatURL("example.com", 0), "/indicators/domain/example.com/url_list")

	p.opts.IncludeSubdomains = true
	assert.Contains(t, p.formatURL("sub.example.com", 0), "/indicators/domain/example.com/url_list")
}

func TestNextPageFromLinkHeader(t *testing.T) {
	next, ok := nextPageFromLinkHeader(`<https://otx.alienvault.com/api/v1/indicators/domain/example.com/url_list?limit=200&page=3>; rel="next"`)
	assert.True(t, ok)
	assert.Equal(t, 3, next)

	_, ok = nextPageFromLinkHeader("")
	assert.False(t, ok)
}

func TestCredentialedHeaderProviderSkipsWithNoKeys(t *testing.T) {
	rotator := apikey.NewRotator(nil)
	p := NewCredentialedHeaderProvider(testOptions(), rotator, "")
	urls, err := p.FetchURLs(context.Background(), "example.com")
	require.NoError(t, err)
	assert.Nil(t, urls)
}

func TestCredentialedHeaderProviderUsesApiKeyHeader(t *testing.T) {
	var gotKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("API-Key")
		fmt.Fprint(w, `{"results":[{"page":{"domain":"example.com","url":"https://example.com/x"}}],"has_more":false}`)
	}))
	defer srv.Close()

	rotator := apikey.NewRotator([]string{"secret-key"})
	p := NewCredentialedHeaderProvider(testOptions(), rotator, srv.URL)

	urls, err := p.FetchURLs(context.Background(), "example.com")
	require.NoError(t, err)
	assert.Equal(t, "secret-key", gotKey)
	assert.Equal(t, []string{"https://example.com/x"}, urls)
}

func TestCredentialedQueryProviderSkipsWithNoKeys(t *testing.T) {
	rotator := apikey.NewRotator(nil)
	p := NewCredentialedQueryProvider(testOptions(), rotator, "")
	urls, err := p.FetchURLs(context.Background(), "example.com")
	require.NoError(t, err)
	assert.Nil(t, urls)
}

func TestCredentialedQueryProviderUsesApiKeyParam(t *testing.T) {
	var gotKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.URL.Query().Get("apikey")
		fmt.Fprint(w, `{"detected_urls":[{"url":"https://example.com/y"}]}`)
	}))
	defer srv.Close()

	rotator := apikey.NewRotator([]string{"vt-key"})
	p := NewCredentialedQueryProvider(testOptions(), rotator, srv.URL)

	urls, err := p.FetchURLs(context.Background(), "example.com")
	require.NoError(t, err)
	assert.Equal(t, "vt-key", gotKey)
	assert.Equal(t, []string{"https://example.com/y"}, urls)
}

func TestRegistrySelectDefaultsToNonKeyed(t *testing.T) {
	reg := NewRegistry(
		NewArchiveProvider(testOptions()),
		NewCredentialedHeaderProvider(testOptions(), apikey.NewRotator(nil), ""),
	)
	selected := reg.Select(nil)
	require.Len(t, selected, 1)
	assert.Equal(t, "wayback", selected[0].Name())
}

func TestRegistrySelectByName(t *testing.T) {
	reg := NewRegistry(
		NewArchiveProvider(testOptions()),
		NewIndexProvider(testOptions(), ""),
	)
	selected := reg.Select([]string{"cc"})
	require.Len(t, selected, 1)
	assert.Equal(t, "cc", selected[0].Name())
}
