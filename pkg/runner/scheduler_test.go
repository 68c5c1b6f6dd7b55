package runner

import (
	"context"
	"errors"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hahwul/urx-sub000/pkg/provider"
)

type fakeProvider struct {
	name string
	urls []string
	err  error
}

func (f *fakeProvider) Name() string   { return f.name }
func (f *fakeProvider) NeedsKey() bool { return false }
func (f *fakeProvider) FetchURLs(_ context.Context, _ string) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.urls, nil
}

func TestFanOutDedupsAcrossProviders(t *testing.T) {
	providers := []provider.Provider{
		&fakeProvider{name: "a", urls: []string{"https://example.com/1", "https://example.com/2"}},
		&fakeProvider{name: "b", urls: []string{"https://example.com/2", "https://example.com/3"}},
	}

	results := fanOut(context.Background(), []string{"example.com"}, providers, false, true)
	require.Len(t, results, 1)

	urls := results[0].URLs
	sort.Strings(urls)
	assert.Equal(t, []string{"https://example.com/1", "https://example.com/2", "https://example.com/3"}, urls)
}

func TestFanOutSkipsFailingProvider(t *testing.T) {
	providers := []provider.Provider{
		&fakeProvider{name: "a", urls: []string{"https://example.com/1"}},
		&fakeProvider{name: "b", err: errors.New("boom")},
	}

	results := fanOut(context.Background(), []string{"example.com"}, providers, false, true)
	require.Len(t, results, 1)
	assert.Equal(t, []string{"https://example.com/1"}, results[0].URLs)
}

func TestFanOutMultipleDomainsIndependent(t *testing.T) {
	providers := []provider.Provider{
		&fakeProvider{name: "a", urls: []string{"https://x.com/1"}},
	}

	results := fanOut(context.Background(), []string{"x.com", "y.com"}, providers, false, true)
	require.Len(t, results, 2)
	assert.Equal(t, "x.com", results[0].Domain)
	assert.Equal(t, "y.com", results[1].Domain)
}
