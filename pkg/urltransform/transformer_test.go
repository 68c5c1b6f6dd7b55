package urltransform

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeTrimsTrailingSlashAndSortsQuery(t *testing.T) {
	tr := New().WithNormalizeURL(true)
	out := tr.Transform([]string{"https://example.com/path/?b=2&a=1"})
	assert.Equal(t, []string{"https://example.com/path?a=1&b=2"}, out)
}

func TestNormalizeKeepsRootSlash(t *testing.T) {
	tr := New().WithNormalizeURL(true)
	out := tr.Transform([]string{"https://example.com/"})
	assert.Equal(t, []string{"https://example.com/"}, out)
}

func TestMergeEndpointsUnionsParams(t *testing.T) {
	tr := New().WithMergeEndpoint(true)
	out := tr.Transform([]string{
		"https://example.com/api?param1=value1",
		"https://example.com/api?param2=value2",
		"https://example.com/api?param3=value3",
		"https://other.com/path",
	})
	assert.Contains(t, out, "https://other.com/path")

	found := false
	for _, u := range out {
		if u == "https://example.com/api?param1=value1&param2=value2&param3=value3" {
			found = true
		}
	}
	assert.True(t, found, "expected merged endpoint with all three params, got %v", out)
}

func TestShowOnlyHost(t *testing.T) {
	tr := New().WithShowOnlyHost(true)
	out := tr.Transform([]string{"https://example.com/a", "https://example.com/b", "https://other.com/c"})
	assert.Equal(t, []string{"example.com", "other.com"}, out)
}

func TestShowOnlyPathDropsRoot(t *testing.T) {
	tr := New().WithShowOnlyPath(true)
	out := tr.Transform([]string{"https://example.com/", "https://example.com/a"})
	assert.Equal(t, []string{"/a"}, out)
}

func TestShowOnlyParamDropsNoQuery(t *testing.T) {
	tr := New().WithShowOnlyParam(true)
	out := tr.Transform([]string{"https://example.com/a?x=1", "https://example.com/b"})
	assert.Equal(t, []string{"x=1"}, out)
}

func TestMergeEndpointsSortsParamsWithinSingleURL(t *testing.T) {
	tr := New().WithMergeEndpoint(true)
	for i := 0; i < 20; i++ {
		out := tr.Transform([]string{"https://example.com/api?z=1&a=2&m=3"})
		assert.Equal(t, []string{"https://example.com/api?a=2&m=3&z=1"}, out)
	}
}

func TestNormalizeBeforeMerge(t *testing.T) {
	tr := New().WithNormalizeURL(true).WithMergeEndpoint(true)
	out := tr.Transform([]string{
		"https://example.com/api/?a=1",
		"https://example.com/api?b=2",
	})
	assert.Equal(t, []string{"https://example.com/api?a=1&b=2"}, out)
}
