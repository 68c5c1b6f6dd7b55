package tester

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusCheckerReturnsStatusLine(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	defer srv.Close()

	sc := NewStatusChecker(Options{Timeout: 5})
	lines, err := sc.TestURL(context.Background(), srv.URL)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, srv.URL+" - 418 I'm a teapot", lines[0])
}

func TestStatusCheckerRetriesOnFailure(t *testing.T) {
	sc := NewStatusChecker(Options{Timeout: 1, Retries: 1})
	_, err := sc.TestURL(context.Background(), "http://127.0.0.1:1")
	assert.Error(t, err)
}

func TestLinkExtractorResolvesRelativeLinks(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body><a href="/about">about</a><a href="https://other.example.com/x">x</a></body></html>`))
	}))
	defer srv.Close()

	le := NewLinkExtractor(Options{Timeout: 5})
	links, err := le.TestURL(context.Background(), srv.URL+"/page")
	require.NoError(t, err)
	assert.Contains(t, links, srv.URL+"/about")
	assert.Contains(t, links, "https://other.example.com/x")
}

func TestLinkExtractorSkipsUnparsableHref(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body><a href="%zz">bad</a><a href="/ok">ok</a></body></html>`))
	}))
	defer srv.Close()

	le := NewLinkExtractor(Options{Timeout: 5})
	links, err := le.TestURL(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, []string{srv.URL + "/ok"}, links)
}
