// Package cache stores provider results keyed by scan configuration, so a
// repeated scan with the same domain, provider set, and filters can skip
// the network round trip entirely.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Filters captures every filter setting that affects a scan's output, so
// two scans that differ only in, say, min-length produce different cache
// entries.
type Filters struct {
	Subs              bool
	Extensions        []string
	ExcludeExtensions []string
	Patterns          []string
	ExcludePatterns   []string
	Presets           []string
	MinLength         *int
	MaxLength         *int
	Strict            bool
	NormalizeURL      bool
	MergeEndpoint     bool
}

// Hash returns a stable SHA-256 digest of the filter configuration.
func (f Filters) Hash() string {
	h := sha256.New()
	h.Write([]byte(boolDigit(f.Subs)))
	h.Write([]byte(strings.Join(f.Extensions, ",")))
	h.Write([]byte(strings.Join(f.ExcludeExtensions, ",")))
	h.Write([]byte(strings.Join(f.Patterns, ",")))
	h.Write([]byte(strings.Join(f.ExcludePatterns, ",")))
	h.Write([]byte(strings.Join(f.Presets, ",")))
	h.Write([]byte(intPtrString(f.MinLength)))
	h.Write([]byte(intPtrString(f.MaxLength)))
	h.Write([]byte(boolDigit(f.Strict)))
	h.Write([]byte(boolDigit(f.NormalizeURL)))
	h.Write([]byte(boolDigit(f.MergeEndpoint)))
	return hex.EncodeToString(h.Sum(nil))
}

func boolDigit(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

func intPtrString(p *int) string {
	if p == nil {
		return ""
	}
	return strconv.Itoa(*p)
}

// Key uniquely identifies a scan configuration: a domain, a sorted
// provider list, and the hash of its filter settings.
type Key struct {
	Domain      string
	Providers   []string
	FiltersHash string
}

// NewKey builds a Key, sorting providers for a stable ordering regardless
// of the order they were passed on the CLI.
func NewKey(domain string, providers []string, filters Filters) Key {
	sorted := cloneSorted(providers)
	return Key{
		Domain:      domain,
		Providers:   sorted,
		FiltersHash: filters.Hash(),
	}
}

func cloneSorted(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	sort.Strings(out)
	return out
}

// String renders the Key as the SHA-256 hex digest backends use as their
// storage key.
func (k Key) String() string {
	h := sha256.New()
	h.Write([]byte(k.Domain))
	h.Write([]byte(strings.Join(k.Providers, ",")))
	h.Write([]byte(k.FiltersHash))
	return hex.EncodeToString(h.Sum(nil))
}

// Entry is the cached payload: the discovered URLs and when they were
// collected.
type Entry struct {
	URLs      []string
	Timestamp time.Time
}

// NewEntry stamps urls with the current time.
func NewEntry(urls []string) Entry {
	return Entry{URLs: urls, Timestamp: time.Now()}
}

// Expired reports whether the entry is at least ttl old.
func (e Entry) Expired(ttl time.Duration) bool {
	return time.Since(e.Timestamp) >= ttl
}

// Backend is the storage interface a cache implementation satisfies.
// SqliteCache and RedisCache are the two backends urx ships.
type Backend interface {
	Get(ctx context.Context, key Key) (*Entry, error)
	Set(ctx context.Context, key Key, entry Entry) error
	Delete(ctx context.Context, key Key) error
	CleanupExpired(ctx context.Context, ttl time.Duration) error
	Exists(ctx context.Context, key Key) (bool, error)
}
