package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewKeySortsProviders(t *testing.T) {
	k := NewKey("example.com", []string{"wayback", "cc"}, Filters{})
	assert.Equal(t, []string{"cc", "wayback"}, k.Providers)
	assert.Equal(t, "example.com", k.Domain)
	assert.NotEmpty(t, k.FiltersHash)
}

func TestFiltersHashDiffersOnChange(t *testing.T) {
	a := Filters{Extensions: []string{"js"}}
	b := Filters{Extensions: []string{"php"}}
	assert.NotEqual(t, a.Hash(), b.Hash())
}

func TestFiltersHashStableForEquivalentValues(t *testing.T) {
	minLen := 10
	a := Filters{MinLength: &minLen, Strict: true}
	b := Filters{MinLength: &minLen, Strict: true}
	assert.Equal(t, a.Hash(), b.Hash())
}

func TestKeyStringIsDeterministic(t *testing.T) {
	k1 := NewKey("example.com", []string{"wayback"}, Filters{})
	k2 := NewKey("example.com", []string{"wayback"}, Filters{})
	assert.Equal(t, k1.String(), k2.String())
}

func TestEntryExpired(t *testing.T) {
	e := Entry{Timestamp: time.Now().Add(-2 * time.Hour)}
	assert.True(t, e.Expired(time.Hour))
	assert.False(t, e.Expired(3*time.Hour))
}
