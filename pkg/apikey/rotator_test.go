package apikey

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRotator(t *testing.T) {
	r := NewRotator([]string{"key1", "key2", "key3"})
	assert.Equal(t, 3, r.Len())
	assert.True(t, r.HasKeys())
}

func TestEmptyRotator(t *testing.T) {
	r := NewRotator(nil)
	assert.Equal(t, 0, r.Len())
	assert.False(t, r.HasKeys())

	_, ok := r.Next()
	assert.False(t, ok)
	_, ok = r.Current()
	assert.False(t, ok)
}

func TestSingleKeyRotation(t *testing.T) {
	r := NewRotator([]string{"single_key"})
	for i := 0; i < 5; i++ {
		key, ok := r.Next()
		require.True(t, ok)
		assert.Equal(t, "single_key", key)
	}
}

func TestMultipleKeyRotationOrder(t *testing.T) {
	r := NewRotator([]string{"key1", "key2", "key3"})

	want := []string{"key1", "key2", "key3", "key1", "key2"}
	for _, w := range want {
		got, ok := r.Next()
		require.True(t, ok)
		assert.Equal(t, w, got)
	}
}

func TestCurrentDoesNotAdvance(t *testing.T) {
	r := NewRotator([]string{"key1", "key2"})

	cur, ok := r.Current()
	require.True(t, ok)
	assert.Equal(t, "key1", cur)

	_, _ = r.Next()

	cur, ok = r.Current()
	require.True(t, ok)
	assert.Equal(t, "key2", cur)
	cur, ok = r.Current()
	require.True(t, ok)
	assert.Equal(t, "key2", cur)
}

func TestRotatorFairnessUnderConcurrency(t *testing.T) {
	keys := []string{"key1", "key2", "key3"}
	r := NewRotator(keys)

	const goroutines = 10
	const perGoroutine = 3

	var wg sync.WaitGroup
	counts := make(chan string, goroutines*perGoroutine)

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perGoroutine; j++ {
				if k, ok := r.Next(); ok {
					counts <- k
				}
			}
		}()
	}
	wg.Wait()
	close(counts)

	tally := map[string]int{}
	total := 0
	for k := range counts {
		tally[k]++
		total++
	}

	require.Equal(t, goroutines*perGoroutine, total)

	floor := total / len(keys)
	for _, k := range keys {
		assert.GreaterOrEqual(t, tally[k], floor)
	}
}
