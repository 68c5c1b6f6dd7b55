package apikey

import "sync/atomic"

// Rotator is a thread-safe round-robin reader over a fixed key list. Next
// atomically advances a counter so that parallel callers each observe a
// distinct slot within any window of len(keys) consecutive calls.
type Rotator struct {
	keys    []string
	counter atomic.Uint64
}

// NewRotator creates a rotator over the given keys. The key list is fixed
// for the rotator's lifetime.
func NewRotator(keys []string) *Rotator {
	cp := make([]string, len(keys))
	copy(cp, keys)
	return &Rotator{keys: cp}
}

// Next atomically fetches-and-increments the counter and returns the key at
// that slot, or ("", false) if the rotator holds no keys.
func (r *Rotator) Next() (string, bool) {
	if len(r.keys) == 0 {
		return "", false
	}
	idx := r.counter.Add(1) - 1
	return r.keys[idx%uint64(len(r.keys))], true
}

// Current returns the key at the counter's present position without
// advancing it.
func (r *Rotator) Current() (string, bool) {
	if len(r.keys) == 0 {
		return "", false
	}
	idx := r.counter.Load()
	return r.keys[idx%uint64(len(r.keys))], true
}

// HasKeys reports whether the rotator holds any keys.
func (r *Rotator) HasKeys() bool {
	return len(r.keys) > 0
}

// Len returns the number of keys held by the rotator.
func (r *Rotator) Len() int {
	return len(r.keys)
}
