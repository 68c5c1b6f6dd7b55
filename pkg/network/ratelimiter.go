package network

import (
	"context"
	"time"

	"github.com/projectdiscovery/ratelimit"
)

// Limiter throttles outbound provider/tester requests to a configured
// requests-per-second cap. It is advisory and local to the component that
// holds it — not a system-wide limiter.
type Limiter struct {
	rl *ratelimit.Limiter
}

// NewLimiter builds a Limiter for the given requests-per-second cap. A
// non-positive rps disables throttling (Take is then a no-op).
func NewLimiter(ctx context.Context, rps float64) *Limiter {
	if rps <= 0 {
		return &Limiter{}
	}
	return &Limiter{rl: ratelimit.New(ctx, uint(rps), time.Second)}
}

// Take blocks until the next request is permitted under the configured rate.
func (l *Limiter) Take() {
	if l == nil || l.rl == nil {
		return
	}
	l.rl.Take()
}
