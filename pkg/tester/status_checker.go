package tester

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/projectdiscovery/retryablehttp-go"
)

// StatusChecker issues a GET against each URL and reports its HTTP status
// line, formatted as "{url} - {code} {reason}".
type StatusChecker struct {
	opts Options
}

// NewStatusChecker builds a StatusChecker from opts.
func NewStatusChecker(opts Options) *StatusChecker {
	return &StatusChecker{opts: opts}
}

func (s *StatusChecker) TestURL(ctx context.Context, targetURL string) ([]string, error) {
	cfg := s.opts.clientConfig()
	client, err := cfg.BuildClient()
	if err != nil {
		return nil, fmt.Errorf("building status checker client: %w", err)
	}

	var lastErr error
	for attempt := 0; attempt <= s.opts.Retries; attempt++ {
		if attempt > 0 {
			time.Sleep(time.Duration(500*attempt) * time.Millisecond)
		}

		req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, targetURL, nil)
		if err != nil {
			return nil, fmt.Errorf("building status request: %w", err)
		}
		if ua := cfg.UserAgent(); ua != "" {
			req.Header.Set("User-Agent", ua)
		}

		s.opts.take()
		resp, err := client.Do(req)
		if err != nil {
			lastErr = err
			continue
		}
		resp.Body.Close()

		statusText := fmt.Sprintf("%d %s", resp.StatusCode, http.StatusText(resp.StatusCode))
		return []string{fmt.Sprintf("%s - %s", targetURL, statusText)}, nil
	}

	return nil, fmt.Errorf("checking status for %s: %w", targetURL, lastErr)
}
