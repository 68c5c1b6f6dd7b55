package network

import (
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	retryablehttp "github.com/projectdiscovery/retryablehttp-go"
)

// ClientConfig centralizes the HTTP client settings shared by providers and
// testers: timeout, TLS verification, proxy, and User-Agent policy. A client
// built from a ClientConfig is treated as immutable after construction.
type ClientConfig struct {
	Timeout     time.Duration
	Insecure    bool
	RandomAgent bool
	Proxy       string
	ProxyAuth   string
}

// DefaultClientConfig mirrors the provider/tester defaults before any
// network-scope settings are applied.
func DefaultClientConfig() ClientConfig {
	return ClientConfig{Timeout: 30 * time.Second}
}

// BuildClient constructs a retryablehttp client whose own retry loop is
// disabled (RetryMax: 0) — retry semantics for this system are owned by
// GetWithRetry so that the linear back-off and attempt accounting described
// by the scheduler match across providers and testers.
func (c ClientConfig) BuildClient() (*retryablehttp.Client, error) {
	transport := &http.Transport{}

	if c.Insecure {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
	}

	if c.Proxy != "" {
		proxyURL, err := url.Parse(c.Proxy)
		if err != nil {
			return nil, fmt.Errorf("invalid proxy url %q: %w", c.Proxy, err)
		}
		if c.ProxyAuth != "" {
			user, pass, _ := strings.Cut(c.ProxyAuth, ":")
			proxyURL.User = url.UserPassword(user, pass)
		}
		transport.Proxy = http.ProxyURL(proxyURL)
	}

	options := retryablehttp.DefaultOptionsSingle
	options.Timeout = c.Timeout
	options.RetryMax = 0

	client := retryablehttp.NewClient(options)
	client.HTTPClient.Transport = transport

	return client, nil
}

// UserAgent returns the header value to attach to a request built from this
// configuration: a random UA when RandomAgent is set, empty otherwise (the
// caller's default transport UA applies).
func (c ClientConfig) UserAgent() string {
	if c.RandomAgent {
		return RandomUserAgent()
	}
	return ""
}

// AllAttemptsFailedError reports that GetWithRetry exhausted every attempt.
type AllAttemptsFailedError struct {
	Attempts  int
	LastError error
}

func (e *AllAttemptsFailedError) Error() string {
	return fmt.Sprintf("failed after %d attempts: %v", e.Attempts, e.LastError)
}

func (e *AllAttemptsFailedError) Unwrap() error { return e.LastError }

// GetWithRetry issues a GET request to url, retrying up to maxRetries
// additional times (total attempts = 1 + maxRetries) with a linear back-off
// of 500ms * attempt_index between attempts. Any transport error or
// non-2xx response is retryable. Returns the response body as text.
func GetWithRetry(client *retryablehttp.Client, cfg ClientConfig, targetURL string, maxRetries int) (string, error) {
	var lastErr error

	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			time.Sleep(time.Duration(500*attempt) * time.Millisecond)
		}

		req, err := retryablehttp.NewRequest(http.MethodGet, targetURL, nil)
		if err != nil {
			return "", fmt.Errorf("build request: %w", err)
		}
		if ua := cfg.UserAgent(); ua != "" {
			req.Header.Set("User-Agent", ua)
		}

		resp, err := client.Do(req)
		if err != nil {
			lastErr = err
			continue
		}

		body, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			lastErr = fmt.Errorf("http error: %s", resp.Status)
			continue
		}
		if readErr != nil {
			lastErr = readErr
			continue
		}

		return string(body), nil
	}

	return "", &AllAttemptsFailedError{Attempts: maxRetries + 1, LastError: lastErr}
}
