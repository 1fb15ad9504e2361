package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"time"
)

const maxRedirects = 10

// Fetcher retrieves raw HTML from tournament listing sites. Connection-level
// errors are retried with a fixed pause; HTTP status errors and timeouts are
// terminal.
type Fetcher struct {
	client     *http.Client
	userAgent  string
	retries    int
	retryPause time.Duration
}

func NewFetcher(userAgent string, timeout time.Duration, retries int) *Fetcher {
	return &Fetcher{
		client: &http.Client{
			Timeout: timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= maxRedirects {
					return fmt.Errorf("stopped after %d redirects", maxRedirects)
				}
				return nil
			},
		},
		userAgent:  userAgent,
		retries:    retries,
		// Retries hit the same host again without going back through the
		// caller's per-host limiter; this pause is the only spacing between
		// attempts, so keep it at least a second.
		retryPause: time.Second,
	}
}

// Fetch performs a GET and returns the response body as a string.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	var lastErr error

	for attempt := 0; attempt <= f.retries; attempt++ {
		if attempt > 0 {
			slog.Debug("Retrying fetch", "url", url, "attempt", attempt)
			select {
			case <-time.After(f.retryPause):
			case <-ctx.Done():
				return "", ctx.Err()
			}
		}

		html, err := f.fetchOnce(ctx, url)
		if err == nil {
			return html, nil
		}
		lastErr = err

		// Only connection-level failures are worth a retry.
		var statusErr *StatusError
		if errors.As(err, &statusErr) || errors.Is(err, ErrTimeout) || ctx.Err() != nil {
			return "", err
		}
	}

	return "", fmt.Errorf("failed to fetch %s: %w", url, lastErr)
}

func (f *Fetcher) fetchOnce(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := f.client.Do(req)
	if err != nil {
		var netErr net.Error
		if errors.As(err, &netErr) && netErr.Timeout() {
			return "", ErrTimeout
		}
		return "", fmt.Errorf("connection error: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", &StatusError{Code: resp.StatusCode}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}

	return string(data), nil
}
