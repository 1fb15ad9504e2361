package fetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func newTestFetcher(retries int) *Fetcher {
	f := NewFetcher("test-agent", 2*time.Second, retries)
	f.retryPause = time.Millisecond
	return f
}

func TestFetcher_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ua := r.Header.Get("User-Agent"); ua != "test-agent" {
			t.Errorf("Expected custom user agent, got %q", ua)
		}
		w.Write([]byte("<html>schedule</html>"))
	}))
	defer server.Close()

	html, err := newTestFetcher(3).Fetch(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if html != "<html>schedule</html>" {
		t.Errorf("Unexpected body: %q", html)
	}
}

func TestFetcher_StatusErrorIsTerminal(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	_, err := newTestFetcher(3).Fetch(context.Background(), server.URL)

	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("Expected StatusError, got %v", err)
	}
	if statusErr.Code != http.StatusForbidden {
		t.Errorf("Expected code 403, got %d", statusErr.Code)
	}
	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Errorf("Status errors should not be retried, got %d attempts", got)
	}
}

func TestFetcher_ConnectionErrorsAreRetried(t *testing.T) {
	// A closed server refuses connections, which is the retryable class.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	_, err := newTestFetcher(2).Fetch(context.Background(), url)
	if err == nil {
		t.Fatal("Expected error after exhausting retries")
	}
	var statusErr *StatusError
	if errors.As(err, &statusErr) || errors.Is(err, ErrTimeout) {
		t.Errorf("Expected a connection error, got %v", err)
	}
}

func TestFetcher_RecoversAfterTransientFailure(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			// Drop the first connection mid-request.
			conn, _, err := w.(http.Hijacker).Hijack()
			if err == nil {
				conn.Close()
			}
			return
		}
		w.Write([]byte("ok"))
	}))
	defer server.Close()

	html, err := newTestFetcher(3).Fetch(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Expected retry to succeed, got %v", err)
	}
	if html != "ok" {
		t.Errorf("Unexpected body: %q", html)
	}
}

func TestFetcher_ContextCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(time.Second)
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := newTestFetcher(3).Fetch(ctx, server.URL); err == nil {
		t.Error("Expected error for cancelled context")
	}
}

func TestStatusError_Message(t *testing.T) {
	err := &StatusError{Code: 404}
	if err.Error() != "HTTP 404" {
		t.Errorf("Unexpected message: %q", err.Error())
	}
}
