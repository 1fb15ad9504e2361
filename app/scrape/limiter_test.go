package scrape

import (
	"context"
	"testing"
	"time"
)

func TestHostLimiter_SpacesRequestsPerHost(t *testing.T) {
	limiter := NewHostLimiter(50 * time.Millisecond)
	ctx := context.Background()

	start := time.Now()
	if err := limiter.Wait(ctx, "https://example.com/a"); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if err := limiter.Wait(ctx, "https://example.com/b"); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if elapsed := time.Since(start); elapsed < 50*time.Millisecond {
		t.Errorf("Expected second request to the same host to wait, elapsed %v", elapsed)
	}
}

func TestHostLimiter_HostsAreIndependent(t *testing.T) {
	limiter := NewHostLimiter(time.Minute)
	ctx := context.Background()

	start := time.Now()
	if err := limiter.Wait(ctx, "https://first.example.com"); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if err := limiter.Wait(ctx, "https://second.example.com"); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("Different hosts should not wait on each other, elapsed %v", elapsed)
	}
}

func TestHostLimiter_CancelledContext(t *testing.T) {
	limiter := NewHostLimiter(time.Minute)

	ctx := context.Background()
	if err := limiter.Wait(ctx, "https://example.com"); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	cancelled, cancel := context.WithCancel(ctx)
	cancel()

	if err := limiter.Wait(cancelled, "https://example.com"); err == nil {
		t.Error("Expected error for cancelled context")
	}
}
