package resilience

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func TestBreakerOpensAfterFailures(t *testing.T) {
	ctx := context.Background()
	b := NewBreaker(4, 0.5, 50*time.Millisecond)

	for i := 0; i < 4; i++ {
		if !b.Allow(ctx) {
			t.Fatalf("expected request %d allowed while closed", i)
		}
		b.Report(ctx, false)
	}

	if b.Allow(ctx) {
		t.Fatal("expected breaker to reject while open")
	}
}

func TestBreakerHalfOpenRecovery(t *testing.T) {
	ctx := context.Background()
	b := NewBreaker(1, 0.5, 10*time.Millisecond)

	b.Report(ctx, false)
	if b.Allow(ctx) {
		t.Fatal("expected breaker open after failure")
	}

	time.Sleep(15 * time.Millisecond)
	if !b.Allow(ctx) {
		t.Fatal("expected probe allowed after cool-off")
	}
	b.Report(ctx, true)
	if !b.Allow(ctx) {
		t.Fatal("expected breaker closed after successful probe")
	}
}

func TestBreakerHalfOpenFailureReopens(t *testing.T) {
	ctx := context.Background()
	b := NewBreaker(1, 0.5, 10*time.Millisecond)

	b.Report(ctx, false)
	time.Sleep(15 * time.Millisecond)
	if !b.Allow(ctx) {
		t.Fatal("expected probe allowed after cool-off")
	}
	b.Report(ctx, false)
	if b.Allow(ctx) {
		t.Fatal("expected breaker to reopen after failed probe")
	}
}

func TestBackoffGrowsExponentially(t *testing.T) {
	base := 100 * time.Millisecond
	if got := Backoff(base, 1, 0); got != base {
		t.Fatalf("attempt 1: got %s", got)
	}
	if got := Backoff(base, 2, 0); got != 2*base {
		t.Fatalf("attempt 2: got %s", got)
	}
	if got := Backoff(base, 3, 0); got != 4*base {
		t.Fatalf("attempt 3: got %s", got)
	}
}

func TestHTTPClientRetriesServerErrors(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := HTTPClient{
		Client:      srv.Client(),
		MaxAttempts: 2,
		BaseBackoff: time.Millisecond,
	}
	req, err := http.NewRequest(http.MethodGet, srv.URL, nil)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	resp, err := client.Do(context.Background(), req)
	if err != nil {
		t.Fatalf("do: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 after retry, got %d", resp.StatusCode)
	}
	if got := atomic.LoadInt32(&calls); got != 2 {
		t.Fatalf("expected 2 calls, got %d", got)
	}
}

func TestHTTPClientOpenCircuitUsesFallback(t *testing.T) {
	breaker := NewBreaker(1, 0.5, time.Minute)
	breaker.Report(context.Background(), false)

	fallbackCalled := false
	client := HTTPClient{
		Client:  &http.Client{},
		Breaker: breaker,
		Fallback: func(ctx context.Context, r *http.Request, err error) (*http.Response, error) {
			fallbackCalled = true
			return nil, err
		},
	}
	req, err := http.NewRequest(http.MethodGet, "http://127.0.0.1:0", nil)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if _, err := client.Do(context.Background(), req); err != ErrOpenCircuit {
		t.Fatalf("expected ErrOpenCircuit, got %v", err)
	}
	if !fallbackCalled {
		t.Fatal("expected fallback to run")
	}
}
