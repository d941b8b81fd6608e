package ratelimiter

import (
	"net/http/httptest"
	"testing"
)

func TestAllowExhaustsBurst(t *testing.T) {
	rl := New(Options{
		MaxRatePerSecond: 1,
		MaxBurst:         3,
	})

	for i := 0; i < 3; i++ {
		if !rl.Allow("client-a") {
			t.Fatalf("request %d should be within the burst", i+1)
		}
	}

	if rl.Allow("client-a") {
		t.Fatal("burst exhausted, request should be denied")
	}
}

func TestAllowIsPerSource(t *testing.T) {
	rl := New(Options{
		MaxRatePerSecond: 1,
		MaxBurst:         1,
	})

	if !rl.Allow("client-a") {
		t.Fatal("first request for client-a should pass")
	}
	if rl.Allow("client-a") {
		t.Fatal("client-a is drained")
	}
	if !rl.Allow("client-b") {
		t.Fatal("client-b has its own bucket")
	}
}

func TestRemainingCountsDown(t *testing.T) {
	rl := New(Options{
		MaxRatePerSecond: 1,
		MaxBurst:         5,
	})

	if got := rl.Remaining("client-a"); got != 5 {
		t.Fatalf("fresh bucket should be full, got %d", got)
	}

	rl.Allow("client-a")
	rl.Allow("client-a")

	if got := rl.Remaining("client-a"); got != 3 {
		t.Fatalf("expected 3 remaining, got %d", got)
	}
}

func TestGetSourceKeyPrefersHeader(t *testing.T) {
	rl := New(Options{
		MaxRatePerSecond: 1,
		SourceHeaderKey:  "X-Forwarded-For",
	})

	r := httptest.NewRequest("GET", "/", nil)
	r.RemoteAddr = "10.0.0.1:1234"

	if got := rl.GetSourceKey(r); got != "10.0.0.1:1234" {
		t.Fatalf("expected the remote addr fallback, got %q", got)
	}

	r.Header.Set("X-Forwarded-For", "203.0.113.7")
	if got := rl.GetSourceKey(r); got != "203.0.113.7" {
		t.Fatalf("expected the header value, got %q", got)
	}
}

func TestMaxBurstDefaultsToRate(t *testing.T) {
	rl := New(Options{MaxRatePerSecond: 7})

	if got := rl.GetMaxBurst(); got != 7 {
		t.Fatalf("expected burst to default to the rate, got %d", got)
	}
}
