package rate_limiter

import (
	"net/http/httptest"
	"testing"
	"time"
)

func TestLimiter_BurstThenReject(t *testing.T) {
	l := NewLimiter(1, 3)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }

	for i := range 3 {
		if !l.Allow("10.0.0.1") {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}
	if l.Allow("10.0.0.1") {
		t.Error("fourth request within the same instant should be rejected")
	}
	if !l.Allow("10.0.0.2") {
		t.Error("other clients have their own bucket")
	}

	now = now.Add(time.Second)
	if !l.Allow("10.0.0.1") {
		t.Error("a token should be refilled after one second")
	}
}

func TestLimiter_EvictIdle(t *testing.T) {
	l := NewLimiter(1, 1)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }

	l.Allow("a")
	now = now.Add(4 * time.Minute)
	l.Allow("b")
	now = now.Add(2 * time.Minute)
	l.evictIdle()

	if _, ok := l.visitors["a"]; ok {
		t.Error("expected idle client to be evicted")
	}
	if _, ok := l.visitors["b"]; !ok {
		t.Error("expected recent client to be kept")
	}
}

func TestClientIP(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	r.RemoteAddr = "192.0.2.7:5555"
	if got := ClientIP(r); got != "192.0.2.7" {
		t.Errorf("expected 192.0.2.7, got %q", got)
	}
	r.RemoteAddr = "no-port"
	if got := ClientIP(r); got != "no-port" {
		t.Errorf("expected raw address, got %q", got)
	}
}
