// Package rate_limiter throttles clients per remote address.
package rate_limiter

import (
	"context"
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	cleanupInterval = time.Minute
	idleTTL         = 5 * time.Minute
)

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// Limiter hands out one token bucket per client.
type Limiter struct {
	rps   rate.Limit
	burst int
	now   func() time.Time

	mu       sync.Mutex
	visitors map[string]*clientLimiter
}

func NewLimiter(rps float64, burst int) *Limiter {
	return &Limiter{
		rps:      rate.Limit(rps),
		burst:    burst,
		now:      time.Now,
		visitors: make(map[string]*clientLimiter),
	}
}

// Allow reports whether client may make one more request now.
func (l *Limiter) Allow(client string) bool {
	return l.visitor(client).AllowN(l.now(), 1)
}

func (l *Limiter) visitor(client string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	v, exists := l.visitors[client]
	if !exists {
		v = &clientLimiter{limiter: rate.NewLimiter(l.rps, l.burst)}
		l.visitors[client] = v
	}
	v.lastSeen = l.now()
	return v.limiter
}

// Cleanup forgets clients idle for longer than five minutes, once a minute,
// until ctx is done.
func (l *Limiter) Cleanup(ctx context.Context) {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			l.evictIdle()
		}
	}
}

func (l *Limiter) evictIdle() {
	l.mu.Lock()
	defer l.mu.Unlock()
	for ip, v := range l.visitors {
		if l.now().Sub(v.lastSeen) > idleTTL {
			delete(l.visitors, ip)
		}
	}
}

// Reset forgets every client.
func (l *Limiter) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.visitors = make(map[string]*clientLimiter)
}

// ClientIP is the host part of r.RemoteAddr.
func ClientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
