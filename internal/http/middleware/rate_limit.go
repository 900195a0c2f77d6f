package middleware

import (
	"net/http"

	"github.com/rogerio-castellano/warehouse-inventory/internal/http/ban"
	rl "github.com/rogerio-castellano/warehouse-inventory/internal/http/rate_limiter"
	"github.com/rogerio-castellano/warehouse-inventory/internal/logger"
)

// RateLimit answers 429 once a client exhausts its bucket. With a tracker,
// repeated rejections ban the client and banned clients get 403.
func RateLimit(limiter *rl.Limiter, tracker ban.Tracker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := rl.ClientIP(r)

			if tracker != nil {
				banned, err := tracker.IsBanned(r.Context(), ip)
				if err != nil {
					logger.Error(r.Context()).Err(err).Msg("ban lookup failed")
				}
				if banned {
					writeError(w, r, http.StatusForbidden, "too many requests, try again later")
					return
				}
			}

			if !limiter.Allow(ip) {
				if tracker != nil {
					if _, err := tracker.Strike(r.Context(), ip, r.URL.Path); err != nil {
						logger.Error(r.Context()).Err(err).Msg("failed to record strike")
					}
				}
				writeError(w, r, http.StatusTooManyRequests, "rate limit exceeded")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
