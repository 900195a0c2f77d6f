// Package middleware holds the HTTP middleware chain of the API server.
package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rogerio-castellano/warehouse-inventory/internal/auth"
	"github.com/rogerio-castellano/warehouse-inventory/internal/http/handlers"
	"github.com/rogerio-castellano/warehouse-inventory/internal/logger"
)

const RequestIDHeader = "X-Request-ID"

// responseWriter captures the status code written by the next handler.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Unwrap() http.ResponseWriter {
	return rw.ResponseWriter
}

func wrap(w http.ResponseWriter) *responseWriter {
	if rw, ok := w.(*responseWriter); ok {
		return rw
	}
	return &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, message string) {
	handlers.RespondError(w, r, status, message)
}

// RequestID reuses the caller's X-Request-ID or makes one, echoes it back and
// puts a logger tagged with it in the request context.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, requestID)

		l := logger.Logger.With().Str("request_id", requestID).Logger()
		next.ServeHTTP(w, r.WithContext(logger.NewContext(r.Context(), l)))
	})
}

// Logging logs one line per request.
func Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := wrap(w)
		next.ServeHTTP(rw, r)

		event := logger.Info(r.Context())
		if rw.statusCode >= http.StatusInternalServerError {
			event = logger.Error(r.Context())
		}
		event.
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", rw.statusCode).
			Dur("duration", time.Since(start)).
			Msg("http request")
	})
}

// Recovery turns a panic into a 500.
func Recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				logger.Error(r.Context()).
					Interface("panic", err).
					Str("method", r.Method).
					Str("path", r.URL.Path).
					Msg("panic recovered")
				writeError(w, r, http.StatusInternalServerError, "internal server error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// Auth rejects requests without a valid bearer token and stores the claims of
// accepted ones in the request context.
func Auth(svc *auth.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				writeError(w, r, http.StatusUnauthorized, "missing or invalid token")
				return
			}

			claims, err := svc.Authenticate(r.Context(), strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				writeError(w, r, http.StatusUnauthorized, "invalid token")
				return
			}

			ctx := auth.WithClaims(r.Context(), claims)
			l := logger.WithContext(ctx).With().Str("user", claims.Email).Logger()
			next.ServeHTTP(w, r.WithContext(logger.NewContext(ctx, l)))
		})
	}
}
