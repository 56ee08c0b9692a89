package middleware

import (
	"net/http"

	"dogwalk-app-go/pkg/logger"
)

type Limiter interface {
	Allow(key string) bool
}

// RateLimitByUser rejects requests once the authenticated user exhausts its
// bucket. Must run after the auth middleware.
func RateLimitByUser(limiter Limiter, log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, ok := UserIDFromContext(r.Context())
			if !ok {
				unauthorized(w)
				return
			}
			if !limiter.Allow(userID) {
				logger.FromContext(r.Context(), log).Warn("rate limit exceeded", "user_id", userID)
				w.Header().Set("Retry-After", "1")
				writeError(w, http.StatusTooManyRequests, "rate_limited", "too many requests")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
