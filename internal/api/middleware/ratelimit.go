package middleware

import (
	"fmt"
	"net"
	"net/http"

	"github.com/quantive/kb-catalog/internal/api/response"
	"github.com/quantive/kb-catalog/internal/repository/redis"
	"github.com/rs/zerolog/log"
)

// RateLimit enforces a fixed-window per-client request limit backed by Redis.
// A limiter failure lets the request through; availability over strictness.
func RateLimit(limiter *redis.RateLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			host, _, err := net.SplitHostPort(r.RemoteAddr)
			if err != nil {
				host = r.RemoteAddr
			}

			allowed, remaining, reset, err := limiter.Allow(r.Context(), host)
			if err != nil {
				log.Warn().Err(err).Msg("Rate limit check failed")
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", remaining))
			w.Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", reset.Unix()))

			if !allowed {
				response.TooManyRequests(w, "rate limit exceeded")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
