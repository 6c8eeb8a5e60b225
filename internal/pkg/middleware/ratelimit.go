package middleware

import (
	"net"
	"net/http"
	"strconv"
	"time"

	"storefront/internal/messages"
	"storefront/internal/pkg/cache"
	"storefront/internal/pkg/logger"
)

// RateLimiter allows limit requests per client IP per window, counted in the cache.
// Cache failures let the request through.
func RateLimiter(client cache.Client, limit int, window time.Duration, log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if limit <= 0 {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip, _, err := net.SplitHostPort(r.RemoteAddr)
			if err != nil {
				ip = r.RemoteAddr
			}
			key := "rate-limit:" + ip

			count, err := client.Incr(r.Context(), key, window)
			if err != nil {
				log.Warn("rate limiter unavailable, allowing request", map[string]interface{}{"error": err.Error()})
				next.ServeHTTP(w, r)
				return
			}

			remaining := int64(limit) - count
			if remaining < 0 {
				w.Header().Set("Retry-After", strconv.Itoa(int(window.Seconds())))
				writeMessage(w, http.StatusTooManyRequests, messages.TooManyRequests)
				return
			}

			w.Header().Set("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))
			next.ServeHTTP(w, r)
		})
	}
}
