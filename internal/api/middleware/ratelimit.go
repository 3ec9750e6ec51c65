// SPDX-License-Identifier: MIT

package middleware

import (
	"math"
	"net/http"
	"slices"
	"strconv"
	"time"

	"github.com/go-chi/httprate"
)

// RateLimitConfig limits requests per client IP over a sliding window.
type RateLimitConfig struct {
	Requests int
	Window   time.Duration
	// Exempt paths bypass the limiter and are not counted.
	Exempt []string
}

// RateLimit rejects clients over the limit with 429, a Retry-After header
// rounded up to whole seconds and the JSON error envelope.
func RateLimit(cfg RateLimitConfig) func(http.Handler) http.Handler {
	retryAfter := strconv.Itoa(max(1, int(math.Ceil(cfg.Window.Seconds()))))
	limit := httprate.Limit(
		cfg.Requests,
		cfg.Window,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Retry-After", retryAfter)
			writeJSONError(w, r, http.StatusTooManyRequests, "rate_limited", "too many requests, retry after "+retryAfter+"s")
		}),
	)
	return func(next http.Handler) http.Handler {
		limited := limit(next)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if slices.Contains(cfg.Exempt, r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}
			limited.ServeHTTP(w, r)
		})
	}
}
