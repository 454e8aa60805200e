package middleware

import (
	"math"
	"net/http"

	"golang.org/x/time/rate"

	"loan-applications-api/internal/apierror"
	"loan-applications-api/internal/logger"
)

// RateLimit applies a process-wide token bucket. A non-positive rps disables
// limiting entirely.
func RateLimit(rps float64, burst int) func(http.Handler) http.Handler {
	if rps <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	if burst < 1 {
		burst = int(math.Ceil(rps))
		if burst < 1 {
			burst = 1
		}
	}

	limiter := rate.NewLimiter(rate.Limit(rps), burst)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				logger.Warn("rate limit middleware rejected request", logger.Fields{
					"method": r.Method,
					"path":   r.URL.Path,
				})
				apierror.Write(w, apierror.RateLimited())
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
