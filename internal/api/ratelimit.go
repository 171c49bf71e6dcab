package api

import (
	"net"
	"net/http"
	"strconv"

	"creator-pricing-workers/internal/common/errors"
	"creator-pricing-workers/internal/common/metrics"
)

// rateLimit keys requests by client IP. RealIP has already rewritten
// RemoteAddr from X-Forwarded-For / X-Real-IP when present. A limiter error
// lets the request through.
func (s *Server) rateLimit(route string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if s.deps.Limiter == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := clientIP(r)
			decision, err := s.deps.Limiter.Allow(r.Context(), key)
			if err != nil {
				s.deps.Logger.Warn("rate limiter unavailable, allowing request", map[string]interface{}{
					"route": route,
					"error": err.Error(),
				})
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(decision.Limit))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(decision.Remaining))
			if decision.Allowed {
				next.ServeHTTP(w, r)
				return
			}

			retryAfter := decision.RetryAfter(s.clock())
			metrics.RateLimitRejections.WithLabelValues(route).Inc()
			s.deps.Logger.Info("request rate limited", map[string]interface{}{
				"route":      route,
				"client":     key,
				"retryAfter": retryAfter.String(),
			})

			w.Header().Set("Retry-After", strconv.Itoa(int(retryAfter.Seconds())))
			writeError(w, http.StatusTooManyRequests, errors.NewRateLimitedError(key, retryAfter))
		})
	}
}

func clientIP(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
