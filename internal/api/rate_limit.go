package api

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/dunamismax/pixlens/internal/ratelimit"
)

// RateLimiter charges cost tokens to subject. Creating a job costs one token
// per pipeline step since every step materializes a full image.
type RateLimiter interface {
	AllowN(ctx context.Context, subject string, cost int) (ratelimit.Decision, error)
}

func (s *Server) userID(r *http.Request) string {
	return strings.TrimSpace(r.Header.Get(s.rateLimitUserIDHeader))
}

// allow reports whether the request may proceed. When it returns false the
// 429 response has already been written. Limiter failures let the request
// through.
func (s *Server) allow(w http.ResponseWriter, r *http.Request, route string, cost int) bool {
	if s.rateLimiter == nil {
		return true
	}

	subject := s.userID(r)
	if subject == "" {
		subject = "anonymous"
	}
	subject += ":" + route

	decision, err := s.rateLimiter.AllowN(r.Context(), subject, max(1, cost))
	if err != nil {
		s.logger.Printf("rate limiter check failed subject=%s err=%v", subject, err)
		return true
	}

	w.Header().Set("X-RateLimit-Remaining", strconv.FormatInt(decision.Remaining, 10))
	if decision.Allowed {
		return true
	}

	retryAfter := max(1, int(decision.RetryAfter.Round(time.Second).Seconds()))
	w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
	s.metrics.rateLimitRejected.WithLabelValues(route).Inc()
	writeJSON(w, http.StatusTooManyRequests, map[string]string{
		"error": "rate limit exceeded",
	})
	return false
}
