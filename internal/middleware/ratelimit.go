package middleware

import (
	"math"
	"net/http"
	"strconv"

	"golang.org/x/time/rate"
)

// NewRateLimitHandler returns a middleware sharing one token bucket of
// perSecond tokens per second and the given burst across every request it
// wraps. Requests that find the bucket empty get 429 with a Retry-After hint.
func NewRateLimitHandler(perSecond float64, burst int) func(http.Handler) http.Handler {
	limiter := rate.NewLimiter(rate.Limit(perSecond), burst)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				w.Header().Set("Retry-After", retryAfter(limiter))
				writeError(w, http.StatusTooManyRequests, "rate_limited", "too many requests, slow down")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// retryAfter estimates, in whole seconds, when the next token is available.
func retryAfter(l *rate.Limiter) string {
	res := l.Reserve()
	delay := res.Delay()
	res.Cancel()
	secs := int(math.Ceil(delay.Seconds()))
	if secs < 1 || delay == rate.InfDuration {
		secs = 1
	}
	return strconv.Itoa(secs)
}
