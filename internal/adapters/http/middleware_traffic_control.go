package httpadapter

import (
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// Health checks and metrics scrapes bypass traffic control so monitoring
// keeps working while the API sheds load.
func exemptFromTrafficControl(path string) bool {
	return path == "/healthz" || path == "/metrics"
}

// rateLimitMiddleware rejects requests above rps with 429. A non-positive
// rps disables the limiter.
func rateLimitMiddleware(next http.Handler, rps, burst int) http.Handler {
	if rps <= 0 {
		return next
	}
	if burst < 1 {
		burst = 1
	}
	limiter := rate.NewLimiter(rate.Limit(rps), burst)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if exemptFromTrafficControl(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}
		if !limiter.Allow() {
			w.Header().Set("Retry-After", "1")
			writeJSON(w, http.StatusTooManyRequests, map[string]string{"error": "rate limit exceeded"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

// backpressureMiddleware bounds concurrent in-flight requests. A request
// that cannot claim a slot within queueTimeout is rejected with 503. A
// non-positive maxInFlight disables the gate.
func backpressureMiddleware(next http.Handler, maxInFlight int, queueTimeout time.Duration) http.Handler {
	if maxInFlight <= 0 {
		return next
	}
	slots := make(chan struct{}, maxInFlight)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if exemptFromTrafficControl(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		timer := time.NewTimer(queueTimeout)
		defer timer.Stop()

		select {
		case slots <- struct{}{}:
			defer func() { <-slots }()
			next.ServeHTTP(w, r)
		case <-timer.C:
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "server is at capacity, retry shortly"})
		case <-r.Context().Done():
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "request canceled while queued"})
		}
	})
}
