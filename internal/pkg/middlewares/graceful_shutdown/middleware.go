package graceful_shutdown

import (
	"net/http"
	"sync/atomic"
)

// Middleware отвечает 503 на новые запросы, как только начался shutdown:
// балансировщик успевает убрать инстанс, пока текущие workflow дорабатывают.
func Middleware(isShuttingDown *atomic.Bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isShuttingDown.Load() {
				w.Header().Set("Connection", "close")
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusServiceUnavailable)
				_, _ = w.Write([]byte(`{"error":"Service Unavailable","message":"Service is shutting down"}`))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
