package timeout

import (
	"context"
	"net/http"
	"time"
)

// Middleware ограничивает время запроса. Запросы с wait=true (долгий опрос результата
// workflow) получают longPoll вместо обычного таймаута.
func Middleware(timeout, longPoll time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			limit := timeout
			if longPoll > timeout && r.URL.Query().Get("wait") == "true" {
				limit = longPoll
			}

			// r.Context() = ongoingCtx (из BaseContext)
			ctx, cancel := context.WithTimeout(r.Context(), limit)
			defer cancel()

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
