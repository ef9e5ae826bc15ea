package middleware

import (
	"net/http"
	"sync"
)

// Serialize answers one request at a time:
// a request is handled fully before the next one starts.
func Serialize() Adapter {
	var mu sync.Mutex
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			mu.Lock()
			defer mu.Unlock()

			h.ServeHTTP(w, r)
		})
	}
}
