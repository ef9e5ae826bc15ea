package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/xy-planning-network/shotglass"
)

// RequestIDHeader echoes the ID RequestID assigns back to the client.
const RequestIDHeader = "X-Request-Id"

// RequestID adds a uuid to the request context under shotglass.RequestIDKey
// and to the response headers.
func RequestID() Adapter {
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := uuid.NewString()
			w.Header().Set(RequestIDHeader, id)
			ctx := context.WithValue(r.Context(), shotglass.RequestIDKey, id)
			h.ServeHTTP(w, r.Clone(ctx))
		})
	}
}
