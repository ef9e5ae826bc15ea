package middleware

import (
	"net/http"

	"github.com/xy-planning-network/shotglass/auth"
)

// Authorize rejects requests g does not authorize
// with http.StatusUnauthorized and a basic auth challenge.
//
// If g is nil or disabled, NoopAdapter returns and this middleware does nothing.
func Authorize(g *auth.Gate) Adapter {
	if !g.Enabled() {
		return NoopAdapter
	}

	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !g.Authorize(r.Header.Get("Authorization")) {
				w.Header().Set("WWW-Authenticate", g.Challenge())
				w.WriteHeader(http.StatusUnauthorized)
				return
			}

			h.ServeHTTP(w, r)
		})
	}
}
