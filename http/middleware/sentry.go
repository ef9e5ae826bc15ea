package middleware

import (
	"net/http"

	sentryhttp "github.com/getsentry/sentry-go/http"
	"github.com/xy-planning-network/shotglass"
)

// ReportPanic recovers and reports panics to Sentry
// when not in a development environment.
//
// Panics are reported then re-raised
// so the server's own recovery still answers the request.
func ReportPanic(env shotglass.Environment) Adapter {
	if env.IsDevelopment() {
		return NoopAdapter
	}

	sh := sentryhttp.New(sentryhttp.Options{
		Repanic:         true,
		WaitForDelivery: true,
	})

	return func(handler http.Handler) http.Handler {
		return sh.Handle(handler)
	}
}
