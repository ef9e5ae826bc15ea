package middleware

import (
	"net/http"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const defaultTracerName = "shotglass"

// Trace starts a server span for each request using the global OpenTelemetry tracer provider.
// The span is named by the request method;
// handlers that know the matched route may rename it.
// The span ends once the request has been answered,
// marked as an error for 5xx statuses.
//
// If tracerName is empty, "shotglass" is used.
//
// Configure the provider in main before serving:
//
//	otel.SetTracerProvider(tp)
func Trace(tracerName string) Adapter {
	if tracerName == "" {
		tracerName = defaultTracerName
	}

	tracer := otel.Tracer(tracerName)
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, span := tracer.Start(
				r.Context(),
				r.Method,
				trace.WithSpanKind(trace.SpanKindServer),
				trace.WithAttributes(
					attribute.String("http.method", r.Method),
					attribute.String("http.target", r.URL.RequestURI()),
				),
			)
			defer span.End()

			sw := newStatusWriter(w)
			h.ServeHTTP(sw, r.WithContext(ctx))

			status := sw.Status()
			span.SetAttributes(attribute.Int("http.status_code", status))
			if status >= http.StatusInternalServerError {
				span.SetStatus(codes.Error, http.StatusText(status))
				return
			}

			span.SetStatus(codes.Ok, "")
		})
	}
}
