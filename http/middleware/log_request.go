package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/xy-planning-network/shotglass"
	"github.com/xy-planning-network/shotglass/logger"
)

// LogRequest logs the request's method, requested URL, and originating IP address
// using the enclosed implementation of logger.Logger.
// At logger.LogLevelDebug, the request headers are logged too.
//
// LogRequest scrubs the values of shotglass.LogMaskKeys from the query.
//
// if logger.Logger is nil, NoopAdapter returns and this middleware does nothing.
func LogRequest(ls logger.Logger) Adapter {
	if ls == nil {
		return NoopAdapter
	}

	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			strs := []string{r.Method, shotglass.MaskURL(r.URL)}
			if val, ok := r.Context().Value(shotglass.IpAddrKey).(string); ok {
				strs = append([]string{val}, strs...)
			}

			if id, ok := r.Context().Value(shotglass.RequestIDKey).(string); ok {
				strs = append(strs, fmt.Sprintf("id=%s", id))
			}

			ls.Info(strings.Join(strs, " "), nil)
			if ls.LogLevel() <= logger.LogLevelDebug {
				ls.Debug("request headers", &logger.LogContext{Request: r})
			}

			h.ServeHTTP(w, r)
		})
	}
}
