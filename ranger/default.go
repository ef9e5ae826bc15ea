package ranger

import (
	"context"
	"net"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/xy-planning-network/shotglass"
	"github.com/xy-planning-network/shotglass/auth"
	"github.com/xy-planning-network/shotglass/http/middleware"
	"github.com/xy-planning-network/shotglass/logger"
)

const (
	// Environment defaults
	environmentEnvVar = "ENVIRONMENT"

	// Log defaults
	logLevelEnvVar  = "LOG_LEVEL"
	sentryDsnEnvVar = "SENTRY_DSN"

	// Auth defaults
	authUserEnvVar = "BASIC_AUTH_USER"
	authPassEnvVar = "BASIC_AUTH_PASSWORD"

	// Dispatch defaults
	failFastEnvVar     = "FAIL_FAST"
	maxBodyBytesEnvVar = "SERVER_MAX_BODY_BYTES"
	serialEnvVar       = "SERIAL_REQUESTS"

	// Middleware defaults
	corsOriginEnvVar        = "CORS_ORIGIN"
	defaultMetricsNamespace = "shotglass"
	metricsNamespaceEnvVar  = "METRICS_NAMESPACE"
	metricsPathEnvVar       = "METRICS_PATH"
	rateLimitEnvVar         = "RATE_LIMIT"
	tracerName              = "shotglass"

	// Web server defaults
	DebugPort                 = ":8080"
	ProductionPort            = ":80"
	portEnvVar                = "PORT"
	serverReadTimeoutEnvVar   = "SERVER_READ_TIMEOUT"
	DefaultServerReadTimeout  = 5 * time.Second
	serverIdleTimeoutEnvVar   = "SERVER_IDLE_TIMEOUT"
	DefaultServerIdleTimeout  = 120 * time.Second
	serverWriteTimeoutEnvVar  = "SERVER_WRITE_TIMEOUT"
	DefaultServerWriteTimeout = 5 * time.Second
	shutdownTimeout           = 5 * time.Second
)

// defaultOpts are the RangerOptions read from environment variables.
func defaultOpts() []RangerOption {
	user := os.Getenv(authUserEnvVar)
	pass := os.Getenv(authPassEnvVar)

	return []RangerOption{
		WithEnv(""),
		WithAuth(auth.Config{Enabled: user != "" || pass != "", Username: user, Password: pass}),
		WithCORS(os.Getenv(corsOriginEnvVar)),
		WithFailFast(shotglass.EnvVarOrBool(failFastEnvVar, false)),
		WithMaxBodyBytes(int64(shotglass.EnvVarOrInt(maxBodyBytesEnvVar, 0))),
		WithMetricsPath(os.Getenv(metricsPathEnvVar)),
		WithMetricsNamespace(shotglass.EnvVarOrString(metricsNamespaceEnvVar, defaultMetricsNamespace)),
		WithRateLimit(envVarOrFloat(rateLimitEnvVar, 0)),
		WithSerial(shotglass.EnvVarOrBool(serialEnvVar, false)),
	}
}

// defaultLogger constructs the logger.Logger for the application.
//
// In debug mode everything down to DEBUG is logged,
// otherwise LOG_LEVEL sets the level.
// When SENTRY_DSN is set, warnings and errors are also sent to Sentry.
func defaultLogger(env shotglass.Environment, debug bool) logger.Logger {
	level := envVarOrLogLevel(logLevelEnvVar, logger.LogLevelInfo)
	if debug {
		level = logger.LogLevelDebug
	}

	cl := logger.New(logger.WithEnv(env.String()), logger.WithLevel(level))
	cl.Debug("setting up logger", nil)
	if dsn := os.Getenv(sentryDsnEnvVar); dsn != "" {
		cl.Debug("using SentryLogger", nil)
		return logger.NewSentryLogger(cl, dsn)
	}

	return cl
}

// defaultServer constructs a default [*http.Server].
//
// The server listens on DebugPort in debug mode and ProductionPort otherwise,
// unless PORT is set.
func defaultServer(ctx context.Context, debug bool) *http.Server {
	port := ProductionPort
	if debug {
		port = DebugPort
	}

	port = shotglass.EnvVarOrString(portEnvVar, port)
	if port[0] != ':' {
		port = ":" + port
	}

	srv := &http.Server{
		Addr:         port,
		IdleTimeout:  shotglass.EnvVarOrDuration(serverIdleTimeoutEnvVar, DefaultServerIdleTimeout),
		ReadTimeout:  shotglass.EnvVarOrDuration(serverReadTimeoutEnvVar, DefaultServerReadTimeout),
		WriteTimeout: shotglass.EnvVarOrDuration(serverWriteTimeoutEnvVar, DefaultServerWriteTimeout),
	}
	if ctx != nil {
		srv.BaseContext = func(_ net.Listener) context.Context { return ctx }
	}

	return srv
}

// defaultHandler mounts the metrics endpoint, if any, behind the auth gate
// in front of the catch-all shotglass router
// and wraps both in the middleware stack.
func (r *Ranger) defaultHandler() http.Handler {
	m := mux.NewRouter().SkipClean(true).UseEncodedPath()
	if r.metricsPath != "" {
		metrics := promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
		m.Handle(r.metricsPath, middleware.Authorize(r.gate)(metrics))
	}

	m.PathPrefix("/").Handler(r.Router)

	return middleware.Chain(m, r.middlewares()...)
}

// middlewares lists the Adapters every request passes through, outermost first.
func (r *Ranger) middlewares() []middleware.Adapter {
	mws := []middleware.Adapter{
		middleware.RequestID(),
		middleware.InjectIPAddress(),
		middleware.LogRequest(r.l),
		middleware.ReportPanic(r.env),
		middleware.Trace(tracerName),
	}

	if r.metricsPath != "" {
		mws = append(mws, middleware.Metrics(
			middleware.WithRegistry(r.registry),
			middleware.WithNamespace(r.metricsNamespace),
		))
	}

	mws = append(mws, middleware.CORS(r.corsOrigin))

	if r.rateLimit > 0 {
		mws = append(mws, middleware.RateLimit(middleware.NewVisitors(r.rateLimit, 0)))
	}

	if r.serial {
		mws = append(mws, middleware.Serialize())
	}

	return mws
}

// newRegistry constructs the registry metrics are collected in,
// including the Go runtime and process collectors.
func newRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return reg
}

// envVarOrFloat gets the environment variable from the provided key,
// parses it into a float64, or returns the provided default.
func envVarOrFloat(key string, def float64) float64 {
	f, err := strconv.ParseFloat(os.Getenv(key), 64)
	if err != nil {
		return def
	}

	return f
}

// envVarOrLogLevel gets the environment variable from the provided key,
// creates a logger.LogLevel from the retrieved value,
// or returns the provided default logger.LogLevel
// if the value is an unknown logger.LogLevel.
func envVarOrLogLevel(key string, def logger.LogLevel) logger.LogLevel {
	val := os.Getenv(key)
	if val == "" {
		return def
	}

	ll := logger.NewLogLevel(val)
	if ll == logger.LogLevelUnk {
		return def
	}

	return ll
}
