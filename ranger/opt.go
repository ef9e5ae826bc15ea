package ranger

import (
	"context"
	"fmt"
	"net/http"

	"github.com/xy-planning-network/shotglass"
	"github.com/xy-planning-network/shotglass/auth"
	"github.com/xy-planning-network/shotglass/http/router"
	"github.com/xy-planning-network/shotglass/logger"
)

// A RangerOption configures a *Ranger either (1) directly, immediately upon being called
// or (2) in the OptFollowup it returns.
// Some RangerOptions require data in others and thus an OptFollowup can be returned
// in order to be called at a later time when that data is available.
//
// WithDebug is an example of the first.
// An unexported field on the passed in *Ranger is updated with the enclosed value.
//
// WithRouter is an example of the second.
// The *Ranger only uses the *router.Router once every RangerOption has run,
// so its logger can be reported.
type RangerOption func(rng *Ranger) (OptFollowup, error)
type OptFollowup func() error

// WithAuth puts every request behind basic authentication when cfg is enabled.
func WithAuth(cfg auth.Config) RangerOption {
	return func(rng *Ranger) (OptFollowup, error) {
		g, err := auth.NewGate(cfg)
		if err != nil {
			return nil, err
		}

		rng.gate = g
		return nil, nil
	}
}

// WithContext bases the context.Context of every request on ctx.
// Cancelling ctx stops Guide.
func WithContext(ctx context.Context) RangerOption {
	return func(rng *Ranger) (OptFollowup, error) {
		rng.ctx = ctx
		return nil, nil
	}
}

// WithCORS allows cross-origin requests from origin.
// An empty origin allows none.
func WithCORS(origin string) RangerOption {
	return func(rng *Ranger) (OptFollowup, error) {
		rng.corsOrigin = origin
		return nil, nil
	}
}

// WithDebug toggles debug mode:
// listening on DebugPort instead of ProductionPort and logging at DEBUG.
func WithDebug(debug bool) RangerOption {
	return func(rng *Ranger) (OptFollowup, error) {
		rng.debug = debug
		return nil, nil
	}
}

// WithEnv casts the provided string into a valid Environment,
// or, reads from the ENVIRONMENT environment variable a valid Environment.
//
// If both fail, the default Environment is set to Development.
func WithEnv(envVar string) RangerOption {
	e := shotglass.Environment(envVar)
	if err := e.Valid(); err == nil {
		return func(rng *Ranger) (OptFollowup, error) {
			rng.env = e
			return nil, nil
		}
	}

	return func(rng *Ranger) (OptFollowup, error) {
		rng.env = shotglass.EnvVarOrEnv(environmentEnvVar, shotglass.Development)
		return nil, nil
	}
}

// WithFailFast toggles shutting down the server whenever a handler fails.
// By default, a failing handler fails only its own request.
func WithFailFast(failFast bool) RangerOption {
	return func(rng *Ranger) (OptFollowup, error) {
		rng.failFast = failFast
		return nil, nil
	}
}

// WithLogger sets the logger.Logger the *Ranger and its router log through.
func WithLogger(l logger.Logger) RangerOption {
	return func(rng *Ranger) (OptFollowup, error) {
		rng.l = l
		return nil, nil
	}
}

// WithMaxBodyBytes limits the size of POST bodies.
// A non-positive n leaves them unlimited.
func WithMaxBodyBytes(n int64) RangerOption {
	return func(rng *Ranger) (OptFollowup, error) {
		rng.maxBody = n
		return nil, nil
	}
}

// WithMetricsPath exposes Prometheus metrics at path.
// An empty path disables collecting metrics.
func WithMetricsPath(path string) RangerOption {
	return func(rng *Ranger) (OptFollowup, error) {
		if path != "" && path[0] != '/' {
			return nil, fmt.Errorf("%w: metrics path %q does not start with /", shotglass.ErrNotValid, path)
		}

		rng.metricsPath = path
		return nil, nil
	}
}

// WithMetricsNamespace prefixes the name of every request metric with namespace.
func WithMetricsNamespace(namespace string) RangerOption {
	return func(rng *Ranger) (OptFollowup, error) {
		rng.metricsNamespace = namespace
		return nil, nil
	}
}

// WithRateLimit limits each IP address to perSecond requests every second.
// A non-positive perSecond disables rate limiting.
func WithRateLimit(perSecond float64) RangerOption {
	return func(rng *Ranger) (OptFollowup, error) {
		rng.rateLimit = perSecond
		return nil, nil
	}
}

// WithRouter constructs a followup option that, when called,
// uses r to dispatch requests instead of a *router.Router the *Ranger constructs.
//
// The auth, body limit and fail fast options do not apply to r.
func WithRouter(r *router.Router) RangerOption {
	return func(rng *Ranger) (OptFollowup, error) {
		return func() error {
			rng.Router = r
			rng.l.Debug(fmt.Sprintf("using router %T", r), nil)
			return nil
		}, nil
	}
}

// WithSerial toggles answering one request at a time.
func WithSerial(serial bool) RangerOption {
	return func(rng *Ranger) (OptFollowup, error) {
		rng.serial = serial
		return nil, nil
	}
}

// WithServer uses s instead of a default *http.Server.
// The *Ranger sets the Handler of s.
func WithServer(s *http.Server) RangerOption {
	return func(rng *Ranger) (OptFollowup, error) {
		rng.srv = s
		return nil, nil
	}
}
