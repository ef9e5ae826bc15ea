package ranger

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/xy-planning-network/shotglass"
	"github.com/xy-planning-network/shotglass/auth"
	"github.com/xy-planning-network/shotglass/http/router"
	"github.com/xy-planning-network/shotglass/logger"
)

// A Ranger owns a shotglass web server:
// its configuration, its routes and the listener it serves on.
//
// Routes are registered through the embedded *router.Router before calling Guide.
type Ranger struct {
	*router.Router

	cancel           context.CancelFunc
	corsOrigin       string
	ctx              context.Context
	debug            bool
	env              shotglass.Environment
	failFast         bool
	gate             *auth.Gate
	l                logger.Logger
	maxBody          int64
	metricsNamespace string
	metricsPath      string
	rateLimit        float64
	registry         *prometheus.Registry
	serial           bool
	shutdownErr      error
	shutdownOnce     sync.Once
	srv              *http.Server
}

// New constructs a Ranger from the provided options.
// Default options are applied first followed by the options passed into New.
// Options supplied to New overwrite default configurations.
func New(opts ...RangerOption) (*Ranger, error) {
	r := new(Ranger)
	followups := make([]OptFollowup, 0)

	for _, opt := range append(defaultOpts(), opts...) {
		fn, err := opt(r)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", shotglass.ErrBadConfig, err)
		}

		if fn != nil {
			followups = append(followups, fn)
		}
	}

	if r.ctx == nil {
		r.ctx = context.Background()
	}

	r.ctx, r.cancel = context.WithCancel(r.ctx)

	if r.l == nil {
		r.l = defaultLogger(r.env, r.debug)
	}

	for _, fn := range followups {
		if err := fn(); err != nil {
			return nil, fmt.Errorf("%w: %s", shotglass.ErrBadConfig, err)
		}
	}

	if r.Router == nil {
		r.Router = router.New(r.routerOpts()...)
	}

	if r.srv == nil {
		r.srv = defaultServer(r.ctx, r.debug)
	}

	r.registry = newRegistry()
	r.srv.Handler = r.defaultHandler()

	return r, nil
}

// routerOpts configures the *router.Router a *Ranger constructs.
func (r *Ranger) routerOpts() []router.RouterOptFn {
	opts := []router.RouterOptFn{
		router.WithAuth(r.gate),
		router.WithLogger(r.l),
		router.WithMaxBodyBytes(r.maxBody),
	}

	if r.failFast {
		opts = append(opts, router.WithFailFast(r.cancel))
	}

	return opts
}

// Addr is the address the web server listens on when calling Guide.
func (r *Ranger) Addr() string { return r.srv.Addr }

// Cancel stops Guide, shutting down the web server.
func (r *Ranger) Cancel() { r.cancel() }

func (r *Ranger) EmitLogger() logger.Logger  { return r.l }
func (r *Ranger) Env() shotglass.Environment { return r.env }

// Handler is the http.Handler the web server answers requests with:
// the middleware stack in front of the metrics endpoint and the routes.
func (r *Ranger) Handler() http.Handler { return r.srv.Handler }

// Guide begins the web server.
//
// These, and (*Ranger).Shutdown, stop Guide:
//
// - os.Interrupt
// - syscall.SIGHUP
// - syscall.SIGINT
// - syscall.SIGQUIT
// - syscall.SIGTERM
//
// Stopping by any of these returns nil.
func (r *Ranger) Guide() error {
	ln, err := net.Listen("tcp", r.srv.Addr)
	if err != nil {
		err = fmt.Errorf("could not listen: %w", err)
		r.l.Error(err.Error(), nil)
		return err
	}

	return r.Serve(ln)
}

// Serve is Guide, accepting connections on ln.
func (r *Ranger) Serve(ln net.Listener) error {
	for _, method := range []string{http.MethodGet, http.MethodPost} {
		for _, tmpl := range r.Routes(method) {
			r.l.Debug(fmt.Sprintf("serving %s %s", method, tmpl), nil)
		}
	}

	r.Seal()

	ch := make(chan os.Signal, 1)
	signal.Notify(ch, os.Interrupt, syscall.SIGHUP, syscall.SIGINT, syscall.SIGQUIT, syscall.SIGTERM)
	defer signal.Stop(ch)

	go func() {
		select {
		case s := <-ch:
			r.l.Info(fmt.Sprint("received shutdown signal: ", s), nil)
			r.cancel()
		case <-r.ctx.Done():
		}
	}()

	errCh := make(chan error, 1)
	go func() {
		mode := "production"
		if r.debug {
			mode = "debug"
		}

		r.l.Info(fmt.Sprintf("shotglass %s running in %s mode at %s, pid %d", shotglass.Version, mode, ln.Addr(), os.Getpid()), nil)
		if err := r.srv.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("could not serve: %w", err)
		}
	}()

	select {
	case <-r.ctx.Done():
		return r.Shutdown()
	case err := <-errCh:
		r.cancel()
		r.l.Error(err.Error(), nil)
		return err
	}
}

// Shutdown shutdowns the web server,
// waiting up to 5 seconds for requests in flight to be answered.
//
// Calling Shutdown more than once returns the result of the first call.
func (r *Ranger) Shutdown() error {
	r.shutdownOnce.Do(func() {
		r.cancel()
		r.shutdownErr = r.shutdown()
	})

	return r.shutdownErr
}

func (r *Ranger) shutdown() error {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	r.l.Info("shutting down web server", nil)
	defer sentry.Flush(2 * time.Second)

	err := r.srv.Shutdown(shutdownCtx)
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("could not shutdown: %w", err)
	}

	r.l.Info("web server shutdown successfully", nil)
	return nil
}
