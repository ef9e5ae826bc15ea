package router

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"sync/atomic"

	"github.com/xy-planning-network/shotglass"
	"github.com/xy-planning-network/shotglass/auth"
	"github.com/xy-planning-network/shotglass/http/resp"
	"github.com/xy-planning-network/shotglass/http/route"
	"github.com/xy-planning-network/shotglass/logger"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Router dispatches HTTP requests to the Handlers of registered [route.Route]s.
//
// Every request passes, in order:
//   - a method check: GET, HEAD and POST are served, anything else is http.StatusNotImplemented
//   - the auth gate, if any: a rejection is http.StatusUnauthorized with a basic auth challenge
//   - query parsing: a malformed query string is http.StatusBadRequest
//   - routing: an unmatched path is http.StatusNotFound
//   - the Handler, whose Response is formatted by [resp.Format]
//
// HEAD requests route by the GET routes and are answered without a body.
//
// Register every route before serving.
// Once a Router serves its first request, or Seal is called, registering fails with ErrSealed.
type Router struct {
	failFast func()
	gate     *auth.Gate
	logger   logger.Logger
	maxBody  int64
	once     sync.Once
	sealed   atomic.Bool
	table    *route.Table
}

// New constructs a *Router with no routes.
func New(opts ...RouterOptFn) *Router {
	rt := &Router{table: route.NewTable()}
	for _, opt := range opts {
		opt(rt)
	}

	if rt.logger == nil {
		rt.logger = logger.New()
	}

	if rt.gate == nil {
		rt.gate, _ = auth.NewGate(auth.Config{})
	}

	return rt
}

// Handle registers r for method.
func (rt *Router) Handle(method string, r route.Route) error {
	if rt.sealed.Load() {
		return fmt.Errorf("%w: cannot register %s %q", ErrSealed, method, r.Path)
	}

	if err := rt.table.Register(method, r); err != nil {
		return err
	}

	rt.logger.Debug(fmt.Sprintf("registered %s %s", method, r.Path), nil)
	return nil
}

// RegisterRoutes registers the GET and POST routes.
//
// RegisterRoutes stops at the first route that cannot be registered.
func (rt *Router) RegisterRoutes(get, post []route.Route) error {
	for _, r := range get {
		if err := rt.Handle(http.MethodGet, r); err != nil {
			return err
		}
	}

	for _, r := range post {
		if err := rt.Handle(http.MethodPost, r); err != nil {
			return err
		}
	}

	return nil
}

// Routes returns the templates registered for method, in the order they are tried.
func (rt *Router) Routes(method string) []string { return rt.table.Routes(method) }

// Seal stops any further registration.
func (rt *Router) Seal() { rt.sealed.Store(true) }

// ServeHTTP responds to an HTTP request.
func (rt *Router) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	rt.Seal()

	method := r.Method
	switch method {
	case http.MethodGet, http.MethodPost:
	case http.MethodHead:
		method = http.MethodGet
	default:
		resp.Error(w, http.StatusNotImplemented, fmt.Sprintf("Unsupported method (%q)", r.Method))
		return
	}

	if err := rt.gate.Check(r.Header.Get("Authorization")); err != nil {
		rt.logger.Debug(err.Error(), &logger.LogContext{Request: r})
		w.Header().Set("WWW-Authenticate", rt.gate.Challenge())
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	query, err := url.ParseQuery(r.URL.RawQuery)
	if err != nil {
		rt.malformed(w, r, err)
		return
	}

	path := r.URL.EscapedPath()
	m, ok := rt.table.Resolve(method, path)
	if !ok {
		rt.logger.Debug(fmt.Sprintf("%s: %s %s", ErrNotFound, r.Method, path), nil)
		resp.Error(w, http.StatusNotFound, "Unsupported path: "+path)
		return
	}

	body, err := rt.readBody(r)
	if errors.Is(err, ErrTooLarge) {
		rt.logger.Warn(err.Error(), &logger.LogContext{Request: r})
		resp.Error(w, http.StatusRequestEntityTooLarge, "")
		return
	}

	if err != nil {
		rt.malformed(w, r, err)
		return
	}

	span := trace.SpanFromContext(r.Context())
	span.SetName(r.Method + " " + m.Template.String())
	span.SetAttributes(attribute.String("http.route", m.Template.String()))

	ctx := context.WithValue(r.Context(), shotglass.RouteKey, m.Template.String())
	req := route.NewRequest(ctx, method, path)
	req.Args = m.Args
	req.Body = body
	req.Params = m.Params.Filter(query)

	res, err := invoke(m.Handler, req)
	if err != nil {
		rt.fault(w, r, err)
		return
	}

	if r.Method == http.MethodHead {
		err = resp.WriteHeader(w, res)
	} else {
		err = resp.Write(w, res)
	}

	switch {
	case errors.Is(err, resp.ErrWrite):
		rt.logger.Warn(err.Error(), &logger.LogContext{Request: r})
	case err != nil:
		rt.fault(w, r, fmt.Errorf("%w: %w", ErrHandlerFault, err))
	}
}

// readBody reads the body of a POST.
//
// A request declaring no length, or a zero length, has no body.
func (rt *Router) readBody(r *http.Request) ([]byte, error) {
	if r.Method != http.MethodPost || r.ContentLength <= 0 {
		return nil, nil
	}

	if rt.maxBody > 0 && r.ContentLength > rt.maxBody {
		return nil, fmt.Errorf("%w: %d bytes declared, %d allowed", ErrTooLarge, r.ContentLength, rt.maxBody)
	}

	b, err := io.ReadAll(io.LimitReader(r.Body, r.ContentLength))
	if err != nil {
		return nil, fmt.Errorf("%w: could not read body: %s", ErrMalformed, err)
	}

	if int64(len(b)) != r.ContentLength {
		return nil, fmt.Errorf("%w: read %d of %d declared bytes", ErrMalformed, len(b), r.ContentLength)
	}

	return b, nil
}

// malformed answers http.StatusBadRequest.
func (rt *Router) malformed(w http.ResponseWriter, r *http.Request, err error) {
	if !errors.Is(err, ErrMalformed) {
		err = fmt.Errorf("%w: %s", ErrMalformed, err)
	}

	rt.logger.Warn(err.Error(), &logger.LogContext{Request: r})
	resp.Error(w, http.StatusBadRequest, "")
}

// fault answers http.StatusInternalServerError,
// shutting down the server if configured WithFailFast.
func (rt *Router) fault(w http.ResponseWriter, r *http.Request, err error) {
	lc := &logger.LogContext{Error: err, Request: r}
	if rt.failFast == nil {
		rt.logger.Error(err.Error(), lc)
		resp.Error(w, http.StatusInternalServerError, "")
		return
	}

	rt.logger.Fatal(fmt.Sprintf("%s; shutting down", err), lc)
	resp.Error(w, http.StatusInternalServerError, "")
	rt.once.Do(func() { go rt.failFast() })
}

// invoke calls h, converting a returned error or a panic into ErrHandlerFault.
func invoke(h route.Handler, req *route.Request) (res resp.Response, err error) {
	defer func() {
		if p := recover(); p != nil {
			res = nil
			err = fmt.Errorf("%w: panic: %v", ErrHandlerFault, p)
		}
	}()

	res, err = h(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrHandlerFault, err)
	}

	return res, nil
}
