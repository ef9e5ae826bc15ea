package router

import (
	"github.com/xy-planning-network/shotglass/auth"
	"github.com/xy-planning-network/shotglass/logger"
)

// A RouterOptFn is a functional option configuring a *Router when constructing a new one.
type RouterOptFn func(*Router)

// WithAuth gates every request with g.
func WithAuth(g *auth.Gate) RouterOptFn {
	return func(rt *Router) {
		rt.gate = g
	}
}

// WithFailFast makes a handler fault fatal to the whole server.
//
// After the fault is logged and answered with http.StatusInternalServerError,
// shutdown is called, once, from a new goroutine.
// Without WithFailFast, a handler fault fails only its own request.
func WithFailFast(shutdown func()) RouterOptFn {
	return func(rt *Router) {
		rt.failFast = shutdown
	}
}

// WithLogger sets the logger.Logger the *Router logs through.
func WithLogger(l logger.Logger) RouterOptFn {
	return func(rt *Router) {
		rt.logger = l
	}
}

// WithMaxBodyBytes limits the size of a POST body.
// Larger bodies are answered with http.StatusRequestEntityTooLarge.
//
// A non-positive n leaves bodies unlimited.
func WithMaxBodyBytes(n int64) RouterOptFn {
	return func(rt *Router) {
		rt.maxBody = n
	}
}
