package router

import (
	"fmt"
	"html"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/xy-planning-network/shotglass"
	"github.com/xy-planning-network/shotglass/http/resp"
	"github.com/xy-planning-network/shotglass/http/route"
)

const indexFile = "index.html"

// AddStaticPaths registers a GET route serving each file at paths.
//
// A file is served at its own path, rooted at "/",
// with the content type its extension indicates.
// "index.html" in the working directory is served at "/" as well.
//
// Files are read from disk on every request,
// so edits show up without restarting,
// and a file missing when requested fails that request with a server error.
func (rt *Router) AddStaticPaths(paths ...string) error {
	for _, p := range paths {
		if p == "" {
			return fmt.Errorf("%w: empty static path", shotglass.ErrMissingData)
		}

		r := route.Route{Path: StaticRoute(p), Handler: FileHandler(p)}
		if err := rt.Handle(http.MethodGet, r); err != nil {
			return err
		}

		if filepath.Clean(p) == indexFile {
			r.Path = "/"
			if err := rt.Handle(http.MethodGet, r); err != nil {
				return err
			}
		}
	}

	return nil
}

// StaticRoute is the route template a file at p is served at.
func StaticRoute(p string) string {
	p = filepath.ToSlash(filepath.Clean(p))
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}

	return p
}

// FileHandler is a route.Handler responding with the contents of the file at p.
func FileHandler(p string) route.Handler {
	ct := resp.ContentType(p)
	return func(*route.Request) (resp.Response, error) {
		b, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("%w: static file %q: %s", shotglass.ErrNotExist, p, err)
		}

		return resp.Typed{ContentType: ct, Body: b}, nil
	}
}

// IndexHandler is a route.Handler responding with an HTML page
// linking to each file matching pattern, sorted by name.
//
// The files are listed anew on every request.
func IndexHandler(pattern string) route.Handler {
	return func(*route.Request) (resp.Response, error) {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("%w: index pattern %q: %s", shotglass.ErrNotValid, pattern, err)
		}

		sort.Strings(matches)

		var b strings.Builder
		b.WriteString("<!DOCTYPE html>\n<html>\n<head><meta charset=\"utf-8\"><title>Index</title></head>\n<body>\n<ul>\n")
		for _, m := range matches {
			href := StaticRoute(m)
			fmt.Fprintf(&b, "<li><a href=\"%s\">%s</a></li>\n", html.EscapeString(href), html.EscapeString(filepath.Base(m)))
		}
		b.WriteString("</ul>\n</body>\n</html>\n")

		return resp.Text(b.String()), nil
	}
}
