package route

import (
	"fmt"
	"sort"

	"github.com/xy-planning-network/shotglass"
)

// A Route maps a template to the Handler called for paths matching it.
type Route struct {
	// Path is the route template, e.g. "/greet/$name$".
	Path string

	// Handler is called with the captured variables and allowed query parameters.
	Handler Handler

	// Params allows query parameters through to Handler.
	// The zero value allows none.
	Params Params
}

// A Resolution is the outcome of Table.Resolve.
type Resolution struct {
	// Args are the decoded variable segments, in template order.
	Args []string

	// Handler is the Handler of the matched route.
	Handler Handler

	// Params is the allow-list of the matched route.
	Params Params

	// Template is the template of the matched route.
	Template Template
}

type entry struct {
	Route
	tmpl Template
}

// A Table holds the Routes registered for each HTTP method,
// ordered so longer templates are tried first.
//
// A Table is not safe for concurrent registration and resolution;
// register every Route before resolving any request.
type Table struct {
	routes map[string][]entry
}

// NewTable constructs an empty *Table.
func NewTable() *Table {
	return &Table{routes: make(map[string][]entry)}
}

// Register adds route to the routes for method,
// keeping the routes sorted by descending template length.
//
// Routes with templates of equal length are tried in the order they were registered.
func (t *Table) Register(method string, route Route) error {
	if method == "" {
		return fmt.Errorf("%w: no method for %q", shotglass.ErrMissingData, route.Path)
	}

	if route.Handler == nil {
		return fmt.Errorf("%w: no handler for %s %q", shotglass.ErrMissingData, method, route.Path)
	}

	tmpl, err := ParseTemplate(route.Path)
	if err != nil {
		return err
	}

	routes := append(t.routes[method], entry{Route: route, tmpl: tmpl})
	sort.SliceStable(routes, func(i, j int) bool {
		return len(routes[i].Path) > len(routes[j].Path)
	})

	t.routes[method] = routes
	return nil
}

// Resolve finds the first route registered for method whose template matches path.
//
// If none matches, Resolve returns false; an unmatched path is not an error.
func (t *Table) Resolve(method, path string) (Resolution, bool) {
	for _, e := range t.routes[method] {
		args, ok := e.tmpl.Match(path)
		if !ok {
			continue
		}

		return Resolution{Args: args, Handler: e.Handler, Params: e.Params, Template: e.tmpl}, true
	}

	return Resolution{}, false
}

// Routes returns the templates registered for method, in the order they are tried.
func (t *Table) Routes(method string) []string {
	templates := make([]string, len(t.routes[method]))
	for i, e := range t.routes[method] {
		templates[i] = e.Path
	}

	return templates
}

// Methods returns the HTTP methods with at least one Route, sorted.
func (t *Table) Methods() []string {
	methods := make([]string, 0, len(t.routes))
	for m := range t.routes {
		methods = append(methods, m)
	}

	sort.Strings(methods)
	return methods
}
