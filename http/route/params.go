package route

import (
	"net/url"
	"sort"
)

// Params is the allow-list of query parameter names a Route's Handler receives.
//
// The zero value accepts no parameters.
type Params struct {
	all   bool
	names map[string]struct{}
}

// Accept constructs Params allowing only the given names.
func Accept(names ...string) Params {
	p := Params{names: make(map[string]struct{}, len(names))}
	for _, name := range names {
		p.names[name] = struct{}{}
	}

	return p
}

// AcceptAll constructs Params allowing every query parameter.
func AcceptAll() Params { return Params{all: true} }

// AcceptsAll asserts whether p allows every query parameter.
func (p Params) AcceptsAll() bool { return p.all }

// Names returns the allowed names, sorted.
// Names returns nil when p accepts all parameters.
func (p Params) Names() []string {
	if p.all {
		return nil
	}

	names := make([]string, 0, len(p.names))
	for name := range p.names {
		names = append(names, name)
	}

	sort.Strings(names)
	return names
}

// Filter drops every key in q p does not allow.
// When a key repeats, its last value wins.
//
// Filter always returns a non-nil map.
func (p Params) Filter(q url.Values) map[string]string {
	kept := make(map[string]string)
	for k, vals := range q {
		if len(vals) == 0 {
			continue
		}

		if _, ok := p.names[k]; !p.all && !ok {
			continue
		}

		kept[k] = vals[len(vals)-1]
	}

	return kept
}
