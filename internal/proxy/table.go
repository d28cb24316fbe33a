// Package proxy implements the gateway dispatch path: a static prefix route
// table, the request forwarder and the aggregate backend health probe.
package proxy

import "strings"

// Route maps a path prefix to a backend base URL.
type Route struct {
	Prefix  string
	Backend string
}

// Table resolves request paths against routes in declared order. When one
// prefix is itself a prefix of another, operators must declare the more
// specific route first; resolution is first-match, not longest-match.
type Table struct {
	routes []Route
}

func NewTable(routes []Route) *Table {
	out := make([]Route, 0, len(routes))
	for _, r := range routes {
		out = append(out, Route{
			Prefix:  r.Prefix,
			Backend: strings.TrimRight(r.Backend, "/"),
		})
	}
	return &Table{routes: out}
}

// Resolve returns the first route whose prefix literally prefixes path,
// along with the remainder of the path after the prefix.
func (t *Table) Resolve(path string) (Route, string, bool) {
	for _, route := range t.routes {
		if strings.HasPrefix(path, route.Prefix) {
			return route, strings.TrimPrefix(path, route.Prefix), true
		}
	}
	return Route{}, "", false
}

// Routes returns the table entries in declared order.
func (t *Table) Routes() []Route {
	return t.routes
}
