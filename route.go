package cascade

import (
	"net/http"
	"strings"
)

// Route is one registered entry: a method set, a pattern and a handler,
// optionally named for reverse generation. Routes are built through
// Router.Handle and configured with the fluent setters at wiring time;
// they must not be touched once requests flow.
type Route struct {
	router  *Router
	methods []string
	pattern string
	handler Handler

	name        string
	countsMatch bool

	negate bool
	match  string // pattern with any leading '!' stripped; compiler input
	prefix string // literal prefix for fast rejection; "" for '@' patterns
}

// Pattern returns the pattern exactly as registered.
func (route *Route) Pattern() string { return route.pattern }

// Name returns the reverse-generation name, "" for anonymous routes.
func (route *Route) Name() string { return route.name }

// Methods returns a copy of the method constraint, nil when the route
// matches any method.
func (route *Route) Methods() []string {
	if route.methods == nil {
		return nil
	}
	return append([]string(nil), route.methods...)
}

// SetName registers route for reverse generation. Names are unique per router;
// reusing one is a wiring bug and panics like any other.
func (route *Route) SetName(name string) *Route {
	if name == "" {
		panic("route name must not be empty")
	}
	if other, dup := route.router.named[name]; dup && other != route {
		panic("route name '" + name + "' registered twice")
	}
	if route.name != "" {
		delete(route.router.named, route.name)
	}
	route.name = name
	route.router.named[name] = route
	return route
}

// SetCountMatch overrides whether a successful match feeds 404/405
// resolution. Wildcard "*" routes default to false, everything else to true.
func (route *Route) SetCountMatch(counts bool) *Route {
	route.countsMatch = counts
	return route
}

// acceptsMethod reconciles the request method against the route's set,
// case-insensitively. Unconstrained routes accept everything, and a HEAD
// request satisfies routes declaring HEAD or GET.
func (route *Route) acceptsMethod(method string) bool {
	if len(route.methods) == 0 {
		return true
	}
	head := strings.EqualFold(method, http.MethodHead)
	for _, m := range route.methods {
		if strings.EqualFold(m, method) || (head && m == http.MethodGet) {
			return true
		}
	}
	return false
}

// describe identifies the route in errors and logs.
func (route *Route) describe() string {
	if route.name != "" {
		return route.name + " (" + route.pattern + ")"
	}
	return route.pattern
}
