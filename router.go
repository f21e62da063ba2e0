package cascade

import (
	"io"
	"net/http"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/trace"

	"github.com/pedia/cascade/pattern"
)

// MethodWild matches every HTTP method when it appears in a method set.
const MethodWild = "*"

// Handler is the callable attached to a route. Returning nil lets the pass
// continue with the next route; returning a control signal steers the pass;
// returning any other error ends it and enters the error chain.
type Handler func(*Context) error

// ErrorHandler inspects a failed dispatch. Returning nil accepts the error
// and stops the chain; returning an error declines and hands that error to
// the next callback.
type ErrorHandler func(*Context, error) error

// HTTPErrorHandler renders a 404, a 405 or an aborted dispatch, under the
// same accept/decline contract as ErrorHandler.
type HTTPErrorHandler func(*Context, *HTTPError) error

// Router is an ordered table of routes sharing one dispatch configuration.
// Every route whose method and pattern agree with the request runs, in
// registration order, which makes plain routes and middleware the same
// mechanism.
//
// Wire everything up front. Registration is not synchronized with dispatch,
// so the table must be complete before requests flow.
type Router struct {
	routes []*Route
	named  map[string]*Route

	shared *Shared
	cache  pattern.Cache
	host   string
	log    *logrus.Entry

	errorCallbacks     []ErrorHandler
	httpErrorCallbacks []HTTPErrorHandler

	metrics *metrics
	tracer  trace.Tracer
}

// New returns a router ready for registration. Options configure logging,
// the reverse-generation host, the matcher cache and observability; the zero
// configuration discards logs and shares the process-wide matcher cache.
func New(opts ...Option) *Router {
	router := &Router{
		named:  make(map[string]*Route),
		shared: newShared(),
		cache:  pattern.DefaultCache,
	}

	for _, opt := range opts {
		opt(router)
	}

	if router.log == nil {
		log := logrus.New()
		log.Out = io.Discard
		router.log = logrus.NewEntry(log)
	}

	return router
}

// Handle registers a new request handler with the given pattern and method
// set. A nil set, or one containing MethodWild, leaves the route
// unconstrained.
//
// For GET, POST, PUT, PATCH and DELETE registrations the respective shortcut
// functions can be used.
//
// The wildcard pattern "*" matches every path without counting toward
// 404/405 resolution, which is what middleware wants. A leading '!' negates
// the path outcome; a leading '@' switches the remainder to a raw,
// unanchored regular expression.
func (router *Router) Handle(methods []string, pat string, handler Handler) *Route {
	switch {
	case len(pat) == 0:
		panic("pattern must not be empty")
	case handler == nil:
		panic("handler must not be nil")
	}

	route := &Route{
		router:      router,
		methods:     normalizeMethods(methods),
		pattern:     pat,
		handler:     handler,
		countsMatch: pat != "*",
		match:       pat,
	}

	if strings.HasPrefix(route.match, "!") {
		route.negate = true
		route.match = route.match[1:]
	}
	if route.match != "*" && !strings.HasPrefix(route.match, "@") {
		route.prefix = pattern.LiteralPrefix(route.match)
	}

	router.routes = append(router.routes, route)

	router.log.WithFields(logrus.Fields{
		"pattern": pat,
		"methods": route.methods,
	}).Debug("route registered")

	return route
}

// GET is a shortcut for router.Handle([]string{http.MethodGet}, pat, handler)
func (router *Router) GET(pat string, handler Handler) *Route {
	return router.Handle([]string{http.MethodGet}, pat, handler)
}

// HEAD is a shortcut for router.Handle([]string{http.MethodHead}, pat, handler)
func (router *Router) HEAD(pat string, handler Handler) *Route {
	return router.Handle([]string{http.MethodHead}, pat, handler)
}

// POST is a shortcut for router.Handle([]string{http.MethodPost}, pat, handler)
func (router *Router) POST(pat string, handler Handler) *Route {
	return router.Handle([]string{http.MethodPost}, pat, handler)
}

// PUT is a shortcut for router.Handle([]string{http.MethodPut}, pat, handler)
func (router *Router) PUT(pat string, handler Handler) *Route {
	return router.Handle([]string{http.MethodPut}, pat, handler)
}

// PATCH is a shortcut for router.Handle([]string{http.MethodPatch}, pat, handler)
func (router *Router) PATCH(pat string, handler Handler) *Route {
	return router.Handle([]string{http.MethodPatch}, pat, handler)
}

// DELETE is a shortcut for router.Handle([]string{http.MethodDelete}, pat, handler)
func (router *Router) DELETE(pat string, handler Handler) *Route {
	return router.Handle([]string{http.MethodDelete}, pat, handler)
}

// OPTIONS is a shortcut for router.Handle([]string{http.MethodOptions}, pat, handler)
func (router *Router) OPTIONS(pat string, handler Handler) *Route {
	return router.Handle([]string{http.MethodOptions}, pat, handler)
}

// ANY registers handler for every HTTP method.
//
// WARNING: Use only for routes where the request method is not important
func (router *Router) ANY(pat string, handler Handler) *Route {
	return router.Handle(nil, pat, handler)
}

// Use registers middleware: an unconstrained wildcard route that runs for
// every request and never counts as a match.
func (router *Router) Use(handler Handler) *Route {
	return router.Handle(nil, "*", handler)
}

// OnError pushes a generic error callback. The most recent registration runs
// first.
func (router *Router) OnError(h ErrorHandler) {
	router.errorCallbacks = append(router.errorCallbacks, h)
}

// OnHTTPError pushes a 404/405/abort callback. The most recent registration
// runs first.
func (router *Router) OnHTTPError(h HTTPErrorHandler) {
	router.httpErrorCallbacks = append(router.httpErrorCallbacks, h)
}

// GetRoute returns the route registered under name, nil when absent.
func (router *Router) GetRoute(name string) *Route {
	return router.named[name]
}

// Shared returns the router-wide store handlers see as Context.Shared.
func (router *Router) Shared() *Shared {
	return router.shared
}

// List returns all registered patterns grouped by method, under MethodWild
// for unconstrained routes.
func (router *Router) List() map[string][]string {
	list := make(map[string][]string)
	for _, route := range router.routes {
		if len(route.methods) == 0 {
			list[MethodWild] = append(list[MethodWild], route.pattern)
			continue
		}
		for _, m := range route.methods {
			list[m] = append(list[m], route.pattern)
		}
	}
	return list
}

// Warmup compiles every registered pattern eagerly so a malformed one
// surfaces at wiring time instead of inside the first dispatch reaching it.
func (router *Router) Warmup() error {
	for _, route := range router.routes {
		if route.match == "*" {
			continue
		}
		if _, err := pattern.CompileCached(router.cache, route.match); err != nil {
			return errors.Wrapf(err, "route %s", route.describe())
		}
	}
	return nil
}
