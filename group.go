package cascade

import (
	"net/http"
	"regexp"
	"strings"
)

// Group registers routes under a shared path prefix. Groups nest, and the
// registration surface mirrors the router's.
type Group struct {
	router *Router
	prefix string
}

// Group returns a new group rooted at prefix, which must begin with '/' and,
// except for the root group "/", must not end with one.
func (router *Router) Group(prefix string) *Group {
	return &Group{
		router: router,
		prefix: normalizeGroupPrefix(prefix),
	}
}

// Group nests a sub-prefix under g.
func (g *Group) Group(prefix string) *Group {
	return &Group{
		router: g.router,
		prefix: g.prefix + normalizeGroupPrefix(prefix),
	}
}

// normalizeGroupPrefix validates prefix and maps the root group "/" to the
// empty prefix, so weaving never produces a doubled slash.
func normalizeGroupPrefix(prefix string) string {
	switch {
	case !strings.HasPrefix(prefix, "/"):
		panic("group prefix must begin with '/' in prefix '" + prefix + "'")
	case prefix != "/" && strings.HasSuffix(prefix, "/"):
		panic("group prefix must not end with a trailing slash")
	}

	if prefix == "/" {
		return ""
	}
	return prefix
}

// Handle registers under the group's prefix. Standard patterns concatenate;
// raw expressions get the prefix woven in; the wildcard "*" becomes an
// anchored expression covering the whole subtree, still exempt from match
// counting.
func (g *Group) Handle(methods []string, pat string, handler Handler) *Route {
	route := g.router.Handle(methods, g.weave(pat), handler)
	if strings.TrimPrefix(pat, "!") == "*" {
		route.SetCountMatch(false)
	}
	return route
}

// weave rewrites pat so it only matches inside the group's subtree. The
// negation marker stays outermost: the prefix changes what the route
// matches, not what the match means.
func (g *Group) weave(pat string) string {
	if pat == "" {
		panic("pattern must not be empty")
	}

	negate := strings.HasPrefix(pat, "!")
	if negate {
		pat = pat[1:]
	}

	switch {
	case pat == "*":
		pat = "@^" + regexp.QuoteMeta(g.prefix) + "(?:/.*)?$"
	case strings.HasPrefix(pat, "@"):
		expr := pat[1:]
		if strings.HasPrefix(expr, "^") {
			expr = expr[1:]
		} else {
			expr = ".*" + expr
		}
		pat = "@^" + regexp.QuoteMeta(g.prefix) + expr
	default:
		pat = g.prefix + pat
	}

	if negate {
		pat = "!" + pat
	}
	return pat
}

// GET is a shortcut for group.Handle([]string{http.MethodGet}, pat, handler)
func (g *Group) GET(pat string, handler Handler) *Route {
	return g.Handle([]string{http.MethodGet}, pat, handler)
}

// HEAD is a shortcut for group.Handle([]string{http.MethodHead}, pat, handler)
func (g *Group) HEAD(pat string, handler Handler) *Route {
	return g.Handle([]string{http.MethodHead}, pat, handler)
}

// POST is a shortcut for group.Handle([]string{http.MethodPost}, pat, handler)
func (g *Group) POST(pat string, handler Handler) *Route {
	return g.Handle([]string{http.MethodPost}, pat, handler)
}

// PUT is a shortcut for group.Handle([]string{http.MethodPut}, pat, handler)
func (g *Group) PUT(pat string, handler Handler) *Route {
	return g.Handle([]string{http.MethodPut}, pat, handler)
}

// PATCH is a shortcut for group.Handle([]string{http.MethodPatch}, pat, handler)
func (g *Group) PATCH(pat string, handler Handler) *Route {
	return g.Handle([]string{http.MethodPatch}, pat, handler)
}

// DELETE is a shortcut for group.Handle([]string{http.MethodDelete}, pat, handler)
func (g *Group) DELETE(pat string, handler Handler) *Route {
	return g.Handle([]string{http.MethodDelete}, pat, handler)
}

// OPTIONS is a shortcut for group.Handle([]string{http.MethodOptions}, pat, handler)
func (g *Group) OPTIONS(pat string, handler Handler) *Route {
	return g.Handle([]string{http.MethodOptions}, pat, handler)
}

// ANY registers handler for every HTTP method under the group's prefix.
func (g *Group) ANY(pat string, handler Handler) *Route {
	return g.Handle(nil, pat, handler)
}

// Use registers middleware scoped to the group's subtree.
func (g *Group) Use(handler Handler) *Route {
	return g.Handle(nil, "*", handler)
}
