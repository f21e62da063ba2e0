package cascade

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/valyala/bytebufferpool"

	"github.com/pedia/cascade/pattern"
)

// PathFor substitutes params into the named route's pattern. A supplied
// value replaces its block, escaped so a round trip through the matcher
// recovers it. Missing optional blocks vanish together with their separator;
// missing required ones leave the separator behind, generation being best
// effort. Raw-expression patterns flatten to "/".
func (router *Router) PathFor(name string, params map[string]string) (string, error) {
	route := router.named[name]
	if route == nil {
		return "", fmt.Errorf("%w: %s", ErrRouteNotFound, name)
	}
	return route.BuildPath(params, true), nil
}

// URLFor is PathFor with the configured host (WithHost) in front.
func (router *Router) URLFor(name string, params map[string]string) (string, error) {
	path, err := router.PathFor(name, params)
	if err != nil {
		return "", err
	}
	return router.host + path, nil
}

// BuildPath renders a concrete path from the route's pattern, negation
// marker excluded. With flattenRaw, a raw-expression pattern becomes "/";
// without it the expression text comes back untouched.
func (route *Route) BuildPath(params map[string]string, flattenRaw bool) string {
	pat := route.match

	if strings.HasPrefix(pat, "@") {
		if flattenRaw {
			return "/"
		}
		return pat
	}

	blocks := pattern.Parse(pat)
	if len(blocks) == 0 {
		return pat
	}

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	last := 0
	for _, blk := range blocks {
		buf.WriteString(pat[last:blk.Start])

		if v, ok := params[blk.Name]; ok && blk.Name != "" {
			buf.WriteString(blk.Sep)
			buf.WriteString(url.PathEscape(v))
		} else if !blk.Optional {
			buf.WriteString(blk.Sep)
		}

		last = blk.End
	}
	buf.WriteString(pat[last:])

	return buf.String()
}
