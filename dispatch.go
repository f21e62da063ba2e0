package cascade

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/valyala/bytebufferpool"

	"github.com/pedia/cascade/pattern"
)

// CaptureMode selects what happens to handler output written through the
// Context during one dispatch pass.
type CaptureMode int

const (
	// CaptureNone appends handler output straight to the response body.
	CaptureNone CaptureMode = iota

	// CaptureReturn collects output in a side buffer, suppresses the
	// automatic send and hands the text back to the Dispatch caller.
	CaptureReturn

	// CaptureReplace swaps the response body for the collected output.
	CaptureReplace

	// CapturePrepend stitches the collected output before the body.
	CapturePrepend

	// CaptureAppend stitches the collected output after the body.
	CaptureAppend
)

// dispatchState is the bookkeeping owned by a single pass.
type dispatchState struct {
	skip        int
	matched     []*Route
	methodsSeen []string
}

// Dispatch evaluates every route against req in registration order and
// resolves the outcome into res.
//
// send controls whether the response is transmitted through its SendFunc at
// the end of the pass; capture selects where handler output written through
// the Context lands. CaptureReturn implies no send and returns the collected
// output as the first value.
//
// HTTP-shaped outcomes (404, 405, Abort) run the HTTP error chain and are
// consumed. Everything else runs the generic chain; an error survives only
// when no callback accepts it, wrapped as *UnhandledError.
func (router *Router) Dispatch(req *Request, res *Response, send bool, capture CaptureMode) (string, error) {
	ctx := &Context{
		Request:  req,
		Response: res,
		Shared:   router.shared,
		Router:   router,
	}

	var buf *bytebufferpool.ByteBuffer
	if capture == CaptureNone {
		ctx.out = res
	} else {
		buf = bytebufferpool.Get()
		defer bytebufferpool.Put(buf)
		ctx.out = buf
	}

	span := router.startSpan(req)
	start := time.Now()

	err := router.pass(ctx)

	if herr, ok := asHTTPError(err); ok {
		router.resolveHTTPError(ctx, herr)
		err = nil
	} else if err != nil {
		err = router.resolveError(ctx, err)
	}

	if strings.EqualFold(req.Method, http.MethodHead) {
		res.discardBody()
		if buf != nil {
			buf.Reset()
		}
	}

	var captured string
	switch capture {
	case CaptureReturn:
		captured = buf.String()
	case CaptureReplace:
		res.SetBody(buf.Bytes())
	case CapturePrepend:
		res.Prepend(buf.Bytes())
	case CaptureAppend:
		res.Append(buf.Bytes())
	}

	if send && capture != CaptureReturn && !res.Sent() {
		if serr := res.Send(); serr != nil && err == nil {
			err = errors.Wrap(serr, "send response")
		}
	}

	if router.metrics != nil {
		router.metrics.observe(req.Method, res.Status(), time.Since(start))
	}
	endSpan(span, res.Status(), len(ctx.Matched), err)

	if router.log.Logger.IsLevelEnabled(logrus.DebugLevel) {
		router.log.WithFields(logrus.Fields{
			"request": req.ID,
			"method":  req.Method,
			"path":    req.Path,
			"status":  res.Status(),
			"matched": len(ctx.Matched),
		}).Debug("dispatch complete")
	}

	return captured, err
}

// pass walks the route table once. It returns nil when the pass is settled,
// an *HTTPError for the no-route outcomes, or the handler error that ended
// the pass early.
func (router *Router) pass(ctx *Context) error {
	req := ctx.Request
	st := dispatchState{}

loop:
	for _, route := range router.routes {
		if st.skip > 0 {
			st.skip--
			continue
		}

		methodOK := route.acceptsMethod(req.Method)

		pathOK, params, err := router.evalPath(route, req.Path)
		if err != nil {
			return errors.Wrapf(err, "route %s", route.describe())
		}

		matched := pathOK
		if route.negate {
			matched = !matched
		}

		switch {
		case methodOK:
			if !matched {
				continue
			}
			if len(params) > 0 {
				req.mergeParams(params)
			}

			if sig := router.invoke(ctx, route); sig != nil {
				switch {
				case isSkipThis(sig):
					continue
				case isSkipRemaining(sig):
					break loop
				default:
					if n, ok := asSkipNext(sig); ok {
						st.skip = n
						break
					}
					return sig
				}
			}

			if route.countsMatch {
				st.matched = append(st.matched, route)
				ctx.Matched = st.matched
			}

		case pathOK:
			// The path agreed before any negation, only the method did
			// not: remember the route's methods for the Allow header.
			st.methodsSeen = mergeMethods(st.methodsSeen, route.methods)
			ctx.MethodsMatched = st.methodsSeen
		}
	}

	if len(st.matched) == 0 {
		if len(st.methodsSeen) > 0 {
			ctx.Response.Header().Set("Allow", allowHeader(st.methodsSeen))
			if strings.EqualFold(req.Method, http.MethodOptions) {
				return nil
			}
			return NewHTTPError(http.StatusMethodNotAllowed)
		}
		return NewHTTPError(http.StatusNotFound)
	}

	return nil
}

// evalPath matches one route's pattern against the raw path. The literal
// prefix rejects most foreign paths before the matcher runs; captures are
// percent-decoded only after a successful match.
func (router *Router) evalPath(route *Route, path string) (bool, map[string]string, error) {
	if route.match == "*" {
		return true, nil, nil
	}

	verbatim := strings.HasPrefix(route.match, "@")
	if !verbatim && !strings.HasPrefix(path, route.prefix) {
		return false, nil, nil
	}

	m, err := pattern.CompileCached(router.cache, route.match)
	if err != nil {
		return false, nil, err
	}

	params, ok := m.Match(path)
	if !ok {
		return false, nil, nil
	}
	return true, decodeParams(params), nil
}

// decodeParams percent-decodes captures after matching. A capture with a
// malformed escape keeps its raw text.
func decodeParams(params map[string]string) map[string]string {
	for k, v := range params {
		if strings.IndexByte(v, '%') < 0 {
			continue
		}
		if dec, err := url.PathUnescape(v); err == nil {
			params[k] = dec
		}
	}
	return params
}

// invoke runs one handler, converting a panic into an ordinary error for the
// error chain.
func (router *Router) invoke(ctx *Context, route *Route) (err error) {
	defer func() {
		if v := recover(); v != nil {
			err = errors.Errorf("handler for route %s panicked: %v", route.describe(), v)
		}
	}()
	return route.handler(ctx)
}

// resolveHTTPError applies an expected outcome: set the status unless a
// handler locked the response, give the HTTP error callbacks a chance to
// render it, then lock.
func (router *Router) resolveHTTPError(ctx *Context, herr *HTTPError) {
	res := ctx.Response
	res.Code(herr.Code)

	for i := len(router.httpErrorCallbacks) - 1; i >= 0; i-- {
		if cbErr := router.httpErrorCallbacks[i](ctx, herr); cbErr == nil {
			break
		}
	}

	res.Lock()
}

// resolveError walks the generic error chain, newest callback first. Each
// declined error replaces the current one; the first acceptance settles the
// dispatch. When nobody accepts, the response becomes a locked 500 and the
// caller gets the last error wrapped as *UnhandledError.
func (router *Router) resolveError(ctx *Context, cause error) error {
	res := ctx.Response

	for i := len(router.errorCallbacks) - 1; i >= 0; i-- {
		cbErr := router.errorCallbacks[i](ctx, cause)
		if cbErr == nil {
			res.Lock()
			return nil
		}
		cause = cbErr
	}

	res.Code(http.StatusInternalServerError)
	res.Lock()

	router.log.WithError(cause).WithFields(logrus.Fields{
		"request": ctx.Request.ID,
		"path":    ctx.Request.Path,
	}).Error("no error callback accepted")

	return &UnhandledError{Cause: cause}
}
