package cascade

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"
)

func newFastHTTPCtx(method, uri string) *fasthttp.RequestCtx {
	var req fasthttp.Request
	req.Header.SetMethod(method)
	req.SetRequestURI(uri)

	ctx := &fasthttp.RequestCtx{}
	ctx.Init(&req, nil, nil)
	return ctx
}

func TestHandleFastHTTP(t *testing.T) {
	t.Parallel()

	router := New()
	router.GET("/hello/[a:name]", func(c *Context) error {
		c.Response.Header().Set("X-Router", "cascade")
		return c.WriteString("hello, " + c.Param("name") + "!")
	})

	fctx := newFastHTTPCtx(fasthttp.MethodGet, "http://example.com/hello/gopher?verbose=1")
	router.HandleFastHTTP(fctx)

	assert.Equal(t, http.StatusOK, fctx.Response.StatusCode())
	assert.Equal(t, "hello, gopher!", string(fctx.Response.Body()))
	assert.Equal(t, "cascade", string(fctx.Response.Header.Peek("X-Router")))
}

func TestHandleFastHTTPNotFound(t *testing.T) {
	t.Parallel()

	router := New()
	router.GET("/only", func(c *Context) error { return nil })

	fctx := newFastHTTPCtx(fasthttp.MethodGet, "http://example.com/missing")
	router.HandleFastHTTP(fctx)

	assert.Equal(t, http.StatusNotFound, fctx.Response.StatusCode())
}

func TestFromFastHTTP(t *testing.T) {
	t.Parallel()

	fctx := newFastHTTPCtx(fasthttp.MethodPost, "http://example.com/a/b?q=1")
	fctx.Request.Header.Set("X-Test", "yes")

	req := FromFastHTTP(fctx)
	require.NotNil(t, req)

	assert.Equal(t, http.MethodPost, req.Method)
	assert.Equal(t, "/a/b", req.Path)
	assert.Equal(t, "example.com", req.Host)
	assert.Equal(t, "1", req.Query.Get("q"))
	assert.Equal(t, "yes", req.Header.Get("X-Test"))

	// The RequestCtx doubles as the request context.
	assert.NotNil(t, req.Context())
	assert.Same(t, fctx, req.Context())
}
