package cascade

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGroup(t *testing.T) {
	t.Parallel()

	router := New()
	api := router.Group("/api")

	var id string
	api.GET("/posts/[i:id]", func(c *Context) error {
		id = c.Param("id")
		return nil
	})

	res := dispatch(t, router, "GET", "/api/posts/7")
	assert.Equal(t, http.StatusOK, res.Status())
	assert.Equal(t, "7", id)

	// The bare pattern no longer exists.
	res = dispatch(t, router, "GET", "/posts/7")
	assert.Equal(t, http.StatusNotFound, res.Status())
}

func TestGroupNested(t *testing.T) {
	t.Parallel()

	router := New()
	v2 := router.Group("/api").Group("/v2")

	routed := false
	v2.GET("/ping", func(c *Context) error {
		routed = true
		return nil
	})

	dispatch(t, router, "GET", "/api/v2/ping")
	assert.True(t, routed)
}

func TestGroupRoot(t *testing.T) {
	t.Parallel()

	router := New()
	root := router.Group("/")

	var hits []string
	root.GET("/hello", func(c *Context) error {
		hits = append(hits, "hello")
		return nil
	})
	root.Group("/v1").GET("/ping", func(c *Context) error {
		hits = append(hits, "ping")
		return nil
	})

	res := dispatch(t, router, "GET", "/hello")
	assert.Equal(t, http.StatusOK, res.Status())

	res = dispatch(t, router, "GET", "/v1/ping")
	assert.Equal(t, http.StatusOK, res.Status())

	assert.Equal(t, []string{"hello", "ping"}, hits)
}

func TestGroupInvalidPrefix(t *testing.T) {
	t.Parallel()

	router := New()

	recv := catchPanic(func() {
		router.Group("api")
	})
	assert.NotNil(t, recv, "prefix without leading slash must panic")

	recv = catchPanic(func() {
		router.Group("/api/")
	})
	assert.NotNil(t, recv, "prefix with trailing slash must panic")
}

func TestGroupWildcardCoversSubtreeOnly(t *testing.T) {
	t.Parallel()

	router := New()

	var hits []string
	router.Group("/admin").Use(func(c *Context) error {
		hits = append(hits, c.Request.Path)
		return nil
	})
	router.ANY("/other", func(c *Context) error { return nil })

	dispatch(t, router, "GET", "/admin")
	dispatch(t, router, "GET", "/admin/users")
	dispatch(t, router, "GET", "/administrator") // shares text, not subtree
	dispatch(t, router, "GET", "/other")

	assert.Equal(t, []string{"/admin", "/admin/users"}, hits)
}

func TestGroupWildcardStaysUncounting(t *testing.T) {
	t.Parallel()

	router := New()
	router.Group("/admin").Use(func(c *Context) error { return nil })

	// Middleware ran but nothing counted, so the subtree alone is a 404.
	res := dispatch(t, router, "GET", "/admin/users")
	assert.Equal(t, http.StatusNotFound, res.Status())
}

func TestGroupRawExpression(t *testing.T) {
	t.Parallel()

	router := New()

	var hex string
	router.Group("/site").GET("@^/color/(?P<hex>[0-9a-f]{6})$", func(c *Context) error {
		hex = c.Param("hex")
		return nil
	})

	res := dispatch(t, router, "GET", "/site/color/bada55")
	assert.Equal(t, http.StatusOK, res.Status())
	assert.Equal(t, "bada55", hex)

	res = dispatch(t, router, "GET", "/color/bada55")
	assert.Equal(t, http.StatusNotFound, res.Status())
}

func TestGroupNegation(t *testing.T) {
	t.Parallel()

	router := New()

	var hits []string
	router.Group("/files").ANY("!/secret", func(c *Context) error {
		hits = append(hits, c.Request.Path)
		return nil
	})

	res := dispatch(t, router, "GET", "/files/public")
	assert.Equal(t, http.StatusOK, res.Status())

	res = dispatch(t, router, "GET", "/files/secret")
	assert.Equal(t, http.StatusNotFound, res.Status())

	assert.Equal(t, []string{"/files/public"}, hits)
}
