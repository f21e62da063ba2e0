package cascade

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServeHTTP(t *testing.T) {
	t.Parallel()

	router := New()
	router.Use(func(c *Context) error {
		c.Response.Header().Set("X-Router", "cascade")
		return nil
	})
	router.GET("/hello/[a:name]", func(c *Context) error {
		return c.WriteString(fmt.Sprintf("hello, %s!\n", c.Param("name")))
	})

	srv := httptest.NewServer(router)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/hello/gopher")
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "cascade", resp.Header.Get("X-Router"))
	assert.Equal(t, "hello, gopher!\n", string(body))
}

func TestServeHTTPNotFound(t *testing.T) {
	t.Parallel()

	router := New()
	router.GET("/only", func(c *Context) error { return nil })

	r := httptest.NewRequest(http.MethodGet, "/missing", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestServeHTTPMethodNotAllowed(t *testing.T) {
	t.Parallel()

	router := New()
	router.POST("/submit", func(c *Context) error { return nil })

	r := httptest.NewRequest(http.MethodGet, "/submit", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	assert.Equal(t, "POST", w.Header().Get("Allow"))
}

func TestServeHTTPHeadHasNoBody(t *testing.T) {
	t.Parallel()

	router := New()
	router.GET("/page", func(c *Context) error {
		return c.WriteString("content")
	})

	r := httptest.NewRequest(http.MethodHead, "/page", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Body.String())
}

func TestServeHTTPCustomErrorPage(t *testing.T) {
	t.Parallel()

	router := New()
	router.OnHTTPError(func(c *Context, herr *HTTPError) error {
		c.Response.WriteString("gone fishing")
		return nil
	})

	r := httptest.NewRequest(http.MethodGet, "/missing", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "gone fishing", w.Body.String())
}

func TestServeHTTPMatchesEscapedPath(t *testing.T) {
	t.Parallel()

	router := New()

	var seg string
	router.GET("/files/[:name]", func(c *Context) error {
		seg = c.Param("name")
		return nil
	})

	// An encoded slash stays inside the segment instead of splitting it.
	r := httptest.NewRequest(http.MethodGet, "/files/a%2Fb", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "a/b", seg)
}

func TestFromHTTP(t *testing.T) {
	t.Parallel()

	r := httptest.NewRequest(http.MethodPost, "/a/b?q=1", nil)
	r.Host = "example.com"

	req := FromHTTP(r)
	assert.Equal(t, http.MethodPost, req.Method)
	assert.Equal(t, "/a/b", req.Path)
	assert.Equal(t, "example.com", req.Host)
	assert.Equal(t, "1", req.Query.Get("q"))
	assert.NotEmpty(t, req.ID)
}
