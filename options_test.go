package cascade

import (
	"sync/atomic"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pedia/cascade/pattern"
)

func TestWithLogger(t *testing.T) {
	t.Parallel()

	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	router := New(WithLogger(logrus.NewEntry(logger)))
	router.GET("/x", func(c *Context) error { return nil })

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, "route registered", entry.Message)
	assert.Equal(t, "/x", entry.Data["pattern"])

	dispatch(t, router, "GET", "/x")
	assert.Equal(t, "dispatch complete", hook.LastEntry().Message)
}

// countingCache wraps the default map cache to observe traffic.
type countingCache struct {
	inner pattern.Cache
	gets  atomic.Int64
	puts  atomic.Int64
}

func (c *countingCache) Get(pat string) (*pattern.Matcher, bool) {
	c.gets.Add(1)
	return c.inner.Get(pat)
}

func (c *countingCache) Put(pat string, m *pattern.Matcher) {
	c.puts.Add(1)
	c.inner.Put(pat, m)
}

func TestWithCache(t *testing.T) {
	t.Parallel()

	cache := &countingCache{inner: pattern.NewMapCache()}
	router := New(WithCache(cache))
	router.GET("/posts/[i:id]", func(c *Context) error { return nil })

	dispatch(t, router, "GET", "/posts/1")
	dispatch(t, router, "GET", "/posts/2")
	dispatch(t, router, "GET", "/posts/3")

	// One compile, three lookups.
	assert.Equal(t, int64(1), cache.puts.Load())
	assert.Equal(t, int64(3), cache.gets.Load())
}

func TestWithTracing(t *testing.T) {
	t.Parallel()

	router := New(WithTracing(""))

	var sawContext bool
	router.GET("/x", func(c *Context) error {
		sawContext = c.Request.Context() != nil
		return nil
	})

	// The global provider defaults to no-op; dispatch must still work.
	res := dispatch(t, router, "GET", "/x")
	assert.Equal(t, 200, res.Status())
	assert.True(t, sawContext)
}

func TestWithHostTrimsSlash(t *testing.T) {
	t.Parallel()

	router := New(WithHost("https://example.com/"))
	router.GET("/x", func(c *Context) error { return nil }).SetName("x")

	u, err := router.URLFor("x", nil)
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/x", u)
}
