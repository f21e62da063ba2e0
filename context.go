package cascade

import (
	"io"
	"sync"
)

// Context is the value every handler receives: the request/response pair,
// the router-wide shared store, and the bookkeeping this pass has
// accumulated so far.
//
// Handler output has two channels. Writes through the Context go through
// the active capture mode and may end up in a side buffer; writes through
// c.Response always target the response body itself.
type Context struct {
	Request  *Request
	Response *Response

	// Shared is the router-wide store for cross-route state.
	Shared *Shared

	// Router is the dispatching router, handy for reverse generation.
	Router *Router

	// Matched lists the routes that matched and counted so far.
	Matched []*Route

	// MethodsMatched collects the declared methods of routes whose path
	// matched while the method did not: the Allow header of a 405.
	MethodsMatched []string

	out io.Writer
}

// Write sends handler output through the active capture mode.
func (c *Context) Write(p []byte) (int, error) { return c.out.Write(p) }

// WriteString is Write for strings.
func (c *Context) WriteString(s string) error {
	_, err := io.WriteString(c.out, s)
	return err
}

// Param is shorthand for c.Request.Param.
func (c *Context) Param(name string) string { return c.Request.Param(name) }

// Shared is a mutex-guarded key/value store every handler of a router sees.
// It is where wiring code parks application services and where routes leave
// state for routes running later in the same process.
type Shared struct {
	mu     sync.RWMutex
	values map[string]any
}

func newShared() *Shared {
	return &Shared{values: make(map[string]any)}
}

// Set stores value under key.
func (s *Shared) Set(key string, value any) {
	s.mu.Lock()
	s.values[key] = value
	s.mu.Unlock()
}

// Get returns the value under key, nil when absent.
func (s *Shared) Get(key string) any {
	s.mu.RLock()
	v := s.values[key]
	s.mu.RUnlock()
	return v
}

// Lookup returns the value under key and whether it exists.
func (s *Shared) Lookup(key string) (any, bool) {
	s.mu.RLock()
	v, ok := s.values[key]
	s.mu.RUnlock()
	return v, ok
}

// Delete removes key from the store.
func (s *Shared) Delete(key string) {
	s.mu.Lock()
	delete(s.values, key)
	s.mu.Unlock()
}
