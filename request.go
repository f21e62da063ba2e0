package cascade

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/savsgio/gotils/bytes"
)

// Request is the fully decoded request the dispatch loop consumes. Adapters
// fill in every field before dispatch begins; the engine itself never reads
// the process environment or a connection.
type Request struct {
	// ID is a short random token for log correlation.
	ID string

	Method string // uppercase by construction
	Path   string // escaped path, exactly the text patterns match against
	Host   string

	Header http.Header
	Query  url.Values
	Body   io.Reader

	RemoteAddr string

	ctx    context.Context
	params map[string]string
}

// NewRequest builds a bare request for driving Dispatch directly, without a
// server in front.
func NewRequest(method, path string) *Request {
	return &Request{
		ID:     newRequestID(),
		Method: strings.ToUpper(method),
		Path:   path,
		Header: make(http.Header),
		Query:  make(url.Values),
		params: make(map[string]string),
	}
}

func newRequestID() string {
	return string(bytes.Rand(make([]byte, 15)))
}

// Context returns the request's context. It is never nil.
func (req *Request) Context() context.Context {
	if req.ctx != nil {
		return req.ctx
	}
	return context.Background()
}

// SetContext replaces the request's context, for example to carry a span or
// a deadline into the handlers.
func (req *Request) SetContext(ctx context.Context) { req.ctx = ctx }

// Param returns the capture merged by the most recent match, "" when absent.
func (req *Request) Param(name string) string { return req.params[name] }

// Params is the live capture map. Matches merge into it as the pass walks
// the route table, so later routes overwrite same-named captures.
func (req *Request) Params() map[string]string {
	if req.params == nil {
		req.params = make(map[string]string)
	}
	return req.params
}

// SetParam injects a capture by hand, the way a test or a middleware does.
func (req *Request) SetParam(name, value string) {
	req.Params()[name] = value
}

func (req *Request) mergeParams(params map[string]string) {
	dst := req.Params()
	for k, v := range params {
		dst[k] = v
	}
}
