package cascade

import (
	"net/http"

	"github.com/valyala/bytebufferpool"
)

// SendFunc transmits a finished response to the outside world. Adapters bind
// one at construction; a nil SendFunc makes Send a bookkeeping no-op, which
// is what library-level tests want.
type SendFunc func(*Response) error

// Response accumulates status, headers and body for one dispatch pass. The
// body is fully buffered; nothing reaches the wire before Send. A locked
// response rejects body writes and freezes its status code until Unlock.
type Response struct {
	status int
	header http.Header
	body   *bytebufferpool.ByteBuffer
	locked bool
	sent   bool
	send   SendFunc
}

// NewResponse returns an empty 200 response bound to send.
func NewResponse(send SendFunc) *Response {
	return &Response{
		status: http.StatusOK,
		header: make(http.Header),
		body:   bytebufferpool.Get(),
		send:   send,
	}
}

// Release returns the body buffer to the pool. The response must not be used
// afterwards; adapters call it once transmission is done.
func (res *Response) Release() {
	if res.body != nil {
		bytebufferpool.Put(res.body)
		res.body = nil
	}
}

// Code sets the status code unless the response is locked.
func (res *Response) Code(status int) *Response {
	if !res.locked {
		res.status = status
	}
	return res
}

// Status returns the current status code.
func (res *Response) Status() int { return res.status }

// Header is the live header map.
func (res *Response) Header() http.Header { return res.header }

// Write appends to the body. A locked response returns ErrResponseLocked.
func (res *Response) Write(p []byte) (int, error) {
	if res.locked {
		return 0, ErrResponseLocked
	}
	return res.body.Write(p)
}

// WriteString appends a string to the body under the same locking rule.
func (res *Response) WriteString(s string) (int, error) {
	if res.locked {
		return 0, ErrResponseLocked
	}
	return res.body.WriteString(s)
}

// Body returns the accumulated bytes, valid until the next mutation.
func (res *Response) Body() []byte { return res.body.B }

// BodyString returns the accumulated body as a string copy.
func (res *Response) BodyString() string { return string(res.body.B) }

// SetBody replaces the whole body unless the response is locked.
func (res *Response) SetBody(p []byte) {
	if !res.locked {
		res.body.Set(p)
	}
}

// Prepend stitches p before the current body unless locked.
func (res *Response) Prepend(p []byte) {
	if res.locked || len(p) == 0 {
		return
	}
	old := append([]byte(nil), res.body.B...)
	res.body.Set(p)
	res.body.Write(old)
}

// Append stitches p after the current body unless locked.
func (res *Response) Append(p []byte) {
	if res.locked || len(p) == 0 {
		return
	}
	res.body.Write(p)
}

// discardBody wipes the body even on a locked response. HEAD suppression
// must win over the lock.
func (res *Response) discardBody() {
	res.body.Reset()
}

// Lock freezes status and body against further mutation.
func (res *Response) Lock() { res.locked = true }

// Unlock lifts the freeze again.
func (res *Response) Unlock() { res.locked = false }

// Locked reports whether the response is currently frozen.
func (res *Response) Locked() bool { return res.locked }

// Send transmits through the bound SendFunc exactly once; later calls are
// no-ops. Sending locks nothing by itself, the dispatch loop handles that.
func (res *Response) Send() error {
	if res.sent {
		return nil
	}
	res.sent = true
	if res.send == nil {
		return nil
	}
	return res.send(res)
}

// Sent reports whether Send already ran.
func (res *Response) Sent() bool { return res.sent }
