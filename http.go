package cascade

import (
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"
)

// FromHTTP adapts a net/http request. The escaped path is what patterns
// match against, so an encoded slash inside a segment cannot masquerade as a
// separator; captures are decoded individually after matching.
func FromHTTP(hr *http.Request) *Request {
	path := hr.URL.EscapedPath()
	if path == "" {
		path = "/"
	}

	return &Request{
		ID:         newRequestID(),
		Method:     strings.ToUpper(hr.Method),
		Path:       path,
		Host:       hr.Host,
		Header:     hr.Header,
		Query:      hr.URL.Query(),
		Body:       hr.Body,
		RemoteAddr: hr.RemoteAddr,
		ctx:        hr.Context(),
		params:     make(map[string]string),
	}
}

// ServeHTTP makes the router implement the http.Handler interface: adapt,
// dispatch, transmit.
func (router *Router) ServeHTTP(w http.ResponseWriter, hr *http.Request) {
	req := FromHTTP(hr)

	res := NewResponse(func(res *Response) error {
		header := w.Header()
		for k, vv := range res.Header() {
			header[k] = vv
		}
		w.WriteHeader(res.Status())

		if len(res.Body()) == 0 {
			return nil
		}
		_, err := w.Write(res.Body())
		return err
	})
	defer res.Release()

	if _, err := router.Dispatch(req, res, true, CaptureNone); err != nil {
		router.log.WithError(err).WithFields(logrus.Fields{
			"request": req.ID,
			"method":  req.Method,
			"path":    req.Path,
		}).Error("dispatch failed")
	}
}
