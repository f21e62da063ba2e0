package cascade

import (
	"bytes"
	"net/http"
	"net/url"
	"strings"

	"github.com/valyala/fasthttp"
)

// FromFastHTTP adapts a fasthttp request context. Header and query values
// are copied out because fasthttp reuses its buffers between requests; the
// RequestCtx itself serves as the request context, so handlers observe the
// connection closing.
func FromFastHTTP(fctx *fasthttp.RequestCtx) *Request {
	path := string(fctx.URI().PathOriginal())
	if path == "" {
		path = "/"
	}

	header := make(http.Header)
	fctx.Request.Header.VisitAll(func(k, v []byte) {
		header.Add(string(k), string(v))
	})

	query := make(url.Values)
	fctx.QueryArgs().VisitAll(func(k, v []byte) {
		query.Add(string(k), string(v))
	})

	return &Request{
		ID:         newRequestID(),
		Method:     strings.ToUpper(string(fctx.Method())),
		Path:       path,
		Host:       string(fctx.Host()),
		Header:     header,
		Query:      query,
		Body:       bytes.NewReader(fctx.PostBody()),
		RemoteAddr: fctx.RemoteAddr().String(),
		ctx:        fctx,
		params:     make(map[string]string),
	}
}

// HandleFastHTTP serves the router over fasthttp:
//
//	server := &fasthttp.Server{Handler: router.HandleFastHTTP}
func (router *Router) HandleFastHTTP(fctx *fasthttp.RequestCtx) {
	req := FromFastHTTP(fctx)

	res := NewResponse(func(res *Response) error {
		for k, vv := range res.Header() {
			for _, v := range vv {
				fctx.Response.Header.Add(k, v)
			}
		}
		fctx.SetStatusCode(res.Status())

		if len(res.Body()) > 0 {
			fctx.Response.SetBody(res.Body())
		}
		return nil
	})
	defer res.Release()

	if _, err := router.Dispatch(req, res, true, CaptureNone); err != nil {
		router.log.WithError(err).WithField("path", req.Path).Error("dispatch failed")
	}
}
