// Package transport is the boundary between the resource clients and the
// wire. The rest of the SDK treats it as an opaque capability: send a
// request, get back a status code, headers, and raw body.
package transport

import (
	"context"
	"net/http"
	"net/url"
)

// Response is a raw transport outcome. Classification into typed errors
// happens in the client package, never here.
type Response struct {
	StatusCode int
	Body       []byte
	Header     http.Header
}

type Transport interface {
	Send(ctx context.Context, method, path string, query url.Values, body any, headers http.Header) (*Response, error)
}
