package route

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/xy-planning-network/shotglass"
	"github.com/xy-planning-network/shotglass/http/resp"
)

// A Handler answers a request matched to its Route.
//
// A Handler returning an error fails the request with a server error.
type Handler func(*Request) (resp.Response, error)

// A Request is what a Handler sees of an HTTP request.
type Request struct {
	// Args are the decoded variable segments of the path, in template order.
	Args []string

	// Body is the request body of a POST.
	// Body is nil when the request declared no body.
	Body []byte

	// Method is the HTTP method the request was routed by.
	Method string

	// Params are the query parameters the Route accepts.
	Params map[string]string

	// Path is the path of the request, as sent.
	Path string

	ctx context.Context
}

// NewRequest constructs a *Request bound to ctx.
func NewRequest(ctx context.Context, method, path string) *Request {
	if ctx == nil {
		ctx = context.Background()
	}

	return &Request{
		Method: method,
		Params: make(map[string]string),
		Path:   path,
		ctx:    ctx,
	}
}

// Context returns the request's context.
func (r *Request) Context() context.Context {
	if r.ctx == nil {
		return context.Background()
	}

	return r.ctx
}

// Arg returns the i-th captured variable, or "" if there is none.
func (r *Request) Arg(i int) string {
	if i < 0 || i >= len(r.Args) {
		return ""
	}

	return r.Args[i]
}

// DecodeJSON decodes the JSON Body into v.
func (r *Request) DecodeJSON(v any) error {
	if len(r.Body) == 0 {
		return fmt.Errorf("%w: no body to decode", shotglass.ErrMissingData)
	}

	if err := json.Unmarshal(r.Body, v); err != nil {
		return fmt.Errorf("%w: body is not JSON: %s", shotglass.ErrNotValid, err)
	}

	return nil
}
