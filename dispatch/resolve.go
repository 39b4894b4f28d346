package dispatch

import (
	"fmt"
	"net/http"
	"sync"
)

// Resolve normalizes a dispatchable value into a Middleware. Accepted
// shapes:
//
//   - Middleware (including Chain and *MethodMap)
//   - func(req, res, next) (*Response, error)
//   - Handler
//   - func(req, res) (*Response, error)
//   - *Response — returned as-is for every request
//   - func() Middleware — provider, constructed once on first dispatch
//   - []any — resolved element-wise into a Chain
//
// Resolution happens once at registration; per-request cost is a single
// interface call.
func Resolve(v any) (Middleware, error) {
	switch d := v.(type) {
	case Middleware:
		return d, nil
	case func(*http.Request, *Response, Next) (*Response, error):
		return MiddlewareFunc(d), nil
	case Handler:
		return handlerMiddleware{d}, nil
	case func(*http.Request, *Response) (*Response, error):
		return handlerMiddleware{HandlerFunc(d)}, nil
	case *Response:
		return staticResponse{d}, nil
	case func() Middleware:
		return &provided{construct: d}, nil
	case []any:
		chain := make(Chain, 0, len(d))
		for i, item := range d {
			mw, err := Resolve(item)
			if err != nil {
				return nil, fmt.Errorf("element %d: %w", i, err)
			}
			chain = append(chain, mw)
		}
		return chain, nil
	default:
		return nil, fmt.Errorf("unsupported dispatchable type %T", v)
	}
}

// handlerMiddleware adapts a terminal Handler to the Middleware
// interface. The continuation is intentionally dropped.
type handlerMiddleware struct {
	h Handler
}

func (m handlerMiddleware) Process(req *http.Request, res *Response, _ Next) (*Response, error) {
	return m.h.Handle(req, res)
}

// staticResponse serves a pre-built response value.
type staticResponse struct {
	res *Response
}

func (m staticResponse) Process(_ *http.Request, _ *Response, _ Next) (*Response, error) {
	return m.res, nil
}

// provided defers middleware construction until the first dispatch.
type provided struct {
	construct func() Middleware
	once      sync.Once
	mw        Middleware
}

func (p *provided) Process(req *http.Request, res *Response, next Next) (*Response, error) {
	p.once.Do(func() {
		p.mw = p.construct()
	})
	return p.mw.Process(req, res, next)
}
