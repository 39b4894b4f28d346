package dispatch

import (
	"net/http"
)

// Next continues dispatch with the rest of the chain. A middleware that
// does not invoke it short-circuits the chain.
type Next func(req *http.Request, res *Response) (*Response, error)

// Middleware processes a request and may delegate to the rest of the
// chain through next. next may be nil at the end of a chain.
type Middleware interface {
	Process(req *http.Request, res *Response, next Next) (*Response, error)
}

// MiddlewareFunc adapts a function to the Middleware interface.
type MiddlewareFunc func(req *http.Request, res *Response, next Next) (*Response, error)

// Process implements Middleware.
func (f MiddlewareFunc) Process(req *http.Request, res *Response, next Next) (*Response, error) {
	return f(req, res, next)
}

// Handler is a terminal dispatchable. It produces a response and never
// delegates further down the chain.
type Handler interface {
	Handle(req *http.Request, res *Response) (*Response, error)
}

// HandlerFunc adapts a function to the Handler interface.
type HandlerFunc func(req *http.Request, res *Response) (*Response, error)

// Handle implements Handler.
func (f HandlerFunc) Handle(req *http.Request, res *Response) (*Response, error) {
	return f(req, res)
}

// Chain is an ordered sequence of middleware dispatched left to right.
// When every element has delegated, the chain invokes the outer next,
// if any. Chain itself implements Middleware, so chains nest.
type Chain []Middleware

// Process implements Middleware.
func (c Chain) Process(req *http.Request, res *Response, next Next) (*Response, error) {
	return c.dispatch(0, req, res, next)
}

func (c Chain) dispatch(i int, req *http.Request, res *Response, next Next) (*Response, error) {
	if i >= len(c) {
		if next == nil {
			return res, nil
		}
		return next(req, res)
	}
	return c[i].Process(req, res, func(req *http.Request, res *Response) (*Response, error) {
		return c.dispatch(i+1, req, res, next)
	})
}
