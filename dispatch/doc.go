// Package dispatch provides the middleware execution machinery for the
// routing core.
//
// A dispatchable is anything that can take part in request processing:
// a Middleware that may delegate to the rest of the chain, a terminal
// Handler, a pre-built *Response, a lazily-constructed provider, or an
// ordered method map. Resolve normalizes all of these shapes into a
// Middleware once, at registration time.
//
// # Execution model
//
// Dispatch is strictly sequential and cooperative. Each middleware
// receives the current request/response pair plus a continuation
// representing the rest of the chain. It may mutate the response and
// invoke the continuation, mutate the response and stop (short-circuit),
// or return a replacement response directly.
//
//	chain := dispatch.Chain{
//	    middleware.RequestID(),
//	    dispatch.HandlerFunc(listCats),
//	}
//	res, err := chain.Process(req, dispatch.NewResponse(), nil)
package dispatch
