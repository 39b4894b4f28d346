package middleware

import (
	"net/http"
	"strconv"

	"github.com/gintechsystems/wellrested/dispatch"
)

// HeadFinalizer returns a response preparation hook that discards the
// body of responses to HEAD requests. Handlers serve HEAD through
// their GET path, so headers are already computed by the time this
// runs; only the body is dropped.
func HeadFinalizer() dispatch.Middleware {
	return dispatch.MiddlewareFunc(func(req *http.Request, res *dispatch.Response, next dispatch.Next) (*dispatch.Response, error) {
		if req.Method == http.MethodHead {
			res.SetBody(nil)
		}
		if next == nil {
			return res, nil
		}
		return next(req, res)
	})
}

// ContentLength returns a response preparation hook that sets the
// Content-Length header from the final body size. It runs after
// HeadFinalizer so HEAD responses report a zero length.
func ContentLength() dispatch.Middleware {
	return dispatch.MiddlewareFunc(func(req *http.Request, res *dispatch.Response, next dispatch.Next) (*dispatch.Response, error) {
		res.Header().Set("Content-Length", strconv.Itoa(res.BodyLen()))
		if next == nil {
			return res, nil
		}
		return next(req, res)
	})
}
