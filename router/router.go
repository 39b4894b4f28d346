package router

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gintechsystems/wellrested/dispatch"
	"github.com/gintechsystems/wellrested/httperror"
	"github.com/gintechsystems/wellrested/middleware"
	"github.com/gintechsystems/wellrested/observability"
)

// Router dispatches requests through fixed hook stages around its
// route table: pre-route hooks, route dispatch, a status handler for
// the resulting status code, post-route hooks, and response
// preparation hooks. Router implements dispatch.Middleware, so routers
// nest inside chains and other routers.
type Router struct {
	table      *RouteTable
	middleware dispatch.Chain
	preRoute   dispatch.Chain
	postRoute  dispatch.Chain
	prepare    dispatch.Chain

	statusHandlers map[int]dispatch.Middleware

	varBucket          string
	continueOnNotFound bool
	noDefaultPrep      bool
	logger             observability.Logger
}

// Option configures a Router at construction.
type Option func(*Router)

// WithLogger sets the router's logger. Without it, logging is a no-op.
func WithLogger(logger observability.Logger) Option {
	return func(r *Router) {
		r.logger = logger
	}
}

// WithVariableAttribute binds all matched path variables as one map
// under the given attribute name, readable with PathVariables. Without
// it, each variable is bound individually, readable with PathVariable.
func WithVariableAttribute(name string) Option {
	return func(r *Router) {
		r.varBucket = name
	}
}

// WithContinueOnNotFound makes an unmatched request invoke the outer
// continuation instead of producing a 404 response.
func WithContinueOnNotFound() Option {
	return func(r *Router) {
		r.continueOnNotFound = true
	}
}

// WithoutDefaultPreparation removes the structural response
// preparation hooks (HEAD body discard and Content-Length).
func WithoutDefaultPreparation() Option {
	return func(r *Router) {
		r.noDefaultPrep = true
	}
}

// New creates a Router. Unless WithoutDefaultPreparation is given, the
// response preparation stage starts with the HEAD finalizer and the
// Content-Length hook.
func New(opts ...Option) *Router {
	r := &Router{
		table:          NewRouteTable(),
		statusHandlers: make(map[int]dispatch.Middleware),
		logger:         observability.NopLogger(),
	}
	for _, opt := range opts {
		opt(r)
	}
	if !r.noDefaultPrep {
		r.prepare = dispatch.Chain{middleware.HeadFinalizer(), middleware.ContentLength()}
	}
	return r
}

// Table exposes the underlying route table, for introspection and for
// registering through it directly.
func (r *Router) Table() *RouteTable {
	return r.table
}

// Add registers a dispatchable for a target. See RouteTable.Add.
func (r *Router) Add(target string, dispatchable any, opts ...AddOption) error {
	rt, err := r.table.Add(target, dispatchable, opts...)
	if err != nil {
		return err
	}
	r.logger.Debug("route registered",
		observability.String("target", rt.Target()),
		observability.String("kind", string(rt.Kind())),
	)
	return nil
}

// AddMiddleware appends router-level middleware, dispatched before the
// matched route on every routed request.
func (r *Router) AddMiddleware(dispatchable any) error {
	return appendResolved(&r.middleware, dispatchable)
}

// AddPreRouteHook appends a hook that runs before route matching.
func (r *Router) AddPreRouteHook(dispatchable any) error {
	return appendResolved(&r.preRoute, dispatchable)
}

// AddPostRouteHook appends a hook that runs after routing, even when
// route dispatch produced a converted HTTP error.
func (r *Router) AddPostRouteHook(dispatchable any) error {
	return appendResolved(&r.postRoute, dispatchable)
}

// AddResponsePreparationHook appends a hook to the final,
// unconditional preparation stage.
func (r *Router) AddResponsePreparationHook(dispatchable any) error {
	return appendResolved(&r.prepare, dispatchable)
}

// SetStatusHandler registers a handler invoked after routing whenever
// the response carries the given status code.
func (r *Router) SetStatusHandler(code int, dispatchable any) error {
	mw, err := dispatch.Resolve(dispatchable)
	if err != nil {
		return err
	}
	r.statusHandlers[code] = mw
	return nil
}

func appendResolved(chain *dispatch.Chain, dispatchable any) error {
	mw, err := dispatch.Resolve(dispatchable)
	if err != nil {
		return err
	}
	*chain = append(*chain, mw)
	return nil
}

// Process implements dispatch.Middleware. Stages run in fixed order
// with no branching back. An error satisfying httperror.StatusError
// raised by the route stage is converted here, exactly once, into a
// response with that status and the error message as body; any other
// error aborts the pipeline and propagates. A hook that does not
// invoke its continuation skips only the remaining hooks of its own
// stage.
func (r *Router) Process(req *http.Request, res *dispatch.Response, next dispatch.Next) (*dispatch.Response, error) {
	res, err := runStage(r.preRoute, &req, res)
	if err != nil {
		return res, err
	}

	out, err := r.dispatchRoute(req, res, next)
	if err != nil {
		var se httperror.StatusError
		if !errors.As(err, &se) {
			return out, err
		}
		getRouterMetrics().errorsConverted.Inc()
		r.logger.WithContext(req.Context()).Debug("http error converted",
			observability.Int("status", se.StatusCode()),
			observability.String("path", requestPath(req)),
		)
		// A replacement response returned alongside the error keeps
		// its headers through conversion.
		if out != nil {
			res = out
		}
		res.SetStatus(se.StatusCode())
		res.Header().Set("Content-Type", "text/plain; charset=utf-8")
		res.SetBody([]byte(se.Error()))
	} else {
		res = out
	}

	if handler, ok := r.statusHandlers[res.Status()]; ok {
		if res, err = handler.Process(req, res, passthrough); err != nil {
			return res, err
		}
	}

	if res, err = runStage(r.postRoute, &req, res); err != nil {
		return res, err
	}

	return runStage(r.prepare, &req, res)
}

// dispatchRoute matches the request path, binds path variables, and
// dispatches the matched route behind any router-level middleware.
func (r *Router) dispatchRoute(req *http.Request, res *dispatch.Response, next dispatch.Next) (*dispatch.Response, error) {
	path := requestPath(req)

	rt, vars, ok := r.table.Match(path)
	if !ok {
		getRouterMetrics().notFoundTotal.Inc()
		if r.continueOnNotFound && next != nil {
			return next(req, res)
		}
		res.SetStatus(http.StatusNotFound)
		res.Header().Set("Content-Type", "text/plain; charset=utf-8")
		res.SetBody([]byte(http.StatusText(http.StatusNotFound)))
		return res, nil
	}

	getRouterMetrics().matchesTotal.WithLabelValues(string(rt.Kind())).Inc()
	r.logger.WithContext(req.Context()).Debug("route matched",
		observability.String("target", rt.Target()),
		observability.String("kind", string(rt.Kind())),
		observability.String("path", path),
	)

	req = bindVariables(req, vars, r.varBucket)

	if len(r.middleware) == 0 {
		return rt.Process(req, res, next)
	}

	chain := make(dispatch.Chain, 0, len(r.middleware)+1)
	chain = append(chain, r.middleware...)
	chain = append(chain, rt)
	return chain.Process(req, res, next)
}

// ServeHTTP adapts the router to net/http. Unconverted dispatch errors
// become a plain 500; panics are not recovered at this layer.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	res, err := r.Process(req, dispatch.NewResponse(), nil)
	if err != nil {
		r.logger.WithContext(req.Context()).Error("dispatch failed",
			observability.String("method", req.Method),
			observability.String("path", requestPath(req)),
			observability.Error(err),
		)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	if err := res.WriteTo(w); err != nil {
		r.logger.WithContext(req.Context()).Warn("response write failed",
			observability.Error(err),
		)
	}
}

// runStage dispatches a hook chain and carries any request
// replacement forward to the following stages.
func runStage(hooks dispatch.Chain, req **http.Request, res *dispatch.Response) (*dispatch.Response, error) {
	if len(hooks) == 0 {
		return res, nil
	}
	return hooks.Process(*req, res, func(q *http.Request, s *dispatch.Response) (*dispatch.Response, error) {
		*req = q
		return s, nil
	})
}

func passthrough(_ *http.Request, res *dispatch.Response) (*dispatch.Response, error) {
	return res, nil
}

// requestPath extracts the path component of the raw request target.
func requestPath(req *http.Request) string {
	if req.URL != nil && req.URL.Path != "" {
		return req.URL.Path
	}
	target := req.RequestURI
	if i := strings.IndexAny(target, "?#"); i >= 0 {
		target = target[:i]
	}
	if target == "" {
		return "/"
	}
	return target
}
