package router

import (
	"net/http"
	"regexp"

	"github.com/gintechsystems/wellrested/dispatch"
)

// Kind classifies how a route target matches request paths.
type Kind string

const (
	// KindStatic matches the exact target path.
	KindStatic Kind = "static"

	// KindPrefix matches any path beginning with the target, which is
	// registered with a trailing *.
	KindPrefix Kind = "prefix"

	// KindTemplate matches a URI template with {name} variables.
	KindTemplate Kind = "template"

	// KindPattern matches a delimited regular expression.
	KindPattern Kind = "pattern"
)

// Route is a single registered path matcher bound to a dispatchable.
// The kind is determined once from the target's syntax and never
// changes; template and pattern matchers are compiled at registration
// and reused for every request.
type Route struct {
	target  string
	kind    Kind
	prefix  string         // target with the trailing * stripped, prefix kind only
	matcher *regexp.Regexp // template and pattern kinds only

	// Exactly one of mw and methods is set. methods is set when the
	// route was registered with method restrictions and can be
	// augmented by later registrations of the same target.
	mw      dispatch.Middleware
	methods *dispatch.MethodMap
}

// Target returns the original registration string.
func (r *Route) Target() string {
	return r.target
}

// Kind returns the route's classification.
func (r *Route) Kind() Kind {
	return r.kind
}

// match reports whether path matches this route and returns any path
// variables captured by a template or pattern matcher.
func (r *Route) match(path string) (bool, map[string]string) {
	switch r.kind {
	case KindStatic:
		return path == r.target, nil
	case KindPrefix:
		return len(path) >= len(r.prefix) && path[:len(r.prefix)] == r.prefix, nil
	default:
		matches := r.matcher.FindStringSubmatch(path)
		if matches == nil {
			return false, nil
		}
		vars := make(map[string]string)
		for i, name := range r.matcher.SubexpNames() {
			if i > 0 && name != "" && i < len(matches) {
				vars[name] = matches[i]
			}
		}
		return true, vars
	}
}

// Process implements dispatch.Middleware by running the route's
// dispatchable or method map.
func (r *Route) Process(req *http.Request, res *dispatch.Response, next dispatch.Next) (*dispatch.Response, error) {
	if r.methods != nil {
		return r.methods.Process(req, res, next)
	}
	return r.mw.Process(req, res, next)
}
