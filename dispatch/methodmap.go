package dispatch

import (
	"fmt"
	"net/http"
	"strings"
)

// MethodWildcard matches any method not otherwise mapped.
const MethodWildcard = "*"

// MethodMap dispatches by HTTP method. Verbs are normalized to upper
// case at registration; lookup order effects are avoided by keeping
// registration order for the Allow listing. A GET entry also serves
// HEAD unless HEAD is mapped explicitly. An unmapped method yields a
// 405 response with an Allow header, not an error.
type MethodMap struct {
	order    []string
	handlers map[string]Middleware
}

// NewMethodMap creates an empty MethodMap.
func NewMethodMap() *MethodMap {
	return &MethodMap{handlers: make(map[string]Middleware)}
}

// Set registers a dispatchable for one or more comma-separated verbs.
// Verbs are case-insensitive; MethodWildcard maps any method not
// otherwise listed. Registering a verb twice is an error.
func (m *MethodMap) Set(methods string, dispatchable any) error {
	mw, err := Resolve(dispatchable)
	if err != nil {
		return err
	}

	verbs := strings.Split(methods, ",")
	seen := make(map[string]bool, len(verbs))
	for i, method := range verbs {
		verb := strings.ToUpper(strings.TrimSpace(method))
		if verb == "" {
			return fmt.Errorf("malformed method list %q", methods)
		}
		if seen[verb] {
			return fmt.Errorf("method %s listed twice", verb)
		}
		if _, exists := m.handlers[verb]; exists {
			return fmt.Errorf("method %s already registered", verb)
		}
		seen[verb] = true
		verbs[i] = verb
	}

	for _, verb := range verbs {
		m.handlers[verb] = mw
		m.order = append(m.order, verb)
	}
	return nil
}

// Allowed returns the mapped verbs in registration order, with HEAD
// included when implied by GET. The wildcard entry is not listed.
func (m *MethodMap) Allowed() []string {
	allowed := make([]string, 0, len(m.order)+1)
	hasGet, hasHead := false, false
	for _, verb := range m.order {
		if verb == MethodWildcard {
			continue
		}
		allowed = append(allowed, verb)
		switch verb {
		case http.MethodGet:
			hasGet = true
		case http.MethodHead:
			hasHead = true
		}
	}
	if hasGet && !hasHead {
		allowed = append(allowed, http.MethodHead)
	}
	return allowed
}

// Process implements Middleware.
func (m *MethodMap) Process(req *http.Request, res *Response, next Next) (*Response, error) {
	method := strings.ToUpper(req.Method)

	mw := m.handlers[method]
	if mw == nil && method == http.MethodHead {
		mw = m.handlers[http.MethodGet]
	}
	if mw == nil {
		mw = m.handlers[MethodWildcard]
	}
	if mw == nil {
		res.SetStatus(http.StatusMethodNotAllowed)
		res.Header().Set("Allow", strings.Join(m.Allowed(), ", "))
		res.SetBody(nil)
		return res, nil
	}

	return mw.Process(req, res, next)
}
