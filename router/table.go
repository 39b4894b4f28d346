package router

import (
	"fmt"
	"strings"

	"github.com/gintechsystems/wellrested/dispatch"
)

// RouteTable owns all registered routes, indexed by kind for lookup.
// Every route appears in exactly one of the static index, the prefix
// index, or the pattern list, plus always in the by-target map.
type RouteTable struct {
	byTarget map[string]*Route
	static   map[string]*Route
	prefix   map[string]*Route
	patterns []*Route
}

// NewRouteTable creates an empty RouteTable.
func NewRouteTable() *RouteTable {
	return &RouteTable{
		byTarget: make(map[string]*Route),
		static:   make(map[string]*Route),
		prefix:   make(map[string]*Route),
	}
}

// Add registers a dispatchable for a target. Re-adding a target that
// was registered with WithMethods augments the existing route's method
// map, so method variants accumulate onto one route. Malformed targets
// fail here, at registration time.
func (t *RouteTable) Add(target string, dispatchable any, opts ...AddOption) (*Route, error) {
	var cfg addConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.hasMethods && cfg.methods == "" {
		return nil, fmt.Errorf("target %s: empty method list", target)
	}

	rt, exists := t.byTarget[target]
	if !exists {
		var err error
		rt, err = newRoute(target, cfg.varPatterns)
		if err != nil {
			return nil, err
		}
	}

	if cfg.methods == "" {
		if exists {
			return nil, fmt.Errorf("target %s already registered", target)
		}
		mw, err := dispatch.Resolve(dispatchable)
		if err != nil {
			return nil, fmt.Errorf("target %s: %w", target, err)
		}
		rt.mw = mw
	} else {
		if rt.mw != nil {
			return nil, fmt.Errorf("target %s already registered without method restrictions", target)
		}
		if rt.methods == nil {
			rt.methods = dispatch.NewMethodMap()
		}
		if err := rt.methods.Set(cfg.methods, dispatchable); err != nil {
			return nil, fmt.Errorf("target %s: %w", target, err)
		}
	}

	if !exists {
		t.insert(rt)
	}
	return rt, nil
}

func (t *RouteTable) insert(rt *Route) {
	t.byTarget[rt.target] = rt
	switch rt.kind {
	case KindStatic:
		t.static[rt.target] = rt
	case KindPrefix:
		t.prefix[rt.prefix] = rt
	default:
		t.patterns = append(t.patterns, rt)
	}
}

// Match finds the best route for a request path. Evaluation order:
// exact hit in the static index, then the longest registered prefix
// that prefixes the path, then template and pattern routes in
// registration order. Only template and pattern matches produce path
// variables.
//
// Two distinct prefix keys of equal length can never both prefix the
// same path, so the longest-prefix-wins rule has no observable
// tie-break.
func (t *RouteTable) Match(path string) (*Route, map[string]string, bool) {
	if rt, ok := t.static[path]; ok {
		return rt, nil, true
	}

	var best *Route
	bestLen := -1
	for prefix, rt := range t.prefix {
		if len(prefix) > bestLen && strings.HasPrefix(path, prefix) {
			best = rt
			bestLen = len(prefix)
		}
	}
	if best != nil {
		return best, nil, true
	}

	for _, rt := range t.patterns {
		if ok, vars := rt.match(path); ok {
			return rt, vars, true
		}
	}

	return nil, nil, false
}

// Get returns the route registered for a target.
func (t *RouteTable) Get(target string) (*Route, bool) {
	rt, ok := t.byTarget[target]
	return rt, ok
}

// Len returns the number of registered routes.
func (t *RouteTable) Len() int {
	return len(t.byTarget)
}
