package router

import (
	"context"
	"net/http"
)

type variableKey string

type variableMapKey string

// bindVariables attaches matched path variables to the request before
// the route's dispatchable runs. With a bucket name configured, the
// whole map is bound under that one attribute; otherwise each variable
// is bound individually. Downstream stages see the augmented request
// value.
func bindVariables(req *http.Request, vars map[string]string, bucket string) *http.Request {
	if len(vars) == 0 {
		return req
	}

	ctx := req.Context()
	if bucket != "" {
		ctx = context.WithValue(ctx, variableMapKey(bucket), vars)
	} else {
		for name, value := range vars {
			ctx = context.WithValue(ctx, variableKey(name), value)
		}
	}
	return req.WithContext(ctx)
}

// PathVariable returns an individually bound path variable. It only
// finds variables on routers configured without a bucket attribute.
func PathVariable(req *http.Request, name string) (string, bool) {
	value, ok := req.Context().Value(variableKey(name)).(string)
	return value, ok
}

// PathVariables returns the variable map bound under the configured
// bucket attribute, or nil when absent.
func PathVariables(req *http.Request, bucket string) map[string]string {
	vars, _ := req.Context().Value(variableMapKey(bucket)).(map[string]string)
	return vars
}
