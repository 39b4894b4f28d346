package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"

	"github.com/gintechsystems/wellrested/dispatch"
)

func TestTracing(t *testing.T) {
	t.Parallel()

	mw := Tracing()

	var spanInContext bool
	req := httptest.NewRequest(http.MethodGet, "/cats/", nil)
	res, err := mw.Process(req, dispatch.NewResponse(), func(req *http.Request, res *dispatch.Response) (*dispatch.Response, error) {
		spanInContext = trace.SpanFromContext(req.Context()) != nil
		res.WriteString("traced")
		return res, nil
	})
	require.NoError(t, err)
	assert.True(t, spanInContext)
	assert.Equal(t, "traced", string(res.Body()))
}

func TestTracingPropagatesErrors(t *testing.T) {
	t.Parallel()

	mw := Tracing()

	boom := errors.New("boom")
	req := httptest.NewRequest(http.MethodGet, "/cats/", nil)
	_, err := mw.Process(req, dispatch.NewResponse(), func(req *http.Request, res *dispatch.Response) (*dispatch.Response, error) {
		return res, boom
	})
	assert.ErrorIs(t, err, boom)
}

func TestTracingWithoutContinuation(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/cats/", nil)
	res, err := Tracing().Process(req, dispatch.NewResponse(), nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, res.Status())
}
