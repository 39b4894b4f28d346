package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gintechsystems/wellrested/dispatch"
	"github.com/gintechsystems/wellrested/observability"
)

func TestRequestIDGeneratesWhenMissing(t *testing.T) {
	t.Parallel()

	var boundID string
	mw := RequestID()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	res, err := mw.Process(req, dispatch.NewResponse(), func(req *http.Request, res *dispatch.Response) (*dispatch.Response, error) {
		boundID, _ = observability.RequestIDFromContext(req.Context())
		return res, nil
	})
	require.NoError(t, err)
	assert.NotEmpty(t, boundID)
	assert.Equal(t, boundID, res.Header().Get(RequestIDHeader))
}

func TestRequestIDPreservesIncoming(t *testing.T) {
	t.Parallel()

	var boundID string
	mw := RequestID()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "incoming-id")

	res, err := mw.Process(req, dispatch.NewResponse(), func(req *http.Request, res *dispatch.Response) (*dispatch.Response, error) {
		boundID, _ = observability.RequestIDFromContext(req.Context())
		return res, nil
	})
	require.NoError(t, err)
	assert.Equal(t, "incoming-id", boundID)
	assert.Equal(t, "incoming-id", res.Header().Get(RequestIDHeader))
}

func TestRequestIDWithGenerator(t *testing.T) {
	t.Parallel()

	mw := RequestIDWithGenerator(func() string { return "fixed" })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	res, err := mw.Process(req, dispatch.NewResponse(), nil)
	require.NoError(t, err)
	assert.Equal(t, "fixed", res.Header().Get(RequestIDHeader))
}
