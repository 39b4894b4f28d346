package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gintechsystems/wellrested/dispatch"
)

func TestRateLimitAllows(t *testing.T) {
	t.Parallel()

	mw := RateLimit(100, 10)

	var nextRan bool
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	res, err := mw.Process(req, dispatch.NewResponse(), func(req *http.Request, res *dispatch.Response) (*dispatch.Response, error) {
		nextRan = true
		return res, nil
	})
	require.NoError(t, err)
	assert.True(t, nextRan)
	assert.Equal(t, http.StatusOK, res.Status())
}

func TestRateLimitRejects(t *testing.T) {
	t.Parallel()

	// Burst of one: the second immediate request must be rejected.
	mw := RateLimit(1, 1)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	_, err := mw.Process(req, dispatch.NewResponse(), nil)
	require.NoError(t, err)

	var nextRan bool
	res, err := mw.Process(req, dispatch.NewResponse(), func(req *http.Request, res *dispatch.Response) (*dispatch.Response, error) {
		nextRan = true
		return res, nil
	})
	require.NoError(t, err)
	assert.False(t, nextRan, "rejected requests never reach the chain")
	assert.Equal(t, http.StatusTooManyRequests, res.Status())
	assert.Equal(t, "1", res.Header().Get("Retry-After"))
}
