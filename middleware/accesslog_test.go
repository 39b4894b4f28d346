package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/gintechsystems/wellrested/dispatch"
	"github.com/gintechsystems/wellrested/observability"
)

func TestAccessLog(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zap.InfoLevel)
	mw := AccessLog(observability.NewZapLogger(zap.New(core)))

	req := httptest.NewRequest(http.MethodGet, "/cats/", nil)
	_, err := mw.Process(req, dispatch.NewResponse(), func(req *http.Request, res *dispatch.Response) (*dispatch.Response, error) {
		res.SetStatus(http.StatusCreated)
		res.WriteString("made")
		return res, nil
	})
	require.NoError(t, err)

	entries := logs.All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "request handled", entries[0].Message)
	assert.Equal(t, "GET", fields["method"])
	assert.Equal(t, "/cats/", fields["path"])
	assert.EqualValues(t, http.StatusCreated, fields["status"])
	assert.EqualValues(t, 4, fields["bytes"])
}

func TestAccessLogError(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zap.InfoLevel)
	mw := AccessLog(observability.NewZapLogger(zap.New(core)))

	boom := errors.New("boom")
	req := httptest.NewRequest(http.MethodGet, "/cats/", nil)
	_, err := mw.Process(req, dispatch.NewResponse(), func(req *http.Request, res *dispatch.Response) (*dispatch.Response, error) {
		return res, boom
	})
	assert.ErrorIs(t, err, boom, "errors are logged and passed on")

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "request failed", entries[0].Message)
}

func TestAccessLogSkipPaths(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zap.InfoLevel)
	mw := AccessLog(observability.NewZapLogger(zap.New(core)),
		WithAccessLogSkipPaths("/healthz"))

	var nextRan bool
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	_, err := mw.Process(req, dispatch.NewResponse(), func(req *http.Request, res *dispatch.Response) (*dispatch.Response, error) {
		nextRan = true
		return res, nil
	})
	require.NoError(t, err)
	assert.True(t, nextRan)
	assert.Empty(t, logs.All())
}
