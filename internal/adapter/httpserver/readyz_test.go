package httpserver_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	httpserver "github.com/zawlinnphyo/wordstake/internal/adapter/httpserver"
	"github.com/zawlinnphyo/wordstake/internal/config"
	"github.com/zawlinnphyo/wordstake/internal/usecase"
)

func newProbeServer(dbErr, redisErr error) *httpserver.Server {
	dbCheck := func(context.Context) error { return dbErr }
	redisCheck := func(context.Context) error { return redisErr }
	return httpserver.NewServer(config.Config{}, usecase.MilestoneService{}, usecase.ValidationService{}, usecase.RefundService{}, nil, dbCheck, redisCheck)
}

func TestReadyz_AllOK(t *testing.T) {
	srv := newProbeServer(nil, nil)
	r := httptest.NewRequest(http.MethodGet, "/readyz", nil)
	w := httptest.NewRecorder()
	srv.ReadyzHandler()(w, r)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestReadyz_RedisDown(t *testing.T) {
	srv := newProbeServer(nil, errors.New("connection refused"))
	r := httptest.NewRequest(http.MethodGet, "/readyz", nil)
	w := httptest.NewRecorder()
	srv.ReadyzHandler()(w, r)
	require.Equal(t, http.StatusServiceUnavailable, w.Code)
	require.Contains(t, w.Body.String(), "connection refused")
}

func TestHealthz(t *testing.T) {
	srv := newProbeServer(nil, nil)
	r := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()
	srv.HealthzHandler()(w, r)
	require.Equal(t, http.StatusOK, w.Code)
}
