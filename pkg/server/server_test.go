package server

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"github.com/mchmarny/sidenav/pkg/metric"
)

type checker struct {
	err error
}

func (c checker) Healthy(context.Context) error { return c.err }
func (c checker) Ready(context.Context) error   { return c.err }

func get(t *testing.T, h http.Handler, path string) (int, string) {
	t.Helper()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	return rec.Code, string(body)
}

func TestSimpleHealth(t *testing.T) {
	t.Parallel()

	code, body := get(t, New(WithSimpleHealth()).Handler(), "/healthz")
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, "ok", body)
}

func TestProbes(t *testing.T) {
	t.Parallel()

	h := New(WithHealthCheck(checker{}), WithReadiness(checker{err: errors.New("content not loaded")})).Handler()

	code, _ := get(t, h, "/healthz")
	require.Equal(t, http.StatusOK, code)

	code, body := get(t, h, "/readyz")
	require.Equal(t, http.StatusServiceUnavailable, code)
	require.Equal(t, "content not loaded", body)
}

func TestHandlerAndMetrics(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	renders := metric.NewCounterWithRegistry(reg, "renders_total", "Menus rendered.", "format")

	h := New(
		WithRegistry(reg),
		WithPrometheusMetrics(),
		WithRequestLogging(),
		WithHandler("GET /api/ping", http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			renders.Increment("json")
			w.WriteHeader(http.StatusAccepted)
		})),
	).Handler()

	code, _ := get(t, h, "/api/ping")
	require.Equal(t, http.StatusAccepted, code)

	code, body := get(t, h, "/metrics")
	require.Equal(t, http.StatusOK, code)
	require.Contains(t, body, `sidenav_renders_total{format="json"} 1`)
}

func TestMetricsDisabledByDefault(t *testing.T) {
	t.Parallel()

	code, _ := get(t, New().Handler(), "/metrics")
	require.Equal(t, http.StatusNotFound, code)
}

func TestServeLifecycle(t *testing.T) {
	t.Parallel()

	srv := New(WithPort(0), WithSimpleHealth(), WithShutdownTimeout(time.Second))
	require.False(t, srv.IsRunning())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx) }()

	require.Eventually(t, srv.IsRunning, 2*time.Second, 10*time.Millisecond)

	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("server did not shut down")
	}
	require.False(t, srv.IsRunning())
}

func TestServeFailsOnMissingCertificate(t *testing.T) {
	t.Parallel()

	srv := New(WithPort(0), WithTLS(TLSConfig{CertFile: "missing.pem", KeyFile: "missing.key"}))
	err := srv.Serve(context.Background())
	require.Error(t, err)
	require.Contains(t, err.Error(), "TLS certificate")
}
