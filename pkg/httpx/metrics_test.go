package httpx_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/calendar-couple/couple/pkg/httpx"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestHTTPMetricsInstrument(t *testing.T) {
	t.Parallel()

	registry := prometheus.NewRegistry()
	metrics, err := httpx.NewHTTPMetrics(httpx.HTTPMetricsOptions{Registerer: registry})
	require.NoError(t, err)

	h := metrics.Instrument("GET /api/calendars/{calendarId}", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	for _, path := range []string{"/api/calendars/1", "/api/calendars/2"} {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		require.Equal(t, http.StatusNotFound, rec.Code)
	}

	labels := prometheus.Labels{
		"method": http.MethodGet,
		"route":  "GET /api/calendars/{calendarId}",
		"status": "404",
	}
	require.InDelta(t, 2, testutil.ToFloat64(metrics.Requests.With(labels)), 0)
	require.InDelta(t, 0, testutil.ToFloat64(metrics.InFlight), 0)
	require.Positive(t, testutil.CollectAndCount(metrics.Duration))
}

func TestHTTPMetricsImplicitStatus(t *testing.T) {
	t.Parallel()

	registry := prometheus.NewRegistry()
	metrics, err := httpx.NewHTTPMetrics(httpx.HTTPMetricsOptions{Registerer: registry})
	require.NoError(t, err)

	h := metrics.Instrument("GET /livez", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/livez", nil))

	require.InDelta(t, 1, testutil.ToFloat64(metrics.Requests.With(prometheus.Labels{
		"method": http.MethodGet,
		"route":  "GET /livez",
		"status": "200",
	})), 0)
}

func TestHTTPMetricsReusesCollectors(t *testing.T) {
	t.Parallel()

	registry := prometheus.NewRegistry()
	first, err := httpx.NewHTTPMetrics(httpx.HTTPMetricsOptions{Registerer: registry})
	require.NoError(t, err)

	second, err := httpx.NewHTTPMetrics(httpx.HTTPMetricsOptions{Registerer: registry})
	require.NoError(t, err)
	require.Same(t, first.Requests, second.Requests)
}

func TestHTTPMetricsNilIsNoop(t *testing.T) {
	t.Parallel()

	var metrics *httpx.HTTPMetrics
	rec := httptest.NewRecorder()
	metrics.Instrument("GET /ping", okHandler).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))
	require.Equal(t, http.StatusOK, rec.Code)
}
