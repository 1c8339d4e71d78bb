package observability

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	jobmetrics "github.com/ledgerdesk/backoffice/internal/jobs"
	"github.com/ledgerdesk/backoffice/internal/platform/db"
)

func scrape(t *testing.T, m *Metrics) string {
	t.Helper()
	rr := httptest.NewRecorder()
	m.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	return rr.Body.String()
}

func TestMetricsHandlerExposesJobMetrics(t *testing.T) {
	metrics := NewMetrics()
	jobmetrics.NewMetrics(metrics.Registerer()).SetReorderItems(4)

	body := scrape(t, metrics)
	assert.Contains(t, body, "backoffice_inventory_reorder_items 4")
	assert.Contains(t, body, "go_goroutines")
}

func TestMetricsMiddlewareRecordsRequest(t *testing.T) {
	metrics := NewMetrics()

	handler := metrics.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	routeCtx := chi.NewRouteContext()
	routeCtx.RoutePatterns = append(routeCtx.RoutePatterns, "/api/sales")

	req := httptest.NewRequest(http.MethodGet, "/api/sales", nil)
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	require.Equal(t, http.StatusTeapot, rr.Code)

	body := scrape(t, metrics)
	assert.Contains(t, body, `backoffice_http_requests_total{code="418",route="/api/sales"} 1`)
	assert.Contains(t, body, `backoffice_http_request_duration_seconds_bucket{route="/api/sales"`)
}

func TestMetricsUnmatchedRoute(t *testing.T) {
	metrics := NewMetrics()
	handler := metrics.Middleware(http.NotFoundHandler())
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nope", nil))

	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.requestsTotal.WithLabelValues("unknown", "404")))
}

func TestRegisterPoolReadsOnScrape(t *testing.T) {
	metrics := NewMetrics()
	calls := 0
	metrics.RegisterPool(func() db.Stats {
		calls++
		return db.Stats{AcquiredConns: 3, IdleConns: 2, MaxConns: 10, EmptyAcquires: 7}
	})

	body := scrape(t, metrics)
	assert.Contains(t, body, "backoffice_db_pool_acquired_connections 3")
	assert.Contains(t, body, "backoffice_db_pool_max_connections 10")
	assert.Contains(t, body, "backoffice_db_pool_empty_acquires_total 7")
	assert.Positive(t, calls)
}

func TestNilMetricsHandler(t *testing.T) {
	var m *Metrics
	rr := httptest.NewRecorder()
	m.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
	assert.True(t, strings.HasPrefix(rr.Body.String(), "Service Unavailable"))
}
