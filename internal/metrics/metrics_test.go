package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserve(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.ObserveSubmit(OutcomeCreated)
	m.ObserveSubmit(OutcomeConsolidated)
	m.ObserveSubmit(OutcomeConsolidated)
	m.ObserveInsert()
	m.ObserveRemove(3)
	m.ObserveRemove(0)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.eventsSubmit.WithLabelValues(OutcomeCreated)))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.eventsSubmit.WithLabelValues(OutcomeConsolidated)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.eventsInserted))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.eventsRemoved))
}

func TestNilMetrics(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveSubmit(OutcomeCreated)
		m.ObserveInsert()
		m.ObserveRemove(1)
	})
}

func TestMiddlewareAndHandler(t *testing.T) {
	m := New(prometheus.NewRegistry())
	e := echo.New()
	e.Use(m.Middleware())
	e.GET("/ping", func(c echo.Context) error { return c.String(http.StatusOK, "pong") })
	e.GET("/boom", func(c echo.Context) error { return echo.NewHTTPError(http.StatusTeapot) })
	e.GET("/metrics", m.Handler())

	for _, path := range []string{"/ping", "/ping", "/boom"} {
		e.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(m.requests.WithLabelValues("/ping", http.MethodGet, "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("/boom", http.MethodGet, "418")))

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "timetrack_http_requests_total")
}
