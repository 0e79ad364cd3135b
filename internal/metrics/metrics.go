// Package metrics holds the service's prometheus collectors.
package metrics

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Submit outcomes.
const (
	OutcomeCreated      = "created"
	OutcomeConsolidated = "consolidated"
)

// Metrics groups the collectors. A nil *Metrics records nothing.
type Metrics struct {
	gatherer       prometheus.Gatherer
	requests       *prometheus.CounterVec
	duration       *prometheus.HistogramVec
	eventsSubmit   *prometheus.CounterVec
	eventsInserted prometheus.Counter
	eventsRemoved  prometheus.Counter
}

// New registers the collectors with reg. Pass prometheus.NewRegistry() in tests.
func New(reg *prometheus.Registry) *Metrics {
	m := &Metrics{
		gatherer: reg,
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "timetrack",
			Name:      "http_requests_total",
			Help:      "HTTP requests by route, method and status.",
		}, []string{"route", "method", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "timetrack",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route and method.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method"}),
		eventsSubmit: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "timetrack",
			Name:      "events_submitted_total",
			Help:      "Submitted events by outcome: created or consolidated into the latest event.",
		}, []string{"outcome"}),
		eventsInserted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "timetrack",
			Name:      "events_inserted_total",
			Help:      "Events inserted at an explicit time.",
		}),
		eventsRemoved: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "timetrack",
			Name:      "events_removed_total",
			Help:      "Events deleted.",
		}),
	}
	reg.MustRegister(m.requests, m.duration, m.eventsSubmit, m.eventsInserted, m.eventsRemoved)
	return m
}

// ObserveSubmit counts one submit with the given outcome.
func (m *Metrics) ObserveSubmit(outcome string) {
	if m == nil {
		return
	}
	m.eventsSubmit.WithLabelValues(outcome).Inc()
}

// ObserveInsert counts one point-in-time insert.
func (m *Metrics) ObserveInsert() {
	if m == nil {
		return
	}
	m.eventsInserted.Inc()
}

// ObserveRemove counts n deleted events.
func (m *Metrics) ObserveRemove(n int64) {
	if m == nil || n <= 0 {
		return
	}
	m.eventsRemoved.Add(float64(n))
}

// Middleware records request counts and latency per matched route.
func (m *Metrics) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if m == nil {
				return next(c)
			}
			start := time.Now()
			err := next(c)

			status := c.Response().Status
			if err != nil {
				if he, ok := err.(*echo.HTTPError); ok {
					status = he.Code
				} else {
					status = 500
				}
			}
			route := c.Path()
			method := c.Request().Method
			m.requests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
			m.duration.WithLabelValues(route, method).Observe(time.Since(start).Seconds())
			return err
		}
	}
}

// Handler serves the registry in the prometheus exposition format.
func (m *Metrics) Handler() echo.HandlerFunc {
	return echo.WrapHandler(promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{}))
}
