// Package metrics holds the Prometheus collectors exported by the server.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
)

// Receipt extraction outcomes.
const (
	ReceiptOK       = "ok"
	ReceiptNoItems  = "no_items"
	ReceiptUpstream = "upstream_error"
	ReceiptInvalid  = "invalid_request"
)

// Metrics groups HTTP and domain collectors.
type Metrics struct {
	ReqTotal        *prometheus.CounterVec
	ReqDur          *prometheus.HistogramVec
	InFlight        prometheus.Gauge
	Recalculations  prometheus.Counter
	ReceiptRequests *prometheus.CounterVec
	ReceiptItems    prometheus.Histogram
}

// New creates the collectors and registers them with reg. A nil reg means
// the default registerer.
func New(namespace string, reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	m := &Metrics{
		ReqTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests handled by the server.",
		}, []string{"method", "route", "status"}),
		ReqDur: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_ms",
			Help:      "HTTP request latency distribution in milliseconds.",
			Buckets:   []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500, 10000},
		}, []string{"method", "route"}),
		InFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "http_in_flight_requests",
			Help:      "Current number of in-flight HTTP requests.",
		}),
		Recalculations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bill_recalculations_total",
			Help:      "Number of summaries recomputed after a bill mutation.",
		}),
		ReceiptRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "receipt_requests_total",
			Help:      "Receipt extraction requests by outcome.",
		}, []string{"result"}),
		ReceiptItems: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "receipt_line_items",
			Help:      "Line items extracted per successful receipt.",
			Buckets:   prometheus.LinearBuckets(0, 5, 8),
		}),
	}
	reg.MustRegister(m.ReqTotal, m.ReqDur, m.InFlight, m.Recalculations, m.ReceiptRequests, m.ReceiptItems)
	return m
}

// RecordRecalculation counts one recomputed summary. Safe on a nil receiver.
func (m *Metrics) RecordRecalculation() {
	if m == nil {
		return
	}
	m.Recalculations.Inc()
}

// RecordReceipt counts one receipt request. items is observed only for ReceiptOK.
func (m *Metrics) RecordReceipt(result string, items int) {
	if m == nil {
		return
	}
	m.ReceiptRequests.WithLabelValues(result).Inc()
	if result == ReceiptOK {
		m.ReceiptItems.Observe(float64(items))
	}
}

// Middleware instruments request/response lifecycle with counters and histograms.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	if m == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		m.InFlight.Inc()
		start := time.Now()
		next.ServeHTTP(ww, r)
		m.InFlight.Dec()

		route := ""
		if rc := chi.RouteContext(r.Context()); rc != nil {
			route = rc.RoutePattern()
		}
		if route == "" {
			route = "unknown"
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		m.ReqTotal.WithLabelValues(r.Method, route, strconv.Itoa(status)).Inc()
		m.ReqDur.WithLabelValues(r.Method, route).Observe(float64(time.Since(start)) / float64(time.Millisecond))
	})
}
