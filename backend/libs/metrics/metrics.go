package metrics

import (
	"bufio"
	"errors"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome labels for gateway fetches.
const (
	OutcomeOK    = "ok"
	OutcomeEmpty = "empty"
	OutcomeError = "error"
)

// Metrics groups the collectors exposed by a service. Each instance owns its registry so
// tests can build as many as they like.
type Metrics struct {
	registry *prometheus.Registry

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	GatewayCallsTotal   *prometheus.CounterVec
	GatewayCallDuration *prometheus.HistogramVec
	CacheLookupsTotal   *prometheus.CounterVec
	LiveConnections     prometheus.Gauge
}

// New registers all collectors under the given namespace.
func New(namespace string) *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		}, []string{"method", "route", "status"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Duration of HTTP request processing in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		GatewayCallsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "gateway_calls_total",
			Help:      "Data gateway calls by source, resource and outcome",
		}, []string{"source", "resource", "outcome"}),
		GatewayCallDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "gateway_call_duration_seconds",
			Help:      "Duration of data gateway calls in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"source", "resource"}),
		CacheLookupsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_lookups_total",
			Help:      "Gateway cache lookups by resource and result",
		}, []string{"resource", "result"}),
		LiveConnections: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "live_connections",
			Help:      "Number of open live feed websocket connections",
		}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.GatewayCallsTotal,
		m.GatewayCallDuration,
		m.CacheLookupsTotal,
		m.LiveConnections,
	)
	return m
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler returns an HTTP handler that exposes the registered collectors.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveGatewayCall records one gateway call. A nil receiver is a no-op.
func (m *Metrics) ObserveGatewayCall(source, resource, outcome string, took time.Duration) {
	if m == nil {
		return
	}
	if took < 0 {
		took = 0
	}
	m.GatewayCallsTotal.WithLabelValues(source, resource, outcome).Inc()
	m.GatewayCallDuration.WithLabelValues(source, resource).Observe(took.Seconds())
}

// ObserveCacheLookup records a cache hit or miss. A nil receiver is a no-op.
func (m *Metrics) ObserveCacheLookup(resource string, hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.CacheLookupsTotal.WithLabelValues(resource, result).Inc()
}

// HTTPMiddleware instruments HTTP handlers with request/latency metrics. routeOf maps a
// request to a low-cardinality route label and is evaluated after the handler ran, so
// routers that resolve patterns lazily still report the matched pattern.
func (m *Metrics) HTTPMiddleware(routeOf func(*http.Request) string) func(http.Handler) http.Handler {
	if routeOf == nil {
		routeOf = func(r *http.Request) string { return r.URL.Path }
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			start := time.Now()

			next.ServeHTTP(recorder, r)

			route := routeOf(r)
			if route == "" {
				route = "unmatched"
			}
			m.HTTPRequestsTotal.WithLabelValues(r.Method, route, strconv.Itoa(recorder.status)).Inc()
			m.HTTPRequestDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
		})
	}
}

// statusRecorder captures the response status code for instrumentation.
type statusRecorder struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (r *statusRecorder) WriteHeader(code int) {
	if !r.wroteHeader {
		r.status = code
		r.wroteHeader = true
	}
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	if !r.wroteHeader {
		r.wroteHeader = true
	}
	return r.ResponseWriter.Write(b)
}

// Unwrap lets http.ResponseController reach the original writer.
func (r *statusRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}

// Hijack passes websocket upgrades through. A hijacked request is recorded as 101.
func (r *statusRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	hj, ok := r.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, errors.New("metrics: response writer does not support hijacking")
	}
	if !r.wroteHeader {
		r.status = http.StatusSwitchingProtocols
		r.wroteHeader = true
	}
	return hj.Hijack()
}
