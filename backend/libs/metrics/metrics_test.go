package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPMiddlewareCountsRequests(t *testing.T) {
	m := New("test")
	handler := m.HTTPMiddleware(func(*http.Request) string { return "/api/things" })(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}),
	)

	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/things/1", nil))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	}

	got := testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/api/things", "404"))
	assert.Equal(t, 3.0, got)
}

func TestObserveGatewayCall(t *testing.T) {
	m := New("test")
	m.ObserveGatewayCall("remote", "stations", OutcomeError, -time.Second)
	m.ObserveGatewayCall("remote", "stations", OutcomeError, time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.GatewayCallsTotal.WithLabelValues("remote", "stations", OutcomeError)))

	var nilMetrics *Metrics
	assert.NotPanics(t, func() {
		nilMetrics.ObserveGatewayCall("remote", "stations", OutcomeOK, time.Second)
		nilMetrics.ObserveCacheLookup("stations", true)
	})
}

func TestHandlerExposesCollectors(t *testing.T) {
	m := New("test")
	m.ObserveCacheLookup("campaigns", true)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), `test_cache_lookups_total{resource="campaigns",result="hit"} 1`))
}
