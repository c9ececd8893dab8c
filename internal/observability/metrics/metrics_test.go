package metrics

import (
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPipelineMetrics(t *testing.T) {
	registry := prometheus.NewRegistry()
	m, err := NewPipelineMetrics(registry)
	require.NoError(t, err)

	m.RecordCapture("filed")
	m.RecordCapture("filed")
	m.RecordCapture("needs_review")
	m.RecordCorrection("deleted")
	m.RecordNotificationError("reaction")
	m.ObserveClassification(300*time.Millisecond, nil)
	m.ObserveClassification(time.Second, errors.New("boom"))

	assert.Equal(t, float64(2), testutil.ToFloat64(m.capturesTotal.WithLabelValues("filed")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.capturesTotal.WithLabelValues("needs_review")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.correctionsTotal.WithLabelValues("deleted")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.notificationErrorTotal.WithLabelValues("reaction")))
	assert.Equal(t, 2, testutil.CollectAndCount(m.classifierDuration))
}

func TestPipelineMetrics_DoubleRegistration(t *testing.T) {
	registry := prometheus.NewRegistry()
	_, err := NewPipelineMetrics(registry)
	require.NoError(t, err)

	_, err = NewPipelineMetrics(registry)
	assert.Error(t, err)
}

func TestHTTPMetrics(t *testing.T) {
	registry := prometheus.NewRegistry()
	m, err := NewHTTPMetrics(registry)
	require.NoError(t, err)

	m.ObserveRequest("POST", "POST /slack/events", 200, 20*time.Millisecond)
	m.ObserveRequest("POST", "POST /slack/events", 401, time.Millisecond)

	assert.Equal(t, float64(1), testutil.ToFloat64(m.requestsTotal.WithLabelValues("POST", "POST /slack/events", "200")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.requestsTotal.WithLabelValues("POST", "POST /slack/events", "401")))
}

func TestMetrics_HandlerExposesCollectors(t *testing.T) {
	m, err := New()
	require.NoError(t, err)

	m.Pipeline.RecordCapture("filed")
	m.HTTP.ObserveRequest("GET", "GET /live", 200, time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler(slog.New(slog.DiscardHandler)).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `secondbrain_captures_total{outcome="filed"} 1`)
	assert.Contains(t, body, `secondbrain_http_requests_total{method="GET",route="GET /live",status_code="200"} 1`)
	assert.Contains(t, body, "go_goroutines")
}
