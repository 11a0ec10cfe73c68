package service

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsServiceCollects(t *testing.T) {
	m := NewMetricsService()
	m.ObserveHTTPRequest(http.MethodGet, "/miner/license", http.StatusOK, 15*time.Millisecond)
	m.ObserveDBQuery("select:users", 3*time.Millisecond)
	m.RecordRelay(RelayResultStored)
	m.RecordRelay(RelayResultStored)
	m.RecordRelay(RelayResultRejected)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.requestTotal.WithLabelValues(http.MethodGet, "/miner/license", "200")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.relayUploads.WithLabelValues(RelayResultStored)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.relayUploads.WithLabelValues(RelayResultRejected)))

	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "db_query_duration_seconds")
	assert.Contains(t, w.Body.String(), `file_relay_uploads_total{result="stored"} 2`)
}

func TestNilMetricsServiceIsSafe(t *testing.T) {
	var m *MetricsService
	m.ObserveHTTPRequest(http.MethodGet, "/", http.StatusOK, time.Millisecond)
	m.ObserveDBQuery("q", time.Millisecond)
	m.RecordRelay(RelayResultFailed)
	assert.Nil(t, m.Registry())

	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
