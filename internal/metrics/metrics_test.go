package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
)

func TestMetricsRegistry(t *testing.T) {
	InitRegistry()
	registry := GetRegistry()

	assert.NotNil(t, registry)
	assert.IsType(t, &prometheus.Registry{}, registry)
}

func TestRecordMatchProcessed(t *testing.T) {
	InitRegistry()

	assert.NotPanics(t, func() {
		RecordMatchProcessed(0.02)
	})
}

func TestRecordPrediction(t *testing.T) {
	InitRegistry()

	assert.NotPanics(t, func() {
		RecordPrediction(false)
		RecordPrediction(true)
	})
}

func TestRecordFeedRequest(t *testing.T) {
	InitRegistry()

	assert.NotPanics(t, func() {
		RecordFeedRequest("soccer_epl", "success")
		RecordFeedRequest("soccer_epl", "failure")
	})
}

func TestSetModelReady(t *testing.T) {
	InitRegistry()

	assert.NotPanics(t, func() {
		SetModelReady(true)
		SetModelReady(false)
	})
}

func TestHandlerServesMetrics(t *testing.T) {
	InitRegistry()
	RecordValueBet()
	UpdateLiveMatches(3)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "value_scout_value_bets_detected_total")
	assert.Contains(t, rec.Body.String(), "value_scout_live_matches")
}
