package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestLogger() (*logrus.Logger, *bytes.Buffer) {
	log := logrus.New()
	buf := &bytes.Buffer{}
	log.SetOutput(buf)
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetLevel(logrus.DebugLevel)
	return log, buf
}

func parseLogOutput(buf *bytes.Buffer) map[string]interface{} {
	var logEntry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &logEntry); err != nil {
		return nil
	}
	return logEntry
}

func TestNewLoggerInvalidLevelDefaultsToInfo(t *testing.T) {
	log := NewLogger("nonsense")
	assert.Equal(t, logrus.InfoLevel, log.GetLevel())
}

func TestNewLoggerParsesLevel(t *testing.T) {
	log := NewLogger("debug")
	assert.Equal(t, logrus.DebugLevel, log.GetLevel())
}

func TestPipelineLoggerMatchProcessed(t *testing.T) {
	log, buf := setupTestLogger()
	pipelineLogger := NewPipelineLogger(log)

	pipelineLogger.LogMatchProcessed("match_001", "Arsenal", "Chelsea", "home", 0.62, true)

	logEntry := parseLogOutput(buf)
	require.NotNil(t, logEntry)
	assert.Equal(t, "match_001", logEntry["match_id"])
	assert.Equal(t, "pipeline", logEntry["component"])
	assert.Equal(t, true, logEntry["value_bet_detected"])
}

func TestPipelineLoggerPayloadRejected(t *testing.T) {
	log, buf := setupTestLogger()
	pipelineLogger := NewPipelineLogger(log)

	pipelineLogger.LogPayloadRejected("match_002", errors.New("home and away team names are required"))

	logEntry := parseLogOutput(buf)
	require.NotNil(t, logEntry)
	assert.Equal(t, "match_002", logEntry["match_id"])
	assert.Contains(t, logEntry["reason"], "team names")
}

func TestPipelineLoggerRefreshCycle(t *testing.T) {
	log, buf := setupTestLogger()
	pipelineLogger := NewPipelineLogger(log)

	pipelineLogger.LogRefreshCycle("soccer_epl", 20, 1, 3, 750*time.Millisecond)

	logEntry := parseLogOutput(buf)
	require.NotNil(t, logEntry)
	assert.Equal(t, "soccer_epl", logEntry["sport_key"])
	assert.Equal(t, float64(20), logEntry["processed"])
	assert.Equal(t, float64(3), logEntry["value_bets"])
}

func TestPipelineLoggerModelTraining(t *testing.T) {
	log, buf := setupTestLogger()
	pipelineLogger := NewPipelineLogger(log)

	pipelineLogger.LogModelTraining(1000, 0.87, 0.81, 2*time.Second)

	logEntry := parseLogOutput(buf)
	require.NotNil(t, logEntry)
	assert.Equal(t, "training", logEntry["event_type"])
	assert.Equal(t, float64(1000), logEntry["samples"])
}

func TestPipelineLoggerJSONFormat(t *testing.T) {
	log, buf := setupTestLogger()
	pipelineLogger := NewPipelineLogger(log)

	pipelineLogger.LogFallbackPrediction("Arsenal", "Chelsea", errors.New("missing odds"))

	var logEntry map[string]interface{}
	err := json.Unmarshal(buf.Bytes(), &logEntry)
	assert.NoError(t, err)
	assert.NotEmpty(t, logEntry)
}
