package logger

import (
	"time"

	"github.com/sirupsen/logrus"
)

// PipelineLogger provides structured logging for the match processing pipeline.
type PipelineLogger struct {
	log *logrus.Logger
}

// NewPipelineLogger creates a pipeline logger
func NewPipelineLogger(log *logrus.Logger) *PipelineLogger {
	return &PipelineLogger{log: log}
}

// LogMatchProcessed logs the outcome of processing a single match payload.
func (l *PipelineLogger) LogMatchProcessed(matchID, homeTeam, awayTeam string, predictedWinner string, confidence float64, valueBetDetected bool) {
	l.log.WithFields(logrus.Fields{
		"component":          "pipeline",
		"match_id":           matchID,
		"home_team":          homeTeam,
		"away_team":          awayTeam,
		"predicted_winner":   predictedWinner,
		"confidence":         confidence,
		"value_bet_detected": valueBetDetected,
	}).Info("Match processed")
}

// LogPayloadRejected logs a payload rejected by validation.
func (l *PipelineLogger) LogPayloadRejected(matchID string, reason error) {
	l.log.WithFields(logrus.Fields{
		"component": "pipeline",
		"match_id":  matchID,
		"reason":    reason.Error(),
	}).Warn("Payload rejected")
}

// LogRefreshCycle logs the summary of a refresh cycle.
func (l *PipelineLogger) LogRefreshCycle(sportKey string, processed, rejected, valueBets int, duration time.Duration) {
	l.log.WithFields(logrus.Fields{
		"component":  "pipeline",
		"sport_key":  sportKey,
		"processed":  processed,
		"rejected":   rejected,
		"value_bets": valueBets,
		"duration":   duration.String(),
	}).Info("Refresh cycle complete")
}

// LogModelTraining logs a model training run.
func (l *PipelineLogger) LogModelTraining(samples int, trainAccuracy, testAccuracy float64, duration time.Duration) {
	l.log.WithFields(logrus.Fields{
		"component":      "predictor",
		"event_type":     "training",
		"samples":        samples,
		"train_accuracy": trainAccuracy,
		"test_accuracy":  testAccuracy,
		"duration":       duration.String(),
	}).Info("Model trained")
}

// LogFallbackPrediction logs an inference failure recovered by the odds fallback.
func (l *PipelineLogger) LogFallbackPrediction(homeTeam, awayTeam string, reason error) {
	fields := logrus.Fields{
		"component":  "predictor",
		"event_type": "fallback",
		"home_team":  homeTeam,
		"away_team":  awayTeam,
	}
	if reason != nil {
		fields["reason"] = reason.Error()
	}
	l.log.WithFields(fields).Warn("Fallback prediction used")
}
