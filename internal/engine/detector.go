package engine

import (
	"github.com/yourusername/value-scout/internal/models"
)

// DefaultEdgeThreshold is the minimum edge required for a value bet.
const DefaultEdgeThreshold = 0.05

// ValueBetDetector compares predicted probabilities against market-implied
// probabilities and selects the single best outcome whose edge exceeds the
// configured threshold. Pure; no state beyond the threshold.
type ValueBetDetector struct {
	threshold float64
}

// NewValueBetDetector creates a detector with the given edge threshold.
// A non-positive threshold falls back to the default.
func NewValueBetDetector(threshold float64) *ValueBetDetector {
	if threshold <= 0 {
		threshold = DefaultEdgeThreshold
	}
	return &ValueBetDetector{threshold: threshold}
}

// Threshold returns the configured edge threshold
func (d *ValueBetDetector) Threshold() float64 {
	return d.threshold
}

// Detect evaluates each outcome independently: outcomes with absent odds or
// non-positive predicted probability are skipped, the rest qualify when
// edge = predicted - implied exceeds the threshold. Among qualifiers the one
// with maximum edge wins; exact ties resolve in home > away > draw order.
// Returns nil when nothing qualifies.
func (d *ValueBetDetector) Detect(prediction models.PredictionResult, odds models.OddsTriple) *models.ValueBet {
	var best *models.ValueBet

	for _, outcome := range models.Outcomes {
		oddsValue := odds.ForOutcome(outcome)
		prob := prediction.Probability(outcome)
		if oddsValue == nil || prob <= 0 {
			continue
		}

		implied := 1.0 / *oddsValue
		edge := prob - implied
		if edge <= d.threshold {
			continue
		}

		if best == nil || edge > best.Edge {
			best = &models.ValueBet{
				Side:                 outcome,
				Edge:                 edge,
				EV:                   (*oddsValue-1)*prob - (1 - prob),
				Odds:                 *oddsValue,
				PredictedProbability: prob,
				ImpliedProbability:   implied,
			}
		}
	}

	return best
}
