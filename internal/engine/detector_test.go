package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/value-scout/internal/models"
)

func TestDetectReturnsNilBelowThreshold(t *testing.T) {
	detector := NewValueBetDetector(0.05)

	// fair odds, zero edge everywhere
	prediction := models.PredictionResult{
		HomeWinProbability: 0.5,
		AwayWinProbability: 0.3,
		DrawProbability:    0.2,
	}
	odds := models.OddsTriple{HomeOdds: f64(2.0), AwayOdds: f64(3.3333333333), DrawOdds: f64(5.0)}

	assert.Nil(t, detector.Detect(prediction, odds))
}

func TestDetectSelectsQualifyingOutcome(t *testing.T) {
	detector := NewValueBetDetector(0.05)

	prediction := models.PredictionResult{
		HomeWinProbability: 0.80,
		AwayWinProbability: 0.10,
		DrawProbability:    0.10,
	}
	odds := models.OddsTriple{HomeOdds: f64(1.5), AwayOdds: f64(6.0), DrawOdds: f64(4.0)}

	bet := detector.Detect(prediction, odds)
	require.NotNil(t, bet)

	assert.Equal(t, models.OutcomeHome, bet.Side)
	assert.InDelta(t, 1.5, bet.Odds, 1e-9)
	assert.InDelta(t, 0.80-1.0/1.5, bet.Edge, 1e-9)
	assert.InDelta(t, (1.5-1)*0.80-(1-0.80), bet.EV, 1e-9)
	assert.InDelta(t, 1.0/1.5, bet.ImpliedProbability, 1e-9)
	assert.InDelta(t, 0.80, bet.PredictedProbability, 1e-9)
}

func TestDetectPicksMaximumEdge(t *testing.T) {
	detector := NewValueBetDetector(0.05)

	// away edge 0.10 beats home edge 0.0666...
	prediction := models.PredictionResult{
		HomeWinProbability: 0.40,
		AwayWinProbability: 0.35,
		DrawProbability:    0.25,
	}
	odds := models.OddsTriple{HomeOdds: f64(3.0), AwayOdds: f64(4.0), DrawOdds: f64(4.0)}

	bet := detector.Detect(prediction, odds)
	require.NotNil(t, bet)
	assert.Equal(t, models.OutcomeAway, bet.Side)
	assert.InDelta(t, 0.10, bet.Edge, 1e-9)
}

func TestDetectTiePrefersHomeOverAwayOverDraw(t *testing.T) {
	detector := NewValueBetDetector(0.05)

	// identical edges on home and away
	prediction := models.PredictionResult{
		HomeWinProbability: 0.45,
		AwayWinProbability: 0.45,
		DrawProbability:    0.10,
	}
	odds := models.OddsTriple{HomeOdds: f64(4.0), AwayOdds: f64(4.0), DrawOdds: f64(10.0)}

	bet := detector.Detect(prediction, odds)
	require.NotNil(t, bet)
	assert.Equal(t, models.OutcomeHome, bet.Side)
}

func TestDetectSkipsAbsentOdds(t *testing.T) {
	detector := NewValueBetDetector(0.05)

	prediction := models.PredictionResult{
		HomeWinProbability: 0.90,
		AwayWinProbability: 0.05,
		DrawProbability:    0.05,
	}
	odds := models.OddsTriple{AwayOdds: f64(6.0), DrawOdds: f64(4.0)}

	// the only outcome with a big edge has no odds posted
	assert.Nil(t, detector.Detect(prediction, odds))
}

func TestDetectSkipsNonPositiveProbability(t *testing.T) {
	detector := NewValueBetDetector(0.05)

	prediction := models.PredictionResult{
		HomeWinProbability: 0,
		AwayWinProbability: 0,
		DrawProbability:    0,
	}
	odds := models.OddsTriple{HomeOdds: f64(2.0), AwayOdds: f64(3.0), DrawOdds: f64(4.0)}

	assert.Nil(t, detector.Detect(prediction, odds))
}

func TestDetectEdgeExactlyAtThresholdDoesNotQualify(t *testing.T) {
	detector := NewValueBetDetector(0.05)

	// implied 0.5, predicted 0.55: edge exactly equals the threshold
	prediction := models.PredictionResult{HomeWinProbability: 0.55}
	odds := models.OddsTriple{HomeOdds: f64(2.0)}

	assert.Nil(t, detector.Detect(prediction, odds))
}

func TestDetectorDefaultThreshold(t *testing.T) {
	assert.InDelta(t, DefaultEdgeThreshold, NewValueBetDetector(0).Threshold(), 1e-9)
	assert.InDelta(t, 0.08, NewValueBetDetector(0.08).Threshold(), 1e-9)
}
