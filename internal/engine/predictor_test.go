package engine

import (
	"io"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/value-scout/internal/models"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func testPredictorConfig(t *testing.T) PredictorConfig {
	t.Helper()
	cfg := DefaultPredictorConfig(filepath.Join(t.TempDir(), "model.gob"))
	// keep training light for tests
	cfg.SyntheticSamples = 200
	cfg.TreeCount = 10
	return cfg
}

func readyPredictor(t *testing.T) *OutcomePredictor {
	t.Helper()
	p := NewOutcomePredictor(testPredictorConfig(t), quietLogger())
	require.NoError(t, p.Init())
	require.True(t, p.Ready())
	return p
}

func completeOdds(home, away, draw float64) models.OddsTriple {
	return models.OddsTriple{HomeOdds: &home, AwayOdds: &away, DrawOdds: &draw}
}

func assertValidDistribution(t *testing.T, result models.PredictionResult) {
	t.Helper()
	sum := result.HomeWinProbability + result.AwayWinProbability + result.DrawProbability
	assert.InDelta(t, 1.0, sum, 1e-6)

	for _, p := range []float64{result.HomeWinProbability, result.AwayWinProbability, result.DrawProbability} {
		assert.GreaterOrEqual(t, p, 0.0)
		assert.LessOrEqual(t, p, 1.0)
	}

	maxProb := result.HomeWinProbability
	if result.AwayWinProbability > maxProb {
		maxProb = result.AwayWinProbability
	}
	if result.DrawProbability > maxProb {
		maxProb = result.DrawProbability
	}
	assert.InDelta(t, maxProb, result.Confidence, 1e-9)
	assert.InDelta(t, maxProb, result.Probability(result.PredictedWinner), 1e-9)
}

func TestPredictorTrainsWhenNoArtifact(t *testing.T) {
	p := NewOutcomePredictor(testPredictorConfig(t), quietLogger())
	assert.False(t, p.Ready())

	require.NoError(t, p.Init())
	assert.True(t, p.Ready())
}

func TestPredictorLoadsPersistedArtifact(t *testing.T) {
	cfg := testPredictorConfig(t)

	first := NewOutcomePredictor(cfg, quietLogger())
	require.NoError(t, first.Init())

	// same artifact path: the second predictor must load, and both must
	// produce identical distributions
	second := NewOutcomePredictor(cfg, quietLogger())
	require.NoError(t, second.Init())

	odds := completeOdds(1.8, 4.2, 3.6)
	a := first.Predict("Arsenal", "Chelsea", "EPL", odds)
	b := second.Predict("Arsenal", "Chelsea", "EPL", odds)
	assert.Equal(t, a, b)
}

func TestPredictDistributionIsValid(t *testing.T) {
	p := readyPredictor(t)

	result := p.Predict("Arsenal", "Chelsea", "EPL", completeOdds(1.8, 4.2, 3.6))
	assertValidDistribution(t, result)
}

func TestPredictUnseenTeamGrowsVocabularyStably(t *testing.T) {
	p := readyPredictor(t)

	first := p.Predict("Wrexham", "Arsenal", "EPL", completeOdds(2.5, 2.8, 3.2))
	assertValidDistribution(t, first)

	idx, ok := p.teamEncoder.Encode("Wrexham")
	require.True(t, ok)

	second := p.Predict("Wrexham", "Arsenal", "EPL", completeOdds(2.5, 2.8, 3.2))
	assert.Equal(t, first, second)

	again, ok := p.teamEncoder.Encode("Wrexham")
	require.True(t, ok)
	assert.Equal(t, idx, again)
}

func TestPredictUnseenLeagueSucceeds(t *testing.T) {
	p := readyPredictor(t)

	result := p.Predict("Arsenal", "Chelsea", "Conference League", completeOdds(2.0, 3.0, 4.0))
	assertValidDistribution(t, result)
}

func TestPredictMissingOddsUsesFallback(t *testing.T) {
	p := readyPredictor(t)

	result := p.Predict("Arsenal", "Chelsea", "EPL", models.OddsTriple{HomeOdds: f64(2.0)})

	assert.Equal(t, models.OutcomeDraw, result.PredictedWinner)
	assert.InDelta(t, 0.33, result.HomeWinProbability, 1e-9)
	assert.InDelta(t, 0.33, result.AwayWinProbability, 1e-9)
	assert.InDelta(t, 0.34, result.DrawProbability, 1e-9)
	assert.InDelta(t, 0.34, result.Confidence, 1e-9)
}

func TestFallbackNormalizesImpliedProbabilities(t *testing.T) {
	result := fallbackPrediction(completeOdds(2.0, 3.0, 4.0))

	// implied (0.5, 0.333..., 0.25) normalized by 13/12
	assert.InDelta(t, 0.461538, result.HomeWinProbability, 1e-4)
	assert.InDelta(t, 0.307692, result.AwayWinProbability, 1e-4)
	assert.InDelta(t, 0.230769, result.DrawProbability, 1e-4)
	assert.Equal(t, models.OutcomeHome, result.PredictedWinner)
	assert.InDelta(t, result.HomeWinProbability, result.Confidence, 1e-9)
	assertValidDistribution(t, result)
}

func TestFallbackAnyOddsMissingIsFlatDraw(t *testing.T) {
	cases := []models.OddsTriple{
		{},
		{HomeOdds: f64(2.0)},
		{HomeOdds: f64(2.0), AwayOdds: f64(3.0)},
		{AwayOdds: f64(3.0), DrawOdds: f64(4.0)},
	}

	for _, odds := range cases {
		result := fallbackPrediction(odds)
		assert.Equal(t, models.OutcomeDraw, result.PredictedWinner)
		assert.InDelta(t, 0.34, result.Confidence, 1e-9)
	}
}

func TestFallbackTieBreakPrefersHome(t *testing.T) {
	// equal odds on every outcome: exact probability tie
	result := fallbackPrediction(completeOdds(3.0, 3.0, 3.0))
	assert.Equal(t, models.OutcomeHome, result.PredictedWinner)
}

func TestResultFromProbabilitiesTieBreak(t *testing.T) {
	result := resultFromProbabilities(0.4, 0.4, 0.2)
	assert.Equal(t, models.OutcomeHome, result.PredictedWinner)

	result = resultFromProbabilities(0.2, 0.4, 0.4)
	assert.Equal(t, models.OutcomeAway, result.PredictedWinner)
}

func TestStrengthFromOdds(t *testing.T) {
	assert.InDelta(t, 0.5, strengthFromOdds(f64(2.0)), 1e-9)
	assert.InDelta(t, 0.3, strengthFromOdds(nil), 1e-9)
	assert.InDelta(t, 0.3, strengthFromOdds(f64(0)), 1e-9)
}

func TestArtifactRoundTrip(t *testing.T) {
	cfg := testPredictorConfig(t)
	p := NewOutcomePredictor(cfg, quietLogger())
	require.NoError(t, p.Train())

	artifact, err := loadArtifact(cfg.ArtifactPath)
	require.NoError(t, err)

	assert.Equal(t, numOutcomeClasses, artifact.Forest.NumClasses)
	assert.Len(t, artifact.Scaler.Means, 8)
	assert.Equal(t, len(syntheticTeams), len(artifact.TeamNames))
	assert.Equal(t, len(syntheticLeagues), len(artifact.LeagueNames))
	assert.False(t, artifact.TrainedAt.IsZero())
}

func TestLoadArtifactMissingFile(t *testing.T) {
	_, err := loadArtifact(filepath.Join(t.TempDir(), "missing.gob"))
	assert.Error(t, err)
}

func TestSyntheticMatchesShape(t *testing.T) {
	p := NewOutcomePredictor(testPredictorConfig(t), quietLogger())
	require.NoError(t, p.Train())

	// every synthetic team and league must be encodable after training
	for _, team := range syntheticTeams {
		_, ok := p.teamEncoder.Encode(team)
		assert.True(t, ok, "team %s missing from encoder", team)
	}
	for _, league := range syntheticLeagues {
		_, ok := p.leagueEncoder.Encode(league)
		assert.True(t, ok, "league %s missing from encoder", league)
	}
}
