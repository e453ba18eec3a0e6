package engine

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/value-scout/internal/models"
	"github.com/yourusername/value-scout/internal/oddsfeed"
)

func testProcessor(t *testing.T, now time.Time) *MatchProcessor {
	t.Helper()
	predictor := NewOutcomePredictor(testPredictorConfig(t), quietLogger())
	require.NoError(t, predictor.Init())

	processor := NewMatchProcessor(predictor, NewValueBetDetector(DefaultEdgeThreshold), quietLogger())
	processor.now = func() time.Time { return now }
	return processor
}

func fullPayload(commence time.Time) *oddsfeed.MatchPayload {
	return &oddsfeed.MatchPayload{
		ID:           "match_100",
		SportKey:     "soccer_epl",
		SportTitle:   "EPL",
		HomeTeam:     "Arsenal",
		AwayTeam:     "Chelsea",
		CommenceTime: commence,
		Bookmakers: []oddsfeed.Bookmaker{{
			Key: "bet365",
			Markets: []oddsfeed.Market{{
				Key: oddsfeed.MarketKeyH2H,
				Outcomes: []oddsfeed.Outcome{
					{Name: "Arsenal", Price: decimal.NewFromFloat(1.8)},
					{Name: "Chelsea", Price: decimal.NewFromFloat(4.2)},
					{Name: "Draw", Price: decimal.NewFromFloat(3.6)},
				},
			}},
		}},
	}
}

func TestProcessBuildsCompleteRecord(t *testing.T) {
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	processor := testProcessor(t, now)

	record, err := processor.Process(fullPayload(now.Add(2*time.Hour)), nil)
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, record.ID)
	assert.Equal(t, "match_100", record.MatchID)
	assert.Equal(t, "soccer_epl", record.SportKey)
	assert.Equal(t, "Arsenal", record.HomeTeam)
	assert.Equal(t, "Chelsea", record.AwayTeam)
	assert.Equal(t, "Unknown", record.League)
	assert.True(t, record.Complete())
	assertValidDistribution(t, record.PredictionResult)
	assert.Equal(t, now, record.CreatedAt)
	assert.Equal(t, now, record.UpdatedAt)
	assert.False(t, record.IsLive)
}

func TestProcessRejectsMalformedPayloads(t *testing.T) {
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	processor := testProcessor(t, now)

	tests := []struct {
		name    string
		mutate  func(p *oddsfeed.MatchPayload)
		wantErr error
	}{
		{"missing id", func(p *oddsfeed.MatchPayload) { p.ID = "" }, models.ErrMissingMatchID},
		{"missing home team", func(p *oddsfeed.MatchPayload) { p.HomeTeam = "" }, models.ErrMissingTeams},
		{"missing away team", func(p *oddsfeed.MatchPayload) { p.AwayTeam = "  " }, models.ErrMissingTeams},
		{"missing commence time", func(p *oddsfeed.MatchPayload) { p.CommenceTime = time.Time{} }, models.ErrMissingCommence},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload := fullPayload(now.Add(time.Hour))
			tt.mutate(payload)

			_, err := processor.Process(payload, nil)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestProcessOverwritesExistingRecord(t *testing.T) {
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	processor := testProcessor(t, now)

	created := now.Add(-24 * time.Hour)
	existing := &models.MatchRecord{
		ID:           uuid.New(),
		MatchID:      "match_100",
		HomeTeam:     "Old Home",
		AwayTeam:     "Old Away",
		League:       "Old League",
		HomeScore:    2,
		AwayScore:    1,
		MatchStatus:  "In Progress",
		CreatedAt:    created,
		OddsTriple:   models.OddsTriple{HomeOdds: f64(9.9)},
		ValueBetSide: func() *string { s := "away"; return &s }(),
	}

	record, err := processor.Process(fullPayload(now.Add(time.Hour)), existing)
	require.NoError(t, err)

	// identity and creation time survive
	assert.Equal(t, existing.ID, record.ID)
	assert.Equal(t, "match_100", record.MatchID)
	assert.Equal(t, created, record.CreatedAt)

	// derived fields are fully recomputed
	assert.Equal(t, "Arsenal", record.HomeTeam)
	assert.InDelta(t, 1.8, *record.HomeOdds, 1e-9)
	assert.Equal(t, now, record.UpdatedAt)

	// score and status fields belong to the live-update path
	assert.Equal(t, 2, record.HomeScore)
	assert.Equal(t, 1, record.AwayScore)
	assert.Equal(t, "In Progress", record.MatchStatus)
}

func TestProcessLiveWindowBoundaries(t *testing.T) {
	now := time.Date(2026, 3, 14, 15, 0, 0, 0, time.UTC)
	processor := testProcessor(t, now)

	tests := []struct {
		name     string
		commence time.Time
		wantLive bool
	}{
		{"one minute in the future", now.Add(time.Minute), false},
		{"exactly at kickoff", now, true},
		{"mid match", now.Add(-90 * time.Minute), true},
		{"exactly three hours in", now.Add(-3 * time.Hour), true},
		{"three hours one minute in", now.Add(-3*time.Hour - time.Minute), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			record, err := processor.Process(fullPayload(tt.commence), nil)
			require.NoError(t, err)
			assert.Equal(t, tt.wantLive, record.IsLive)
		})
	}
}

func TestProcessLiveWindowRespectsPayloadZone(t *testing.T) {
	zone := time.FixedZone("UTC+2", 2*60*60)
	now := time.Date(2026, 3, 14, 15, 0, 0, 0, time.UTC)
	processor := testProcessor(t, now)

	// same instant expressed in the payload's offset
	record, err := processor.Process(fullPayload(time.Date(2026, 3, 14, 16, 0, 0, 0, zone)), nil)
	require.NoError(t, err)
	assert.True(t, record.IsLive)
}

func TestProcessPayloadWithoutOddsStillProduces(t *testing.T) {
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	processor := testProcessor(t, now)

	payload := fullPayload(now.Add(time.Hour))
	payload.Bookmakers = nil

	record, err := processor.Process(payload, nil)
	require.NoError(t, err)

	assert.True(t, record.Empty())
	assert.Equal(t, models.OutcomeDraw, record.PredictedWinner)
	assert.False(t, record.ValueBetDetected)
	assert.Nil(t, record.ValueBetSide)
}

func TestProcessEndToEndValueBet(t *testing.T) {
	detector := NewValueBetDetector(DefaultEdgeThreshold)

	// a model that strongly favors the home side against short odds
	prediction := models.PredictionResult{
		PredictedWinner:    models.OutcomeHome,
		HomeWinProbability: 0.80,
		AwayWinProbability: 0.10,
		DrawProbability:    0.10,
		Confidence:         0.80,
	}
	odds := models.OddsTriple{HomeOdds: f64(1.5), AwayOdds: f64(6.0), DrawOdds: f64(4.0)}

	bet := detector.Detect(prediction, odds)
	require.NotNil(t, bet)
	assert.Equal(t, models.OutcomeHome, bet.Side)
	assert.InDelta(t, 0.1333, bet.Edge, 1e-3)
	assert.InDelta(t, 1.5, bet.Odds, 1e-9)
}
