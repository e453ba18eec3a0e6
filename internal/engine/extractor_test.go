package engine

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/value-scout/internal/oddsfeed"
)

func f64(v float64) *float64 {
	return &v
}

func h2hPayload(home, away string, bookmakers ...oddsfeed.Bookmaker) *oddsfeed.MatchPayload {
	return &oddsfeed.MatchPayload{
		ID:           "match_001",
		SportKey:     "soccer_epl",
		SportTitle:   "EPL",
		HomeTeam:     home,
		AwayTeam:     away,
		CommenceTime: time.Date(2026, 3, 14, 15, 0, 0, 0, time.UTC),
		Bookmakers:   bookmakers,
	}
}

func h2hMarket(outcomes ...oddsfeed.Outcome) oddsfeed.Market {
	return oddsfeed.Market{Key: oddsfeed.MarketKeyH2H, Outcomes: outcomes}
}

func priced(name string, price float64) oddsfeed.Outcome {
	return oddsfeed.Outcome{Name: name, Price: decimal.NewFromFloat(price)}
}

func TestExtractAssignsAllThreeSlots(t *testing.T) {
	payload := h2hPayload("Arsenal", "Chelsea", oddsfeed.Bookmaker{
		Key:     "bet365",
		Markets: []oddsfeed.Market{h2hMarket(
			priced("Arsenal", 1.8),
			priced("Chelsea", 4.2),
			priced("Draw", 3.6),
		)},
	})

	triple := NewOddsExtractor().Extract(payload)

	require.True(t, triple.Complete())
	assert.InDelta(t, 1.8, *triple.HomeOdds, 1e-9)
	assert.InDelta(t, 4.2, *triple.AwayOdds, 1e-9)
	assert.InDelta(t, 3.6, *triple.DrawOdds, 1e-9)
}

func TestExtractLastBookmakerWins(t *testing.T) {
	payload := h2hPayload("Arsenal", "Chelsea",
		oddsfeed.Bookmaker{
			Key:     "bet365",
			Markets: []oddsfeed.Market{h2hMarket(priced("Arsenal", 1.8))},
		},
		oddsfeed.Bookmaker{
			Key:     "williamhill",
			Markets: []oddsfeed.Market{h2hMarket(priced("Arsenal", 1.95))},
		},
	)

	triple := NewOddsExtractor().Extract(payload)

	require.NotNil(t, triple.HomeOdds)
	assert.InDelta(t, 1.95, *triple.HomeOdds, 1e-9)
}

func TestExtractIgnoresNonH2HMarkets(t *testing.T) {
	payload := h2hPayload("Arsenal", "Chelsea", oddsfeed.Bookmaker{
		Key: "bet365",
		Markets: []oddsfeed.Market{
			{Key: "totals", Outcomes: []oddsfeed.Outcome{priced("Over 2.5", 1.9)}},
			{Key: "spreads", Outcomes: []oddsfeed.Outcome{priced("Arsenal", 2.05)}},
		},
	})

	triple := NewOddsExtractor().Extract(payload)

	assert.True(t, triple.Empty())
}

func TestExtractNoBookmakersYieldsEmptyTriple(t *testing.T) {
	triple := NewOddsExtractor().Extract(h2hPayload("Arsenal", "Chelsea"))

	assert.True(t, triple.Empty())
	assert.False(t, triple.Complete())
}

func TestExtractPartialOutcomes(t *testing.T) {
	payload := h2hPayload("Arsenal", "Chelsea", oddsfeed.Bookmaker{
		Key:     "bet365",
		Markets: []oddsfeed.Market{h2hMarket(priced("Arsenal", 2.1), priced("Draw", 3.3))},
	})

	triple := NewOddsExtractor().Extract(payload)

	assert.NotNil(t, triple.HomeOdds)
	assert.Nil(t, triple.AwayOdds)
	assert.NotNil(t, triple.DrawOdds)
}

func TestExtractUnrelatedOutcomeNamesIgnored(t *testing.T) {
	payload := h2hPayload("Arsenal", "Chelsea", oddsfeed.Bookmaker{
		Key:     "bet365",
		Markets: []oddsfeed.Market{h2hMarket(priced("Liverpool", 2.0))},
	})

	triple := NewOddsExtractor().Extract(payload)

	assert.True(t, triple.Empty())
}
