package oddsfeed

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/value-scout/internal/config"
	"github.com/yourusername/value-scout/internal/models"
)

func testFeedConfig(baseURL string) *config.OddsFeedConfig {
	return &config.OddsFeedConfig{
		BaseURL:         baseURL,
		APIKey:          "test-key",
		SportKeys:       []string{"soccer_epl"},
		Regions:         "uk,eu",
		Markets:         "h2h",
		TimeoutSeconds:  5,
		MaxRetries:      0,
		RateLimitPerSec: 100,
	}
}

func testFeedLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

const oddsFixture = `[
	{
		"id": "abc123",
		"sport_key": "soccer_epl",
		"sport_title": "EPL",
		"commence_time": "2026-05-01T15:00:00Z",
		"home_team": "Arsenal",
		"away_team": "Chelsea",
		"bookmakers": [
			{
				"key": "bet365",
				"title": "Bet365",
				"markets": [
					{
						"key": "h2h",
						"outcomes": [
							{"name": "Arsenal", "price": 2.1},
							{"name": "Chelsea", "price": 3.4},
							{"name": "Draw", "price": 3.2}
						]
					}
				]
			}
		]
	}
]`

func TestFetchOdds(t *testing.T) {
	var gotQuery map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/sports/soccer_epl/odds", r.URL.Path)
		gotQuery = map[string]string{
			"apiKey":     r.URL.Query().Get("apiKey"),
			"regions":    r.URL.Query().Get("regions"),
			"markets":    r.URL.Query().Get("markets"),
			"oddsFormat": r.URL.Query().Get("oddsFormat"),
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(oddsFixture))
	}))
	defer server.Close()

	client := NewTheOddsAPIClient(testFeedConfig(server.URL), testFeedLogger())

	payloads, err := client.FetchOdds(context.Background(), "soccer_epl")
	require.NoError(t, err)

	assert.Equal(t, "test-key", gotQuery["apiKey"])
	assert.Equal(t, "uk,eu", gotQuery["regions"])
	assert.Equal(t, "h2h", gotQuery["markets"])
	assert.Equal(t, "decimal", gotQuery["oddsFormat"])

	require.Len(t, payloads, 1)
	payload := payloads[0]
	assert.Equal(t, "abc123", payload.ID)
	assert.Equal(t, "Arsenal", payload.HomeTeam)
	assert.Equal(t, time.Date(2026, 5, 1, 15, 0, 0, 0, time.UTC), payload.CommenceTime.UTC())
	require.Len(t, payload.Bookmakers, 1)
	require.Len(t, payload.Bookmakers[0].Markets, 1)

	outcomes := payload.Bookmakers[0].Markets[0].Outcomes
	require.Len(t, outcomes, 3)
	assert.Equal(t, "2.1", outcomes[0].Price.String())
}

func TestFetchOddsProviderError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message": "invalid api key"}`))
	}))
	defer server.Close()

	client := NewTheOddsAPIClient(testFeedConfig(server.URL), testFeedLogger())

	_, err := client.FetchOdds(context.Background(), "soccer_epl")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}

func TestFetchSports(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/sports", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"key": "soccer_epl", "group": "Soccer", "title": "EPL", "active": true}]`))
	}))
	defer server.Close()

	client := NewTheOddsAPIClient(testFeedConfig(server.URL), testFeedLogger())

	sports, err := client.FetchSports(context.Background())
	require.NoError(t, err)

	require.Len(t, sports, 1)
	assert.Equal(t, "soccer_epl", sports[0].Key)
	assert.True(t, sports[0].Active)
}

func TestPayloadValidate(t *testing.T) {
	valid := MatchPayload{
		ID:           "abc",
		HomeTeam:     "Arsenal",
		AwayTeam:     "Chelsea",
		CommenceTime: time.Now(),
	}
	assert.NoError(t, valid.Validate())

	missingID := valid
	missingID.ID = "  "
	assert.ErrorIs(t, missingID.Validate(), models.ErrMissingMatchID)

	missingTeam := valid
	missingTeam.AwayTeam = ""
	assert.ErrorIs(t, missingTeam.Validate(), models.ErrMissingTeams)

	missingCommence := valid
	missingCommence.CommenceTime = time.Time{}
	assert.ErrorIs(t, missingCommence.Validate(), models.ErrMissingCommence)
}

func TestLeagueOrDefault(t *testing.T) {
	payload := MatchPayload{}
	assert.Equal(t, "Unknown", payload.LeagueOrDefault())

	payload.League = "Premier League"
	assert.Equal(t, "Premier League", payload.LeagueOrDefault())
}
