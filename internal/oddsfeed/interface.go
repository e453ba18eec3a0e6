// Package oddsfeed provides clients for fetching match odds from external providers.
package oddsfeed

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/yourusername/value-scout/internal/models"
)

// MarketKeyH2H is the head-to-head market key used by odds providers.
const MarketKeyH2H = "h2h"

// DrawOutcomeName is the literal outcome label providers use for a draw.
const DrawOutcomeName = "Draw"

// OddsFeed defines the interface for fetching match odds from external providers
type OddsFeed interface {
	// FetchOdds retrieves upcoming match payloads with odds for a sport
	FetchOdds(ctx context.Context, sportKey string) ([]MatchPayload, error)

	// FetchSports retrieves the provider's sport catalog
	FetchSports(ctx context.Context) ([]Sport, error)

	// Name returns the name of the odds provider
	Name() string
}

// MatchPayload represents a raw per-match payload from an odds provider
type MatchPayload struct {
	ID           string      `json:"id"`
	SportKey     string      `json:"sport_key"`
	SportTitle   string      `json:"sport_title"`
	CommenceTime time.Time   `json:"commence_time"`
	HomeTeam     string      `json:"home_team"`
	AwayTeam     string      `json:"away_team"`
	League       string      `json:"league,omitempty"`
	Bookmakers   []Bookmaker `json:"bookmakers,omitempty"`
}

// Bookmaker represents a single bookmaker's markets for a match
type Bookmaker struct {
	Key        string    `json:"key"`
	Title      string    `json:"title"`
	LastUpdate time.Time `json:"last_update"`
	Markets    []Market  `json:"markets"`
}

// Market represents one market offered by a bookmaker
type Market struct {
	Key      string    `json:"key"`
	Outcomes []Outcome `json:"outcomes"`
}

// Outcome represents a priced outcome within a market
type Outcome struct {
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// Sport represents an entry in the provider's sport catalog
type Sport struct {
	Key         string `json:"key"`
	Group       string `json:"group"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Active      bool   `json:"active"`
}

// Validate checks the payload for the fields the pipeline cannot work without
func (p *MatchPayload) Validate() error {
	if strings.TrimSpace(p.ID) == "" {
		return models.ErrMissingMatchID
	}
	if strings.TrimSpace(p.HomeTeam) == "" || strings.TrimSpace(p.AwayTeam) == "" {
		return models.ErrMissingTeams
	}
	if p.CommenceTime.IsZero() {
		return models.ErrMissingCommence
	}
	return nil
}

// LeagueOrDefault returns the payload's league, defaulting to "Unknown"
func (p *MatchPayload) LeagueOrDefault() string {
	if strings.TrimSpace(p.League) == "" {
		return "Unknown"
	}
	return p.League
}
