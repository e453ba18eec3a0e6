package models

import (
	"time"

	"github.com/google/uuid"
)

// MatchRecord is the persisted unit for a single match: provider identity,
// extracted odds, model prediction, value-bet summary and the live-window
// flag. All derived fields are fully recomputed on every refresh cycle;
// only ID, MatchID and CreatedAt survive across cycles. Score and status
// fields are owned by the live-update path, not the processor.
type MatchRecord struct {
	ID            uuid.UUID `db:"id" json:"id"`
	MatchID       string    `db:"match_id" json:"match_id" validate:"required"`
	SportKey      string    `db:"sport_key" json:"sport_key"`
	SportTitle    string    `db:"sport_title" json:"sport_title"`
	HomeTeam      string    `db:"home_team" json:"home_team" validate:"required"`
	AwayTeam      string    `db:"away_team" json:"away_team" validate:"required"`
	League        string    `db:"league" json:"league"`
	CommenceTime  time.Time `db:"commence_time" json:"commence_time" validate:"required"`

	OddsTriple
	PredictionResult

	ValueBetDetected bool    `db:"value_bet_detected" json:"value_bet_detected"`
	ValueBetSide     *string `db:"value_bet_side" json:"value_bet_side"`

	IsLive      bool   `db:"is_live" json:"is_live"`
	HomeScore   int    `db:"home_score" json:"home_score"`
	AwayScore   int    `db:"away_score" json:"away_score"`
	MatchStatus string `db:"match_status" json:"match_status"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// HasStarted checks whether the match's scheduled start has passed.
func (m *MatchRecord) HasStarted(now time.Time) bool {
	return !now.Before(m.CommenceTime)
}

// TimeToStart returns the duration until the scheduled start.
func (m *MatchRecord) TimeToStart() time.Duration {
	return time.Until(m.CommenceTime)
}
