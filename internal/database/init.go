package database

import (
	"context"
	"fmt"
)

// matchesSchema creates the matches table if it does not exist. Derived
// prediction and value-bet columns are nullable; they are rewritten on
// every refresh cycle.
const matchesSchema = `
CREATE TABLE IF NOT EXISTS matches (
	id UUID PRIMARY KEY,
	match_id TEXT NOT NULL UNIQUE,
	sport_key TEXT NOT NULL DEFAULT '',
	sport_title TEXT NOT NULL DEFAULT '',
	home_team TEXT NOT NULL,
	away_team TEXT NOT NULL,
	league TEXT NOT NULL DEFAULT 'Unknown',
	commence_time TIMESTAMPTZ NOT NULL,
	home_odds DOUBLE PRECISION,
	away_odds DOUBLE PRECISION,
	draw_odds DOUBLE PRECISION,
	predicted_winner TEXT,
	home_win_probability DOUBLE PRECISION,
	away_win_probability DOUBLE PRECISION,
	draw_probability DOUBLE PRECISION,
	confidence DOUBLE PRECISION,
	value_bet_detected BOOLEAN NOT NULL DEFAULT FALSE,
	value_bet_side TEXT,
	is_live BOOLEAN NOT NULL DEFAULT FALSE,
	home_score INTEGER NOT NULL DEFAULT 0,
	away_score INTEGER NOT NULL DEFAULT 0,
	match_status TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_matches_sport_key ON matches (sport_key);
CREATE INDEX IF NOT EXISTS idx_matches_commence_time ON matches (commence_time);
CREATE INDEX IF NOT EXISTS idx_matches_is_live ON matches (is_live) WHERE is_live;
`

// InitSchema creates the tables and indexes the application needs
func (db *DB) InitSchema(ctx context.Context) error {
	if _, err := db.pool.Exec(ctx, matchesSchema); err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}
	return nil
}
