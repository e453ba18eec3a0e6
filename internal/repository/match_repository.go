package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/yourusername/value-scout/internal/database"
	"github.com/yourusername/value-scout/internal/models"
)

const errScanMatch = "failed to scan match: %w"

const matchColumns = `
	id, match_id, sport_key, sport_title, home_team, away_team, league,
	commence_time, home_odds, away_odds, draw_odds,
	predicted_winner, home_win_probability, away_win_probability,
	draw_probability, confidence, value_bet_detected, value_bet_side,
	is_live, home_score, away_score, match_status, created_at, updated_at
`

// PostgresMatchRepository implements MatchRepository for PostgreSQL
type PostgresMatchRepository struct {
	db    *database.DB
	locks *keyedLock
}

// NewPostgresMatchRepository creates a new match repository
func NewPostgresMatchRepository(db *database.DB) MatchRepository {
	return &PostgresMatchRepository{
		db:    db,
		locks: newKeyedLock(),
	}
}

// Upsert inserts or fully rewrites a record keyed by provider match id.
// A per-identifier lock keeps writes for the same match from interleaving.
func (r *PostgresMatchRepository) Upsert(ctx context.Context, record *models.MatchRecord) error {
	r.locks.Lock(record.MatchID)
	defer r.locks.Unlock(record.MatchID)

	query := `
		INSERT INTO matches (` + matchColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
		        $15, $16, $17, $18, $19, $20, $21, $22, $23, $24)
		ON CONFLICT (match_id) DO UPDATE SET
			sport_key = EXCLUDED.sport_key,
			sport_title = EXCLUDED.sport_title,
			home_team = EXCLUDED.home_team,
			away_team = EXCLUDED.away_team,
			league = EXCLUDED.league,
			commence_time = EXCLUDED.commence_time,
			home_odds = EXCLUDED.home_odds,
			away_odds = EXCLUDED.away_odds,
			draw_odds = EXCLUDED.draw_odds,
			predicted_winner = EXCLUDED.predicted_winner,
			home_win_probability = EXCLUDED.home_win_probability,
			away_win_probability = EXCLUDED.away_win_probability,
			draw_probability = EXCLUDED.draw_probability,
			confidence = EXCLUDED.confidence,
			value_bet_detected = EXCLUDED.value_bet_detected,
			value_bet_side = EXCLUDED.value_bet_side,
			is_live = EXCLUDED.is_live,
			updated_at = EXCLUDED.updated_at
	`

	_, err := r.db.GetPool().Exec(ctx, query,
		record.ID, record.MatchID, record.SportKey, record.SportTitle,
		record.HomeTeam, record.AwayTeam, record.League, record.CommenceTime,
		record.HomeOdds, record.AwayOdds, record.DrawOdds,
		record.PredictedWinner, record.HomeWinProbability, record.AwayWinProbability,
		record.DrawProbability, record.Confidence,
		record.ValueBetDetected, record.ValueBetSide,
		record.IsLive, record.HomeScore, record.AwayScore, record.MatchStatus,
		record.CreatedAt, record.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert match %s: %w", record.MatchID, err)
	}

	return nil
}

// GetByMatchID retrieves a record by provider match identifier
func (r *PostgresMatchRepository) GetByMatchID(ctx context.Context, matchID string) (*models.MatchRecord, error) {
	query := `SELECT ` + matchColumns + ` FROM matches WHERE match_id = $1`

	record, err := scanMatch(r.db.GetPool().QueryRow(ctx, query, matchID))
	if err == pgx.ErrNoRows {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get match: %w", err)
	}

	return record, nil
}

// List retrieves records matching the filter, ordered by commence time
func (r *PostgresMatchRepository) List(ctx context.Context, filter ListFilter) ([]*models.MatchRecord, error) {
	query := `SELECT ` + matchColumns + ` FROM matches`
	args := []interface{}{}
	where := ""

	if filter.SportKey != "" && filter.SportKey != "all" {
		args = append(args, filter.SportKey)
		where = fmt.Sprintf(" WHERE sport_key = $%d", len(args))
	}
	if filter.LiveOnly {
		if where == "" {
			where = " WHERE is_live"
		} else {
			where += " AND is_live"
		}
	}

	rows, err := r.db.GetPool().Query(ctx, query+where+" ORDER BY commence_time ASC", args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query matches: %w", err)
	}
	defer rows.Close()

	return scanMatches(rows)
}

// GetLive retrieves all records currently flagged live
func (r *PostgresMatchRepository) GetLive(ctx context.Context) ([]*models.MatchRecord, error) {
	return r.List(ctx, ListFilter{LiveOnly: true})
}

// UpdateLiveState writes scores, match status and the live flag
func (r *PostgresMatchRepository) UpdateLiveState(ctx context.Context, record *models.MatchRecord) error {
	r.locks.Lock(record.MatchID)
	defer r.locks.Unlock(record.MatchID)

	query := `
		UPDATE matches SET
			is_live = $2, home_score = $3, away_score = $4, match_status = $5,
			updated_at = NOW()
		WHERE match_id = $1
	`

	commandTag, err := r.db.GetPool().Exec(ctx, query,
		record.MatchID, record.IsLive, record.HomeScore, record.AwayScore, record.MatchStatus,
	)
	if err != nil {
		return fmt.Errorf("failed to update live state for %s: %w", record.MatchID, err)
	}
	if commandTag.RowsAffected() == 0 {
		return models.ErrNotFound
	}

	return nil
}

func scanMatch(row pgx.Row) (*models.MatchRecord, error) {
	record := &models.MatchRecord{}
	err := row.Scan(
		&record.ID, &record.MatchID, &record.SportKey, &record.SportTitle,
		&record.HomeTeam, &record.AwayTeam, &record.League, &record.CommenceTime,
		&record.HomeOdds, &record.AwayOdds, &record.DrawOdds,
		&record.PredictedWinner, &record.HomeWinProbability, &record.AwayWinProbability,
		&record.DrawProbability, &record.Confidence,
		&record.ValueBetDetected, &record.ValueBetSide,
		&record.IsLive, &record.HomeScore, &record.AwayScore, &record.MatchStatus,
		&record.CreatedAt, &record.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return record, nil
}

func scanMatches(rows pgx.Rows) ([]*models.MatchRecord, error) {
	var records []*models.MatchRecord
	for rows.Next() {
		record, err := scanMatch(rows)
		if err != nil {
			return nil, fmt.Errorf(errScanMatch, err)
		}
		records = append(records, record)
	}
	return records, rows.Err()
}
