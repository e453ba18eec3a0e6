// Package repository provides persistence for match records.
package repository

import (
	"context"

	"github.com/yourusername/value-scout/internal/models"
)

// ListFilter narrows match listings.
type ListFilter struct {
	SportKey string // empty or "all" matches every sport
	LiveOnly bool
}

// MatchRepository defines persistence operations for match records
type MatchRepository interface {
	// Upsert inserts or fully rewrites a record keyed by its provider
	// match identifier. Writes for the same identifier never interleave.
	Upsert(ctx context.Context, record *models.MatchRecord) error

	// GetByMatchID retrieves a record by provider match identifier
	GetByMatchID(ctx context.Context, matchID string) (*models.MatchRecord, error)

	// List retrieves records matching the filter, ordered by commence time
	List(ctx context.Context, filter ListFilter) ([]*models.MatchRecord, error)

	// GetLive retrieves all records currently flagged live
	GetLive(ctx context.Context) ([]*models.MatchRecord, error)

	// UpdateLiveState writes the fields owned by the live-update path:
	// scores, match status and the live flag.
	UpdateLiveState(ctx context.Context, record *models.MatchRecord) error
}
