package models

import "errors"

// Custom errors
var (
	ErrNotFound         = errors.New("record not found")
	ErrDuplicateKey     = errors.New("duplicate key violation")
	ErrMissingMatchID   = errors.New("match identifier is required")
	ErrMissingTeams     = errors.New("home and away team names are required")
	ErrMissingCommence  = errors.New("commence time is required")
	ErrModelNotReady    = errors.New("prediction model is not ready")
	ErrIncompleteOdds   = errors.New("odds are incomplete")
)
