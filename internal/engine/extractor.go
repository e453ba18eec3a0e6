// Package engine implements the match prediction and value detection pipeline:
// odds extraction, the outcome prediction model, value bet detection and the
// per-match processing that ties them together.
package engine

import (
	"github.com/yourusername/value-scout/internal/models"
	"github.com/yourusername/value-scout/internal/oddsfeed"
)

// OddsExtractor normalizes a raw per-match payload into a single
// home/away/draw decimal-odds triple.
type OddsExtractor struct{}

// NewOddsExtractor creates a new odds extractor
func NewOddsExtractor() *OddsExtractor {
	return &OddsExtractor{}
}

// Extract scans every bookmaker's head-to-head market and assigns each
// outcome's price to the matching slot. When multiple bookmakers post the
// same outcome the last one scanned wins. Slots with no matching outcome
// stay nil; a payload without markets yields an empty triple, not an error.
func (e *OddsExtractor) Extract(payload *oddsfeed.MatchPayload) models.OddsTriple {
	var triple models.OddsTriple

	for _, bookmaker := range payload.Bookmakers {
		for _, market := range bookmaker.Markets {
			if market.Key != oddsfeed.MarketKeyH2H {
				continue
			}
			for _, outcome := range market.Outcomes {
				price := outcome.Price.InexactFloat64()
				switch outcome.Name {
				case payload.HomeTeam:
					triple.HomeOdds = &price
				case payload.AwayTeam:
					triple.AwayOdds = &price
				case oddsfeed.DrawOutcomeName:
					triple.DrawOdds = &price
				}
			}
		}
	}

	return triple
}
