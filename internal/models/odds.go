package models

// OddsTriple holds the decimal odds for the three outcomes of a match.
// Any field may be nil when no bookmaker posted that outcome; present
// values are always > 1.0 by decimal odds convention.
type OddsTriple struct {
	HomeOdds *float64 `db:"home_odds" json:"home_odds"`
	AwayOdds *float64 `db:"away_odds" json:"away_odds"`
	DrawOdds *float64 `db:"draw_odds" json:"draw_odds"`
}

// Complete reports whether all three outcomes have posted odds.
func (o OddsTriple) Complete() bool {
	return o.HomeOdds != nil && o.AwayOdds != nil && o.DrawOdds != nil
}

// Empty reports whether no outcome has posted odds.
func (o OddsTriple) Empty() bool {
	return o.HomeOdds == nil && o.AwayOdds == nil && o.DrawOdds == nil
}

// ForOutcome returns the odds value for the given outcome, or nil.
func (o OddsTriple) ForOutcome(outcome Outcome) *float64 {
	switch outcome {
	case OutcomeHome:
		return o.HomeOdds
	case OutcomeAway:
		return o.AwayOdds
	case OutcomeDraw:
		return o.DrawOdds
	}
	return nil
}

// ImpliedProbability returns 1/odds for a present odds value, or 0.
func ImpliedProbability(odds *float64) float64 {
	if odds == nil || *odds <= 0 {
		return 0
	}
	return 1.0 / *odds
}
