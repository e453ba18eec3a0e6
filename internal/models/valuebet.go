package models

// ValueBet describes an outcome whose predicted probability exceeds
// the market-implied probability by more than the configured threshold.
// At most one per match is selected.
type ValueBet struct {
	Side                 Outcome `json:"side"`
	Edge                 float64 `json:"edge"`
	EV                   float64 `json:"ev"`
	Odds                 float64 `json:"odds"`
	PredictedProbability float64 `json:"predicted_probability"`
	ImpliedProbability   float64 `json:"implied_probability"`
}
