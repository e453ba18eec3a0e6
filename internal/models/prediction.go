package models

// Outcome identifies one of the three possible match results.
type Outcome string

// Match outcomes in fixed priority order: home > away > draw.
const (
	OutcomeHome Outcome = "home"
	OutcomeAway Outcome = "away"
	OutcomeDraw Outcome = "draw"
)

// Outcomes lists the three outcomes in priority order.
var Outcomes = []Outcome{OutcomeHome, OutcomeAway, OutcomeDraw}

// PredictionResult represents the model's 3-way probability distribution
// for a single match. The probabilities sum to 1 within floating tolerance,
// Confidence equals the maximum of the three and PredictedWinner is the
// outcome attaining it (ties resolved home > away > draw).
type PredictionResult struct {
	PredictedWinner    Outcome `db:"predicted_winner" json:"predicted_winner" validate:"required,oneof=home away draw"`
	HomeWinProbability float64 `db:"home_win_probability" json:"home_win_probability" validate:"gte=0,lte=1"`
	AwayWinProbability float64 `db:"away_win_probability" json:"away_win_probability" validate:"gte=0,lte=1"`
	DrawProbability    float64 `db:"draw_probability" json:"draw_probability" validate:"gte=0,lte=1"`
	Confidence         float64 `db:"confidence" json:"confidence" validate:"gte=0,lte=1"`
}

// Probability returns the predicted probability for the given outcome.
func (p PredictionResult) Probability(outcome Outcome) float64 {
	switch outcome {
	case OutcomeHome:
		return p.HomeWinProbability
	case OutcomeAway:
		return p.AwayWinProbability
	case OutcomeDraw:
		return p.DrawProbability
	}
	return 0
}

// MeetsThreshold checks if the confidence meets the given threshold.
func (p PredictionResult) MeetsThreshold(threshold float64) bool {
	return p.Confidence >= threshold
}
