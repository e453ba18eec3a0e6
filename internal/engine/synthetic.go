package engine

import (
	"math"
	"math/rand"
)

// Synthetic training constants. Odds are derived from outcome probabilities
// with a bookmaker margin; probabilities at or below the floor map to a
// fixed long-shot price.
const (
	homeAdvantage   = 0.1
	bookmakerMargin = 1.05
	probabilityFloor = 0.05
	longShotOdds    = 10.0
	maxSyntheticOdds = 20.0
)

var syntheticTeams = []string{
	"Arsenal", "Chelsea", "Liverpool", "Man City", "Man United",
	"Tottenham", "Newcastle", "Brighton", "West Ham", "Crystal Palace",
}

var syntheticLeagues = []string{"EPL", "La Liga", "Bundesliga", "Serie A", "Ligue 1"}

// trainingSample is one synthetic match used to fit the outcome model.
type trainingSample struct {
	HomeTeam     string
	AwayTeam     string
	League       string
	HomeOdds     float64
	AwayOdds     float64
	DrawOdds     float64
	HomeStrength float64
	AwayStrength float64
	Outcome      int // class index: 0 home, 1 away, 2 draw
}

// generateSyntheticMatches builds n synthetic matches over the fixed
// team/league vocabulary. Team strengths are sampled, a logistic transform
// of the strength difference (plus home advantage) yields the outcome
// distribution, the label is drawn from that distribution and the odds are
// derived from the probabilities with the bookmaker margin applied.
func generateSyntheticMatches(n int, rng *rand.Rand) []trainingSample {
	samples := make([]trainingSample, 0, n)

	for i := 0; i < n; i++ {
		homeTeam := syntheticTeams[rng.Intn(len(syntheticTeams))]
		awayTeam := homeTeam
		for awayTeam == homeTeam {
			awayTeam = syntheticTeams[rng.Intn(len(syntheticTeams))]
		}
		league := syntheticLeagues[rng.Intn(len(syntheticLeagues))]

		homeStrength := rng.NormFloat64()*0.2 + 0.5
		awayStrength := rng.NormFloat64()*0.2 + 0.5

		homeProb := logistic((homeStrength - awayStrength + homeAdvantage) * 3)
		awayProb := logistic((awayStrength - homeStrength - homeAdvantage) * 3)
		drawProb := 1 - (homeProb + awayProb)
		if drawProb < 0 {
			drawProb = 0
		}

		total := homeProb + awayProb + drawProb
		homeProb /= total
		awayProb /= total
		drawProb /= total

		samples = append(samples, trainingSample{
			HomeTeam:     homeTeam,
			AwayTeam:     awayTeam,
			League:       league,
			HomeOdds:     oddsFromProbability(homeProb),
			AwayOdds:     oddsFromProbability(awayProb),
			DrawOdds:     oddsFromProbability(drawProb),
			HomeStrength: clamp(homeStrength, 0.1, 0.9),
			AwayStrength: clamp(awayStrength, 0.1, 0.9),
			Outcome:      sampleOutcome(rng, homeProb, awayProb),
		})
	}

	return samples
}

// featureVector builds the 8-feature row shared by training and inference:
// [home_idx, away_idx, league_idx, home_odds, away_odds, draw_odds,
// home_strength, away_strength].
func featureVector(homeIdx, awayIdx, leagueIdx int, homeOdds, awayOdds, drawOdds, homeStrength, awayStrength float64) []float64 {
	return []float64{
		float64(homeIdx), float64(awayIdx), float64(leagueIdx),
		homeOdds, awayOdds, drawOdds,
		homeStrength, awayStrength,
	}
}

// oddsFromProbability converts an outcome probability into synthetic decimal
// odds with the bookmaker margin, the long-shot floor and the odds cap.
func oddsFromProbability(p float64) float64 {
	if p <= probabilityFloor {
		return longShotOdds
	}
	return math.Min(bookmakerMargin/p, maxSyntheticOdds)
}

// sampleOutcome draws a class index from the categorical distribution
// (homeProb, awayProb, 1-homeProb-awayProb).
func sampleOutcome(rng *rand.Rand, homeProb, awayProb float64) int {
	r := rng.Float64()
	if r < homeProb {
		return 0
	}
	if r < homeProb+awayProb {
		return 1
	}
	return 2
}

func logistic(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
