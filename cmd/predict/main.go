// Package main provides a CLI for ad-hoc match predictions.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/yourusername/value-scout/internal/config"
	"github.com/yourusername/value-scout/internal/engine"
	"github.com/yourusername/value-scout/internal/logger"
	"github.com/yourusername/value-scout/internal/models"
)

// Build information - set via ldflags
var (
	Version   = "dev"
	GitCommit = "unknown"
)

var (
	configFile string
	homeTeam   string
	awayTeam   string
	league     string
	homeOdds   float64
	awayOdds   float64
	drawOdds   float64
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "./config/config.yaml", "Path to configuration file")
	rootCmd.Flags().StringVar(&homeTeam, "home", "", "Home team name (required)")
	rootCmd.Flags().StringVar(&awayTeam, "away", "", "Away team name (required)")
	rootCmd.Flags().StringVar(&league, "league", "Unknown", "League name")
	rootCmd.Flags().Float64Var(&homeOdds, "home-odds", 2.0, "Decimal odds for a home win")
	rootCmd.Flags().Float64Var(&awayOdds, "away-odds", 2.0, "Decimal odds for an away win")
	rootCmd.Flags().Float64Var(&drawOdds, "draw-odds", 3.0, "Decimal odds for a draw")
	rootCmd.MarkFlagRequired("home")
	rootCmd.MarkFlagRequired("away")
}

var rootCmd = &cobra.Command{
	Use:   "value-scout-predict",
	Short: "Predict the outcome of a single fixture",
	Long: `Loads the trained model and prints the outcome probabilities and
value assessment for a fixture at the supplied odds.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return predict()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func predict() error {
	cfg, err := config.LoadWithDefaults(configFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	appLog := logger.NewLogger("warn")
	if os.Getenv("VALUE_SCOUT_VERBOSE") == "true" {
		appLog = logger.NewLogger("debug")
	}

	predictorCfg := engine.DefaultPredictorConfig(cfg.Model.ArtifactPath)
	predictorCfg.SyntheticSamples = cfg.Model.SyntheticSamples
	predictorCfg.TreeCount = cfg.Model.TreeCount
	predictor := engine.NewOutcomePredictor(predictorCfg, appLog)
	if err := predictor.Init(); err != nil {
		return fmt.Errorf("failed to initialize predictor: %w", err)
	}

	odds := models.OddsTriple{HomeOdds: &homeOdds, AwayOdds: &awayOdds, DrawOdds: &drawOdds}
	prediction := predictor.Predict(homeTeam, awayTeam, league, odds)

	detector := engine.NewValueBetDetector(cfg.Model.EdgeThreshold)
	valueBet := detector.Detect(prediction, odds)

	fmt.Printf("\n%s vs %s (%s)\n\n", homeTeam, awayTeam, league)
	fmt.Printf("  Predicted winner: %s (confidence %.1f%%)\n", prediction.PredictedWinner, prediction.Confidence*100)
	fmt.Printf("  Home win: %.1f%%  @ %.2f\n", prediction.HomeWinProbability*100, homeOdds)
	fmt.Printf("  Away win: %.1f%%  @ %.2f\n", prediction.AwayWinProbability*100, awayOdds)
	fmt.Printf("  Draw:     %.1f%%  @ %.2f\n", prediction.DrawProbability*100, drawOdds)

	if valueBet != nil {
		fmt.Printf("\n  Value bet: %s (edge %.3f, EV %.3f @ %.2f)\n", valueBet.Side, valueBet.Edge, valueBet.EV, valueBet.Odds)
	} else {
		fmt.Println("\n  No value bet at these odds")
	}
	fmt.Println()

	return nil
}
