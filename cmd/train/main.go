// Package main provides a CLI for training the outcome model.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/yourusername/value-scout/internal/config"
	"github.com/yourusername/value-scout/internal/engine"
	"github.com/yourusername/value-scout/internal/logger"
)

// Build information - set via ldflags
var (
	Version   = "dev"
	GitCommit = "unknown"
)

var (
	configFile string
	samples    int
	trees      int
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "./config/config.yaml", "Path to configuration file")
	rootCmd.Flags().IntVar(&samples, "samples", 0, "Override the number of training samples")
	rootCmd.Flags().IntVar(&trees, "trees", 0, "Override the number of trees in the ensemble")
}

var rootCmd = &cobra.Command{
	Use:   "value-scout-train",
	Short: "Train the outcome model and persist the artifact",
	Long: `Retrains the outcome model from scratch and writes the artifact to
the configured path, replacing any previously trained model.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return train()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func train() error {
	cfg, err := config.LoadWithDefaults(configFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	appLog := logger.NewLogger("info")

	predictorCfg := engine.DefaultPredictorConfig(cfg.Model.ArtifactPath)
	predictorCfg.SyntheticSamples = cfg.Model.SyntheticSamples
	predictorCfg.TreeCount = cfg.Model.TreeCount
	if samples > 0 {
		predictorCfg.SyntheticSamples = samples
	}
	if trees > 0 {
		predictorCfg.TreeCount = trees
	}

	predictor := engine.NewOutcomePredictor(predictorCfg, appLog)
	if err := predictor.Train(); err != nil {
		return fmt.Errorf("training failed: %w", err)
	}

	info, err := os.Stat(cfg.Model.ArtifactPath)
	if err != nil {
		return fmt.Errorf("artifact not written: %w", err)
	}

	fmt.Printf("Model trained and saved to %s (%d bytes)\n", cfg.Model.ArtifactPath, info.Size())
	return nil
}
