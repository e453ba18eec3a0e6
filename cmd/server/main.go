// Package main provides the entry point for the value scout server.
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/yourusername/value-scout/internal/api"
	"github.com/yourusername/value-scout/internal/config"
	"github.com/yourusername/value-scout/internal/database"
	"github.com/yourusername/value-scout/internal/engine"
	"github.com/yourusername/value-scout/internal/health"
	"github.com/yourusername/value-scout/internal/logger"
	"github.com/yourusername/value-scout/internal/metrics"
	"github.com/yourusername/value-scout/internal/oddsfeed"
	"github.com/yourusername/value-scout/internal/repository"
	"github.com/yourusername/value-scout/internal/scheduler"
	"github.com/yourusername/value-scout/internal/service"
)

// Build information - set via ldflags
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var configFile string

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "./config/config.yaml", "Path to configuration file")
}

var rootCmd = &cobra.Command{
	Use:   "value-scout-server",
	Short: "Run the odds ingestion and value bet detection server",
	Long: `Fetches match odds on a schedule, predicts outcomes with the bundled
model, flags value bets and serves the results over REST and WebSocket.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func run() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	appLog := logger.NewLogger(cfg.App.LogLevel)
	appLog.WithFields(logrus.Fields{
		"environment": cfg.App.Environment,
		"version":     Version,
		"commit":      GitCommit,
	}).Info("Value Scout server starting")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db, err := database.NewDB(ctx, &cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	if err := db.InitSchema(ctx); err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}
	appLog.Info("Database connection established")

	repo := repository.NewPostgresMatchRepository(db)
	feed := oddsfeed.NewTheOddsAPIClient(&cfg.OddsFeed, appLog)

	predictorCfg := engine.DefaultPredictorConfig(cfg.Model.ArtifactPath)
	predictorCfg.SyntheticSamples = cfg.Model.SyntheticSamples
	predictorCfg.TreeCount = cfg.Model.TreeCount
	predictor := engine.NewOutcomePredictor(predictorCfg, appLog)
	if err := predictor.Init(); err != nil {
		return fmt.Errorf("failed to initialize predictor: %w", err)
	}
	metrics.SetModelReady(predictor.Ready())

	detector := engine.NewValueBetDetector(cfg.Model.EdgeThreshold)
	processor := engine.NewMatchProcessor(predictor, detector, appLog)

	predictionCache := service.NewPredictionCache(cfg.PredictionCacheTTL(), cfg.Model.PredictionCacheSize)
	pipeline := service.NewPipelineService(feed, repo, processor, predictionCache, cfg.OddsFeed.SportKeys, appLog)
	live := service.NewLiveService(repo, nil, appLog)

	hub := api.NewHub(appLog)
	go hub.Run(ctx)
	pipeline.SetBroadcaster(hub)
	live.SetBroadcaster(hub)

	sched := scheduler.NewScheduler(pipeline, live, appLog)
	if err := sched.ScheduleRefresh(cfg.Schedule.RefreshIntervalSeconds); err != nil {
		return fmt.Errorf("failed to schedule refresh: %w", err)
	}
	if err := sched.ScheduleLiveUpdates(cfg.Schedule.LiveUpdateIntervalSeconds); err != nil {
		return fmt.Errorf("failed to schedule live updates: %w", err)
	}
	if err := sched.Start(); err != nil {
		return fmt.Errorf("failed to start scheduler: %w", err)
	}
	defer sched.Stop()

	healthServer := health.NewServer(health.Config{
		ServiceName: cfg.App.Name,
		Version:     Version,
		Commit:      GitCommit,
		Port:        fmt.Sprintf("%d", cfg.Server.HealthPort),
		Logger:      appLog,
		DB:          db,
		Model:       predictor,
	})
	if err := healthServer.Start(ctx); err != nil {
		return fmt.Errorf("failed to start health server: %w", err)
	}

	if cfg.Metrics.Enabled {
		metricsMux := http.NewServeMux()
		metricsMux.Handle(cfg.Metrics.Path, metrics.Handler())
		metricsServer := &http.Server{
			Addr:    fmt.Sprintf(":%d", cfg.Metrics.Port),
			Handler: metricsMux,
		}
		go func() {
			appLog.WithField("port", cfg.Metrics.Port).Info("Metrics server starting")
			if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				appLog.WithError(err).Error("Metrics server error")
			}
		}()
		defer metricsServer.Shutdown(context.Background())
	}

	handler := api.NewHandler(pipeline, live, feed, predictor, processor, appLog)
	router := api.NewRouter(handler, hub, cfg.Server.AllowedOrigins)
	apiServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 2 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		appLog.WithField("port", cfg.Server.Port).Info("API server starting")
		if err := apiServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLog.WithError(err).Fatal("API server error")
		}
	}()

	// Prime the pipeline so the API has data before the first scheduled run
	go func() {
		if result, err := pipeline.RefreshAll(ctx); err != nil {
			appLog.WithError(err).Warn("Initial refresh failed")
		} else {
			appLog.WithField("result", result.String()).Info("Initial refresh completed")
		}
	}()

	healthServer.SetReady(true)
	appLog.Info("Value Scout server running")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	sig := <-sigChan
	appLog.WithField("signal", sig.String()).Info("Shutdown signal received")

	healthServer.SetReady(false)
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := apiServer.Shutdown(shutdownCtx); err != nil {
		appLog.WithError(err).Error("API server shutdown error")
	}

	appLog.Info("Value Scout server stopped")
	return nil
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if os.Getenv("AWS_SECRETS_ENABLED") == "true" {
		region := os.Getenv("AWS_REGION")
		secretName := os.Getenv("AWS_SECRET_NAME")
		if region == "" || secretName == "" {
			return nil, fmt.Errorf("AWS_REGION and AWS_SECRET_NAME must be set when AWS_SECRETS_ENABLED is true")
		}
		if err := config.LoadSecretsFromAWS(cfg, region, secretName); err != nil {
			return nil, fmt.Errorf("failed to load secrets: %w", err)
		}
	}

	if err := config.Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}
