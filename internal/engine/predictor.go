package engine

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/value-scout/internal/logger"
	"github.com/yourusername/value-scout/internal/metrics"
	"github.com/yourusername/value-scout/internal/models"
)

const numOutcomeClasses = 3

// PredictorConfig holds configuration for the outcome predictor.
type PredictorConfig struct {
	ArtifactPath     string
	SyntheticSamples int
	TreeCount        int
	Seed             int64
}

// DefaultPredictorConfig returns the standard predictor configuration
func DefaultPredictorConfig(artifactPath string) PredictorConfig {
	return PredictorConfig{
		ArtifactPath:     artifactPath,
		SyntheticSamples: 1000,
		TreeCount:        100,
		Seed:             42,
	}
}

// OutcomePredictor maintains the trainable match outcome classifier. It
// starts untrained, becomes ready by loading the persisted artifact or by
// training on synthetic data, and stays ready for the process lifetime.
// Encoder vocabularies may grow on unseen team or league names; that
// mutation and all other model state is guarded by a single lock.
type OutcomePredictor struct {
	mu            sync.Mutex
	forest        *Forest
	scaler        *StandardScaler
	teamEncoder   *LabelEncoder
	leagueEncoder *LabelEncoder
	ready         bool

	cfg    PredictorConfig
	logger *logrus.Logger
	plog   *logger.PipelineLogger
}

// NewOutcomePredictor creates a predictor in the untrained state
func NewOutcomePredictor(cfg PredictorConfig, log *logrus.Logger) *OutcomePredictor {
	if cfg.SyntheticSamples <= 0 {
		cfg.SyntheticSamples = 1000
	}
	if cfg.TreeCount <= 0 {
		cfg.TreeCount = 100
	}
	if log == nil {
		log = logrus.New()
	}
	return &OutcomePredictor{
		teamEncoder:   NewLabelEncoder(),
		leagueEncoder: NewLabelEncoder(),
		cfg:           cfg,
		logger:        log,
		plog:          logger.NewPipelineLogger(log),
	}
}

// Init makes the predictor ready: it attempts to load the persisted artifact
// and falls back to training on synthetic data if no usable artifact exists.
// Idempotent; once ready, later calls are no-ops.
func (p *OutcomePredictor) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.initLocked()
}

// Ready reports whether the model can serve predictions
func (p *OutcomePredictor) Ready() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.ready
}

// Train trains the classifier on synthetic matches and persists the artifact.
// This is a cold-start operation; it is never re-triggered automatically once
// the predictor is ready.
func (p *OutcomePredictor) Train() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.trainLocked()
}

// Predict returns the 3-way outcome distribution for a match. Unseen team or
// league names grow the encoder vocabularies in place. Any failure during
// encoding, scaling or inference is recovered with the deterministic
// odds-implied fallback; Predict never fails.
func (p *OutcomePredictor) Predict(homeTeam, awayTeam, league string, odds models.OddsTriple) models.PredictionResult {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.ready {
		if err := p.initLocked(); err != nil {
			p.plog.LogFallbackPrediction(homeTeam, awayTeam, err)
			metrics.RecordPrediction(true)
			return fallbackPrediction(odds)
		}
	}

	// Missing odds cannot produce a complete feature vector
	if !odds.Complete() {
		p.plog.LogFallbackPrediction(homeTeam, awayTeam, models.ErrIncompleteOdds)
		metrics.RecordPrediction(true)
		return fallbackPrediction(odds)
	}

	homeIdx := p.teamEncoder.Upsert(homeTeam)
	awayIdx := p.teamEncoder.Upsert(awayTeam)
	leagueIdx := p.leagueEncoder.Upsert(league)

	homeStrength := strengthFromOdds(odds.HomeOdds)
	awayStrength := strengthFromOdds(odds.AwayOdds)

	features := featureVector(homeIdx, awayIdx, leagueIdx,
		*odds.HomeOdds, *odds.AwayOdds, *odds.DrawOdds,
		homeStrength, awayStrength)

	scaled, err := p.scaler.Transform(features)
	if err != nil {
		p.plog.LogFallbackPrediction(homeTeam, awayTeam, err)
		metrics.RecordPrediction(true)
		return fallbackPrediction(odds)
	}

	probs := p.forest.PredictProba(scaled)
	metrics.RecordPrediction(false)
	return resultFromProbabilities(probs[0], probs[1], probs[2])
}

func (p *OutcomePredictor) initLocked() error {
	if p.ready {
		return nil
	}

	if artifact, err := loadArtifact(p.cfg.ArtifactPath); err == nil {
		p.forest = artifact.Forest
		p.scaler = artifact.Scaler
		p.teamEncoder.Fit(artifact.TeamNames)
		p.leagueEncoder.Fit(artifact.LeagueNames)
		p.ready = true
		p.logger.WithField("artifact_path", p.cfg.ArtifactPath).Info("Prediction model loaded")
		return nil
	} else {
		p.logger.WithError(err).Info("No usable model artifact, training from synthetic data")
	}

	return p.trainLocked()
}

func (p *OutcomePredictor) trainLocked() error {
	start := time.Now()
	rng := rand.New(rand.NewSource(p.cfg.Seed))

	samples := generateSyntheticMatches(p.cfg.SyntheticSamples, rng)
	if len(samples) == 0 {
		return fmt.Errorf("no training samples generated")
	}

	p.teamEncoder.Fit(syntheticTeams)
	p.leagueEncoder.Fit(syntheticLeagues)

	rows := make([][]float64, len(samples))
	labels := make([]int, len(samples))
	for i, s := range samples {
		homeIdx, _ := p.teamEncoder.Encode(s.HomeTeam)
		awayIdx, _ := p.teamEncoder.Encode(s.AwayTeam)
		leagueIdx, _ := p.leagueEncoder.Encode(s.League)
		rows[i] = featureVector(homeIdx, awayIdx, leagueIdx,
			s.HomeOdds, s.AwayOdds, s.DrawOdds, s.HomeStrength, s.AwayStrength)
		labels[i] = s.Outcome
	}

	// 80/20 holdout split, fit scaler on the training portion only
	split := (len(rows) * 8) / 10
	trainRows, testRows := rows[:split], rows[split:]
	trainLabels, testLabels := labels[:split], labels[split:]

	p.scaler = NewStandardScaler()
	if err := p.scaler.Fit(trainRows); err != nil {
		return fmt.Errorf("failed to fit scaler: %w", err)
	}

	scaledTrain, err := p.scaler.TransformAll(trainRows)
	if err != nil {
		return fmt.Errorf("failed to scale training data: %w", err)
	}

	forestCfg := DefaultForestConfig()
	forestCfg.TreeCount = p.cfg.TreeCount
	forestCfg.Seed = p.cfg.Seed
	p.forest = TrainForest(scaledTrain, trainLabels, numOutcomeClasses, forestCfg)

	trainAccuracy := p.accuracy(scaledTrain, trainLabels)
	testAccuracy := 0.0
	if scaledTest, err := p.scaler.TransformAll(testRows); err == nil {
		testAccuracy = p.accuracy(scaledTest, testLabels)
	}

	artifact := &ModelArtifact{
		Forest:      p.forest,
		Scaler:      p.scaler,
		TeamNames:   p.teamEncoder.Names(),
		LeagueNames: p.leagueEncoder.Names(),
		TrainedAt:   time.Now().UTC(),
	}
	if err := saveArtifact(p.cfg.ArtifactPath, artifact); err != nil {
		return fmt.Errorf("failed to persist model artifact: %w", err)
	}

	p.ready = true
	metrics.SetModelReady(true)
	p.plog.LogModelTraining(len(samples), trainAccuracy, testAccuracy, time.Since(start))

	return nil
}

func (p *OutcomePredictor) accuracy(rows [][]float64, labels []int) float64 {
	if len(rows) == 0 {
		return 0
	}
	correct := 0
	for i, row := range rows {
		if p.forest.Predict(row) == labels[i] {
			correct++
		}
	}
	return float64(correct) / float64(len(rows))
}

// strengthFromOdds estimates a naive team strength as the implied
// probability of its odds, defaulting when the odds are absent.
func strengthFromOdds(odds *float64) float64 {
	if odds == nil || *odds == 0 {
		return 0.3
	}
	return 1.0 / *odds
}

// fallbackPrediction is the deterministic odds-implied prediction used when
// the model cannot serve. With any odds missing it returns a near-flat
// distribution favoring the draw; otherwise it normalizes the three implied
// probabilities and picks the argmax.
func fallbackPrediction(odds models.OddsTriple) models.PredictionResult {
	if !odds.Complete() {
		return models.PredictionResult{
			PredictedWinner:    models.OutcomeDraw,
			HomeWinProbability: 0.33,
			AwayWinProbability: 0.33,
			DrawProbability:    0.34,
			Confidence:         0.34,
		}
	}

	homeProb := 1.0 / *odds.HomeOdds
	awayProb := 1.0 / *odds.AwayOdds
	drawProb := 1.0 / *odds.DrawOdds

	total := homeProb + awayProb + drawProb
	homeProb /= total
	awayProb /= total
	drawProb /= total

	return resultFromProbabilities(homeProb, awayProb, drawProb)
}

// resultFromProbabilities assembles a PredictionResult, resolving the winner
// as the argmax with ties broken in home > away > draw order.
func resultFromProbabilities(homeProb, awayProb, drawProb float64) models.PredictionResult {
	probs := []float64{homeProb, awayProb, drawProb}
	best := 0
	for c := 1; c < len(probs); c++ {
		if probs[c] > probs[best] {
			best = c
		}
	}

	return models.PredictionResult{
		PredictedWinner:    models.Outcomes[best],
		HomeWinProbability: homeProb,
		AwayWinProbability: awayProb,
		DrawProbability:    drawProb,
		Confidence:         probs[best],
	}
}
