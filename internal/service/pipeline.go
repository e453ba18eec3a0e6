package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/value-scout/internal/engine"
	"github.com/yourusername/value-scout/internal/logger"
	"github.com/yourusername/value-scout/internal/metrics"
	"github.com/yourusername/value-scout/internal/models"
	"github.com/yourusername/value-scout/internal/oddsfeed"
	"github.com/yourusername/value-scout/internal/repository"
)

// Broadcaster pushes updated match records to connected clients. A nil
// broadcaster disables pushes without changing pipeline behavior.
type Broadcaster interface {
	BroadcastMatch(record *models.MatchRecord)
}

// RefreshResult summarizes one refresh cycle
type RefreshResult struct {
	Processed int
	Rejected  int
	ValueBets int
	Errors    int
	Duration  time.Duration
}

// String returns a human-readable summary of the result
func (r *RefreshResult) String() string {
	return fmt.Sprintf("processed=%d rejected=%d value_bets=%d errors=%d duration=%v",
		r.Processed, r.Rejected, r.ValueBets, r.Errors, r.Duration)
}

// PipelineService runs the odds ingestion workflow: fetch payloads from the
// feed, derive records through the processor and persist them. Failures on
// individual payloads or sports never abort the rest of the cycle.
type PipelineService struct {
	feed        oddsfeed.OddsFeed
	repo        repository.MatchRepository
	processor   *engine.MatchProcessor
	cache       *PredictionCache
	broadcaster Broadcaster
	sportKeys   []string
	log         *logrus.Logger
	pipelineLog *logger.PipelineLogger
}

// NewPipelineService creates a new pipeline service
func NewPipelineService(
	feed oddsfeed.OddsFeed,
	repo repository.MatchRepository,
	processor *engine.MatchProcessor,
	cache *PredictionCache,
	sportKeys []string,
	log *logrus.Logger,
) *PipelineService {
	return &PipelineService{
		feed:        feed,
		repo:        repo,
		processor:   processor,
		cache:       cache,
		sportKeys:   sportKeys,
		log:         log,
		pipelineLog: logger.NewPipelineLogger(log),
	}
}

// SetBroadcaster attaches a broadcaster for pushing record updates
func (s *PipelineService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// RefreshAll refreshes odds for every configured sport key. A failing sport
// is logged and counted; the remaining sports still run.
func (s *PipelineService) RefreshAll(ctx context.Context) (*RefreshResult, error) {
	start := time.Now()
	total := &RefreshResult{}

	for _, sportKey := range s.sportKeys {
		result, err := s.RefreshSport(ctx, sportKey)
		if err != nil {
			total.Errors++
			s.log.WithFields(logrus.Fields{
				"sport_key": sportKey,
				"error":     err.Error(),
			}).Error("Sport refresh failed")
			continue
		}
		total.Processed += result.Processed
		total.Rejected += result.Rejected
		total.ValueBets += result.ValueBets
		total.Errors += result.Errors
	}

	total.Duration = time.Since(start)
	metrics.RecordRefreshCycle(total.Duration.Seconds())

	if total.Errors == len(s.sportKeys) && len(s.sportKeys) > 0 {
		return total, fmt.Errorf("all %d sport refreshes failed", len(s.sportKeys))
	}
	return total, nil
}

// RefreshSport fetches and processes payloads for a single sport key
func (s *PipelineService) RefreshSport(ctx context.Context, sportKey string) (*RefreshResult, error) {
	start := time.Now()
	result := &RefreshResult{}

	payloads, err := s.feed.FetchOdds(ctx, sportKey)
	if err != nil {
		metrics.RecordFeedRequest(sportKey, "failure")
		return nil, fmt.Errorf("failed to fetch odds for %s: %w", sportKey, err)
	}
	metrics.RecordFeedRequest(sportKey, "success")

	for i := range payloads {
		payload := &payloads[i]
		if err := s.processPayload(ctx, payload, result); err != nil {
			result.Errors++
			s.log.WithFields(logrus.Fields{
				"match_id": payload.ID,
				"error":    err.Error(),
			}).Error("Failed to persist match")
		}
	}

	result.Duration = time.Since(start)
	s.pipelineLog.LogRefreshCycle(sportKey, result.Processed, result.Rejected, result.ValueBets, result.Duration)

	return result, nil
}

func (s *PipelineService) processPayload(ctx context.Context, payload *oddsfeed.MatchPayload, result *RefreshResult) error {
	existing, err := s.repo.GetByMatchID(ctx, payload.ID)
	if err != nil && !errors.Is(err, models.ErrNotFound) {
		return err
	}

	processStart := time.Now()
	record, err := s.processor.Process(payload, existing)
	if err != nil {
		result.Rejected++
		metrics.RecordPayloadRejected()
		s.pipelineLog.LogPayloadRejected(payload.ID, err)
		return nil
	}
	metrics.RecordMatchProcessed(time.Since(processStart).Seconds())

	if err := s.repo.Upsert(ctx, record); err != nil {
		return err
	}

	result.Processed++
	if record.ValueBetDetected {
		result.ValueBets++
		metrics.RecordValueBet()
	}

	if s.cache != nil {
		prediction := record.PredictionResult
		s.cache.Set(record.MatchID, record.OddsTriple, &prediction)
	}
	if s.broadcaster != nil {
		s.broadcaster.BroadcastMatch(record)
	}

	s.pipelineLog.LogMatchProcessed(record.MatchID, record.HomeTeam, record.AwayTeam,
		string(record.PredictedWinner), record.Confidence, record.ValueBetDetected)

	return nil
}

// ListMatches returns persisted records matching the filter
func (s *PipelineService) ListMatches(ctx context.Context, filter repository.ListFilter) ([]*models.MatchRecord, error) {
	return s.repo.List(ctx, filter)
}

// Cache exposes the prediction cache for read-side consumers
func (s *PipelineService) Cache() *PredictionCache {
	return s.cache
}
