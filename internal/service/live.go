package service

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/value-scout/internal/engine"
	"github.com/yourusername/value-scout/internal/metrics"
	"github.com/yourusername/value-scout/internal/models"
	"github.com/yourusername/value-scout/internal/repository"
)

// ScoreState carries the current score and status of an in-play match
type ScoreState struct {
	HomeScore int
	AwayScore int
	Status    string
}

// ScoreSource supplies in-play scores for matches inside the live window.
// ErrNotFound from FetchScore means the provider has no data for the match;
// the record keeps its stored score in that case.
type ScoreSource interface {
	FetchScore(ctx context.Context, record *models.MatchRecord) (*ScoreState, error)
	Name() string
}

// Match statuses written by the live updater
const (
	StatusScheduled = "scheduled"
	StatusInPlay    = "in_play"
	StatusFinished  = "finished"
)

// LiveService maintains the live flag and score state of tracked matches
// between full refresh cycles.
type LiveService struct {
	repo        repository.MatchRepository
	scores      ScoreSource
	broadcaster Broadcaster
	log         *logrus.Logger
	now         func() time.Time
}

// NewLiveService creates a new live service. scores may be nil, in which
// case only live-window transitions are maintained.
func NewLiveService(repo repository.MatchRepository, scores ScoreSource, log *logrus.Logger) *LiveService {
	return &LiveService{
		repo:   repo,
		scores: scores,
		log:    log,
		now:    time.Now,
	}
}

// SetBroadcaster attaches a broadcaster for pushing live updates
func (s *LiveService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// RefreshLive reconciles the live flag for all tracked matches and pulls
// scores for those inside the window. Per-match failures are logged and
// skipped.
func (s *LiveService) RefreshLive(ctx context.Context) (int, error) {
	records, err := s.repo.List(ctx, repository.ListFilter{})
	if err != nil {
		return 0, err
	}

	liveCount := 0
	for _, record := range records {
		changed := s.reconcile(ctx, record)
		if record.IsLive {
			liveCount++
		}
		if !changed {
			continue
		}

		if err := s.repo.UpdateLiveState(ctx, record); err != nil {
			s.log.WithFields(logrus.Fields{
				"match_id": record.MatchID,
				"error":    err.Error(),
			}).Error("Failed to update live state")
			continue
		}
		if s.broadcaster != nil {
			s.broadcaster.BroadcastMatch(record)
		}
	}

	metrics.UpdateLiveMatches(float64(liveCount))
	metrics.UpdateTrackedMatches(float64(len(records)))

	return liveCount, nil
}

// reconcile updates a record's live flag, status and score in place and
// reports whether anything changed.
func (s *LiveService) reconcile(ctx context.Context, record *models.MatchRecord) bool {
	elapsed := s.now().In(record.CommenceTime.Location()).Sub(record.CommenceTime)
	live := elapsed >= 0 && elapsed <= engine.LiveWindow

	changed := false
	if record.IsLive != live {
		record.IsLive = live
		changed = true
	}

	status := statusFor(elapsed, live)
	if record.MatchStatus != status {
		record.MatchStatus = status
		changed = true
	}

	if live && s.scores != nil {
		state, err := s.scores.FetchScore(ctx, record)
		if err != nil {
			s.log.WithFields(logrus.Fields{
				"match_id": record.MatchID,
				"source":   s.scores.Name(),
				"error":    err.Error(),
			}).Warn("Score fetch failed")
		} else if state != nil {
			if record.HomeScore != state.HomeScore || record.AwayScore != state.AwayScore {
				record.HomeScore = state.HomeScore
				record.AwayScore = state.AwayScore
				changed = true
			}
			if state.Status != "" && record.MatchStatus != state.Status {
				record.MatchStatus = state.Status
				changed = true
			}
		}
	}

	return changed
}

func statusFor(elapsed time.Duration, live bool) string {
	switch {
	case live:
		return StatusInPlay
	case elapsed > engine.LiveWindow:
		return StatusFinished
	default:
		return StatusScheduled
	}
}
