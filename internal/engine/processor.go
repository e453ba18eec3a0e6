package engine

import (
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/value-scout/internal/models"
	"github.com/yourusername/value-scout/internal/oddsfeed"
)

// LiveWindow is the interval after scheduled start during which a match is
// considered in progress. Both boundaries are inclusive.
const LiveWindow = 3 * time.Hour

// MatchProcessor orchestrates the pipeline for one payload: odds extraction,
// outcome prediction, value detection and live-window classification, merged
// into a match record ready for upsert.
type MatchProcessor struct {
	extractor *OddsExtractor
	predictor *OutcomePredictor
	detector  *ValueBetDetector
	logger    *logrus.Logger
	now       func() time.Time
}

// NewMatchProcessor creates a processor over the given predictor and detector
func NewMatchProcessor(predictor *OutcomePredictor, detector *ValueBetDetector, logger *logrus.Logger) *MatchProcessor {
	if logger == nil {
		logger = logrus.New()
	}
	return &MatchProcessor{
		extractor: NewOddsExtractor(),
		predictor: predictor,
		detector:  detector,
		logger:    logger,
		now:       time.Now,
	}
}

// Process derives a fully populated match record from a payload. When an
// existing record is supplied its derived fields are overwritten in full;
// identity, creation time and the score/status fields owned by the
// live-update path are preserved. Malformed payloads are rejected with an
// error and must not abort sibling payloads in a batch.
func (p *MatchProcessor) Process(payload *oddsfeed.MatchPayload, existing *models.MatchRecord) (*models.MatchRecord, error) {
	if err := payload.Validate(); err != nil {
		return nil, err
	}

	odds := p.extractor.Extract(payload)
	league := payload.LeagueOrDefault()
	prediction := p.predictor.Predict(payload.HomeTeam, payload.AwayTeam, league, odds)
	valueBet := p.detector.Detect(prediction, odds)

	now := p.now()

	var record models.MatchRecord
	if existing != nil {
		record = *existing
	} else {
		record = models.MatchRecord{
			ID:        uuid.New(),
			MatchID:   payload.ID,
			CreatedAt: now,
		}
	}

	record.SportKey = payload.SportKey
	record.SportTitle = payload.SportTitle
	record.HomeTeam = payload.HomeTeam
	record.AwayTeam = payload.AwayTeam
	record.League = league
	record.CommenceTime = payload.CommenceTime
	record.OddsTriple = odds
	record.PredictionResult = prediction

	record.ValueBetDetected = valueBet != nil
	record.ValueBetSide = nil
	if valueBet != nil {
		side := string(valueBet.Side)
		record.ValueBetSide = &side
	}

	record.IsLive = p.isLive(payload.CommenceTime)
	record.UpdatedAt = now

	p.logger.WithFields(logrus.Fields{
		"match_id":           record.MatchID,
		"predicted_winner":   record.PredictedWinner,
		"confidence":         record.Confidence,
		"value_bet_detected": record.ValueBetDetected,
		"is_live":            record.IsLive,
	}).Debug("Match processed")

	return &record, nil
}

// ValueBetFor exposes the detector result for a payload without building a
// record, for ad-hoc prediction requests.
func (p *MatchProcessor) ValueBetFor(prediction models.PredictionResult, odds models.OddsTriple) *models.ValueBet {
	return p.detector.Detect(prediction, odds)
}

// isLive classifies the live window: a match is live from its scheduled
// start until LiveWindow after it, boundaries inclusive, evaluated in the
// payload's time zone.
func (p *MatchProcessor) isLive(commence time.Time) bool {
	elapsed := p.now().In(commence.Location()).Sub(commence)
	return elapsed >= 0 && elapsed <= LiveWindow
}
