// Package api exposes the REST and WebSocket surface of the pipeline.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	cache "github.com/patrickmn/go-cache"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/value-scout/internal/engine"
	"github.com/yourusername/value-scout/internal/models"
	"github.com/yourusername/value-scout/internal/oddsfeed"
	"github.com/yourusername/value-scout/internal/repository"
	"github.com/yourusername/value-scout/internal/service"
)

const sportsCacheTTL = 10 * time.Minute

// Default odds applied to custom prediction requests that omit them
const (
	defaultCustomHomeOdds = 2.0
	defaultCustomAwayOdds = 2.0
	defaultCustomDrawOdds = 3.0
)

// Handler contains dependencies for HTTP handlers
type Handler struct {
	pipeline    *service.PipelineService
	live        *service.LiveService
	feed        oddsfeed.OddsFeed
	predictor   *engine.OutcomePredictor
	processor   *engine.MatchProcessor
	sportsCache *cache.Cache
	logger      *logrus.Logger
}

// NewHandler creates a new handler with dependencies
func NewHandler(
	pipeline *service.PipelineService,
	live *service.LiveService,
	feed oddsfeed.OddsFeed,
	predictor *engine.OutcomePredictor,
	processor *engine.MatchProcessor,
	logger *logrus.Logger,
) *Handler {
	return &Handler{
		pipeline:    pipeline,
		live:        live,
		feed:        feed,
		predictor:   predictor,
		processor:   processor,
		sportsCache: cache.New(sportsCacheTTL, sportsCacheTTL*2),
		logger:      logger,
	}
}

// GetMatches returns tracked matches with optional filtering
// Query params: sport, live
func (h *Handler) GetMatches(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	filter := repository.ListFilter{
		SportKey: r.URL.Query().Get("sport"),
		LiveOnly: r.URL.Query().Get("live") == "true",
	}

	matches, err := h.pipeline.ListMatches(ctx, filter)
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, "failed to retrieve matches", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"matches": matches,
		"count":   len(matches),
	})
}

// TriggerRefresh runs a full odds refresh cycle on demand
func (h *Handler) TriggerRefresh(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Minute)
	defer cancel()

	result, err := h.pipeline.RefreshAll(ctx)
	if err != nil {
		h.respondError(w, http.StatusBadGateway, "refresh failed", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"processed":  result.Processed,
		"rejected":   result.Rejected,
		"value_bets": result.ValueBets,
		"errors":     result.Errors,
		"duration":   result.Duration.String(),
	})
}

// TriggerLiveUpdate runs a live reconciliation cycle on demand
func (h *Handler) TriggerLiveUpdate(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	liveCount, err := h.live.RefreshLive(ctx)
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, "live update failed", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"live_matches": liveCount,
	})
}

// customPredictRequest is the body of a custom prediction request.
// Odds default to even-money home/away and 3.0 draw when omitted.
type customPredictRequest struct {
	HomeTeam string   `json:"home_team"`
	AwayTeam string   `json:"away_team"`
	League   string   `json:"league"`
	HomeOdds *float64 `json:"home_odds"`
	AwayOdds *float64 `json:"away_odds"`
	DrawOdds *float64 `json:"draw_odds"`
}

// PredictCustom produces a prediction and value assessment for an arbitrary
// fixture supplied by the caller
func (h *Handler) PredictCustom(w http.ResponseWriter, r *http.Request) {
	var req customPredictRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	if req.HomeTeam == "" || req.AwayTeam == "" {
		h.respondError(w, http.StatusBadRequest, "home_team and away_team are required", nil)
		return
	}

	league := req.League
	if league == "" {
		league = "Unknown"
	}

	odds := oddsOrDefaults(req)
	cacheID := fmt.Sprintf("custom:%s:%s:%s", req.HomeTeam, req.AwayTeam, league)

	var prediction *models.PredictionResult
	if predictionCache := h.pipeline.Cache(); predictionCache != nil {
		prediction = predictionCache.Get(cacheID, odds)
	}
	if prediction == nil {
		result := h.predictor.Predict(req.HomeTeam, req.AwayTeam, league, odds)
		prediction = &result
		if predictionCache := h.pipeline.Cache(); predictionCache != nil {
			predictionCache.Set(cacheID, odds, prediction)
		}
	}

	valueBet := h.processor.ValueBetFor(*prediction, odds)

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"home_team":  req.HomeTeam,
		"away_team":  req.AwayTeam,
		"league":     league,
		"prediction": prediction,
		"value_bet":  valueBet,
	})
}

// GetSports returns the provider's sport catalog, cached briefly
func (h *Handler) GetSports(w http.ResponseWriter, r *http.Request) {
	if cached, found := h.sportsCache.Get("sports"); found {
		if sports, ok := cached.([]oddsfeed.Sport); ok {
			respondJSON(w, http.StatusOK, map[string]interface{}{
				"sports": sports,
				"count":  len(sports),
				"cached": true,
			})
			return
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	sports, err := h.feed.FetchSports(ctx)
	if err != nil {
		h.respondError(w, http.StatusBadGateway, "failed to fetch sports", err)
		return
	}
	h.sportsCache.Set("sports", sports, cache.DefaultExpiration)

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"sports": sports,
		"count":  len(sports),
		"cached": false,
	})
}

func oddsOrDefaults(req customPredictRequest) models.OddsTriple {
	home := defaultCustomHomeOdds
	away := defaultCustomAwayOdds
	draw := defaultCustomDrawOdds
	if req.HomeOdds != nil {
		home = *req.HomeOdds
	}
	if req.AwayOdds != nil {
		away = *req.AwayOdds
	}
	if req.DrawOdds != nil {
		draw = *req.DrawOdds
	}
	return models.OddsTriple{HomeOdds: &home, AwayOdds: &away, DrawOdds: &draw}
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		logrus.WithError(err).Error("Failed to encode response")
	}
}

func (h *Handler) respondError(w http.ResponseWriter, status int, message string, err error) {
	if err != nil {
		h.logger.WithFields(logrus.Fields{
			"status": status,
			"error":  err.Error(),
		}).Error(message)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(errorResponse{
		Error:   http.StatusText(status),
		Message: message,
		Code:    status,
	})
}
