// Package service orchestrates the odds refresh and live update workflows.
package service

import (
	"fmt"
	"sync"
	"time"

	cache "github.com/patrickmn/go-cache"

	"github.com/yourusername/value-scout/internal/models"
)

// PredictionCache provides in-memory caching for match predictions so a
// refresh cycle does not re-run the model when odds have not moved.
type PredictionCache struct {
	cache     *cache.Cache
	ttl       time.Duration
	maxSize   int
	mu        sync.RWMutex
	hitCount  uint64
	missCount uint64
}

// NewPredictionCache creates a new prediction cache
func NewPredictionCache(ttl time.Duration, maxSize int) *PredictionCache {
	return &PredictionCache{
		cache:   cache.New(ttl, ttl*2),
		ttl:     ttl,
		maxSize: maxSize,
	}
}

// cacheKey fingerprints a match and its current odds. Any odds movement
// produces a new key, so stale predictions age out rather than being served.
func cacheKey(matchID string, odds models.OddsTriple) string {
	return fmt.Sprintf("%s:%s:%s:%s",
		matchID, oddsComponent(odds.HomeOdds), oddsComponent(odds.AwayOdds), oddsComponent(odds.DrawOdds))
}

func oddsComponent(odds *float64) string {
	if odds == nil {
		return "-"
	}
	return fmt.Sprintf("%.4f", *odds)
}

// Get retrieves a cached prediction for a match at its current odds
func (pc *PredictionCache) Get(matchID string, odds models.OddsTriple) *models.PredictionResult {
	pc.mu.Lock()
	defer pc.mu.Unlock()

	if result, found := pc.cache.Get(cacheKey(matchID, odds)); found {
		if pred, ok := result.(*models.PredictionResult); ok {
			pc.hitCount++
			return pred
		}
	}

	pc.missCount++
	return nil
}

// Set stores a prediction in cache
func (pc *PredictionCache) Set(matchID string, odds models.OddsTriple, prediction *models.PredictionResult) {
	pc.mu.Lock()
	defer pc.mu.Unlock()

	if pc.cache.ItemCount() >= pc.maxSize {
		pc.cache.DeleteExpired()
	}

	pc.cache.Set(cacheKey(matchID, odds), prediction, pc.ttl)
}

// Clear flushes the entire cache
func (pc *PredictionCache) Clear() {
	pc.mu.Lock()
	defer pc.mu.Unlock()

	pc.cache.Flush()
	pc.hitCount = 0
	pc.missCount = 0
}

// Stats returns cache statistics
func (pc *PredictionCache) Stats() (hits, misses uint64, ratio float64) {
	pc.mu.RLock()
	defer pc.mu.RUnlock()

	hits = pc.hitCount
	misses = pc.missCount
	total := hits + misses
	if total > 0 {
		ratio = float64(hits) / float64(total)
	}
	return
}

// ItemCount returns the number of items in cache
func (pc *PredictionCache) ItemCount() int {
	return pc.cache.ItemCount()
}
