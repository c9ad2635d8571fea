package ml

import (
	"context"
	"fmt"
	"sync"
	"time"

	cache "github.com/patrickmn/go-cache"
)

// CacheKey identifies a cached prediction: the player pair plus the match
// context.
type CacheKey struct {
	Player1ID    int
	Player2ID    int
	Surface      string
	TourneyLevel string
	Player1Entry string
	Player2Entry string
	DrawSize     float64
}

// String returns the string representation of the cache key
func (k CacheKey) String() string {
	return fmt.Sprintf("%d:%d:%s:%s:%s:%s:%g",
		k.Player1ID, k.Player2ID, k.Surface, k.TourneyLevel,
		k.Player1Entry, k.Player2Entry, k.DrawSize)
}

// PredictionCache provides in-memory TTL caching for predictions
type PredictionCache struct {
	cache   *cache.Cache
	ttl     time.Duration
	maxSize int
	mu      sync.RWMutex
}

// NewPredictionCache creates a new prediction cache
func NewPredictionCache(ttl time.Duration, maxSize int) *PredictionCache {
	return &PredictionCache{
		cache:   cache.New(ttl, ttl*2),
		ttl:     ttl,
		maxSize: maxSize,
	}
}

// Get retrieves a cached prediction, or nil on a miss
func (pc *PredictionCache) Get(ctx context.Context, key CacheKey) *Prediction {
	pc.mu.RLock()
	defer pc.mu.RUnlock()

	if result, found := pc.cache.Get(key.String()); found {
		if pred, ok := result.(*Prediction); ok {
			PredictionCacheHits.Inc()
			return pred
		}
	}

	PredictionCacheMisses.Inc()
	return nil
}

// Set stores a prediction in the cache
func (pc *PredictionCache) Set(ctx context.Context, key CacheKey, prediction *Prediction) {
	pc.mu.Lock()
	defer pc.mu.Unlock()

	if pc.cache.ItemCount() >= pc.maxSize {
		pc.cache.DeleteExpired()
	}

	pc.cache.Set(key.String(), prediction, pc.ttl)
}

// Flush removes every cached prediction
func (pc *PredictionCache) Flush() {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	pc.cache.Flush()
}
