package ml

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

// CachedClassifier wraps a Classifier with TTL caching keyed on the match
// context rather than the raw feature vector.
type CachedClassifier struct {
	client Classifier
	cache  *PredictionCache
	logger *logrus.Logger
}

// NewCachedClassifier creates a caching wrapper around a classifier
func NewCachedClassifier(client Classifier, ttl time.Duration, maxSize int, logger *logrus.Logger) *CachedClassifier {
	if logger == nil {
		logger = logrus.New()
	}
	return &CachedClassifier{
		client: client,
		cache:  NewPredictionCache(ttl, maxSize),
		logger: logger,
	}
}

// PredictWithKey returns a cached prediction for the key when present,
// otherwise calls the underlying classifier and caches the result.
func (c *CachedClassifier) PredictWithKey(ctx context.Context, key CacheKey, features []float64) (*Prediction, error) {
	if cached := c.cache.Get(ctx, key); cached != nil {
		c.logger.WithField("key", key.String()).Debug("Prediction cache hit")
		ModelPredictionsTotal.WithLabelValues("true").Inc()
		return cached, nil
	}

	prediction, err := c.client.Predict(ctx, features)
	if err != nil {
		return nil, err
	}

	c.cache.Set(ctx, key, prediction)
	return prediction, nil
}

// Predict implements Classifier, bypassing the cache
func (c *CachedClassifier) Predict(ctx context.Context, features []float64) (*Prediction, error) {
	return c.client.Predict(ctx, features)
}

// Ping checks the underlying model service when the wrapped classifier
// supports it.
func (c *CachedClassifier) Ping(ctx context.Context) error {
	if p, ok := c.client.(interface{ Ping(context.Context) error }); ok {
		return p.Ping(ctx)
	}
	return nil
}
