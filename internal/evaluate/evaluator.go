// Package evaluate replays engineered matches against the model service and
// scores the predictions against the recorded outcomes.
package evaluate

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/match-point/internal/features"
	"github.com/yourusername/match-point/internal/ml"
	"github.com/yourusername/match-point/internal/models"
	"github.com/yourusername/match-point/internal/snapshot"
)

// Config controls an evaluation run.
type Config struct {
	// HoldoutFraction is the trailing share of rows to score, in (0, 1].
	HoldoutFraction float64
	// MaxMatches caps the number of scored rows; 0 means no cap.
	MaxMatches int
}

// Evaluator replays rows of an engineered frame through a classifier.
type Evaluator struct {
	model  ml.Classifier
	logger *logrus.Logger
}

// NewEvaluator creates an evaluator
func NewEvaluator(model ml.Classifier, logger *logrus.Logger) *Evaluator {
	if logger == nil {
		logger = logrus.New()
	}
	return &Evaluator{model: model, logger: logger}
}

// Run scores the trailing holdout of the frame and returns aggregate metrics.
// The rows scored come after the training window in match order, so the
// evaluation never looks ahead of the features it is given.
func (e *Evaluator) Run(ctx context.Context, frame features.FrameView, cfg Config) (*Metrics, error) {
	if cfg.HoldoutFraction <= 0 || cfg.HoldoutFraction > 1 {
		return nil, fmt.Errorf("holdout fraction %v out of range", cfg.HoldoutFraction)
	}

	labels := frame.Column("player_1_won")
	if labels == nil {
		return nil, fmt.Errorf("%w: frame missing label column", models.ErrSchemaMismatch)
	}

	columns := snapshot.PredictionColumns(frame.Columns())
	values := make([][]float64, len(columns))
	for i, col := range columns {
		values[i] = frame.Column(col)
		if values[i] == nil {
			return nil, fmt.Errorf("%w: missing column %s", models.ErrSchemaMismatch, col)
		}
	}

	n := frame.Len()
	start := n - int(float64(n)*cfg.HoldoutFraction)
	if cfg.MaxMatches > 0 && n-start > cfg.MaxMatches {
		start = n - cfg.MaxMatches
	}

	e.logger.WithFields(logrus.Fields{
		"rows":    n - start,
		"columns": len(columns),
	}).Info("Starting evaluation run")

	metrics := &Metrics{StartedAt: time.Now().UTC()}
	vector := make([]float64, len(columns))

	for row := start; row < n; row++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		for i := range columns {
			vector[i] = values[i][row]
		}

		prediction, err := e.model.Predict(ctx, vector)
		if err != nil {
			metrics.Errors++
			e.logger.WithError(err).WithField("row", row).Warn("Prediction failed during evaluation")
			continue
		}

		metrics.observe(prediction, labels[row] != 0)
	}

	metrics.finalize()
	e.logger.WithFields(logrus.Fields{
		"matches":  metrics.TotalMatches,
		"accuracy": metrics.Accuracy,
		"log_loss": metrics.LogLoss,
		"duration": time.Since(metrics.StartedAt).String(),
	}).Info("Evaluation complete")
	return metrics, nil
}
