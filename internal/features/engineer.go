package features

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/match-point/internal/models"
)

// Engineer runs the full feature engineering pipeline over canonical match
// records: chronological sort, base frame materialization, then every stage in
// a fixed order. Each stage only ever reads rows strictly earlier than the one
// it is writing.
type Engineer struct {
	stages []Stage
	logger *logrus.Logger
}

// NewEngineer creates an engineer with the default stage composition and Elo
// K-factor.
func NewEngineer(logger *logrus.Logger) *Engineer {
	if logger == nil {
		logger = logrus.New()
	}
	return &Engineer{
		stages: []Stage{
			PlayerStatsStage{},
			PhysicalStage{},
			HeadToHeadStage{},
			InGameStage{},
			MatchDataStage{},
			MatchDiffStage{},
			WinRatioStage{},
			NewEloStage(DefaultEloK),
		},
		logger: logger,
	}
}

// Run sorts the records chronologically and applies all stages, returning the
// engineered frame.
func (e *Engineer) Run(records []models.MatchRecord) (*Frame, error) {
	e.logger.WithField("rows", len(records)).Info("Applying feature engineering")

	SortChronological(records)
	frame := NewFrame(records)

	for _, stage := range e.stages {
		start := time.Now()
		if err := stage.Apply(frame); err != nil {
			return nil, fmt.Errorf("stage %s: %w", stage.Name(), err)
		}
		e.logger.WithFields(logrus.Fields{
			"stage":    stage.Name(),
			"columns":  len(frame.Columns()),
			"duration": time.Since(start),
		}).Debug("Stage complete")
	}

	return frame, nil
}
