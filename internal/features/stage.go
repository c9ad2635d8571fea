package features

// LastNWindows lists the rolling window sizes used by the rolling-match,
// in-game and Elo-progress features.
var LastNWindows = [...]int{5, 10, 20, 50}

// DefaultEloK is the Elo K-factor used by the pipeline.
const DefaultEloK = 24.0

// Stage is a single feature engineering step. A stage reads the frame's
// records and existing columns and appends new columns; it never mutates
// earlier output.
type Stage interface {
	Name() string
	Apply(f *Frame) error
}
