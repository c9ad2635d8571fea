// Package clean converts raw winner/loser-oriented match rows into typed,
// imputed matches ready for normalization and feature engineering.
package clean

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/match-point/internal/models"
)

// Variant selects the seed imputation flavor. The variants differ only in the
// sentinel value used for missing seeds.
type Variant int

const (
	// VariantRandomForest imputes missing seeds with 999.
	VariantRandomForest Variant = iota
	// VariantBoosting imputes missing seeds with 64 (the max real seed is 35).
	VariantBoosting
)

// SeedSentinel returns the variant's sentinel for missing seeds.
func (v Variant) SeedSentinel() float64 {
	if v == VariantBoosting {
		return 64
	}
	return 999
}

// String returns the variant name as used in config and artifact file names.
func (v Variant) String() string {
	if v == VariantBoosting {
		return "boosting"
	}
	return "random_forest"
}

// ParseVariant parses a variant name.
func ParseVariant(name string) (Variant, error) {
	switch strings.ToLower(name) {
	case "boosting":
		return VariantBoosting, nil
	case "random_forest", "randomforest":
		return VariantRandomForest, nil
	}
	return 0, fmt.Errorf("unknown cleaner variant %q", name)
}

const rankCap = 3000

// droppedColumns are the text and administrative columns discarded during
// cleaning. Dropping a column absent from the input header is a warning only.
var droppedColumns = []string{
	"tourney_name", "tourney_id", "match_num", "winner_name", "loser_name",
	"score", "best_of", "round", "minutes",
}

// Cleaner applies the full cleaning sequence to raw matches.
type Cleaner struct {
	variant Variant
	ioc     *IOCEncoder
	logger  *logrus.Logger

	droppedRows int
}

// NewCleaner creates a cleaner for the given variant.
func NewCleaner(variant Variant, logger *logrus.Logger) *Cleaner {
	if logger == nil {
		logger = logrus.New()
	}
	return &Cleaner{
		variant: variant,
		ioc:     NewIOCEncoder(),
		logger:  logger,
	}
}

// IOC returns the country encoder populated by Clean, retained for serving.
func (c *Cleaner) IOC() *IOCEncoder {
	return c.ioc
}

// DroppedRows returns how many rows the last Clean call discarded for missing
// numerics.
func (c *Cleaner) DroppedRows() int {
	return c.droppedRows
}

// Clean converts raw rows to typed matches. Rows that cannot be assigned a
// surface are fatal; rows with missing numerics after imputation are dropped
// and counted. The header is used only to report which drop-list columns were
// actually present.
func (c *Cleaner) Clean(raws []models.RawMatch, header []string) ([]models.CleanMatch, error) {
	c.logDroppedColumns(header)

	sentinel := c.variant.SeedSentinel()
	matches := make([]models.CleanMatch, 0, len(raws))
	c.droppedRows = 0

	for i := range raws {
		raw := &raws[i]

		surface, err := models.ParseSurface(raw.Surface)
		if err != nil {
			if raw.Surface == "" {
				return nil, fmt.Errorf("%w: row %d", models.ErrMissingSurface, i)
			}
			return nil, fmt.Errorf("row %d: %w", i, err)
		}

		winner, ok := c.cleanSide(raw, true, sentinel)
		if !ok {
			c.droppedRows++
			continue
		}
		loser, ok := c.cleanSide(raw, false, sentinel)
		if !ok {
			c.droppedRows++
			continue
		}
		if raw.DrawSize == nil {
			c.droppedRows++
			continue
		}

		// Joint factorization: winner first, then loser, in row order.
		winner.IOC = c.ioc.Encode(raw.WinnerIOC)
		loser.IOC = c.ioc.Encode(raw.LoserIOC)

		matches = append(matches, models.CleanMatch{
			Year:         raw.TourneyDate / 10000,
			Month:        raw.TourneyDate / 100 % 100,
			Day:          raw.TourneyDate % 100,
			Surface:      surface,
			TourneyLevel: raw.TourneyLevel,
			DrawSize:     *raw.DrawSize,
			Winner:       winner,
			Loser:        loser,
		})
	}

	if c.droppedRows > 0 {
		c.logger.Infof("%d rows dropped", c.droppedRows)
	}
	return matches, nil
}

func (c *Cleaner) cleanSide(raw *models.RawMatch, winner bool, sentinel float64) (models.PlayerSide, bool) {
	var (
		id                              int
		name, hand, entry               string
		seed, height, age, rank, points *float64
		inGame                          [models.NumInGameMetrics]*float64
	)
	if winner {
		id, name, hand, entry = raw.WinnerID, raw.WinnerName, raw.WinnerHand, raw.WinnerEntry
		seed, height, age, rank, points = raw.WinnerSeed, raw.WinnerHeight, raw.WinnerAge, raw.WinnerRank, raw.WinnerRankPoints
		inGame = raw.WinnerInGame
	} else {
		id, name, hand, entry = raw.LoserID, raw.LoserName, raw.LoserHand, raw.LoserEntry
		seed, height, age, rank, points = raw.LoserSeed, raw.LoserHeight, raw.LoserAge, raw.LoserRank, raw.LoserRankPoints
		inGame = raw.LoserInGame
	}

	side := models.PlayerSide{ID: id, Name: name, Entry: strings.ToUpper(entry)}

	// Missing and unknown hands count as right-handed; ambidextrous players
	// get both flags.
	switch strings.ToUpper(hand) {
	case "L":
		side.HandL = true
	case "A":
		side.HandL = true
		side.HandR = true
	default:
		side.HandR = true
	}

	side.WasSeeded = seed != nil
	seedValue := sentinel
	if seed != nil {
		seedValue = *seed
	}
	side.Seed = 1 / seedValue

	if rank == nil || height == nil || age == nil || points == nil {
		return side, false
	}
	clipped := *rank
	if clipped > rankCap {
		clipped = rankCap
	}
	side.Rank = 1 / clipped
	side.Height = *height
	side.Age = *age
	side.RankPoints = *points

	for m := range inGame {
		if inGame[m] == nil {
			return side, false
		}
		side.InGame[m] = *inGame[m]
	}
	return side, true
}

func (c *Cleaner) logDroppedColumns(header []string) {
	present := make(map[string]bool, len(header))
	for _, col := range header {
		present[col] = true
	}
	for _, col := range droppedColumns {
		if present[col] {
			c.logger.Infof("%s column successfully dropped", col)
		} else {
			c.logger.Warnf("An error occurred when dropping %s -> column not present", col)
		}
	}
}
