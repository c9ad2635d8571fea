package server

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/match-point/internal/config"
	"github.com/yourusername/match-point/internal/ml"
	"github.com/yourusername/match-point/internal/models"
	"github.com/yourusername/match-point/internal/snapshot"
)

// Predictor assembles feature vectors from the snapshot tables and scores
// them against the model service.
type Predictor struct {
	tables *snapshot.Tables
	model  *ml.CachedClassifier
	cfg    *config.Config
	logger *logrus.Logger
}

// NewPredictor creates a predictor over frozen snapshot tables
func NewPredictor(tables *snapshot.Tables, model *ml.CachedClassifier, cfg *config.Config, logger *logrus.Logger) *Predictor {
	if logger == nil {
		logger = logrus.New()
	}
	return &Predictor{
		tables: tables,
		model:  model,
		cfg:    cfg,
		logger: logger,
	}
}

// Predict scores a single matchup and returns the predicted winner with the
// model's confidence.
func (p *Predictor) Predict(ctx context.Context, req *models.PredictionRequest) (*models.PredictionResponse, error) {
	surface, err := models.ParseSurface(req.Surface)
	if err != nil {
		return nil, err
	}
	if !validTourneyLevel(req.TourneyLevel) {
		return nil, fmt.Errorf("tourney level %q: %w", req.TourneyLevel, models.ErrUnknownLevel)
	}
	for _, entry := range []string{req.Player1Entry, req.Player2Entry} {
		if entry != "" && !validEntryCode(entry) {
			return nil, fmt.Errorf("entry %q: %w", entry, models.ErrUnknownEntry)
		}
	}

	var snaps [2]*snapshot.PlayerSnapshot
	for i, id := range []int{req.Player1ID, req.Player2ID} {
		snap, err := p.tables.Player(id)
		if err != nil {
			return nil, fmt.Errorf("player %d: %w", id, err)
		}
		snaps[i] = snap
	}

	features := make([]float64, 0, len(p.tables.PredictionColumns))
	for _, col := range p.tables.PredictionColumns {
		v, err := p.columnValue(col, req, surface, snaps)
		if err != nil {
			return nil, fmt.Errorf("column %s: %w", col, err)
		}
		features = append(features, v)
	}

	key := ml.CacheKey{
		Player1ID:    req.Player1ID,
		Player2ID:    req.Player2ID,
		Surface:      req.Surface,
		TourneyLevel: req.TourneyLevel,
		Player1Entry: req.Player1Entry,
		Player2Entry: req.Player2Entry,
		DrawSize:     req.DrawSize,
	}

	prediction, err := p.model.PredictWithKey(ctx, key, features)
	if err != nil {
		return nil, err
	}

	winner := 2
	if prediction.Class == 1 {
		winner = 1
	}

	maxProb := 0.0
	for _, p := range prediction.Probabilities {
		if p > maxProb {
			maxProb = p
		}
	}
	confidence, _ := decimal.NewFromFloat(maxProb * 100).Round(2).Float64()

	p.logger.WithFields(logrus.Fields{
		"player_1":   req.Player1ID,
		"player_2":   req.Player2ID,
		"winner":     winner,
		"confidence": confidence,
	}).Info("Prediction served")

	return &models.PredictionResponse{
		WinnerPlayer: winner,
		Confidence:   confidence,
	}, nil
}

// PlayerStatistics returns human readable statistics for a known player
func (p *Predictor) PlayerStatistics(playerID int) (*models.PlayerStatistics, error) {
	snap, err := p.tables.Player(playerID)
	if err != nil {
		return nil, err
	}

	won := int(snap.Fields["won_match"])
	total := int(snap.Fields["total_match"])

	return &models.PlayerStatistics{
		Name:       snap.Name,
		IOC:        int(snap.Fields["ioc"]),
		Rank:       invertedRank(snap.Fields["rank"]),
		Hand:       handLabel(snap.Fields["hand_L"], snap.Fields["hand_R"]),
		Age:        snap.Fields["age"],
		Height:     snap.Fields["ht"],
		RankPoints: snap.Fields["rank_points"],
		Elo:        snap.Fields["elo"],
		WinRate:    snap.Fields["win_ratio"],
		WonMatch:   won,
		LostMatch:  total - won,
		TotalMatch: total,
	}, nil
}

// columnValue resolves a single prediction column to its serving-time value.
func (p *Predictor) columnValue(col string, req *models.PredictionRequest, surface models.Surface, snaps [2]*snapshot.PlayerSnapshot) (float64, error) {
	switch col {
	case "tourney_year":
		return float64(p.cfg.Prediction.TourneyYear), nil
	case "tourney_month":
		return float64(p.cfg.Prediction.TourneyMonth), nil
	case "tourney_day":
		return float64(p.cfg.Prediction.TourneyDay), nil
	case "draw_size":
		return req.DrawSize, nil
	case "h2h_diff":
		w1, w2 := p.tables.H2H.Wins(req.Player1ID, req.Player2ID)
		return float64(w1 - w2), nil
	case "surface_h2h_diff":
		w1, w2 := p.tables.SurfaceH2H.WinsOn(req.Player1ID, req.Player2ID, surface)
		return float64(w1 - w2), nil
	}

	for _, s := range models.Surfaces {
		if col == "surface_"+s.String() {
			return oneHot(s == surface), nil
		}
	}
	for _, level := range models.TourneyLevels {
		if col == "tourney_level_"+level {
			return oneHot(level == req.TourneyLevel), nil
		}
	}

	for num := 1; num <= 2; num++ {
		prefix := fmt.Sprintf("player_%d_", num)
		if !strings.HasPrefix(col, prefix) {
			continue
		}
		field := strings.TrimPrefix(col, prefix)
		entry := req.Player1Entry
		if num == 2 {
			entry = req.Player2Entry
		}
		return p.playerValue(field, num-1, entry, req, surface, snaps)
	}

	if base, ok := strings.CutSuffix(col, "_diff"); ok {
		field := diffField(base)
		v1, err := p.playerValue(field, 0, req.Player1Entry, req, surface, snaps)
		if err != nil {
			return 0, err
		}
		v2, err := p.playerValue(field, 1, req.Player2Entry, req, surface, snaps)
		if err != nil {
			return 0, err
		}
		return v1 - v2, nil
	}

	return 0, fmt.Errorf("unresolved prediction column")
}

// playerValue resolves a neutral field name for one side of the matchup.
func (p *Predictor) playerValue(field string, side int, entry string, req *models.PredictionRequest, surface models.Surface, snaps [2]*snapshot.PlayerSnapshot) (float64, error) {
	for _, code := range models.EntryCodes {
		if field == "entry_"+code {
			return oneHot(entry == code), nil
		}
	}

	ids := [2]int{req.Player1ID, req.Player2ID}
	switch field {
	case "h2h_won":
		w1, w2 := p.tables.H2H.Wins(ids[0], ids[1])
		if side == 0 {
			return float64(w1), nil
		}
		return float64(w2), nil
	case "surface_h2h_won":
		w1, w2 := p.tables.SurfaceH2H.WinsOn(ids[0], ids[1], surface)
		if side == 0 {
			return float64(w1), nil
		}
		return float64(w2), nil
	}

	snap := snaps[side]
	if field == "surface_elo" || strings.HasSuffix(field, "_surface") {
		if m := snap.Surface[surface]; m != nil {
			return m[field], nil
		}
		return 0, nil
	}
	return snap.Fields[field], nil
}

// diffField maps a diff column's base name to the neutral per-player field it
// was computed from. Most match directly; the exceptions mirror the stage
// naming.
func diffField(base string) string {
	switch base {
	case "height":
		return "ht"
	case "h2h":
		return "h2h_won"
	case "surface_h2h":
		return "surface_h2h_won"
	}
	if n, ok := matchDiffWindow(base); ok {
		return fmt.Sprintf("last_%d_match_won", n)
	}
	return base
}

// matchDiffWindow reports whether base is a last_N_match rolling diff base.
func matchDiffWindow(base string) (int, bool) {
	var n int
	if _, err := fmt.Sscanf(base, "last_%d_match", &n); err != nil {
		return 0, false
	}
	if base == fmt.Sprintf("last_%d_match", n) {
		return n, true
	}
	return 0, false
}

func validTourneyLevel(level string) bool {
	for _, l := range models.TourneyLevels {
		if l == level {
			return true
		}
	}
	return false
}

func validEntryCode(entry string) bool {
	for _, code := range models.EntryCodes {
		if code == entry {
			return true
		}
	}
	return false
}

func oneHot(set bool) float64 {
	if set {
		return 1
	}
	return 0
}

// invertedRank recovers the integer world rank from its stored reciprocal.
func invertedRank(v float64) int {
	if v <= 0 {
		return 0
	}
	return int(math.Round(1 / v))
}

func handLabel(left, right float64) string {
	switch {
	case left == 1 && right == 1:
		return "A"
	case left == 1:
		return "L"
	default:
		return "R"
	}
}
