// Package snapshot builds the frozen in-memory lookup tables the predictor
// consumes: last-seen player attributes, per-surface attributes, head-to-head
// tallies and the ordered prediction column list.
package snapshot

import (
	"github.com/yourusername/match-point/internal/features"
	"github.com/yourusername/match-point/internal/models"
)

// PlayerSnapshot holds a player's engineered attributes as of their most
// recently observed match. Field keys are neutral column names with the
// player prefix stripped; Surface holds the per-surface fields seen most
// recently on each surface.
type PlayerSnapshot struct {
	PlayerID int
	Name     string
	Fields   map[string]float64
	Surface  [models.NumSurfaces]map[string]float64
}

// Tables are the frozen read-only lookup tables shared by all serving
// requests.
type Tables struct {
	Players           map[int]*PlayerSnapshot
	H2H               features.H2HTable
	SurfaceH2H        features.SurfaceH2HTable
	PredictionColumns []string
}

// Player returns a player's snapshot or ErrUnknownPlayer.
func (t *Tables) Player(id int) (*PlayerSnapshot, error) {
	p, ok := t.Players[id]
	if !ok {
		return nil, models.ErrUnknownPlayer
	}
	return p, nil
}

// ApplyNames attaches display names to the snapshots. Names are carried
// outside the engineered frame because they are dropped from the features.
func (t *Tables) ApplyNames(names map[int]string) {
	for id, p := range t.Players {
		if name, ok := names[id]; ok {
			p.Name = name
		}
	}
}
