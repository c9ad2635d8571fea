package snapshot

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/match-point/internal/features"
	"github.com/yourusername/match-point/internal/models"
)

// predictionDenySuffixes lists the per-player raw value suffixes removed from
// the prediction column list; their pairwise diffs carry the signal instead.
var predictionDenySuffixes = []string{
	"_seed", "_ioc", "_ace", "_df", "_svpt", "_1stIn", "_1stWon",
	"_2ndWon", "_SvGms", "_bpSaved", "_bpFaced", "_was_seeded",
}

// snapshotDenyFields are neutral field names never stored in player
// snapshots: identifiers, the label, and pair-dependent tallies served from
// the head-to-head tables.
var snapshotDenyFields = map[string]bool{
	"id":              true,
	"won":             true,
	"h2h_won":         true,
	"surface_h2h_won": true,
}

// Builder derives the serving tables from an engineered frame.
type Builder struct {
	logger *logrus.Logger
}

// NewBuilder creates a snapshot builder.
func NewBuilder(logger *logrus.Logger) *Builder {
	if logger == nil {
		logger = logrus.New()
	}
	return &Builder{logger: logger}
}

type rowSlot struct {
	row  int
	slot int
}

// Build walks the frame once, remembering the last-seen row per player and
// per (player, surface), then materializes the snapshots, replays the
// head-to-head tallies and freezes the prediction column list.
func (b *Builder) Build(frame features.FrameView) (*Tables, error) {
	n := frame.Len()

	id1 := frame.Column("player_1_id")
	id2 := frame.Column("player_2_id")
	won := frame.Column("player_1_won")
	if id1 == nil || id2 == nil || won == nil {
		return nil, fmt.Errorf("%w: frame missing identifier columns", models.ErrSchemaMismatch)
	}
	surfaces, err := rowSurfaces(frame)
	if err != nil {
		return nil, err
	}

	lastSeen := make(map[int]rowSlot)
	lastOnSurface := make(map[int]*[models.NumSurfaces]rowSlot)

	for i := 0; i < n; i++ {
		for slot, ids := range [2][]float64{id1, id2} {
			id := int(ids[i])
			lastSeen[id] = rowSlot{row: i, slot: slot}
			bySurface := lastOnSurface[id]
			if bySurface == nil {
				bySurface = &[models.NumSurfaces]rowSlot{}
				for s := range bySurface {
					bySurface[s] = rowSlot{row: -1}
				}
				lastOnSurface[id] = bySurface
			}
			bySurface[surfaces[i]] = rowSlot{row: i, slot: slot}
		}
	}

	players := b.buildPlayers(frame, lastSeen, lastOnSurface)

	tables := &Tables{
		Players:           players,
		H2H:               buildH2H(id1, id2, won),
		SurfaceH2H:        buildSurfaceH2H(id1, id2, won, surfaces),
		PredictionColumns: PredictionColumns(frame.Columns()),
	}

	b.logger.WithFields(logrus.Fields{
		"players":            len(tables.Players),
		"pairs":              len(tables.H2H),
		"prediction_columns": len(tables.PredictionColumns),
	}).Info("Snapshot tables built")
	return tables, nil
}

// playerField classifies a column name: the owning slot, the neutral field
// name and whether the field is surface-specific.
func playerField(col string) (slot int, field string, surface bool, ok bool) {
	switch {
	case strings.HasPrefix(col, "player_1_"):
		slot, field = 0, col[len("player_1_"):]
	case strings.HasPrefix(col, "player_2_"):
		slot, field = 1, col[len("player_2_"):]
	default:
		return 0, "", false, false
	}
	surface = field == "surface_elo" || strings.HasSuffix(field, "_surface")
	return slot, field, surface, true
}

func (b *Builder) buildPlayers(frame features.FrameView, lastSeen map[int]rowSlot,
	lastOnSurface map[int]*[models.NumSurfaces]rowSlot) map[int]*PlayerSnapshot {

	players := make(map[int]*PlayerSnapshot, len(lastSeen))
	for id := range lastSeen {
		p := &PlayerSnapshot{PlayerID: id, Fields: make(map[string]float64)}
		for s := range p.Surface {
			p.Surface[s] = make(map[string]float64)
		}
		players[id] = p
	}

	for _, col := range frame.Columns() {
		slot, field, surfaceSpecific, ok := playerField(col)
		if !ok || snapshotDenyFields[field] || strings.HasPrefix(field, "entry_") {
			continue
		}
		values := frame.Column(col)

		for id, p := range players {
			if surfaceSpecific {
				for s, at := range lastOnSurface[id] {
					if at.row >= 0 && at.slot == slot {
						p.Surface[s][field] = values[at.row]
					}
				}
				continue
			}
			if at := lastSeen[id]; at.slot == slot {
				p.Fields[field] = values[at.row]
			}
		}
	}
	return players
}

// rowSurfaces decodes the one-hot surface flags into a surface index per row.
// A row with no surface flag set is fatal.
func rowSurfaces(frame features.FrameView) ([]models.Surface, error) {
	n := frame.Len()
	flags := [models.NumSurfaces][]float64{}
	for i, s := range models.Surfaces {
		col := frame.Column("surface_" + s.String())
		if col == nil {
			return nil, fmt.Errorf("%w: missing column surface_%s", models.ErrSchemaMismatch, s)
		}
		flags[i] = col
	}

	surfaces := make([]models.Surface, n)
	for i := 0; i < n; i++ {
		found := false
		for s := 0; s < models.NumSurfaces; s++ {
			if flags[s][i] != 0 {
				surfaces[i] = models.Surface(s)
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("%w: row %d", models.ErrMissingSurface, i)
		}
	}
	return surfaces, nil
}

func buildH2H(id1, id2, won []float64) features.H2HTable {
	records := make([]models.MatchRecord, len(id1))
	for i := range id1 {
		records[i].Players[0].ID = int(id1[i])
		records[i].Players[1].ID = int(id2[i])
		records[i].Player1Won = won[i] != 0
	}
	return features.BuildH2H(records)
}

func buildSurfaceH2H(id1, id2, won []float64, surfaces []models.Surface) features.SurfaceH2HTable {
	records := make([]models.MatchRecord, len(id1))
	for i := range id1 {
		records[i].Players[0].ID = int(id1[i])
		records[i].Players[1].ID = int(id2[i])
		records[i].Player1Won = won[i] != 0
		records[i].Surface = surfaces[i]
	}
	return features.BuildSurfaceH2H(records)
}

// PredictionColumns filters the engineered column list down to the ordered
// feature names the classifier consumes: identifiers, the label and redundant
// raw per-player values are removed. The result is stable across runs because
// the engineered column order is.
func PredictionColumns(columns []string) []string {
	out := make([]string, 0, len(columns))
	for _, col := range columns {
		if col == "player_1_id" || col == "player_2_id" || col == "player_1_won" {
			continue
		}
		if _, _, _, isPlayer := playerField(col); isPlayer && hasDenySuffix(col) {
			continue
		}
		out = append(out, col)
	}
	return out
}

func hasDenySuffix(col string) bool {
	for _, suffix := range predictionDenySuffixes {
		if strings.HasSuffix(col, suffix) {
			return true
		}
	}
	return false
}
