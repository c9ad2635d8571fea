package features

import (
	"github.com/yourusername/match-point/internal/models"
)

// PairKey identifies an unordered player pair. The stored orientation is the
// first-seen one; lookups must probe both orientations.
type PairKey struct {
	A int
	B int
}

// H2HTable maps a pair to [wins for key.A, wins for key.B].
type H2HTable map[PairKey]*[2]int

// SurfaceH2HTable is the per-surface variant of H2HTable.
type SurfaceH2HTable map[PairKey]*[NumSurfaces][2]int

// NumSurfaces mirrors models.NumSurfaces for table sizing.
const NumSurfaces = models.NumSurfaces

// slots resolves the canonical key and the value positions of (p1, p2) in a
// table keyed by first-seen orientation. When the reversed key is stored the
// positions are swapped.
func slots(exists func(PairKey) bool, p1, p2 int) (key PairKey, first, second int) {
	if exists(PairKey{A: p2, B: p1}) {
		return PairKey{A: p2, B: p1}, 1, 0
	}
	return PairKey{A: p1, B: p2}, 0, 1
}

// Wins returns (wins for p1, wins for p2) regardless of stored orientation.
func (t H2HTable) Wins(p1, p2 int) (int, int) {
	key, first, second := slots(func(k PairKey) bool { _, ok := t[k]; return ok }, p1, p2)
	entry := t[key]
	if entry == nil {
		return 0, 0
	}
	return entry[first], entry[second]
}

// WinsOn returns (wins for p1, wins for p2) on the given surface.
func (t SurfaceH2HTable) WinsOn(p1, p2 int, surface models.Surface) (int, int) {
	key, first, second := slots(func(k PairKey) bool { _, ok := t[k]; return ok }, p1, p2)
	entry := t[key]
	if entry == nil {
		return 0, 0
	}
	return entry[surface][first], entry[surface][second]
}

// BuildH2H replays the records and returns the final head-to-head table.
func BuildH2H(records []models.MatchRecord) H2HTable {
	table := make(H2HTable)
	for i := range records {
		r := &records[i]
		key, first, second := slots(func(k PairKey) bool { _, ok := table[k]; return ok },
			r.Players[0].ID, r.Players[1].ID)
		entry := table[key]
		if entry == nil {
			entry = &[2]int{}
			table[key] = entry
		}
		if r.Player1Won {
			entry[first]++
		} else {
			entry[second]++
		}
	}
	return table
}

// BuildSurfaceH2H replays the records and returns the final per-surface
// head-to-head table.
func BuildSurfaceH2H(records []models.MatchRecord) SurfaceH2HTable {
	table := make(SurfaceH2HTable)
	for i := range records {
		r := &records[i]
		key, first, second := slots(func(k PairKey) bool { _, ok := table[k]; return ok },
			r.Players[0].ID, r.Players[1].ID)
		entry := table[key]
		if entry == nil {
			entry = &[NumSurfaces][2]int{}
			table[key] = entry
		}
		if r.Player1Won {
			entry[r.Surface][first]++
		} else {
			entry[r.Surface][second]++
		}
	}
	return table
}

// HeadToHeadStage emits the pre-match head-to-head win counts, globally and on
// the match surface, plus their differences.
type HeadToHeadStage struct{}

// Name implements Stage.
func (HeadToHeadStage) Name() string { return "head_to_head" }

// Apply implements Stage.
func (HeadToHeadStage) Apply(f *Frame) error {
	if err := addGlobalH2H(f); err != nil {
		return err
	}
	return addSurfaceH2H(f)
}

func addGlobalH2H(f *Frame) error {
	table := make(H2HTable)
	n := f.Len()
	p1Won := make([]float64, n)
	p2Won := make([]float64, n)

	for i := range f.Records {
		r := &f.Records[i]
		key, first, second := slots(func(k PairKey) bool { _, ok := table[k]; return ok },
			r.Players[0].ID, r.Players[1].ID)
		entry := table[key]
		if entry == nil {
			entry = &[2]int{}
			table[key] = entry
		}

		p1Won[i] = float64(entry[first])
		p2Won[i] = float64(entry[second])

		if r.Player1Won {
			entry[first]++
		} else {
			entry[second]++
		}
	}

	if err := f.AddColumn("player_1_h2h_won", p1Won); err != nil {
		return err
	}
	if err := f.AddColumn("player_2_h2h_won", p2Won); err != nil {
		return err
	}
	return f.AddDiff("h2h_diff", "player_1_h2h_won", "player_2_h2h_won")
}

func addSurfaceH2H(f *Frame) error {
	table := make(SurfaceH2HTable)
	n := f.Len()
	p1Won := make([]float64, n)
	p2Won := make([]float64, n)

	for i := range f.Records {
		r := &f.Records[i]
		key, first, second := slots(func(k PairKey) bool { _, ok := table[k]; return ok },
			r.Players[0].ID, r.Players[1].ID)
		entry := table[key]
		if entry == nil {
			entry = &[NumSurfaces][2]int{}
			table[key] = entry
		}

		p1Won[i] = float64(entry[r.Surface][first])
		p2Won[i] = float64(entry[r.Surface][second])

		if r.Player1Won {
			entry[r.Surface][first]++
		} else {
			entry[r.Surface][second]++
		}
	}

	if err := f.AddColumn("player_1_surface_h2h_won", p1Won); err != nil {
		return err
	}
	if err := f.AddColumn("player_2_surface_h2h_won", p2Won); err != nil {
		return err
	}
	return f.AddDiff("surface_h2h_diff", "player_1_surface_h2h_won", "player_2_surface_h2h_won")
}
