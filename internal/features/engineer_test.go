package features

import (
	"math"
	"strings"
	"testing"

	"github.com/yourusername/match-point/internal/models"
)

func TestEngineerRun(t *testing.T) {
	records := []models.MatchRecord{
		rec(2020, 1, 5, models.SurfaceHard, 1, 2, true),
		rec(2020, 1, 1, models.SurfaceClay, 1, 2, false),
		rec(2020, 1, 9, models.SurfaceHard, 2, 3, true),
	}

	frame, err := NewEngineer(nil).Run(records)
	if err != nil {
		t.Fatalf("engineer run failed: %v", err)
	}
	if frame.Len() != 3 {
		t.Fatalf("expected 3 rows, got %d", frame.Len())
	}

	// Records are sorted before the stages run, so the clay match comes first.
	if frame.Records[0].Surface != models.SurfaceClay {
		t.Fatalf("expected chronological sort, first row surface %v", frame.Records[0].Surface)
	}

	// Every stage family contributes its columns.
	for _, col := range []string{
		"rank_diff", "height_diff", "h2h_diff", "surface_h2h_diff",
		"player_1_ace_total", "player_1_won_match", "win_ratio_diff",
		"player_1_elo", "elo_diff", "player_1_surface_elo",
	} {
		if !frame.HasColumn(col) {
			t.Fatalf("missing engineered column %q", col)
		}
	}

	// Stages only ever read prior rows, so the first row carries neutral
	// pre-match state.
	if got := frame.Column("player_1_elo")[0]; got != initialElo {
		t.Fatalf("expected initial elo on first row, got %v", got)
	}
	if got := frame.Column("player_1_total_match")[0]; got != 0 {
		t.Fatalf("expected zero prior matches on first row, got %v", got)
	}
}

// sided fills the per-player attributes the row-local diff stages read.
func sided(r models.MatchRecord, rank1, rank2 float64) models.MatchRecord {
	r.Players[0].Rank, r.Players[1].Rank = rank1, rank2
	r.Players[0].Seed, r.Players[1].Seed = 0.5, 0.125
	r.Players[0].RankPoints, r.Players[1].RankPoints = 1500, 800
	r.Players[0].Height, r.Players[1].Height = 185, 190
	r.Players[0].Age, r.Players[1].Age = 24, 29
	r.Players[0].InGame[0], r.Players[1].InGame[0] = 7, 3
	return r
}

// mirror swaps the player sides and inverts the label.
func mirror(records []models.MatchRecord) []models.MatchRecord {
	out := make([]models.MatchRecord, len(records))
	for i, r := range records {
		r.Players[0], r.Players[1] = r.Players[1], r.Players[0]
		r.Player1Won = !r.Player1Won
		out[i] = r
	}
	return out
}

func TestEngineerOrientationSymmetry(t *testing.T) {
	records := []models.MatchRecord{
		sided(rec(2020, 1, 1, models.SurfaceClay, 1, 2, true), 0.5, 0.1),
		sided(rec(2020, 1, 8, models.SurfaceHard, 2, 3, false), 0.1, 0.25),
		sided(rec(2020, 2, 1, models.SurfaceHard, 1, 2, false), 0.5, 0.1),
		sided(rec(2020, 2, 9, models.SurfaceClay, 3, 1, true), 0.25, 0.5),
		sided(rec(2020, 3, 2, models.SurfaceHard, 1, 2, true), 0.5, 0.1),
	}
	mirrored := mirror(records)

	base, err := NewEngineer(nil).Run(records)
	if err != nil {
		t.Fatalf("engineer run failed: %v", err)
	}
	swapped, err := NewEngineer(nil).Run(mirrored)
	if err != nil {
		t.Fatalf("mirrored engineer run failed: %v", err)
	}

	// Swapping the sides and inverting the label must negate every
	// difference column, row by row.
	checked, nonZero := 0, 0
	for _, col := range base.Columns() {
		if !strings.HasSuffix(col, "_diff") {
			continue
		}
		a := base.Column(col)
		b := swapped.Column(col)
		if b == nil {
			t.Fatalf("mirrored frame missing column %q", col)
		}
		for i := range a {
			if math.Abs(a[i]+b[i]) > 1e-9 {
				t.Fatalf("column %q row %d: %v, mirrored %v", col, i, a[i], b[i])
			}
			if a[i] != 0 {
				nonZero++
			}
		}
		checked++
	}
	if checked == 0 {
		t.Fatalf("no difference columns found")
	}
	if nonZero == 0 {
		t.Fatalf("all difference values were zero, symmetry check is vacuous")
	}
}

func TestEngineerStageOrder(t *testing.T) {
	// MatchDiffStage reads the counter columns MatchDataStage writes; running
	// it on a bare frame must fail rather than emit garbage.
	f := NewFrame([]models.MatchRecord{rec(2020, 1, 1, models.SurfaceHard, 1, 2, true)})
	if err := (MatchDiffStage{}).Apply(f); err == nil {
		t.Fatalf("expected error applying match diffs before match data")
	}
}
