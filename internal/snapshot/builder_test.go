package snapshot

import (
	"testing"

	"github.com/yourusername/match-point/internal/features"
	"github.com/yourusername/match-point/internal/models"
)

func buildTestFrame(t *testing.T) *features.Frame {
	t.Helper()
	mk := func(year, month, day int, surface models.Surface, p1, p2 int, p1Won bool, p1Rank, p2Rank float64) models.MatchRecord {
		r := models.MatchRecord{
			Year: year, Month: month, Day: day,
			Surface: surface, TourneyLevel: "A", DrawSize: 32,
			Player1Won: p1Won,
		}
		r.Players[0].ID = p1
		r.Players[1].ID = p2
		r.Players[0].Rank = p1Rank
		r.Players[1].Rank = p2Rank
		return r
	}
	records := []models.MatchRecord{
		mk(2020, 1, 1, models.SurfaceClay, 1, 2, true, 0.5, 0.1),
		mk(2020, 2, 1, models.SurfaceHard, 2, 1, true, 0.2, 0.25),
		mk(2020, 3, 1, models.SurfaceHard, 1, 3, true, 0.4, 0.05),
	}
	frame, err := features.NewEngineer(nil).Run(records)
	if err != nil {
		t.Fatalf("engineer failed: %v", err)
	}
	return frame
}

func TestBuildPlayerSnapshots(t *testing.T) {
	tables, err := NewBuilder(nil).Build(buildTestFrame(t))
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	if len(tables.Players) != 3 {
		t.Fatalf("expected 3 players, got %d", len(tables.Players))
	}

	p1, err := tables.Player(1)
	if err != nil {
		t.Fatalf("player 1 missing: %v", err)
	}
	// Player 1 last appeared in the third match, as player_1, with rank 0.4.
	if got := p1.Fields["rank"]; got != 0.4 {
		t.Fatalf("player 1 rank %v, want 0.4", got)
	}
	// Pre-match totals at their last appearance: two prior matches, one won.
	if got := p1.Fields["total_match"]; got != 2 {
		t.Fatalf("player 1 total_match %v, want 2", got)
	}
	if got := p1.Fields["won_match"]; got != 1 {
		t.Fatalf("player 1 won_match %v, want 1", got)
	}

	// Player 2 last appeared as player_1 of the second match.
	p2, err := tables.Player(2)
	if err != nil {
		t.Fatalf("player 2 missing: %v", err)
	}
	if got := p2.Fields["rank"]; got != 0.2 {
		t.Fatalf("player 2 rank %v, want 0.2", got)
	}

	if _, err := tables.Player(99); err != models.ErrUnknownPlayer {
		t.Fatalf("expected ErrUnknownPlayer, got %v", err)
	}
}

func TestBuildSurfaceFields(t *testing.T) {
	tables, err := NewBuilder(nil).Build(buildTestFrame(t))
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	p1, _ := tables.Player(1)

	// Surface elo is tracked per surface from that surface's last appearance.
	if got := p1.Surface[models.SurfaceClay]["surface_elo"]; got != 1500 {
		t.Fatalf("clay surface elo %v, want initial 1500", got)
	}
	if len(p1.Surface[models.SurfaceGrass]) != 0 {
		t.Fatalf("expected no grass fields for player 1, got %d", len(p1.Surface[models.SurfaceGrass]))
	}
}

func TestBuildHeadToHeadTables(t *testing.T) {
	tables, err := NewBuilder(nil).Build(buildTestFrame(t))
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}

	// Players 1 and 2 split their two meetings, in either lookup orientation.
	w1, w2 := tables.H2H.Wins(1, 2)
	if w1 != 1 || w2 != 1 {
		t.Fatalf("h2h 1v2 = %d/%d, want 1/1", w1, w2)
	}
	w2, w1 = tables.H2H.Wins(2, 1)
	if w1 != 1 || w2 != 1 {
		t.Fatalf("h2h 2v1 = %d/%d, want 1/1", w2, w1)
	}

	c1, c2 := tables.SurfaceH2H.WinsOn(1, 2, models.SurfaceClay)
	if c1 != 1 || c2 != 0 {
		t.Fatalf("clay h2h = %d/%d, want 1/0", c1, c2)
	}
	h1, h2 := tables.SurfaceH2H.WinsOn(1, 2, models.SurfaceHard)
	if h1 != 0 || h2 != 1 {
		t.Fatalf("hard h2h = %d/%d, want 0/1", h1, h2)
	}
}

func TestPredictionColumnsFilter(t *testing.T) {
	frame := buildTestFrame(t)
	cols := PredictionColumns(frame.Columns())

	denied := map[string]bool{
		"player_1_id": true, "player_2_id": true, "player_1_won": true,
		"player_1_seed": true, "player_2_ace": true, "player_1_ioc": true,
		"player_2_was_seeded": true,
	}
	set := make(map[string]bool, len(cols))
	for _, c := range cols {
		set[c] = true
		if denied[c] {
			t.Fatalf("denied column %q present in prediction columns", c)
		}
	}

	// Diffs, entry flags and derived windows all survive the filter.
	for _, keep := range []string{
		"seed_diff", "elo_diff", "player_1_entry_Q",
		"player_1_ace_total", "player_1_ace_last_5_surface", "surface_Hard",
	} {
		if !set[keep] {
			t.Fatalf("expected column %q in prediction columns", keep)
		}
	}

	// The filter is order-preserving and deterministic.
	again := PredictionColumns(frame.Columns())
	if len(again) != len(cols) {
		t.Fatalf("filter not deterministic: %d vs %d columns", len(again), len(cols))
	}
	for i := range cols {
		if cols[i] != again[i] {
			t.Fatalf("column order changed at %d: %q vs %q", i, cols[i], again[i])
		}
	}
}

func TestApplyNames(t *testing.T) {
	tables, err := NewBuilder(nil).Build(buildTestFrame(t))
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	tables.ApplyNames(map[int]string{1: "Rafael Nadal"})

	p1, _ := tables.Player(1)
	if p1.Name != "Rafael Nadal" {
		t.Fatalf("expected name applied, got %q", p1.Name)
	}
	p2, _ := tables.Player(2)
	if p2.Name != "" {
		t.Fatalf("expected empty name for unnamed player, got %q", p2.Name)
	}
}
