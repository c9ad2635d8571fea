package features

import (
	"math"
	"testing"

	"github.com/yourusername/match-point/internal/models"
)

func TestEloInitialRatings(t *testing.T) {
	records := []models.MatchRecord{
		rec(2020, 1, 1, models.SurfaceHard, 1, 2, true),
	}
	f := applyStage(t, NewEloStage(0), records)

	if got := f.Column("player_1_elo")[0]; got != 1500 {
		t.Fatalf("expected initial elo 1500, got %v", got)
	}
	if got := f.Column("player_2_elo")[0]; got != 1500 {
		t.Fatalf("expected initial elo 1500, got %v", got)
	}
	if got := f.Column("elo_diff")[0]; got != 0 {
		t.Fatalf("expected elo diff 0, got %v", got)
	}
}

func TestEloUpdateAfterOneMatch(t *testing.T) {
	records := []models.MatchRecord{
		rec(2020, 1, 1, models.SurfaceHard, 1, 2, true),
		rec(2020, 1, 2, models.SurfaceHard, 1, 2, false),
	}
	f := applyStage(t, NewEloStage(24), records)

	// Equal ratings give an expected score of 0.5, so the winner gains K/2.
	if got := f.Column("player_1_elo")[1]; got != 1512 {
		t.Fatalf("expected winner elo 1512, got %v", got)
	}
	if got := f.Column("player_2_elo")[1]; got != 1488 {
		t.Fatalf("expected loser elo 1488, got %v", got)
	}
}

func TestEloConservation(t *testing.T) {
	records := []models.MatchRecord{
		rec(2020, 1, 1, models.SurfaceClay, 1, 2, true),
		rec(2020, 1, 2, models.SurfaceClay, 1, 2, true),
		rec(2020, 1, 3, models.SurfaceClay, 2, 1, true),
		rec(2020, 1, 4, models.SurfaceClay, 1, 2, false),
	}
	f := applyStage(t, NewEloStage(24), records)

	p1 := f.Column("player_1_elo")
	p2 := f.Column("player_2_elo")
	for i := range records {
		sum := p1[i] + p2[i]
		if math.Abs(sum-3000) > 1e-9 {
			t.Fatalf("row %d: elo sum drifted to %v", i, sum)
		}
	}
}

func TestSurfaceEloIndependent(t *testing.T) {
	records := []models.MatchRecord{
		rec(2020, 1, 1, models.SurfaceClay, 1, 2, true),
		rec(2020, 1, 2, models.SurfaceGrass, 1, 2, true),
	}
	f := applyStage(t, NewEloStage(24), records)

	// The grass match must not see the clay rating movement.
	if got := f.Column("player_1_surface_elo")[1]; got != 1500 {
		t.Fatalf("expected fresh grass elo 1500, got %v", got)
	}
	if got := f.Column("player_1_elo")[1]; got != 1512 {
		t.Fatalf("expected overall elo 1512, got %v", got)
	}
}

func TestEloProgress(t *testing.T) {
	records := []models.MatchRecord{
		rec(2020, 1, 1, models.SurfaceHard, 1, 2, true),
		rec(2020, 1, 2, models.SurfaceHard, 1, 2, true),
		rec(2020, 1, 3, models.SurfaceHard, 1, 2, true),
	}
	f := applyStage(t, NewEloStage(24), records)

	progress := f.Column("player_1_last_5_elo_progress")
	if progress[0] != 0 {
		t.Fatalf("expected empty history progress 0, got %v", progress[0])
	}
	// One rating in history: latest/oldest is exactly 1.
	if progress[1] != 1 {
		t.Fatalf("expected single-entry progress 1, got %v", progress[1])
	}
	// Two wins in history, ratings rising, so progress exceeds 1.
	if progress[2] <= 1 {
		t.Fatalf("expected rising progress > 1, got %v", progress[2])
	}
}

func TestEloProgressWindow(t *testing.T) {
	history := []float64{1500, 1512, 1524, 1536}

	if got := eloProgress(nil, 5); got != 0 {
		t.Fatalf("expected 0 for empty history, got %v", got)
	}
	if got := eloProgress(history, 10); got != 1536.0/1500.0 {
		t.Fatalf("expected fallback to oldest, got %v", got)
	}
	if got := eloProgress(history, 2); got != 1536.0/1524.0 {
		t.Fatalf("expected ratio to rating two matches ago, got %v", got)
	}
}

func TestExpectedScore(t *testing.T) {
	if got := expectedScore(1500, 1500); got != 0.5 {
		t.Fatalf("expected 0.5 for equal ratings, got %v", got)
	}
	stronger := expectedScore(1700, 1500)
	if stronger <= 0.5 || stronger >= 1 {
		t.Fatalf("expected score in (0.5, 1), got %v", stronger)
	}
	if math.Abs(stronger+expectedScore(1500, 1700)-1) > 1e-12 {
		t.Fatalf("expectations must sum to 1")
	}
}
