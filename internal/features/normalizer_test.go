package features

import (
	"math/rand"
	"testing"

	"github.com/yourusername/match-point/internal/models"
)

func cleanMatch(winnerID, loserID int) models.CleanMatch {
	m := models.CleanMatch{
		Year:         2020,
		Month:        6,
		Day:          15,
		Surface:      models.SurfaceClay,
		TourneyLevel: "M",
		DrawSize:     64,
	}
	m.Winner.ID = winnerID
	m.Loser.ID = loserID
	return m
}

func TestNormalizeLabelOrientation(t *testing.T) {
	matches := make([]models.CleanMatch, 50)
	for i := range matches {
		matches[i] = cleanMatch(100, 200)
	}
	records := NewNormalizer(rand.NewSource(1)).Normalize(matches)

	sawTrue, sawFalse := false, false
	for i, r := range records {
		if r.Player1Won {
			sawTrue = true
			if r.Players[0].ID != 100 || r.Players[1].ID != 200 {
				t.Fatalf("row %d: winner should be player_1 when label is true", i)
			}
		} else {
			sawFalse = true
			if r.Players[0].ID != 200 || r.Players[1].ID != 100 {
				t.Fatalf("row %d: winner should be player_2 when label is false", i)
			}
		}
		if r.Surface != models.SurfaceClay || r.TourneyLevel != "M" || r.DrawSize != 64 {
			t.Fatalf("row %d: match attributes not carried over", i)
		}
	}
	if !sawTrue || !sawFalse {
		t.Fatalf("expected both label orientations over 50 draws")
	}
}

func TestNormalizeDeterministic(t *testing.T) {
	matches := make([]models.CleanMatch, 20)
	for i := range matches {
		matches[i] = cleanMatch(i, i+1000)
	}

	a := NewNormalizer(rand.NewSource(42)).Normalize(matches)
	b := NewNormalizer(rand.NewSource(42)).Normalize(matches)
	for i := range a {
		if a[i].Player1Won != b[i].Player1Won {
			t.Fatalf("row %d: labels differ across identically seeded runs", i)
		}
	}
}

func TestSortChronologicalStable(t *testing.T) {
	records := []models.MatchRecord{
		rec(2021, 3, 1, models.SurfaceHard, 1, 2, true),
		rec(2020, 5, 9, models.SurfaceHard, 3, 4, true),
		rec(2020, 5, 9, models.SurfaceHard, 5, 6, true),
		rec(2020, 2, 1, models.SurfaceHard, 7, 8, true),
	}
	SortChronological(records)

	if records[0].Players[0].ID != 7 {
		t.Fatalf("expected earliest match first, got player %d", records[0].Players[0].ID)
	}
	// Same-day rows keep their input order.
	if records[1].Players[0].ID != 3 || records[2].Players[0].ID != 5 {
		t.Fatalf("expected stable order for same-day matches, got %d then %d",
			records[1].Players[0].ID, records[2].Players[0].ID)
	}
	if records[3].Year != 2021 {
		t.Fatalf("expected latest match last, got year %d", records[3].Year)
	}
}
