package clean

import (
	"errors"
	"testing"

	"github.com/yourusername/match-point/internal/models"
)

func f(v float64) *float64 { return &v }

// rawMatch builds a fully populated raw row that survives cleaning untouched.
func rawMatch() models.RawMatch {
	r := models.RawMatch{
		Surface:      "Hard",
		DrawSize:     f(32),
		TourneyLevel: "A",
		TourneyDate:  20200615,

		WinnerID:         101,
		WinnerName:       "Winner",
		WinnerHand:       "R",
		WinnerHeight:     f(185),
		WinnerIOC:        "ESP",
		WinnerAge:        f(24.5),
		WinnerRank:       f(10),
		WinnerRankPoints: f(2500),

		LoserID:         202,
		LoserName:       "Loser",
		LoserHand:       "L",
		LoserHeight:     f(190),
		LoserIOC:        "USA",
		LoserAge:        f(29.1),
		LoserRank:       f(50),
		LoserRankPoints: f(900),
	}
	for m := range r.WinnerInGame {
		r.WinnerInGame[m] = f(float64(m))
		r.LoserInGame[m] = f(float64(m) + 1)
	}
	return r
}

func cleanOne(t *testing.T, variant Variant, raw models.RawMatch) models.CleanMatch {
	t.Helper()
	c := NewCleaner(variant, nil)
	matches, err := c.Clean([]models.RawMatch{raw}, nil)
	if err != nil {
		t.Fatalf("clean failed: %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("expected 1 match, got %d (dropped %d)", len(matches), c.DroppedRows())
	}
	return matches[0]
}

func TestCleanDateSplit(t *testing.T) {
	m := cleanOne(t, VariantRandomForest, rawMatch())
	if m.Year != 2020 || m.Month != 6 || m.Day != 15 {
		t.Fatalf("date split %d-%d-%d, want 2020-6-15", m.Year, m.Month, m.Day)
	}
	if m.Surface != models.SurfaceHard || m.DrawSize != 32 {
		t.Fatalf("surface=%v draw=%v", m.Surface, m.DrawSize)
	}
}

func TestCleanRankReciprocal(t *testing.T) {
	raw := rawMatch()
	raw.WinnerRank = f(200)
	raw.LoserRank = f(3500)
	m := cleanOne(t, VariantRandomForest, raw)

	if m.Winner.Rank != 1.0/200 {
		t.Fatalf("winner rank %v, want 1/200", m.Winner.Rank)
	}
	// Ranks beyond the cap are clipped before inversion.
	if m.Loser.Rank != 1.0/3000 {
		t.Fatalf("loser rank %v, want 1/3000", m.Loser.Rank)
	}
}

func TestCleanSeedSentinels(t *testing.T) {
	tests := []struct {
		variant Variant
		want    float64
	}{
		{VariantRandomForest, 1.0 / 999},
		{VariantBoosting, 1.0 / 64},
	}
	for _, tt := range tests {
		raw := rawMatch()
		raw.WinnerSeed = f(3)
		raw.LoserSeed = nil
		m := cleanOne(t, tt.variant, raw)

		if m.Winner.Seed != 1.0/3 || !m.Winner.WasSeeded {
			t.Fatalf("%s: winner seed %v seeded=%v", tt.variant, m.Winner.Seed, m.Winner.WasSeeded)
		}
		if m.Loser.Seed != tt.want || m.Loser.WasSeeded {
			t.Fatalf("%s: loser seed %v, want %v", tt.variant, m.Loser.Seed, tt.want)
		}
	}
}

func TestCleanHandFlags(t *testing.T) {
	tests := []struct {
		hand  string
		wantL bool
		wantR bool
	}{
		{"R", false, true},
		{"L", true, false},
		{"A", true, true},
		{"U", false, true},
		{"", false, true},
	}
	for _, tt := range tests {
		raw := rawMatch()
		raw.WinnerHand = tt.hand
		m := cleanOne(t, VariantRandomForest, raw)
		if m.Winner.HandL != tt.wantL || m.Winner.HandR != tt.wantR {
			t.Fatalf("hand %q: L=%v R=%v, want L=%v R=%v",
				tt.hand, m.Winner.HandL, m.Winner.HandR, tt.wantL, tt.wantR)
		}
	}
}

func TestCleanIOCJointFactorization(t *testing.T) {
	c := NewCleaner(VariantRandomForest, nil)

	first := rawMatch() // ESP beats USA
	second := rawMatch()
	second.WinnerIOC = "USA" // orientation swapped
	second.LoserIOC = "ESP"
	third := rawMatch()
	third.LoserIOC = "FRA"

	matches, err := c.Clean([]models.RawMatch{first, second, third}, nil)
	if err != nil {
		t.Fatalf("clean failed: %v", err)
	}

	// Codes are assigned first-seen across both orientations.
	if matches[0].Winner.IOC != 0 || matches[0].Loser.IOC != 1 {
		t.Fatalf("first row codes %d/%d, want 0/1", matches[0].Winner.IOC, matches[0].Loser.IOC)
	}
	if matches[1].Winner.IOC != 1 || matches[1].Loser.IOC != 0 {
		t.Fatalf("swapped orientation changed codes: %d/%d", matches[1].Winner.IOC, matches[1].Loser.IOC)
	}
	if matches[2].Loser.IOC != 2 {
		t.Fatalf("new country code %d, want 2", matches[2].Loser.IOC)
	}

	if got := c.IOC().Lookup("FRA"); got != 2 {
		t.Fatalf("lookup FRA = %d, want 2", got)
	}
	if got := c.IOC().Lookup("XYZ"); got != UnknownIOC {
		t.Fatalf("lookup unseen = %d, want %d", got, UnknownIOC)
	}
}

func TestCleanDropsIncompleteRows(t *testing.T) {
	complete := rawMatch()
	noRank := rawMatch()
	noRank.LoserRank = nil
	noServe := rawMatch()
	noServe.WinnerInGame[0] = nil
	noDraw := rawMatch()
	noDraw.DrawSize = nil

	c := NewCleaner(VariantRandomForest, nil)
	matches, err := c.Clean([]models.RawMatch{complete, noRank, noServe, noDraw}, nil)
	if err != nil {
		t.Fatalf("clean failed: %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("expected 1 surviving match, got %d", len(matches))
	}
	if c.DroppedRows() != 3 {
		t.Fatalf("expected 3 dropped rows, got %d", c.DroppedRows())
	}
}

func TestCleanMissingSurfaceFatal(t *testing.T) {
	raw := rawMatch()
	raw.Surface = ""
	_, err := NewCleaner(VariantRandomForest, nil).Clean([]models.RawMatch{raw}, nil)
	if !errors.Is(err, models.ErrMissingSurface) {
		t.Fatalf("expected ErrMissingSurface, got %v", err)
	}
}

func TestParseVariant(t *testing.T) {
	tests := []struct {
		name string
		want Variant
		ok   bool
	}{
		{"boosting", VariantBoosting, true},
		{"random_forest", VariantRandomForest, true},
		{"RandomForest", VariantRandomForest, true},
		{"linear", 0, false},
	}
	for _, tt := range tests {
		got, err := ParseVariant(tt.name)
		if tt.ok != (err == nil) || (tt.ok && got != tt.want) {
			t.Fatalf("ParseVariant(%q) = %v, %v", tt.name, got, err)
		}
	}
}
