package features

import (
	"github.com/yourusername/match-point/internal/models"
)

// rec builds a minimal match record for stage tests.
func rec(year, month, day int, surface models.Surface, p1, p2 int, p1Won bool) models.MatchRecord {
	r := models.MatchRecord{
		Year:         year,
		Month:        month,
		Day:          day,
		Surface:      surface,
		TourneyLevel: "A",
		DrawSize:     32,
		Player1Won:   p1Won,
	}
	r.Players[0].ID = p1
	r.Players[1].ID = p2
	r.Players[0].HandR = true
	r.Players[1].HandR = true
	return r
}

// applyStage runs a stage over fresh records and returns the frame.
func applyStage(t interface{ Fatalf(string, ...interface{}) }, stage Stage, records []models.MatchRecord) *Frame {
	f := NewFrame(records)
	if err := stage.Apply(f); err != nil {
		t.Fatalf("%s stage failed: %v", stage.Name(), err)
	}
	return f
}
