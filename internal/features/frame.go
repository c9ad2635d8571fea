// Package features implements the chronological feature engineering pipeline
// that turns canonical match records into the engineered training frame.
package features

import (
	"fmt"

	"github.com/yourusername/match-point/internal/models"
)

// FrameView is the read-only column access needed by snapshot building and
// serialization. Both the in-memory Frame and a frame loaded back from CSV
// satisfy it.
type FrameView interface {
	Len() int
	Columns() []string
	Column(name string) []float64
}

// Frame is a column-oriented view over a chronologically sorted slice of match
// records. Stages append derived columns; records themselves are immutable.
type Frame struct {
	Records []models.MatchRecord

	order   []string
	columns map[string][]float64
}

// NewFrame materializes the base columns of the canonical records.
func NewFrame(records []models.MatchRecord) *Frame {
	f := &Frame{
		Records: records,
		columns: make(map[string][]float64),
	}
	f.addBaseColumns()
	return f
}

// Len returns the number of rows.
func (f *Frame) Len() int {
	return len(f.Records)
}

// Columns returns the ordered column names.
func (f *Frame) Columns() []string {
	out := make([]string, len(f.order))
	copy(out, f.order)
	return out
}

// Column returns the values of a column, or nil if absent.
func (f *Frame) Column(name string) []float64 {
	return f.columns[name]
}

// HasColumn reports whether a column exists.
func (f *Frame) HasColumn(name string) bool {
	_, ok := f.columns[name]
	return ok
}

// AddColumn appends a new column. Adding a duplicate name or a column of the
// wrong length is a programming error.
func (f *Frame) AddColumn(name string, values []float64) error {
	if _, ok := f.columns[name]; ok {
		return fmt.Errorf("column %s already exists", name)
	}
	if len(values) != len(f.Records) {
		return fmt.Errorf("column %s has %d values, frame has %d rows", name, len(values), len(f.Records))
	}
	f.order = append(f.order, name)
	f.columns[name] = values
	return nil
}

// AddDiff appends column name holding a-b.
func (f *Frame) AddDiff(name, a, b string) error {
	ca, cb := f.columns[a], f.columns[b]
	if ca == nil || cb == nil {
		return fmt.Errorf("diff %s: missing source column %s or %s", name, a, b)
	}
	values := make([]float64, len(ca))
	for i := range ca {
		values[i] = ca[i] - cb[i]
	}
	return f.AddColumn(name, values)
}

func boolToFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

// PlayerCol builds a player-prefixed column name, num is 1 or 2.
func PlayerCol(num int, field string) string {
	return fmt.Sprintf("player_%d_%s", num, field)
}

func (f *Frame) addBaseColumns() {
	n := len(f.Records)
	add := func(name string, get func(r *models.MatchRecord) float64) {
		values := make([]float64, n)
		for i := range f.Records {
			values[i] = get(&f.Records[i])
		}
		f.order = append(f.order, name)
		f.columns[name] = values
	}

	add("player_1_id", func(r *models.MatchRecord) float64 { return float64(r.Players[0].ID) })
	add("player_2_id", func(r *models.MatchRecord) float64 { return float64(r.Players[1].ID) })
	add("player_1_won", func(r *models.MatchRecord) float64 { return boolToFloat(r.Player1Won) })
	add("tourney_year", func(r *models.MatchRecord) float64 { return float64(r.Year) })
	add("tourney_month", func(r *models.MatchRecord) float64 { return float64(r.Month) })
	add("tourney_day", func(r *models.MatchRecord) float64 { return float64(r.Day) })
	add("draw_size", func(r *models.MatchRecord) float64 { return r.DrawSize })

	for idx, s := range models.Surfaces {
		surfaceIdx := models.Surface(idx)
		add("surface_"+s.String(), func(r *models.MatchRecord) float64 {
			return boolToFloat(r.Surface == surfaceIdx)
		})
	}
	for _, level := range models.TourneyLevels {
		level := level
		add("tourney_level_"+level, func(r *models.MatchRecord) float64 {
			return boolToFloat(r.TourneyLevel == level)
		})
	}

	for num := 1; num <= 2; num++ {
		slot := num - 1
		add(PlayerCol(num, "seed"), func(r *models.MatchRecord) float64 { return r.Players[slot].Seed })
		add(PlayerCol(num, "was_seeded"), func(r *models.MatchRecord) float64 { return boolToFloat(r.Players[slot].WasSeeded) })
		for _, entry := range models.EntryCodes {
			entry := entry
			add(PlayerCol(num, "entry_"+entry), func(r *models.MatchRecord) float64 {
				return boolToFloat(r.Players[slot].Entry == entry)
			})
		}
		add(PlayerCol(num, "hand_L"), func(r *models.MatchRecord) float64 { return boolToFloat(r.Players[slot].HandL) })
		add(PlayerCol(num, "hand_R"), func(r *models.MatchRecord) float64 { return boolToFloat(r.Players[slot].HandR) })
		add(PlayerCol(num, "ht"), func(r *models.MatchRecord) float64 { return r.Players[slot].Height })
		add(PlayerCol(num, "ioc"), func(r *models.MatchRecord) float64 { return float64(r.Players[slot].IOC) })
		add(PlayerCol(num, "age"), func(r *models.MatchRecord) float64 { return r.Players[slot].Age })
		add(PlayerCol(num, "rank"), func(r *models.MatchRecord) float64 { return r.Players[slot].Rank })
		add(PlayerCol(num, "rank_points"), func(r *models.MatchRecord) float64 { return r.Players[slot].RankPoints })
		for m, metric := range models.InGameMetrics {
			m := m
			add(PlayerCol(num, metric), func(r *models.MatchRecord) float64 { return r.Players[slot].InGame[m] })
		}
	}
}
