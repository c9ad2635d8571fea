package features

import (
	"fmt"
	"math"
)

const initialElo = 1500.0

// expectedScore is the standard logistic Elo expectation for the first player.
func expectedScore(elo1, elo2 float64) float64 {
	return 1 / (1 + math.Pow(10, (elo2-elo1)/400))
}

// EloStage emits pre-match overall and per-surface Elo ratings, their
// differences, and the Elo progress over the last N matches.
type EloStage struct {
	K float64
}

// NewEloStage creates an Elo stage; k defaults to DefaultEloK when zero.
func NewEloStage(k float64) EloStage {
	if k == 0 {
		k = DefaultEloK
	}
	return EloStage{K: k}
}

// Name implements Stage.
func (EloStage) Name() string { return "elo" }

// Apply implements Stage.
func (s EloStage) Apply(f *Frame) error {
	progress, err := s.addOverallElo(f)
	if err != nil {
		return err
	}
	if err := s.addSurfaceElo(f); err != nil {
		return err
	}
	for w, size := range LastNWindows {
		for slot := 0; slot < 2; slot++ {
			col := PlayerCol(slot+1, fmt.Sprintf("last_%d_elo_progress", size))
			if err := f.AddColumn(col, progress[slot][w]); err != nil {
				return err
			}
		}
	}
	return nil
}

// addOverallElo walks the records once, emitting pre-match ratings and rolling
// Elo progress, then updating the shared rating state. The post-match rating
// history used for progress is appended only after the row's progress values
// are emitted.
func (s EloStage) addOverallElo(f *Frame) ([2][len(LastNWindows)][]float64, error) {
	n := f.Len()
	ratings := make(map[int]float64)
	history := make(map[int][]float64)

	pre := [2][]float64{make([]float64, n), make([]float64, n)}
	progress := [2][len(LastNWindows)][]float64{}
	for slot := 0; slot < 2; slot++ {
		for w := range LastNWindows {
			progress[slot][w] = make([]float64, n)
		}
	}

	ratingOf := func(id int) float64 {
		if r, ok := ratings[id]; ok {
			return r
		}
		return initialElo
	}

	for i := range f.Records {
		r := &f.Records[i]
		ids := [2]int{r.Players[0].ID, r.Players[1].ID}

		for slot := 0; slot < 2; slot++ {
			pre[slot][i] = ratingOf(ids[slot])
			hist := history[ids[slot]]
			for w, size := range LastNWindows {
				progress[slot][w][i] = eloProgress(hist, size)
			}
		}

		score1 := 0.0
		if r.Player1Won {
			score1 = 1.0
		}
		exp1 := expectedScore(pre[0][i], pre[1][i])
		ratings[ids[0]] = pre[0][i] + s.K*(score1-exp1)
		ratings[ids[1]] = pre[1][i] + s.K*((1-score1)-(1-exp1))

		for slot := 0; slot < 2; slot++ {
			history[ids[slot]] = append(history[ids[slot]], ratings[ids[slot]])
		}
	}

	for slot := 0; slot < 2; slot++ {
		if err := f.AddColumn(PlayerCol(slot+1, "elo"), pre[slot]); err != nil {
			return progress, err
		}
	}
	if err := f.AddDiff("elo_diff", "player_1_elo", "player_2_elo"); err != nil {
		return progress, err
	}
	return progress, nil
}

// eloProgress is the ratio of the latest rating to the rating n matches ago,
// falling back to the oldest rating when the history is shorter, 0 when empty.
func eloProgress(history []float64, n int) float64 {
	if len(history) == 0 {
		return 0
	}
	latest := history[len(history)-1]
	if n > len(history) {
		return latest / history[0]
	}
	return latest / history[len(history)-n]
}

func (s EloStage) addSurfaceElo(f *Frame) error {
	n := f.Len()
	ratings := make(map[int]*[NumSurfaces]float64)
	pre := [2][]float64{make([]float64, n), make([]float64, n)}

	ratingsOf := func(id int) *[NumSurfaces]float64 {
		r := ratings[id]
		if r == nil {
			r = &[NumSurfaces]float64{initialElo, initialElo, initialElo, initialElo}
			ratings[id] = r
		}
		return r
	}

	for i := range f.Records {
		r := &f.Records[i]
		surface := r.Surface
		r1 := ratingsOf(r.Players[0].ID)
		r2 := ratingsOf(r.Players[1].ID)

		pre[0][i] = r1[surface]
		pre[1][i] = r2[surface]

		score1 := 0.0
		if r.Player1Won {
			score1 = 1.0
		}
		exp1 := expectedScore(r1[surface], r2[surface])
		r1[surface] += s.K * (score1 - exp1)
		r2[surface] += s.K * ((1 - score1) - (1 - exp1))
	}

	for slot := 0; slot < 2; slot++ {
		if err := f.AddColumn(PlayerCol(slot+1, "surface_elo"), pre[slot]); err != nil {
			return err
		}
	}
	return f.AddDiff("surface_elo_diff", "player_1_surface_elo", "player_2_surface_elo")
}
