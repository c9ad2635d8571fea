package features

import (
	"fmt"
)

// matchCounter is the per-player running state
// [won_total, played_total, last_5, last_10, last_20, last_50].
type matchCounter struct {
	won   int
	total int
	lastN [len(LastNWindows)]int
}

// update applies the outcome of one match: the winner's rolling counters
// saturate at N, the loser's floor at 0.
func (c *matchCounter) update(won bool) {
	if won {
		c.won++
		for i, size := range LastNWindows {
			if c.lastN[i] < size {
				c.lastN[i]++
			}
		}
	} else {
		for i := range LastNWindows {
			if c.lastN[i] > 0 {
				c.lastN[i]--
			}
		}
	}
	c.total++
}

// MatchDataStage emits the pre-match win totals, match totals and rolling
// last-N win counters for both players.
type MatchDataStage struct{}

// Name implements Stage.
func (MatchDataStage) Name() string { return "match_data" }

// Apply implements Stage.
func (MatchDataStage) Apply(f *Frame) error {
	counters := make(map[int]*matchCounter)
	n := f.Len()

	won := [2][]float64{make([]float64, n), make([]float64, n)}
	total := [2][]float64{make([]float64, n), make([]float64, n)}
	lastN := [2][len(LastNWindows)][]float64{}
	for slot := 0; slot < 2; slot++ {
		for w := range LastNWindows {
			lastN[slot][w] = make([]float64, n)
		}
	}

	for i := range f.Records {
		r := &f.Records[i]
		for slot := 0; slot < 2; slot++ {
			c := counters[r.Players[slot].ID]
			if c == nil {
				c = &matchCounter{}
				counters[r.Players[slot].ID] = c
			}
			won[slot][i] = float64(c.won)
			total[slot][i] = float64(c.total)
			for w := range LastNWindows {
				lastN[slot][w][i] = float64(c.lastN[w])
			}
		}

		counters[r.Players[0].ID].update(r.Player1Won)
		counters[r.Players[1].ID].update(!r.Player1Won)
	}

	for slot := 0; slot < 2; slot++ {
		if err := f.AddColumn(PlayerCol(slot+1, "won_match"), won[slot]); err != nil {
			return err
		}
	}
	for slot := 0; slot < 2; slot++ {
		if err := f.AddColumn(PlayerCol(slot+1, "total_match"), total[slot]); err != nil {
			return err
		}
	}
	for w, size := range LastNWindows {
		for slot := 0; slot < 2; slot++ {
			col := PlayerCol(slot+1, fmt.Sprintf("last_%d_match_won", size))
			if err := f.AddColumn(col, lastN[slot][w]); err != nil {
				return err
			}
		}
	}
	return nil
}

// MatchDiffStage emits the pairwise differences of the match counters.
type MatchDiffStage struct{}

// Name implements Stage.
func (MatchDiffStage) Name() string { return "match_diff" }

// Apply implements Stage.
func (MatchDiffStage) Apply(f *Frame) error {
	if err := f.AddDiff("total_match_diff", "player_1_total_match", "player_2_total_match"); err != nil {
		return err
	}
	if err := f.AddDiff("won_match_diff", "player_1_won_match", "player_2_won_match"); err != nil {
		return err
	}
	for _, size := range LastNWindows {
		field := fmt.Sprintf("last_%d_match_won", size)
		if err := f.AddDiff(fmt.Sprintf("last_%d_match_diff", size),
			PlayerCol(1, field), PlayerCol(2, field)); err != nil {
			return err
		}
	}
	return nil
}

// WinRatioStage derives overall and rolling win ratios from the match counter
// columns, plus their differences.
type WinRatioStage struct{}

// Name implements Stage.
func (WinRatioStage) Name() string { return "win_ratio" }

// Apply implements Stage.
func (WinRatioStage) Apply(f *Frame) error {
	n := f.Len()
	for slot := 1; slot <= 2; slot++ {
		wonCol := f.Column(PlayerCol(slot, "won_match"))
		totalCol := f.Column(PlayerCol(slot, "total_match"))
		ratio := make([]float64, n)
		for i := 0; i < n; i++ {
			if totalCol[i] != 0 {
				ratio[i] = wonCol[i] / totalCol[i]
			}
		}
		if err := f.AddColumn(PlayerCol(slot, "win_ratio"), ratio); err != nil {
			return err
		}
	}

	for _, size := range LastNWindows {
		for slot := 1; slot <= 2; slot++ {
			lastWon := f.Column(PlayerCol(slot, fmt.Sprintf("last_%d_match_won", size)))
			ratio := make([]float64, n)
			for i := 0; i < n; i++ {
				ratio[i] = lastWon[i] / float64(size)
			}
			if err := f.AddColumn(PlayerCol(slot, fmt.Sprintf("last_%d_win_ratio", size)), ratio); err != nil {
				return err
			}
		}
	}

	if err := f.AddDiff("win_ratio_diff", "player_1_win_ratio", "player_2_win_ratio"); err != nil {
		return err
	}
	for _, size := range LastNWindows {
		field := fmt.Sprintf("last_%d_win_ratio", size)
		if err := f.AddDiff(fmt.Sprintf("last_%d_win_ratio_diff", size),
			PlayerCol(1, field), PlayerCol(2, field)); err != nil {
			return err
		}
	}
	return nil
}
