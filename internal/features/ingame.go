package features

import (
	"fmt"

	"github.com/yourusername/match-point/internal/models"
)

// InGameStage emits cumulative and rolling in-game serve statistics for every
// metric: per-player totals over all prior matches, rolling last-N sums across
// all surfaces and restricted to the match surface, and the pairwise
// differences of all of them.
type InGameStage struct{}

// Name implements Stage.
func (InGameStage) Name() string { return "in_game" }

// Apply implements Stage. Metrics are processed one at a time so the interim
// window tables stay bounded to a single metric.
func (InGameStage) Apply(f *Frame) error {
	for metric := 0; metric < models.NumInGameMetrics; metric++ {
		if err := processMetric(f, metric); err != nil {
			return err
		}
	}
	return addInGameDiffs(f)
}

// playerWindows holds, per surface and window size, the rolling sums of a
// player's metric. Position i is the sum of the up-to-N values strictly
// preceding the player's i-th match on that surface; position len(seq) covers
// the state after the final match.
type playerWindows [NumSurfaces][len(LastNWindows)][]float64

// cursor tracks how many matches a player has played per surface (0..3) and in
// total (4).
type cursor [NumSurfaces + 1]int

func processMetric(f *Frame, metric int) error {
	name := models.InGameMetrics[metric]
	windows := buildMetricWindows(f, metric)

	n := f.Len()
	totals := [2][]float64{make([]float64, n), make([]float64, n)}
	lastAll := [2][len(LastNWindows)][]float64{}
	lastSurface := [2][len(LastNWindows)][]float64{}
	for slot := 0; slot < 2; slot++ {
		for w := range LastNWindows {
			lastAll[slot][w] = make([]float64, n)
			lastSurface[slot][w] = make([]float64, n)
		}
	}

	cursors := make(map[int]*cursor)
	runningTotal := make(map[int]float64)

	for i := range f.Records {
		r := &f.Records[i]
		surface := r.Surface

		for slot := 0; slot < 2; slot++ {
			id := r.Players[slot].ID
			cur := cursors[id]
			if cur == nil {
				cur = &cursor{}
				cursors[id] = cur
			}
			pw := windows[id]

			totals[slot][i] = runningTotal[id]

			for w := range LastNWindows {
				surfacePos := cur[surface]
				lastSurface[slot][w][i] = windowValue(pw, int(surface), w, surfacePos)

				sum := 0.0
				for s := 0; s < NumSurfaces; s++ {
					sum += windowValue(pw, s, w, cur[s])
				}
				lastAll[slot][w][i] = sum
			}
		}

		// Update cumulative totals and cursors only after both players'
		// features for this row are emitted.
		for slot := 0; slot < 2; slot++ {
			id := r.Players[slot].ID
			runningTotal[id] += r.Players[slot].InGame[metric]
			cur := cursors[id]
			cur[surface]++
			cur[NumSurfaces]++
		}
	}

	for slot := 0; slot < 2; slot++ {
		if err := f.AddColumn(PlayerCol(slot+1, name+"_total"), totals[slot]); err != nil {
			return err
		}
	}
	for w, size := range LastNWindows {
		for slot := 0; slot < 2; slot++ {
			col := PlayerCol(slot+1, fmt.Sprintf("%s_last_%d_surface", name, size))
			if err := f.AddColumn(col, lastSurface[slot][w]); err != nil {
				return err
			}
		}
		for slot := 0; slot < 2; slot++ {
			col := PlayerCol(slot+1, fmt.Sprintf("%s_last_%d", name, size))
			if err := f.AddColumn(col, lastAll[slot][w]); err != nil {
				return err
			}
		}
	}
	return nil
}

// buildMetricWindows runs the full chronological pass collecting every
// player's per-surface metric sequence, then derives the prefix-sum windows.
func buildMetricWindows(f *Frame, metric int) map[int]*playerWindows {
	sequences := make(map[int]*[NumSurfaces][]float64)
	for i := range f.Records {
		r := &f.Records[i]
		for slot := 0; slot < 2; slot++ {
			id := r.Players[slot].ID
			seq := sequences[id]
			if seq == nil {
				seq = &[NumSurfaces][]float64{}
				sequences[id] = seq
			}
			seq[r.Surface] = append(seq[r.Surface], r.Players[slot].InGame[metric])
		}
	}

	windows := make(map[int]*playerWindows, len(sequences))
	for id, seq := range sequences {
		pw := &playerWindows{}
		for s := 0; s < NumSurfaces; s++ {
			data := seq[s]
			for w, size := range LastNWindows {
				sums := make([]float64, len(data)+1)
				for pos := 0; pos <= len(data); pos++ {
					first := pos - size
					if first < 0 {
						first = 0
					}
					sum := 0.0
					for _, v := range data[first:pos] {
						sum += v
					}
					sums[pos] = sum
				}
				pw[s][w] = sums
			}
		}
		windows[id] = pw
	}
	return windows
}

// windowValue reads a window position; an unseen player or empty history
// contributes 0.
func windowValue(pw *playerWindows, surface, window, pos int) float64 {
	if pw == nil {
		return 0
	}
	sums := pw[surface][window]
	if pos < 0 || pos >= len(sums) {
		return 0
	}
	return sums[pos]
}

func addInGameDiffs(f *Frame) error {
	for _, name := range models.InGameMetrics {
		if err := f.AddDiff(name+"_total_diff",
			PlayerCol(1, name+"_total"), PlayerCol(2, name+"_total")); err != nil {
			return err
		}
		for _, size := range LastNWindows {
			surfaceField := fmt.Sprintf("%s_last_%d_surface", name, size)
			if err := f.AddDiff(surfaceField+"_diff",
				PlayerCol(1, surfaceField), PlayerCol(2, surfaceField)); err != nil {
				return err
			}
			allField := fmt.Sprintf("%s_last_%d", name, size)
			if err := f.AddDiff(allField+"_diff",
				PlayerCol(1, allField), PlayerCol(2, allField)); err != nil {
				return err
			}
		}
	}
	return nil
}
