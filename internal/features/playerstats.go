package features

// PlayerStatsStage emits the row-local ranking differences.
type PlayerStatsStage struct{}

// Name implements Stage.
func (PlayerStatsStage) Name() string { return "player_stats" }

// Apply adds rank_diff, rank_points_diff and seed_diff.
func (PlayerStatsStage) Apply(f *Frame) error {
	diffs := [][3]string{
		{"rank_diff", "player_1_rank", "player_2_rank"},
		{"rank_points_diff", "player_1_rank_points", "player_2_rank_points"},
		{"seed_diff", "player_1_seed", "player_2_seed"},
	}
	for _, d := range diffs {
		if err := f.AddDiff(d[0], d[1], d[2]); err != nil {
			return err
		}
	}
	return nil
}

// PhysicalStage emits the row-local physical differences.
type PhysicalStage struct{}

// Name implements Stage.
func (PhysicalStage) Name() string { return "physical" }

// Apply adds height_diff and age_diff.
func (PhysicalStage) Apply(f *Frame) error {
	if err := f.AddDiff("height_diff", "player_1_ht", "player_2_ht"); err != nil {
		return err
	}
	return f.AddDiff("age_diff", "player_1_age", "player_2_age")
}
