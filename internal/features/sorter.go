package features

import (
	"sort"

	"github.com/yourusername/match-point/internal/models"
)

// SortChronological orders records by (year, month, day). The sort is stable:
// same-day matches keep their original input order, which every downstream
// accumulator relies on.
func SortChronological(records []models.MatchRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		a, b := &records[i], &records[j]
		if a.Year != b.Year {
			return a.Year < b.Year
		}
		if a.Month != b.Month {
			return a.Month < b.Month
		}
		return a.Day < b.Day
	})
}
