package stats

import (
	"sort"

	"github.com/amacleod/ttstat/internal/model"
)

// Daily folds intervals into per-day-of-week aggregates. The day counter
// is cursor-based and order-sensitive: it increments whenever the day of
// week changes between consecutive intervals, approximating the number of
// distinct days touched. Intervals are re-sorted into chronological order
// before the fold regardless of input order.
func Daily(intervals []model.Interval) model.DailyStats {
	stats := model.DailyStats{}
	for day := 1; day <= 7; day++ {
		stats[day] = &model.DayStat{Activities: map[string]model.Tally{}}
	}

	lastDay := 0
	for _, iv := range chronological(intervals) {
		day := stats[iv.Day]
		if iv.Day != lastDay {
			day.DayCount++
			lastDay = iv.Day
		}
		day.ContextSwitches++
		day.Seconds += iv.Seconds
		t := day.Activities[iv.Activity]
		t.Count++
		t.Seconds += iv.Seconds
		day.Activities[iv.Activity] = t
	}
	return stats
}

// chronological returns a copy of the intervals sorted oldest-first by
// calendar position. The reconstructor emits newest-first; the cursor
// folds need the opposite.
func chronological(intervals []model.Interval) []model.Interval {
	ordered := make([]model.Interval, len(intervals))
	copy(ordered, intervals)
	sort.SliceStable(ordered, func(i, j int) bool {
		a, b := ordered[i], ordered[j]
		if a.Year != b.Year {
			return a.Year < b.Year
		}
		if a.Week != b.Week {
			return a.Week < b.Week
		}
		return a.Day < b.Day
	})
	return ordered
}
