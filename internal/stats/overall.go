package stats

import (
	"sort"

	"github.com/amacleod/ttstat/internal/model"
)

// Overall folds intervals into whole-history per-activity summaries,
// split into weekday (Monday-Friday) and weekend occurrences. Individual
// interval durations are kept as samples for average/median derivation.
// WeekdayDays and WeekendDays use the same distinct-day cursor rule as
// the daily fold, tracked on (day, week) and shared across the split.
func Overall(intervals []model.Interval) model.ActivityReport {
	report := model.ActivityReport{Activities: map[string]*model.ActivitySummary{}}
	total := 0
	lastDay, lastWeek := -1, -1
	for _, iv := range chronological(intervals) {
		total += iv.Seconds
		summary := report.Activities[iv.Activity]
		if summary == nil {
			summary = &model.ActivitySummary{}
			report.Activities[iv.Activity] = summary
		}
		summary.Seconds += iv.Seconds
		if iv.Day >= 1 && iv.Day <= 5 {
			summary.WeekdayTimings = append(summary.WeekdayTimings, iv.Seconds)
			summary.WeekdayCount++
			if iv.Day != lastDay || iv.Week != lastWeek {
				lastDay, lastWeek = iv.Day, iv.Week
				report.WeekdayDays++
			}
		} else {
			summary.WeekendTimings = append(summary.WeekendTimings, iv.Seconds)
			summary.WeekendCount++
			if iv.Day != lastDay || iv.Week != lastWeek {
				lastDay, lastWeek = iv.Day, iv.Week
				report.WeekendDays++
			}
		}
	}

	if total > 0 {
		for _, summary := range report.Activities {
			summary.Percentage = float64(summary.Seconds) * 100 / float64(total)
		}
	}
	return report
}

// AverageMinutes returns the mean of the duration samples in whole
// minutes, or 0 for an empty list.
func AverageMinutes(timings []int) int {
	if len(timings) == 0 {
		return 0
	}
	sum := 0
	for _, t := range timings {
		sum += t
	}
	return sum / len(timings) / 60
}

// MedianMinutes returns the upper median of the duration samples in
// whole minutes, or 0 for an empty list.
func MedianMinutes(timings []int) int {
	return MedianSeconds(timings) / 60
}

// MedianSeconds returns the sample at index len/2 of the ascending-sorted
// list. For even-sized lists this is the upper of the two middle values,
// not an interpolation.
func MedianSeconds(timings []int) int {
	if len(timings) == 0 {
		return 0
	}
	sorted := make([]int, len(timings))
	copy(sorted, timings)
	sort.Ints(sorted)
	return sorted[len(sorted)/2]
}
