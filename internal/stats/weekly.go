// Package stats contains the aggregation engine and reporting.
package stats

import (
	"sort"

	"github.com/amacleod/ttstat/internal/model"
)

// Weekly folds intervals into per-week, per-activity tallies. The fold is
// commutative: input order does not affect the result.
func Weekly(intervals []model.Interval) model.WeeklyTally {
	tally := model.WeeklyTally{}
	for _, iv := range intervals {
		key := model.WeekKey{Year: iv.Year, Week: iv.Week}
		week := tally[key]
		if week == nil {
			week = map[string]model.Tally{}
			tally[key] = week
		}
		t := week[iv.Activity]
		t.Count++
		t.Seconds += iv.Seconds
		week[iv.Activity] = t
	}
	return tally
}

// sortedWeeks returns the tally's week keys in ascending order.
func sortedWeeks(tally model.WeeklyTally) []model.WeekKey {
	weeks := make([]model.WeekKey, 0, len(tally))
	for key := range tally {
		weeks = append(weeks, key)
	}
	sort.Slice(weeks, func(i, j int) bool { return weeks[i].Before(weeks[j]) })
	return weeks
}

// sortedActivities returns the activity labels of a per-activity map in
// ascending order.
func sortedActivities[V any](m map[string]V) []string {
	labels := make([]string, 0, len(m))
	for label := range m {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return labels
}
