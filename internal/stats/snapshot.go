package stats

import "github.com/amacleod/ttstat/internal/model"

// Snapshot contains every aggregate computed from one interval sequence.
type Snapshot struct {
	Weekly  model.WeeklyTally
	Trend   model.TrendRecord
	Daily   model.DailyStats
	Overall model.ActivityReport
}

// BuildSnapshot recomputes all aggregates from the interval sequence.
// There is no incremental state: the same intervals always produce an
// identical snapshot.
func BuildSnapshot(intervals []model.Interval, window int) Snapshot {
	weekly := Weekly(intervals)
	return Snapshot{
		Weekly:  weekly,
		Trend:   Trend(weekly, window),
		Daily:   Daily(intervals),
		Overall: Overall(intervals),
	}
}
