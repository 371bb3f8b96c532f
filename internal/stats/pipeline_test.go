package stats

import (
	"reflect"
	"testing"
	"time"

	"github.com/amacleod/ttstat/internal/interval"
	"github.com/amacleod/ttstat/internal/model"
)

// Exercises the full path from an ordered event stream through interval
// reconstruction to every aggregate.
func TestEventStreamToSnapshot(t *testing.T) {
	// Monday 2024-03-04, ISO week 10.
	day1 := time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)
	// Tuesday 2024-03-05.
	day2 := time.Date(2024, 3, 5, 9, 0, 0, 0, time.UTC)
	events := []model.Event{
		{Timestamp: day1, Activity: "Off"},
		{Timestamp: day1.Add(1 * time.Hour), Activity: "Coding"},
		{Timestamp: day1.Add(3 * time.Hour), Activity: "Meetings"},
		{Timestamp: day1.Add(4 * time.Hour), Activity: "Off"},
		{Timestamp: day2, Activity: "Coding"},
		{Timestamp: day2.Add(2 * time.Hour), Activity: "Off"},
	}

	intervals := interval.Reconstruct(events, interval.Options{FilterOff: true, OffLabel: "Off"})
	// Pairs walked: d1 Coding->Meetings, d1 Meetings->Off, d1 Off->d2
	// Coding (filtered), d2 Coding->Off dropped by the boundary rule.
	want := []model.Interval{
		{Activity: "Meetings", Year: 2024, Week: 10, Day: 1, Seconds: 3600},
		{Activity: "Coding", Year: 2024, Week: 10, Day: 1, Seconds: 7200},
	}
	if !reflect.DeepEqual(intervals, want) {
		t.Fatalf("unexpected intervals:\n%+v\nwant\n%+v", intervals, want)
	}

	snap := BuildSnapshot(intervals, 1)
	week10 := snap.Weekly[model.WeekKey{Year: 2024, Week: 10}]
	if got := week10["Coding"]; got.Count != 1 || got.Seconds != 7200 {
		t.Fatalf("unexpected weekly Coding tally: %+v", got)
	}
	if got := week10["Meetings"]; got.Count != 1 || got.Seconds != 3600 {
		t.Fatalf("unexpected weekly Meetings tally: %+v", got)
	}
	// A single week of history is all warm-up for the trend.
	if len(snap.Trend) != 0 {
		t.Fatalf("expected no trend records, got %+v", snap.Trend)
	}
	monday := snap.Daily[1]
	if monday.ContextSwitches != 2 || monday.Seconds != 10800 || monday.DayCount != 1 {
		t.Fatalf("unexpected Monday stats: %+v", monday)
	}
	if snap.Overall.WeekdayDays != 1 || snap.Overall.WeekendDays != 0 {
		t.Fatalf("unexpected day counts: %+v", snap.Overall)
	}
	coding := snap.Overall.Activities["Coding"]
	if coding.Percentage != 7200.0*100/10800.0 {
		t.Fatalf("unexpected Coding share: %f", coding.Percentage)
	}
}
