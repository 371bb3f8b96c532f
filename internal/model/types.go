// Package model defines shared data structures.
package model

import (
	"fmt"
	"time"
)

// Event is a single parsed log record, already converted to local time.
type Event struct {
	Timestamp time.Time
	Activity  string
}

// WeekKey identifies an ISO year/week bucket.
type WeekKey struct {
	Year int
	Week int
}

// String renders the zero-padded sortable form, e.g. "2024-05".
// Lexicographic order of these strings matches chronological order.
func (k WeekKey) String() string {
	return fmt.Sprintf("%d-%02d", k.Year, k.Week)
}

// Before reports whether k precedes other chronologically.
func (k WeekKey) Before(other WeekKey) bool {
	if k.Year != other.Year {
		return k.Year < other.Year
	}
	return k.Week < other.Week
}

// Interval is the span between two adjacent events, attributed to the
// starting event's activity. Calendar context comes from the ending event.
type Interval struct {
	Activity string
	Year     int
	Week     int
	Day      int // 1=Monday .. 7=Sunday
	Seconds  int
}

// Tally accumulates occurrences and elapsed time for one activity.
type Tally struct {
	Count   int
	Seconds int
}

// WeeklyTally maps week buckets to per-activity tallies.
type WeeklyTally map[WeekKey]map[string]Tally

// Change holds week-over-week percentage changes for one activity,
// relative to the rolling average of the preceding weeks.
type Change struct {
	CountPct float64
	TimePct  float64
}

// TrendRecord maps week buckets to per-activity changes.
type TrendRecord map[WeekKey]map[string]Change

// DayStat aggregates intervals ending on one day of the week.
type DayStat struct {
	ContextSwitches int
	DayCount        int
	Seconds         int
	Activities      map[string]Tally
}

// DailyStats maps day of week (1=Monday .. 7=Sunday) to aggregates.
type DailyStats map[int]*DayStat

// ActivitySummary aggregates one activity over the full history.
// Timings hold individual interval durations in seconds for later
// average/median derivation.
type ActivitySummary struct {
	Seconds        int
	WeekdayTimings []int
	WeekdayCount   int
	WeekendTimings []int
	WeekendCount   int
	Percentage     float64
}

// ActivityReport is the whole-history aggregate. WeekdayDays and
// WeekendDays count distinct days touched, not intervals.
type ActivityReport struct {
	Activities  map[string]*ActivitySummary
	WeekdayDays int
	WeekendDays int
}

// AnalysisConfig carries resolved analysis settings. Built once at
// startup and never mutated afterwards.
type AnalysisConfig struct {
	LogDir    string
	OffLabel  string
	FilterOff bool
	Window    int
	Cutoff    float64
}
