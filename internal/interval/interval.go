// Package interval reconstructs activity intervals from the event stream.
package interval

import (
	"fmt"
	"os"
	"time"

	"github.com/amacleod/ttstat/internal/model"
	"github.com/amacleod/ttstat/internal/timelog"
)

// DefaultThreshold flags intervals long enough to suggest a missed entry.
const DefaultThreshold = 15 * time.Hour

// Options controls interval reconstruction.
type Options struct {
	// FilterOff drops intervals whose starting activity equals OffLabel.
	FilterOff bool
	OffLabel  string
	// Threshold is the advisory long-interval limit. Zero means
	// DefaultThreshold. Intervals above it are reported but kept.
	Threshold time.Duration
	// Warnf receives diagnostics. Nil logs to stderr.
	Warnf func(format string, args ...any)
}

// Reconstruct derives intervals from events sorted ascending by
// timestamp, returned newest-first. Each interval spans two adjacent
// events and carries the starting event's activity with the ending
// event's ISO year, week, and day. The pair ending at the most recent
// event is never emitted, so N events yield at most N-2 intervals.
func Reconstruct(events []model.Event, opts Options) []model.Interval {
	threshold := opts.Threshold
	if threshold == 0 {
		threshold = DefaultThreshold
	}
	warnf := opts.Warnf
	if warnf == nil {
		warnf = logErrf
	}

	var intervals []model.Interval
	for i := len(events) - 2; i >= 1; i-- {
		start := events[i-1]
		end := events[i]
		if opts.FilterOff && start.Activity == opts.OffLabel {
			continue
		}
		span := end.Timestamp.Sub(start.Timestamp)
		seconds := int(span / time.Second)
		if span > threshold {
			hrs := seconds / 3600
			mins := (seconds - hrs*3600) / 60
			warnf("warning: probable missed entry for activity %s starting %s, ending %s: %d hrs, %d mins\n",
				start.Activity,
				start.Timestamp.Format(timelog.TimestampLayout),
				end.Timestamp.Format(timelog.TimestampLayout),
				hrs, mins)
		}
		year, week := end.Timestamp.ISOWeek()
		intervals = append(intervals, model.Interval{
			Activity: start.Activity,
			Year:     year,
			Week:     week,
			Day:      isoWeekday(end.Timestamp),
			Seconds:  seconds,
		})
	}
	return intervals
}

// isoWeekday maps time.Weekday to ISO numbering, 1=Monday .. 7=Sunday.
func isoWeekday(t time.Time) int {
	d := int(t.Weekday())
	if d == 0 {
		return 7
	}
	return d
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
