package stats

import "github.com/amacleod/ttstat/internal/model"

// Trend computes week-over-week percentage changes for every activity,
// relative to the rolling average over the window preceding weeks. Weeks
// whose ascending index is not past the window are skipped: with a
// history that starts cold there is not enough data to compare against.
//
// The guards are asymmetric on purpose: counts compare only when the
// average count reaches 1, times only when the average exceeds 1 second.
// Below those thresholds the change is reported as 0.
func Trend(tally model.WeeklyTally, window int) model.TrendRecord {
	record := model.TrendRecord{}
	for idx, week := range sortedWeeks(tally) {
		if idx <= window {
			continue
		}
		averages := previousAverages(tally, week, window)
		changes := map[string]model.Change{}
		for activity, current := range tally[week] {
			// No prior data at all means no change to report, not a
			// division by zero.
			changes[activity] = changeAgainst(current, averages[activity])
		}
		record[week] = changes
	}
	return record
}

type rollingAverage struct {
	count   float64
	seconds float64
}

// changeAgainst compares the current tally to a rolling average. The
// zero-valued average (no prior data) yields a zero change.
func changeAgainst(current model.Tally, avg rollingAverage) model.Change {
	var change model.Change
	if avg.count >= 1 {
		change.CountPct = 100 * (float64(current.Count) - avg.count) / avg.count
	}
	if avg.seconds > 1 {
		change.TimePct = 100 * (float64(current.Seconds) - avg.seconds) / avg.seconds
	}
	return change
}

// previousAverages averages per-activity tallies over the window weeks
// before current. A week without data for an activity contributes neither
// to the sum nor to the divisor, so the divisor is the number of weeks
// that actually had data, which may be less than the window.
func previousAverages(tally model.WeeklyTally, current model.WeekKey, window int) map[string]rollingAverage {
	sums := map[string]rollingAverage{}
	activeWeeks := map[string]int{}
	for i := 1; i <= window; i++ {
		weekData, ok := tally[StepBackWeeks(current, i)]
		if !ok {
			continue
		}
		for activity, t := range weekData {
			sum := sums[activity]
			sum.count += float64(t.Count)
			sum.seconds += float64(t.Seconds)
			sums[activity] = sum
			activeWeeks[activity]++
		}
	}
	for activity, sum := range sums {
		n := float64(activeWeeks[activity])
		sums[activity] = rollingAverage{count: sum.count / n, seconds: sum.seconds / n}
	}
	return sums
}

// StepBackWeeks steps n weeks back from key, wrapping into the previous
// year on a fixed 52-week basis. ISO 53-week years are deliberately not
// accounted for; downstream comparisons depend on this arithmetic.
func StepBackWeeks(key model.WeekKey, n int) model.WeekKey {
	week := key.Week - n
	year := key.Year
	if week < 1 {
		week = 52 + week
		year--
	}
	return model.WeekKey{Year: year, Week: week}
}
