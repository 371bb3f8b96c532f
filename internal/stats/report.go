package stats

import (
	"fmt"
	"io"
	"sort"

	"github.com/amacleod/ttstat/internal/model"
)

var dayNames = map[int]string{
	1: "mon",
	2: "tue",
	3: "wed",
	4: "thu",
	5: "fri",
	6: "sat",
	7: "sun",
}

// RenderWeekly prints per-week, per-activity counts and times.
func RenderWeekly(w io.Writer, tally model.WeeklyTally) error {
	for _, week := range sortedWeeks(tally) {
		if _, err := fmt.Fprintf(w, "Week %s\n", week); err != nil {
			return err
		}
		rows := make([][]string, 0, len(tally[week]))
		for _, activity := range sortedActivities(tally[week]) {
			t := tally[week][activity]
			rows = append(rows, []string{
				activity,
				fmt.Sprintf("%d", t.Count),
				formatHoursMins(t.Seconds),
			})
		}
		lines := formatTable([]string{"Activity", "Counts", "Time"}, rows, map[int]bool{1: true, 2: true})
		for _, line := range lines {
			if _, err := fmt.Fprintf(w, "  %s\n", line); err != nil {
				return err
			}
		}
	}
	return nil
}

// RenderWeeklySummary prints one totals line per week.
func RenderWeeklySummary(w io.Writer, tally model.WeeklyTally) error {
	for _, week := range sortedWeeks(tally) {
		totalCount := 0
		totalSeconds := 0
		for _, t := range tally[week] {
			totalCount += t.Count
			totalSeconds += t.Seconds
		}
		if _, err := fmt.Fprintf(w, "Week %s\tActivity Counts: %3d\tWorked: %s\n",
			week, totalCount, formatHoursMins(totalSeconds)); err != nil {
			return err
		}
	}
	return nil
}

// RenderTrend prints week-over-week percentage changes per activity.
func RenderTrend(w io.Writer, record model.TrendRecord) error {
	weeks := make([]model.WeekKey, 0, len(record))
	for week := range record {
		weeks = append(weeks, week)
	}
	sortWeekKeys(weeks)
	for _, week := range weeks {
		if _, err := fmt.Fprintf(w, "Week %s\n", week); err != nil {
			return err
		}
		for _, activity := range sortedActivities(record[week]) {
			change := record[week][activity]
			if _, err := fmt.Fprintf(w, "\t%-12s WoW counts: %6.1f%%\tWoW time: %6.1f%%\n",
				activity, change.CountPct, change.TimePct); err != nil {
				return err
			}
		}
	}
	return nil
}

// RenderDaily prints per-day activity percentages, context switches per
// day, and average worked minutes per day.
func RenderDaily(w io.Writer, daily model.DailyStats) error {
	for day := 1; day <= 7; day++ {
		stat := daily[day]
		if stat == nil || stat.ContextSwitches == 0 {
			continue
		}
		if _, err := fmt.Fprintf(w, "%s\n", dayNames[day]); err != nil {
			return err
		}
		rows := make([][]string, 0, len(stat.Activities)+2)
		for _, activity := range sortedActivities(stat.Activities) {
			pct := 0.0
			if stat.Seconds > 0 {
				pct = float64(stat.Activities[activity].Seconds) * 100 / float64(stat.Seconds)
			}
			rows = append(rows, []string{activity, fmt.Sprintf("%.2f %%", pct)})
		}
		switches := 0.0
		worked := 0.0
		if stat.DayCount > 0 {
			switches = float64(stat.ContextSwitches) / float64(stat.DayCount)
			worked = float64(stat.Seconds) / float64(stat.DayCount) / 60
		}
		rows = append(rows,
			[]string{"ctx_sw", fmt.Sprintf("%.2f", switches)},
			[]string{"work_tm", fmt.Sprintf("%.2f mins", worked)},
		)
		for _, line := range formatTable(nil, rows, map[int]bool{1: true}) {
			if _, err := fmt.Fprintf(w, "  %s\n", line); err != nil {
				return err
			}
		}
	}
	return nil
}

// RenderActivity prints weekday and weekend per-activity statistics with
// counts, average minutes, and upper-median minutes.
func RenderActivity(w io.Writer, report model.ActivityReport) error {
	if err := renderActivitySplit(w, "Weekday Stats", report, report.WeekdayDays, weekdayTimings); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, ""); err != nil {
		return err
	}
	return renderActivitySplit(w, "Weekend Stats", report, report.WeekendDays, weekendTimings)
}

func weekdayTimings(s *model.ActivitySummary) ([]int, int) {
	return s.WeekdayTimings, s.WeekdayCount
}

func weekendTimings(s *model.ActivitySummary) ([]int, int) {
	return s.WeekendTimings, s.WeekendCount
}

func renderActivitySplit(w io.Writer, title string, report model.ActivityReport, days int, timings func(*model.ActivitySummary) ([]int, int)) error {
	if _, err := fmt.Fprintf(w, "%s\n", title); err != nil {
		return err
	}
	rows := make([][]string, 0, len(report.Activities))
	totalSeconds := 0
	for _, activity := range sortedActivities(report.Activities) {
		samples, count := timings(report.Activities[activity])
		rows = append(rows, []string{
			activity,
			fmt.Sprintf("%d", count),
			fmt.Sprintf("%d", AverageMinutes(samples)),
			fmt.Sprintf("%d", MedianMinutes(samples)),
		})
		for _, s := range samples {
			totalSeconds += s
		}
	}
	headers := []string{"Activity", "Cnt", "Avg mins", "Median mins"}
	for _, line := range formatTable(headers, rows, map[int]bool{1: true, 2: true, 3: true}) {
		if _, err := fmt.Fprintf(w, "  %s\n", line); err != nil {
			return err
		}
	}
	avgDay := 0
	if days > 0 {
		avgDay = totalSeconds / days / 60
	}
	if _, err := fmt.Fprintf(w, "  Total days: %d\n", days); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "  Average day (mins): %d\n", avgDay)
	return err
}

func formatHoursMins(seconds int) string {
	hrs := seconds / 3600
	mins := seconds % 3600 / 60
	return fmt.Sprintf("%d hrs %2d mins", hrs, mins)
}

func sortWeekKeys(weeks []model.WeekKey) {
	sort.Slice(weeks, func(i, j int) bool { return weeks[i].Before(weeks[j]) })
}
