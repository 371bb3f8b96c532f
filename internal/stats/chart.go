package stats

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/mattn/go-runewidth"
	"golang.org/x/term"

	"github.com/amacleod/ttstat/internal/model"
)

const (
	// PercentageCap bounds displayed week-over-week changes. A cold week
	// against a near-empty average explodes the percentage; the cap is a
	// display concern only, the underlying record is not clamped.
	PercentageCap = 1000.0

	// PercentageCutoff hides activities below this share of total time
	// from the share chart.
	PercentageCutoff = 5.0

	sparkChars         = " ▁▂▃▄▅▆▇█"
	fallbackChartWidth = 80
	minBarWidth        = 10
)

// RenderTrendChart prints the week-over-week change of one activity as a
// sparkline across all recorded weeks, capped at PercentageCap. Weeks
// without a record for the activity plot as 0.
func RenderTrendChart(w io.Writer, record model.TrendRecord, activity string) error {
	weeks := make([]model.WeekKey, 0, len(record))
	for week := range record {
		weeks = append(weeks, week)
	}
	sortWeekKeys(weeks)
	if len(weeks) == 0 {
		_, err := fmt.Fprintln(w, "No trend data yet.")
		return err
	}

	counts := make([]float64, len(weeks))
	times := make([]float64, len(weeks))
	for i, week := range weeks {
		if change, ok := record[week][activity]; ok {
			counts[i] = math.Min(change.CountPct, PercentageCap)
			times[i] = math.Min(change.TimePct, PercentageCap)
		}
	}

	if _, err := fmt.Fprintf(w, "WoW %s change, %s to %s (capped at %.0f%%)\n",
		activity, weeks[0], weeks[len(weeks)-1], PercentageCap); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "  counts %s\n", sparkline(counts)); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "  time   %s\n", sparkline(times))
	return err
}

// RenderShareBars prints one horizontal bar per activity above the
// percentage cutoff, scaled to the terminal width.
func RenderShareBars(w io.Writer, report model.ActivityReport, cutoff float64) error {
	labels := make([]string, 0, len(report.Activities))
	labelWidth := 0
	for _, activity := range sortedActivities(report.Activities) {
		if report.Activities[activity].Percentage <= cutoff {
			continue
		}
		labels = append(labels, activity)
		if lw := runewidth.StringWidth(activity); lw > labelWidth {
			labelWidth = lw
		}
	}
	if len(labels) == 0 {
		_, err := fmt.Fprintf(w, "No activity above %.0f%% of total time.\n", cutoff)
		return err
	}

	barWidth := chartWidth() - labelWidth - 12
	if barWidth < minBarWidth {
		barWidth = minBarWidth
	}
	for _, activity := range labels {
		pct := report.Activities[activity].Percentage
		filled := int(math.Round(pct / 100 * float64(barWidth)))
		if filled < 1 {
			filled = 1
		}
		if filled > barWidth {
			filled = barWidth
		}
		bar := strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)
		pad := strings.Repeat(" ", labelWidth-runewidth.StringWidth(activity))
		if _, err := fmt.Fprintf(w, "%s%s %s %5.1f%%\n", activity, pad, bar, pct); err != nil {
			return err
		}
	}
	return nil
}

// sparkline renders values as a single line of block characters, scaled
// to the min/max of the series.
func sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal, maxVal := values[0], values[0]
	for _, v := range values[1:] {
		minVal = math.Min(minVal, v)
		maxVal = math.Max(maxVal, v)
	}
	chars := []rune(sparkChars)
	if maxVal-minVal < 1e-9 {
		return strings.Repeat(string(chars[len(chars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(chars)-1)))
		if idx < 0 {
			idx = 0
		}
		if idx >= len(chars) {
			idx = len(chars) - 1
		}
		b.WriteRune(chars[idx])
	}
	return b.String()
}

func chartWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return fallbackChartWidth
	}
	return width
}
