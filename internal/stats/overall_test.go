package stats

import (
	"math"
	"reflect"
	"testing"

	"github.com/amacleod/ttstat/internal/model"
)

func TestOverallFold(t *testing.T) {
	intervals := []model.Interval{
		// Week 10: Monday and Saturday; week 11: Monday.
		{Activity: "Coding", Year: 2024, Week: 10, Day: 1, Seconds: 3600},
		{Activity: "Email", Year: 2024, Week: 10, Day: 1, Seconds: 1200},
		{Activity: "Coding", Year: 2024, Week: 10, Day: 6, Seconds: 600},
		{Activity: "Coding", Year: 2024, Week: 11, Day: 1, Seconds: 2400},
	}

	report := Overall(intervals)
	coding := report.Activities["Coding"]
	if coding.Seconds != 6600 {
		t.Fatalf("expected 6600 seconds of Coding, got %d", coding.Seconds)
	}
	if !reflect.DeepEqual(coding.WeekdayTimings, []int{3600, 2400}) {
		t.Fatalf("unexpected weekday timings: %v", coding.WeekdayTimings)
	}
	if !reflect.DeepEqual(coding.WeekendTimings, []int{600}) {
		t.Fatalf("unexpected weekend timings: %v", coding.WeekendTimings)
	}
	if coding.WeekdayCount != 2 || coding.WeekendCount != 1 {
		t.Fatalf("unexpected counts: %+v", coding)
	}
	if report.WeekdayDays != 2 || report.WeekendDays != 1 {
		t.Fatalf("expected 2 weekday and 1 weekend day, got %d/%d", report.WeekdayDays, report.WeekendDays)
	}
	wantPct := 6600.0 * 100 / 7800.0
	if math.Abs(coding.Percentage-wantPct) > 1e-9 {
		t.Fatalf("expected %.2f%%, got %.2f%%", wantPct, coding.Percentage)
	}
	email := report.Activities["Email"]
	if math.Abs(email.Percentage-(1200.0*100/7800.0)) > 1e-9 {
		t.Fatalf("unexpected Email percentage: %f", email.Percentage)
	}
}

func TestOverallEmptyHistory(t *testing.T) {
	report := Overall(nil)
	if len(report.Activities) != 0 || report.WeekdayDays != 0 || report.WeekendDays != 0 {
		t.Fatalf("expected empty report, got %+v", report)
	}
}

func TestAverageMinutes(t *testing.T) {
	if got := AverageMinutes(nil); got != 0 {
		t.Fatalf("expected 0 for empty list, got %d", got)
	}
	if got := AverageMinutes([]int{60, 120, 180}); got != 2 {
		t.Fatalf("expected 2 minutes, got %d", got)
	}
}

func TestMedianIsUpperMedian(t *testing.T) {
	// Even-sized list takes the value at index len/2 of the sorted list.
	if got := MedianSeconds([]int{60, 120, 180, 240}); got != 180 {
		t.Fatalf("expected 180, got %d", got)
	}
	if got := MedianSeconds([]int{240, 60, 180, 120}); got != 180 {
		t.Fatalf("median must sort its input, got %d", got)
	}
	if got := MedianSeconds([]int{60, 120, 180}); got != 120 {
		t.Fatalf("expected 120, got %d", got)
	}
	if got := MedianSeconds(nil); got != 0 {
		t.Fatalf("expected 0 for empty list, got %d", got)
	}
	if got := MedianMinutes([]int{60, 120, 180, 240}); got != 3 {
		t.Fatalf("expected 3 minutes, got %d", got)
	}
}
