package stats

import (
	"bytes"
	"reflect"
	"strings"
	"testing"

	"github.com/amacleod/ttstat/internal/model"
)

func TestRenderWeekly(t *testing.T) {
	tally := model.WeeklyTally{
		week(2024, 5): {
			"Coding": {Count: 3, Seconds: 2*3600 + 15*60},
			"Email":  {Count: 1, Seconds: 600},
		},
		week(2024, 4): {
			"Coding": {Count: 1, Seconds: 3600},
		},
	}

	var buf bytes.Buffer
	if err := RenderWeekly(&buf, tally); err != nil {
		t.Fatalf("render weekly: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "Week 2024-04") || !strings.Contains(out, "Week 2024-05") {
		t.Fatalf("missing week headers: %q", out)
	}
	if strings.Index(out, "2024-04") > strings.Index(out, "2024-05") {
		t.Fatalf("weeks out of order: %q", out)
	}
	if !strings.Contains(out, "2 hrs 15 mins") {
		t.Fatalf("missing formatted time: %q", out)
	}
}

func TestRenderWeeklySummary(t *testing.T) {
	tally := model.WeeklyTally{
		week(2024, 5): {
			"Coding": {Count: 3, Seconds: 3600},
			"Email":  {Count: 2, Seconds: 1800},
		},
	}

	var buf bytes.Buffer
	if err := RenderWeeklySummary(&buf, tally); err != nil {
		t.Fatalf("render summary: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "Week 2024-05") {
		t.Fatalf("missing week: %q", out)
	}
	if !strings.Contains(out, "5") || !strings.Contains(out, "1 hrs 30 mins") {
		t.Fatalf("missing totals: %q", out)
	}
}

func TestRenderTrend(t *testing.T) {
	record := model.TrendRecord{
		week(2024, 5): {
			"Coding": {CountPct: 50, TimePct: -12.5},
		},
	}

	var buf bytes.Buffer
	if err := RenderTrend(&buf, record); err != nil {
		t.Fatalf("render trend: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "Week 2024-05") {
		t.Fatalf("missing week: %q", out)
	}
	if !strings.Contains(out, "50.0%") || !strings.Contains(out, "-12.5%") {
		t.Fatalf("missing percentages: %q", out)
	}
}

func TestRenderDailySkipsEmptyDaysAndGuardsZeroDayCount(t *testing.T) {
	daily := model.DailyStats{}
	for day := 1; day <= 7; day++ {
		daily[day] = &model.DayStat{Activities: map[string]model.Tally{}}
	}
	daily[1].ContextSwitches = 2
	daily[1].Seconds = 3600
	daily[1].DayCount = 1
	daily[1].Activities["Coding"] = model.Tally{Count: 2, Seconds: 3600}
	// Saturday has intervals but a zero day count; percentages and
	// averages must not divide by zero.
	daily[6].ContextSwitches = 1
	daily[6].Activities["Email"] = model.Tally{Count: 1, Seconds: 0}

	var buf bytes.Buffer
	if err := RenderDaily(&buf, daily); err != nil {
		t.Fatalf("render daily: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "mon") || !strings.Contains(out, "sat") {
		t.Fatalf("missing days: %q", out)
	}
	if strings.Contains(out, "tue") {
		t.Fatalf("empty day should be skipped: %q", out)
	}
	if !strings.Contains(out, "100.00 %") {
		t.Fatalf("missing percentage: %q", out)
	}
}

func TestRenderActivity(t *testing.T) {
	report := model.ActivityReport{
		Activities: map[string]*model.ActivitySummary{
			"Coding": {
				Seconds:        4200,
				WeekdayTimings: []int{600, 1200, 1800},
				WeekdayCount:   3,
				WeekendTimings: []int{600},
				WeekendCount:   1,
				Percentage:     100,
			},
		},
		WeekdayDays: 2,
		WeekendDays: 1,
	}

	var buf bytes.Buffer
	if err := RenderActivity(&buf, report); err != nil {
		t.Fatalf("render activity: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "Weekday Stats") || !strings.Contains(out, "Weekend Stats") {
		t.Fatalf("missing sections: %q", out)
	}
	// Weekday average 1200s = 20 mins, median 1200s = 20 mins.
	if !strings.Contains(out, "20") {
		t.Fatalf("missing weekday minutes: %q", out)
	}
	if !strings.Contains(out, "Total days: 2") || !strings.Contains(out, "Total days: 1") {
		t.Fatalf("missing day totals: %q", out)
	}
	// Average weekday: 3600s over 2 days = 30 mins.
	if !strings.Contains(out, "Average day (mins): 30") {
		t.Fatalf("missing average day: %q", out)
	}
}

func TestFormatTableAlignment(t *testing.T) {
	lines := formatTable(
		[]string{"Activity", "Cnt"},
		[][]string{{"Coding", "12"}, {"Email", "3"}},
		map[int]bool{1: true},
	)
	want := []string{
		"Activity  Cnt",
		"Coding     12",
		"Email       3",
	}
	if !reflect.DeepEqual(lines, want) {
		t.Fatalf("unexpected table: %#v", lines)
	}
}

func TestBuildSnapshotIsIdempotent(t *testing.T) {
	intervals := []model.Interval{
		{Activity: "Coding", Year: 2024, Week: 10, Day: 1, Seconds: 3600},
		{Activity: "Email", Year: 2024, Week: 11, Day: 2, Seconds: 600},
		{Activity: "Coding", Year: 2024, Week: 12, Day: 3, Seconds: 1800},
		{Activity: "Coding", Year: 2024, Week: 13, Day: 4, Seconds: 2400},
	}

	first := BuildSnapshot(intervals, 1)
	second := BuildSnapshot(intervals, 1)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("snapshots differ across recomputation:\n%+v\n%+v", first, second)
	}
}
