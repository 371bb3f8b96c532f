package stats

import (
	"math/rand"
	"reflect"
	"testing"

	"github.com/amacleod/ttstat/internal/model"
)

func TestWeeklyFold(t *testing.T) {
	intervals := []model.Interval{
		{Activity: "Coding", Year: 2024, Week: 10, Day: 1, Seconds: 3600},
		{Activity: "Coding", Year: 2024, Week: 10, Day: 2, Seconds: 1800},
		{Activity: "Email", Year: 2024, Week: 10, Day: 2, Seconds: 600},
		{Activity: "Coding", Year: 2024, Week: 11, Day: 1, Seconds: 900},
	}

	tally := Weekly(intervals)
	if len(tally) != 2 {
		t.Fatalf("expected 2 weeks, got %d", len(tally))
	}
	week10 := tally[model.WeekKey{Year: 2024, Week: 10}]
	if got := week10["Coding"]; got.Count != 2 || got.Seconds != 5400 {
		t.Fatalf("unexpected Coding tally: %+v", got)
	}
	if got := week10["Email"]; got.Count != 1 || got.Seconds != 600 {
		t.Fatalf("unexpected Email tally: %+v", got)
	}
	week11 := tally[model.WeekKey{Year: 2024, Week: 11}]
	if got := week11["Coding"]; got.Count != 1 || got.Seconds != 900 {
		t.Fatalf("unexpected week 11 tally: %+v", got)
	}
}

func TestWeeklyFoldIsOrderIndependent(t *testing.T) {
	intervals := []model.Interval{
		{Activity: "Coding", Year: 2024, Week: 9, Day: 5, Seconds: 1200},
		{Activity: "Email", Year: 2024, Week: 10, Day: 1, Seconds: 300},
		{Activity: "Coding", Year: 2024, Week: 10, Day: 1, Seconds: 3600},
		{Activity: "Meetings", Year: 2024, Week: 10, Day: 3, Seconds: 2700},
		{Activity: "Coding", Year: 2024, Week: 11, Day: 2, Seconds: 1800},
	}
	want := Weekly(intervals)

	shuffled := make([]model.Interval, len(intervals))
	copy(shuffled, intervals)
	rng := rand.New(rand.NewSource(42))
	for trial := 0; trial < 10; trial++ {
		rng.Shuffle(len(shuffled), func(i, j int) {
			shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
		})
		if got := Weekly(shuffled); !reflect.DeepEqual(got, want) {
			t.Fatalf("tally depends on input order: %+v vs %+v", got, want)
		}
	}
}

func TestWeekKeyStringZeroPads(t *testing.T) {
	key := model.WeekKey{Year: 2024, Week: 5}
	if got := key.String(); got != "2024-05" {
		t.Fatalf("expected 2024-05, got %q", got)
	}
	if got := (model.WeekKey{Year: 2024, Week: 52}).String(); got != "2024-52" {
		t.Fatalf("expected 2024-52, got %q", got)
	}
}

func TestWeekKeyOrderingMatchesStringOrdering(t *testing.T) {
	keys := []model.WeekKey{
		{Year: 2023, Week: 52},
		{Year: 2024, Week: 5},
		{Year: 2024, Week: 10},
		{Year: 2024, Week: 52},
		{Year: 2025, Week: 1},
	}
	for i := 0; i < len(keys)-1; i++ {
		a, b := keys[i], keys[i+1]
		if !a.Before(b) {
			t.Fatalf("expected %v before %v", a, b)
		}
		if a.String() >= b.String() {
			t.Fatalf("string order diverges: %q vs %q", a.String(), b.String())
		}
	}
}

func TestSortedWeeksAscending(t *testing.T) {
	tally := model.WeeklyTally{
		{Year: 2024, Week: 10}: {"Coding": {Count: 1, Seconds: 60}},
		{Year: 2023, Week: 52}: {"Coding": {Count: 1, Seconds: 60}},
		{Year: 2024, Week: 2}:  {"Coding": {Count: 1, Seconds: 60}},
	}
	weeks := sortedWeeks(tally)
	want := []model.WeekKey{{Year: 2023, Week: 52}, {Year: 2024, Week: 2}, {Year: 2024, Week: 10}}
	if !reflect.DeepEqual(weeks, want) {
		t.Fatalf("unexpected order: %v", weeks)
	}
}
