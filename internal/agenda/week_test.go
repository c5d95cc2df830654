package agenda

import (
	"testing"
	"time"
)

func TestNewWeek_StartsOnMonday(t *testing.T) {
	tests := []struct {
		name string
		date time.Time
	}{
		{"from monday", monday},
		{"from thursday", monday.AddDate(0, 0, 3)},
		{"from sunday", monday.AddDate(0, 0, 6)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := NewWeek(tc.date)
			if !w.StartDate.Equal(monday) {
				t.Errorf("expected week start %v, got %v", monday, w.StartDate)
			}
			if want := monday.AddDate(0, 0, 6); !w.EndDate().Equal(want) {
				t.Errorf("expected week end %v, got %v", want, w.EndDate())
			}
		})
	}
}

func TestNewWeekFromUnits(t *testing.T) {
	wednesday := monday.AddDate(0, 0, 2)
	nextWeek := monday.AddDate(0, 0, 7)

	inWeek := placedUnit(t, wednesday, "09:00", 30)
	outOfWeek := placedUnit(t, nextWeek, "09:00", 30)

	w := NewWeekFromUnits(monday, []*Unit{inWeek, outOfWeek})

	if got := w.Day(2).Len(); got != 1 {
		t.Errorf("expected 1 unit on Wednesday, got %d", got)
	}
	if got := len(w.AllUnits()); got != 1 {
		t.Errorf("unit outside the week should be ignored, got %d units", got)
	}
	if w.DayByDate(nextWeek) != nil {
		t.Error("expected nil for a date outside the week")
	}
	if w.Day(7) != nil || w.Day(-1) != nil {
		t.Error("expected nil for out-of-range weekday index")
	}
}

func TestWeekStats_BusiestDay(t *testing.T) {
	tuesday := monday.AddDate(0, 0, 1)

	w := NewWeekFromUnits(monday, []*Unit{
		placedUnit(t, monday, "09:00", 30),
		placedUnit(t, tuesday, "09:00", 60),
		placedUnit(t, tuesday, "10:30", 60),
	})

	stats := w.Stats()
	if stats.TotalUnits != 3 {
		t.Errorf("expected 3 units, got %d", stats.TotalUnits)
	}
	if stats.TotalMinutes() != 150 {
		t.Errorf("expected 150 minutes, got %d", stats.TotalMinutes())
	}

	weekday, minutes := stats.BusiestDay()
	if weekday != 1 || minutes != 120 {
		t.Errorf("expected Tuesday with 120 minutes, got day %d with %d", weekday, minutes)
	}

	empty := NewWeek(monday).Stats()
	if weekday, _ := empty.BusiestDay(); weekday != -1 {
		t.Errorf("expected -1 for an empty week, got %d", weekday)
	}
}

func TestWeekdayNames(t *testing.T) {
	if got := WeekdayName(0); got != "Monday" {
		t.Errorf("expected Monday, got %s", got)
	}
	if got := WeekdayShortName(6); got != "Sun" {
		t.Errorf("expected Sun, got %s", got)
	}
	if got := WeekdayName(7); got != "" {
		t.Errorf("expected empty name for out-of-range index, got %q", got)
	}
}
