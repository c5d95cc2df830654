package agenda

import (
	"testing"
	"time"
)

func placedUnit(t *testing.T, day time.Time, start string, minutes int) *Unit {
	t.Helper()
	u, err := New("task", PriorityNormal, minutes, day)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	u.Date = day
	u.Start = start
	return u
}

func TestNewDayWithUnits_FiltersAndSorts(t *testing.T) {
	tuesday := monday.AddDate(0, 0, 1)

	late := placedUnit(t, monday, "14:00", 30)
	early := placedUnit(t, monday, "09:00", 30)
	other := placedUnit(t, tuesday, "09:00", 30)
	unplaced, err := New("pending", PriorityNormal, 30, monday)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	d := NewDayWithUnits(monday, []*Unit{late, other, unplaced, early, nil})

	if d.Len() != 3 {
		t.Fatalf("expected 3 units, got %d", d.Len())
	}
	units := d.Units()
	if units[0].Start != "09:00" || units[1].Start != "14:00" {
		t.Errorf("placed units out of order: %s, %s", units[0].Start, units[1].Start)
	}
	if units[2].Placed() {
		t.Error("unplaced unit should sort last")
	}
	if got := len(d.Placed()); got != 2 {
		t.Errorf("expected 2 placed units, got %d", got)
	}
}

func TestDayFindOverlapping(t *testing.T) {
	d := NewDayWithUnits(monday, []*Unit{placedUnit(t, monday, "10:00", 60)})

	if got := d.FindOverlapping(TimeToMinutes("10:30"), TimeToMinutes("11:30")); got == nil {
		t.Error("expected an overlap at 10:30")
	}
	if got := d.FindOverlapping(TimeToMinutes("11:00"), TimeToMinutes("12:00")); got != nil {
		t.Error("back-to-back range should not overlap")
	}
}

func TestDayStats(t *testing.T) {
	fixed, err := NewFixed("dentist", monday, "10:00", 30)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	flexible := placedUnit(t, monday, "09:00", 60)
	done := placedUnit(t, monday, "13:00", 45)
	done.Status = StatusCompleted
	postponed, err := New("later", PriorityNormal, 30, monday)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	postponed.Status = StatusPostponed

	d := NewDayWithUnits(monday, []*Unit{fixed, flexible, done, postponed})
	stats := d.Stats()

	if stats.TotalUnits != 4 {
		t.Errorf("expected 4 units, got %d", stats.TotalUnits)
	}
	if stats.FixedMinutes != 30 {
		t.Errorf("expected 30 fixed minutes, got %d", stats.FixedMinutes)
	}
	if stats.FlexibleMinutes != 105 {
		t.Errorf("expected 105 flexible minutes, got %d", stats.FlexibleMinutes)
	}
	if stats.PostponedUnits != 1 || stats.CompletedUnits != 1 {
		t.Errorf("expected 1 postponed and 1 completed, got %d and %d",
			stats.PostponedUnits, stats.CompletedUnits)
	}
	if stats.TotalMinutes() != 135 {
		t.Errorf("expected 135 total minutes, got %d", stats.TotalMinutes())
	}
}
