package schedule

import (
	"testing"
	"time"

	"github.com/cyrilhamel/caly/internal/agenda"
)

func flexible(t *testing.T, title string, minutes int) *agenda.Unit {
	t.Helper()
	u, err := agenda.New(title, agenda.PriorityNormal, minutes, monday)
	if err != nil {
		t.Fatalf("creating unit: %v", err)
	}
	return u
}

func TestFindPlacement_FirstFitBeforeFixedBlock(t *testing.T) {
	s := testScheduler()
	searchStart := monday.Add(8 * time.Hour) // Monday 08:00

	placed := []*agenda.Unit{fixedOn(t, monday, "10:00", 30)}

	pl := s.findPlacement(flexible(t, "first", 60), placed, searchStart, searchStart)
	if pl == nil {
		t.Fatal("expected a placement")
	}
	if !pl.Date.Equal(monday) || pl.Start != "09:00" {
		t.Errorf("expected Monday 09:00, got %s %s", pl.Date.Format("2006-01-02"), pl.Start)
	}
}

func TestFindPlacement_RollsToAfternoonWindow(t *testing.T) {
	s := testScheduler()
	searchStart := monday.Add(8 * time.Hour)

	// Morning already holds a 60-minute unit at 09:00 and the fixed
	// 10:00-10:30 block; the 90-minute run's break leaves only 50 free
	// minutes before 11:30.
	placed := []*agenda.Unit{
		placedOn(t, monday, "09:00", 60),
		fixedOn(t, monday, "10:00", 30),
	}

	pl := s.findPlacement(flexible(t, "second", 60), placed, searchStart, searchStart)
	if pl == nil {
		t.Fatal("expected a placement")
	}
	if !pl.Date.Equal(monday) || pl.Start != "13:00" {
		t.Errorf("expected Monday 13:00, got %s %s", pl.Date.Format("2006-01-02"), pl.Start)
	}
}

func TestFindPlacement_LongUnitReservesOwnBreak(t *testing.T) {
	tpl, err := NewWeekTemplate(map[time.Weekday][]Window{
		time.Monday: {{Start: "09:00", End: "10:40"}}, // exactly 100 minutes
	})
	if err != nil {
		t.Fatalf("building template: %v", err)
	}
	s := New(tpl, Params{})
	searchStart := monday.Add(8 * time.Hour)

	// 90 effective + 10 break = 100 required, fits exactly.
	pl := s.findPlacement(flexible(t, "long", 90), nil, searchStart, searchStart)
	if pl == nil || pl.Start != "09:00" {
		t.Fatalf("expected Monday 09:00, got %+v", pl)
	}

	// 95 effective + 10 break = 105 required, does not fit anywhere.
	if pl := s.findPlacement(flexible(t, "too long", 95), nil, searchStart, searchStart); pl != nil {
		t.Errorf("expected no placement, got %+v", pl)
	}
}

func TestFindPlacement_SkipsToNextDay(t *testing.T) {
	s := testScheduler()
	searchStart := monday.Add(8 * time.Hour)

	// Fill both Monday windows.
	placed := []*agenda.Unit{
		fixedOn(t, monday, "09:00", 150),
		fixedOn(t, monday, "13:00", 210),
	}

	pl := s.findPlacement(flexible(t, "overflow", 60), placed, searchStart, searchStart)
	if pl == nil {
		t.Fatal("expected a placement")
	}
	tuesday := monday.AddDate(0, 0, 1)
	if !pl.Date.Equal(tuesday) || pl.Start != "09:00" {
		t.Errorf("expected Tuesday 09:00, got %s %s", pl.Date.Format("2006-01-02"), pl.Start)
	}
}

func TestFindPlacement_WeekendSkippedUnlessEligible(t *testing.T) {
	s := testScheduler()
	saturday := monday.AddDate(0, 0, 5)
	searchStart := saturday.Add(7 * time.Hour)

	u := flexible(t, "chores", 60)
	pl := s.findPlacement(u, nil, searchStart, searchStart)
	if pl == nil {
		t.Fatal("expected a placement")
	}
	nextMonday := monday.AddDate(0, 0, 7)
	if !pl.Date.Equal(nextMonday) {
		t.Errorf("expected next Monday, got %s", pl.Date.Format("2006-01-02"))
	}

	u.CanBeOnWeekend = true
	pl = s.findPlacement(u, nil, searchStart, searchStart)
	if pl == nil || !pl.Date.Equal(saturday) || pl.Start != "08:00" {
		t.Errorf("expected Saturday 08:00, got %+v", pl)
	}
}

func TestFindPlacement_RecurringPinnedToAnchorWeek(t *testing.T) {
	s := testScheduler()
	wednesday := monday.AddDate(0, 0, 2)

	u := flexible(t, "weekly review", 60)
	u.Recurring = true
	u.Date = wednesday

	// Search start far before the anchor; the unit must still land in
	// the week starting at its own anchor date.
	searchStart := monday.Add(8 * time.Hour)
	pl := s.findPlacement(u, nil, searchStart, searchStart)
	if pl == nil {
		t.Fatal("expected a placement")
	}
	if !pl.Date.Equal(wednesday) || pl.Start != "09:30" {
		t.Errorf("expected Wednesday 09:30, got %s %s", pl.Date.Format("2006-01-02"), pl.Start)
	}
}

func TestFindPlacement_NoSlotWithinHorizon(t *testing.T) {
	tpl, err := NewWeekTemplate(map[time.Weekday][]Window{
		time.Wednesday: {{Start: "09:30", End: "11:30"}},
	})
	if err != nil {
		t.Fatalf("building template: %v", err)
	}
	s := New(tpl, Params{})
	searchStart := monday.Add(8 * time.Hour)

	// 120 effective + 10 break never fits the 120-minute window.
	if pl := s.findPlacement(flexible(t, "deep work", 120), nil, searchStart, searchStart); pl != nil {
		t.Errorf("expected no placement, got %+v", pl)
	}
}
