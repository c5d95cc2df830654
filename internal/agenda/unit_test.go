package agenda

import (
	"errors"
	"testing"
	"time"
)

var monday = time.Date(2026, 1, 5, 0, 0, 0, 0, time.Local)

func TestNew_Validation(t *testing.T) {
	tests := []struct {
		name     string
		title    string
		priority Priority
		duration int
		wantErr  error
	}{
		{"empty title", "", PriorityNormal, 30, ErrEmptyTitle},
		{"bad priority", "x", Priority("asap"), 30, ErrInvalidPriority},
		{"zero duration", "x", PriorityNormal, 0, ErrInvalidDuration},
		{"negative duration", "x", PriorityNormal, -15, ErrInvalidDuration},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New(tc.title, tc.priority, tc.duration, monday)
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("expected %v, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestNew_Defaults(t *testing.T) {
	u, err := New("write report", PriorityNormal, 45, monday.Add(10*time.Hour))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if u.ID == "" {
		t.Error("expected a generated id")
	}
	if !u.Date.Equal(monday) {
		t.Errorf("anchor should be truncated to midnight, got %v", u.Date)
	}
	if u.Placed() {
		t.Error("new unit should start unplaced")
	}
	if u.Status != StatusScheduled {
		t.Errorf("expected scheduled status, got %s", u.Status)
	}
	if u.OriginalDuration != 45 {
		t.Errorf("expected original duration 45, got %d", u.OriginalDuration)
	}
	if u.SourceType != SourceManual {
		t.Errorf("expected manual source, got %s", u.SourceType)
	}
}

func TestNewFixed(t *testing.T) {
	u, err := NewFixed("dentist", monday, "10:00", 30)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !u.Fixed || !u.Anchored() {
		t.Error("fixed unit should be anchored")
	}
	if u.Start != "10:00" {
		t.Errorf("expected start 10:00, got %s", u.Start)
	}

	if _, err := NewFixed("dentist", monday, "25:00", 30); !errors.Is(err, ErrInvalidTimeFormat) {
		t.Errorf("expected time format error, got %v", err)
	}
	if _, err := NewFixed("dentist", monday, "9:00", 30); !errors.Is(err, ErrInvalidTimeFormat) {
		t.Errorf("expected time format error for short form, got %v", err)
	}
}

func TestEffectiveDuration(t *testing.T) {
	u, err := New("task", PriorityNormal, 60, monday)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := u.EffectiveDuration(); got != 60 {
		t.Errorf("expected 60, got %d", got)
	}

	u.ActualDuration = 90
	if got := u.EffectiveDuration(); got != 90 {
		t.Errorf("extended duration should win, got %d", got)
	}
}

func TestAnchored(t *testing.T) {
	tests := []struct {
		status Status
		want   bool
	}{
		{StatusScheduled, false},
		{StatusPostponed, false},
		{StatusValidated, true},
		{StatusInProgress, true},
		{StatusCompleted, true},
	}

	for _, tc := range tests {
		t.Run(string(tc.status), func(t *testing.T) {
			u, err := New("task", PriorityNormal, 30, monday)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			u.Status = tc.status
			if got := u.Anchored(); got != tc.want {
				t.Errorf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestStartAndEndInstant(t *testing.T) {
	u, err := New("task", PriorityNormal, 90, monday)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !u.StartInstant().IsZero() {
		t.Error("unplaced unit should have zero start instant")
	}

	u.Start = "09:30"
	wantStart := monday.Add(9*time.Hour + 30*time.Minute)
	if got := u.StartInstant(); !got.Equal(wantStart) {
		t.Errorf("expected %v, got %v", wantStart, got)
	}
	wantEnd := wantStart.Add(90 * time.Minute)
	if got := u.EndInstant(); !got.Equal(wantEnd) {
		t.Errorf("expected %v, got %v", wantEnd, got)
	}
}

func TestOverlapsWith(t *testing.T) {
	place := func(start string, minutes int, day time.Time) *Unit {
		u, err := New("task", PriorityNormal, minutes, day)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		u.Date = day
		u.Start = start
		return u
	}

	a := place("09:00", 60, monday)

	if !a.OverlapsWith(place("09:30", 60, monday)) {
		t.Error("expected overlap with 09:30")
	}
	if a.OverlapsWith(place("10:00", 60, monday)) {
		t.Error("back-to-back units should not overlap")
	}
	if a.OverlapsWith(place("09:00", 60, monday.AddDate(0, 0, 1))) {
		t.Error("units on different days should not overlap")
	}
	if a.OverlapsWith(nil) {
		t.Error("nil should not overlap")
	}
}

func TestClone(t *testing.T) {
	u, err := New("task", PriorityNormal, 30, monday)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	end := monday.AddDate(0, 2, 0)
	u.Recurring = true
	u.RecurrenceEnd = &end

	c := u.Clone()
	c.Title = "changed"
	*c.RecurrenceEnd = c.RecurrenceEnd.AddDate(0, 1, 0)

	if u.Title != "task" {
		t.Error("clone mutation leaked into the original title")
	}
	if !u.RecurrenceEnd.Equal(end) {
		t.Error("clone mutation leaked into the original recurrence end")
	}
}

func TestIsStandaloneRecurring(t *testing.T) {
	u, err := New("weekly", PriorityNormal, 30, monday)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if u.IsStandaloneRecurring() {
		t.Error("plain unit is not recurring")
	}

	u.Recurring = true
	if !u.IsStandaloneRecurring() {
		t.Error("recurring unit without a chain should be standalone")
	}

	u.ChainID = "some-chain"
	if u.IsStandaloneRecurring() {
		t.Error("chain steps are never standalone recurring")
	}
}
