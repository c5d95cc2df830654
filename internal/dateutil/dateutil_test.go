package dateutil

import (
	"errors"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	got, err := ParseDate("2026-01-05")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := time.Date(2026, 1, 5, 0, 0, 0, 0, time.Local)
	if !got.Equal(want) {
		t.Errorf("expected %v, got %v", want, got)
	}

	today, err := ParseDate("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !SameDay(today, time.Now()) {
		t.Errorf("empty date should parse to today, got %v", today)
	}

	if _, err := ParseDate("05/01/2026"); !errors.Is(err, ErrInvalidDateFormat) {
		t.Errorf("expected format error, got %v", err)
	}
}

func TestNewDateRange(t *testing.T) {
	r, err := NewDateRange("2026-01-05", "2026-01-11")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.End.Sub(r.Start) != 6*24*time.Hour {
		t.Errorf("expected a 6-day span, got %v", r.End.Sub(r.Start))
	}

	single, err := NewDateRange("2026-01-05", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !single.Start.Equal(single.End) {
		t.Error("empty end date should default to the start date")
	}

	if _, err := NewDateRange("2026-01-11", "2026-01-05"); !errors.Is(err, ErrEndDateBeforeStart) {
		t.Errorf("expected reversed-range error, got %v", err)
	}
}

func TestWeekRange(t *testing.T) {
	wantMonday := time.Date(2026, 1, 5, 0, 0, 0, 0, time.Local)
	wantSunday := time.Date(2026, 1, 11, 0, 0, 0, 0, time.Local)

	tests := []struct {
		name string
		in   time.Time
	}{
		{"monday", wantMonday},
		{"midweek", wantMonday.AddDate(0, 0, 2)},
		{"sunday", wantSunday},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			monday, sunday := WeekRange(tc.in)
			if !monday.Equal(wantMonday) || !sunday.Equal(wantSunday) {
				t.Errorf("expected %v..%v, got %v..%v", wantMonday, wantSunday, monday, sunday)
			}
		})
	}
}

func TestParseRelativeDate(t *testing.T) {
	// A Monday, so weekday arithmetic is predictable.
	relativeTo := time.Date(2026, 1, 5, 10, 0, 0, 0, time.Local)
	day := func(offset int) time.Time {
		return time.Date(2026, 1, 5, 0, 0, 0, 0, time.Local).AddDate(0, 0, offset)
	}

	tests := []struct {
		name    string
		in      string
		want    time.Time
		wantErr error
	}{
		{name: "empty", in: "", want: day(0)},
		{name: "today", in: "today", want: day(0)},
		{name: "tomorrow", in: "tomorrow", want: day(1)},
		{name: "next week", in: "next-week", want: day(7)},
		{name: "weekday", in: "friday", want: day(4)},
		{name: "same weekday rolls a week", in: "monday", want: day(7)},
		{name: "next prefixed", in: "next-wednesday", want: day(2)},
		{name: "case insensitive", in: " Tomorrow ", want: day(1)},
		{name: "absolute", in: "2026-01-20", want: day(15)},
		{name: "absolute in past", in: "2026-01-01", wantErr: ErrDateInPast},
		{name: "garbage", in: "someday", wantErr: ErrInvalidDateFormat},
		{name: "bad next prefix", in: "next-funday", wantErr: ErrInvalidDateFormat},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseRelativeDate(tc.in, relativeTo)
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Errorf("expected %v, got %v", tc.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !got.Equal(tc.want) {
				t.Errorf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestSameDay(t *testing.T) {
	a := time.Date(2026, 1, 5, 8, 0, 0, 0, time.Local)
	b := time.Date(2026, 1, 5, 23, 59, 0, 0, time.Local)
	c := time.Date(2026, 1, 6, 0, 0, 0, 0, time.Local)

	if !SameDay(a, b) {
		t.Error("expected same day")
	}
	if SameDay(a, c) {
		t.Error("expected different days")
	}
}
