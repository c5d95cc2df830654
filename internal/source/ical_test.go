package source

import (
	"context"
	"strings"
	"testing"
)

const sampleICS = `BEGIN:VCALENDAR
VERSION:2.0
PRODID:-//test//test//EN
BEGIN:VEVENT
UID:evt-1
DTSTAMP:20260101T000000Z
DTSTART:20260105T100000
DTEND:20260105T103000
SUMMARY:Dentist
DESCRIPTION:Checkup
END:VEVENT
BEGIN:VEVENT
UID:evt-2
DTSTAMP:20260101T000000Z
DTSTART:20260106T140000
DTEND:20260106T150000
SUMMARY:Cancelled meeting
STATUS:CANCELLED
END:VEVENT
BEGIN:VEVENT
UID:evt-3
DTSTAMP:20260101T000000Z
DTSTART:20260107T090000
SUMMARY:No end time
END:VEVENT
END:VCALENDAR
`

func TestDecodeCalendar(t *testing.T) {
	units, err := DecodeCalendar(context.Background(), strings.NewReader(sampleICS))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// The cancelled event and the event without an end are skipped.
	if len(units) != 1 {
		t.Fatalf("expected 1 unit, got %d", len(units))
	}

	u := units[0]
	if u.Title != "Dentist" || u.Description != "Checkup" {
		t.Errorf("unexpected text fields: %q %q", u.Title, u.Description)
	}
	if !u.Fixed {
		t.Error("calendar events should import as fixed")
	}
	if u.Start != "10:00" || u.Duration != 30 {
		t.Errorf("unexpected placement: %s for %d minutes", u.Start, u.Duration)
	}
	if u.Date.Year() != 2026 || u.Date.Month() != 1 || u.Date.Day() != 5 {
		t.Errorf("unexpected date: %v", u.Date)
	}
	if u.SourceType != "calendar" || u.SourceID != "evt-1" {
		t.Errorf("unexpected source fields: %s %s", u.SourceType, u.SourceID)
	}
	if !u.CanBeOnWeekend {
		t.Error("fixed calendar events keep their weekend placement")
	}
}

func TestDecodeCalendar_Malformed(t *testing.T) {
	if _, err := DecodeCalendar(context.Background(), strings.NewReader("not a calendar")); err == nil {
		t.Error("expected an error for malformed input")
	}
}

func TestDecodeCalendar_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := DecodeCalendar(ctx, strings.NewReader(sampleICS)); err == nil {
		t.Error("expected a context error")
	}
}
