package source

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/emersion/go-ical"
	"github.com/google/uuid"

	"github.com/cyrilhamel/caly/internal/agenda"
)

// CalendarFeed imports VEVENTs from an .ics file as fixed units. Synced
// calendar events are immovable: they only occupy space that flexible
// units must avoid.
type CalendarFeed struct {
	Path string
}

// NewCalendarFeed creates a feed reading the given .ics file.
func NewCalendarFeed(path string) *CalendarFeed {
	return &CalendarFeed{Path: path}
}

// Source implements Feed.
func (f *CalendarFeed) Source() agenda.SourceType {
	return agenda.SourceCalendar
}

// Fetch implements Feed. Events without both start and end times are
// skipped; cancelled events are skipped.
func (f *CalendarFeed) Fetch(ctx context.Context) ([]*agenda.Unit, error) {
	file, err := os.Open(f.Path)
	if err != nil {
		return nil, fmt.Errorf("opening calendar file: %w", err)
	}
	defer func() { _ = file.Close() }()

	return DecodeCalendar(ctx, file)
}

// DecodeCalendar parses iCalendar data into fixed units.
func DecodeCalendar(ctx context.Context, r io.Reader) ([]*agenda.Unit, error) {
	decoder := ical.NewDecoder(r)

	var units []*agenda.Unit
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		cal, err := decoder.Decode()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("decoding calendar: %w", err)
		}

		for _, comp := range cal.Children {
			if comp.Name != ical.CompEvent {
				continue
			}
			if u := eventToUnit(comp); u != nil {
				units = append(units, u)
			}
		}
	}
	return units, nil
}

// eventToUnit maps one VEVENT to a fixed unit. Returns nil for events
// the schedule cannot use.
func eventToUnit(comp *ical.Component) *agenda.Unit {
	if statusProp := comp.Props.Get(ical.PropStatus); statusProp != nil && statusProp.Value == "CANCELLED" {
		return nil
	}

	start, ok := propDateTime(comp, ical.PropDateTimeStart)
	if !ok {
		return nil
	}
	end, ok := propDateTime(comp, ical.PropDateTimeEnd)
	if !ok || !end.After(start) {
		return nil
	}

	title := "Calendar event"
	if summaryProp := comp.Props.Get(ical.PropSummary); summaryProp != nil && summaryProp.Value != "" {
		title = summaryProp.Value
	}

	var description string
	if descProp := comp.Props.Get(ical.PropDescription); descProp != nil {
		description = descProp.Value
	}

	sourceID := ""
	if uidProp := comp.Props.Get(ical.PropUID); uidProp != nil {
		sourceID = uidProp.Value
	}

	duration := int(end.Sub(start).Minutes())
	now := time.Now()

	return &agenda.Unit{
		ID:               uuid.NewString(),
		Title:            title,
		Description:      description,
		Date:             time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location()),
		Start:            start.Format("15:04"),
		Duration:         duration,
		OriginalDuration: duration,
		Fixed:            true,
		Priority:         agenda.PriorityNormal,
		Status:           agenda.StatusScheduled,
		CanBeOnWeekend:   true,
		CreatedAt:        now,
		UpdatedAt:        now,
		SourceType:       agenda.SourceCalendar,
		SourceID:         sourceID,
	}
}

// propDateTime resolves a date-time property in the local timezone.
func propDateTime(comp *ical.Component, name string) (time.Time, bool) {
	prop := comp.Props.Get(name)
	if prop == nil {
		return time.Time{}, false
	}
	if t, err := prop.DateTime(time.Local); err == nil {
		return t.In(time.Local), true
	}
	return time.Time{}, false
}
