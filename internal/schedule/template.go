// Package schedule implements the automatic agenda scheduler: free-slot
// discovery inside a weekly work calendar, first-fit placement of
// flexible units, and priority-driven reorganization of the whole pool.
package schedule

import (
	"errors"
	"fmt"
	"time"

	"github.com/cyrilhamel/caly/internal/agenda"
)

// Template validation errors.
var (
	ErrWindowOrder   = errors.New("window start must be before window end")
	ErrWindowOverlap = errors.New("windows on the same day must not overlap")
)

// Window is a time-of-day interval of a work calendar, normalized onto
// any concrete date.
type Window struct {
	Start string // "HH:MM"
	End   string // "HH:MM"
}

// Minutes returns the window length in minutes.
func (w Window) Minutes() int {
	return agenda.TimeToMinutes(w.End) - agenda.TimeToMinutes(w.Start)
}

// WeekTemplate defines, for each day of the week, zero or more ordered
// work windows. It is pure configuration with no persisted state.
type WeekTemplate struct {
	windows [7][]Window // indexed by time.Weekday (0=Sunday)
}

// NewWeekTemplate builds a template from per-weekday windows, validating
// format, ordering and non-overlap within each day.
func NewWeekTemplate(days map[time.Weekday][]Window) (*WeekTemplate, error) {
	t := &WeekTemplate{}
	for day, windows := range days {
		prevEnd := ""
		for _, w := range windows {
			if err := agenda.ValidateTimeOfDay(w.Start); err != nil {
				return nil, fmt.Errorf("%s window start %q: %w", day, w.Start, err)
			}
			if err := agenda.ValidateTimeOfDay(w.End); err != nil {
				return nil, fmt.Errorf("%s window end %q: %w", day, w.End, err)
			}
			if w.Start >= w.End {
				return nil, fmt.Errorf("%s window %s-%s: %w", day, w.Start, w.End, ErrWindowOrder)
			}
			if prevEnd != "" && w.Start < prevEnd {
				return nil, fmt.Errorf("%s window %s-%s: %w", day, w.Start, w.End, ErrWindowOverlap)
			}
			prevEnd = w.End
		}
		t.windows[day] = append([]Window(nil), windows...)
	}
	return t, nil
}

// WindowsFor returns the ordered work windows for a day of the week.
func (t *WeekTemplate) WindowsFor(day time.Weekday) []Window {
	return t.windows[day]
}

// DefaultWeekTemplate returns the built-in work calendar: four full days
// with a morning and an afternoon window, a slim Wednesday morning, and
// weekend windows that only weekend-eligible units may use.
func DefaultWeekTemplate() *WeekTemplate {
	full := []Window{{Start: "09:00", End: "11:30"}, {Start: "13:00", End: "16:30"}}
	weekend := []Window{{Start: "08:00", End: "11:30"}, {Start: "13:00", End: "16:30"}}

	t, err := NewWeekTemplate(map[time.Weekday][]Window{
		time.Monday:    full,
		time.Tuesday:   full,
		time.Wednesday: {{Start: "09:30", End: "11:30"}},
		time.Thursday:  full,
		time.Friday:    full,
		time.Saturday:  weekend,
		time.Sunday:    weekend,
	})
	if err != nil {
		panic(fmt.Sprintf("default week template is invalid: %v", err))
	}
	return t
}

// isWeekend returns true for Saturday and Sunday.
func isWeekend(day time.Weekday) bool {
	return day == time.Saturday || day == time.Sunday
}
