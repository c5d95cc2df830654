package schedule

import (
	"time"

	"github.com/cyrilhamel/caly/internal/agenda"
)

// Placement is the computed date and start time for one flexible unit.
type Placement struct {
	Date  time.Time // local midnight of the chosen day
	Start string    // "HH:MM"
}

// requiredMinutes returns the slot length a unit needs: its effective
// duration plus its own trailing break when it exceeds the threshold,
// so the unit reserves the break it will impose on whoever is placed
// after it.
func (s *Scheduler) requiredMinutes(u *agenda.Unit) int {
	d := u.EffectiveDuration()
	if d > s.breakThreshold {
		d += s.breakMinutes
	}
	return d
}

// findPlacement scans forward day by day and returns the first slot that
// fits the unit, or nil when nothing fits within the horizon. First-fit:
// the earliest adequate slot wins, not the tightest.
//
// Standalone recurring units search only the 7 days starting at their own
// anchor date, which pins each occurrence to its week instead of letting
// it drift through the full horizon.
func (s *Scheduler) findPlacement(u *agenda.Unit, placed []*agenda.Unit, searchStart, now time.Time) *Placement {
	required := s.requiredMinutes(u)

	start := truncateToDay(searchStart)
	days := s.lookaheadDays
	if u.IsStandaloneRecurring() && !u.Date.IsZero() {
		start = truncateToDay(u.Date)
		days = s.recurringWindowDays
	}

	for i := 0; i < days; i++ {
		day := start.AddDate(0, 0, i)
		slots := s.freeSlots(day, unitsOn(placed, day), u.CanBeOnWeekend, now)
		for _, slot := range slots {
			if slot.Minutes() >= required {
				return &Placement{
					Date:  truncateToDay(slot.Start),
					Start: slot.Start.Format("15:04"),
				}
			}
		}
	}
	return nil
}

// truncateToDay removes the time component from a time.Time.
func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
