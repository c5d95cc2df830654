package schedule

import (
	"sort"
	"time"

	"github.com/cyrilhamel/caly/internal/agenda"
)

// Slot is a contiguous free interval within a day's work windows.
type Slot struct {
	Start time.Time
	End   time.Time
}

// Minutes returns the slot length in minutes.
func (s Slot) Minutes() int {
	return int(s.End.Sub(s.Start).Minutes())
}

// freeSlots computes the free sub-intervals of one day's work windows,
// given the units already placed on that day. Days without windows yield
// nothing, as do weekend days for weekend-ineligible units. When the day
// is today, slots are clipped so they never start before now.
//
// Contiguous placed units form one occupied run; a run longer than the
// break threshold gets the inter-unit break appended, so the next unit
// cannot start inside the break.
func (s *Scheduler) freeSlots(day time.Time, dayUnits []*agenda.Unit, weekendOK bool, now time.Time) []Slot {
	windows := s.template.WindowsFor(day.Weekday())
	if len(windows) == 0 {
		return nil
	}
	if !weekendOK && isWeekend(day.Weekday()) {
		return nil
	}

	occupied := s.occupiedRuns(dayUnits)

	var slots []Slot
	for _, w := range windows {
		cursor := atTimeOfDay(day, w.Start)
		windowEnd := atTimeOfDay(day, w.End)

		for _, iv := range occupied {
			if !iv.end.After(cursor) {
				continue
			}
			if !iv.start.Before(windowEnd) {
				break
			}
			if iv.start.After(cursor) {
				slots = append(slots, Slot{Start: cursor, End: minTime(iv.start, windowEnd)})
			}
			if iv.end.After(cursor) {
				cursor = iv.end
			}
			if !cursor.Before(windowEnd) {
				break
			}
		}
		if cursor.Before(windowEnd) {
			slots = append(slots, Slot{Start: cursor, End: windowEnd})
		}
	}

	// Today: drop past slots, advance partially-past ones to now.
	if sameDay(day, now) {
		clipped := slots[:0]
		for _, slot := range slots {
			if !slot.End.After(now) {
				continue
			}
			if slot.Start.Before(now) {
				slot.Start = now
			}
			clipped = append(clipped, slot)
		}
		slots = clipped
	}

	return slots
}

// interval is a concrete occupied span on one day.
type interval struct{ start, end time.Time }

// occupiedRuns resolves the placed units of a day to occupied intervals,
// merges the overlapping and back-to-back ones into runs, and appends
// the inter-unit break to every run that exceeds the break threshold.
func (s *Scheduler) occupiedRuns(dayUnits []*agenda.Unit) []interval {
	raw := make([]interval, 0, len(dayUnits))
	for _, u := range dayUnits {
		if !u.Placed() {
			continue
		}
		start := u.StartInstant()
		end := start.Add(time.Duration(u.EffectiveDuration()) * time.Minute)
		raw = append(raw, interval{start, end})
	}
	sort.Slice(raw, func(i, j int) bool { return raw[i].start.Before(raw[j].start) })

	var runs []interval
	for _, iv := range raw {
		if n := len(runs); n > 0 && !iv.start.After(runs[n-1].end) {
			if iv.end.After(runs[n-1].end) {
				runs[n-1].end = iv.end
			}
			continue
		}
		runs = append(runs, iv)
	}

	for i, run := range runs {
		if int(run.end.Sub(run.start).Minutes()) > s.breakThreshold {
			runs[i].end = run.end.Add(time.Duration(s.breakMinutes) * time.Minute)
		}
	}
	return runs
}

// unitsOn filters the pool to units anchored on the given day.
func unitsOn(units []*agenda.Unit, day time.Time) []*agenda.Unit {
	var result []*agenda.Unit
	for _, u := range units {
		if u.SameDay(day) {
			result = append(result, u)
		}
	}
	return result
}

// atTimeOfDay places an "HH:MM" time on a concrete date.
func atTimeOfDay(day time.Time, hhmm string) time.Time {
	m := agenda.TimeToMinutes(hhmm)
	return time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location()).
		Add(time.Duration(m) * time.Minute)
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func minTime(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}
