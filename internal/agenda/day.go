package agenda

import (
	"slices"
	"time"
)

// Day holds all units anchored on a single calendar day.
type Day struct {
	Date  time.Time
	units []*Unit // sorted by start time, unplaced units last
}

// NewDay creates a Day for the given date.
func NewDay(date time.Time) *Day {
	return &Day{
		Date:  truncateToDay(date),
		units: make([]*Unit, 0),
	}
}

// NewDayWithUnits creates a Day from a slice of units. Units anchored on
// other days are ignored.
func NewDayWithUnits(date time.Time, units []*Unit) *Day {
	d := NewDay(date)
	for _, u := range units {
		if u != nil && u.SameDay(d.Date) {
			d.Add(u)
		}
	}
	return d
}

// Units returns a copy of the unit slice.
func (d *Day) Units() []*Unit {
	result := make([]*Unit, len(d.units))
	copy(result, d.units)
	return result
}

// Add inserts a unit keeping chronological order. Unplaced units sort
// after placed ones.
func (d *Day) Add(u *Unit) {
	if u == nil {
		return
	}
	d.units = append(d.units, u)
	slices.SortFunc(d.units, func(a, b *Unit) int {
		switch {
		case a.Placed() && !b.Placed():
			return -1
		case !a.Placed() && b.Placed():
			return 1
		case a.Start < b.Start:
			return -1
		case a.Start > b.Start:
			return 1
		default:
			return 0
		}
	})
}

// Placed returns only units with a concrete start time.
func (d *Day) Placed() []*Unit {
	var result []*Unit
	for _, u := range d.units {
		if u.Placed() {
			result = append(result, u)
		}
	}
	return result
}

// FindOverlapping returns the first placed unit overlapping the given
// minute-of-day range, or nil.
func (d *Day) FindOverlapping(startMin, endMin int) *Unit {
	for _, u := range d.units {
		if !u.Placed() {
			continue
		}
		s := TimeToMinutes(u.Start)
		if RangesOverlap(startMin, endMin, s, s+u.EffectiveDuration()) {
			return u
		}
	}
	return nil
}

// Len returns the number of units in the day.
func (d *Day) Len() int {
	return len(d.units)
}

// DayStats summarizes a day's occupancy.
type DayStats struct {
	FixedMinutes    int
	FlexibleMinutes int
	TotalUnits      int
	PostponedUnits  int
	CompletedUnits  int
}

// TotalMinutes returns the occupied minutes of the day.
func (s DayStats) TotalMinutes() int {
	return s.FixedMinutes + s.FlexibleMinutes
}

// Stats calculates occupancy statistics for the day.
func (d *Day) Stats() DayStats {
	var stats DayStats
	for _, u := range d.units {
		stats.TotalUnits++
		switch u.Status {
		case StatusPostponed:
			stats.PostponedUnits++
			continue
		case StatusCompleted:
			stats.CompletedUnits++
		}
		if !u.Placed() {
			continue
		}
		if u.Fixed {
			stats.FixedMinutes += u.EffectiveDuration()
		} else {
			stats.FlexibleMinutes += u.EffectiveDuration()
		}
	}
	return stats
}
