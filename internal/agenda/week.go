package agenda

import "time"

// Week holds 7 days starting from Monday.
type Week struct {
	StartDate time.Time // Monday of the week
	Days      [7]*Day   // Monday (0) through Sunday (6)
}

// NewWeek creates a Week starting from the Monday of the given date.
func NewWeek(date time.Time) *Week {
	monday := startOfWeek(date)
	w := &Week{StartDate: monday}
	for i := 0; i < 7; i++ {
		w.Days[i] = NewDay(monday.AddDate(0, 0, i))
	}
	return w
}

// NewWeekFromUnits creates a Week and distributes units to their days.
// Units outside the week's date range are ignored.
func NewWeekFromUnits(date time.Time, units []*Unit) *Week {
	w := NewWeek(date)
	for _, u := range units {
		if day := w.DayByDate(u.Date); day != nil {
			day.Add(u)
		}
	}
	return w
}

// Day returns the Day for the given weekday index (0=Monday, 6=Sunday).
// Returns nil if the index is out of range.
func (w *Week) Day(weekday int) *Day {
	if weekday < 0 || weekday > 6 {
		return nil
	}
	return w.Days[weekday]
}

// DayByDate returns the Day for the given date, nil if not in this week.
func (w *Week) DayByDate(date time.Time) *Day {
	truncated := truncateToDay(date)
	for _, day := range w.Days {
		if day.Date.Equal(truncated) {
			return day
		}
	}
	return nil
}

// AllUnits returns all units across all days, chronologically.
func (w *Week) AllUnits() []*Unit {
	var result []*Unit
	for _, day := range w.Days {
		result = append(result, day.Units()...)
	}
	return result
}

// EndDate returns the Sunday of the week.
func (w *Week) EndDate() time.Time {
	return w.StartDate.AddDate(0, 0, 6)
}

// WeekStats aggregates occupancy over the week.
type WeekStats struct {
	FixedMinutes    int
	FlexibleMinutes int
	TotalUnits      int
	PostponedUnits  int
	CompletedUnits  int
	DayStats        [7]DayStats
}

// TotalMinutes returns the occupied minutes of the week.
func (s WeekStats) TotalMinutes() int {
	return s.FixedMinutes + s.FlexibleMinutes
}

// BusiestDay returns the weekday index (0=Monday) with the most occupied
// minutes, or -1 for an empty week.
func (s WeekStats) BusiestDay() (weekday int, minutes int) {
	weekday = -1
	for i, ds := range s.DayStats {
		if ds.TotalMinutes() > minutes {
			minutes = ds.TotalMinutes()
			weekday = i
		}
	}
	return weekday, minutes
}

// Stats calculates statistics for the week.
func (w *Week) Stats() WeekStats {
	var stats WeekStats
	for i, day := range w.Days {
		ds := day.Stats()
		stats.DayStats[i] = ds
		stats.FixedMinutes += ds.FixedMinutes
		stats.FlexibleMinutes += ds.FlexibleMinutes
		stats.TotalUnits += ds.TotalUnits
		stats.PostponedUnits += ds.PostponedUnits
		stats.CompletedUnits += ds.CompletedUnits
	}
	return stats
}

// WeekdayName returns the name of the weekday (0=Monday).
func WeekdayName(weekday int) string {
	names := []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}
	if weekday < 0 || weekday > 6 {
		return ""
	}
	return names[weekday]
}

// WeekdayShortName returns the short name of the weekday (0=Monday).
func WeekdayShortName(weekday int) string {
	names := []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}
	if weekday < 0 || weekday > 6 {
		return ""
	}
	return names[weekday]
}

// startOfWeek returns the Monday of the week containing the given date.
func startOfWeek(t time.Time) time.Time {
	t = truncateToDay(t)
	weekday := int(t.Weekday())
	if weekday == 0 {
		weekday = 7
	}
	return t.AddDate(0, 0, -(weekday - 1))
}
