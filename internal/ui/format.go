package ui

import (
	"fmt"

	"github.com/cyrilhamel/caly/internal/agenda"
	"github.com/cyrilhamel/caly/internal/schedule"
)

// statusSymbol returns the status indicator for a unit.
func statusSymbol(s agenda.Status) string {
	switch s {
	case agenda.StatusScheduled:
		return "○"
	case agenda.StatusValidated:
		return "●"
	case agenda.StatusPostponed:
		return "→"
	case agenda.StatusInProgress:
		return "▶"
	case agenda.StatusCompleted:
		return "✓"
	default:
		return "?"
	}
}

// priorityTag returns the short bracketed priority marker.
func priorityTag(p agenda.Priority) string {
	switch p {
	case agenda.PriorityUrgent:
		return formatUrgent("[U]")
	case agenda.PriorityLow:
		return formatMuted("[L]")
	default:
		return "[N]"
	}
}

// FormatDuration formats minutes as a human-readable duration.
func FormatDuration(minutes int) string {
	if minutes == 0 {
		return "0m"
	}
	hours := minutes / 60
	mins := minutes % 60
	if hours == 0 {
		return fmt.Sprintf("%dm", mins)
	}
	if mins == 0 {
		return fmt.Sprintf("%dh", hours)
	}
	return fmt.Sprintf("%dh%dm", hours, mins)
}

// PrintOpts configures unit printing behavior.
type PrintOpts struct {
	Verbose       bool // Show full titles
	ShowDuration  bool // Show duration column
	MaxTitleWidth int  // Maximum title width (0 = auto)
}

// CalcMaxTitleWidth calculates the maximum title width based on options.
func (o PrintOpts) CalcMaxTitleWidth(defaultWidth int) int {
	if o.MaxTitleWidth > 0 {
		return o.MaxTitleWidth
	}
	if !o.Verbose {
		return defaultWidth
	}
	tw := termWidth()
	// Base: "  ○ abcd1234  HH:MM  [U]  " = ~26 chars
	// Duration suffix: "  Xh" = ~6 chars
	overhead := 26
	if o.ShowDuration {
		overhead += 6
	}
	available := tw - overhead
	if available > defaultWidth {
		return available
	}
	return defaultWidth
}

// PrintUnitRow prints a single unit row with consistent formatting.
func PrintUnitRow(u *agenda.Unit, opts PrintOpts, maxTitleWidth int) {
	symbol := statusSymbol(u.Status)
	if u.Status == agenda.StatusValidated || u.Status == agenda.StatusCompleted {
		symbol = formatDone(symbol)
	}

	start := u.Start
	if start == "" {
		start = formatMuted("--:--")
	}
	if u.Fixed {
		start = formatFixed(start)
	}

	title := u.Title
	if len(title) > maxTitleWidth {
		title = title[:maxTitleWidth-3] + "..."
	}

	id := u.ID
	if len(id) > 8 {
		id = id[:8]
	}

	if opts.ShowDuration {
		duration := formatMuted(FormatDuration(u.EffectiveDuration()))
		fmt.Printf("  %s %s  %s  %s  %-*s  %s\n",
			symbol, formatMuted(id), start, priorityTag(u.Priority),
			maxTitleWidth, title, duration)
	} else {
		fmt.Printf("  %s %s  %s  %s  %s\n",
			symbol, formatMuted(id), start, priorityTag(u.Priority), title)
	}
}

// PrintDayStats prints the occupancy summary line for one day.
func PrintDayStats(stats agenda.DayStats) {
	fmt.Printf("  %s\n", formatMuted(fmt.Sprintf(
		"Fixed: %s | Flexible: %s | Units: %d",
		FormatDuration(stats.FixedMinutes),
		FormatDuration(stats.FlexibleMinutes),
		stats.TotalUnits)))
}

// PrintWeekStats prints the aggregated week summary.
func PrintWeekStats(stats agenda.WeekStats) {
	fmt.Printf("  Fixed: %s  |  Flexible: %s  |  Units: %d\n",
		formatFixed(FormatDuration(stats.FixedMinutes)),
		FormatDuration(stats.FlexibleMinutes),
		stats.TotalUnits)

	if weekday, minutes := stats.BusiestDay(); weekday >= 0 {
		fmt.Printf("  Busiest day: %s (%s)\n",
			agenda.WeekdayName(weekday), FormatDuration(minutes))
	}

	if stats.PostponedUnits > 0 || stats.CompletedUnits > 0 {
		fmt.Printf("  %s\n", formatMuted(fmt.Sprintf(
			"Postponed: %d  |  Completed: %d",
			stats.PostponedUnits, stats.CompletedUnits)))
	}
}

// printEvents reports the non-routine outcomes of a scheduling pass.
// Ordinary placements stay quiet; fallbacks, drops and skipped chains
// are the ones the user needs to act on.
func printEvents(events []schedule.Event) {
	for _, e := range events {
		switch e.Kind {
		case schedule.EventFallback:
			fmt.Println(formatWarn(fmt.Sprintf(
				"  ! %q had no free slot, pinned at %s %s",
				e.Title, e.Date.Format("2006-01-02"), e.Start)))
		case schedule.EventDropped:
			fmt.Println(formatWarn(fmt.Sprintf(
				"  ! %q left unscheduled: %s", e.Title, e.Reason)))
		case schedule.EventChainSkipped:
			fmt.Println(formatWarn(fmt.Sprintf(
				"  ! chain starting with %q skipped: %s", e.Title, e.Reason)))
		}
	}
}
