package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/cyrilhamel/caly/internal/agenda"
	"github.com/cyrilhamel/caly/internal/dateutil"
)

// View implements tea.Model.
func (m Model) View() string {
	if m.err != nil {
		return m.styles.Urgent.Render(fmt.Sprintf("error: %v", m.err)) + "\n\n" +
			m.styles.HelpFooter.Render(m.help.View(m.keys))
	}
	if m.week == nil {
		return m.styles.Muted.Render("Loading...")
	}

	var b strings.Builder

	title := fmt.Sprintf("WEEK %s - %s",
		m.week.StartDate.Format("Mon Jan 2"),
		m.week.EndDate().Format("Mon Jan 2, 2006"))
	b.WriteString(m.styles.Title.Render(title))
	b.WriteString("\n\n")

	b.WriteString(m.renderDayTabs())
	b.WriteString("\n\n")
	b.WriteString(m.renderSelectedDay())
	b.WriteString("\n")
	b.WriteString(m.renderStatusBar())
	b.WriteString("\n")
	b.WriteString(m.styles.HelpFooter.Render(m.help.View(m.keys)))

	return b.String()
}

// renderDayTabs draws the seven day headers with unit counts.
func (m Model) renderDayTabs() string {
	tabs := make([]string, 0, 7)
	for i, day := range m.week.Days {
		label := fmt.Sprintf(" %s %d (%d) ",
			agenda.WeekdayShortName(i), day.Date.Day(), day.Len())

		style := m.styles.DayHeader
		switch {
		case i == m.selected:
			style = m.styles.Selected
		case dateutil.SameDay(day.Date, time.Now()):
			style = m.styles.Today
		case day.Len() == 0:
			style = m.styles.Muted
		}
		tabs = append(tabs, style.Render(label))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

// renderSelectedDay lists the selected day's units chronologically.
func (m Model) renderSelectedDay() string {
	day := m.week.Day(m.selected)
	if day == nil || day.Len() == 0 {
		return m.styles.Muted.Render("  Nothing scheduled.")
	}

	var b strings.Builder
	for i, u := range day.Units() {
		start := u.Start
		if start == "" {
			start = "--:--"
		}

		marker := "  "
		if i == m.cursor {
			marker = "▸ "
		}
		line := fmt.Sprintf("%s%s  %-4s  %s",
			marker, start, fmt.Sprintf("%dm", u.EffectiveDuration()), u.Title)

		switch {
		case u.Fixed:
			line = m.styles.Fixed.Render(line)
		case u.Priority == agenda.PriorityUrgent:
			line = m.styles.Urgent.Render(line)
		case u.Status == agenda.StatusCompleted || u.Status == agenda.StatusValidated:
			line = m.styles.Done.Render(line)
		case u.Status == agenda.StatusPostponed:
			line = m.styles.Muted.Render(line)
		}

		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

// renderStatusBar shows the week's occupancy totals.
func (m Model) renderStatusBar() string {
	stats := m.week.Stats()
	text := fmt.Sprintf("fixed %dm | flexible %dm | units %d",
		stats.FixedMinutes, stats.FlexibleMinutes, stats.TotalUnits)
	if stats.PostponedUnits > 0 {
		text += fmt.Sprintf(" | postponed %d", stats.PostponedUnits)
	}
	return m.styles.StatusBar.Render(text)
}
