package tui

import "github.com/charmbracelet/lipgloss"

// Styles holds the lipgloss styles for the week browser.
type Styles struct {
	Title      lipgloss.Style
	DayHeader  lipgloss.Style
	Today      lipgloss.Style
	Selected   lipgloss.Style
	Fixed      lipgloss.Style
	Urgent     lipgloss.Style
	Done       lipgloss.Style
	Muted      lipgloss.Style
	StatusBar  lipgloss.Style
	HelpFooter lipgloss.Style
}

// NewStyles builds the styles for the given theme name. Unknown themes
// fall back to dark.
func NewStyles(theme string) *Styles {
	fg := lipgloss.Color("252")
	muted := lipgloss.Color("243")
	accent := lipgloss.Color("39")
	if theme == "light" {
		fg = lipgloss.Color("235")
		muted = lipgloss.Color("245")
		accent = lipgloss.Color("27")
	}

	return &Styles{
		Title:      lipgloss.NewStyle().Bold(true).Foreground(accent).Padding(0, 1),
		DayHeader:  lipgloss.NewStyle().Bold(true).Foreground(fg),
		Today:      lipgloss.NewStyle().Bold(true).Foreground(accent),
		Selected:   lipgloss.NewStyle().Bold(true).Background(accent).Foreground(lipgloss.Color("231")),
		Fixed:      lipgloss.NewStyle().Foreground(lipgloss.Color("51")),
		Urgent:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
		Done:       lipgloss.NewStyle().Foreground(lipgloss.Color("78")),
		Muted:      lipgloss.NewStyle().Foreground(muted),
		StatusBar:  lipgloss.NewStyle().Foreground(muted).Padding(0, 1),
		HelpFooter: lipgloss.NewStyle().Padding(0, 1),
	}
}
