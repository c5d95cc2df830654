package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the key bindings for the week browser.
type keyMap struct {
	PrevDay  key.Binding
	NextDay  key.Binding
	PrevUnit key.Binding
	NextUnit key.Binding
	PrevWeek key.Binding
	NextWeek key.Binding
	Today    key.Binding
	Validate key.Binding
	Postpone key.Binding
	Reload   key.Binding
	Help     key.Binding
	Quit     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		PrevDay: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "previous day"),
		),
		NextDay: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "next day"),
		),
		PrevUnit: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "previous unit"),
		),
		NextUnit: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "next unit"),
		),
		PrevWeek: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "previous week"),
		),
		NextWeek: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "next week"),
		),
		Today: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "today"),
		),
		Validate: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "validate"),
		),
		Postpone: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "postpone"),
		),
		Reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reload"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.PrevDay, k.NextDay, k.NextUnit, k.Validate, k.Postpone, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.PrevDay, k.NextDay, k.PrevUnit, k.NextUnit},
		{k.PrevWeek, k.NextWeek, k.Today, k.Reload},
		{k.Validate, k.Postpone, k.Help, k.Quit},
	}
}
