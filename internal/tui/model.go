// Package tui provides the terminal week browser for caly.
package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/cyrilhamel/caly/internal/agenda"
	"github.com/cyrilhamel/caly/internal/config"
	"github.com/cyrilhamel/caly/internal/dateutil"
	"github.com/cyrilhamel/caly/internal/schedule"
)

// weekLoadedMsg carries a freshly loaded week.
type weekLoadedMsg struct {
	week *agenda.Week
}

// errMsg carries a load failure.
type errMsg struct {
	err error
}

// Model is the week browser model. Navigation is local; validate and
// postpone run a full engine pass and reload the week.
type Model struct {
	repo   agenda.Repository
	config *config.Config
	engine *schedule.Scheduler

	keys   keyMap
	help   help.Model
	styles *Styles

	weekStart time.Time // Monday of the displayed week
	selected  int       // selected day, 0=Monday
	cursor    int       // selected unit within the day
	week      *agenda.Week
	err       error

	width  int
	height int
}

// New creates a week browser showing the current week.
func New(repo agenda.Repository, cfg *config.Config, engine *schedule.Scheduler) Model {
	monday, _ := dateutil.WeekRange(time.Now())
	selected := int(time.Now().Weekday())
	if selected == 0 {
		selected = 7
	}
	return Model{
		repo:      repo,
		config:    cfg,
		engine:    engine,
		keys:      defaultKeyMap(),
		help:      help.New(),
		styles:    NewStyles(cfg.UI.Theme),
		weekStart: monday,
		selected:  selected - 1,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return loadWeek(m.repo, m.weekStart)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case weekLoadedMsg:
		m.week = msg.week
		m.err = nil
		m.clampCursor()
		return m, nil

	case errMsg:
		m.err = msg.err
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keys := m.keys
	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, keys.PrevDay):
		if m.selected > 0 {
			m.selected--
			m.cursor = 0
		}
		return m, nil

	case key.Matches(msg, keys.NextDay):
		if m.selected < 6 {
			m.selected++
			m.cursor = 0
		}
		return m, nil

	case key.Matches(msg, keys.PrevUnit):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case key.Matches(msg, keys.NextUnit):
		if day := m.currentDay(); day != nil && m.cursor < day.Len()-1 {
			m.cursor++
		}
		return m, nil

	case key.Matches(msg, keys.PrevWeek):
		m.weekStart = m.weekStart.AddDate(0, 0, -7)
		m.cursor = 0
		return m, loadWeek(m.repo, m.weekStart)

	case key.Matches(msg, keys.NextWeek):
		m.weekStart = m.weekStart.AddDate(0, 0, 7)
		m.cursor = 0
		return m, loadWeek(m.repo, m.weekStart)

	case key.Matches(msg, keys.Today):
		monday, _ := dateutil.WeekRange(time.Now())
		m.weekStart = monday
		weekday := int(time.Now().Weekday())
		if weekday == 0 {
			weekday = 7
		}
		m.selected = weekday - 1
		m.cursor = 0
		return m, loadWeek(m.repo, m.weekStart)

	case key.Matches(msg, keys.Validate):
		if u := m.currentUnit(); u != nil {
			return m, m.runPass(u.ID, m.engine.Validate)
		}
		return m, nil

	case key.Matches(msg, keys.Postpone):
		if u := m.currentUnit(); u != nil {
			return m, m.runPass(u.ID, m.engine.Postpone)
		}
		return m, nil

	case key.Matches(msg, keys.Reload):
		return m, loadWeek(m.repo, m.weekStart)
	}

	return m, nil
}

// currentDay returns the selected day of the loaded week.
func (m Model) currentDay() *agenda.Day {
	if m.week == nil {
		return nil
	}
	return m.week.Day(m.selected)
}

// currentUnit returns the unit under the cursor.
func (m Model) currentUnit() *agenda.Unit {
	day := m.currentDay()
	if day == nil {
		return nil
	}
	units := day.Units()
	if m.cursor < 0 || m.cursor >= len(units) {
		return nil
	}
	return units[m.cursor]
}

func (m *Model) clampCursor() {
	day := m.currentDay()
	if day == nil || day.Len() == 0 {
		m.cursor = 0
		return
	}
	if m.cursor >= day.Len() {
		m.cursor = day.Len() - 1
	}
}

// runPass applies one engine operation to the whole pool, persists the
// result and reloads the displayed week.
func (m Model) runPass(id string, op func(pool []*agenda.Unit, id string, now time.Time) []*agenda.Unit) tea.Cmd {
	repo, weekStart := m.repo, m.weekStart
	return func() tea.Msg {
		ctx := context.Background()
		pool, err := repo.ListAllUnits(ctx)
		if err != nil {
			return errMsg{err: err}
		}
		if err := repo.ReplaceSchedule(ctx, op(pool, id, time.Now())); err != nil {
			return errMsg{err: err}
		}
		return loadWeek(repo, weekStart)()
	}
}

// loadWeek fetches one week's units from the repository.
func loadWeek(repo agenda.Repository, monday time.Time) tea.Cmd {
	return func() tea.Msg {
		sunday := monday.AddDate(0, 0, 6)
		units, err := repo.ListUnitsByDateRange(context.Background(), monday, sunday)
		if err != nil {
			return errMsg{err: err}
		}
		return weekLoadedMsg{week: agenda.NewWeekFromUnits(monday, units)}
	}
}

// Run starts the week browser.
func Run(repo agenda.Repository, cfg *config.Config) error {
	template, err := cfg.WeekTemplate()
	if err != nil {
		return err
	}
	engine := schedule.New(template, cfg.SchedulerParams())

	p := tea.NewProgram(New(repo, cfg, engine), tea.WithAltScreen())
	_, err = p.Run()
	return err
}
