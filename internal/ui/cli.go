package ui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/cyrilhamel/caly/internal/agenda"
	"github.com/cyrilhamel/caly/internal/config"
	"github.com/cyrilhamel/caly/internal/db"
	"github.com/cyrilhamel/caly/internal/schedule"
	"github.com/cyrilhamel/caly/internal/tui"
)

var (
	// Version is set at build time
	Version = "dev"
	// Commit is set at build time
	Commit = "none"
)

// App holds the CLI application state.
type App struct {
	repo     agenda.Repository
	config   *config.Config
	engine   *schedule.Scheduler
	recorder *schedule.Recorder
	root     *cobra.Command
}

// NewApp creates a new CLI application with the given repository and
// config. A nil repository is opened lazily from the configured path.
func NewApp(repo agenda.Repository, cfg *config.Config) *App {
	a := &App{repo: repo, config: cfg}

	a.root = &cobra.Command{
		Use:   "caly",
		Short: "A CLI agenda with automatic scheduling",
		Long: `Caly keeps a single pool of agenda units and places the flexible
ones into the free slots of your weekly work calendar.

Fixed appointments keep their time; everything else is scheduled by
priority, reorganized whenever something changes.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}
			return tui.Run(a.repo, a.config)
		},
	}

	a.root.AddCommand(a.versionCmd())
	a.root.AddCommand(a.configCmd())
	a.root.AddCommand(a.addCmd())
	a.root.AddCommand(a.chainCmd())
	a.root.AddCommand(a.listCmd())
	a.root.AddCommand(a.weekCmd())
	a.root.AddCommand(a.autoCmd())
	a.root.AddCommand(a.reorgCmd())
	a.root.AddCommand(a.validateCmd())
	a.root.AddCommand(a.doneCmd())
	a.root.AddCommand(a.postponeCmd())
	a.root.AddCommand(a.extendCmd())
	a.root.AddCommand(a.deleteCmd())
	a.root.AddCommand(a.importCmd())
	a.root.AddCommand(a.briefingCmd())

	return a
}

func (a *App) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Printf("caly %s (commit: %s)\n", Version, Commit)
		},
	}
}

// Execute runs the CLI application.
func (a *App) Execute() error {
	return a.root.Execute()
}

// Close releases the repository if this App opened it.
func (a *App) Close() error {
	if a.repo == nil {
		return nil
	}
	return a.repo.Close()
}

// ensureRepo opens the configured database on first use.
func (a *App) ensureRepo() error {
	if a.repo != nil {
		return nil
	}
	dbPath := a.config.Storage.DBPath
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}
	repo, err := db.New(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	a.repo = repo
	return nil
}

// ensureEngine builds the scheduler from the configured work calendar.
func (a *App) ensureEngine() error {
	if a.engine != nil {
		return nil
	}
	template, err := a.config.WeekTemplate()
	if err != nil {
		return fmt.Errorf("building work calendar: %w", err)
	}
	a.recorder = &schedule.Recorder{}
	params := a.config.SchedulerParams()
	params.Sink = a.recorder
	a.engine = schedule.New(template, params)
	return nil
}

// reschedule runs one engine pass over the whole pool and persists the
// result. changedID names the unit that triggered the pass; empty means
// a full pass from now.
func (a *App) reschedule(ctx context.Context, changedID string) error {
	if err := a.ensureEngine(); err != nil {
		return err
	}

	pool, err := a.repo.ListAllUnits(ctx)
	if err != nil {
		return fmt.Errorf("loading units: %w", err)
	}

	a.recorder.Reset()
	now := time.Now()
	var next []*agenda.Unit
	if changedID == "" {
		next = a.engine.AutoSchedule(pool, now)
	} else {
		next = a.engine.Reorganize(pool, changedID, now)
	}

	if err := a.repo.ReplaceSchedule(ctx, next); err != nil {
		return fmt.Errorf("saving schedule: %w", err)
	}

	printEvents(a.recorder.Events())
	return nil
}

// runPass loads the pool, applies one engine transformation and
// persists the result. Used by the lifecycle commands.
func (a *App) runPass(ctx context.Context, pass func(pool []*agenda.Unit, now time.Time) []*agenda.Unit) error {
	if err := a.ensureEngine(); err != nil {
		return err
	}

	pool, err := a.repo.ListAllUnits(ctx)
	if err != nil {
		return fmt.Errorf("loading units: %w", err)
	}

	a.recorder.Reset()
	next := pass(pool, time.Now())

	if err := a.repo.ReplaceSchedule(ctx, next); err != nil {
		return fmt.Errorf("saving schedule: %w", err)
	}

	printEvents(a.recorder.Events())
	return nil
}

// resolveUnit finds a unit by ID prefix, surfacing friendly errors.
func (a *App) resolveUnit(ctx context.Context, prefix string) (*agenda.Unit, error) {
	u, err := a.repo.FindUnitByPrefix(ctx, prefix)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, fmt.Errorf("no unit matches %q", prefix)
	}
	return u, nil
}
