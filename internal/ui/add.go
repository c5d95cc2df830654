package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/cyrilhamel/caly/internal/agenda"
	"github.com/cyrilhamel/caly/internal/dateutil"
)

func (a *App) addCmd() *cobra.Command {
	var (
		duration    int
		priority    string
		date        string
		start       string
		description string
		weekend     bool
		recurring   bool
		every       int
		until       string
	)

	cmd := &cobra.Command{
		Use:   "add [title]",
		Short: "Add a unit and schedule it",
		Long: `Add a unit to the pool and run a scheduling pass.

Flexible units only need a duration; the engine picks a slot for them.
Passing --start makes the unit a fixed appointment at that exact time.
Recurring units repeat every --every days and stay pinned to the week
of their anchor date.`,
		Example: `  caly add "Review tax letter" --duration=45 --priority=urgent
  caly add "Dentist" --date=2026-09-03 --start=14:00 --duration=60
  caly add "Water the plants" --duration=15 --recurring --every=7`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}

			anchor, err := dateutil.ParseRelativeDate(date, time.Now())
			if err != nil {
				return fmt.Errorf("invalid date: %w", err)
			}

			var u *agenda.Unit
			if start != "" {
				u, err = agenda.NewFixed(args[0], anchor, start, duration)
			} else {
				u, err = agenda.New(args[0], agenda.Priority(priority), duration, anchor)
			}
			if err != nil {
				return err
			}

			u.Description = description
			u.CanBeOnWeekend = weekend
			if recurring {
				u.Recurring = true
				u.RecurrenceInterval = every
				if until != "" {
					end, err := dateutil.ParseDate(until)
					if err != nil {
						return fmt.Errorf("invalid recurrence end: %w", err)
					}
					u.RecurrenceEnd = &end
				}
			}

			ctx := context.Background()
			if err := a.repo.CreateUnit(ctx, u); err != nil {
				return fmt.Errorf("creating unit: %w", err)
			}

			if err := a.reschedule(ctx, u.ID); err != nil {
				return err
			}

			placed, err := a.repo.GetUnit(ctx, u.ID)
			if err != nil {
				return fmt.Errorf("reading back unit: %w", err)
			}
			if placed == nil {
				placed = u
			}

			if placed.Placed() {
				fmt.Printf("Added %s: %s %s (%s)\n",
					placed.ID[:8], placed.Date.Format("2006-01-02"),
					placed.Start, FormatDuration(placed.EffectiveDuration()))
			} else {
				fmt.Printf("Added %s, no slot yet\n", placed.ID[:8])
			}

			return nil
		},
	}

	cmd.Flags().IntVar(&duration, "duration", 0, "Duration in minutes (required)")
	cmd.Flags().StringVar(&priority, "priority", "normal", "Priority: urgent, normal or low")
	cmd.Flags().StringVar(&date, "date", "", `Anchor date (YYYY-MM-DD, "tomorrow", "friday", "next-week"; default: today)`)
	cmd.Flags().StringVar(&start, "start", "", "Start time (HH:MM, makes the unit fixed)")
	cmd.Flags().StringVar(&description, "note", "", "Free-form note")
	cmd.Flags().BoolVar(&weekend, "weekend", false, "Allow placement on weekend days")
	cmd.Flags().BoolVar(&recurring, "recurring", false, "Repeat the unit")
	cmd.Flags().IntVar(&every, "every", 7, "Days between recurrences")
	cmd.Flags().StringVar(&until, "until", "", "Last recurrence date (YYYY-MM-DD)")

	_ = cmd.MarkFlagRequired("duration")

	return cmd
}
