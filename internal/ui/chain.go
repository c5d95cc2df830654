package ui

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/cyrilhamel/caly/internal/agenda"
	"github.com/cyrilhamel/caly/internal/dateutil"
)

func (a *App) chainCmd() *cobra.Command {
	var (
		priority string
		date     string
		steps    []string
	)

	cmd := &cobra.Command{
		Use:   "chain [title]",
		Short: "Add a multi-step chain",
		Long: `Add a chain of dependent steps that are scheduled as one block.

The first step gets a free slot like any flexible unit; every later
step starts a fixed delay after the previous one ends. If no slot fits
the first step, the whole chain waits for the next pass.

Each --step is "title:minutes" with an optional ":delay" suffix giving
the minutes to wait after the previous step.`,
		Example: `  caly chain "Laundry" --step "Wash:60" --step "Hang:15:5"
  caly chain "Bread" --step "Knead:20" --step "Bake:45:90" --date=2026-09-05`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}

			anchor, err := dateutil.ParseRelativeDate(date, time.Now())
			if err != nil {
				return fmt.Errorf("invalid date: %w", err)
			}

			parsed := make([]agenda.ChainStep, 0, len(steps))
			for _, spec := range steps {
				step, err := parseChainStep(spec)
				if err != nil {
					return err
				}
				parsed = append(parsed, step)
			}

			units, err := agenda.NewChain(args[0], agenda.Priority(priority), anchor, parsed)
			if err != nil {
				return err
			}

			ctx := context.Background()
			if err := a.repo.CreateUnits(ctx, units); err != nil {
				return fmt.Errorf("creating chain: %w", err)
			}

			if err := a.reschedule(ctx, units[0].ID); err != nil {
				return err
			}

			fmt.Printf("Added chain %s with %d steps\n", units[0].ChainID[:8], len(units))
			return nil
		},
	}

	cmd.Flags().StringVar(&priority, "priority", "normal", "Priority: urgent, normal or low")
	cmd.Flags().StringVar(&date, "date", "", `Anchor date (YYYY-MM-DD or relative like "tomorrow"; default: today)`)
	cmd.Flags().StringArrayVar(&steps, "step", nil, `Step as "title:minutes[:delay]" (repeatable, required)`)

	_ = cmd.MarkFlagRequired("step")

	return cmd
}

// parseChainStep parses a "title:minutes[:delay]" step spec.
func parseChainStep(spec string) (agenda.ChainStep, error) {
	parts := strings.Split(spec, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return agenda.ChainStep{}, fmt.Errorf("step %q must be \"title:minutes[:delay]\"", spec)
	}

	title := strings.TrimSpace(parts[0])
	if title == "" {
		return agenda.ChainStep{}, fmt.Errorf("step %q has an empty title", spec)
	}

	duration, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil || duration <= 0 {
		return agenda.ChainStep{}, fmt.Errorf("step %q has an invalid duration", spec)
	}

	step := agenda.ChainStep{Title: title, Duration: duration}
	if len(parts) == 3 {
		delay, err := strconv.Atoi(strings.TrimSpace(parts[2]))
		if err != nil || delay < 0 {
			return agenda.ChainStep{}, fmt.Errorf("step %q has an invalid delay", spec)
		}
		step.DelayAfterPrevious = delay
	}

	return step, nil
}
