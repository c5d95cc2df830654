package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/cyrilhamel/caly/internal/agenda"
)

func (a *App) extendCmd() *cobra.Command {
	var minutes int

	cmd := &cobra.Command{
		Use:   "extend [unit-id]",
		Short: "Grow a running unit",
		Long: `Extend a unit that is taking longer than planned.

The unit keeps its start time and becomes in-progress; units scheduled
after it are pushed later to absorb the extra minutes.

Example:
  caly extend 3f2a --by=20`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if minutes <= 0 {
				return fmt.Errorf("--by must be a positive number of minutes")
			}
			if err := a.ensureRepo(); err != nil {
				return err
			}

			ctx := context.Background()
			u, err := a.resolveUnit(ctx, args[0])
			if err != nil {
				return err
			}

			err = a.runPass(ctx, func(pool []*agenda.Unit, now time.Time) []*agenda.Unit {
				return a.engine.Extend(pool, u.ID, minutes, now)
			})
			if err != nil {
				return err
			}

			fmt.Printf("Extended %s by %s\n", u.Label(), FormatDuration(minutes))
			return nil
		},
	}

	cmd.Flags().IntVar(&minutes, "by", 0, "Extra minutes (required)")
	_ = cmd.MarkFlagRequired("by")

	return cmd
}
