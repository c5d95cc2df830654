package ui

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func (a *App) reorgCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reorg [id]",
		Short: "Reorganize the schedule around one unit",
		Long: `Recompute placements treating the given unit as the change trigger.

For an urgent unit the whole schedule from now is reconsidered; for a
normal unit only days from its own date onward move. Without an id this
behaves like a full pass.`,
		Example: `  caly reorg 3f2a
  caly reorg`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}

			ctx := context.Background()
			changedID := ""
			if len(args) == 1 {
				u, err := a.resolveUnit(ctx, args[0])
				if err != nil {
					return err
				}
				changedID = u.ID
			}

			if err := a.reschedule(ctx, changedID); err != nil {
				return err
			}

			fmt.Println("Schedule reorganized.")
			return nil
		},
	}
}
