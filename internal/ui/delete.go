package ui

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func (a *App) deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete [unit-id]",
		Short: "Remove a unit from the pool",
		Long: `Delete a unit and reschedule around the freed slot.

Example:
  caly delete 3f2a`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}

			ctx := context.Background()
			u, err := a.resolveUnit(ctx, args[0])
			if err != nil {
				return err
			}

			if err := a.repo.DeleteUnit(ctx, u.ID); err != nil {
				return fmt.Errorf("deleting unit: %w", err)
			}

			if err := a.reschedule(ctx, ""); err != nil {
				return err
			}

			fmt.Printf("Deleted %s\n", u.Label())
			return nil
		},
	}
}
