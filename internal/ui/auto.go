package ui

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func (a *App) autoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "auto",
		Short: "Run a full scheduling pass",
		Long: `Recompute the whole schedule from now.

Fixed, validated, in-progress and completed units keep their slot;
every other unit is placed again by priority, oldest first.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}

			if err := a.reschedule(context.Background(), ""); err != nil {
				return err
			}

			fmt.Println("Schedule recomputed.")
			return nil
		},
	}
}
