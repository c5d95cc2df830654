package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/cyrilhamel/caly/internal/agenda"
)

func (a *App) doneCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "done [unit-id]",
		Short: "Mark a unit as completed",
		Long: `Mark a unit as completed.

Completed units become historical: they keep their slot forever and no
scheduling pass touches them again.

Example:
  caly done 3f2a`,
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

			err = a.runPass(ctx, func(pool []*agenda.Unit, now time.Time) []*agenda.Unit {
				return a.engine.Complete(pool, u.ID, now)
			})
			if err != nil {
				return err
			}

			fmt.Printf("Completed %s\n", u.Label())
			return nil
		},
	}
}
