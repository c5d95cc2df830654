package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/cyrilhamel/caly/internal/agenda"
)

func (a *App) validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [unit-id]",
		Short: "Confirm a unit's slot",
		Long: `Confirm the proposed slot of a unit.

A validated unit is anchored: later scheduling passes leave it where
it is. The ID may be any unambiguous prefix.

Example:
  caly validate 3f2a`,
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
				return a.engine.Validate(pool, u.ID, now)
			})
			if err != nil {
				return err
			}

			fmt.Printf("Validated %s\n", u.Label())
			return nil
		},
	}
}
