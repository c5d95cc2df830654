package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/cyrilhamel/caly/internal/agenda"
)

func (a *App) postponeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "postpone [unit-id]",
		Short: "Free a unit's slot and reschedule it",
		Long: `Postpone a unit.

The unit gives up its current slot and re-enters placement from now,
competing with everything else at its priority. Other flexible units
may move into the freed slot.

Example:
  caly postpone 3f2a`,
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
				return a.engine.Postpone(pool, u.ID, now)
			})
			if err != nil {
				return err
			}

			moved, err := a.repo.GetUnit(ctx, u.ID)
			if err != nil {
				return fmt.Errorf("reading back unit: %w", err)
			}
			if moved != nil && moved.Placed() {
				fmt.Printf("Postponed %s → %s %s\n",
					u.Label(), moved.Date.Format("2006-01-02"), moved.Start)
			} else {
				fmt.Printf("Postponed %s, waiting for a slot\n", u.Label())
			}
			return nil
		},
	}
}
