package ui

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cyrilhamel/caly/internal/source"
)

func (a *App) importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import [calendar|board] [path]",
		Short: "Import units from an external source",
		Long: `Import units from an external source file and reschedule.

"calendar" reads an iCalendar (.ics) export; its events become fixed
appointments. "board" reads a kanban board JSON export; its cards
become flexible units. Re-importing a source replaces the units it
created last time.`,
		Example: `  caly import calendar ~/Downloads/family.ics
  caly import board ./board-export.json`,
		Args: cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}

			path := args[1]
			if _, err := os.Stat(path); err != nil {
				if os.IsNotExist(err) {
					return fmt.Errorf("source file does not exist: %s", path)
				}
				return fmt.Errorf("checking source file: %w", err)
			}

			var feed source.Feed
			switch args[0] {
			case "calendar", "ics":
				feed = source.NewCalendarFeed(path)
			case "board":
				feed = source.NewBoardFeed(path)
			default:
				return fmt.Errorf("unknown source kind %q, want calendar or board", args[0])
			}

			ctx := context.Background()
			result, err := source.Sync(ctx, a.repo, feed)
			if err != nil {
				return fmt.Errorf("syncing %s: %w", args[0], err)
			}

			if err := a.reschedule(ctx, ""); err != nil {
				return err
			}

			fmt.Printf("Imported %d units from %s (%d replaced)\n",
				result.Inserted, path, result.Removed)
			return nil
		},
	}

	return cmd
}
