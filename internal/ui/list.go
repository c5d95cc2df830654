package ui

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cyrilhamel/caly/internal/agenda"
	"github.com/cyrilhamel/caly/internal/dateutil"
)

func (a *App) listCmd() *cobra.Command {
	var (
		startDate string
		endDate   string
		verbose   bool
		noColor   bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List units in a date range",
		Long: `List all units anchored within a date range.

If no dates are specified, lists today's units.
If only --start is specified, lists units for that single day.
If both --start and --end are specified, lists units in that range (inclusive).`,
		Example: `  caly list
  caly list --start=2026-09-01
  caly list --start=2026-09-01 --end=2026-09-07`,
		RunE: func(_ *cobra.Command, _ []string) error {
			if noColor {
				DisableColor()
			}
			if err := a.ensureRepo(); err != nil {
				return err
			}

			dateRange, err := dateutil.NewDateRange(startDate, endDate)
			if err != nil {
				return err
			}

			units, err := a.repo.ListUnitsByDateRange(context.Background(), dateRange.Start, dateRange.End)
			if err != nil {
				return fmt.Errorf("listing units: %w", err)
			}

			if len(units) == 0 {
				fmt.Println("No units in the specified date range.")
				return nil
			}

			opts := PrintOpts{Verbose: verbose, ShowDuration: true}
			maxTitleWidth := opts.CalcMaxTitleWidth(40)

			var currentDate string
			for _, u := range units {
				date := u.Date.Format("2006-01-02")
				if date != currentDate {
					if currentDate != "" {
						fmt.Println()
					}
					fmt.Printf("%s\n", formatHeader(u.Date.Format("Mon Jan 2")))
					currentDate = date
				}
				PrintUnitRow(u, opts, maxTitleWidth)
			}

			day := agenda.NewDayWithUnits(dateRange.Start, units)
			if dateRange.Start.Equal(dateRange.End) && day.Len() > 0 {
				fmt.Println()
				PrintDayStats(day.Stats())
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&startDate, "start", "", "Start date (YYYY-MM-DD, defaults to today)")
	cmd.Flags().StringVar(&endDate, "end", "", "End date (YYYY-MM-DD, defaults to start date)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Show full titles")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable color output")

	return cmd
}
