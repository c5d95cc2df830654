package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/cyrilhamel/caly/internal/agenda"
	"github.com/cyrilhamel/caly/internal/dateutil"
)

func (a *App) weekCmd() *cobra.Command {
	var (
		date    string
		verbose bool
		noColor bool
	)

	cmd := &cobra.Command{
		Use:   "week",
		Short: "Show a week's schedule",
		Long: `Display one week's units in a table, Monday through Sunday,
with occupancy stats at the bottom.

Defaults to the current week; --date shows the week containing that day.`,
		Example: `  caly week
  caly week --date=2026-09-14`,
		RunE: func(_ *cobra.Command, _ []string) error {
			if noColor {
				DisableColor()
			}
			if err := a.ensureRepo(); err != nil {
				return err
			}

			anchor, err := dateutil.ParseDate(date)
			if err != nil {
				return fmt.Errorf("invalid date: %w", err)
			}

			monday, sunday := dateutil.WeekRange(anchor)
			units, err := a.repo.ListUnitsByDateRange(context.Background(), monday, sunday)
			if err != nil {
				return fmt.Errorf("listing units: %w", err)
			}

			week := agenda.NewWeekFromUnits(anchor, units)

			header := fmt.Sprintf("WEEK: %s - %s",
				week.StartDate.Format("Mon Jan 2"),
				week.EndDate().Format("Mon Jan 2, 2006"))
			fmt.Printf("\n  %s\n", formatHeader(header))
			fmt.Println(strings.Repeat("─", 74))

			if len(units) == 0 {
				fmt.Println("  Nothing scheduled this week.")
				fmt.Println()
				return nil
			}

			opts := PrintOpts{Verbose: verbose, ShowDuration: true}
			maxTitleWidth := opts.CalcMaxTitleWidth(40)

			for i, day := range week.Days {
				if day.Len() == 0 {
					continue
				}
				if i > 0 {
					fmt.Println()
				}
				marker := ""
				if dateutil.SameDay(day.Date, time.Now()) {
					marker = " ◂ today"
				}
				fmt.Printf("  %s%s\n", formatHeader(day.Date.Format("Mon Jan 2")), marker)
				for _, u := range day.Units() {
					PrintUnitRow(u, opts, maxTitleWidth)
				}
			}

			fmt.Println(strings.Repeat("─", 74))
			PrintWeekStats(week.Stats())
			fmt.Println()
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Any date inside the week (YYYY-MM-DD, default: today)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Show full titles")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable color output")

	return cmd
}
