package ui

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cyrilhamel/caly/internal/agenda"
	"github.com/cyrilhamel/caly/internal/dateutil"
	"github.com/cyrilhamel/caly/internal/llm"
)

func (a *App) briefingCmd() *cobra.Command {
	var (
		date  string
		model string
	)

	cmd := &cobra.Command{
		Use:   "briefing",
		Short: "Narrate a day's schedule",
		Long: `Ask the configured LLM for a short spoken-style briefing of one
day's schedule. The model only narrates; it never changes placements.`,
		Example: `  caly briefing
  caly briefing --date=2026-09-01 --model=gpt-4o`,
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}

			anchor, err := dateutil.ParseDate(date)
			if err != nil {
				return fmt.Errorf("invalid date: %w", err)
			}

			ctx := context.Background()
			units, err := a.repo.ListUnitsByDateRange(ctx, anchor, anchor)
			if err != nil {
				return fmt.Errorf("listing units: %w", err)
			}
			day := agenda.NewDayWithUnits(anchor, units)

			if model == "" {
				model = a.config.LLM.Model
			}
			client, err := llm.NewClient(a.config.LLM.Provider, model, a.config.LLM.BaseURL)
			if err != nil {
				return fmt.Errorf("creating LLM client: %w", err)
			}

			text, err := llm.Briefing(ctx, client, day)
			if err != nil {
				return err
			}

			fmt.Printf("\n  %s\n\n", formatHeader(anchor.Format("Mon Jan 2")))
			fmt.Println(text)
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Day to narrate (YYYY-MM-DD, default: today)")
	cmd.Flags().StringVar(&model, "model", "", "LLM model to use (default from config)")

	return cmd
}
