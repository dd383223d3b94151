package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/cadencehq/cadence/internal/analysis/application/queries"
	"github.com/cadencehq/cadence/internal/analysis/domain"
	"github.com/spf13/cobra"
)

var analyzeRange string

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze your workflow patterns",
	Long: `Analyze the completed-task history over a trailing window and print
the productivity report.

Examples:
  cadence analyze                 # Last 7 days
  cadence analyze --range day     # Last 24 hours
  cadence analyze --range month   # Last 30 days`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, userID, err := Resolve()
		if err != nil {
			return err
		}

		rng, ok := domain.ParseNamedRange(analyzeRange)
		if !ok {
			return fmt.Errorf("invalid range %q (use day, week or month)", analyzeRange)
		}

		report, err := c.AnalyzePatternsHandler.Handle(cmd.Context(), queries.AnalyzePatternsQuery{
			UserID: userID,
			Range:  rng,
		})
		if err != nil {
			if errors.Is(err, domain.ErrInsufficientData) {
				fmt.Printf("\n  Not enough task events in the last %s to analyze.\n", rng)
				fmt.Println("  Complete a few more tasks and try again.")
				return nil
			}
			return fmt.Errorf("failed to analyze patterns: %w", err)
		}

		printReport(report, rng)
		return nil
	},
}

func printReport(report *domain.ProductivityReport, rng domain.NamedRange) {
	fmt.Println()
	fmt.Println(strings.Repeat("=", 60))
	fmt.Printf("  WORKFLOW ANALYSIS (%s)\n", rng)
	fmt.Println(strings.Repeat("=", 60))
	fmt.Printf("  Window: %s to %s\n",
		report.WindowStart.Format("Jan 2, 2006"),
		report.WindowEnd.Format("Jan 2, 2006"))
	fmt.Printf("  Sample: %d task events\n", report.SampleSize)
	fmt.Println()

	fmt.Println("  SCORES")
	fmt.Println(strings.Repeat("-", 60))
	fmt.Printf("    Productivity:    %.0f/100\n", report.ProductivityScore*100)
	fmt.Printf("    Completion Rate: %.1f%%\n", report.CompletionRate*100)
	fmt.Printf("    Procrastination: %.0f/100\n", report.ProcrastinationScore*100)
	fmt.Printf("    Consistency:     %.0f/100\n", report.ConsistencyScore*100)
	fmt.Println()

	if len(report.PeakHours) > 0 {
		fmt.Println("  PEAK HOURS")
		fmt.Println(strings.Repeat("-", 60))
		for _, ph := range report.PeakHours {
			fmt.Printf("    %02d:00 - %d completions (%.0f%% of window)\n",
				ph.Hour, ph.Completions, ph.Density*100)
		}
		fmt.Println()
	}

	fmt.Println(strings.Repeat("=", 60))
	fmt.Println()
}

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeRange, "range", "r", "week", "analysis range (day, week, month)")
	AddCommand(analyzeCmd)
}
