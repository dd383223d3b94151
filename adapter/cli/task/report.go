package task

import (
	"fmt"
	"sort"
	"strings"

	"github.com/cadencehq/cadence/adapter/cli"
	"github.com/cadencehq/cadence/internal/tasks/application/queries"
	"github.com/spf13/cobra"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Summarize your tasks",
	Long:  `Print counts by status and priority, overdue totals and the completion rate.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, userID, err := cli.Resolve()
		if err != nil {
			return err
		}

		report, err := c.TaskReportHandler.Handle(cmd.Context(), queries.TaskReportQuery{UserID: userID})
		if err != nil {
			return fmt.Errorf("failed to build task report: %w", err)
		}

		fmt.Println()
		fmt.Println(strings.Repeat("=", 44))
		fmt.Println("  TASK REPORT")
		fmt.Println(strings.Repeat("=", 44))
		fmt.Printf("  Total tasks: %d\n", report.Total)
		fmt.Printf("  Overdue:     %d\n", report.Overdue)
		fmt.Printf("  Completion:  %.1f%%\n", report.CompletionRate*100)
		fmt.Println()

		printCounts("BY STATUS", report.ByStatus)
		printCounts("BY PRIORITY", report.ByPriority)

		fmt.Println(strings.Repeat("=", 44))
		fmt.Println()
		return nil
	},
}

func printCounts(header string, counts map[string]int) {
	if len(counts) == 0 {
		return
	}
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	fmt.Printf("  %s\n", header)
	fmt.Println(strings.Repeat("-", 44))
	for _, k := range keys {
		fmt.Printf("    %-12s %d\n", k, counts[k])
	}
	fmt.Println()
}
