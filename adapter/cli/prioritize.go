package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/cadencehq/cadence/internal/tasks/application/queries"
	"github.com/spf13/cobra"
)

var prioritizeCmd = &cobra.Command{
	Use:   "prioritize",
	Short: "Rank your open tasks",
	Long: `Rank open tasks by weighted urgency and importance and place each
one in an Eisenhower quadrant.

Examples:
  cadence prioritize`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, userID, err := Resolve()
		if err != nil {
			return err
		}

		tasks, err := c.ListTasksHandler.Handle(cmd.Context(), queries.ListTasksQuery{UserID: userID})
		if err != nil {
			return fmt.Errorf("failed to list tasks: %w", err)
		}

		ranked := c.PriorityEngine.Prioritize(tasks, time.Now().UTC())
		if len(ranked) == 0 {
			fmt.Println("\n  No open tasks to prioritize.")
			return nil
		}

		fmt.Println()
		fmt.Println(strings.Repeat("=", 72))
		fmt.Println("  PRIORITIZED TASKS")
		fmt.Println(strings.Repeat("=", 72))
		for i, pt := range ranked {
			due := "no due date"
			if d := pt.Task.DueDate(); d != nil {
				due = "due " + d.Format("Jan 2")
			}
			fmt.Printf("  %2d. [%.1f] %-35s %s\n", i+1, pt.Score, pt.Task.Title(), due)
			fmt.Printf("      %s: %s\n", pt.Quadrant, pt.Quadrant.Advice())
		}
		fmt.Println(strings.Repeat("=", 72))
		fmt.Println()
		return nil
	},
}

func init() {
	AddCommand(prioritizeCmd)
}
