package task

import (
	"fmt"
	"strings"
	"time"

	"github.com/cadencehq/cadence/adapter/cli"
	"github.com/cadencehq/cadence/internal/tasks/application/queries"
	"github.com/spf13/cobra"
)

var (
	listStatus  string
	listTag     string
	listOverdue bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List your tasks",
	Long: `List tasks, optionally filtered by status, tag or overdue state.

Examples:
  cadence task list
  cadence task list --status pending
  cadence task list --tag project-x --overdue`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, userID, err := cli.Resolve()
		if err != nil {
			return err
		}

		tasks, err := c.ListTasksHandler.Handle(cmd.Context(), queries.ListTasksQuery{
			UserID:  userID,
			Status:  listStatus,
			Tag:     listTag,
			Overdue: listOverdue,
		})
		if err != nil {
			return fmt.Errorf("failed to list tasks: %w", err)
		}

		if len(tasks) == 0 {
			fmt.Println("No tasks found.")
			return nil
		}

		now := time.Now().UTC()
		fmt.Printf("%-38s %-10s %-10s %-25s %s\n", "ID", "STATUS", "PRIORITY", "TITLE", "DUE")
		fmt.Println(strings.Repeat("-", 100))
		for _, t := range tasks {
			due := "-"
			if d := t.DueDate(); d != nil {
				due = d.Format("2006-01-02")
				if t.IsOverdue(now) {
					due += " (overdue)"
				}
			}
			title := t.Title()
			if len(title) > 25 {
				title = title[:22] + "..."
			}
			fmt.Printf("%-38s %-10s %-10s %-25s %s\n",
				t.ID(), t.Status(), t.Priority(), title, due)
		}
		return nil
	},
}

func init() {
	listCmd.Flags().StringVarP(&listStatus, "status", "s", "", "filter by status (pending, in_progress, completed, cancelled)")
	listCmd.Flags().StringVarP(&listTag, "tag", "t", "", "filter by tag")
	listCmd.Flags().BoolVar(&listOverdue, "overdue", false, "only overdue tasks")
}
