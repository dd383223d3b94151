package task

import (
	"fmt"
	"strings"

	"github.com/cadencehq/cadence/adapter/cli"
	"github.com/cadencehq/cadence/internal/tasks/application/queries"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show [task-id]",
	Short: "Show a single task",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, userID, err := cli.Resolve()
		if err != nil {
			return err
		}

		taskID, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid task id: %w", err)
		}

		t, err := c.GetTaskHandler.Handle(cmd.Context(), queries.GetTaskQuery{
			TaskID: taskID,
			UserID: userID,
		})
		if err != nil {
			return fmt.Errorf("failed to load task: %w", err)
		}

		fmt.Printf("Task %s\n", t.ID())
		fmt.Printf("  title:    %s\n", t.Title())
		if t.Description() != "" {
			fmt.Printf("  notes:    %s\n", t.Description())
		}
		fmt.Printf("  status:   %s\n", t.Status())
		fmt.Printf("  priority: %s\n", t.Priority())
		fmt.Printf("  estimate: %d minutes\n", t.Estimate().Minutes())
		if len(t.Tags()) > 0 {
			fmt.Printf("  tags:     %s\n", strings.Join(t.Tags(), ", "))
		}
		if d := t.DueDate(); d != nil {
			fmt.Printf("  due:      %s\n", d.Format("2006-01-02"))
		}
		if s := t.StartedAt(); s != nil {
			fmt.Printf("  started:  %s\n", s.Format("2006-01-02 15:04"))
		}
		if done := t.CompletedAt(); done != nil {
			fmt.Printf("  done:     %s (%d minutes)\n", done.Format("2006-01-02 15:04"), t.ActualMinutes())
		}
		return nil
	},
}
