package task

import (
	"fmt"

	"github.com/cadencehq/cadence/adapter/cli"
	"github.com/cadencehq/cadence/internal/tasks/application/commands"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var completeMinutes int

var completeCmd = &cobra.Command{
	Use:   "complete [task-id]",
	Short: "Complete a task",
	Long: `Mark a task as completed. The completion feeds the workflow analyzer.

Examples:
  cadence task complete 7f3c...
  cadence task complete 7f3c... --minutes 45`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, userID, err := cli.Resolve()
		if err != nil {
			return err
		}

		taskID, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid task id: %w", err)
		}

		t, err := c.CompleteTaskHandler.Handle(cmd.Context(), commands.CompleteTaskCommand{
			TaskID:        taskID,
			UserID:        userID,
			ActualMinutes: completeMinutes,
		})
		if err != nil {
			return fmt.Errorf("failed to complete task: %w", err)
		}

		fmt.Printf("Task completed: %s\n", t.Title())
		fmt.Printf("  actual: %d minutes (estimated %d)\n", t.ActualMinutes(), t.Estimate().Minutes())
		return nil
	},
}

func init() {
	completeCmd.Flags().IntVarP(&completeMinutes, "minutes", "m", 0, "actual minutes spent (0 = use elapsed time)")
}
