package task

import (
	"fmt"

	"github.com/cadencehq/cadence/adapter/cli"
	"github.com/cadencehq/cadence/internal/tasks/application/commands"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var cancelCmd = &cobra.Command{
	Use:   "cancel [task-id]",
	Short: "Cancel a task",
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

		if err := c.CancelTaskHandler.Handle(cmd.Context(), commands.CancelTaskCommand{
			TaskID: taskID,
			UserID: userID,
		}); err != nil {
			return fmt.Errorf("failed to cancel task: %w", err)
		}

		fmt.Printf("Task cancelled: %s\n", taskID)
		return nil
	},
}
