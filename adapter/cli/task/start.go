package task

import (
	"fmt"

	"github.com/cadencehq/cadence/adapter/cli"
	"github.com/cadencehq/cadence/internal/tasks/application/commands"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var startCmd = &cobra.Command{
	Use:   "start [task-id]",
	Short: "Start working on a task",
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

		if err := c.StartTaskHandler.Handle(cmd.Context(), commands.StartTaskCommand{
			TaskID: taskID,
			UserID: userID,
		}); err != nil {
			return fmt.Errorf("failed to start task: %w", err)
		}

		fmt.Printf("Task started: %s\n", taskID)
		return nil
	},
}
