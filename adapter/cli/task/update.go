package task

import (
	"fmt"
	"time"

	"github.com/cadencehq/cadence/adapter/cli"
	"github.com/cadencehq/cadence/internal/tasks/application/commands"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var (
	updateTitle       string
	updateDescription string
	updatePriority    string
	updateDuration    int
	updateDue         string
	updateClearDue    bool
	updateTags        []string
)

var updateCmd = &cobra.Command{
	Use:   "update [task-id]",
	Short: "Update a task",
	Long: `Update the properties of an existing task. Only the flags you pass
are changed.

Examples:
  cadence task update 7f3c... --priority high
  cadence task update 7f3c... --due 2026-09-20
  cadence task update 7f3c... --clear-due`,
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

		updateCmd := commands.UpdateTaskCommand{
			TaskID:       taskID,
			UserID:       userID,
			Tags:         updateTags,
			ClearDueDate: updateClearDue,
		}
		if cmd.Flags().Changed("title") {
			updateCmd.Title = &updateTitle
		}
		if cmd.Flags().Changed("description") {
			updateCmd.Description = &updateDescription
		}
		if cmd.Flags().Changed("priority") {
			updateCmd.Priority = &updatePriority
		}
		if cmd.Flags().Changed("duration") {
			updateCmd.EstimatedMinutes = &updateDuration
		}
		if updateDue != "" {
			parsed, err := time.Parse("2006-01-02", updateDue)
			if err != nil {
				return fmt.Errorf("invalid due date format (use YYYY-MM-DD): %w", err)
			}
			updateCmd.DueDate = &parsed
		}

		t, err := c.UpdateTaskHandler.Handle(cmd.Context(), updateCmd)
		if err != nil {
			return fmt.Errorf("failed to update task: %w", err)
		}

		fmt.Printf("Task updated: %s\n", t.ID())
		fmt.Printf("  title: %s | priority: %s | status: %s\n", t.Title(), t.Priority(), t.Status())
		return nil
	},
}

func init() {
	updateCmd.Flags().StringVar(&updateTitle, "title", "", "new title")
	updateCmd.Flags().StringVar(&updateDescription, "description", "", "new description")
	updateCmd.Flags().StringVarP(&updatePriority, "priority", "p", "", "new priority (low, medium, high, critical)")
	updateCmd.Flags().IntVarP(&updateDuration, "duration", "d", 0, "new estimated duration in minutes")
	updateCmd.Flags().StringVar(&updateDue, "due", "", "new due date (YYYY-MM-DD)")
	updateCmd.Flags().BoolVar(&updateClearDue, "clear-due", false, "remove the due date")
	updateCmd.Flags().StringSliceVar(&updateTags, "tag", nil, "replace tags (repeatable)")
}
