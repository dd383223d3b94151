package task

import (
	"fmt"
	"time"

	"github.com/cadencehq/cadence/adapter/cli"
	"github.com/cadencehq/cadence/internal/tasks/application/commands"
	"github.com/spf13/cobra"
)

var (
	createPriority    string
	createDuration    int
	createDescription string
	createDue         string
	createTags        []string
)

var createCmd = &cobra.Command{
	Use:   "create [title]",
	Short: "Create a new task",
	Long: `Create a new task with a title and optional properties.

Examples:
  cadence task create "Complete project report"
  cadence task create "Review PR" -p high -d 30
  cadence task create "Write docs" --priority medium --duration 60 --due 2026-09-15`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, userID, err := cli.Resolve()
		if err != nil {
			return err
		}

		createCmd := commands.CreateTaskCommand{
			UserID:           userID,
			Title:            args[0],
			Description:      createDescription,
			Priority:         createPriority,
			EstimatedMinutes: createDuration,
			Tags:             createTags,
		}

		if createDue != "" {
			parsed, err := time.Parse("2006-01-02", createDue)
			if err != nil {
				return fmt.Errorf("invalid due date format (use YYYY-MM-DD): %w", err)
			}
			createCmd.DueDate = &parsed
		}

		result, err := c.CreateTaskHandler.Handle(cmd.Context(), createCmd)
		if err != nil {
			return fmt.Errorf("failed to create task: %w", err)
		}

		fmt.Printf("Task created: %s\n", result.ID())
		fmt.Printf("  title: %s\n", result.Title())
		fmt.Printf("  priority: %s\n", result.Priority())
		fmt.Printf("  estimate: %d minutes\n", result.Estimate().Minutes())
		if d := result.DueDate(); d != nil {
			fmt.Printf("  due: %s\n", d.Format("2006-01-02"))
		}

		return nil
	},
}

func init() {
	createCmd.Flags().StringVarP(&createPriority, "priority", "p", "medium", "task priority (low, medium, high, critical)")
	createCmd.Flags().IntVarP(&createDuration, "duration", "d", 30, "estimated duration in minutes")
	createCmd.Flags().StringVar(&createDescription, "description", "", "task description")
	createCmd.Flags().StringVar(&createDue, "due", "", "due date (YYYY-MM-DD)")
	createCmd.Flags().StringSliceVar(&createTags, "tag", nil, "task tag (repeatable)")
}
