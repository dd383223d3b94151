package task

import (
	"fmt"
	"os"

	"github.com/cadencehq/cadence/adapter/cli"
	"github.com/cadencehq/cadence/internal/tasks/application/queries"
	"github.com/spf13/cobra"
)

var (
	exportFormat string
	exportStatus string
	exportOutput string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export your tasks",
	Long: `Export tasks as JSON or CSV, to stdout or a file.

Examples:
  cadence task export
  cadence task export --format csv -o tasks.csv
  cadence task export --status completed`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, userID, err := cli.Resolve()
		if err != nil {
			return err
		}

		format, err := queries.ParseExportFormat(exportFormat)
		if err != nil {
			return err
		}

		out := os.Stdout
		if exportOutput != "" {
			f, err := os.Create(exportOutput)
			if err != nil {
				return fmt.Errorf("failed to create output file: %w", err)
			}
			defer f.Close()
			out = f
		}

		if err := c.ExportTasksHandler.Handle(cmd.Context(), queries.ExportTasksQuery{
			UserID: userID,
			Format: format,
			Status: exportStatus,
		}, out); err != nil {
			return fmt.Errorf("failed to export tasks: %w", err)
		}

		if exportOutput != "" {
			fmt.Printf("Tasks exported to %s\n", exportOutput)
		}
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "json", "export format (json, csv)")
	exportCmd.Flags().StringVarP(&exportStatus, "status", "s", "", "filter by status")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file (defaults to stdout)")
}
