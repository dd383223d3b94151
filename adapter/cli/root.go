// Package cli wires the cobra command tree onto the application container.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/cadencehq/cadence/internal/app"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var logger *slog.Logger

type commandContext struct {
	correlationID uuid.UUID
	startedAt     time.Time
}

type commandContextKey struct{}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "cadence",
	Short: "Cadence - workflow pattern analyzer",
	Long: `Cadence tracks your task history and turns it into productivity,
procrastination and consistency insights.

Record tasks as you work, then ask for an analysis over the last day,
week or month.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if logger == nil {
			logger = slog.Default()
		}
		ctx := cmd.Context()
		info := commandContext{
			correlationID: uuid.New(),
			startedAt:     time.Now(),
		}
		cmd.SetContext(context.WithValue(ctx, commandContextKey{}, info))
		logger.Info("command start",
			"command", cmd.CommandPath(),
			"correlation_id", info.correlationID.String(),
		)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger == nil {
			logger = slog.Default()
		}
		info, ok := cmd.Context().Value(commandContextKey{}).(commandContext)
		if !ok {
			return
		}
		logger.Info("command end",
			"command", cmd.CommandPath(),
			"correlation_id", info.correlationID.String(),
			"duration_ms", time.Since(info.startedAt).Milliseconds(),
		)
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// AddCommand adds a command to the root command.
func AddCommand(cmd *cobra.Command) {
	rootCmd.AddCommand(cmd)
}

// SetLogger sets the CLI logger.
func SetLogger(l *slog.Logger) {
	logger = l
}

// container is the global application instance the commands resolve against.
var container *app.Container

// SetContainer sets the global application container.
func SetContainer(c *app.Container) {
	container = c
}

// GetContainer returns the global application container.
func GetContainer() *app.Container {
	return container
}

// Resolve returns the container and the configured user identity, failing
// when the application has not been wired yet.
func Resolve() (*app.Container, uuid.UUID, error) {
	if container == nil {
		return nil, uuid.Nil, fmt.Errorf("application not initialized - database connection required")
	}
	userID, err := container.UserID()
	if err != nil {
		return nil, uuid.Nil, err
	}
	return container, userID, nil
}
