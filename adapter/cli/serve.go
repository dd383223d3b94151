package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/cadencehq/cadence/adapter/api"
	"github.com/spf13/cobra"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the workflow API",
	Long: `Run the JSON API server exposing the analyze, recommend and log
actions on POST /api/v1/workflow.

Examples:
  cadence serve
  cadence serve --addr 127.0.0.1:9090`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, _, err := Resolve()
		if err != nil {
			return err
		}

		cfg := api.DefaultServerConfig()
		cfg.Addr = c.Config.APIAddr
		if serveAddr != "" {
			cfg.Addr = serveAddr
		}

		handler := api.NewWorkflowHandler(
			c.AnalyzePatternsHandler,
			c.GetRecommendationsHandler,
			c.RecordEventHandler,
			c.Logger,
		)
		server := api.NewServer(cfg, handler, c.Logger)

		go func() {
			<-cmd.Context().Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := server.Shutdown(shutdownCtx); err != nil {
				c.Logger.Warn("server shutdown error", "error", err)
			}
		}()

		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (defaults to CADENCE_API_ADDR)")
	AddCommand(serveCmd)
}
