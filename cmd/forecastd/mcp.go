package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	forecastmcp "github.com/soltixdb/forecastd/internal/mcp"
)

func newMCPCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve the forecasting tools over MCP stdio",
		Long: `Serve forecast_data and explain_methods as MCP tools on stdin/stdout.

Logs go to stderr or the configured file; stdout carries only protocol messages.

Examples:
  forecastd mcp
  forecastd mcp --config /etc/forecastd/config.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			logger, err := newLogger(cfg, true)
			if err != nil {
				return err
			}

			server, err := forecastmcp.NewServer(&forecastmcp.Config{
				Name:    cfg.MCP.Name,
				Version: cfg.MCP.Version,
				Logger:  logger,
			}, newService(cfg, logger, nil))
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			logger.Info("MCP server starting", "name", cfg.MCP.Name, "version", cfg.MCP.Version)
			return server.Run(ctx)
		},
	}
}
