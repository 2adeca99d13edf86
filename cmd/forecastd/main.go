// Package main implements the forecastd command: the tool servers and a one-shot CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/soltixdb/forecastd/internal/config"
	"github.com/soltixdb/forecastd/internal/logging"
	"github.com/soltixdb/forecastd/internal/metrics"
	"github.com/soltixdb/forecastd/internal/services"
)

var (
	Version   = "dev"     // Injected via ldflags during build
	GitCommit = "unknown" // Injected via ldflags during build
	BuildTime = "unknown" // Injected via ldflags during build
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// rootOptions holds flags shared by every subcommand
type rootOptions struct {
	configPath string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "forecastd",
		Short: "Time series forecasting over MCP, HTTP, gRPC and NATS",
		Long: `forecastd projects future values of a numeric series using linear regression,
moving average, damped exponential smoothing, polynomial regression or an AR(1) model.

Examples:
  # Serve HTTP, gRPC and (if enabled) NATS
  forecastd serve --config config.yaml

  # Serve the MCP tools over stdio
  forecastd mcp

  # One-shot forecast
  forecastd forecast --data "100 200 300" --periods 3 --method linear`,
		Version:       fmt.Sprintf("%s (commit %s, built %s)", Version, GitCommit, BuildTime),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "Path to configuration file")

	cmd.AddCommand(newServeCmd(opts))
	cmd.AddCommand(newMCPCmd(opts))
	cmd.AddCommand(newForecastCmd(opts))
	cmd.AddCommand(newMethodsCmd(opts))

	return cmd
}

func (o *rootOptions) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// newLogger builds the configured logger. stdio transports reserve stdout.
func newLogger(cfg *config.Config, stdoutReserved bool) (*logging.Logger, error) {
	logger, err := logging.NewFromConfig(cfg.Logging, stdoutReserved)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	logging.SetGlobal(logger)
	return logger, nil
}

func newService(cfg *config.Config, logger *logging.Logger, m *metrics.Metrics) *services.ForecastService {
	return services.NewForecastService(logger, cfg.Forecast.EngineConfig(), cfg.Forecast.Timeout, m)
}
