package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/soltixdb/forecastd/internal/config"
	forecastgrpc "github.com/soltixdb/forecastd/internal/grpc"
	"github.com/soltixdb/forecastd/internal/logging"
	"github.com/soltixdb/forecastd/internal/metrics"
	"github.com/soltixdb/forecastd/internal/queue"
	"github.com/soltixdb/forecastd/internal/router"
	"github.com/soltixdb/forecastd/internal/subscriber"
	"github.com/soltixdb/forecastd/internal/utils"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve forecasts over HTTP, gRPC and NATS",
		Long: `Start the network transports enabled in the configuration:

- HTTP on server.http_port (POST/GET /v1/forecast, GET /v1/methods, /health, /metrics)
- gRPC on server.grpc_port (forecastd.v1.ForecastService)
- NATS request/reply on <queue.subject_prefix>.forecast_data and .explain_methods

Stops gracefully on SIGINT or SIGTERM.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			logger, err := newLogger(cfg, false)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return runServe(ctx, cfg, logger)
		},
	}
}

func runServe(ctx context.Context, cfg *config.Config, logger *logging.Logger) error {
	if !cfg.Server.EnableHTTP && !cfg.Server.EnableGRPC && !cfg.Queue.Enabled {
		return errors.New("nothing to serve: enable http, grpc or the queue")
	}

	logger.Info("forecastd starting",
		"version", Version, "commit", GitCommit, "build time", BuildTime)

	if cfg.Auth.Enabled {
		logger.Info("API key authentication enabled", "num_keys", len(cfg.Auth.APIKeys))
	} else {
		logger.Warn("API key authentication DISABLED - all requests will be allowed")
	}

	m := metrics.New()
	svc := newService(cfg, logger, m)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// NATS responder
	if cfg.Queue.Enabled {
		logger.Info("Connecting to Queue", "url", cfg.Queue.URL)
		q, err := queue.NewQueue(cfg.Queue)
		if err != nil {
			return err
		}
		defer func() { _ = q.Close() }()

		responder := subscriber.NewResponder(q, svc, cfg.Queue, logger)
		if err := responder.Start(); err != nil {
			return err
		}
		defer func() { _ = responder.Stop() }()
	}

	// gRPC server
	grpcDone := make(chan struct{})
	if cfg.Server.EnableGRPC {
		grpcServer := forecastgrpc.NewForecastServer(cfg.GetGRPCAddress(), svc, cfg.Auth, logger)
		go func() {
			defer close(grpcDone)
			if err := grpcServer.Start(ctx); err != nil {
				logger.Error("Failed to start gRPC server", "error", err)
				cancel()
			}
		}()
	} else {
		close(grpcDone)
	}

	// HTTP server
	app := router.New(logger, svc, m, *cfg)
	if cfg.Server.EnableHTTP {
		go func() {
			addr := cfg.GetServerAddress()
			logger.Info("Server listening", "address", addr)
			if err := app.Listen(addr); err != nil {
				logger.Error("Failed to start server", "error", err)
				cancel()
			}
		}()
	}

	<-ctx.Done()
	logger.Info("Shutting down server...")

	if cfg.Server.EnableHTTP {
		if err := app.ShutdownWithTimeout(utils.ShutdownTimeout); err != nil {
			logger.Error("Server forced to shutdown", "error", err)
		}
	}
	<-grpcDone

	logger.Info("Server exited")
	return nil
}
