package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"google.golang.org/grpc/status"

	forecastgrpc "github.com/soltixdb/forecastd/internal/grpc"
	"github.com/soltixdb/forecastd/internal/models"
	"github.com/soltixdb/forecastd/internal/queue"
	"github.com/soltixdb/forecastd/internal/services"
	"github.com/soltixdb/forecastd/internal/subscriber"
)

// clientOptions selects where one-shot commands run
type clientOptions struct {
	grpcAddr string
	natsURL  string
	apiKey   string
	asJSON   bool
}

func (o *clientOptions) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.grpcAddr, "grpc", "", "Call a remote gRPC server at host:port instead of computing locally")
	cmd.Flags().StringVar(&o.natsURL, "nats", "", "Call remote responders over NATS at this URL instead of computing locally")
	cmd.Flags().StringVar(&o.apiKey, "api-key", "", "API key sent to the gRPC server")
	cmd.Flags().BoolVar(&o.asJSON, "json", false, "Print the JSON response instead of the text report")
	cmd.MarkFlagsMutuallyExclusive("grpc", "nats")
}

// backend runs the two operations; errors carry the user-facing message
type backend interface {
	Forecast(ctx context.Context, req *models.ForecastRequest) (*models.ForecastResponse, error)
	ExplainMethods(ctx context.Context) (*models.MethodsResponse, error)
	Close() error
}

func newForecastCmd(root *rootOptions) *cobra.Command {
	var (
		req  models.ForecastRequest
		opts clientOptions
	)

	cmd := &cobra.Command{
		Use:   "forecast",
		Short: "Forecast future values of a series",
		Long: `Forecast future values of a numeric series and print the report.

Examples:
  forecastd forecast --data "[100, 200, 300]" --periods 5 --method linear
  forecastd forecast --data "50 55 60 58 65" --periods 6 --method exponential_smoothing --json
  forecastd forecast --data "1 3 2 5 4 6" --periods 3 --method ar --grpc localhost:5556`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			b, err := opts.backend(root)
			if err != nil {
				return err
			}
			defer func() { _ = b.Close() }()

			resp, err := b.Forecast(cmd.Context(), &req)
			if err != nil {
				return err
			}

			if opts.asJSON {
				return writeJSON(cmd.OutOrStdout(), resp)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), resp.Report)
			return err
		},
	}

	cmd.Flags().StringVar(&req.Data, "data", "", "Series of numbers, e.g. \"100 200 300\" or \"[100, 200, 300]\"")
	cmd.Flags().StringVar(&req.Periods, "periods", "", "Number of periods to forecast (1-100)")
	cmd.Flags().StringVar(&req.Method, "method", "linear", "linear, moving_average, exponential_smoothing, polynomial or simple_arima")
	_ = cmd.MarkFlagRequired("data")
	_ = cmd.MarkFlagRequired("periods")
	opts.register(cmd)

	return cmd
}

func newMethodsCmd(root *rootOptions) *cobra.Command {
	var opts clientOptions

	cmd := &cobra.Command{
		Use:   "methods",
		Short: "Explain the available forecasting methods",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			b, err := opts.backend(root)
			if err != nil {
				return err
			}
			defer func() { _ = b.Close() }()

			resp, err := b.ExplainMethods(cmd.Context())
			if err != nil {
				return err
			}

			if opts.asJSON {
				return writeJSON(cmd.OutOrStdout(), resp)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), resp.Guide)
			return err
		},
	}

	opts.register(cmd)

	return cmd
}

func (o *clientOptions) backend(root *rootOptions) (backend, error) {
	switch {
	case o.grpcAddr != "":
		client, err := forecastgrpc.NewClient(o.grpcAddr, o.apiKey)
		if err != nil {
			return nil, err
		}
		return &grpcBackend{client: client}, nil

	case o.natsURL != "":
		cfg, err := root.loadConfig()
		if err != nil {
			return nil, err
		}
		cfg.Queue.URL = o.natsURL
		q, err := queue.NewRequester(cfg.Queue)
		if err != nil {
			return nil, err
		}
		return &natsBackend{
			client: subscriber.NewClient(q, cfg.Queue, cfg.Forecast.Timeout),
			queue:  q,
		}, nil

	default:
		cfg, err := root.loadConfig()
		if err != nil {
			return nil, err
		}
		logger, err := newLogger(cfg, true)
		if err != nil {
			return nil, err
		}
		return &localBackend{service: newService(cfg, logger, nil)}, nil
	}
}

type localBackend struct {
	service *services.ForecastService
}

func (b *localBackend) Forecast(ctx context.Context, req *models.ForecastRequest) (*models.ForecastResponse, error) {
	resp, err := b.service.Forecast(ctx, req, services.TransportCLI)
	if err != nil {
		return nil, errors.New(services.UserMessage(err))
	}
	return models.NewForecastResponse(resp, services.RenderReport(resp)), nil
}

func (b *localBackend) ExplainMethods(context.Context) (*models.MethodsResponse, error) {
	return b.service.ExplainMethods(), nil
}

func (b *localBackend) Close() error { return nil }

type grpcBackend struct {
	client *forecastgrpc.Client
}

func (b *grpcBackend) Forecast(ctx context.Context, req *models.ForecastRequest) (*models.ForecastResponse, error) {
	resp, err := b.client.Forecast(ctx, req)
	if err != nil {
		return nil, errors.New(status.Convert(err).Message())
	}
	return resp, nil
}

func (b *grpcBackend) ExplainMethods(ctx context.Context) (*models.MethodsResponse, error) {
	return b.client.ExplainMethods(ctx)
}

func (b *grpcBackend) Close() error { return b.client.Close() }

type natsBackend struct {
	client *subscriber.Client
	queue  queue.Requester
}

func (b *natsBackend) Forecast(ctx context.Context, req *models.ForecastRequest) (*models.ForecastResponse, error) {
	reply, err := b.client.Forecast(ctx, req)
	if err != nil {
		return nil, err
	}
	if !reply.OK || reply.Forecast == nil {
		return nil, errors.New(reply.Text)
	}
	return reply.Forecast, nil
}

func (b *natsBackend) ExplainMethods(ctx context.Context) (*models.MethodsResponse, error) {
	reply, err := b.client.ExplainMethods(ctx)
	if err != nil {
		return nil, err
	}
	if !reply.OK || reply.Methods == nil {
		return nil, errors.New(reply.Text)
	}
	return reply.Methods, nil
}

func (b *natsBackend) Close() error { return b.queue.Close() }

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
