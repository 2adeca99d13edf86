package grpc

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/metadata"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/soltixdb/forecastd/internal/models"
	"github.com/soltixdb/forecastd/internal/utils"
)

// Client calls a remote forecast service
type Client struct {
	conn    *grpc.ClientConn
	apiKey  string
	timeout time.Duration
}

// NewClient creates a client for address. Extra dial options are appended after
// the defaults, so tests can substitute a dialer.
func NewClient(address, apiKey string, opts ...grpc.DialOption) (*Client, error) {
	dialOpts := []grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithDefaultCallOptions(
			grpc.MaxCallRecvMsgSize(maxMessageSize),
			grpc.MaxCallSendMsgSize(maxMessageSize),
		),
	}
	dialOpts = append(dialOpts, opts...)

	conn, err := grpc.NewClient(address, dialOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create gRPC connection: %w", err)
	}

	return &Client{
		conn:    conn,
		apiKey:  apiKey,
		timeout: utils.GRPCRequestTimeout,
	}, nil
}

// Forecast runs forecast_data remotely
func (c *Client) Forecast(ctx context.Context, req *models.ForecastRequest) (*models.ForecastResponse, error) {
	in, err := structpb.NewStruct(map[string]interface{}{
		"data":    req.Data,
		"periods": req.Periods,
		"method":  req.Method,
	})
	if err != nil {
		return nil, err
	}

	var out models.ForecastResponse
	if err := c.call(ctx, ForecastMethod, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ExplainMethods runs explain_methods remotely
func (c *Client) ExplainMethods(ctx context.Context) (*models.MethodsResponse, error) {
	var out models.MethodsResponse
	if err := c.call(ctx, ExplainMethodsMethod, &structpb.Struct{}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Health reports whether the remote forecast service is serving
func (c *Client) Health(ctx context.Context) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := healthpb.NewHealthClient(c.conn).Check(ctx, &healthpb.HealthCheckRequest{Service: ServiceName})
	if err != nil {
		return false, err
	}
	return resp.GetStatus() == healthpb.HealthCheckResponse_SERVING, nil
}

// Close closes the underlying connection
func (c *Client) Close() error {
	return c.conn.Close()
}

func (c *Client) call(ctx context.Context, method string, in *structpb.Struct, out interface{}) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	if c.apiKey != "" {
		ctx = metadata.AppendToOutgoingContext(ctx, APIKeyMetadata, c.apiKey)
	}

	reply := &structpb.Struct{}
	if err := c.conn.Invoke(ctx, method, in, reply); err != nil {
		return err
	}

	b, err := protojson.Marshal(reply)
	if err != nil {
		return fmt.Errorf("failed to decode reply: %w", err)
	}
	if err := json.Unmarshal(b, out); err != nil {
		return fmt.Errorf("failed to decode reply: %w", err)
	}
	return nil
}
