package grpc

import (
	"context"
	"fmt"
	"net"
	"strings"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/soltixdb/forecastd/internal/config"
	"github.com/soltixdb/forecastd/internal/logging"
	"github.com/soltixdb/forecastd/internal/services"
)

// APIKeyMetadata is the metadata key carrying the caller's API key
const APIKeyMetadata = "x-api-key"

const maxMessageSize = 1024 * 1024 * 4 // 4MB

// ForecastServer represents the forecast gRPC server
type ForecastServer struct {
	address    string
	grpcServer *grpc.Server
	health     *health.Server
	logger     *logging.Logger
	auth       config.AuthConfig

	// Service handlers
	forecastHandler *ForecastServiceHandler
}

// NewForecastServer creates a new forecast gRPC server instance
func NewForecastServer(
	address string,
	service *services.ForecastService,
	auth config.AuthConfig,
	logger *logging.Logger,
) *ForecastServer {
	if logger == nil {
		logger = logging.NewNop()
	}
	logger = logger.With("component", "grpc")

	return &ForecastServer{
		address:         address,
		logger:          logger,
		auth:            auth,
		forecastHandler: NewForecastServiceHandler(service, logger),
	}
}

func (s *ForecastServer) build() {
	if s.grpcServer != nil {
		return
	}

	opts := []grpc.ServerOption{
		grpc.MaxRecvMsgSize(maxMessageSize),
		grpc.MaxSendMsgSize(maxMessageSize),
		grpc.ChainUnaryInterceptor(s.loggingInterceptor, s.authInterceptor),
	}

	s.grpcServer = grpc.NewServer(opts...)

	RegisterForecastServiceServer(s.grpcServer, s.forecastHandler)

	s.health = health.NewServer()
	s.health.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(s.grpcServer, s.health)

	s.logger.Info("Registered ForecastService with gRPC server")
}

// Start listens on the configured address and serves until ctx is cancelled
func (s *ForecastServer) Start(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.address)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.address, err)
	}

	s.build()
	s.logger.Info("gRPC server starting", "address", s.address)

	go func() {
		if err := s.Serve(listener); err != nil {
			s.logger.Error("gRPC server error", "error", err)
		}
	}()

	<-ctx.Done()
	s.logger.Info("Shutting down gRPC server")
	s.Stop()

	return nil
}

// Serve serves on an existing listener and blocks until the server stops
func (s *ForecastServer) Serve(listener net.Listener) error {
	s.build()
	return s.grpcServer.Serve(listener)
}

// Stop stops the gRPC server gracefully
func (s *ForecastServer) Stop() {
	if s.grpcServer != nil {
		s.logger.Info("Stopping gRPC server")
		if s.health != nil {
			s.health.Shutdown()
		}
		s.grpcServer.GracefulStop()
	}
}

// authInterceptor rejects calls without a configured API key. Health checks
// are always allowed.
func (s *ForecastServer) authInterceptor(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
	if !s.auth.Enabled || strings.HasPrefix(info.FullMethod, "/grpc.health.v1.Health/") {
		return handler(ctx, req)
	}

	key := apiKeyFromMetadata(ctx)
	if key == "" {
		return nil, status.Error(codes.Unauthenticated, "API key required")
	}
	if !s.auth.HasAPIKey(key) {
		s.logger.Warn("Invalid API key", "method", info.FullMethod)
		return nil, status.Error(codes.Unauthenticated, "invalid API key")
	}

	return handler(ctx, req)
}

func (s *ForecastServer) loggingInterceptor(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
	start := time.Now()
	resp, err := handler(ctx, req)

	code := status.Code(err)
	fields := []interface{}{
		"method", info.FullMethod,
		"code", code.String(),
		"duration_ms", time.Since(start).Milliseconds(),
	}
	if code == codes.Internal || code == codes.Unknown {
		s.logger.Error("gRPC call failed", append(fields, "error", err)...)
	} else {
		s.logger.Debug("gRPC call", fields...)
	}

	return resp, err
}

func apiKeyFromMetadata(ctx context.Context) string {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return ""
	}
	if values := md.Get(APIKeyMetadata); len(values) > 0 {
		return values[0]
	}
	if values := md.Get("authorization"); len(values) > 0 {
		return strings.TrimPrefix(values[0], "Bearer ")
	}
	return ""
}
