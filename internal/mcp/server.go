// Package mcp exposes the forecasting operations as MCP tools over stdio.
package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/soltixdb/forecastd/internal/logging"
	"github.com/soltixdb/forecastd/internal/services"
)

// Tool names
const (
	ToolForecastData   = "forecast_data"
	ToolExplainMethods = "explain_methods"
)

// Server wraps an MCP server bound to a ForecastService
type Server struct {
	mcp     *mcp.Server
	service *services.ForecastService
	logger  *logging.Logger
}

// Config configures the MCP server
type Config struct {
	// Name is the server implementation name (default: "forecasting-calculator")
	Name string

	// Version is the server version (default: "1.0.0")
	Version string

	// Logger must not write to stdout when serving over stdio
	Logger *logging.Logger
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Name:    "forecasting-calculator",
		Version: "1.0.0",
		Logger:  logging.NewNop(),
	}
}

// NewServer creates an MCP server and registers the forecasting tools
func NewServer(cfg *Config, service *services.ForecastService) (*Server, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if service == nil {
		return nil, fmt.Errorf("forecast service is required")
	}
	if cfg.Logger == nil {
		cfg.Logger = logging.NewNop()
	}

	s := &Server{
		mcp: mcp.NewServer(
			&mcp.Implementation{
				Name:    cfg.Name,
				Version: cfg.Version,
			},
			nil,
		),
		service: service,
		logger:  cfg.Logger,
	}
	s.registerTools()

	return s, nil
}

// MCP returns the underlying SDK server
func (s *Server) MCP() *mcp.Server {
	return s.mcp
}

// Run serves on the stdio transport until the client disconnects or ctx is cancelled
func (s *Server) Run(ctx context.Context) error {
	s.logger.Info("Starting MCP server on stdio transport")
	if err := s.mcp.Run(ctx, &mcp.StdioTransport{}); err != nil {
		return fmt.Errorf("server run failed: %w", err)
	}
	return nil
}
