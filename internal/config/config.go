package config

import (
	"fmt"
	"time"

	"github.com/soltixdb/forecastd/internal/analytics/forecast"
)

// Config represents the complete application configuration
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	MCP      MCPConfig      `mapstructure:"mcp"`
	Queue    QueueConfig    `mapstructure:"queue"`
	Forecast ForecastConfig `mapstructure:"forecast"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// ServerConfig represents HTTP and gRPC listener configuration
type ServerConfig struct {
	Host       string `mapstructure:"host"` // Bind address (e.g., 0.0.0.0 for all interfaces)
	HTTPPort   int    `mapstructure:"http_port"`
	GRPCPort   int    `mapstructure:"grpc_port"`
	EnableHTTP bool   `mapstructure:"enable_http"`
	EnableGRPC bool   `mapstructure:"enable_grpc"`
}

// MCPConfig represents the stdio tool server identity
type MCPConfig struct {
	Name    string `mapstructure:"name"`
	Version string `mapstructure:"version"`
}

// QueueConfig represents NATS request/reply configuration
type QueueConfig struct {
	Enabled       bool   `mapstructure:"enabled"`
	URL           string `mapstructure:"url"`
	SubjectPrefix string `mapstructure:"subject_prefix"` // Subjects are <prefix>.forecast_data and <prefix>.explain_methods
	QueueGroup    string `mapstructure:"queue_group"`    // Responders in the same group share requests
}

// ForecastConfig holds the estimator constants and the per-call deadline
type ForecastConfig struct {
	Alpha      float64       `mapstructure:"alpha"`
	Decay      float64       `mapstructure:"decay"`
	WindowSize int           `mapstructure:"window_size"`
	Degree     int           `mapstructure:"degree"`
	Timeout    time.Duration `mapstructure:"timeout"`
}

// AuthConfig represents authentication configuration
type AuthConfig struct {
	Enabled bool     `mapstructure:"enabled"`  // Enable/disable API key authentication
	APIKeys []string `mapstructure:"api_keys"` // List of valid API keys
}

// LoggingConfig represents logging configuration
type LoggingConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	OutputPath string `mapstructure:"output_path"` // stdout, stderr or a file path
	TimeFormat string `mapstructure:"time_format"`
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if err := c.Server.Validate(); err != nil {
		return fmt.Errorf("server config: %w", err)
	}

	if err := c.MCP.Validate(); err != nil {
		return fmt.Errorf("mcp config: %w", err)
	}

	if err := c.Queue.Validate(); err != nil {
		return fmt.Errorf("queue config: %w", err)
	}

	if err := c.Forecast.Validate(); err != nil {
		return fmt.Errorf("forecast config: %w", err)
	}

	if err := c.Auth.Validate(); err != nil {
		return fmt.Errorf("auth config: %w", err)
	}

	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("logging config: %w", err)
	}

	return nil
}

// Validate validates server configuration
func (c *ServerConfig) Validate() error {
	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		return fmt.Errorf("invalid http_port: %d", c.HTTPPort)
	}

	if c.GRPCPort < 1 || c.GRPCPort > 65535 {
		return fmt.Errorf("invalid grpc_port: %d", c.GRPCPort)
	}

	if c.HTTPPort == c.GRPCPort {
		return fmt.Errorf("http_port and grpc_port cannot be the same")
	}

	return nil
}

// Validate validates MCP configuration
func (c *MCPConfig) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("mcp.name is required")
	}
	return nil
}

// Validate validates queue configuration
func (c *QueueConfig) Validate() error {
	if !c.Enabled {
		return nil
	}

	if c.URL == "" {
		return fmt.Errorf("queue.url is required when the queue is enabled")
	}

	if c.SubjectPrefix == "" {
		return fmt.Errorf("queue.subject_prefix is required when the queue is enabled")
	}

	return nil
}

// Validate validates forecast configuration
func (c *ForecastConfig) Validate() error {
	if err := c.EngineConfig().Validate(); err != nil {
		return err
	}

	if c.Timeout < 0 {
		return fmt.Errorf("forecast.timeout cannot be negative")
	}

	return nil
}

// EngineConfig converts the settings into estimator configuration
func (c *ForecastConfig) EngineConfig() forecast.Config {
	return forecast.Config{
		Alpha:      c.Alpha,
		Decay:      c.Decay,
		WindowSize: c.WindowSize,
		Degree:     c.Degree,
	}
}

// Validate validates auth configuration
func (c *AuthConfig) Validate() error {
	if c.Enabled && len(c.APIKeys) == 0 {
		return fmt.Errorf("auth.api_keys is required when auth is enabled")
	}
	return nil
}

// Validate validates logging configuration
func (c *LoggingConfig) Validate() error {
	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}

	if !validLevels[c.Level] {
		return fmt.Errorf("logging.level must be one of: debug, info, warn, error")
	}

	validFormats := map[string]bool{
		"json":    true,
		"console": true,
	}

	if !validFormats[c.Format] {
		return fmt.Errorf("logging.format must be 'json' or 'console'")
	}

	return nil
}
