package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of environment overrides, e.g. FORECASTD_FORECAST_ALPHA
const EnvPrefix = "FORECASTD"

// Load loads configuration from file
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Set config file
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		// Default config locations
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		v.AddConfigPath("/etc/forecastd")
	}

	setDefaults(v)

	// Nested keys map to FORECASTD_<SECTION>_<KEY>
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			// Config file not found; use defaults
			return parseConfig(v)
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	return parseConfig(v)
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	def := DefaultConfig()

	v.SetDefault("server.host", def.Server.Host)
	v.SetDefault("server.http_port", def.Server.HTTPPort)
	v.SetDefault("server.grpc_port", def.Server.GRPCPort)
	v.SetDefault("server.enable_http", def.Server.EnableHTTP)
	v.SetDefault("server.enable_grpc", def.Server.EnableGRPC)

	v.SetDefault("mcp.name", def.MCP.Name)
	v.SetDefault("mcp.version", def.MCP.Version)

	v.SetDefault("queue.enabled", def.Queue.Enabled)
	v.SetDefault("queue.url", def.Queue.URL)
	v.SetDefault("queue.subject_prefix", def.Queue.SubjectPrefix)
	v.SetDefault("queue.queue_group", def.Queue.QueueGroup)

	v.SetDefault("forecast.alpha", def.Forecast.Alpha)
	v.SetDefault("forecast.decay", def.Forecast.Decay)
	v.SetDefault("forecast.window_size", def.Forecast.WindowSize)
	v.SetDefault("forecast.degree", def.Forecast.Degree)
	v.SetDefault("forecast.timeout", def.Forecast.Timeout.String())

	v.SetDefault("auth.enabled", def.Auth.Enabled)
	v.SetDefault("auth.api_keys", def.Auth.APIKeys)

	v.SetDefault("logging.level", def.Logging.Level)
	v.SetDefault("logging.format", def.Logging.Format)
	v.SetDefault("logging.output_path", def.Logging.OutputPath)
	v.SetDefault("logging.time_format", def.Logging.TimeFormat)
}

// parseConfig parses viper config into Config struct
func parseConfig(v *viper.Viper) (*Config, error) {
	var cfg Config

	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// LoadOrDefault loads configuration from file or returns default config
func LoadOrDefault(configPath string) *Config {
	cfg, err := Load(configPath)
	if err != nil {
		return DefaultConfig()
	}
	return cfg
}

// DefaultConfig returns default configuration
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:       "0.0.0.0",
			HTTPPort:   5555,
			GRPCPort:   5556,
			EnableHTTP: true,
			EnableGRPC: true,
		},
		MCP: MCPConfig{
			Name:    "forecasting-calculator",
			Version: "1.0.0",
		},
		Queue: QueueConfig{
			Enabled:       false,
			URL:           "nats://localhost:4222",
			SubjectPrefix: "forecastd",
			QueueGroup:    "forecastd-workers",
		},
		Forecast: ForecastConfig{
			Alpha:      0.3,
			Decay:      0.5,
			WindowSize: 3,
			Degree:     2,
			Timeout:    5 * time.Second,
		},
		Auth: AuthConfig{
			Enabled: false,
			APIKeys: []string{},
		},
		Logging: LoggingConfig{
			Level:      "info",
			Format:     "json",
			OutputPath: "stderr",
			TimeFormat: "RFC3339",
		},
	}
}
