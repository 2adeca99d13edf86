package config

import (
	"net"
	"strconv"
)

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Logging.Level == "debug" && c.Logging.Format == "console"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Logging.Level == "info" && c.Logging.Format == "json"
}

// GetServerAddress returns the HTTP listen address
func (c *Config) GetServerAddress() string {
	return net.JoinHostPort(c.Server.Host, strconv.Itoa(c.Server.HTTPPort))
}

// GetGRPCAddress returns the gRPC listen address
func (c *Config) GetGRPCAddress() string {
	return net.JoinHostPort(c.Server.Host, strconv.Itoa(c.Server.GRPCPort))
}

// ForecastSubject returns the NATS subject for the forecast_data operation
func (c *QueueConfig) ForecastSubject() string {
	return c.SubjectPrefix + ".forecast_data"
}

// ExplainSubject returns the NATS subject for the explain_methods operation
func (c *QueueConfig) ExplainSubject() string {
	return c.SubjectPrefix + ".explain_methods"
}

// HasAPIKey reports whether key is one of the configured API keys
func (c *AuthConfig) HasAPIKey(key string) bool {
	for _, k := range c.APIKeys {
		if k == key {
			return true
		}
	}
	return false
}
