package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for one service.
// Following 12-factor app principles, all config is loaded from environment variables
type Config struct {
	Server   ServerConfig
	Storage  StorageConfig
	Upstream UpstreamConfig
	LogLevel string
}

type ServerConfig struct {
	Port            string
	Host            string
	ReadTimeout     int
	WriteTimeout    int
	ShutdownTimeout int
}

type StorageConfig struct {
	Path string
}

// UpstreamConfig holds the downstream service locations. Only the order
// service depends on them; the other services ignore this section.
type UpstreamConfig struct {
	UserServiceURL    string
	ProductServiceURL string
	Timeout           int // seconds per outbound call
}

// Defaults carries the values that differ between the three service binaries.
type Defaults struct {
	Port        string
	StoragePath string
}

// Load reads configuration from environment variables, falling back to the
// service defaults
func Load(def Defaults) (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("HOST", "0.0.0.0")
	v.SetDefault("PORT", def.Port)
	v.SetDefault("DB_PATH", def.StoragePath)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("READ_TIMEOUT", 15)
	v.SetDefault("WRITE_TIMEOUT", 15)
	v.SetDefault("SHUTDOWN_TIMEOUT", 30)
	v.SetDefault("USER_SERVICE_URL", "http://localhost:5001")
	v.SetDefault("PRODUCT_SERVICE_URL", "http://localhost:5002")
	v.SetDefault("UPSTREAM_TIMEOUT", 5)

	cfg := &Config{
		Server: ServerConfig{
			Port:            v.GetString("PORT"),
			Host:            v.GetString("HOST"),
			ReadTimeout:     v.GetInt("READ_TIMEOUT"),
			WriteTimeout:    v.GetInt("WRITE_TIMEOUT"),
			ShutdownTimeout: v.GetInt("SHUTDOWN_TIMEOUT"),
		},
		Storage: StorageConfig{
			Path: v.GetString("DB_PATH"),
		},
		Upstream: UpstreamConfig{
			UserServiceURL:    v.GetString("USER_SERVICE_URL"),
			ProductServiceURL: v.GetString("PRODUCT_SERVICE_URL"),
			Timeout:           v.GetInt("UPSTREAM_TIMEOUT"),
		},
		LogLevel: v.GetString("LOG_LEVEL"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks the settings every service needs
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	if c.Storage.Path == "" {
		return fmt.Errorf("DB_PATH is required")
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[strings.ToLower(c.LogLevel)] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.LogLevel)
	}

	return nil
}

// Validate checks the settings only the order service needs
func (u *UpstreamConfig) Validate() error {
	if u.UserServiceURL == "" {
		return fmt.Errorf("USER_SERVICE_URL is required")
	}

	if u.ProductServiceURL == "" {
		return fmt.Errorf("PRODUCT_SERVICE_URL is required")
	}

	if u.Timeout <= 0 {
		return fmt.Errorf("UPSTREAM_TIMEOUT must be positive")
	}

	return nil
}
