// Package config loads server settings from the environment.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v8"
	"github.com/joho/godotenv"
)

const minSecretLength = 16

type Config struct {
	// HTTP Server
	Port              int           `env:"PORT" envDefault:"8080"`
	ShutdownTimeout   time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
	CORSAllowedOrigin string        `env:"CORS_ALLOWED_ORIGIN" envDefault:"*"`

	// Database
	DBPath       string        `env:"DB_PATH" envDefault:"./data/spendwise.db"`
	StoreTimeout time.Duration `env:"STORE_TIMEOUT" envDefault:"5s"`

	// Auth
	JWTSecret string        `env:"JWT_SECRET"`
	TokenTTL  time.Duration `env:"TOKEN_TTL" envDefault:"24h"`

	// Logging
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`

	// Budgets
	BudgetUniquePerPeriod bool `env:"BUDGET_UNIQUE_PER_PERIOD" envDefault:"true"`

	// AMQP, disabled when AMQPURL is empty
	AMQPURL        string `env:"AMQP_URL"`
	AMQPExchange   string `env:"AMQP_EXCHANGE" envDefault:"spendwise"`
	AMQPRoutingKey string `env:"AMQP_ROUTING_KEY" envDefault:"activity"`
}

// Load reads a .env file if one exists, then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	return &cfg, nil
}

// LoadFrom reads the configuration from the given variables instead of the
// process environment.
func LoadFrom(vars map[string]string) (*Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Environment: vars}); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	return &cfg, nil
}

// Addr returns the listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// AMQPEnabled reports whether activity events should be published.
func (c *Config) AMQPEnabled() bool {
	return c.AMQPURL != ""
}

// Validate validates the configuration and returns an error listing every
// problem found.
func (c *Config) Validate() error {
	var problems []string

	if c.Port < 1 || c.Port > 65535 {
		problems = append(problems, fmt.Sprintf("invalid port %d: must be between 1 and 65535", c.Port))
	}
	if c.DBPath == "" {
		problems = append(problems, "database path cannot be empty")
	}

	if c.JWTSecret == "" {
		problems = append(problems, "JWT_SECRET is required")
	} else if len(c.JWTSecret) < minSecretLength {
		problems = append(problems, fmt.Sprintf("JWT_SECRET must be at least %d bytes", minSecretLength))
	}
	if c.TokenTTL <= 0 {
		problems = append(problems, fmt.Sprintf("invalid token TTL %s: must be positive", c.TokenTTL))
	}
	if c.StoreTimeout <= 0 {
		problems = append(problems, fmt.Sprintf("invalid store timeout %s: must be positive", c.StoreTimeout))
	}
	if c.ShutdownTimeout <= 0 {
		problems = append(problems, fmt.Sprintf("invalid shutdown timeout %s: must be positive", c.ShutdownTimeout))
	}

	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		problems = append(problems, fmt.Sprintf("invalid log level '%s': must be one of debug, info, warn, error", c.LogLevel))
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		problems = append(problems, fmt.Sprintf("invalid log format '%s': must be text or json", c.LogFormat))
	}

	if c.AMQPURL != "" {
		if parsedURL, err := url.Parse(c.AMQPURL); err != nil {
			problems = append(problems, fmt.Sprintf("invalid AMQP URL: %v", err))
		} else if parsedURL.Scheme != "amqp" && parsedURL.Scheme != "amqps" {
			problems = append(problems, fmt.Sprintf("invalid AMQP URL scheme '%s': must be 'amqp' or 'amqps'", parsedURL.Scheme))
		}
		if c.AMQPExchange == "" {
			problems = append(problems, "AMQP exchange name cannot be empty when AMQP URL is provided")
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(problems, "; "))
	}
	return nil
}
