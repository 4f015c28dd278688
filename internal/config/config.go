/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package config handles application configuration and environment loading.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/suparena/dynadmin/datastore/ddb"
)

// Config holds the configuration of the dynadmin server and CLI.
type Config struct {
	// AWS / DynamoDB
	Region          string // AWS_REGION, falling back to REGION
	AccessKeyID     string // AWS_ACCESS_KEY_ID, falling back to ACCESS_KEY_ID
	SecretAccessKey string // AWS_SECRET_ACCESS_KEY, falling back to SECRET_KEY
	Endpoint        string // DYNAMODB_ENDPOINT, e.g. http://localhost:8000 for DynamoDB Local

	ListenAddr string // HTTP listen address (default ":8080")
	LogLevel   string // log level: debug, info, warn, error (default "info")
	LogFormat  string // log format: text or json (default "text")

	// Rate limiting
	RateLimitRPS   float64 // sustained requests per second (default 50, 0 disables)
	RateLimitBurst int     // burst capacity (default 100)

	// CORS
	CORSAllowedOrigins []string // allowed origins for CORS (default: ["*"])

	// Table provisioning
	TableWaitAttempts int           // DescribeTable polls before giving up (default 30)
	TableWaitInterval time.Duration // spacing between polls (default 1s)

	// SchemaSeedFile is an optional YAML file of schemas registered at startup.
	SchemaSeedFile string
}

// SlogLevel maps the LogLevel string to an slog.Level.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NewLogger builds the process logger from LogLevel and LogFormat.
func (c *Config) NewLogger() *slog.Logger {
	opts := &slog.HandlerOptions{Level: c.SlogLevel()}
	if strings.EqualFold(c.LogFormat, "json") {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}

// ClientConfig returns the DynamoDB connection settings.
func (c *Config) ClientConfig() ddb.ClientConfig {
	return ddb.ClientConfig{
		Region:          c.Region,
		AccessKeyID:     c.AccessKeyID,
		SecretAccessKey: c.SecretAccessKey,
		Endpoint:        c.Endpoint,
	}
}

// Validate checks that the configuration can reach a backend.
func (c *Config) Validate() error {
	var errs []error
	if c.Region == "" {
		errs = append(errs, errors.New("AWS_REGION (or REGION) must be set"))
	}
	if (c.AccessKeyID == "") != (c.SecretAccessKey == "") {
		errs = append(errs, errors.New("AWS_ACCESS_KEY_ID and AWS_SECRET_ACCESS_KEY must be set together"))
	}
	if c.TableWaitAttempts <= 0 {
		errs = append(errs, errors.New("TABLE_WAIT_ATTEMPTS must be positive"))
	}
	return errors.Join(errs...)
}

// LoadDotEnv loads variables from a .env file without overriding the
// environment. A missing file is not an error.
func LoadDotEnv(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// LoadFromEnv loads configuration from environment variables.
func LoadFromEnv() (*Config, error) {
	cfg := &Config{
		Region:          firstEnv("AWS_REGION", "REGION"),
		AccessKeyID:     firstEnv("AWS_ACCESS_KEY_ID", "ACCESS_KEY_ID"),
		SecretAccessKey: firstEnv("AWS_SECRET_ACCESS_KEY", "SECRET_KEY"),
		Endpoint:        os.Getenv("DYNAMODB_ENDPOINT"),
		ListenAddr:      os.Getenv("LISTEN_ADDR"),
		LogLevel:        os.Getenv("LOG_LEVEL"),
		LogFormat:       os.Getenv("LOG_FORMAT"),
		SchemaSeedFile:  os.Getenv("SCHEMA_SEED_FILE"),
		RateLimitRPS:    50,
		RateLimitBurst:  100,
	}

	// Rate limiting. RATE_LIMIT_RPS=0 disables the limiter.
	if v := os.Getenv("RATE_LIMIT_RPS"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid RATE_LIMIT_RPS %q: %w", v, err)
		}
		cfg.RateLimitRPS = f
	}
	if v := os.Getenv("RATE_LIMIT_BURST"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid RATE_LIMIT_BURST %q: %w", v, err)
		}
		cfg.RateLimitBurst = n
	}

	// Table provisioning
	if v := os.Getenv("TABLE_WAIT_ATTEMPTS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid TABLE_WAIT_ATTEMPTS %q: %w", v, err)
		}
		cfg.TableWaitAttempts = n
	}
	if v := os.Getenv("TABLE_WAIT_INTERVAL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid TABLE_WAIT_INTERVAL %q: %w", v, err)
		}
		cfg.TableWaitInterval = d
	}

	// CORS
	if v := os.Getenv("CORS_ALLOWED_ORIGINS"); v != "" {
		origins := strings.Split(v, ",")
		for i := range origins {
			origins[i] = strings.TrimSpace(origins[i])
		}
		cfg.CORSAllowedOrigins = compactNonEmpty(origins)
	}

	// Defaults
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = ":8080"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = "text"
	}
	if len(cfg.CORSAllowedOrigins) == 0 {
		cfg.CORSAllowedOrigins = []string{"*"}
	}
	if cfg.TableWaitAttempts == 0 {
		cfg.TableWaitAttempts = 30
	}
	if cfg.TableWaitInterval == 0 {
		cfg.TableWaitInterval = time.Second
	}

	return cfg, nil
}

func firstEnv(keys ...string) string {
	for _, k := range keys {
		if v := os.Getenv(k); v != "" {
			return v
		}
	}
	return ""
}

func compactNonEmpty(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}
