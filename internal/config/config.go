// Package config loads the service configuration.
//
// Values are layered: defaults, then an optional YAML file, then an optional
// .env file exported into the process environment, then COMPANY_* environment
// variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-company-repository/cache"
	"github.com/goliatone/go-company-repository/internal/store"
)

const envPrefix = "COMPANY_"

type Config struct {
	HTTP     HTTPConfig   `yaml:"http"`
	Database store.Config `yaml:"database"`
	Cache    cache.Config `yaml:"cache"`
	Log      LogConfig    `yaml:"log"`
	Warmup   WarmupConfig `yaml:"warmup"`
}

type HTTPConfig struct {
	Addr            string        `yaml:"addr"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

type LogConfig struct {
	// Mode is "dev" or "prod".
	Mode  string `yaml:"mode"`
	Level string `yaml:"level"`
}

// WarmupConfig controls the startup job that preloads cached reads.
type WarmupConfig struct {
	Enabled     bool `yaml:"enabled"`
	Concurrency int  `yaml:"concurrency"`
}

// Default returns a configuration that runs against in-memory SQLite and the
// in-process cache.
func Default() Config {
	return Config{
		HTTP: HTTPConfig{
			Addr:            ":8080",
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    10 * time.Second,
			ShutdownTimeout: 15 * time.Second,
		},
		Database: store.DefaultConfig(),
		Cache:    cache.DefaultConfig(),
		Log: LogConfig{
			Mode:  "dev",
			Level: "info",
		},
		Warmup: WarmupConfig{
			Enabled:     false,
			Concurrency: 4,
		},
	}
}

// Load builds the configuration. yamlPath and envFile are optional; a
// missing file is skipped.
func Load(yamlPath, envFile string) (Config, error) {
	cfg := Default()

	if yamlPath != "" {
		data, err := os.ReadFile(yamlPath)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return cfg, fmt.Errorf("failed to read config file: %w", err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("failed to parse config file %s: %w", yamlPath, err)
			}
		}
	}

	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return cfg, fmt.Errorf("failed to load env file %s: %w", envFile, err)
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return cfg, err
	}

	return cfg, cfg.Validate()
}

// Validate checks every section.
func (c Config) Validate() error {
	if c.HTTP.Addr == "" {
		return &ConfigError{Field: "http.addr", Message: "is required"}
	}
	switch c.Log.Mode {
	case "dev", "prod":
	default:
		return &ConfigError{Field: "log.mode", Message: "must be dev or prod"}
	}
	if c.Warmup.Enabled && c.Warmup.Concurrency < 1 {
		return &ConfigError{Field: "warmup.concurrency", Message: "must be at least 1"}
	}
	if err := c.Database.Validate(); err != nil {
		return fmt.Errorf("database: %w", err)
	}
	if err := c.Cache.Validate(); err != nil {
		return fmt.Errorf("cache: %w", err)
	}
	return nil
}

// ConfigError represents a configuration validation error.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return "config error in field " + e.Field + ": " + e.Message
}

func applyEnv(cfg *Config) error {
	str := func(name string, dst *string) {
		if v, ok := os.LookupEnv(envPrefix + name); ok {
			*dst = v
		}
	}
	num := func(name string, dst *int) error {
		v, ok := os.LookupEnv(envPrefix + name)
		if !ok {
			return nil
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s%s: %w", envPrefix, name, err)
		}
		*dst = n
		return nil
	}
	dur := func(name string, dst *time.Duration) error {
		v, ok := os.LookupEnv(envPrefix + name)
		if !ok {
			return nil
		}
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid %s%s: %w", envPrefix, name, err)
		}
		*dst = d
		return nil
	}
	flag := func(name string, dst *bool) error {
		v, ok := os.LookupEnv(envPrefix + name)
		if !ok {
			return nil
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %s%s: %w", envPrefix, name, err)
		}
		*dst = b
		return nil
	}

	str("HTTP_ADDR", &cfg.HTTP.Addr)
	str("DB_DRIVER", &cfg.Database.Driver)
	str("DB_DSN", &cfg.Database.DSN)
	str("CACHE_BACKEND", &cfg.Cache.Backend)
	str("CACHE_CODEC", &cfg.Cache.Codec)
	str("CACHE_KEY_PREFIX", &cfg.Cache.KeyPrefix)
	str("REDIS_ADDR", &cfg.Cache.Redis.Addr)
	str("REDIS_USERNAME", &cfg.Cache.Redis.Username)
	str("REDIS_PASSWORD", &cfg.Cache.Redis.Password)
	str("LOG_MODE", &cfg.Log.Mode)
	str("LOG_LEVEL", &cfg.Log.Level)

	return errors.Join(
		num("DB_MAX_OPEN_CONNS", &cfg.Database.MaxOpenConns),
		num("DB_MAX_IDLE_CONNS", &cfg.Database.MaxIdleConns),
		num("REDIS_DB", &cfg.Cache.Redis.DB),
		num("WARMUP_CONCURRENCY", &cfg.Warmup.Concurrency),
		dur("CACHE_TTL", &cfg.Cache.TTL),
		flag("DB_ENSURE_SCHEMA", &cfg.Database.EnsureSchema),
		flag("DB_LOG_QUERIES", &cfg.Database.LogQueries),
		flag("WARMUP_ENABLED", &cfg.Warmup.Enabled),
	)
}
