package store

import (
	"strings"
	"time"
)

// Supported drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config configures the connection provider.
type Config struct {
	Driver          string        `yaml:"driver"`
	DSN             string        `yaml:"dsn"`
	MaxOpenConns    int           `yaml:"max_open_conns"`
	MaxIdleConns    int           `yaml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`
	// EnsureSchema creates the company/employee tables and the stored
	// procedure when they are missing. Meant for development and tests.
	EnsureSchema bool `yaml:"ensure_schema"`
	// LogQueries logs every statement at debug level.
	LogQueries bool `yaml:"log_queries"`
}

// DefaultConfig returns an in-memory SQLite configuration. Connections never
// expire: SQLite drops an in-memory database with its last connection.
func DefaultConfig() Config {
	return Config{
		Driver:       DriverSQLite,
		DSN:          "file:companies?mode=memory&cache=shared",
		MaxOpenConns: 1,
		MaxIdleConns: 1,
		EnsureSchema: true,
	}
}

// InMemory reports whether the DSN names an in-memory SQLite database.
func (c Config) InMemory() bool {
	if c.Driver != DriverSQLite {
		return false
	}
	return strings.Contains(c.DSN, "mode=memory") || strings.Contains(c.DSN, ":memory:")
}

// driverDSN returns the DSN handed to the driver. SQLite enforces foreign keys
// per connection, so the go-sqlite3 option is added to every SQLite DSN.
func (c Config) driverDSN() string {
	if c.Driver != DriverSQLite {
		return c.DSN
	}
	if strings.Contains(c.DSN, "_foreign_keys=") || strings.Contains(c.DSN, "_fk=") {
		return c.DSN
	}
	sep := "?"
	if strings.Contains(c.DSN, "?") {
		sep = "&"
	}
	return c.DSN + sep + "_foreign_keys=on"
}

// Validate checks whether the configuration values are valid.
func (c Config) Validate() error {
	switch c.Driver {
	case DriverSQLite, DriverPostgres:
	default:
		return &ConfigError{Field: "Driver", Message: "must be sqlite or postgres"}
	}
	if c.DSN == "" {
		return &ConfigError{Field: "DSN", Message: "is required"}
	}
	if c.MaxOpenConns < 0 {
		return &ConfigError{Field: "MaxOpenConns", Message: "must be non-negative"}
	}
	if c.MaxIdleConns < 0 {
		return &ConfigError{Field: "MaxIdleConns", Message: "must be non-negative"}
	}
	return nil
}

// ConfigError represents a configuration validation error.
type ConfigError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return "store config error in field " + e.Field + ": " + e.Message
}
