// Package store supplies database connections to the company repository.
//
// A Provider hands out one bun.Conn per operation from the database/sql pool;
// the caller closes it on every exit path. Statements use bun's `?`
// placeholders so the same SQL runs on SQLite and Postgres.
package store

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"           // postgres driver
	_ "github.com/mattn/go-sqlite3" // sqlite3 driver
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	"github.com/goliatone/go-company-repository/internal/logger"
)

// Provider is the connection provider backed by a bun.DB.
type Provider struct {
	db         *bun.DB
	driver     string
	procedures ProcedureCatalog
}

// Open connects using cfg, applies pool limits and optionally creates the schema.
func Open(ctx context.Context, cfg Config, log *logger.Logger) (*Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	driverName := "sqlite3"
	if cfg.Driver == DriverPostgres {
		driverName = "postgres"
	}

	sqldb, err := sql.Open(driverName, cfg.driverDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if cfg.MaxOpenConns > 0 {
		sqldb.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		sqldb.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.InMemory() {
		// keep at least one connection alive or the database goes with it
		if cfg.MaxIdleConns == 0 {
			sqldb.SetMaxIdleConns(1)
		}
		sqldb.SetConnMaxLifetime(0)
		sqldb.SetConnMaxIdleTime(0)
		if cfg.ConnMaxLifetime > 0 && log != nil {
			log.Warn("ignoring conn_max_lifetime for in-memory sqlite", "dsn", cfg.DSN)
		}
	} else if cfg.ConnMaxLifetime > 0 {
		sqldb.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	if err := sqldb.PingContext(ctx); err != nil {
		sqldb.Close()
		return nil, fmt.Errorf("failed to reach database: %w", err)
	}

	p := NewProvider(sqldb, cfg.Driver)
	if cfg.LogQueries && log != nil {
		p.db.AddQueryHook(NewQueryLogger(log))
	}

	if cfg.EnsureSchema {
		if err := EnsureSchema(ctx, p); err != nil {
			sqldb.Close()
			return nil, fmt.Errorf("failed to ensure schema: %w", err)
		}
	}

	return p, nil
}

// NewProvider wraps an open *sql.DB with the bun dialect matching driver.
// SQLite callers should open sqldb with _foreign_keys=on in the DSN.
func NewProvider(sqldb *sql.DB, driver string) *Provider {
	var db *bun.DB
	if driver == DriverPostgres {
		db = bun.NewDB(sqldb, pgdialect.New())
	} else {
		db = bun.NewDB(sqldb, sqlitedialect.New())
	}
	return &Provider{
		db:         db,
		driver:     driver,
		procedures: DefaultProcedures(driver),
	}
}

// Conn acquires a dedicated connection. The caller must Close it.
func (p *Provider) Conn(ctx context.Context) (bun.Conn, error) {
	return p.db.Conn(ctx)
}

// Procedure returns the statement invoking the named stored procedure.
func (p *Provider) Procedure(name string) (string, error) {
	return p.procedures.Lookup(name)
}

// Driver reports the configured driver.
func (p *Provider) Driver() string {
	return p.driver
}

// DB exposes the underlying bun.DB for schema setup and tests.
func (p *Provider) DB() *bun.DB {
	return p.db
}

// Close closes the pool.
func (p *Provider) Close() error {
	return p.db.Close()
}
