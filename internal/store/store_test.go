package store

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-company-repository/internal/logger"
)

type companyRow struct {
	ID      int    `bun:"id"`
	Name    string `bun:"name"`
	Address string `bun:"address"`
	Country string `bun:"country"`
}

type employeeRow struct {
	ID        int    `bun:"id"`
	Name      string `bun:"name"`
	CompanyID int    `bun:"company_id"`
}

func openTestProvider(t *testing.T) *Provider {
	t.Helper()
	cfg := DefaultConfig()
	cfg.DSN = fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	p, err := Open(context.Background(), cfg, logger.NewNop())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = p.Close() })
	return p
}

func mustExec(t *testing.T, p *Provider, query string, args ...any) {
	t.Helper()
	if _, err := p.DB().ExecContext(context.Background(), query, args...); err != nil {
		t.Fatalf("exec %q: %v", query, err)
	}
}

func seed(t *testing.T, p *Provider) {
	t.Helper()
	mustExec(t, p, "INSERT INTO company (id, name, address, country) VALUES (1, 'Acme', '1 Main St', 'US')")
	mustExec(t, p, "INSERT INTO company (id, name, address, country) VALUES (2, 'Globex', '2 Side St', 'CA')")
	mustExec(t, p, "INSERT INTO employee (id, name, company_id) VALUES (10, 'Ada', 1)")
	mustExec(t, p, "INSERT INTO employee (id, name, company_id) VALUES (11, 'Linus', 1)")
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		field   string
		wantErr bool
	}{
		{name: "default", mutate: func(*Config) {}},
		{name: "postgres", mutate: func(c *Config) { c.Driver = DriverPostgres }},
		{name: "unknown driver", mutate: func(c *Config) { c.Driver = "oracle" }, field: "Driver", wantErr: true},
		{name: "empty dsn", mutate: func(c *Config) { c.DSN = "" }, field: "DSN", wantErr: true},
		{name: "negative open", mutate: func(c *Config) { c.MaxOpenConns = -1 }, field: "MaxOpenConns", wantErr: true},
		{name: "negative idle", mutate: func(c *Config) { c.MaxIdleConns = -1 }, field: "MaxIdleConns", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if !tt.wantErr {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			var cfgErr *ConfigError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("expected *ConfigError, got %v", err)
			}
			if cfgErr.Field != tt.field {
				t.Errorf("expected field %s, got %s", tt.field, cfgErr.Field)
			}
		})
	}
}

func TestOpen_InvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Driver = ""
	if _, err := Open(context.Background(), cfg, nil); err == nil {
		t.Fatal("expected error for invalid config")
	}
}

func TestEnsureSchema_Idempotent(t *testing.T) {
	p := openTestProvider(t)
	if err := EnsureSchema(context.Background(), p); err != nil {
		t.Fatalf("second EnsureSchema: %v", err)
	}
	if p.Driver() != DriverSQLite {
		t.Errorf("expected sqlite driver, got %s", p.Driver())
	}
}

func TestEnsureSchema_CascadeDelete(t *testing.T) {
	p := openTestProvider(t)
	seed(t, p)

	mustExec(t, p, "DELETE FROM company WHERE id = 1")

	var n int
	if err := p.DB().NewRaw("SELECT COUNT(*) FROM employee").Scan(context.Background(), &n); err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 0 {
		t.Errorf("expected employees removed with their company, got %d", n)
	}
}

func TestOpen_ForeignKeysOnEveryConnection(t *testing.T) {
	ctx := context.Background()
	cfg := DefaultConfig()
	cfg.DSN = fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	cfg.MaxOpenConns = 4
	cfg.MaxIdleConns = 4
	p, err := Open(ctx, cfg, logger.NewNop())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = p.Close() })
	seed(t, p)

	first, err := p.Conn(ctx)
	if err != nil {
		t.Fatalf("first conn: %v", err)
	}
	defer first.Close()
	second, err := p.Conn(ctx)
	if err != nil {
		t.Fatalf("second conn: %v", err)
	}
	defer second.Close()

	for i, conn := range []bun.Conn{first, second} {
		var on int
		if err := conn.NewRaw("PRAGMA foreign_keys").Scan(ctx, &on); err != nil {
			t.Fatalf("conn %d pragma: %v", i, err)
		}
		if on != 1 {
			t.Errorf("expected foreign keys on for conn %d, got %d", i, on)
		}
	}

	if _, err := second.ExecContext(ctx, "DELETE FROM company WHERE id = 1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	var n int
	if err := first.NewRaw("SELECT COUNT(*) FROM employee").Scan(ctx, &n); err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 0 {
		t.Errorf("expected employees removed with their company, got %d", n)
	}
}

func TestOpen_InMemoryOutlivesConnMaxLifetime(t *testing.T) {
	if testing.Short() {
		t.Skip("waits for the pool cleaner")
	}
	ctx := context.Background()
	cfg := DefaultConfig()
	cfg.DSN = fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	cfg.ConnMaxLifetime = 200 * time.Millisecond
	p, err := Open(ctx, cfg, logger.NewNop())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = p.Close() })
	seed(t, p)

	// the pool cleaner runs at most once a second
	time.Sleep(1500 * time.Millisecond)

	var n int
	if err := p.DB().NewRaw("SELECT COUNT(*) FROM company").Scan(ctx, &n); err != nil {
		t.Fatalf("count after lifetime elapsed: %v", err)
	}
	if n != 2 {
		t.Errorf("expected 2 companies, got %d", n)
	}
}

func TestConfig_DriverDSN(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want string
	}{
		{
			name: "memory uri",
			cfg:  Config{Driver: DriverSQLite, DSN: "file:x?mode=memory&cache=shared"},
			want: "file:x?mode=memory&cache=shared&_foreign_keys=on",
		},
		{
			name: "plain file",
			cfg:  Config{Driver: DriverSQLite, DSN: "companies.db"},
			want: "companies.db?_foreign_keys=on",
		},
		{
			name: "already set",
			cfg:  Config{Driver: DriverSQLite, DSN: "companies.db?_fk=1"},
			want: "companies.db?_fk=1",
		},
		{
			name: "postgres untouched",
			cfg:  Config{Driver: DriverPostgres, DSN: "postgres://localhost/companies"},
			want: "postgres://localhost/companies",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cfg.driverDSN(); got != tt.want {
				t.Errorf("driverDSN() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestConfig_InMemory(t *testing.T) {
	if !DefaultConfig().InMemory() {
		t.Error("expected default config to be in-memory")
	}
	if (Config{Driver: DriverSQLite, DSN: "companies.db"}).InMemory() {
		t.Error("expected file database not to be in-memory")
	}
	if (Config{Driver: DriverPostgres, DSN: "postgres://x/mode=memory"}).InMemory() {
		t.Error("expected postgres never to be in-memory")
	}
	if DefaultConfig().ConnMaxLifetime != 0 {
		t.Errorf("expected default connections never to expire, got %v", DefaultConfig().ConnMaxLifetime)
	}
}

func TestProcedureCatalog_Lookup(t *testing.T) {
	for _, driver := range []string{DriverSQLite, DriverPostgres} {
		stmt, err := DefaultProcedures(driver).Lookup(ShowCompanyByEmployeeID)
		if err != nil {
			t.Fatalf("%s: %v", driver, err)
		}
		if stmt == "" {
			t.Errorf("%s: empty statement", driver)
		}
	}

	if _, err := DefaultProcedures(DriverSQLite).Lookup("DropEverything"); err == nil {
		t.Error("expected error for unknown procedure")
	}
}

func TestProvider_Procedure(t *testing.T) {
	p := openTestProvider(t)
	seed(t, p)
	ctx := context.Background()

	stmt, err := p.Procedure(ShowCompanyByEmployeeID)
	if err != nil {
		t.Fatalf("procedure: %v", err)
	}

	conn, err := p.Conn(ctx)
	if err != nil {
		t.Fatalf("conn: %v", err)
	}
	defer conn.Close()

	var rows []companyRow
	if err := conn.NewRaw(stmt, 11).Scan(ctx, &rows); err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(rows) != 1 || rows[0].ID != 1 {
		t.Fatalf("expected company 1, got %+v", rows)
	}

	rows = nil
	if err := conn.NewRaw(stmt, 99).Scan(ctx, &rows); err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(rows) != 0 {
		t.Errorf("expected no rows for unknown employee, got %+v", rows)
	}
}

func TestQueryMultiple_ReadsInOrder(t *testing.T) {
	p := openTestProvider(t)
	seed(t, p)
	ctx := context.Background()

	conn, err := p.Conn(ctx)
	if err != nil {
		t.Fatalf("conn: %v", err)
	}
	defer conn.Close()

	multi := QueryMultiple(conn,
		Statement{Query: "SELECT id, name, address, country FROM company WHERE id = ?", Args: []any{1}},
		Statement{Query: "SELECT id, name, company_id FROM employee WHERE company_id = ? ORDER BY id", Args: []any{1}},
	)
	if multi.Remaining() != 2 {
		t.Fatalf("expected 2 pending result sets, got %d", multi.Remaining())
	}

	var c companyRow
	found, err := multi.ReadSingleOrNone(ctx, &c)
	if err != nil || !found {
		t.Fatalf("expected company, found=%v err=%v", found, err)
	}
	if c.Name != "Acme" {
		t.Errorf("expected Acme, got %s", c.Name)
	}

	var employees []employeeRow
	if err := multi.Read(ctx, &employees); err != nil {
		t.Fatalf("read employees: %v", err)
	}
	if len(employees) != 2 || employees[0].Name != "Ada" || employees[1].Name != "Linus" {
		t.Errorf("unexpected employees %+v", employees)
	}

	if multi.Remaining() != 0 {
		t.Errorf("expected no remaining result sets, got %d", multi.Remaining())
	}
	if err := multi.Read(ctx, &employees); err == nil {
		t.Error("expected error reading past the last result set")
	}
}

func TestQueryMultiple_SingleOrNoneAbsent(t *testing.T) {
	p := openTestProvider(t)
	ctx := context.Background()

	multi := QueryMultiple(p.DB(),
		Statement{Query: "SELECT id, name, address, country FROM company WHERE id = ?", Args: []any{42}},
	)

	var c companyRow
	found, err := multi.ReadSingleOrNone(ctx, &c)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found {
		t.Error("expected no row")
	}
}
