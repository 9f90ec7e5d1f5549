package testsupport

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"

	"github.com/goliatone/go-company-repository/company"
	"github.com/goliatone/go-company-repository/internal/logger"
	"github.com/goliatone/go-company-repository/internal/store"
)

// NewSQLiteProvider opens a private in-memory SQLite database with the schema
// applied. The database is dropped when the test finishes.
func NewSQLiteProvider(t testing.TB) *store.Provider {
	t.Helper()

	cfg := store.DefaultConfig()
	cfg.DSN = fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())

	p, err := store.Open(context.Background(), cfg, logger.NewNop())
	if err != nil {
		t.Fatalf("failed to open sqlite provider: %v", err)
	}
	t.Cleanup(func() {
		_ = p.Close()
	})
	return p
}

// SeedCompany inserts a company row and returns it with its assigned id.
func SeedCompany(t testing.TB, p *store.Provider, dto company.CompanyDto) company.Company {
	t.Helper()

	var id int
	err := p.DB().NewRaw(
		"INSERT INTO company (name, address, country) VALUES (?, ?, ?) RETURNING id",
		dto.Name, dto.Address, dto.Country,
	).Scan(context.Background(), &id)
	if err != nil {
		t.Fatalf("seed company: %v", err)
	}
	return company.FromDto(id, dto)
}

// SeedEmployee inserts an employee owned by companyID.
func SeedEmployee(t testing.TB, p *store.Provider, companyID int, name string) company.Employee {
	t.Helper()

	e := company.Employee{Name: name, Age: 30, Position: "Engineer", CompanyID: companyID}
	err := p.DB().NewRaw(
		"INSERT INTO employee (name, age, position, company_id) VALUES (?, ?, ?, ?) RETURNING id",
		e.Name, e.Age, e.Position, e.CompanyID,
	).Scan(context.Background(), &e.ID)
	if err != nil {
		t.Fatalf("seed employee: %v", err)
	}
	return e
}

// CountCompanies returns the number of company rows.
func CountCompanies(t testing.TB, p *store.Provider) int {
	t.Helper()

	var n int
	if err := p.DB().NewRaw("SELECT COUNT(*) FROM company").Scan(context.Background(), &n); err != nil {
		t.Fatalf("count companies: %v", err)
	}
	return n
}
