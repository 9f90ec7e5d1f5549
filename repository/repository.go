// Package repository implements the store-backed CompanyRepository.
//
// Every operation borrows one connection from the ConnectionProvider and
// releases it before returning. Reads report an absent company as a nil
// pointer with a nil error. Caching lives in the repositorycache package,
// which decorates this implementation.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/uptrace/bun"

	"github.com/goliatone/go-company-repository/aggregate"
	"github.com/goliatone/go-company-repository/company"
	"github.com/goliatone/go-company-repository/internal/logger"
	"github.com/goliatone/go-company-repository/internal/store"
)

// CompanyRepository is the data access contract for companies.
type CompanyRepository interface {
	GetCompanies(ctx context.Context) ([]company.Company, error)
	GetCompany(ctx context.Context, id int) (*company.Company, error)
	GetCompanyByEmployeeID(ctx context.Context, employeeID int) (*company.Company, error)
	GetMultipleResults(ctx context.Context, id int) (*company.Company, error)
	MultipleMapping(ctx context.Context) ([]company.Company, error)
	CreateCompany(ctx context.Context, dto company.CompanyDto) (company.Company, error)
	UpdateCompany(ctx context.Context, id int, dto company.CompanyDto) error
	DeleteCompany(ctx context.Context, id int) error
	CreateMultipleCompanies(ctx context.Context, dtos []company.CompanyDto) error
}

// ConnectionProvider hands out one connection per operation and resolves
// stored procedure invocations. *store.Provider satisfies it.
type ConnectionProvider interface {
	Conn(ctx context.Context) (bun.Conn, error)
	Procedure(name string) (string, error)
}

var (
	_ CompanyRepository  = (*Repository)(nil)
	_ ConnectionProvider = (*store.Provider)(nil)
)

// Repository runs every operation directly against the database.
type Repository struct {
	provider ConnectionProvider
	log      *logger.Logger
}

// New creates a Repository. A nil logger disables logging.
func New(provider ConnectionProvider, log *logger.Logger) *Repository {
	if log == nil {
		log = logger.NewNop()
	}
	return &Repository{
		provider: provider,
		log:      log.With("component", "repository"),
	}
}

func (r *Repository) GetCompanies(ctx context.Context) ([]company.Company, error) {
	var companies []company.Company
	err := r.withConn(ctx, func(conn bun.Conn) error {
		return conn.NewRaw(selectCompanies).Scan(ctx, &companies)
	})
	if err != nil {
		r.log.Error("failed to get all companies", "error", err)
		return nil, company.StoreFailure(err, "failed to get all companies")
	}

	r.log.Info("got all companies from db", "count", len(companies))
	return withEmployees(companies), nil
}

func (r *Repository) GetCompany(ctx context.Context, id int) (*company.Company, error) {
	p := companyIDParams{ID: id}

	var c company.Company
	err := r.withConn(ctx, func(conn bun.Conn) error {
		return conn.NewRaw(selectCompanyByID, p.args()...).Scan(ctx, &c)
	})
	if errors.Is(err, sql.ErrNoRows) {
		r.log.Warn("company not found", "id", id)
		return nil, nil
	}
	if err != nil {
		return nil, company.StoreFailure(err, "failed to get company")
	}

	r.log.Info("got company from db", "id", id)
	c.Employees = []company.Employee{}
	return &c, nil
}

// GetCompanyByEmployeeID invokes the ShowCompanyByEmployeeId stored
// procedure and returns its first row.
func (r *Repository) GetCompanyByEmployeeID(ctx context.Context, employeeID int) (*company.Company, error) {
	p := employeeIDParams{EmployeeID: employeeID}

	stmt, err := r.provider.Procedure(store.ShowCompanyByEmployeeID)
	if err != nil {
		return nil, company.StoreFailure(err, "failed to resolve stored procedure")
	}

	var rows []company.Company
	err = r.withConn(ctx, func(conn bun.Conn) error {
		return conn.NewRaw(stmt, p.args()...).Scan(ctx, &rows)
	})
	if err != nil {
		return nil, company.StoreFailure(err, "failed to get company by employee id")
	}
	if len(rows) == 0 {
		r.log.Warn("company not found for employee", "employee_id", employeeID)
		return nil, nil
	}

	r.log.Info("got company by employee id from db", "employee_id", employeeID)
	c := rows[0]
	c.Employees = []company.Employee{}
	return &c, nil
}

// GetMultipleResults reads the company and its employees as two result sets
// on one connection. Employees are only read when the company exists.
// Each result set is a separate round trip outside any transaction, so the
// two reads do not share a snapshot: a concurrent write between them is
// visible to the second read only.
func (r *Repository) GetMultipleResults(ctx context.Context, id int) (*company.Company, error) {
	p := companyIDParams{ID: id}

	var (
		c     company.Company
		found bool
	)
	err := r.withConn(ctx, func(conn bun.Conn) error {
		multi := store.QueryMultiple(conn,
			store.Statement{Query: selectCompanyByID, Args: p.args()},
			store.Statement{Query: selectEmployeesByCompany, Args: p.args()},
		)

		var err error
		found, err = multi.ReadSingleOrNone(ctx, &c)
		if err != nil || !found {
			return err
		}

		c.Employees = []company.Employee{}
		return multi.Read(ctx, &c.Employees)
	})
	if err != nil {
		return nil, company.StoreFailure(err, "failed to get company with employees")
	}
	if !found {
		r.log.Warn("company not found", "id", id)
		return nil, nil
	}

	r.log.Info("got company with employees from db", "id", id, "employees", len(c.Employees))
	return &c, nil
}

// MultipleMapping reads the company/employee inner join and folds the rows
// into one Company per id. Companies without employees are not returned.
func (r *Repository) MultipleMapping(ctx context.Context) ([]company.Company, error) {
	var rows []companyEmployeeRow
	err := r.withConn(ctx, func(conn bun.Conn) error {
		return conn.NewRaw(selectCompanyEmployeeJoin).Scan(ctx, &rows)
	})
	if err != nil {
		return nil, company.StoreFailure(err, "failed to map companies with employees")
	}

	builder := aggregate.NewSplitOn[company.Company, company.Employee, int](
		func(c *company.Company, e company.Employee) {
			c.Employees = append(c.Employees, e)
		},
	)
	for _, row := range rows {
		builder.Add(row.CompanyID, row.company(), row.employee())
	}

	return builder.Result(), nil
}

func (r *Repository) CreateCompany(ctx context.Context, dto company.CompanyDto) (company.Company, error) {
	p := newCreateCompanyParams(dto)

	var id int
	err := r.withConn(ctx, func(conn bun.Conn) error {
		return conn.NewRaw(insertCompanyReturningID, p.args()...).Scan(ctx, &id)
	})
	if err != nil {
		return company.Company{}, company.StoreFailure(err, "failed to create company")
	}

	r.log.Info("created company", "id", id)
	return company.FromDto(id, dto), nil
}

// UpdateCompany overwrites the company columns. Updating a missing id is
// not an error.
func (r *Repository) UpdateCompany(ctx context.Context, id int, dto company.CompanyDto) error {
	p := updateCompanyParams{ID: id, createCompanyParams: newCreateCompanyParams(dto)}

	err := r.withConn(ctx, func(conn bun.Conn) error {
		_, err := conn.ExecContext(ctx, updateCompany, p.args()...)
		return err
	})
	if err != nil {
		return company.StoreFailure(err, "failed to update company")
	}
	return nil
}

// DeleteCompany removes the company. Deleting a missing id is logged and
// otherwise ignored.
func (r *Repository) DeleteCompany(ctx context.Context, id int) error {
	p := companyIDParams{ID: id}

	var affected int64
	err := r.withConn(ctx, func(conn bun.Conn) error {
		res, err := conn.ExecContext(ctx, deleteCompany, p.args()...)
		if err != nil {
			return err
		}
		affected, err = res.RowsAffected()
		return err
	})
	if err != nil {
		return company.StoreFailure(err, "failed to delete company")
	}

	if affected < 1 {
		r.log.Error("failed to delete company from db", "id", id)
	}
	return nil
}

// CreateMultipleCompanies inserts every DTO inside one transaction. Either
// all rows are committed or none are.
func (r *Repository) CreateMultipleCompanies(ctx context.Context, dtos []company.CompanyDto) error {
	conn, err := r.provider.Conn(ctx)
	if err != nil {
		return company.StoreFailure(err, "failed to acquire connection")
	}
	defer conn.Close()

	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return company.TransactionFailure(err, "failed to begin transaction")
	}
	defer tx.Rollback()

	for i, dto := range dtos {
		p := newCreateCompanyParams(dto)
		if _, err := tx.ExecContext(ctx, insertCompany, p.args()...); err != nil {
			r.log.Warn("batch insert failed, rolling back", "index", i, "error", err)
			return company.TransactionFailure(err, "failed to insert company")
		}
	}

	if err := tx.Commit(); err != nil {
		return company.TransactionFailure(err, "failed to commit transaction")
	}

	r.log.Info("created companies", "count", len(dtos))
	return nil
}

// withConn runs fn on a dedicated connection and closes it afterwards.
func (r *Repository) withConn(ctx context.Context, fn func(conn bun.Conn) error) error {
	conn, err := r.provider.Conn(ctx)
	if err != nil {
		return err
	}
	defer conn.Close()

	return fn(conn)
}

func withEmployees(companies []company.Company) []company.Company {
	if companies == nil {
		return []company.Company{}
	}
	for i := range companies {
		if companies[i].Employees == nil {
			companies[i].Employees = []company.Employee{}
		}
	}
	return companies
}
