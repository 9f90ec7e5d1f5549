package repository

import "github.com/goliatone/go-company-repository/company"

const (
	selectCompanies = `SELECT id, name, address, country FROM company`

	selectCompanyByID = `SELECT id, name, address, country FROM company WHERE id = ?`

	selectEmployeesByCompany = `SELECT id, name, age, position, company_id FROM employee WHERE company_id = ?`

	selectCompanyEmployeeJoin = `SELECT
    c.id AS c_id, c.name AS c_name, c.address AS c_address, c.country AS c_country,
    e.id AS e_id, e.name AS e_name, e.age AS e_age, e.position AS e_position, e.company_id AS e_company_id
FROM company c
JOIN employee e ON c.id = e.company_id
ORDER BY e.id`

	insertCompany = `INSERT INTO company (name, address, country) VALUES (?, ?, ?)`

	insertCompanyReturningID = insertCompany + ` RETURNING id`

	updateCompany = `UPDATE company SET name = ?, address = ?, country = ? WHERE id = ?`

	deleteCompany = `DELETE FROM company WHERE id = ?`
)

// createCompanyParams binds the insert columns in statement order.
type createCompanyParams struct {
	Name    string
	Address string
	Country string
}

func newCreateCompanyParams(dto company.CompanyDto) createCompanyParams {
	return createCompanyParams{Name: dto.Name, Address: dto.Address, Country: dto.Country}
}

func (p createCompanyParams) args() []any {
	return []any{p.Name, p.Address, p.Country}
}

type updateCompanyParams struct {
	createCompanyParams
	ID int
}

func (p updateCompanyParams) args() []any {
	return append(p.createCompanyParams.args(), p.ID)
}

type companyIDParams struct {
	ID int
}

func (p companyIDParams) args() []any {
	return []any{p.ID}
}

type employeeIDParams struct {
	EmployeeID int
}

func (p employeeIDParams) args() []any {
	return []any{p.EmployeeID}
}

// companyEmployeeRow is one row of the company/employee join. Columns are
// aliased so both sides can be scanned into a single struct.
type companyEmployeeRow struct {
	CompanyID         int    `bun:"c_id"`
	CompanyName       string `bun:"c_name"`
	CompanyAddress    string `bun:"c_address"`
	CompanyCountry    string `bun:"c_country"`
	EmployeeID        int    `bun:"e_id"`
	EmployeeName      string `bun:"e_name"`
	EmployeeAge       int    `bun:"e_age"`
	EmployeePosition  string `bun:"e_position"`
	EmployeeCompanyID int    `bun:"e_company_id"`
}

func (r companyEmployeeRow) company() company.Company {
	return company.Company{
		ID:        r.CompanyID,
		Name:      r.CompanyName,
		Address:   r.CompanyAddress,
		Country:   r.CompanyCountry,
		Employees: []company.Employee{},
	}
}

func (r companyEmployeeRow) employee() company.Employee {
	return company.Employee{
		ID:        r.EmployeeID,
		Name:      r.EmployeeName,
		Age:       r.EmployeeAge,
		Position:  r.EmployeePosition,
		CompanyID: r.EmployeeCompanyID,
	}
}
