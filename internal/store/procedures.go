package store

import "fmt"

// ShowCompanyByEmployeeID returns zero or one company row for an employee id.
const ShowCompanyByEmployeeID = "ShowCompanyByEmployeeId"

// ProcedureCatalog maps stored procedure names to the statement that invokes
// them on the active dialect. Every statement takes its inputs as `?` args.
type ProcedureCatalog map[string]string

// Lookup returns the invocation statement for name.
func (c ProcedureCatalog) Lookup(name string) (string, error) {
	stmt, ok := c[name]
	if !ok {
		return "", fmt.Errorf("unknown stored procedure %q", name)
	}
	return stmt, nil
}

// DefaultProcedures returns the catalog for driver. Postgres calls the
// set-returning function created by EnsureSchema; SQLite has no procedures,
// so the body is inlined.
func DefaultProcedures(driver string) ProcedureCatalog {
	if driver == DriverPostgres {
		return ProcedureCatalog{
			ShowCompanyByEmployeeID: "SELECT id, name, address, country FROM show_company_by_employee_id(?)",
		}
	}
	return ProcedureCatalog{
		ShowCompanyByEmployeeID: `SELECT c.id, c.name, c.address, c.country
FROM company c
JOIN employee e ON e.company_id = c.id
WHERE e.id = ?`,
	}
}
