package store

import "context"

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS company (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL,
    address TEXT NOT NULL,
    country TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS employee (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL,
    age INTEGER NOT NULL DEFAULT 0,
    position TEXT NOT NULL DEFAULT '',
    company_id INTEGER NOT NULL,
    FOREIGN KEY (company_id) REFERENCES company(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_employee_company_id ON employee(company_id);
`

const postgresSchema = `
CREATE TABLE IF NOT EXISTS company (
    id SERIAL PRIMARY KEY,
    name TEXT NOT NULL,
    address TEXT NOT NULL,
    country TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS employee (
    id SERIAL PRIMARY KEY,
    name TEXT NOT NULL,
    age INTEGER NOT NULL DEFAULT 0,
    position TEXT NOT NULL DEFAULT '',
    company_id INTEGER NOT NULL REFERENCES company(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_employee_company_id ON employee(company_id);

CREATE OR REPLACE FUNCTION show_company_by_employee_id(emp_id INTEGER)
RETURNS SETOF company AS $$
    SELECT c.* FROM company c
    JOIN employee e ON e.company_id = c.id
    WHERE e.id = emp_id
$$ LANGUAGE sql STABLE;
`

// EnsureSchema creates the tables (and, on Postgres, the stored procedure)
// when missing. Statements go straight to database/sql so bun does not try to
// interpret placeholders inside the function body.
func EnsureSchema(ctx context.Context, p *Provider) error {
	schema := sqliteSchema
	if p.driver == DriverPostgres {
		schema = postgresSchema
	}
	_, err := p.db.DB.ExecContext(ctx, schema)
	return err
}
