package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/uptrace/bun"
)

// Statement is one query of a multi result set batch.
type Statement struct {
	Query string
	Args  []any
}

// MultiResult reads the result sets of a batch in order on one connection.
// Each read executes the next statement, so a caller that stops early never
// runs the remaining ones. Reads are separate round trips with no snapshot
// isolation between them unless db is a transaction.
type MultiResult struct {
	db    bun.IDB
	stmts []Statement
	next  int
}

// QueryMultiple prepares a batch of statements against db.
func QueryMultiple(db bun.IDB, stmts ...Statement) *MultiResult {
	return &MultiResult{db: db, stmts: stmts}
}

// ReadSingleOrNone scans the next result set into dest, a pointer to a
// struct. It reports false when the result set is empty.
func (m *MultiResult) ReadSingleOrNone(ctx context.Context, dest any) (bool, error) {
	stmt, err := m.advance()
	if err != nil {
		return false, err
	}
	err = m.db.NewRaw(stmt.Query, stmt.Args...).Scan(ctx, dest)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Read scans the next result set into dest, a pointer to a slice.
func (m *MultiResult) Read(ctx context.Context, dest any) error {
	stmt, err := m.advance()
	if err != nil {
		return err
	}
	return m.db.NewRaw(stmt.Query, stmt.Args...).Scan(ctx, dest)
}

// Remaining reports how many result sets have not been read.
func (m *MultiResult) Remaining() int {
	return len(m.stmts) - m.next
}

func (m *MultiResult) advance() (Statement, error) {
	if m.next >= len(m.stmts) {
		return Statement{}, fmt.Errorf("no more result sets: read %d of %d", m.next, len(m.stmts))
	}
	stmt := m.stmts[m.next]
	m.next++
	return stmt, nil
}
