// Package sqlite implements the embedded SQL storage backend. Statements
// pass straight through to the database engine with positional parameter
// binding; no translation happens here.
package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	_ "modernc.org/sqlite"

	"github.com/wayfarer-app/wayfarer/pkg/types"
)

// Backend wraps a SQLite database file and satisfies the Store contract.
type Backend struct {
	mu     sync.RWMutex
	db     *sql.DB
	closed bool
}

// Open creates the data directory if needed and opens (or creates) the
// database file inside it. Foreign keys are switched on for the
// connection.
func Open(dataDir string) (*Backend, error) {
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}

	dbPath := filepath.Join(dataDir, "wayfarer.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	// Pragmas are per-connection; a single pooled connection keeps
	// foreign keys on for every statement.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}
	return &Backend{db: db}, nil
}

// ExecuteWrite runs an INSERT, UPDATE, or DELETE statement with positional
// parameters. Unique and check violations map to ErrConstraint.
func (b *Backend) ExecuteWrite(statement string, params []any) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return types.ErrStoreClosed
	}
	if _, err := b.db.Exec(statement, params...); err != nil {
		return wrapExecError(err)
	}
	return nil
}

// QueryOne runs a SELECT and returns the first row, or nil when nothing
// matches.
func (b *Backend) QueryOne(statement string, params []any) (types.Record, error) {
	rows, err := b.queryAll(statement, params)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

// QueryAll runs a SELECT and returns every matching row. No matches is an
// empty slice, not an error.
func (b *Backend) QueryAll(statement string, params []any) ([]types.Record, error) {
	return b.queryAll(statement, params)
}

// ExecuteSchema runs a DDL statement (CREATE TABLE, CREATE INDEX, ...).
func (b *Backend) ExecuteSchema(statement string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return types.ErrStoreClosed
	}
	if _, err := b.db.Exec(statement); err != nil {
		return fmt.Errorf("executing schema: %w", err)
	}
	return nil
}

// Close releases the database handle. Close is idempotent; operations
// after Close return ErrStoreClosed.
func (b *Backend) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil
	}
	b.closed = true
	if err := b.db.Close(); err != nil {
		return fmt.Errorf("closing database: %w", err)
	}
	return nil
}

func (b *Backend) queryAll(statement string, params []any) ([]types.Record, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.closed {
		return nil, types.ErrStoreClosed
	}

	rows, err := b.db.Query(statement, params...)
	if err != nil {
		return nil, fmt.Errorf("querying: %w", err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("reading columns: %w", err)
	}

	results := []types.Record{}
	for rows.Next() {
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		rec := make(types.Record, len(cols))
		for i, col := range cols {
			rec[col] = normalizeValue(values[i])
		}
		results = append(results, rec)
	}
	return results, rows.Err()
}

// normalizeValue keeps scanned values JSON-friendly: byte slices become
// strings so column values compare and encode the same on both backends.
func normalizeValue(v any) any {
	if b, ok := v.([]byte); ok {
		return string(b)
	}
	return v
}

func wrapExecError(err error) error {
	msg := err.Error()
	if strings.Contains(msg, "UNIQUE constraint") ||
		strings.Contains(msg, "CHECK constraint") ||
		strings.Contains(msg, "FOREIGN KEY constraint") {
		return fmt.Errorf("%w: %s", types.ErrConstraint, msg)
	}
	return fmt.Errorf("executing write: %w", err)
}
