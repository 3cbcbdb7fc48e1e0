package types

import "errors"

// Record is a flat row as stored by either backend. Values are strings,
// numbers (float64 after a JSON round trip), bools, or nil.
type Record = map[string]any

// Store is the uniform four-method contract both backends implement.
// Statement text is restricted to the grammar documented in the README;
// positional parameters bind to `?` placeholders in textual order.
type Store interface {
	// ExecuteWrite runs an INSERT, UPDATE, or DELETE statement.
	ExecuteWrite(statement string, params []any) error

	// QueryOne returns the first matching record, or nil when no row matches.
	QueryOne(statement string, params []any) (Record, error)

	// QueryAll returns every matching record in statement order.
	QueryAll(statement string, params []any) ([]Record, error)

	// ExecuteSchema runs a DDL statement. Idempotent: repeated calls for the
	// same definition succeed.
	ExecuteSchema(statement string) error

	// Close releases backend resources. Idempotent.
	Close() error
}

// Store lifecycle and operation errors.
var (
	ErrStoreClosed        = errors.New("store is closed")
	ErrBackendUnavailable = errors.New("storage backend unavailable")
	ErrConstraint         = errors.New("constraint violation")
	ErrNotFound           = errors.New("record not found")
)
