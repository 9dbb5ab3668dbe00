package driven

import (
	"context"

	"github.com/custodia-labs/modelstore/internal/core/domain"
)

// Database is the narrow contract the core uses to reach the embedded store.
// Table and column identifiers passed to it must come from trusted metadata;
// values are always bound as parameters.
type Database interface {
	// Exec runs a statement that returns no rows (DDL or DML).
	Exec(ctx context.Context, query string, args ...any) error

	// Query runs a statement and returns a cursor over its rows.
	// The caller must close the cursor.
	Query(ctx context.Context, query string, args ...any) (Rows, error)

	// Insert adds a row and returns the store-generated row id.
	Insert(ctx context.Context, table string, values *domain.Values) (int64, error)

	// Update changes the rows matching where and returns how many changed.
	// An empty where matches every row.
	Update(ctx context.Context, table string, values *domain.Values, where string, whereArgs ...any) (int64, error)

	// Delete removes the rows matching where and returns how many were removed.
	// An empty where matches every row.
	Delete(ctx context.Context, table string, where string, whereArgs ...any) (int64, error)

	// InTx runs fn inside a transaction. The transaction commits when fn
	// returns nil and rolls back otherwise. Calling InTx on the Database
	// passed to fn runs fn directly in the same transaction.
	InTx(ctx context.Context, fn func(tx Database) error) error
}

// Row is a single result row as seen by a Mapper.
type Row interface {
	// Scan copies the row's columns into dest, positionally.
	Scan(dest ...any) error

	// Columns returns the result column names.
	Columns() ([]string, error)
}

// Rows is a forward-only cursor over a result set.
type Rows interface {
	Row

	// Next advances to the next row, returning false when exhausted or on error.
	Next() bool

	// Err returns the error, if any, encountered during iteration.
	Err() error

	// Close releases the cursor.
	Close() error
}
