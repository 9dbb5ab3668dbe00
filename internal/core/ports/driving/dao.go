package driving

import (
	"context"

	"github.com/custodia-labs/modelstore/internal/core/domain"
)

// Repository reads and writes the rows of one model table as values of T.
// Field names and ordering clauses are checked against the table metadata
// and rejected with domain.ErrInvalidQuery; failed writes carry
// domain.ErrPersistence.
type Repository[T any] interface {
	// Table returns the metadata of the model's table.
	Table() domain.TableMetadata

	// Create inserts the record and returns it with its assigned id.
	Create(ctx context.Context, record T) (T, error)

	// Update writes the record to the row with the same id.
	Update(ctx context.Context, record T) error

	// CreateOrUpdate updates an existing row or inserts a new one.
	CreateOrUpdate(ctx context.Context, record T) (T, error)

	// UpdateAll updates every record, all or none.
	UpdateAll(ctx context.Context, records []T) error

	// Delete removes the row with the given id.
	Delete(ctx context.Context, id int64) error

	// DeleteIDs removes the rows with the given ids.
	DeleteIDs(ctx context.Context, ids ...int64) (int64, error)

	// DeleteAll removes every row.
	DeleteAll(ctx context.Context) (int64, error)

	// DeleteByField removes the rows whose field equals value.
	DeleteByField(ctx context.Context, field string, value any) (int64, error)

	// Exists reports whether a row with the given id exists.
	Exists(ctx context.Context, id int64) (bool, error)

	// IsNotEmpty reports whether the table has at least one row.
	IsNotEmpty(ctx context.Context) (bool, error)

	// Count returns the number of rows.
	Count(ctx context.Context) (int64, error)

	// FindByPrimaryKey returns the row with the given id, if any.
	FindByPrimaryKey(ctx context.Context, id int64) (T, bool, error)

	// FindFirstByField returns the first row whose field equals value, if any.
	FindFirstByField(ctx context.Context, field string, value any) (T, bool, error)

	// FindAllByField returns the rows whose field equals value, sorted by orderBy.
	FindAllByField(ctx context.Context, field string, value any, orderBy string) ([]T, error)

	// FindAll returns every row, sorted by orderBy.
	FindAll(ctx context.Context, orderBy string) ([]T, error)
}
