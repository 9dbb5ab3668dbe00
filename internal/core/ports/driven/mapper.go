package driven

import "github.com/custodia-labs/modelstore/internal/core/domain"

// Mapper converts between a model type and its table rows.
// It is the only place where column order and types are interpreted.
type Mapper[T any] interface {
	// Table returns the metadata of the model's table.
	Table() domain.TableMetadata

	// FromRow builds a model from the current row. Rows are selected with
	// the table's columns in declaration order.
	FromRow(row Row) (T, error)

	// Values returns the column values to write for a model. The primary
	// key may be omitted; the DAO sets it where needed.
	Values(record T) *domain.Values

	// ID returns the model's primary key; zero means not yet persisted.
	ID(record T) int64

	// WithID returns the model with its primary key set.
	WithID(record T, id int64) T
}
