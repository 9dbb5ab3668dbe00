package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/custodia-labs/modelstore/internal/core/domain"
	"github.com/custodia-labs/modelstore/internal/core/ports/driven"
	"github.com/custodia-labs/modelstore/internal/core/ports/driving"
	"github.com/custodia-labs/modelstore/internal/core/schema"
	"github.com/custodia-labs/modelstore/internal/logger"
)

// DAO performs CRUD and lookup operations for one model type against its table.
//
// Field names and ordering clauses passed to the Find and Delete methods are
// checked against the table metadata; values are always bound parameters.
// Reads materialise their full result before returning.
type DAO[T any] struct {
	db     driven.Database
	mapper driven.Mapper[T]
	table  domain.TableMetadata
	pk     string
}

// Ensure DAO implements the interface.
var _ driving.Repository[Record] = (*DAO[Record])(nil)

// NewDAO creates a DAO for the mapper's table on db.
func NewDAO[T any](db driven.Database, mapper driven.Mapper[T]) (*DAO[T], error) {
	if db == nil {
		return nil, fmt.Errorf("new dao: %w", domain.ErrNotInitialized)
	}
	if mapper == nil {
		return nil, fmt.Errorf("%w: new dao: mapper is nil", domain.ErrConfiguration)
	}
	table := mapper.Table()
	if table.IsZero() {
		return nil, fmt.Errorf("%w: new dao: mapper has no table metadata", domain.ErrConfiguration)
	}
	pk := table.PrimaryKey()
	if pk.Type != domain.TypeInteger {
		return nil, fmt.Errorf("%w: new dao: table %s: primary key %s must be INTEGER",
			domain.ErrConfiguration, table.Name(), pk.Name)
	}
	return &DAO[T]{db: db, mapper: mapper, table: table, pk: pk.Name}, nil
}

// Table returns the metadata of the DAO's table.
func (d *DAO[T]) Table() domain.TableMetadata {
	return d.table
}

// WithDB returns a copy of the DAO bound to db, typically the transaction
// handed out by driven.Database.InTx.
func (d *DAO[T]) WithDB(db driven.Database) *DAO[T] {
	cp := *d
	cp.db = db
	return &cp
}

// ==================== Writes ====================

// Create inserts the record and returns it with the store-assigned id.
// A record that already carries an id is inserted with that id.
func (d *DAO[T]) Create(ctx context.Context, record T) (T, error) {
	values, err := d.values(record)
	if err != nil {
		return record, err
	}
	if id := d.mapper.ID(record); id != 0 {
		values.Put(d.pk, id)
	} else {
		values.Remove(d.pk)
	}

	id, err := d.db.Insert(ctx, d.table.Name(), values)
	if err != nil {
		return record, writeError("create "+d.table.Name(), err)
	}
	return d.mapper.WithID(record, id), nil
}

// Update writes the record to the row with the same id. Matching no row
// is not an error.
func (d *DAO[T]) Update(ctx context.Context, record T) error {
	_, err := d.UpdateCount(ctx, record)
	return err
}

// UpdateCount is like Update and also returns the number of rows changed.
func (d *DAO[T]) UpdateCount(ctx context.Context, record T) (int64, error) {
	values, err := d.values(record)
	if err != nil {
		return 0, err
	}
	values.Remove(d.pk)
	if values.Len() == 0 {
		return 0, nil
	}

	n, err := d.db.Update(ctx, d.table.Name(), values, d.pk+" = ?", d.mapper.ID(record))
	if err != nil {
		return 0, writeError("update "+d.table.Name(), err)
	}
	return n, nil
}

// CreateOrUpdate updates the record if a row with its id exists and creates
// it otherwise. The check and the write share one transaction.
func (d *DAO[T]) CreateOrUpdate(ctx context.Context, record T) (T, error) {
	result := record
	err := d.db.InTx(ctx, func(tx driven.Database) error {
		dao := d.WithDB(tx)
		if id := d.mapper.ID(record); id != 0 {
			exists, err := dao.Exists(ctx, id)
			if err != nil {
				return err
			}
			if exists {
				logger.Debug("%s: row %d exists, updating", d.table.Name(), id)
				return dao.Update(ctx, record)
			}
		}
		created, err := dao.Create(ctx, record)
		if err != nil {
			return err
		}
		result = created
		return nil
	})
	if err != nil {
		return record, err
	}
	return result, nil
}

// UpdateAll updates every record in one transaction: either all rows are
// written or none is.
func (d *DAO[T]) UpdateAll(ctx context.Context, records []T) error {
	return d.db.InTx(ctx, func(tx driven.Database) error {
		return d.WithDB(tx).UpdateEach(ctx, records)
	})
}

// UpdateEach updates records one by one without a transaction. On failure
// the records before the failing one stay updated.
func (d *DAO[T]) UpdateEach(ctx context.Context, records []T) error {
	for i, record := range records {
		if err := d.Update(ctx, record); err != nil {
			return fmt.Errorf("record %d: %w", i, err)
		}
	}
	return nil
}

// Delete removes the row with the given id. Missing rows are not an error.
func (d *DAO[T]) Delete(ctx context.Context, id int64) error {
	if _, err := d.db.Delete(ctx, d.table.Name(), d.pk+" = ?", id); err != nil {
		return writeError("delete from "+d.table.Name(), err)
	}
	return nil
}

// DeleteIDs removes every row whose id is listed and returns how many were removed.
func (d *DAO[T]) DeleteIDs(ctx context.Context, ids ...int64) (int64, error) {
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	where, whereArgs, err := schema.NewQuery(d.table).WhereIn(d.pk, args...).WhereClause()
	if err != nil {
		return 0, err
	}
	n, err := d.db.Delete(ctx, d.table.Name(), where, whereArgs...)
	if err != nil {
		return 0, writeError("delete from "+d.table.Name(), err)
	}
	return n, nil
}

// DeleteAll removes every row of the table and returns how many were removed.
func (d *DAO[T]) DeleteAll(ctx context.Context) (int64, error) {
	n, err := d.db.Delete(ctx, d.table.Name(), "")
	if err != nil {
		return 0, writeError("delete all from "+d.table.Name(), err)
	}
	return n, nil
}

// DeleteByField removes every row whose field equals value.
func (d *DAO[T]) DeleteByField(ctx context.Context, field string, value any) (int64, error) {
	where, args, err := schema.NewQuery(d.table).Where(field, value).WhereClause()
	if err != nil {
		return 0, err
	}
	n, err := d.db.Delete(ctx, d.table.Name(), where, args...)
	if err != nil {
		return 0, writeError("delete from "+d.table.Name(), err)
	}
	return n, nil
}

// ==================== Reads ====================

// Exists reports whether a row with the given id exists.
func (d *DAO[T]) Exists(ctx context.Context, id int64) (bool, error) {
	query, args, err := schema.NewQuery(d.table).Where(d.pk, id).Limit(1).Select(d.pk)
	if err != nil {
		return false, err
	}
	return d.hasRows(ctx, query, args)
}

// IsNotEmpty reports whether the table holds at least one row.
// A failing query is returned as an error, never as an empty table.
func (d *DAO[T]) IsNotEmpty(ctx context.Context) (bool, error) {
	query, args, err := schema.NewQuery(d.table).Limit(1).Select(d.pk)
	if err != nil {
		return false, err
	}
	return d.hasRows(ctx, query, args)
}

// Count returns the number of rows in the table.
func (d *DAO[T]) Count(ctx context.Context) (int64, error) {
	query, args, err := schema.NewQuery(d.table).Count()
	if err != nil {
		return 0, err
	}
	rows, err := d.db.Query(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", d.table.Name(), err)
	}
	defer rows.Close()

	var n int64
	if rows.Next() {
		if err := rows.Scan(&n); err != nil {
			return 0, fmt.Errorf("count %s: %w: %w", d.table.Name(), domain.ErrStorage, err)
		}
	}
	if err := rows.Err(); err != nil {
		return 0, fmt.Errorf("count %s: %w: %w", d.table.Name(), domain.ErrStorage, err)
	}
	return n, nil
}

// FindByPrimaryKey returns the row with the given id. The boolean is false
// when no row matches.
func (d *DAO[T]) FindByPrimaryKey(ctx context.Context, id int64) (T, bool, error) {
	return d.FindFirstByField(ctx, d.pk, id)
}

// FindFirstByField returns the first row whose field equals value. The
// boolean is false when no row matches.
func (d *DAO[T]) FindFirstByField(ctx context.Context, field string, value any) (T, bool, error) {
	var zero T
	query, args, err := schema.NewQuery(d.table).Where(field, value).Limit(1).Select()
	if err != nil {
		return zero, false, err
	}
	records, err := d.collect(ctx, query, args)
	if err != nil || len(records) == 0 {
		return zero, false, err
	}
	return records[0], true, nil
}

// FindAllByField returns every row whose field equals value, sorted by
// orderBy (for example "name DESC, _id"); an empty orderBy keeps the
// store's order.
func (d *DAO[T]) FindAllByField(ctx context.Context, field string, value any, orderBy string) ([]T, error) {
	query, args, err := schema.NewQuery(d.table).Where(field, value).OrderByClause(orderBy).Select()
	if err != nil {
		return nil, err
	}
	return d.collect(ctx, query, args)
}

// FindAll returns every row of the table, sorted by orderBy when set.
func (d *DAO[T]) FindAll(ctx context.Context, orderBy string) ([]T, error) {
	query, args, err := schema.NewQuery(d.table).OrderByClause(orderBy).Select()
	if err != nil {
		return nil, err
	}
	return d.collect(ctx, query, args)
}

// FindWhere runs a query assembled by the caller with schema.NewQuery on
// this DAO's table.
func (d *DAO[T]) FindWhere(ctx context.Context, q *schema.Query) ([]T, error) {
	query, args, err := q.Select()
	if err != nil {
		return nil, err
	}
	return d.collect(ctx, query, args)
}

// ==================== Helpers ====================

func (d *DAO[T]) values(record T) (*domain.Values, error) {
	values := d.mapper.Values(record)
	if values == nil {
		values = domain.NewValues()
	}
	for _, c := range values.Columns() {
		if !d.table.HasColumn(c) {
			return nil, fmt.Errorf("%w: table %s has no column %q", domain.ErrConfiguration, d.table.Name(), c)
		}
	}
	return values, nil
}

func (d *DAO[T]) hasRows(ctx context.Context, query string, args []any) (bool, error) {
	logger.Debug("%s: %s", d.table.Name(), query)
	rows, err := d.db.Query(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("query %s: %w", d.table.Name(), err)
	}
	defer rows.Close()

	found := rows.Next()
	if err := rows.Err(); err != nil {
		return false, fmt.Errorf("query %s: %w: %w", d.table.Name(), domain.ErrStorage, err)
	}
	return found, nil
}

func (d *DAO[T]) collect(ctx context.Context, query string, args []any) ([]T, error) {
	logger.Debug("%s: %s", d.table.Name(), query)
	rows, err := d.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", d.table.Name(), err)
	}
	defer rows.Close()

	records := []T{}
	for rows.Next() {
		record, err := d.mapper.FromRow(rows)
		if err != nil {
			return nil, fmt.Errorf("mapping %s row: %w", d.table.Name(), err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating %s: %w: %w", d.table.Name(), domain.ErrStorage, err)
	}
	return records, nil
}

// writeError marks a failed write as a persistence error.
func writeError(op string, err error) error {
	if errors.Is(err, domain.ErrPersistence) {
		return fmt.Errorf("%s: %w", op, err)
	}
	return fmt.Errorf("%s: %w: %w", op, domain.ErrPersistence, err)
}
