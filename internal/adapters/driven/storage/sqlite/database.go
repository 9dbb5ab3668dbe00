package sqlite

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/custodia-labs/modelstore/internal/core/domain"
	"github.com/custodia-labs/modelstore/internal/core/ports/driven"
	"github.com/custodia-labs/modelstore/internal/logger"
)

// database implements driven.Database on a Store's connection, or on a
// transaction when tx is set.
type database struct {
	store *Store
	tx    *sqlx.Tx
}

var _ driven.Database = (*database)(nil)

func (d *database) ext() (sqlx.ExtContext, error) {
	if d.tx != nil {
		return d.tx, nil
	}
	return d.store.handle()
}

// Exec runs a statement that returns no rows. Slice arguments are expanded
// for "IN (?)" placeholders.
func (d *database) Exec(ctx context.Context, query string, args ...any) error {
	ext, err := d.ext()
	if err != nil {
		return err
	}
	query, args, err = expand(ext, query, args)
	if err != nil {
		return err
	}
	logger.Debug("exec: %s", query)
	if _, err := ext.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: exec: %w", domain.ErrStorage, err)
	}
	return nil
}

// Query runs a statement and returns its rows. Slice arguments are expanded
// for "IN (?)" placeholders.
func (d *database) Query(ctx context.Context, query string, args ...any) (driven.Rows, error) {
	ext, err := d.ext()
	if err != nil {
		return nil, err
	}
	query, args, err = expand(ext, query, args)
	if err != nil {
		return nil, err
	}
	rows, err := ext.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: query: %w", domain.ErrStorage, err)
	}
	return rows, nil
}

// Insert adds a row and returns its rowid. An empty value set inserts a
// row of defaults.
func (d *database) Insert(ctx context.Context, table string, values *domain.Values) (int64, error) {
	cols := values.Columns()
	if err := checkIdentifiers(table, cols); err != nil {
		return 0, err
	}

	var b strings.Builder
	b.WriteString("INSERT INTO ")
	b.WriteString(table)
	if len(cols) == 0 {
		b.WriteString(" DEFAULT VALUES")
	} else {
		b.WriteString(" (")
		b.WriteString(strings.Join(cols, ", "))
		b.WriteString(") VALUES (")
		b.WriteString(strings.TrimSuffix(strings.Repeat("?, ", len(cols)), ", "))
		b.WriteString(")")
	}

	ext, err := d.ext()
	if err != nil {
		return 0, persistence(err)
	}
	logger.Debug("insert: %s", b.String())
	res, err := ext.ExecContext(ctx, ext.Rebind(b.String()), values.Args()...)
	if err != nil {
		return 0, fmt.Errorf("%w: %w: insert into %s: %w", domain.ErrStorage, domain.ErrPersistence, table, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("%w: insert into %s: reading row id: %w", domain.ErrStorage, table, err)
	}
	return id, nil
}

// Update sets values on the rows matching where.
func (d *database) Update(ctx context.Context, table string, values *domain.Values, where string, whereArgs ...any) (int64, error) {
	cols := values.Columns()
	if err := checkIdentifiers(table, cols); err != nil {
		return 0, err
	}
	if len(cols) == 0 {
		return 0, nil
	}

	sets := make([]string, len(cols))
	for i, c := range cols {
		sets[i] = c + " = ?"
	}
	query := "UPDATE " + table + " SET " + strings.Join(sets, ", ") + whereSuffix(where)
	args := append(values.Args(), whereArgs...)

	return d.change(ctx, "update "+table, query, args)
}

// Delete removes the rows matching where.
func (d *database) Delete(ctx context.Context, table string, where string, whereArgs ...any) (int64, error) {
	if err := checkIdentifiers(table, nil); err != nil {
		return 0, err
	}
	return d.change(ctx, "delete from "+table, "DELETE FROM "+table+whereSuffix(where), whereArgs)
}

// InTx runs fn in a transaction. Nested calls reuse the outer transaction.
//
// The store has a single connection, so fn must use the Database it is
// given; statements issued through the outer handle would wait for the
// transaction to end.
func (d *database) InTx(ctx context.Context, fn func(tx driven.Database) error) error {
	if d.tx != nil {
		return fn(d)
	}
	db, err := d.store.handle()
	if err != nil {
		return err
	}
	return inTx(ctx, db, func(tx *sqlx.Tx) error {
		return fn(&database{store: d.store, tx: tx})
	})
}

func (d *database) change(ctx context.Context, op, query string, args []any) (int64, error) {
	ext, err := d.ext()
	if err != nil {
		return 0, persistence(err)
	}
	query, args, err = expand(ext, query, args)
	if err != nil {
		return 0, err
	}
	logger.Debug("%s: %s", op, query)
	res, err := ext.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: %w: %s: %w", domain.ErrStorage, domain.ErrPersistence, op, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: %s: reading affected rows: %w", domain.ErrStorage, op, err)
	}
	return n, nil
}

// expand rewrites slice arguments into placeholder lists and rebinds the
// query for the driver.
func expand(ext sqlx.ExtContext, query string, args []any) (string, []any, error) {
	query, args, err := sqlx.In(query, args...)
	if err != nil {
		return "", nil, fmt.Errorf("%w: expanding arguments: %w", domain.ErrInvalidQuery, err)
	}
	return ext.Rebind(query), args, nil
}

func checkIdentifiers(table string, columns []string) error {
	if !domain.ValidIdentifier(table) {
		return fmt.Errorf("%w: invalid table name %q", domain.ErrInvalidQuery, table)
	}
	for _, c := range columns {
		if !domain.ValidIdentifier(c) {
			return fmt.Errorf("%w: invalid column name %q", domain.ErrInvalidQuery, c)
		}
	}
	return nil
}

func whereSuffix(where string) string {
	if strings.TrimSpace(where) == "" {
		return ""
	}
	return " WHERE " + where
}

// persistence marks a handle error as a rejected write.
func persistence(err error) error {
	return fmt.Errorf("%w: %w", domain.ErrPersistence, err)
}
