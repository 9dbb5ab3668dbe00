package schema

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/custodia-labs/modelstore/internal/core/domain"
)

// Query assembles a statement against one table.
// Column names are checked against the table metadata; values are bound
// as parameters and never spliced into the SQL text. The first invalid
// identifier is remembered and returned by the terminal methods.
type Query struct {
	table   domain.TableMetadata
	where   []string
	args    []any
	orderBy []string
	limit   int
	err     error
}

// NewQuery starts a query on table.
func NewQuery(table domain.TableMetadata) *Query {
	return &Query{table: table}
}

// Where adds "column = ?" to the predicate, joined with AND. Slice values
// other than []byte are rejected; use WhereIn for lists.
func (q *Query) Where(column string, value any) *Query {
	if !q.checkColumn(column) {
		return q
	}
	if isList(value) {
		q.err = fmt.Errorf("%w: column %s compared with a list, use WhereIn", domain.ErrInvalidQuery, column)
		return q
	}
	q.where = append(q.where, column+" = ?")
	q.args = append(q.args, value)
	return q
}

// WhereIn adds "column IN (?, ...)". An empty value list matches no rows.
func (q *Query) WhereIn(column string, values ...any) *Query {
	if !q.checkColumn(column) {
		return q
	}
	if len(values) == 0 {
		q.where = append(q.where, "0 = 1")
		return q
	}
	q.where = append(q.where, column+" IN ("+placeholders(len(values))+")")
	q.args = append(q.args, values...)
	return q
}

// OrderBy appends a sort key.
func (q *Query) OrderBy(column string, desc bool) *Query {
	if !q.checkColumn(column) {
		return q
	}
	if desc {
		q.orderBy = append(q.orderBy, column+" DESC")
	} else {
		q.orderBy = append(q.orderBy, column+" ASC")
	}
	return q
}

// OrderByClause appends the sort keys of a textual clause such as
// "name DESC, _id". See ParseOrderBy.
func (q *Query) OrderByClause(clause string) *Query {
	if q.err != nil {
		return q
	}
	keys, err := ParseOrderBy(q.table, clause)
	if err != nil {
		q.err = err
		return q
	}
	q.orderBy = append(q.orderBy, keys...)
	return q
}

// Limit caps the number of rows returned. Zero means no limit.
func (q *Query) Limit(n int) *Query {
	q.limit = n
	return q
}

// Select returns the SELECT statement and its arguments. With no columns
// given every column of the table is selected, in declaration order.
func (q *Query) Select(columns ...string) (string, []any, error) {
	if len(columns) == 0 {
		columns = q.table.ColumnNames()
	}
	for _, c := range columns {
		q.checkColumn(c)
	}
	if q.err != nil {
		return "", nil, q.err
	}

	var b strings.Builder
	b.WriteString("SELECT ")
	b.WriteString(strings.Join(columns, ", "))
	b.WriteString(" FROM ")
	b.WriteString(q.table.Name())
	q.writeWhere(&b)
	if len(q.orderBy) > 0 {
		b.WriteString(" ORDER BY ")
		b.WriteString(strings.Join(q.orderBy, ", "))
	}
	if q.limit > 0 {
		fmt.Fprintf(&b, " LIMIT %d", q.limit)
	}
	return b.String(), q.Args(), nil
}

// Count returns a SELECT COUNT(*) statement honouring the predicate.
func (q *Query) Count() (string, []any, error) {
	if q.err != nil {
		return "", nil, q.err
	}
	var b strings.Builder
	b.WriteString("SELECT COUNT(*) FROM ")
	b.WriteString(q.table.Name())
	q.writeWhere(&b)
	return b.String(), q.Args(), nil
}

// WhereClause returns the predicate without the WHERE keyword, suitable
// for driven.Database Update and Delete. It is empty when no condition
// was added.
func (q *Query) WhereClause() (string, []any, error) {
	if q.err != nil {
		return "", nil, q.err
	}
	return strings.Join(q.where, " AND "), q.Args(), nil
}

// Args returns a copy of the bound arguments.
func (q *Query) Args() []any {
	out := make([]any, len(q.args))
	copy(out, q.args)
	return out
}

// Err returns the first identifier error, if any.
func (q *Query) Err() error {
	return q.err
}

func (q *Query) writeWhere(b *strings.Builder) {
	if len(q.where) == 0 {
		return
	}
	b.WriteString(" WHERE ")
	b.WriteString(strings.Join(q.where, " AND "))
}

func (q *Query) checkColumn(column string) bool {
	if q.err != nil {
		return false
	}
	if !q.table.HasColumn(column) {
		q.err = fmt.Errorf("%w: table %s has no column %q", domain.ErrInvalidQuery, q.table.Name(), column)
		return false
	}
	return true
}

// ParseOrderBy validates an ordering clause and returns its normalised keys.
//
// The clause is a comma-separated list of "column [ASC|DESC]"; a leading
// "ORDER BY" is accepted. Every column must belong to table. An empty
// clause yields no keys.
func ParseOrderBy(table domain.TableMetadata, clause string) ([]string, error) {
	clause = strings.TrimSpace(clause)
	if f := strings.Fields(clause); len(f) >= 2 && strings.EqualFold(f[0], "ORDER") && strings.EqualFold(f[1], "BY") {
		clause = strings.TrimSpace(clause[len("ORDER"):])
		clause = strings.TrimSpace(clause[len("BY"):])
	}
	if clause == "" {
		return nil, nil
	}

	parts := strings.Split(clause, ",")
	keys := make([]string, 0, len(parts))
	for _, part := range parts {
		fields := strings.Fields(part)
		if len(fields) == 0 || len(fields) > 2 {
			return nil, fmt.Errorf("%w: malformed order by term %q", domain.ErrInvalidQuery, strings.TrimSpace(part))
		}
		column := fields[0]
		if !table.HasColumn(column) {
			return nil, fmt.Errorf("%w: table %s has no column %q", domain.ErrInvalidQuery, table.Name(), column)
		}
		direction := "ASC"
		if len(fields) == 2 {
			direction = strings.ToUpper(fields[1])
			if direction != "ASC" && direction != "DESC" {
				return nil, fmt.Errorf("%w: unknown sort direction %q", domain.ErrInvalidQuery, fields[1])
			}
		}
		keys = append(keys, column+" "+direction)
	}
	return keys, nil
}

func isList(value any) bool {
	if value == nil {
		return false
	}
	if _, ok := value.([]byte); ok {
		return false
	}
	k := reflect.TypeOf(value).Kind()
	return k == reflect.Slice || k == reflect.Array
}

func placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat("?, ", n-1) + "?"
}
