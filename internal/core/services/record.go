package services

import (
	"fmt"

	"github.com/custodia-labs/modelstore/internal/core/domain"
	"github.com/custodia-labs/modelstore/internal/core/ports/driven"
)

// Record is a row of any configured table, keyed by column name.
// It lets tools work on tables without a dedicated model type.
type Record struct {
	ID     int64
	Fields map[string]any
}

// Get returns a field value.
func (r Record) Get(column string) any {
	return r.Fields[column]
}

// RecordMapper maps rows of one table to Records using only its metadata.
type RecordMapper struct {
	table domain.TableMetadata
}

var _ driven.Mapper[Record] = RecordMapper{}

// NewRecordMapper returns a mapper for table.
func NewRecordMapper(table domain.TableMetadata) RecordMapper {
	return RecordMapper{table: table}
}

// NewRecordDAO returns a DAO over Records of table.
func NewRecordDAO(db driven.Database, table domain.TableMetadata) (*DAO[Record], error) {
	return NewDAO[Record](db, NewRecordMapper(table))
}

// Table returns the table metadata.
func (m RecordMapper) Table() domain.TableMetadata {
	return m.table
}

// FromRow scans every column of the row. TEXT columns are returned as
// strings whichever representation the driver used.
func (m RecordMapper) FromRow(row driven.Row) (Record, error) {
	cols := m.table.Columns()
	raw := make([]any, len(cols))
	dest := make([]any, len(cols))
	for i := range raw {
		dest[i] = &raw[i]
	}
	if err := row.Scan(dest...); err != nil {
		return Record{}, err
	}

	rec := Record{Fields: make(map[string]any, len(cols))}
	for i, c := range cols {
		v := raw[i]
		if b, ok := v.([]byte); ok && c.Type == domain.TypeText {
			v = string(b)
		}
		if c.PrimaryKey {
			id, err := toInt64(v)
			if err != nil {
				return Record{}, fmt.Errorf("column %s: %w", c.Name, err)
			}
			rec.ID = id
			continue
		}
		rec.Fields[c.Name] = v
	}
	return rec, nil
}

// Values returns the record's fields that belong to the table, in column order.
func (m RecordMapper) Values(r Record) *domain.Values {
	values := domain.NewValues()
	for _, c := range m.table.Columns() {
		if c.PrimaryKey {
			continue
		}
		if v, ok := r.Fields[c.Name]; ok {
			values.Put(c.Name, v)
		}
	}
	for name, v := range r.Fields {
		if !m.table.HasColumn(name) {
			// Unknown columns are rejected by the DAO.
			values.Put(name, v)
		}
	}
	return values
}

// ID returns the record id.
func (m RecordMapper) ID(r Record) int64 {
	return r.ID
}

// WithID returns the record with id set.
func (m RecordMapper) WithID(r Record, id int64) Record {
	r.ID = id
	return r
}

func toInt64(v any) (int64, error) {
	switch n := v.(type) {
	case int64:
		return n, nil
	case int:
		return int64(n), nil
	case int32:
		return int64(n), nil
	case float64:
		return int64(n), nil
	case nil:
		return 0, nil
	default:
		return 0, fmt.Errorf("unexpected id type %T", v)
	}
}
