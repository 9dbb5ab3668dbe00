package domain

import (
	"fmt"
	"strings"
)

// SQLType is the storage class of a column.
type SQLType int

// Column types. TypeNone is the zero value and is not valid on a column.
const (
	TypeNone SQLType = iota
	TypeText
	TypeInteger
	TypeReal
)

// String returns the DDL keyword for the type.
func (t SQLType) String() string {
	switch t {
	case TypeText:
		return "TEXT"
	case TypeInteger:
		return "INTEGER"
	case TypeReal:
		return "REAL"
	default:
		return "NONE"
	}
}

// IsValid returns true if the type can be used on a column.
func (t SQLType) IsValid() bool {
	return t == TypeText || t == TypeInteger || t == TypeReal
}

// ParseSQLType converts a DDL keyword into a SQLType.
// Matching is case-insensitive and accepts INT as an alias of INTEGER.
func ParseSQLType(s string) (SQLType, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "TEXT":
		return TypeText, nil
	case "INTEGER", "INT":
		return TypeInteger, nil
	case "REAL":
		return TypeReal, nil
	default:
		return TypeNone, fmt.Errorf("%w: unknown column type %q", ErrConfiguration, s)
	}
}

// Column describes one column of a model table.
type Column struct {
	Name string
	Type SQLType
	// Size is only emitted when positive, e.g. TEXT(100).
	Size       int
	PrimaryKey bool
}

// Definition returns the column's DDL fragment, e.g. "name TEXT(100)".
func (c Column) Definition() string {
	var b strings.Builder
	b.WriteString(c.Name)
	b.WriteByte(' ')
	b.WriteString(c.Type.String())
	if c.Size > 0 {
		fmt.Fprintf(&b, "(%d)", c.Size)
	}
	if c.PrimaryKey {
		b.WriteString(" PRIMARY KEY")
	}
	return b.String()
}

func (c Column) validate(table string) error {
	if !ValidIdentifier(c.Name) {
		return fmt.Errorf("%w: table %s: invalid column name %q", ErrConfiguration, table, c.Name)
	}
	if !c.Type.IsValid() {
		return fmt.Errorf("%w: table %s: column %s has no type", ErrConfiguration, table, c.Name)
	}
	if c.Size < 0 {
		return fmt.Errorf("%w: table %s: column %s has negative size %d", ErrConfiguration, table, c.Name, c.Size)
	}
	// SQLite only aliases the rowid for the exact type "INTEGER PRIMARY KEY".
	if c.PrimaryKey && c.Type == TypeInteger && c.Size > 0 {
		return fmt.Errorf("%w: table %s: integer primary key %s cannot have a size", ErrConfiguration, table, c.Name)
	}
	return nil
}
