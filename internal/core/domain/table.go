package domain

import "fmt"

// TableMetadata is the immutable description of one model's table.
// Column order is the declaration order and fixes positional mapping.
type TableMetadata struct {
	name    string
	columns []Column
	pk      int
}

// NewTableMetadata validates columns and returns the table description.
//
// It fails with ErrConfiguration when the table or a column name is not a
// valid identifier, when there are no columns, when a column repeats, or
// when the table does not have exactly one primary key. Extra primary keys
// are rejected at the first one found in declaration order.
func NewTableMetadata(name string, columns []Column) (TableMetadata, error) {
	if !ValidIdentifier(name) {
		return TableMetadata{}, fmt.Errorf("%w: invalid table name %q", ErrConfiguration, name)
	}
	if len(columns) == 0 {
		return TableMetadata{}, fmt.Errorf("%w: table %s declares no columns", ErrConfiguration, name)
	}

	seen := make(map[string]struct{}, len(columns))
	pk := -1
	for i, c := range columns {
		if err := c.validate(name); err != nil {
			return TableMetadata{}, err
		}
		if _, dup := seen[c.Name]; dup {
			return TableMetadata{}, fmt.Errorf("%w: table %s: duplicate column %s", ErrConfiguration, name, c.Name)
		}
		seen[c.Name] = struct{}{}
		if c.PrimaryKey {
			if pk >= 0 {
				return TableMetadata{}, fmt.Errorf("%w: table %s: only one primary key can be defined, column %s is the second",
					ErrConfiguration, name, c.Name)
			}
			pk = i
		}
	}
	if pk < 0 {
		return TableMetadata{}, fmt.Errorf("%w: table %s has no primary key", ErrConfiguration, name)
	}

	cols := make([]Column, len(columns))
	copy(cols, columns)
	return TableMetadata{name: name, columns: cols, pk: pk}, nil
}

// Name returns the table name.
func (t TableMetadata) Name() string {
	return t.name
}

// Columns returns a copy of the ordered columns.
func (t TableMetadata) Columns() []Column {
	cols := make([]Column, len(t.columns))
	copy(cols, t.columns)
	return cols
}

// ColumnNames returns the column names in declaration order.
func (t TableMetadata) ColumnNames() []string {
	names := make([]string, len(t.columns))
	for i, c := range t.columns {
		names[i] = c.Name
	}
	return names
}

// PrimaryKey returns the primary key column.
func (t TableMetadata) PrimaryKey() Column {
	if len(t.columns) == 0 {
		return Column{}
	}
	return t.columns[t.pk]
}

// Column returns the named column.
func (t TableMetadata) Column(name string) (Column, bool) {
	for _, c := range t.columns {
		if c.Name == name {
			return c, true
		}
	}
	return Column{}, false
}

// HasColumn reports whether the table declares the named column.
func (t TableMetadata) HasColumn(name string) bool {
	_, ok := t.Column(name)
	return ok
}

// IsZero returns true for metadata that was never built.
func (t TableMetadata) IsZero() bool {
	return t.name == "" && len(t.columns) == 0
}

// TableBuilder declares a table column by column.
//
//	users, err := domain.NewTable("users").
//		PrimaryKey(domain.IDColumn, domain.TypeInteger).
//		SizedColumn("name", domain.TypeText, 100).
//		Build()
type TableBuilder struct {
	name    string
	columns []Column
}

// NewTable starts the declaration of a table.
func NewTable(name string) *TableBuilder {
	return &TableBuilder{name: name}
}

// Column adds an unsized column.
func (b *TableBuilder) Column(name string, typ SQLType) *TableBuilder {
	return b.Add(Column{Name: name, Type: typ})
}

// SizedColumn adds a column with a size constraint.
func (b *TableBuilder) SizedColumn(name string, typ SQLType, size int) *TableBuilder {
	return b.Add(Column{Name: name, Type: typ, Size: size})
}

// PrimaryKey adds the primary key column.
func (b *TableBuilder) PrimaryKey(name string, typ SQLType) *TableBuilder {
	return b.Add(Column{Name: name, Type: typ, PrimaryKey: true})
}

// Add appends a fully described column.
func (b *TableBuilder) Add(c Column) *TableBuilder {
	b.columns = append(b.columns, c)
	return b
}

// Build validates the declaration. See NewTableMetadata for the rules.
func (b *TableBuilder) Build() (TableMetadata, error) {
	return NewTableMetadata(b.name, b.columns)
}

// MustBuild is like Build but panics on error.
// It is intended for package-level model declarations.
func (b *TableBuilder) MustBuild() TableMetadata {
	t, err := b.Build()
	if err != nil {
		panic(err)
	}
	return t
}
