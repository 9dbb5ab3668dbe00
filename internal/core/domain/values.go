package domain

// Values holds ordered column/value pairs for an insert or update.
// Putting an existing column replaces its value in place.
type Values struct {
	columns []string
	args    []any
}

// NewValues returns an empty value set.
func NewValues() *Values {
	return &Values{}
}

// Put sets the value of a column.
func (v *Values) Put(column string, value any) *Values {
	for i, c := range v.columns {
		if c == column {
			v.args[i] = value
			return v
		}
	}
	v.columns = append(v.columns, column)
	v.args = append(v.args, value)
	return v
}

// Remove drops a column from the set.
func (v *Values) Remove(column string) *Values {
	for i, c := range v.columns {
		if c == column {
			v.columns = append(v.columns[:i:i], v.columns[i+1:]...)
			v.args = append(v.args[:i:i], v.args[i+1:]...)
			break
		}
	}
	return v
}

// Get returns the value of a column.
func (v *Values) Get(column string) (any, bool) {
	for i, c := range v.columns {
		if c == column {
			return v.args[i], true
		}
	}
	return nil, false
}

// Columns returns the column names in insertion order.
func (v *Values) Columns() []string {
	if v == nil {
		return nil
	}
	out := make([]string, len(v.columns))
	copy(out, v.columns)
	return out
}

// Args returns the values in column order.
func (v *Values) Args() []any {
	if v == nil {
		return nil
	}
	out := make([]any, len(v.args))
	copy(out, v.args)
	return out
}

// Len returns the number of columns set.
func (v *Values) Len() int {
	if v == nil {
		return 0
	}
	return len(v.columns)
}
