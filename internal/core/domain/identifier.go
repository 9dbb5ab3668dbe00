package domain

// IDColumn is the conventional primary key column of a model table.
const IDColumn = "_id"

// ValidIdentifier reports whether name may be spliced into generated SQL
// as a table or column name: a letter or underscore followed by letters,
// digits or underscores.
func ValidIdentifier(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case i > 0 && r >= '0' && r <= '9':
		default:
			return false
		}
	}
	return true
}
