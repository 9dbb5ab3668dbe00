package schema

import (
	"strings"

	"github.com/custodia-labs/modelstore/internal/core/domain"
)

// CreateStatement returns the CREATE TABLE statement for a table.
//
//	CREATE TABLE IF NOT EXISTS users (_id INTEGER PRIMARY KEY, name TEXT(100))
func CreateStatement(table domain.TableMetadata) string {
	cols := table.Columns()
	defs := make([]string, len(cols))
	for i, c := range cols {
		defs[i] = c.Definition()
	}

	var b strings.Builder
	b.WriteString("CREATE TABLE IF NOT EXISTS ")
	b.WriteString(table.Name())
	b.WriteString(" (")
	b.WriteString(strings.Join(defs, ", "))
	b.WriteString(")")
	return b.String()
}

// DropStatement returns the DROP TABLE statement for a table.
func DropStatement(table domain.TableMetadata) string {
	return "DROP TABLE IF EXISTS " + table.Name()
}

// CreateStatements returns one CREATE TABLE statement per table, in order.
func CreateStatements(tables []domain.TableMetadata) []string {
	out := make([]string, len(tables))
	for i, t := range tables {
		out[i] = CreateStatement(t)
	}
	return out
}

// DropStatements returns one DROP TABLE statement per table, in order.
func DropStatements(tables []domain.TableMetadata) []string {
	out := make([]string, len(tables))
	for i, t := range tables {
		out[i] = DropStatement(t)
	}
	return out
}
