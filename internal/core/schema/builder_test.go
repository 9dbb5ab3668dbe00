package schema

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/modelstore/internal/core/domain"
)

func usersTable() domain.TableMetadata {
	return domain.NewTable("users").
		PrimaryKey(domain.IDColumn, domain.TypeInteger).
		SizedColumn("name", domain.TypeText, 100).
		Column("score", domain.TypeReal).
		MustBuild()
}

func TestCreateStatement(t *testing.T) {
	got := CreateStatement(usersTable())

	assert.Equal(t,
		"CREATE TABLE IF NOT EXISTS users (_id INTEGER PRIMARY KEY, name TEXT(100), score REAL)",
		got)
}

func TestCreateStatement_Deterministic(t *testing.T) {
	first := CreateStatement(usersTable())
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, CreateStatement(usersTable()))
	}
}

func TestCreateStatement_ColumnsInOrderWithSinglePrimaryKey(t *testing.T) {
	tests := []struct {
		name    string
		columns []domain.Column
	}{
		{
			name: "primary key first",
			columns: []domain.Column{
				{Name: "_id", Type: domain.TypeInteger, PrimaryKey: true},
				{Name: "a", Type: domain.TypeText},
				{Name: "b", Type: domain.TypeReal},
			},
		},
		{
			name: "primary key last",
			columns: []domain.Column{
				{Name: "a", Type: domain.TypeText, Size: 10},
				{Name: "b", Type: domain.TypeInteger},
				{Name: "code", Type: domain.TypeText, Size: 4, PrimaryKey: true},
			},
		},
		{
			name: "single column",
			columns: []domain.Column{
				{Name: "_id", Type: domain.TypeInteger, PrimaryKey: true},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, err := domain.NewTableMetadata("things", tt.columns)
			require.NoError(t, err)

			ddl := CreateStatement(table)

			assert.Equal(t, 1, strings.Count(ddl, "PRIMARY KEY"))
			last := -1
			for _, c := range tt.columns {
				idx := strings.Index(ddl, c.Definition())
				require.GreaterOrEqual(t, idx, 0, "missing %s", c.Name)
				assert.Greater(t, idx, last, "column %s out of order", c.Name)
				last = idx
			}
			pk := table.PrimaryKey()
			assert.Contains(t, ddl, pk.Name+" "+pk.Type.String())
		})
	}
}

func TestDropStatement(t *testing.T) {
	assert.Equal(t, "DROP TABLE IF EXISTS users", DropStatement(usersTable()))
}

func TestStatements_KeepModelOrder(t *testing.T) {
	notes := domain.NewTable("notes").PrimaryKey(domain.IDColumn, domain.TypeInteger).MustBuild()
	tables := []domain.TableMetadata{usersTable(), notes}

	creates := CreateStatements(tables)
	drops := DropStatements(tables)

	require.Len(t, creates, 2)
	assert.Contains(t, creates[0], "users")
	assert.Contains(t, creates[1], "notes")
	assert.Equal(t, []string{"DROP TABLE IF EXISTS users", "DROP TABLE IF EXISTS notes"}, drops)
}
