package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/modelstore/internal/core/domain"
)

func TestQuery_SelectAll(t *testing.T) {
	sql, args, err := NewQuery(usersTable()).Select()

	require.NoError(t, err)
	assert.Equal(t, "SELECT _id, name, score FROM users", sql)
	assert.Empty(t, args)
}

func TestQuery_SelectWhereOrderLimit(t *testing.T) {
	sql, args, err := NewQuery(usersTable()).
		Where("name", "Ann").
		Where("score", 2.5).
		OrderBy("score", true).
		OrderBy(domain.IDColumn, false).
		Limit(1).
		Select()

	require.NoError(t, err)
	assert.Equal(t, "SELECT _id, name, score FROM users WHERE name = ? AND score = ? ORDER BY score DESC, _id ASC LIMIT 1", sql)
	assert.Equal(t, []any{"Ann", 2.5}, args)
}

func TestQuery_SelectColumns(t *testing.T) {
	sql, _, err := NewQuery(usersTable()).Where(domain.IDColumn, 3).Select(domain.IDColumn)

	require.NoError(t, err)
	assert.Equal(t, "SELECT _id FROM users WHERE _id = ?", sql)
}

func TestQuery_ValueIsBoundNotSpliced(t *testing.T) {
	sql, args, err := NewQuery(usersTable()).Where("name", "x' OR '1'='1").Select()

	require.NoError(t, err)
	assert.NotContains(t, sql, "OR")
	assert.Equal(t, []any{"x' OR '1'='1"}, args)
}

func TestQuery_UnknownColumn(t *testing.T) {
	tests := []struct {
		name  string
		build func(q *Query) *Query
	}{
		{"where", func(q *Query) *Query { return q.Where("name = 1 OR 1", "x") }},
		{"where in", func(q *Query) *Query { return q.WhereIn("missing", 1, 2) }},
		{"order by", func(q *Query) *Query { return q.OrderBy("missing", false) }},
		{"order by clause", func(q *Query) *Query { return q.OrderByClause("name; DROP TABLE users") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := tt.build(NewQuery(usersTable()))

			_, _, err := q.Select()
			assert.ErrorIs(t, err, domain.ErrInvalidQuery)
			_, _, err = q.Count()
			assert.ErrorIs(t, err, domain.ErrInvalidQuery)
			_, _, err = q.WhereClause()
			assert.ErrorIs(t, err, domain.ErrInvalidQuery)
			assert.Error(t, q.Err())
		})
	}
}

func TestQuery_WhereRejectsList(t *testing.T) {
	_, _, err := NewQuery(usersTable()).Where("name", []string{"a", "b"}).Select()
	assert.ErrorIs(t, err, domain.ErrInvalidQuery)

	_, _, err = NewQuery(usersTable()).Where(domain.IDColumn, [2]int{1, 2}).Select()
	assert.ErrorIs(t, err, domain.ErrInvalidQuery)

	sql, args, err := NewQuery(usersTable()).Where("name", []byte("Ann")).Select()
	require.NoError(t, err)
	assert.Contains(t, sql, "WHERE name = ?")
	assert.Equal(t, []any{[]byte("Ann")}, args)
}

func TestQuery_SelectUnknownProjection(t *testing.T) {
	_, _, err := NewQuery(usersTable()).Select("password")
	assert.ErrorIs(t, err, domain.ErrInvalidQuery)
}

func TestQuery_WhereIn(t *testing.T) {
	sql, args, err := NewQuery(usersTable()).WhereIn(domain.IDColumn, 1, 2, 3).Select(domain.IDColumn)

	require.NoError(t, err)
	assert.Equal(t, "SELECT _id FROM users WHERE _id IN (?, ?, ?)", sql)
	assert.Equal(t, []any{1, 2, 3}, args)
}

func TestQuery_WhereInEmpty(t *testing.T) {
	clause, args, err := NewQuery(usersTable()).WhereIn(domain.IDColumn).WhereClause()

	require.NoError(t, err)
	assert.Equal(t, "0 = 1", clause)
	assert.Empty(t, args)
}

func TestQuery_Count(t *testing.T) {
	sql, args, err := NewQuery(usersTable()).Where("name", "Ann").Count()

	require.NoError(t, err)
	assert.Equal(t, "SELECT COUNT(*) FROM users WHERE name = ?", sql)
	assert.Equal(t, []any{"Ann"}, args)
}

func TestQuery_WhereClause(t *testing.T) {
	clause, args, err := NewQuery(usersTable()).Where(domain.IDColumn, int64(4)).WhereClause()
	require.NoError(t, err)
	assert.Equal(t, "_id = ?", clause)
	assert.Equal(t, []any{int64(4)}, args)

	clause, args, err = NewQuery(usersTable()).WhereClause()
	require.NoError(t, err)
	assert.Empty(t, clause)
	assert.Empty(t, args)
}

func TestParseOrderBy(t *testing.T) {
	tests := []struct {
		name     string
		clause   string
		expected []string
	}{
		{"empty", "", nil},
		{"blank", "   ", nil},
		{"single column", "name", []string{"name ASC"}},
		{"descending", "name desc", []string{"name DESC"}},
		{"with prefix", "ORDER BY score DESC, _id", []string{"score DESC", "_id ASC"}},
		{"lower prefix", "order by name asc", []string{"name ASC"}},
		{"prefix only", "ORDER BY", nil},
		{"prefix across lines", "ORDER\n\tBY name", []string{"name ASC"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			keys, err := ParseOrderBy(usersTable(), tt.clause)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, keys)
		})
	}
}

func TestParseOrderBy_Errors(t *testing.T) {
	tests := []struct {
		name   string
		clause string
	}{
		{"unknown column", "age"},
		{"bad direction", "name SIDEWAYS"},
		{"too many tokens", "name DESC NULLS"},
		{"empty term", "name,,score"},
		{"subquery", "(SELECT 1)"},
		{"prefix without space", "ORDER BYname"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseOrderBy(usersTable(), tt.clause)
			assert.ErrorIs(t, err, domain.ErrInvalidQuery)
		})
	}
}
