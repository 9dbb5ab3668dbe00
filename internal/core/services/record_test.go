package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/modelstore/internal/core/domain"
)

// fakeRow hands fixed values to Scan the way database/sql does for *any.
type fakeRow struct {
	values []any
	err    error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	for i, d := range dest {
		*(d.(*any)) = r.values[i]
	}
	return nil
}

func (r fakeRow) Columns() ([]string, error) {
	return usersTable.ColumnNames(), nil
}

func TestRecordMapper_FromRow(t *testing.T) {
	mapper := NewRecordMapper(usersTable)

	rec, err := mapper.FromRow(fakeRow{values: []any{int64(3), []byte("Ann"), int64(30), nil}})

	require.NoError(t, err)
	assert.Equal(t, int64(3), rec.ID)
	assert.Equal(t, "Ann", rec.Get("name"))
	assert.Equal(t, int64(30), rec.Get("age"))
	assert.Nil(t, rec.Get("score"))
	assert.NotContains(t, rec.Fields, domain.IDColumn)
}

func TestRecordMapper_FromRowScanError(t *testing.T) {
	boom := errors.New("boom")

	_, err := NewRecordMapper(usersTable).FromRow(fakeRow{err: boom})

	assert.ErrorIs(t, err, boom)
}

func TestRecordMapper_FromRowBadID(t *testing.T) {
	_, err := NewRecordMapper(usersTable).FromRow(fakeRow{values: []any{"x", "Ann", nil, nil}})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "column _id")
}

func TestRecordMapper_Values(t *testing.T) {
	mapper := NewRecordMapper(usersTable)

	values := mapper.Values(Record{ID: 9, Fields: map[string]any{
		"score": 1.5,
		"name":  "Ann",
	}})

	assert.Equal(t, []string{"name", "score"}, values.Columns())
	assert.Equal(t, []any{"Ann", 1.5}, values.Args())
}

func TestRecordMapper_ValuesKeepsUnknownFields(t *testing.T) {
	values := NewRecordMapper(usersTable).Values(Record{Fields: map[string]any{"email": "a@b.c"}})

	v, ok := values.Get("email")
	require.True(t, ok)
	assert.Equal(t, "a@b.c", v)
}

func TestRecordMapper_WithID(t *testing.T) {
	mapper := NewRecordMapper(usersTable)

	rec := mapper.WithID(Record{}, 12)

	assert.Equal(t, int64(12), mapper.ID(rec))
	assert.Equal(t, usersTable.Name(), mapper.Table().Name())
}

func TestRecordDAO_RoundTrip(t *testing.T) {
	dao, err := NewRecordDAO(setupTestDB(t), usersTable)
	require.NoError(t, err)
	ctx := context.Background()

	created, err := dao.Create(ctx, Record{Fields: map[string]any{"name": "Ann", "age": 30, "score": 4.5}})
	require.NoError(t, err)

	got, ok, err := dao.FindByPrimaryKey(ctx, created.ID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "Ann", got.Get("name"))
	assert.EqualValues(t, 30, got.Get("age"))
	assert.InDelta(t, 4.5, got.Get("score"), 0.0001)
}

func TestRecordDAO_UnknownFieldRejected(t *testing.T) {
	dao, err := NewRecordDAO(setupTestDB(t), usersTable)
	require.NoError(t, err)

	_, err = dao.Create(context.Background(), Record{Fields: map[string]any{"email": "a@b.c"}})

	assert.ErrorIs(t, err, domain.ErrConfiguration)
}
