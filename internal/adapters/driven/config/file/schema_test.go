package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/modelstore/internal/core/domain"
)

const sampleSchema = `
name = "app.db"
version = 3

[[tables]]
name = "users"

  [[tables.columns]]
  name = "_id"
  type = "INTEGER"
  primary_key = true

  [[tables.columns]]
  name = "name"
  type = "TEXT"
  size = 100

  [[tables.columns]]
  name = "score"
  type = "real"

[[tables]]
name = "notes"

  [[tables.columns]]
  name = "_id"
  type = "INT"
  primary_key = true

  [[tables.columns]]
  name = "body"
  type = "TEXT"
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestDecodeSchema(t *testing.T) {
	cfg, err := DecodeSchema([]byte(sampleSchema))
	require.NoError(t, err)

	assert.Equal(t, "app.db", cfg.DatabaseName)
	assert.Empty(t, cfg.DatabasePath)
	assert.Equal(t, 3, cfg.SchemaVersion)
	assert.True(t, cfg.AutoCreateTables)
	require.Len(t, cfg.Models, 2)

	users := cfg.Models[0]
	assert.Equal(t, "users", users.Name())
	assert.Equal(t, []string{"_id", "name", "score"}, users.ColumnNames())
	assert.Equal(t, "_id", users.PrimaryKey().Name)
	name, ok := users.Column("name")
	require.True(t, ok)
	assert.Equal(t, domain.TypeText, name.Type)
	assert.Equal(t, 100, name.Size)
	score, _ := users.Column("score")
	assert.Equal(t, domain.TypeReal, score.Type)

	notes := cfg.Models[1]
	assert.Equal(t, domain.TypeInteger, notes.PrimaryKey().Type)
}

func TestDecodeSchema_Defaults(t *testing.T) {
	cfg, err := DecodeSchema([]byte(`
name = "app.db"
auto_create = false

[[tables]]
name = "t"
  [[tables.columns]]
  name = "_id"
  type = "INTEGER"
  primary_key = true
`))
	require.NoError(t, err)

	assert.Equal(t, domain.DefaultSchemaVersion, cfg.SchemaVersion)
	assert.False(t, cfg.AutoCreateTables)
}

func TestDecodeSchema_Errors(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantMsg string
	}{
		{
			name:    "malformed toml",
			doc:     `name = `,
			wantMsg: "decoding schema",
		},
		{
			name:    "unknown key",
			doc:     "name = \"app.db\"\ncolour = \"red\"\n",
			wantMsg: "decoding schema",
		},
		{
			name:    "no tables",
			doc:     `name = "app.db"`,
			wantMsg: "no models",
		},
		{
			name: "missing database name",
			doc: `
[[tables]]
name = "t"
  [[tables.columns]]
  name = "_id"
  type = "INTEGER"
  primary_key = true
`,
			wantMsg: "name",
		},
		{
			name: "unknown column type",
			doc: `
name = "app.db"
[[tables]]
name = "t"
  [[tables.columns]]
  name = "_id"
  type = "BLOB"
  primary_key = true
`,
			wantMsg: "BLOB",
		},
		{
			name: "two primary keys",
			doc: `
name = "app.db"
[[tables]]
name = "t"
  [[tables.columns]]
  name = "a"
  type = "INTEGER"
  primary_key = true
  [[tables.columns]]
  name = "b"
  type = "INTEGER"
  primary_key = true
`,
			wantMsg: "column b is the second",
		},
		{
			name: "sized integer primary key",
			doc: `
name = "app.db"
[[tables]]
name = "t"
  [[tables.columns]]
  name = "_id"
  type = "INTEGER"
  size = 10
  primary_key = true
`,
			wantMsg: "cannot have a size",
		},
		{
			name: "no primary key",
			doc: `
name = "app.db"
[[tables]]
name = "t"
  [[tables.columns]]
  name = "a"
  type = "TEXT"
`,
			wantMsg: "no primary key",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeSchema([]byte(tt.doc))

			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrConfiguration)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestLoadSchema(t *testing.T) {
	path := writeFile(t, t.TempDir(), "schema.toml", sampleSchema)

	cfg, err := LoadSchema(path)

	require.NoError(t, err)
	assert.Equal(t, "app.db", cfg.DatabaseName)
	assert.Len(t, cfg.Models, 2)
}

func TestLoadSchema_MissingFile(t *testing.T) {
	_, err := LoadSchema(filepath.Join(t.TempDir(), "missing.toml"))

	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadSchema_InvalidContentNamesFile(t *testing.T) {
	path := writeFile(t, t.TempDir(), "broken.toml", `name = "app.db"`)

	_, err := LoadSchema(path)

	assert.ErrorIs(t, err, domain.ErrConfiguration)
	assert.Contains(t, err.Error(), path)
}

func TestWriteSchema_RoundTrip(t *testing.T) {
	want, err := DecodeSchema([]byte(sampleSchema))
	require.NoError(t, err)
	want.DatabasePath = "/srv/data"
	want.AutoCreateTables = false
	path := filepath.Join(t.TempDir(), "out.toml")

	require.NoError(t, WriteSchema(path, want))
	got, err := LoadSchema(path)

	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestWriteSchema_FilePermissions(t *testing.T) {
	cfg, err := DecodeSchema([]byte(sampleSchema))
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "out.toml")

	require.NoError(t, WriteSchema(path, cfg))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestWriteSchema_InvalidConfiguration(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.toml")

	err := WriteSchema(path, domain.Configuration{})

	assert.ErrorIs(t, err, domain.ErrConfiguration)
	assert.NoFileExists(t, path)
}

func TestEncodeSchema_Layout(t *testing.T) {
	cfg, err := DecodeSchema([]byte(sampleSchema))
	require.NoError(t, err)

	data, err := EncodeSchema(cfg)

	require.NoError(t, err)
	out := string(data)
	assert.Regexp(t, `name = ['"]app\.db['"]`, out)
	assert.Contains(t, out, "[[tables]]")
	assert.Contains(t, out, "[[tables.columns]]")
	assert.Contains(t, out, "primary_key = true")
	assert.Contains(t, out, "size = 100")
	assert.NotContains(t, out, "path =")
}
