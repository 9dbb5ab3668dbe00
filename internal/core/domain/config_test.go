package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigurationBuilder_Defaults(t *testing.T) {
	cfg, err := NewConfigurationBuilder().
		DatabaseName("app.db").
		Models(usersTable(t)).
		Build()

	require.NoError(t, err)
	assert.Equal(t, "app.db", cfg.DatabaseName)
	assert.Empty(t, cfg.DatabasePath)
	assert.Equal(t, DefaultSchemaVersion, cfg.SchemaVersion)
	assert.True(t, cfg.AutoCreateTables)
	require.Len(t, cfg.Models, 1)

	users, ok := cfg.Model("users")
	assert.True(t, ok)
	assert.Equal(t, "users", users.Name())
	_, ok = cfg.Model("missing")
	assert.False(t, ok)
}

func TestConfigurationBuilder_AllFields(t *testing.T) {
	notes := NewTable("notes").PrimaryKey(IDColumn, TypeInteger).Column("body", TypeText).MustBuild()

	cfg, err := NewConfigurationBuilder().
		DatabaseName("app.db").
		DatabasePath("/var/lib/app").
		SchemaVersion(3).
		Models(usersTable(t), notes).
		AutoCreateTables(false).
		Build()

	require.NoError(t, err)
	assert.Equal(t, "/var/lib/app", cfg.DatabasePath)
	assert.Equal(t, 3, cfg.SchemaVersion)
	assert.False(t, cfg.AutoCreateTables)
	assert.Equal(t, "users", cfg.Models[0].Name())
	assert.Equal(t, "notes", cfg.Models[1].Name())
}

func TestConfiguration_Validate(t *testing.T) {
	users := usersTable(t)

	tests := []struct {
		name    string
		cfg     Configuration
		message string
	}{
		{"missing name", Configuration{SchemaVersion: 1, Models: []TableMetadata{users}}, "database name is not set"},
		{"name with separator", Configuration{DatabaseName: "../app.db", SchemaVersion: 1, Models: []TableMetadata{users}}, "path separator"},
		{"missing models", Configuration{DatabaseName: "app.db", SchemaVersion: 1}, "no models configured"},
		{"zero version", Configuration{DatabaseName: "app.db", Models: []TableMetadata{users}}, "schema version"},
		{"zero model", Configuration{DatabaseName: "app.db", SchemaVersion: 1, Models: []TableMetadata{{}}}, "has no metadata"},
		{"duplicate table", Configuration{DatabaseName: "app.db", SchemaVersion: 1, Models: []TableMetadata{users, users}}, "configured twice"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrConfiguration)
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}

func TestConfiguration_ValidateMemory(t *testing.T) {
	cfg := Configuration{DatabaseName: MemoryDatabase, SchemaVersion: 1, Models: []TableMetadata{usersTable(t)}}
	assert.NoError(t, cfg.Validate())
}

func TestConfigurationBuilder_BuildFails(t *testing.T) {
	_, err := NewConfigurationBuilder().Models(usersTable(t)).Build()
	assert.ErrorIs(t, err, ErrConfiguration)
}
