package domain

import (
	"fmt"
	"strings"
)

// DefaultSchemaVersion is used when a configuration does not set one.
const DefaultSchemaVersion = 1

// MemoryDatabase is the database name that keeps everything in memory.
const MemoryDatabase = ":memory:"

// Configuration describes one database and the models stored in it.
// It is built once by ConfigurationBuilder and not modified afterwards.
type Configuration struct {
	DatabaseName string
	// DatabasePath points at an externally managed directory holding the
	// database file. Empty means the store picks its own data directory.
	DatabasePath     string
	SchemaVersion    int
	Models           []TableMetadata
	AutoCreateTables bool
}

// Validate checks that the configuration can be used to open a store.
func (c Configuration) Validate() error {
	if strings.TrimSpace(c.DatabaseName) == "" {
		return fmt.Errorf("%w: database name is not set", ErrConfiguration)
	}
	if c.DatabaseName != MemoryDatabase && strings.ContainsAny(c.DatabaseName, `/\`) {
		return fmt.Errorf("%w: database name %q must not contain a path separator", ErrConfiguration, c.DatabaseName)
	}
	if len(c.Models) == 0 {
		return fmt.Errorf("%w: no models configured", ErrConfiguration)
	}
	if c.SchemaVersion < 1 {
		return fmt.Errorf("%w: schema version must be at least 1, got %d", ErrConfiguration, c.SchemaVersion)
	}

	seen := make(map[string]struct{}, len(c.Models))
	for i, m := range c.Models {
		if m.IsZero() {
			return fmt.Errorf("%w: model %d has no metadata", ErrConfiguration, i)
		}
		if _, dup := seen[m.Name()]; dup {
			return fmt.Errorf("%w: table %s configured twice", ErrConfiguration, m.Name())
		}
		seen[m.Name()] = struct{}{}
	}
	return nil
}

// Model returns the metadata of the named table.
func (c Configuration) Model(table string) (TableMetadata, bool) {
	for _, m := range c.Models {
		if m.Name() == table {
			return m, true
		}
	}
	return TableMetadata{}, false
}

// ConfigurationBuilder assembles a Configuration.
type ConfigurationBuilder struct {
	cfg Configuration
}

// NewConfigurationBuilder returns a builder with the default schema version
// and automatic table creation enabled.
func NewConfigurationBuilder() *ConfigurationBuilder {
	return &ConfigurationBuilder{cfg: Configuration{
		SchemaVersion:    DefaultSchemaVersion,
		AutoCreateTables: true,
	}}
}

// DatabaseName sets the database file name.
func (b *ConfigurationBuilder) DatabaseName(name string) *ConfigurationBuilder {
	b.cfg.DatabaseName = name
	return b
}

// DatabasePath sets the directory of an externally managed database file.
func (b *ConfigurationBuilder) DatabasePath(path string) *ConfigurationBuilder {
	b.cfg.DatabasePath = path
	return b
}

// SchemaVersion sets the target schema version.
func (b *ConfigurationBuilder) SchemaVersion(version int) *ConfigurationBuilder {
	b.cfg.SchemaVersion = version
	return b
}

// Models appends model tables, in creation order.
func (b *ConfigurationBuilder) Models(models ...TableMetadata) *ConfigurationBuilder {
	b.cfg.Models = append(b.cfg.Models, models...)
	return b
}

// AutoCreateTables toggles table creation when the database file is new
// or upgraded. With it off the caller owns the schema.
func (b *ConfigurationBuilder) AutoCreateTables(enabled bool) *ConfigurationBuilder {
	b.cfg.AutoCreateTables = enabled
	return b
}

// Build validates and returns the configuration.
func (b *ConfigurationBuilder) Build() (Configuration, error) {
	cfg := b.cfg
	cfg.Models = append([]TableMetadata(nil), b.cfg.Models...)
	if err := cfg.Validate(); err != nil {
		return Configuration{}, err
	}
	return cfg, nil
}
