package driven

import "github.com/custodia-labs/modelstore/internal/core/domain"

// SchemaSource provides the database configuration and table metadata.
// Implementations handle persistence (e.g., TOML files) and decoding.
type SchemaSource interface {
	// Load reads and validates the configuration.
	Load() (domain.Configuration, error)

	// Save persists a configuration, replacing the stored one.
	Save(cfg domain.Configuration) error

	// Path returns the location of the stored configuration.
	Path() string
}
