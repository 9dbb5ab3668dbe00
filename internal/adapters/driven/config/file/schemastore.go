package file

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/custodia-labs/modelstore/internal/core/domain"
	"github.com/custodia-labs/modelstore/internal/core/ports/driven"
)

// DefaultSchemaFile is the schema file name inside the config directory.
const DefaultSchemaFile = "schema.toml"

// Ensure SchemaStore implements the interface.
var _ driven.SchemaSource = (*SchemaStore)(nil)

// SchemaStore is a file-based implementation of driven.SchemaSource using TOML.
// It keeps the last configuration it loaded or saved.
type SchemaStore struct {
	mu       sync.RWMutex
	filePath string
	current  domain.Configuration
	loaded   bool
}

// NewSchemaStore creates a store for the schema file at path.
// If path is empty, defaults to ~/.modelstore/schema.toml.
func NewSchemaStore(path string) (*SchemaStore, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		path = filepath.Join(home, ".modelstore", DefaultSchemaFile)
	}
	return &SchemaStore{filePath: path}, nil
}

// Load reads the schema file. On failure the previously loaded
// configuration is kept.
func (s *SchemaStore) Load() (domain.Configuration, error) {
	cfg, err := LoadSchema(s.filePath)
	if err != nil {
		return domain.Configuration{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = cfg
	s.loaded = true
	return cfg, nil
}

// Save writes cfg to the schema file, creating its directory.
func (s *SchemaStore) Save(cfg domain.Configuration) error {
	if err := os.MkdirAll(filepath.Dir(s.filePath), 0700); err != nil {
		return fmt.Errorf("creating schema directory: %w", err)
	}
	if err := WriteSchema(s.filePath, cfg); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = cfg
	s.loaded = true
	return nil
}

// Current returns the last configuration loaded or saved, and whether
// there is one.
func (s *SchemaStore) Current() (domain.Configuration, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current, s.loaded
}

// Exists reports whether the schema file is present.
func (s *SchemaStore) Exists() bool {
	_, err := os.Stat(s.filePath)
	return err == nil
}

// Path returns the schema file path.
func (s *SchemaStore) Path() string {
	return s.filePath
}
