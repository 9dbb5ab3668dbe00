package sqlite

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/jmoiron/sqlx"

	"github.com/custodia-labs/modelstore/internal/core/domain"
	"github.com/custodia-labs/modelstore/internal/core/ports/driven"
	"github.com/custodia-labs/modelstore/internal/core/schema"
	"github.com/custodia-labs/modelstore/internal/logger"
)

const (
	pragmaForeignKeysOn = `PRAGMA foreign_keys = ON`
	pragmaBusyTimeout   = `PRAGMA busy_timeout = 5000`
	pragmaUserVersion   = `PRAGMA user_version`
)

// Store owns the connection to one SQLite database and its schema.
//
// The zero value is an uninitialised store: Open and Database report
// domain.ErrNotInitialized. Use New to build a usable one.
type Store struct {
	mu      sync.Mutex
	cfg     domain.Configuration
	ready   bool
	dataDir string

	db   *sqlx.DB
	path string
}

// Option customises a Store.
type Option func(*Store)

// WithDataDir sets the directory used for databases without a configured
// path. It defaults to ~/.modelstore/data.
func WithDataDir(dir string) Option {
	return func(s *Store) {
		s.dataDir = dir
	}
}

// New validates the configuration and returns a closed store for it.
func New(cfg domain.Configuration, opts ...Option) (*Store, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("initializing store: %w", err)
	}
	cfg.Models = append([]domain.TableMetadata(nil), cfg.Models...)

	s := &Store{cfg: cfg, ready: true}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Open connects to the database and brings its schema to the configured
// version. It does nothing if the store is already open. On failure the
// store stays closed.
func (s *Store) Open(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.ready {
		return fmt.Errorf("opening database: %w", domain.ErrNotInitialized)
	}
	if s.db != nil {
		return nil
	}

	path, err := s.resolvePath()
	if err != nil {
		return err
	}

	db, err := sqlx.Open(driverName, path)
	if err != nil {
		return fmt.Errorf("%w: opening database %s: %w", domain.ErrStorage, path, err)
	}
	// One connection: SQLite serialises writers and :memory: databases
	// live and die with their connection.
	db.SetMaxOpenConns(1)

	if err := configureSQLite(ctx, db); err != nil {
		_ = db.Close()
		return err
	}

	if err := s.prepareSchema(ctx, db); err != nil {
		_ = db.Close()
		return err
	}

	s.db = db
	s.path = path
	logger.Info("opened %s (schema version %d, driver %s)", path, s.cfg.SchemaVersion, driverType)
	return nil
}

// Close releases the connection. Closing a closed store is a no-op.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	logger.Info("closed %s", s.path)
	if err != nil {
		return fmt.Errorf("%w: closing database: %w", domain.ErrStorage, err)
	}
	return nil
}

// IsOpen reports whether the store holds a live connection.
func (s *Store) IsOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db != nil
}

// Database returns the handle DAOs operate on. It stays valid across
// Close and a later Open; calls made while the store is closed fail with
// domain.ErrClosed.
func (s *Store) Database() (driven.Database, error) {
	if !s.isReady() {
		return nil, fmt.Errorf("database handle: %w", domain.ErrNotInitialized)
	}
	return &database{store: s}, nil
}

// Path returns the database file path, empty until the store is first opened.
func (s *Store) Path() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.path
}

// Configuration returns the store's configuration.
func (s *Store) Configuration() domain.Configuration {
	cfg := s.cfg
	cfg.Models = s.Tables()
	return cfg
}

// Tables returns the configured models in creation order.
func (s *Store) Tables() []domain.TableMetadata {
	return append([]domain.TableMetadata(nil), s.cfg.Models...)
}

// Version returns the schema version persisted in the database.
func (s *Store) Version(ctx context.Context) (int, error) {
	db, err := s.handle()
	if err != nil {
		return 0, err
	}
	return readVersion(ctx, db)
}

// Wipe deletes every row of every configured table in one transaction.
func (s *Store) Wipe(ctx context.Context) error {
	db, err := s.Database()
	if err != nil {
		return err
	}
	return db.InTx(ctx, func(tx driven.Database) error {
		for _, t := range s.cfg.Models {
			n, err := tx.Delete(ctx, t.Name(), "")
			if err != nil {
				return err
			}
			logger.Debug("wiped %d rows from %s", n, t.Name())
		}
		return nil
	})
}

// Rebuild drops and recreates every configured table, discarding their rows.
func (s *Store) Rebuild(ctx context.Context) error {
	db, err := s.handle()
	if err != nil {
		return err
	}
	return inTx(ctx, db, func(tx *sqlx.Tx) error {
		return s.recreateTables(ctx, tx)
	})
}

// ==================== Lifecycle helpers ====================

func (s *Store) isReady() bool {
	return s != nil && s.ready
}

// handle returns the live connection.
func (s *Store) handle() (*sqlx.DB, error) {
	if !s.isReady() {
		return nil, fmt.Errorf("database handle: %w", domain.ErrNotInitialized)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrStorage, domain.ErrClosed)
	}
	return s.db, nil
}

func (s *Store) resolvePath() (string, error) {
	name := s.cfg.DatabaseName
	if name == domain.MemoryDatabase {
		return name, nil
	}

	if s.cfg.DatabasePath != "" {
		path := filepath.Join(s.cfg.DatabasePath, name)
		if _, err := os.Stat(path); err != nil {
			return "", fmt.Errorf("%w: external database %s: %w", domain.ErrStorage, path, err)
		}
		return path, nil
	}

	dataDir := s.dataDir
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("%w: getting home directory: %w", domain.ErrStorage, err)
		}
		dataDir = filepath.Join(home, ".modelstore", "data")
	}

	// Ensure directory exists
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return "", fmt.Errorf("%w: creating data directory: %w", domain.ErrStorage, err)
	}
	return filepath.Join(dataDir, name), nil
}

func configureSQLite(ctx context.Context, db *sqlx.DB) error {
	for _, stmt := range []string{pragmaBusyTimeout, pragmaForeignKeysOn} {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("%w: configure sqlite %q: %w", domain.ErrStorage, stmt, err)
		}
	}
	return nil
}

// prepareSchema creates the tables of a new database, rebuilds them when
// the persisted version is older than the configured one and refuses to
// open a newer database.
func (s *Store) prepareSchema(ctx context.Context, db *sqlx.DB) error {
	current, err := readVersion(ctx, db)
	if err != nil {
		return err
	}
	target := s.cfg.SchemaVersion

	switch {
	case current == target:
		return nil
	case current > target:
		logger.Warn("database is at schema version %d, configured version is %d", current, target)
		return fmt.Errorf("%w: %w: database version %d, configured %d",
			domain.ErrStorage, domain.ErrDowngrade, current, target)
	}

	return inTx(ctx, db, func(tx *sqlx.Tx) error {
		if s.cfg.AutoCreateTables {
			if current == 0 {
				logger.Section("create schema")
				if err := s.createTables(ctx, tx); err != nil {
					return err
				}
			} else {
				logger.Section(fmt.Sprintf("upgrade schema %d -> %d", current, target))
				if err := s.recreateTables(ctx, tx); err != nil {
					return err
				}
			}
		}
		return writeVersion(ctx, tx, target)
	})
}

func (s *Store) createTables(ctx context.Context, tx *sqlx.Tx) error {
	for _, t := range s.cfg.Models {
		if err := execDDL(ctx, tx, schema.CreateStatement(t)); err != nil {
			return err
		}
		logger.Info("created table %s", t.Name())
	}
	return nil
}

func (s *Store) recreateTables(ctx context.Context, tx *sqlx.Tx) error {
	for _, t := range s.cfg.Models {
		if err := execDDL(ctx, tx, schema.DropStatement(t)); err != nil {
			return err
		}
	}
	return s.createTables(ctx, tx)
}

func execDDL(ctx context.Context, tx *sqlx.Tx, stmt string) error {
	logger.Debug("ddl: %s", stmt)
	if _, err := tx.ExecContext(ctx, stmt); err != nil {
		return fmt.Errorf("%w: executing %q: %w", domain.ErrStorage, stmt, err)
	}
	return nil
}

func readVersion(ctx context.Context, q sqlx.QueryerContext) (int, error) {
	var version int
	if err := sqlx.GetContext(ctx, q, &version, pragmaUserVersion); err != nil {
		return 0, fmt.Errorf("%w: reading schema version: %w", domain.ErrStorage, err)
	}
	return version, nil
}

func writeVersion(ctx context.Context, tx *sqlx.Tx, version int) error {
	// PRAGMA arguments cannot be bound.
	if _, err := tx.ExecContext(ctx, fmt.Sprintf("%s = %d", pragmaUserVersion, version)); err != nil {
		return fmt.Errorf("%w: writing schema version: %w", domain.ErrStorage, err)
	}
	return nil
}

// inTx runs fn in a transaction on db, committing on success.
func inTx(ctx context.Context, db *sqlx.DB, fn func(tx *sqlx.Tx) error) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: beginning transaction: %w", domain.ErrStorage, err)
	}
	defer tx.Rollback() //nolint:errcheck

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: committing transaction: %w", domain.ErrStorage, err)
	}
	return nil
}
