package domain

import "errors"

// Domain errors represent data-layer failures.
// Callers match them with errors.Is; concrete causes are wrapped.
var (
	// ErrConfiguration indicates bad or missing metadata or configuration.
	// It is fatal and never retried.
	ErrConfiguration = errors.New("configuration error")

	// ErrNotInitialized indicates a store was used before it was configured.
	ErrNotInitialized = errors.New("store not initialized")

	// ErrStorage indicates a failure reported by the underlying database.
	ErrStorage = errors.New("storage error")

	// ErrPersistence indicates a write was rejected by the database
	// (constraint violation, closed handle). Errors carrying it also match ErrStorage.
	ErrPersistence = errors.New("persistence error")

	// ErrClosed indicates the database handle is not open.
	ErrClosed = errors.New("database closed")

	// ErrDowngrade indicates the persisted schema version is newer than the configured one.
	ErrDowngrade = errors.New("schema downgrade not supported")

	// ErrInvalidQuery indicates a field name or ordering clause that does not
	// match the table metadata.
	ErrInvalidQuery = errors.New("invalid query")
)
