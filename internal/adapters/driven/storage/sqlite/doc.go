// Package sqlite provides the SQLite implementation of driven.Database and
// the database handle lifecycle.
//
// A Store is built from a domain.Configuration and owns a single connection.
// Opening it creates every configured table when the database file is new and
// drops and recreates them when the persisted schema version (PRAGMA
// user_version) is older than the configured one. There is no column-level
// migration.
//
// # Drivers
//
// By default the pure Go modernc.org/sqlite driver is used, which requires
// no CGO. Building with -tags cgo_sqlite (and CGO_ENABLED=1) switches to
// github.com/mattn/go-sqlite3. Both are reached through database/sql and
// wrapped by sqlx.
//
// # Data Location
//
// Without a configured path the database lives in ~/.modelstore/data.
// A configured path points at an externally managed directory whose database
// file must already exist. The name ":memory:" keeps the database in memory.
//
// # Thread Safety
//
// Lifecycle methods are serialised by the Store. Statements share the single
// connection and rely on SQLite's own locking.
package sqlite
