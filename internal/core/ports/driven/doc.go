// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Interfaces
//
//   - Database: Statement execution, row inserts/updates/deletes and transactions
//   - Rows / Row: The row cursor returned by Database.Query
//   - Mapper: Per-model conversion between rows and typed records
//   - SchemaSource: Loading and saving the database configuration
//
// The SQLite adapter in adapters/driven/storage/sqlite implements Database;
// adapters/driven/config/file implements SchemaSource.
// Mappers are written next to the model types that use them.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or service package
package driven
