// Package schema derives SQL from model metadata.
//
// It is pure string generation with no I/O:
//
//   - CreateStatement / DropStatement: table DDL from domain.TableMetadata
//   - Query: parameterised SELECT / COUNT / WHERE fragments whose identifiers
//     are checked against the table metadata and whose values are always bound
//   - CreateStatementsFromModels: the legacy path that reads `db` struct tags
//
// Identical metadata always produces byte-identical SQL.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or service package
package schema
