// Package domain defines the core entities for modelstore.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Column: A single column of a model's table (name, SQL type, size, primary key)
//   - TableMetadata: The ordered, immutable description of one model's table
//   - Values: Ordered column/value pairs used for inserts and updates
//   - Configuration: Database name, location, schema version and models
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
