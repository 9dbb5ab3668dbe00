// Package file provides file-based implementations of driven port interfaces.
// These adapters persist data to the local filesystem.
//
// Adapters:
//   - SchemaStore: TOML schema file holding the database configuration
//     and table metadata
//   - Watch: reloads a schema file when it changes on disk
package file
