// Package services holds the generic data access layer.
//
// A DAO pairs a driven.Database with a driven.Mapper for one model type and
// offers create, update, delete and lookup operations on the model's table.
// Record and RecordMapper expose any configured table as column maps for
// tools that have no dedicated model type.
//
// Services depend only on the driven ports; the SQLite adapter supplies the
// Database at runtime.
package services
