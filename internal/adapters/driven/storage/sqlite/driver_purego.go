//go:build !cgo_sqlite

package sqlite

import (
	_ "modernc.org/sqlite" // SQLite driver
)

const (
	driverName    = "sqlite"
	driverType    = "purego"
	driverPackage = "modernc.org/sqlite"
)
