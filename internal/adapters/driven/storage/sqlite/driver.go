package sqlite

// DriverInfo describes the database/sql driver compiled into the binary.
type DriverInfo struct {
	Name    string `json:"name"`
	Type    string `json:"type"`
	Package string `json:"package"`
}

// DriverName returns the database/sql driver name in use.
func DriverName() string {
	return driverName
}

// IsCGO returns true if the CGO implementation is being used.
func IsCGO() bool {
	return driverType == "cgo"
}

// Driver returns information about the selected SQLite driver.
func Driver() DriverInfo {
	return DriverInfo{Name: driverName, Type: driverType, Package: driverPackage}
}
