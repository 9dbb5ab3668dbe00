package logger

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func capture(t *testing.T, verbose bool) *bytes.Buffer {
	t.Helper()
	buf := new(bytes.Buffer)
	SetOutput(buf)
	SetVerbose(verbose)
	t.Cleanup(Reset)
	return buf
}

func TestLogger_QuietByDefault(t *testing.T) {
	buf := capture(t, false)

	Debug("ddl: %s", "CREATE TABLE users")
	Info("opened %s", "app.db")
	Warn("careful")
	Section("schema")

	assert.Empty(t, buf.String())
	assert.False(t, IsVerbose())
}

func TestLogger_Verbose(t *testing.T) {
	buf := capture(t, true)

	Debug("ddl: %s", "DROP TABLE IF EXISTS users")
	Info("opened %s", "app.db")
	Warn("version %d", 3)
	Section("upgrade")

	out := buf.String()
	assert.True(t, IsVerbose())
	assert.Contains(t, out, "[DEBUG] ddl: DROP TABLE IF EXISTS users\n")
	assert.Contains(t, out, "[INFO] opened app.db\n")
	assert.Contains(t, out, "[WARN] version 3\n")
	assert.Contains(t, out, "=== upgrade ===")
}

func TestLogger_Reset(t *testing.T) {
	buf := capture(t, true)
	Reset()

	Info("hidden")

	assert.Empty(t, buf.String())
	assert.False(t, IsVerbose())
}
