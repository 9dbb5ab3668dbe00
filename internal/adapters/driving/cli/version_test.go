package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionCmd_Use(t *testing.T) {
	assert.Equal(t, "version", versionCmd.Use)
}

func TestVersionCmd_Short(t *testing.T) {
	assert.Equal(t, "Print the version number", versionCmd.Short)
}

func TestVersionCmd_Executes(t *testing.T) {
	// Save and restore version
	originalVersion, originalCommit := version, commit
	SetBuildInfo("test-version-1.0.0", "abc123")
	defer SetBuildInfo(originalVersion, originalCommit)

	out, err := execute(t, "version")

	require.NoError(t, err)
	assert.Contains(t, out, "modelstore version test-version-1.0.0 (commit abc123)")
	assert.Contains(t, out, "sqlite driver:")
}

func TestVersionCmd_DisplaysDevByDefault(t *testing.T) {
	originalVersion, originalCommit := version, commit
	SetBuildInfo("dev", "none")
	defer SetBuildInfo(originalVersion, originalCommit)

	out, err := execute(t, "version")

	require.NoError(t, err)
	assert.Contains(t, out, "modelstore version dev")
}
