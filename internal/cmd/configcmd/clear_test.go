package configcmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/open-cli-collective/tablecheck/internal/config"
)

func TestRunClear_WithExistingConfig(t *testing.T) {
	for _, v := range config.EnvVars {
		t.Setenv(v, "")
	}
	configPath := filepath.Join(t.TempDir(), "tablecheck", "config.yml")
	require.NoError(t, (&config.Config{Vault: "/notes"}).Save(configPath))

	var out bytes.Buffer
	require.NoError(t, runClear(configPath, true, &out))
	assert.Contains(t, out.String(), "Configuration cleared from "+configPath)

	// Verify file is deleted
	_, err := os.Stat(configPath)
	assert.True(t, os.IsNotExist(err))
}

func TestRunClear_NoConfigFile(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, runClear(filepath.Join(t.TempDir(), "config.yml"), true, &out))
	assert.Contains(t, out.String(), "No config file to remove")
}

func TestRunClear_ReportsEnvVars(t *testing.T) {
	for _, v := range config.EnvVars {
		t.Setenv(v, "")
	}
	t.Setenv("TABLECHECK_VAULT", "/env/notes")

	var out bytes.Buffer
	require.NoError(t, runClear(filepath.Join(t.TempDir(), "config.yml"), true, &out))
	assert.Contains(t, out.String(), "[TABLECHECK_VAULT]")
}

func TestRunClear_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")

	// Running twice should succeed
	require.NoError(t, runClear(path, true, &bytes.Buffer{}))
	require.NoError(t, runClear(path, true, &bytes.Buffer{}))
}
