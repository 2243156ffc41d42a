package configcmd

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/open-cli-collective/tablecheck/internal/config"
)

func TestRunShow_WithConfigFile(t *testing.T) {
	for _, v := range config.EnvVars {
		t.Setenv(v, "")
	}
	configPath := filepath.Join(t.TempDir(), "config.yml")

	cfg := &config.Config{
		Vault:  "/home/me/notes",
		Server: "http://127.0.0.1:7777",
	}
	require.NoError(t, cfg.Save(configPath))

	var out bytes.Buffer
	require.NoError(t, runShow(configPath, true, &out))

	assert.Contains(t, out.String(), "/home/me/notes  (source: config)")
	assert.Contains(t, out.String(), "127.0.0.1:7777  (source: default)")
	assert.Contains(t, out.String(), "warn  (source: default)")
	assert.NotContains(t, out.String(), "(file not found)")
}

func TestRunShow_EnvOverride(t *testing.T) {
	for _, v := range config.EnvVars {
		t.Setenv(v, "")
	}
	t.Setenv("TABLECHECK_VAULT", "/env/notes")

	var out bytes.Buffer
	require.NoError(t, runShow(filepath.Join(t.TempDir(), "missing.yml"), true, &out))

	assert.Contains(t, out.String(), "/env/notes  (source: TABLECHECK_VAULT)")
	assert.Contains(t, out.String(), "(file not found)")
}

func TestRunShow_NoConfigFile(t *testing.T) {
	for _, v := range config.EnvVars {
		t.Setenv(v, "")
	}

	var out bytes.Buffer
	require.NoError(t, runShow(filepath.Join(t.TempDir(), "config.yml"), true, &out))
	assert.Contains(t, out.String(), "Vault:      -")
}
