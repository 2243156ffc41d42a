package configcmd

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/open-cli-collective/tablecheck/internal/config"
)

func testVault(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "todo.md"), []byte("| a |\n|---|\n| [ ] |\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644))
	return dir
}

func TestRunCheck_VaultOnly(t *testing.T) {
	var out bytes.Buffer
	err := runCheck("", true, &out, &config.Config{Vault: testVault(t)})
	require.NoError(t, err)

	assert.Contains(t, out.String(), "✓ Configuration is valid")
	assert.Contains(t, out.String(), "holds 1 Markdown documents")
	assert.NotContains(t, out.String(), "preview server")
}

func TestRunCheck_WithServer(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/health":
			w.Write([]byte(`{"status": "ok"}`))
		case "/docs":
			w.Write([]byte(`{"documents": ["a.md", "b/c.md"]}`))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer server.Close()

	var out bytes.Buffer
	err := runCheck("", true, &out, &config.Config{Vault: testVault(t), Server: server.URL})
	require.NoError(t, err)
	assert.Contains(t, out.String(), "✓ Preview server is ok")
	assert.Contains(t, out.String(), "✓ Preview server serves 2 Markdown documents")
}

func TestRunCheck_ServerCannotList(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" {
			w.Write([]byte(`{"status": "ok"}`))
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"message": "failed to list vault"}`))
	}))
	defer server.Close()

	var out bytes.Buffer
	err := runCheck("", true, &out, &config.Config{Vault: testVault(t), Server: server.URL})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to list documents on preview server")
	assert.Contains(t, out.String(), "cannot list documents")
}

func TestRunCheck_ServerDown(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	var out bytes.Buffer
	err := runCheck("", true, &out, &config.Config{Vault: testVault(t), Server: server.URL})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "preview server unreachable")
	assert.Contains(t, out.String(), "tablecheck serve")
}

func TestRunCheck_InvalidConfig(t *testing.T) {
	var out bytes.Buffer
	err := runCheck("", true, &out, &config.Config{Vault: filepath.Join(t.TempDir(), "missing")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid config")
	assert.Contains(t, out.String(), "tablecheck init")
}

func TestRunCheck_FromFile(t *testing.T) {
	for _, v := range config.EnvVars {
		t.Setenv(v, "")
	}
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, (&config.Config{Vault: testVault(t)}).Save(path))

	var out bytes.Buffer
	require.NoError(t, runCheck(path, true, &out))
	assert.Contains(t, out.String(), "holds 1 Markdown documents")
}
