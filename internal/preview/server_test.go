package preview

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/open-cli-collective/tablecheck/api"
	"github.com/open-cli-collective/tablecheck/internal/vault"
	"github.com/open-cli-collective/tablecheck/pkg/checkbox"
)

const tasksDoc = "# Sprint\n\n| Task | Owner | Done |\n|------|-------|------|\n| Write [docs](http://x) | ana | [x] |\n| Ship | bo | [ ] review [ ] deploy |\n"

func newTestServer(t *testing.T, docs map[string]string) (*Server, *vault.MemoryStore) {
	t.Helper()
	store := vault.NewMemoryStore(docs)
	srv, err := New(Config{
		Logger: zap.NewNop(),
		Listen: "127.0.0.1:0",
		Mode:   gin.TestMode,
		Store:  store,
		Vault:  "/tmp/vault",
	})
	require.NoError(t, err)
	return srv, store
}

func serve(srv *Server, method, target, body string, headers ...string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)
	return w
}

func TestNew_Validation(t *testing.T) {
	store := vault.NewMemoryStore(nil)
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{"missing logger", Config{Listen: "127.0.0.1:0", Store: store}, "logger is required"},
		{"missing store", Config{Logger: zap.NewNop(), Listen: "127.0.0.1:0"}, "store is required"},
		{"missing listen", Config{Logger: zap.NewNop(), Store: store}, "listen address is required"},
		{"bad listen", Config{Logger: zap.NewNop(), Store: store, Listen: "nope"}, "invalid listen address"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.cfg.Mode = gin.TestMode
			_, err := New(tt.cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestHealth(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	w := serve(srv, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp api.HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "/tmp/vault", resp.Vault)
}

func TestListDocuments(t *testing.T) {
	srv, _ := newTestServer(t, map[string]string{
		"b.md":       "b",
		"a/notes.md": "a",
		"image.png":  "",
	})

	w := serve(srv, http.MethodGet, "/docs", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp api.DocumentList
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, []string{"a/notes.md", "b.md"}, resp.Documents)
}

func TestListDocuments_HTML(t *testing.T) {
	srv, _ := newTestServer(t, map[string]string{"tasks.md": tasksDoc})

	w := serve(srv, http.MethodGet, "/docs", "", "Accept", "text/html")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `<a href="/view/tasks.md">tasks.md</a>`)
}

func TestRenderDocument(t *testing.T) {
	srv, _ := newTestServer(t, map[string]string{"tasks.md": tasksDoc})

	w := serve(srv, http.MethodGet, "/api/render?doc=tasks.md", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp api.RenderResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "tasks.md", resp.Document)
	assert.Equal(t, []api.Control{
		{Line: 4, Index: 0, Checked: true},
		{Line: 5, Index: 0, Checked: false},
		{Line: 5, Index: 1, Checked: false},
	}, resp.Controls)
	assert.Contains(t, resp.HTML, `href="http://x"`)
	assert.Contains(t, resp.HTML, `data-document="tasks.md"`)
	assert.Contains(t, resp.Preview, "☑(0)")
}

func TestRenderDocument_Errors(t *testing.T) {
	srv, _ := newTestServer(t, map[string]string{"tasks.md": tasksDoc})

	tests := []struct {
		name   string
		target string
		status int
	}{
		{"missing doc param", "/api/render", http.StatusNotFound},
		{"unknown doc", "/api/render?doc=gone.md", http.StatusNotFound},
		{"escapes vault", "/api/render?doc=../secret.md", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(srv, http.MethodGet, tt.target, "")
			assert.Equal(t, tt.status, w.Code)

			var resp api.ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.status, resp.StatusCode)
			assert.NotEmpty(t, resp.Message)
		})
	}
}

func TestViewDocument(t *testing.T) {
	srv, _ := newTestServer(t, map[string]string{"notes/tasks.md": tasksDoc})

	w := serve(srv, http.MethodGet, "/view/notes/tasks.md", "")
	require.Equal(t, http.StatusOK, w.Code)

	body := w.Body.String()
	assert.Contains(t, body, "<title>notes/tasks.md</title>")
	assert.Contains(t, body, `class="task-list-item-checkbox"`)
	assert.Contains(t, body, `data-line="5"`)
	assert.Contains(t, body, `fetch("/api/toggle"`)
	assert.Contains(t, body, `if (!resp.ok)`)
	assert.Contains(t, body, `console.warn("tablecheck: toggle failed`)
}

func TestToggle(t *testing.T) {
	srv, store := newTestServer(t, map[string]string{"tasks.md": tasksDoc})

	w := serve(srv, http.MethodPost, "/api/toggle", `{"document":"tasks.md","line":5,"index":1,"checked":true}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp api.ToggleResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, checkbox.Applied, resp.Result)
	assert.True(t, resp.Checked)

	content, err := store.Read(context.Background(), "tasks.md")
	require.NoError(t, err)
	assert.Contains(t, content, "| Ship | bo | [ ] review [x] deploy |\n")
}

func TestToggle_SkippedResults(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		result checkbox.Result
	}{
		{"line missing", `{"document":"tasks.md","line":42,"index":0,"checked":true}`, checkbox.SkippedLineMissing},
		{"index mismatch", `{"document":"tasks.md","line":4,"index":3,"checked":false}`, checkbox.SkippedIndexMismatch},
		{"unknown document", `{"document":"gone.md","line":0,"index":0,"checked":true}`, checkbox.SkippedUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, store := newTestServer(t, map[string]string{"tasks.md": tasksDoc})

			w := serve(srv, http.MethodPost, "/api/toggle", tt.body)
			require.Equal(t, http.StatusOK, w.Code)

			var resp api.ToggleResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.result, resp.Result)

			content, err := store.Read(context.Background(), "tasks.md")
			require.NoError(t, err)
			assert.Equal(t, tasksDoc, content)
		})
	}
}

func TestToggle_BadRequest(t *testing.T) {
	srv, _ := newTestServer(t, map[string]string{"tasks.md": tasksDoc})

	tests := []struct {
		name string
		body string
	}{
		{"not json", `line=4`},
		{"negative line", `{"document":"tasks.md","line":-1,"index":0,"checked":true}`},
		{"negative index", `{"document":"tasks.md","line":4,"index":-2,"checked":true}`},
		{"escapes vault", `{"document":"../x.md","line":4,"index":0,"checked":true}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(srv, http.MethodPost, "/api/toggle", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}
