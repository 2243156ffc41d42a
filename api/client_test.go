package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/open-cli-collective/tablecheck/pkg/checkbox"
)

func TestNewClient(t *testing.T) {
	client := NewClient("http://127.0.0.1:7777/")

	assert.NotNil(t, client)
	assert.Equal(t, "http://127.0.0.1:7777", client.baseURL)
}

func TestClient_Headers(t *testing.T) {
	var capturedHeaders http.Header

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		capturedHeaders = r.Header.Clone()
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	err := client.do(context.Background(), http.MethodPost, "/test", map[string]string{"a": "b"}, nil)
	require.NoError(t, err)

	assert.Equal(t, "application/json", capturedHeaders.Get("Accept"))
	assert.Equal(t, "application/json", capturedHeaders.Get("Content-Type"))
}

func TestClient_ErrorResponse(t *testing.T) {
	tests := []struct {
		name           string
		statusCode     int
		responseBody   string
		expectedErrMsg string
	}{
		{
			name:           "400 bad request",
			statusCode:     400,
			responseBody:   `{"message": "invalid toggle request"}`,
			expectedErrMsg: "invalid toggle request",
		},
		{
			name:           "404 not found",
			statusCode:     404,
			responseBody:   `{"message": "document not found"}`,
			expectedErrMsg: "document not found",
		},
		{
			name:           "error with errors array",
			statusCode:     400,
			responseBody:   `{"message": "bad request", "errors": ["line must not be negative"]}`,
			expectedErrMsg: "line must not be negative",
		},
		{
			name:           "non-JSON body",
			statusCode:     502,
			responseBody:   "bad gateway",
			expectedErrMsg: "API error (status 502): bad gateway",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.statusCode)
				w.Write([]byte(tt.responseBody))
			}))
			defer server.Close()

			client := NewClient(server.URL)
			err := client.do(context.Background(), http.MethodGet, "/test", nil, nil)

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.expectedErrMsg)
		})
	}
}

func TestClient_ErrorResponseStatusCode(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"message": "document not found"}`))
	}))
	defer server.Close()

	_, err := NewClient(server.URL).Render(context.Background(), "gone.md")
	require.Error(t, err)

	var apiErr *ErrorResponse
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
}

func TestClient_ContextCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Slow response
		<-r.Context().Done()
	}))
	defer server.Close()

	client := NewClient(server.URL)

	ctx, cancel := context.WithCancel(context.Background())
	cancel() // Cancel immediately

	_, err := client.Health(ctx)
	require.Error(t, err)
}

func TestClient_Toggle(t *testing.T) {
	var captured ToggleRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/toggle", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		w.Write([]byte(`{"result": "applied", "checked": true}`))
	}))
	defer server.Close()

	target := checkbox.Target{Document: "notes/todo.md", Line: 4, Index: 2}
	resp, err := NewClient(server.URL).Toggle(context.Background(), target, true)
	require.NoError(t, err)

	assert.Equal(t, checkbox.Applied, resp.Result)
	assert.True(t, resp.Checked)
	assert.Equal(t, target, captured.Target())
	assert.True(t, captured.Checked)
}

func TestClient_ToggleSkipped(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"result": "skipped: line missing", "checked": false}`))
	}))
	defer server.Close()

	resp, err := NewClient(server.URL).Toggle(context.Background(), checkbox.Target{Document: "a.md", Line: 99}, true)
	require.NoError(t, err)
	assert.Equal(t, checkbox.SkippedLineMissing, resp.Result)
	assert.False(t, resp.Checked)
}

func TestClient_Render(t *testing.T) {
	var capturedQuery string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/render", r.URL.Path)
		capturedQuery = r.URL.Query().Get("doc")
		w.Write([]byte(`{
			"document": "notes/todo list.md",
			"html": "<div class=\"tc-document\"></div>",
			"controls": [{"line": 4, "index": 0, "checked": true}]
		}`))
	}))
	defer server.Close()

	resp, err := NewClient(server.URL).Render(context.Background(), "notes/todo list.md")
	require.NoError(t, err)

	assert.Equal(t, "notes/todo list.md", capturedQuery)
	assert.Equal(t, "notes/todo list.md", resp.Document)
	require.Len(t, resp.Controls, 1)
	assert.Equal(t, Control{Line: 4, Index: 0, Checked: true}, resp.Controls[0])
}

func TestClient_Documents(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/docs", r.URL.Path)
		w.Write([]byte(`{"documents": ["a.md", "sub/b.md"]}`))
	}))
	defer server.Close()

	docs, err := NewClient(server.URL).Documents(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"a.md", "sub/b.md"}, docs)
}

func TestClient_Health(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status": "ok", "vault": "/tmp/vault"}`))
	}))
	defer server.Close()

	resp, err := NewClient(server.URL).Health(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ok", resp.Status)
}

func TestClient_URLConstruction(t *testing.T) {
	var capturedPath string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		capturedPath = r.URL.Path
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)

	tests := []struct {
		inputPath    string
		expectedPath string
	}{
		{"/api/render", "/api/render"},
		{"api/render", "/api/render"},
	}

	for _, tt := range tests {
		err := client.do(context.Background(), http.MethodGet, tt.inputPath, nil, nil)
		require.NoError(t, err)
		assert.Equal(t, tt.expectedPath, capturedPath)
	}
}
