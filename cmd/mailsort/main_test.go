package main

import (
	"bytes"
	"context"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ajramos/mailsort/internal/classifier"
	"github.com/ajramos/mailsort/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test path resolution functions
func TestGetConfigPath_Priority(t *testing.T) {
	t.Setenv("MAILSORT_CONFIG", "")

	// Test CLI flag takes precedence
	result := getConfigPath("/custom/config.json")
	assert.Equal(t, "/custom/config.json", result)

	// Test environment variable when no flag
	_ = os.Setenv("MAILSORT_CONFIG", "/env/config.json")
	result = getConfigPath("")
	assert.Equal(t, "/env/config.json", result)

	// Test default when neither flag nor env
	_ = os.Unsetenv("MAILSORT_CONFIG")
	result = getConfigPath("")
	assert.Contains(t, result, "config.json")
}

func TestGetAPIURL_Priority(t *testing.T) {
	t.Setenv("MAILSORT_API_URL", "")

	assert.Equal(t, "http://flag:1", getAPIURL("http://flag:1", "http://cfg:3"))

	_ = os.Setenv("MAILSORT_API_URL", "http://env:2")
	assert.Equal(t, "http://env:2", getAPIURL("", "http://cfg:3"))

	_ = os.Unsetenv("MAILSORT_API_URL")
	assert.Equal(t, "http://cfg:3", getAPIURL("", "http://cfg:3"))
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	tests := []struct {
		input    string
		expected string
	}{
		{"/absolute/path", "/absolute/path"},
		{"relative/path", "relative/path"},
		{"~", home},
		{"~/config.json", filepath.Join(home, "config.json")},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, expandPath(tt.input))
		})
	}
}

func newHealthServer(t *testing.T, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/health" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestRunCheck(t *testing.T) {
	logger := log.New(io.Discard, "", 0)

	t.Run("healthy", func(t *testing.T) {
		srv := newHealthServer(t, `{"status":"healthy","ai_provider":"groq","version":"1.0.0"}`)
		var out bytes.Buffer
		code := runCheck(context.Background(), classifier.NewClient(srv.URL, time.Second, logger), &out)
		assert.Equal(t, 0, code)
		assert.Contains(t, out.String(), "API online v1.0.0")
	})

	t.Run("degraded", func(t *testing.T) {
		srv := newHealthServer(t, `{"status":"degraded"}`)
		var out bytes.Buffer
		code := runCheck(context.Background(), classifier.NewClient(srv.URL, time.Second, logger), &out)
		assert.Equal(t, 1, code)
		assert.Contains(t, out.String(), "degraded")
	})

	t.Run("unreachable", func(t *testing.T) {
		srv := newHealthServer(t, `{}`)
		url := srv.URL
		srv.Close()
		var out bytes.Buffer
		code := runCheck(context.Background(), classifier.NewClient(url, time.Second, logger), &out)
		assert.Equal(t, 1, code)
		assert.Contains(t, out.String(), "API indisponível")
	})
}

func TestRunSetup(t *testing.T) {
	dir := t.TempDir()
	cfg := config.DefaultConfig()
	cfg.UI.ThemesDir = filepath.Join(dir, "themes")
	configPath := filepath.Join(dir, "config.json")

	var out bytes.Buffer
	require.NoError(t, runSetup(cfg, configPath, &out))

	assert.FileExists(t, configPath)
	assert.FileExists(t, filepath.Join(dir, "themes", "light.yaml"))
	assert.FileExists(t, filepath.Join(dir, "themes", "dark.yaml"))
	assert.Contains(t, out.String(), "Available themes: ")
	assert.Contains(t, out.String(), "dark")

	// A second run keeps existing files
	out.Reset()
	require.NoError(t, runSetup(cfg, configPath, &out))
	assert.Contains(t, out.String(), "already exists")

	assert.Error(t, runSetup(cfg, "", &out))
}
