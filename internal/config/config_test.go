package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.NotNil(t, cfg)
	assert.Equal(t, "http://localhost:8000", cfg.API.BaseURL)
	assert.Empty(t, cfg.API.Timeout)
	assert.Equal(t, "pt-BR", cfg.UI.Locale)
	assert.NotEmpty(t, cfg.Keys.Analyze)
}

func TestDefaultLimitsConfig(t *testing.T) {
	limits := DefaultLimitsConfig()

	assert.Equal(t, int64(10485760), limits.MaxFileSizeBytes)
	assert.Equal(t, 50000, limits.MaxTextChars)
	assert.Equal(t, 40000, limits.WarnTextChars)
	assert.Equal(t, 45000, limits.DangerTextChars)
	assert.Equal(t, []string{"text/plain", "application/pdf"}, limits.AllowedTypes)
}

func TestDefaultUIConfig(t *testing.T) {
	ui := DefaultUIConfig()

	assert.Equal(t, "Groq AI", ui.ProviderLabel)
	assert.Equal(t, 1500, ui.LoadingIntervalMs)
	assert.Equal(t, 2000, ui.CopyFeedbackMs)
	assert.Empty(t, ui.ThemesDir)
}

func TestDefaultKeyBindings(t *testing.T) {
	keys := DefaultKeyBindings()

	assert.Equal(t, "f1", keys.FileTab)
	assert.Equal(t, "f2", keys.TextTab)
	assert.Equal(t, "ctrl+r", keys.Analyze)
	assert.Equal(t, "ctrl+y", keys.Copy)
	assert.Equal(t, "f7", keys.LightTheme)
	assert.Equal(t, "f8", keys.DarkTheme)
	assert.Equal(t, "ctrl+t", keys.ToggleTheme)
	assert.Equal(t, "ctrl+x", keys.ClearFile)
	assert.Equal(t, "ctrl+q", keys.Quit)
}

func TestGetAPITimeout(t *testing.T) {
	tests := []struct {
		name     string
		timeout  string
		expected time.Duration
	}{
		{"empty means none", "", 0},
		{"valid", "30s", 30 * time.Second},
		{"invalid", "soon", 0},
		{"negative", "-5s", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.API.Timeout = tt.timeout
			assert.Equal(t, tt.expected, cfg.GetAPITimeout())
		})
	}
}

func TestDurations(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, 1500*time.Millisecond, cfg.GetLoadingInterval())
	assert.Equal(t, 2*time.Second, cfg.GetCopyFeedbackDuration())
}

func TestDefaultPaths(t *testing.T) {
	assert.Contains(t, DefaultConfigPath(), filepath.Join(".config", "mailsort", "config.json"))
	assert.Contains(t, DefaultPreferencesPath(), "preferences.sqlite3")
	assert.Contains(t, DefaultThemesDir(), filepath.Join("mailsort", "themes"))
	assert.Contains(t, DefaultLogPath(), "mailsort.log")
}

func TestConfig_PathOverrides(t *testing.T) {
	cfg := DefaultConfig()
	cfg.PreferencesPath = "/tmp/prefs.db"
	cfg.LogFile = "/tmp/mailsort.log"
	cfg.UI.ThemesDir = "/tmp/themes"

	assert.Equal(t, "/tmp/prefs.db", cfg.GetPreferencesPath())
	assert.Equal(t, "/tmp/mailsort.log", cfg.GetLogPath())
	assert.Equal(t, "/tmp/themes", cfg.GetThemesDir())
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	cfg, err := LoadConfig("")
	assert.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfig_NonExistentFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.json"))
	assert.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfig_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	content := `{"api": {"base_url": "https://classifier.example.com"}, "limits": {"max_text_chars": 1000}}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "https://classifier.example.com", cfg.API.BaseURL)
	assert.Equal(t, 1000, cfg.Limits.MaxTextChars)
	assert.Equal(t, int64(10485760), cfg.Limits.MaxFileSizeBytes)
	assert.Equal(t, []string{"text/plain", "application/pdf"}, cfg.Limits.AllowedTypes)
	assert.Equal(t, "pt-BR", cfg.UI.Locale)
	assert.Equal(t, "ctrl+r", cfg.Keys.Analyze)
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	cfg, err := LoadConfig(path)
	assert.Error(t, err)
	assert.Nil(t, cfg)
}

func TestSaveConfig_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json")

	cfg := DefaultConfig()
	cfg.API.BaseURL = "http://10.0.0.5:8000"
	cfg.UI.Locale = "en-US"
	require.NoError(t, cfg.SaveConfig(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var raw map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Contains(t, raw, "api")
	assert.Contains(t, raw, "limits")

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}
