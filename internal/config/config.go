package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

// APIConfig holds the remote classification API settings
type APIConfig struct {
	BaseURL string `json:"base_url"`
	// Timeout for a single request. Empty means no client-side timeout;
	// the transport's own behaviour applies.
	Timeout string `json:"timeout"`
}

// LimitsConfig holds client-side input validation limits
type LimitsConfig struct {
	MaxFileSizeBytes int64    `json:"max_file_size_bytes"`
	MaxTextChars     int      `json:"max_text_chars"`
	WarnTextChars    int      `json:"warn_text_chars"`   // counter turns to warning above this
	DangerTextChars  int      `json:"danger_text_chars"` // counter turns to danger above this
	AllowedTypes     []string `json:"allowed_types"`
}

// UIConfig holds presentation settings
type UIConfig struct {
	Locale            string `json:"locale"`
	ProviderLabel     string `json:"provider_label"`
	LoadingIntervalMs int    `json:"loading_interval_ms"`
	CopyFeedbackMs    int    `json:"copy_feedback_ms"`
	ThemesDir         string `json:"themes_dir"` // user theme overrides (empty = default)
}

// KeyBindings defines keyboard shortcuts for the TUI.
// Values are single characters, "f1".."f12" or "ctrl+<letter>".
type KeyBindings struct {
	FileTab     string `json:"file_tab"`
	TextTab     string `json:"text_tab"`
	Analyze     string `json:"analyze"`
	Copy        string `json:"copy"`
	LightTheme  string `json:"light_theme"`
	DarkTheme   string `json:"dark_theme"`
	ToggleTheme string `json:"toggle_theme"`
	ClearFile   string `json:"clear_file"`
	Quit        string `json:"quit"`
}

// Config holds all configuration for mailsort
type Config struct {
	API    APIConfig    `json:"api"`
	Limits LimitsConfig `json:"limits"`
	UI     UIConfig     `json:"ui"`
	Keys   KeyBindings  `json:"keys"`

	// PreferencesPath is the SQLite file remembering tab and theme
	PreferencesPath string `json:"preferences_path"`

	// Logging
	LogFile string `json:"log_file"`
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		API:             DefaultAPIConfig(),
		Limits:          DefaultLimitsConfig(),
		UI:              DefaultUIConfig(),
		Keys:            DefaultKeyBindings(),
		PreferencesPath: "",
		LogFile:         "",
	}
}

// DefaultAPIConfig returns default API configuration
func DefaultAPIConfig() APIConfig {
	return APIConfig{
		BaseURL: "http://localhost:8000",
		Timeout: "",
	}
}

// DefaultLimitsConfig returns the validation limits the classification API accepts
func DefaultLimitsConfig() LimitsConfig {
	return LimitsConfig{
		MaxFileSizeBytes: 10 * 1024 * 1024,
		MaxTextChars:     50000,
		WarnTextChars:    40000,
		DangerTextChars:  45000,
		AllowedTypes:     []string{"text/plain", "application/pdf"},
	}
}

// DefaultUIConfig returns default presentation settings
func DefaultUIConfig() UIConfig {
	return UIConfig{
		Locale:            "pt-BR",
		ProviderLabel:     "Groq AI",
		LoadingIntervalMs: 1500,
		CopyFeedbackMs:    2000,
		ThemesDir:         "",
	}
}

// DefaultKeyBindings returns default keyboard shortcuts.
// Plain letters would be swallowed by the text editor, so defaults use
// function and control keys.
func DefaultKeyBindings() KeyBindings {
	return KeyBindings{
		FileTab:     "f1",
		TextTab:     "f2",
		Analyze:     "ctrl+r",
		Copy:        "ctrl+y",
		LightTheme:  "f7",
		DarkTheme:   "f8",
		ToggleTheme: "ctrl+t",
		ClearFile:   "ctrl+x",
		Quit:        "ctrl+q",
	}
}

// LoadConfig loads configuration from file, keeping defaults for missing values
func LoadConfig(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if configPath != "" {
		if data, err := os.ReadFile(configPath); err == nil {
			if err := json.Unmarshal(data, cfg); err != nil {
				return nil, err
			}
		}
	}

	cfg.applyDefaults()
	return cfg, nil
}

// applyDefaults fills zero values a partial config file may leave behind
func (c *Config) applyDefaults() {
	def := DefaultConfig()
	if c.API.BaseURL == "" {
		c.API.BaseURL = def.API.BaseURL
	}
	if c.Limits.MaxFileSizeBytes <= 0 {
		c.Limits.MaxFileSizeBytes = def.Limits.MaxFileSizeBytes
	}
	if c.Limits.MaxTextChars <= 0 {
		c.Limits.MaxTextChars = def.Limits.MaxTextChars
	}
	if c.Limits.WarnTextChars <= 0 {
		c.Limits.WarnTextChars = def.Limits.WarnTextChars
	}
	if c.Limits.DangerTextChars <= 0 {
		c.Limits.DangerTextChars = def.Limits.DangerTextChars
	}
	if len(c.Limits.AllowedTypes) == 0 {
		c.Limits.AllowedTypes = def.Limits.AllowedTypes
	}
	if c.UI.Locale == "" {
		c.UI.Locale = def.UI.Locale
	}
	if c.UI.ProviderLabel == "" {
		c.UI.ProviderLabel = def.UI.ProviderLabel
	}
	if c.UI.LoadingIntervalMs <= 0 {
		c.UI.LoadingIntervalMs = def.UI.LoadingIntervalMs
	}
	if c.UI.CopyFeedbackMs <= 0 {
		c.UI.CopyFeedbackMs = def.UI.CopyFeedbackMs
	}
}

// DefaultConfigDir returns ~/.config/mailsort
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "mailsort")
}

// DefaultConfigPath returns the default configuration file path
func DefaultConfigPath() string {
	dir := DefaultConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "config.json")
}

// DefaultPreferencesPath returns the default preferences database path
func DefaultPreferencesPath() string {
	dir := DefaultConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "preferences.sqlite3")
}

// DefaultThemesDir returns the directory searched for user theme files
func DefaultThemesDir() string {
	dir := DefaultConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "themes")
}

// DefaultLogPath returns the default log file path
func DefaultLogPath() string {
	dir := DefaultConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "mailsort.log")
}

// SaveConfig saves the configuration to a file
func (c *Config) SaveConfig(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// GetAPITimeout returns the parsed request timeout; zero means none
func (c *Config) GetAPITimeout() time.Duration {
	if c.API.Timeout != "" {
		if d, err := time.ParseDuration(c.API.Timeout); err == nil && d > 0 {
			return d
		}
	}
	return 0
}

// GetLoadingInterval returns the caption rotation interval of the loading overlay
func (c *Config) GetLoadingInterval() time.Duration {
	return time.Duration(c.UI.LoadingIntervalMs) * time.Millisecond
}

// GetCopyFeedbackDuration returns how long the copy button shows its success label
func (c *Config) GetCopyFeedbackDuration() time.Duration {
	return time.Duration(c.UI.CopyFeedbackMs) * time.Millisecond
}

// GetPreferencesPath resolves the preferences database path
func (c *Config) GetPreferencesPath() string {
	if c.PreferencesPath != "" {
		return c.PreferencesPath
	}
	return DefaultPreferencesPath()
}

// GetLogPath resolves the log file path
func (c *Config) GetLogPath() string {
	if c.LogFile != "" {
		return c.LogFile
	}
	return DefaultLogPath()
}

// GetThemesDir resolves the user themes directory
func (c *Config) GetThemesDir() string {
	if c.UI.ThemesDir != "" {
		return c.UI.ThemesDir
	}
	return DefaultThemesDir()
}
