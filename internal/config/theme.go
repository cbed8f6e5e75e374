package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ThemeLoader handles loading themes from YAML files, falling back to the
// built-in palettes
type ThemeLoader struct {
	themesDir string
}

// NewThemeLoader creates a new theme loader
func NewThemeLoader(themesDir string) *ThemeLoader {
	return &ThemeLoader{
		themesDir: themesDir,
	}
}

// themeFile is the on-disk layout of a theme file
type themeFile struct {
	Mailsort *ColorsConfig `yaml:"mailsort"`
}

// LoadTheme returns the colors for a theme name. A file <themesDir>/<name>.yaml
// overrides the built-in palette; missing keys in the file keep built-in values.
func (tl *ThemeLoader) LoadTheme(name string) (*ColorsConfig, error) {
	base := BuiltinColors(name)

	if tl.themesDir != "" {
		path := filepath.Join(tl.themesDir, name+".yaml")
		if fileExists(path) {
			theme, err := tl.LoadThemeFromFile(path, base)
			if err != nil {
				return nil, err
			}
			theme.Name = name
			return theme, nil
		}
	}

	if base == nil {
		return nil, fmt.Errorf("theme not found: %s", name)
	}
	return base, nil
}

// LoadThemeFromFile loads a theme from a YAML file on top of base (may be nil)
func (tl *ThemeLoader) LoadThemeFromFile(path string, base *ColorsConfig) (*ColorsConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read theme file: %w", err)
	}

	theme := themeFile{Mailsort: base}
	if theme.Mailsort == nil {
		theme.Mailsort = &ColorsConfig{}
	}
	if err := yaml.Unmarshal(data, &theme); err != nil {
		return nil, fmt.Errorf("failed to parse theme file: %w", err)
	}

	if err := tl.ValidateTheme(theme.Mailsort); err != nil {
		return nil, err
	}
	return theme.Mailsort, nil
}

// ListAvailableThemes returns built-in theme names plus any user theme files
func (tl *ThemeLoader) ListAvailableThemes() ([]string, error) {
	themes := []string{"light", "dark"}
	if tl.themesDir == "" {
		return themes, nil
	}

	entries, err := os.ReadDir(tl.themesDir)
	if err != nil {
		if os.IsNotExist(err) {
			return themes, nil
		}
		return nil, fmt.Errorf("failed to read themes directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".yaml" {
			continue
		}
		name := strings.TrimSuffix(entry.Name(), ".yaml")
		if name != "light" && name != "dark" {
			themes = append(themes, name)
		}
	}
	return themes, nil
}

// SaveThemeToFile saves a theme configuration as <themesDir>/<name>.yaml
func (tl *ThemeLoader) SaveThemeToFile(theme *ColorsConfig, name string) error {
	if err := os.MkdirAll(tl.themesDir, 0755); err != nil {
		return fmt.Errorf("failed to create themes directory: %w", err)
	}

	data, err := yaml.Marshal(themeFile{Mailsort: theme})
	if err != nil {
		return fmt.Errorf("failed to marshal theme: %w", err)
	}

	path := filepath.Join(tl.themesDir, name+".yaml")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write theme file: %w", err)
	}
	return nil
}

// ValidateTheme checks the colors every widget depends on are present
func (tl *ThemeLoader) ValidateTheme(theme *ColorsConfig) error {
	if theme == nil {
		return fmt.Errorf("theme is nil")
	}

	required := []struct {
		name  string
		color Color
	}{
		{"foundation.background", theme.Foundation.Background},
		{"foundation.foreground", theme.Foundation.Foreground},
		{"semantic.success", theme.Semantic.Success},
		{"semantic.warning", theme.Semantic.Warning},
		{"semantic.error", theme.Semantic.Error},
		{"badge.productiveBg", theme.Badge.ProductiveBg},
		{"badge.unproductiveBg", theme.Badge.UnproductiveBg},
	}

	for _, req := range required {
		if req.color == "" {
			return fmt.Errorf("missing required color: %s", req.name)
		}
	}
	return nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
