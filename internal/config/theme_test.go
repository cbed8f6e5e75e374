package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltinColors(t *testing.T) {
	assert.Equal(t, "light", BuiltinColors("light").Name)
	assert.Equal(t, "dark", BuiltinColors("dark").Name)
	assert.Nil(t, BuiltinColors("solarized"))
}

func TestThemeLoader_BuiltinThemesAreValid(t *testing.T) {
	loader := NewThemeLoader("")

	for _, name := range []string{"light", "dark"} {
		theme, err := loader.LoadTheme(name)
		require.NoError(t, err)
		assert.NoError(t, loader.ValidateTheme(theme))
	}
}

func TestThemeLoader_UnknownTheme(t *testing.T) {
	loader := NewThemeLoader(t.TempDir())

	theme, err := loader.LoadTheme("neon")
	assert.Nil(t, theme)
	assert.EqualError(t, err, "theme not found: neon")
}

func TestThemeLoader_FileOverridesBuiltin(t *testing.T) {
	dir := t.TempDir()
	content := "mailsort:\n  semantic:\n    error: \"#ff0000\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "dark.yaml"), []byte(content), 0644))

	theme, err := NewThemeLoader(dir).LoadTheme("dark")
	require.NoError(t, err)

	assert.Equal(t, Color("#ff0000"), theme.Semantic.Error)
	// untouched keys keep the built-in value
	assert.Equal(t, DarkColors().Foundation.Background, theme.Foundation.Background)
	assert.Equal(t, "dark", theme.Name)
}

func TestThemeLoader_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "light.yaml"), []byte("mailsort: [unclosed"), 0644))

	_, err := NewThemeLoader(dir).LoadTheme("light")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse theme file")
}

func TestThemeLoader_CustomThemeMissingColors(t *testing.T) {
	dir := t.TempDir()
	content := "mailsort:\n  foundation:\n    background: \"#000000\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "mono.yaml"), []byte(content), 0644))

	_, err := NewThemeLoader(dir).LoadTheme("mono")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "missing required color")
}

func TestThemeLoader_SaveAndList(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "themes")
	loader := NewThemeLoader(dir)

	custom := DarkColors()
	custom.Name = "midnight"
	require.NoError(t, loader.SaveThemeToFile(custom, "midnight"))

	themes, err := loader.ListAvailableThemes()
	require.NoError(t, err)
	assert.Equal(t, []string{"light", "dark", "midnight"}, themes)

	loaded, err := loader.LoadTheme("midnight")
	require.NoError(t, err)
	assert.Equal(t, custom.Badge, loaded.Badge)
}

func TestThemeLoader_ListMissingDir(t *testing.T) {
	themes, err := NewThemeLoader(filepath.Join(t.TempDir(), "nope")).ListAvailableThemes()
	assert.NoError(t, err)
	assert.Equal(t, []string{"light", "dark"}, themes)
}

func TestColor_String(t *testing.T) {
	assert.Equal(t, "#667eea", NewColor("#667eea").String())
	assert.Equal(t, "-", DefaultColor.String())
	assert.Equal(t, "-", TransparentColor.String())
}
