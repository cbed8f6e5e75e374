package config

import (
	"fmt"

	"github.com/derailed/tcell/v2"
)

// Color represents a color in the application
type Color string

const (
	// DefaultColor represents a default color
	DefaultColor Color = "default"

	// TransparentColor represents the terminal bg color
	TransparentColor Color = "-"
)

// NewColor returns a new color
func NewColor(c string) Color {
	return Color(c)
}

// String returns color as string
func (c Color) String() string {
	if c.isHex() {
		return string(c)
	}
	if c == DefaultColor || c == TransparentColor {
		return "-"
	}
	col := c.Color().TrueColor().Hex()
	if col < 0 {
		return "-"
	}
	return fmt.Sprintf("#%06x", col)
}

func (c Color) isHex() bool {
	return len(c) == 7 && c[0] == '#'
}

// Color returns a view color
func (c Color) Color() tcell.Color {
	if c == DefaultColor || c == TransparentColor {
		return tcell.ColorDefault
	}
	return tcell.GetColor(string(c)).TrueColor()
}

// FoundationColors are the base surface colors
type FoundationColors struct {
	Background Color `yaml:"background"`
	Foreground Color `yaml:"foreground"`
	Border     Color `yaml:"border"`
	Focus      Color `yaml:"focus"`
}

// SemanticColors carry meaning (status, emphasis)
type SemanticColors struct {
	Primary   Color `yaml:"primary"`
	Secondary Color `yaml:"secondary"`
	Success   Color `yaml:"success"`
	Warning   Color `yaml:"warning"`
	Error     Color `yaml:"error"`
	Info      Color `yaml:"info"`
	Muted     Color `yaml:"muted"`
}

// BadgeColors style the classification badge variants
type BadgeColors struct {
	ProductiveFg   Color `yaml:"productiveFg"`
	ProductiveBg   Color `yaml:"productiveBg"`
	UnproductiveFg Color `yaml:"unproductiveFg"`
	UnproductiveBg Color `yaml:"unproductiveBg"`
}

// InputColors style editable fields and buttons
type InputColors struct {
	Bg         Color `yaml:"bg"`
	Fg         Color `yaml:"fg"`
	Label      Color `yaml:"label"`
	DropTarget Color `yaml:"dropTarget"`
	ButtonBg   Color `yaml:"buttonBg"`
	ButtonFg   Color `yaml:"buttonFg"`
}

// ColorsConfig defines the complete color configuration of one theme
type ColorsConfig struct {
	Name       string           `yaml:"name"`
	Foundation FoundationColors `yaml:"foundation"`
	Semantic   SemanticColors   `yaml:"semantic"`
	Badge      BadgeColors      `yaml:"badge"`
	Input      InputColors      `yaml:"input"`
}

// LightColors returns the built-in light palette
func LightColors() *ColorsConfig {
	return &ColorsConfig{
		Name: "light",
		Foundation: FoundationColors{
			Background: NewColor("#f7fafc"),
			Foreground: NewColor("#2d3748"),
			Border:     NewColor("#cbd5e0"),
			Focus:      NewColor("#667eea"),
		},
		Semantic: SemanticColors{
			Primary:   NewColor("#667eea"),
			Secondary: NewColor("#4a5568"),
			Success:   NewColor("#38a169"),
			Warning:   NewColor("#dd6b20"),
			Error:     NewColor("#e53e3e"),
			Info:      NewColor("#3182ce"),
			Muted:     NewColor("#718096"),
		},
		Badge: BadgeColors{
			ProductiveFg:   NewColor("#ffffff"),
			ProductiveBg:   NewColor("#38a169"),
			UnproductiveFg: NewColor("#ffffff"),
			UnproductiveBg: NewColor("#dd6b20"),
		},
		Input: InputColors{
			Bg:         NewColor("#ffffff"),
			Fg:         NewColor("#2d3748"),
			Label:      NewColor("#4a5568"),
			DropTarget: NewColor("#48bb78"),
			ButtonBg:   NewColor("#667eea"),
			ButtonFg:   NewColor("#ffffff"),
		},
	}
}

// DarkColors returns the built-in dark palette
func DarkColors() *ColorsConfig {
	return &ColorsConfig{
		Name: "dark",
		Foundation: FoundationColors{
			Background: NewColor("#1a202c"),
			Foreground: NewColor("#e2e8f0"),
			Border:     NewColor("#4a5568"),
			Focus:      NewColor("#7f9cf5"),
		},
		Semantic: SemanticColors{
			Primary:   NewColor("#7f9cf5"),
			Secondary: NewColor("#a0aec0"),
			Success:   NewColor("#68d391"),
			Warning:   NewColor("#f6ad55"),
			Error:     NewColor("#fc8181"),
			Info:      NewColor("#63b3ed"),
			Muted:     NewColor("#a0aec0"),
		},
		Badge: BadgeColors{
			ProductiveFg:   NewColor("#1a202c"),
			ProductiveBg:   NewColor("#68d391"),
			UnproductiveFg: NewColor("#1a202c"),
			UnproductiveBg: NewColor("#f6ad55"),
		},
		Input: InputColors{
			Bg:         NewColor("#2d3748"),
			Fg:         NewColor("#e2e8f0"),
			Label:      NewColor("#a0aec0"),
			DropTarget: NewColor("#68d391"),
			ButtonBg:   NewColor("#5a67d8"),
			ButtonFg:   NewColor("#ffffff"),
		},
	}
}

// BuiltinColors returns the palette bundled for a theme name, or nil
func BuiltinColors(name string) *ColorsConfig {
	switch name {
	case "light":
		return LightColors()
	case "dark":
		return DarkColors()
	}
	return nil
}
