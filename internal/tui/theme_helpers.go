package tui

import (
	"github.com/ajramos/mailsort/internal/config"
	"github.com/ajramos/mailsort/internal/render"
	"github.com/ajramos/mailsort/internal/services"
	"github.com/derailed/tcell/v2"
	"github.com/derailed/tview"
)

// Theme-aware color helpers. Widgets never use hardcoded tcell colors
// except as a fallback before any theme is loaded.

// theme returns the active palette
func (a *App) theme() *config.ColorsConfig {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.currentTheme
}

// GetStatusColor returns the color for a message level
func (a *App) GetStatusColor(level string) tcell.Color {
	t := a.theme()
	if t == nil {
		switch level {
		case "error":
			return tcell.ColorRed
		case "success":
			return tcell.ColorGreen
		case "warning":
			return tcell.ColorYellow
		case "muted":
			return tcell.ColorGray
		default:
			return tcell.ColorBlue
		}
	}

	switch level {
	case "error":
		return t.Semantic.Error.Color()
	case "success":
		return t.Semantic.Success.Color()
	case "warning":
		return t.Semantic.Warning.Color()
	case "muted":
		return t.Semantic.Muted.Color()
	default:
		return t.Semantic.Info.Color()
	}
}

// bandColor maps the text counter band to its color cue
func (a *App) bandColor(band services.CountBand) tcell.Color {
	switch band {
	case services.BandDanger:
		return a.GetStatusColor("error")
	case services.BandWarning:
		return a.GetStatusColor("warning")
	}
	return a.GetStatusColor("muted")
}

// badgeStyle returns foreground and background of the classification badge
func (a *App) badgeStyle(v render.Variant) (tcell.Color, tcell.Color) {
	t := a.theme()
	if t == nil {
		if v == render.VariantProductive {
			return tcell.ColorWhite, tcell.ColorGreen
		}
		return tcell.ColorWhite, tcell.ColorOrange
	}
	if v == render.VariantProductive {
		return t.Badge.ProductiveFg.Color(), t.Badge.ProductiveBg.Color()
	}
	return t.Badge.UnproductiveFg.Color(), t.Badge.UnproductiveBg.Color()
}

// styleTabs highlights the active input tab
func (a *App) styleTabs() {
	if a.mode == services.ModeText {
		a.activeButton(a.textTab)
		a.idleButton(a.fileTab)
	} else {
		a.activeButton(a.fileTab)
		a.idleButton(a.textTab)
	}
}

// styleThemeButtons marks the button of the active theme
func (a *App) styleThemeButtons() {
	if a.activeTheme == services.ThemeDark {
		a.activeButton(a.darkBtn)
		a.idleButton(a.lightBtn)
	} else {
		a.activeButton(a.lightBtn)
		a.idleButton(a.darkBtn)
	}
}

// styleAnalyzeButton greys the analyze button out while submission is disabled
func (a *App) styleAnalyzeButton() {
	if a.submitEnabled {
		a.activeButton(a.analyzeBtn)
		return
	}
	t := a.theme()
	a.analyzeBtn.SetBackgroundColor(t.Input.Bg.Color())
	a.analyzeBtn.SetLabelColor(t.Semantic.Muted.Color())
}

// styleCopyButton shows the success color while the copied label is up
func (a *App) styleCopyButton() {
	if a.copyLabel == services.MsgCopied {
		t := a.theme()
		a.copyBtn.SetBackgroundColor(t.Semantic.Success.Color())
		a.copyBtn.SetLabelColor(t.Input.ButtonFg.Color())
		return
	}
	a.activeButton(a.copyBtn)
}

// stylePathField applies the drop-target cue to the file path field
func (a *App) stylePathField() {
	t := a.theme()
	a.pathField.SetLabelColor(t.Input.Label.Color())
	a.pathField.SetFieldTextColor(t.Input.Fg.Color())
	a.pathField.SetPlaceholderTextColor(t.Semantic.Muted.Color())
	if a.dropTarget {
		a.pathField.SetFieldBackgroundColor(t.Input.DropTarget.Color())
		return
	}
	a.pathField.SetFieldBackgroundColor(t.Input.Bg.Color())
}

// styleResult colors the badge for the current variant
func (a *App) styleResult() {
	fg, bg := a.badgeStyle(a.variant)
	a.badge.SetTextColor(fg)
	a.badge.SetBackgroundColor(bg)
	a.stats.SetTextColor(a.GetStatusColor("muted"))
}

func (a *App) activeButton(b *tview.Button) {
	t := a.theme()
	b.SetBackgroundColor(t.Input.ButtonBg.Color())
	b.SetLabelColor(t.Input.ButtonFg.Color())
}

func (a *App) idleButton(b *tview.Button) {
	t := a.theme()
	b.SetBackgroundColor(t.Input.Bg.Color())
	b.SetLabelColor(t.Input.Label.Color())
}
