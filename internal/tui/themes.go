package tui

import (
	"fmt"

	"github.com/ajramos/mailsort/internal/config"
	"github.com/ajramos/mailsort/internal/services"
	"github.com/derailed/tcell/v2"
	"github.com/derailed/tview"
)

// applyTheme switches to theme and flashes a confirmation in the status bar
func (a *App) applyTheme(theme services.Theme) {
	a.errors.Guard(func() {
		if err := a.themes.ApplyTheme(a.ctx, theme); err != nil {
			a.logf("apply theme %s: %v", theme, err)
			return
		}
		a.flashTheme(theme)
	})
}

// toggleTheme flips between light and dark
func (a *App) toggleTheme() {
	a.errors.Guard(func() {
		if err := a.themes.Toggle(a.ctx); err != nil {
			a.logf("toggle theme: %v", err)
			return
		}
		a.flashTheme(a.themes.Current())
	})
}

func (a *App) flashTheme(theme services.Theme) {
	msg := "Tema claro aplicado"
	if theme == services.ThemeDark {
		msg = "Tema escuro aplicado"
	}
	a.errorHandler.ShowFlashMessage(msg, LogLevelSuccess, a.Config.GetCopyFeedbackDuration())
}

// applyThemeConfig applies a palette to the global styles and every widget.
// Called by the theme service on the event loop (or before it starts).
func (a *App) applyThemeConfig(theme *config.ColorsConfig) error {
	if theme == nil {
		return fmt.Errorf("theme configuration is nil")
	}

	a.mu.Lock()
	a.currentTheme = theme
	a.mu.Unlock()

	bg := theme.Foundation.Background.Color()
	fg := theme.Foundation.Foreground.Color()

	// Apply global styles
	tview.Styles.PrimitiveBackgroundColor = bg
	tview.Styles.ContrastBackgroundColor = theme.Input.Bg.Color()
	tview.Styles.PrimaryTextColor = fg
	tview.Styles.SecondaryTextColor = theme.Semantic.Secondary.Color()
	tview.Styles.TertiaryTextColor = theme.Semantic.Muted.Color()
	tview.Styles.BorderColor = theme.Foundation.Border.Color()
	tview.Styles.FocusColor = theme.Foundation.Focus.Color()
	tview.Styles.TitleColor = theme.Semantic.Primary.Color()
	tview.Styles.GraphicsColor = theme.Foundation.Border.Color()

	// Update existing widget colors
	for _, v := range a.views {
		switch w := v.(type) {
		case *tview.TextView:
			w.SetBackgroundColor(bg)
			w.SetTextColor(fg)
			a.styleBorder(w.Box, theme)
		case *tview.Flex:
			w.SetBackgroundColor(bg)
			a.styleBorder(w.Box, theme)
		case *tview.Pages:
			w.SetBackgroundColor(bg)
			a.styleBorder(w.Box, theme)
		case *EditableTextView:
			w.SetBackgroundColor(theme.Input.Bg.Color())
			w.SetTextColor(theme.Input.Fg.Color())
			w.SetPlaceholderTextColor(theme.Semantic.Muted.Color())
		}
	}

	a.title.SetTextColor(theme.Semantic.Primary.Color())
	a.loadingView.SetTextColor(theme.Semantic.Primary.Color())
	a.loadingView.SetBackgroundColor(theme.Input.Bg.Color())
	if banner, ok := a.views["banner"].(*tview.TextView); ok {
		banner.SetTextColor(theme.Semantic.Error.Color())
		banner.SetBorderColor(theme.Semantic.Error.Color())
		banner.SetTitleColor(theme.Semantic.Error.Color())
	}
	if hint, ok := a.views["fileHint"].(*tview.TextView); ok {
		hint.SetTextColor(theme.Semantic.Muted.Color())
	}
	if placeholder, ok := a.views["placeholder"].(*tview.TextView); ok {
		placeholder.SetTextColor(theme.Semantic.Muted.Color())
	}
	if status, ok := a.views["status"].(*tview.TextView); ok {
		status.SetBackgroundColor(theme.Input.Bg.Color())
		status.SetTextColor(theme.Semantic.Secondary.Color())
	}

	a.stylePathField()
	a.styleTabs()
	a.styleThemeButtons()
	a.styleAnalyzeButton()
	a.styleCopyButton()
	return nil
}

// styleBorder colors a widget's frame and title
func (a *App) styleBorder(b *tview.Box, theme *config.ColorsConfig) {
	b.SetBorderColor(theme.Foundation.Border.Color())
	b.SetTitleColor(theme.Semantic.Primary.Color())
	b.SetBorderAttributes(tcell.AttrNone)
}
