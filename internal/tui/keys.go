package tui

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/ajramos/mailsort/internal/services"
	"github.com/derailed/tcell/v2"
)

// keyMatches reports whether event is the configured binding. Bindings are
// a single character, "f1".."f12" or "ctrl+<letter>".
func keyMatches(event *tcell.EventKey, binding string) bool {
	binding = strings.ToLower(strings.TrimSpace(binding))
	if binding == "" || event == nil {
		return false
	}

	if strings.HasPrefix(binding, "ctrl+") {
		letter := strings.TrimPrefix(binding, "ctrl+")
		if len(letter) != 1 || letter[0] < 'a' || letter[0] > 'z' {
			return false
		}
		l := rune(letter[0])
		if event.Key() == tcell.KeyCtrlA+tcell.Key(l-'a') {
			return true
		}
		return event.Key() == tcell.KeyRune && event.Modifiers()&tcell.ModCtrl != 0 && event.Rune() == l
	}

	if len(binding) > 1 && binding[0] == 'f' {
		n, err := strconv.Atoi(binding[1:])
		if err != nil || n < 1 || n > 12 {
			return false
		}
		return event.Key() == tcell.KeyF1+tcell.Key(n-1)
	}

	r, size := utf8.DecodeRuneInString(binding)
	if size != len(binding) {
		return false
	}
	return event.Key() == tcell.KeyRune && event.Modifiers()&(tcell.ModCtrl|tcell.ModAlt) == 0 &&
		strings.ToLower(string(event.Rune())) == string(r)
}

// keyLabel renders a binding for on-screen hints ("ctrl+r" -> "Ctrl+R")
func keyLabel(binding string) string {
	binding = strings.ToLower(strings.TrimSpace(binding))
	switch {
	case strings.HasPrefix(binding, "ctrl+"):
		return "Ctrl+" + strings.ToUpper(strings.TrimPrefix(binding, "ctrl+"))
	case len(binding) > 1 && binding[0] == 'f':
		return strings.ToUpper(binding)
	}
	return binding
}

// keyHints is the shortcut summary shown in the status bar
func (a *App) keyHints() string {
	hints := []struct{ key, desc string }{
		{a.Keys.Analyze, "analisar"},
		{a.Keys.Copy, "copiar"},
		{a.Keys.ToggleTheme, "tema"},
		{a.Keys.Quit, "sair"},
	}
	parts := make([]string, 0, len(hints)+1)
	for _, h := range hints {
		if h.key != "" {
			parts = append(parts, keyLabel(h.key)+" "+h.desc)
		}
	}
	parts = append(parts, "Tab navegar")
	return strings.Join(parts, " · ")
}

// editing reports whether focus is on a widget that consumes typed runes
func (a *App) editing() bool {
	switch a.GetFocus() {
	case a.editor, a.pathField:
		return true
	}
	return false
}

// bindKeys installs the global key handler
func (a *App) bindKeys() {
	a.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		// Plain runes belong to the focused editor
		if event.Key() == tcell.KeyRune && event.Modifiers()&(tcell.ModCtrl|tcell.ModAlt) == 0 && a.editing() {
			return event
		}

		switch {
		case keyMatches(event, a.Keys.Quit):
			a.logf("Configurable shortcut: quit")
			a.Stop()
			return nil
		case keyMatches(event, a.Keys.FileTab):
			a.switchTab(services.ModeFile)
			return nil
		case keyMatches(event, a.Keys.TextTab):
			a.switchTab(services.ModeText)
			return nil
		case keyMatches(event, a.Keys.Analyze):
			a.analyze()
			return nil
		case keyMatches(event, a.Keys.Copy):
			a.copyResponse()
			return nil
		case keyMatches(event, a.Keys.LightTheme):
			a.applyTheme(services.ThemeLight)
			return nil
		case keyMatches(event, a.Keys.DarkTheme):
			a.applyTheme(services.ThemeDark)
			return nil
		case keyMatches(event, a.Keys.ToggleTheme):
			a.toggleTheme()
			return nil
		case keyMatches(event, a.Keys.ClearFile):
			a.clearFile()
			return nil
		}

		switch event.Key() {
		case tcell.KeyTab:
			a.cycleFocus(1)
			return nil
		case tcell.KeyBacktab:
			a.cycleFocus(-1)
			return nil
		}

		if a.loadingShown {
			// The overlay blocks the panels underneath
			return nil
		}
		return event
	})
}

// switchTab activates an input mode
func (a *App) switchTab(mode services.InputMode) {
	a.flushText()
	a.errors.Guard(func() {
		if err := a.input.SwitchTab(a.ctx, mode); err != nil {
			a.logf("switch tab: %v", err)
		}
	})
}

// analyze submits the current input in the background. A disabled submit
// ignores the request.
func (a *App) analyze() {
	a.flushText()
	if !a.input.SubmitEnabled() {
		a.logf("analyze: submit disabled, ignoring")
		return
	}
	a.errors.Go(func() {
		_ = a.analysis.Analyze(a.ctx)
	})
}

// copyResponse copies the suggested reply; failures are only logged
func (a *App) copyResponse() {
	if a.state.Result() == nil {
		return
	}
	a.errors.Go(func() {
		_ = a.results.CopySuggestedResponse(a.ctx)
	})
}

// clearFile removes the selected file and empties the path field
func (a *App) clearFile() {
	a.errors.Guard(func() {
		a.pathField.SetText("")
		a.drop.DragLeave()
		a.input.ClearFile(a.ctx)
	})
}
