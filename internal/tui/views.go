package tui

import (
	"strings"

	"github.com/ajramos/mailsort/internal/render"
	"github.com/ajramos/mailsort/internal/services"
)

// Input panel

func (a *App) ShowTab(mode services.InputMode) {
	a.ui(func() {
		a.mode = mode
		a.inputPages.SwitchToPage(string(mode))
		a.styleTabs()
		if a.loadingShown {
			return
		}
		a.SetFocus(a.inputWidget())
	})
}

func (a *App) SetFileLabel(text string) {
	a.ui(func() {
		_, _, width, _ := a.fileLabel.GetInnerRect()
		if width > 0 {
			text = render.Truncate(text, width)
		}
		a.fileLabel.SetText(text)
	})
}

func (a *App) SetFileInfo(info *render.FileInfo) {
	a.ui(func() {
		if info == nil {
			a.fileInfo.SetText("")
			return
		}
		a.fileInfo.SetText(strings.Join(info.Lines(), "\n"))
	})
}

func (a *App) SetCharCount(count string, band services.CountBand) {
	a.ui(func() {
		a.countBand = band
		a.counter.SetText(count + a.counterSuffix)
		a.counter.SetTextColor(a.bandColor(band))
	})
}

func (a *App) SetSubmitEnabled(enabled bool) {
	a.ui(func() {
		a.submitEnabled = enabled
		a.styleAnalyzeButton()
	})
}

func (a *App) SetDropTarget(active bool) {
	a.ui(func() {
		a.dropTarget = active
		a.stylePathField()
	})
}

// Loading overlay

func (a *App) ShowLoading(caption string) {
	a.ui(func() {
		a.loadingView.SetText("\n⏳ " + caption)
		if a.loadingShown {
			return
		}
		a.loadingShown = true
		a.prevFocus = a.GetFocus()
		a.Pages.ShowPage(pageLoading)
		a.SetFocus(a.loadingView)
	})
}

func (a *App) SetLoadingCaption(caption string) {
	a.ui(func() {
		a.loadingView.SetText("\n⏳ " + caption)
	})
}

func (a *App) HideLoading() {
	a.ui(func() {
		if !a.loadingShown {
			return
		}
		a.loadingShown = false
		a.Pages.HidePage(pageLoading)

		// The tab or the result may have changed under the overlay
		prev := a.prevFocus
		a.prevFocus = nil
		if !a.focusable(prev) {
			prev = a.inputWidget()
		}
		a.SetFocus(prev)
	})
}

// Result region

func (a *App) ShowResult(d render.ResultDisplay) {
	a.ui(func() {
		a.variant = d.Variant
		a.badge.SetText(" " + badgeIcon(d.Variant) + " " + d.Badge + " ")
		a.reason.SetText(d.Reason)
		a.suggested.SetText(d.SuggestedResponse)
		a.stats.SetText(strings.Join([]string{
			"Tempo de classificação: " + d.ClassificationTime,
			"Tempo de geração:       " + d.GenerationTime,
			"Tempo total:            " + d.TotalTime,
			"Provedor:               " + d.Provider,
			"Caracteres analisados:  " + d.CharCount,
		}, "\n"))
		a.analyzed.SetText(d.AnalyzedContent)
		a.styleResult()

		a.reason.ScrollToBeginning()
		a.suggested.ScrollToBeginning()
		a.analyzed.ScrollToBeginning()
		a.resultPages.SwitchToPage(pageResult)
		a.resultShown = true
	})
}

func (a *App) HideResult() {
	a.ui(func() {
		a.resultShown = false
		a.resultPages.SwitchToPage(pageEmpty)
		switch a.GetFocus() {
		case a.suggested, a.copyBtn, a.analyzed:
			a.SetFocus(a.analyzeBtn)
		}
	})
}

func (a *App) SetCopyLabel(label string) {
	a.ui(func() {
		a.copyLabel = label
		a.copyBtn.SetLabel(a.copyButtonLabel(label))
		a.styleCopyButton()
	})
}

// Error banner

func (a *App) ShowError(msg string) {
	a.errorHandler.ShowError(msg)
}

func (a *App) HideError() {
	a.errorHandler.HideError()
}

// Theme buttons

func (a *App) SetActiveTheme(theme services.Theme) {
	a.ui(func() {
		a.activeTheme = theme
		a.styleThemeButtons()
	})
}

func (a *App) copyButtonLabel(label string) string {
	if label == services.MsgCopyIdle {
		label = "📋 " + label
	}
	return label + " [" + keyLabel(a.Keys.Copy) + "]"
}

func badgeIcon(v render.Variant) string {
	if v == render.VariantProductive {
		return "✅"
	}
	return "📭"
}
