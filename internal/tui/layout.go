package tui

import (
	"strings"

	"github.com/ajramos/mailsort/internal/services"
	"github.com/derailed/tcell/v2"
	"github.com/derailed/tview"
)

const (
	pageMain    = "main"
	pageLoading = "loading"
	pageEmpty   = "empty"
	pageResult  = "result"
)

// initComponents creates the widgets and the page layout
func (a *App) initComponents() {
	a.title = tview.NewTextView().SetText("📧 Classificador de Emails")
	a.title.SetTextColor(a.currentTheme.Semantic.Primary.Color())

	a.lightBtn = tview.NewButton("☀️ Claro")
	a.lightBtn.SetSelectedFunc(func() { a.applyTheme(services.ThemeLight) })
	a.darkBtn = tview.NewButton("🌙 Escuro")
	a.darkBtn.SetSelectedFunc(func() { a.applyTheme(services.ThemeDark) })

	header := tview.NewFlex().SetDirection(tview.FlexColumn).
		AddItem(a.title, 0, 1, false).
		AddItem(a.lightBtn, 11, 0, false).
		AddItem(tview.NewBox(), 1, 0, false).
		AddItem(a.darkBtn, 12, 0, false)

	a.fileTab = tview.NewButton("📄 Arquivo [" + keyLabel(a.Keys.FileTab) + "]")
	a.fileTab.SetSelectedFunc(func() { a.switchTab(services.ModeFile) })
	a.textTab = tview.NewButton("✏️ Texto [" + keyLabel(a.Keys.TextTab) + "]")
	a.textTab.SetSelectedFunc(func() { a.switchTab(services.ModeText) })

	tabs := tview.NewFlex().SetDirection(tview.FlexColumn).
		AddItem(a.fileTab, 18, 0, false).
		AddItem(tview.NewBox(), 1, 0, false).
		AddItem(a.textTab, 16, 0, false).
		AddItem(tview.NewBox(), 0, 1, false)

	a.inputPages = tview.NewPages()
	a.inputPages.SetBorder(true).SetTitle(" Entrada ").SetTitleAlign(tview.AlignLeft)
	a.inputPages.AddPage(string(services.ModeFile), a.buildFilePage(), true, true)
	a.inputPages.AddPage(string(services.ModeText), a.buildTextPage(), true, false)

	a.analyzeBtn = tview.NewButton("🔍 Analisar Email [" + keyLabel(a.Keys.Analyze) + "]")
	a.analyzeBtn.SetSelectedFunc(a.analyze)
	actions := tview.NewFlex().SetDirection(tview.FlexColumn).
		AddItem(a.analyzeBtn, 30, 0, false).
		AddItem(tview.NewBox(), 0, 1, false)

	banner := tview.NewTextView().SetWrap(true)
	banner.SetBorder(true).SetTitle(" Erro ").SetTitleAlign(tview.AlignLeft)

	a.resultPages = tview.NewPages()
	a.resultPages.SetBorder(true).SetTitle(" Resultado da Análise ").SetTitleAlign(tview.AlignLeft)
	placeholder := tview.NewTextView().
		SetTextAlign(tview.AlignCenter).
		SetText("Os resultados da análise aparecerão aqui.")
	a.resultPages.AddPage(pageEmpty, placeholder, true, true)
	a.resultPages.AddPage(pageResult, a.buildResultPage(), true, false)

	status := tview.NewTextView().SetText(a.keyHints())

	a.layout = tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(header, 1, 0, false).
		AddItem(tabs, 1, 0, false).
		AddItem(a.inputPages, 0, 2, true).
		AddItem(actions, 1, 0, false).
		AddItem(banner, 0, 0, false).
		AddItem(a.resultPages, 0, 3, false).
		AddItem(status, 1, 0, false)

	a.loadingView = tview.NewTextView().SetTextAlign(tview.AlignCenter).SetWrap(true)
	a.loadingView.SetBorder(true).SetTitle(" Analisando ")

	a.Pages = tview.NewPages()
	a.Pages.AddPage(pageMain, a.layout, true, true)
	a.Pages.AddPage(pageLoading, centered(a.loadingView, 48, 5), true, false)

	a.views["layout"] = a.layout
	a.views["header"] = header
	a.views["title"] = a.title
	a.views["tabs"] = tabs
	a.views["actions"] = actions
	a.views["inputPages"] = a.inputPages
	a.views["banner"] = banner
	a.views["resultPages"] = a.resultPages
	a.views["placeholder"] = placeholder
	a.views["status"] = status
	a.views["loading"] = a.loadingView
	a.views["pages"] = a.Pages
}

func (a *App) buildFilePage() tview.Primitive {
	a.pathField = tview.NewInputField().
		SetLabel("Arquivo: ").
		SetPlaceholder("/caminho/para/email.pdf")
	a.pathField.SetChangedFunc(func(text string) {
		if strings.TrimSpace(text) != "" {
			a.drop.DragOver()
		} else {
			a.drop.DragLeave()
		}
	})
	a.pathField.SetDoneFunc(func(key tcell.Key) {
		switch key {
		case tcell.KeyEnter:
			payload := a.pathField.GetText()
			a.errors.Go(func() { a.drop.Drop(a.ctx, payload) })
		case tcell.KeyEscape:
			a.drop.DragLeave()
		}
	})

	a.fileLabel = tview.NewTextView().SetText(services.MsgFilePrompt)
	a.fileInfo = tview.NewTextView()
	hint := tview.NewTextView().
		SetText("Formatos aceitos: .txt e .pdf (até 10MB). Enter confirma, " +
			keyLabel(a.Keys.ClearFile) + " remove o arquivo.")

	page := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(a.pathField, 1, 0, true).
		AddItem(hint, 1, 0, false).
		AddItem(tview.NewBox(), 1, 0, false).
		AddItem(a.fileLabel, 1, 0, false).
		AddItem(a.fileInfo, 4, 0, false)

	a.views["pathField"] = a.pathField
	a.views["fileLabel"] = a.fileLabel
	a.views["fileInfo"] = a.fileInfo
	a.views["fileHint"] = hint
	a.views["filePage"] = page
	return page
}

func (a *App) buildTextPage() tview.Primitive {
	a.editor = NewEditableTextView()
	a.editor.SetPlaceholder("Cole aqui o conteúdo do email...")
	a.editor.SetChangedFunc(a.onTextEdited)

	a.counter = tview.NewTextView().SetTextAlign(tview.AlignRight).SetText("0" + a.counterSuffix)

	page := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(a.editor, 0, 1, true).
		AddItem(a.counter, 1, 0, false)

	a.views["editor"] = a.editor
	a.views["counter"] = a.counter
	a.views["textPage"] = page
	return page
}

func (a *App) buildResultPage() tview.Primitive {
	a.badge = tview.NewTextView()
	a.reason = tview.NewTextView().SetWrap(true).SetWordWrap(true)
	a.reason.SetBorder(true).SetTitle(" Motivo ").SetTitleAlign(tview.AlignLeft)
	a.suggested = tview.NewTextView().SetWrap(true).SetWordWrap(true).SetScrollable(true)
	a.suggested.SetBorder(true).SetTitle(" Resposta sugerida ").SetTitleAlign(tview.AlignLeft)
	a.copyBtn = tview.NewButton(a.copyButtonLabel(services.MsgCopyIdle))
	a.copyBtn.SetSelectedFunc(a.copyResponse)
	a.stats = tview.NewTextView()
	a.analyzed = tview.NewTextView().SetWrap(true).SetScrollable(true)
	a.analyzed.SetBorder(true).SetTitle(" Conteúdo analisado ").SetTitleAlign(tview.AlignLeft)

	copyRow := tview.NewFlex().SetDirection(tview.FlexColumn).
		AddItem(a.copyBtn, 28, 0, false).
		AddItem(tview.NewBox(), 0, 1, false)

	page := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(a.badge, 1, 0, false).
		AddItem(a.reason, 0, 1, false).
		AddItem(a.suggested, 0, 2, false).
		AddItem(copyRow, 1, 0, false).
		AddItem(a.stats, 5, 0, false).
		AddItem(a.analyzed, 0, 2, false)

	a.views["badge"] = a.badge
	a.views["reason"] = a.reason
	a.views["suggested"] = a.suggested
	a.views["copyBtn"] = a.copyBtn
	a.views["copyRow"] = copyRow
	a.views["stats"] = a.stats
	a.views["analyzed"] = a.analyzed
	a.views["resultPage"] = page
	return page
}

// centered places p in the middle of the screen with a fixed size
func centered(p tview.Primitive, width, height int) tview.Primitive {
	return tview.NewFlex().
		AddItem(nil, 0, 1, false).
		AddItem(tview.NewFlex().SetDirection(tview.FlexRow).
			AddItem(nil, 0, 1, false).
			AddItem(p, height, 0, true).
			AddItem(nil, 0, 1, false), width, 0, true).
		AddItem(nil, 0, 1, false)
}

// inputWidget is the editing widget of the visible tab
func (a *App) inputWidget() tview.Primitive {
	if a.mode == services.ModeText {
		return a.editor
	}
	return a.pathField
}

// focusables lists the widgets Tab cycles through, in screen order
func (a *App) focusables() []tview.Primitive {
	items := []tview.Primitive{a.fileTab, a.textTab, a.inputWidget(), a.analyzeBtn}
	if a.resultShown {
		items = append(items, a.suggested, a.copyBtn, a.analyzed)
	}
	return append(items, a.lightBtn, a.darkBtn)
}

// focusable reports whether p is currently visible and reachable by Tab
func (a *App) focusable(p tview.Primitive) bool {
	if p == nil {
		return false
	}
	for _, item := range a.focusables() {
		if item == p {
			return true
		}
	}
	return false
}

// cycleFocus moves focus delta steps through focusables
func (a *App) cycleFocus(delta int) {
	if a.loadingShown {
		return
	}
	items := a.focusables()
	current := a.GetFocus()
	if current == a.pathField {
		a.drop.DragLeave()
	}
	idx := -1
	for i, p := range items {
		if p == current {
			idx = i
			break
		}
	}
	next := (idx + delta + len(items)) % len(items)
	if idx < 0 {
		next = 0
	}
	a.SetFocus(items[next])
}
