package tui

import (
	"context"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ajramos/mailsort/internal/config"
	"github.com/ajramos/mailsort/internal/render"
	"github.com/ajramos/mailsort/internal/services"
	"github.com/derailed/tcell/v2"
	"github.com/derailed/tview"
)

// textSettleDelay batches editor keystrokes before the counter and submit
// state are recomputed; a paste arrives as one key event per rune.
const textSettleDelay = 80 * time.Millisecond

// App encapsulates the terminal UI. It implements the services view
// interfaces; widget updates go through ui so no caller blocks on the loop.
type App struct {
	*tview.Application
	Pages  *tview.Pages
	Config *config.Config
	Keys   config.KeyBindings
	ctx    context.Context
	cancel context.CancelFunc
	mu     sync.RWMutex
	views  map[string]tview.Primitive
	logger *log.Logger

	// Widgets
	layout      *tview.Flex
	title       *tview.TextView
	fileTab     *tview.Button
	textTab     *tview.Button
	lightBtn    *tview.Button
	darkBtn     *tview.Button
	inputPages  *tview.Pages
	pathField   *tview.InputField
	fileLabel   *tview.TextView
	fileInfo    *tview.TextView
	editor      *EditableTextView
	counter     *tview.TextView
	analyzeBtn  *tview.Button
	resultPages *tview.Pages
	badge       *tview.TextView
	reason      *tview.TextView
	suggested   *tview.TextView
	stats       *tview.TextView
	analyzed    *tview.TextView
	copyBtn     *tview.Button
	loadingView *tview.TextView

	// Display state, only touched on the event loop
	mode          services.InputMode
	activeTheme   services.Theme
	submitEnabled bool
	dropTarget    bool
	countBand     services.CountBand
	variant       render.Variant
	resultShown   bool
	loadingShown  bool
	prevFocus     tview.Primitive
	copyLabel     string
	counterSuffix string

	// Pending editor text
	textMu    sync.Mutex
	textDirty bool
	textTimer *time.Timer

	// Widget updates waiting for the event loop
	loop      atomic.Int32
	uiMu      sync.Mutex
	uiPending []func()
	uiWake    chan struct{}

	uiReady      atomic.Bool
	currentTheme *config.ColorsConfig
	errorHandler *ErrorHandler

	// Services
	state     *services.AppState
	errors    *services.ErrorPresenter
	prefs     services.PreferenceService
	input     services.InputService
	drop      services.DropService
	analysis  services.AnalysisService
	results   services.ResultService
	themes    services.ThemeService
	health    services.HealthService
	formatter *render.Formatter
}

// NewApp builds the widgets and the service layer. store may be nil, in
// which case preferences are not remembered.
func NewApp(cfg *config.Config, client services.Classifier, store services.PreferenceStore, logger *log.Logger) *App {
	ctx, cancel := context.WithCancel(context.Background())

	app := &App{
		Application:  tview.NewApplication(),
		Config:       cfg,
		Keys:         cfg.Keys,
		ctx:          ctx,
		cancel:       cancel,
		views:        make(map[string]tview.Primitive),
		logger:       logger,
		mode:         services.ModeFile,
		activeTheme:  services.ThemeLight,
		currentTheme: config.LightColors(),
		copyLabel:    services.MsgCopyIdle,
		formatter:    render.NewFormatter(cfg.UI.Locale),
		uiWake:       make(chan struct{}, 1),
	}
	app.counterSuffix = " / " + app.formatter.Count(cfg.Limits.MaxTextChars) + " caracteres"

	app.initComponents()
	app.initErrorHandler()
	app.initServices(client, store)
	app.bindKeys()

	app.SetBeforeDrawFunc(func(screen tcell.Screen) bool {
		if !app.uiReady.Load() {
			app.uiReady.Store(true)
		}
		return false
	})

	return app
}

// initServices wires the service layer with the App as its views
func (a *App) initServices(client services.Classifier, store services.PreferenceStore) {
	cfg := a.Config

	a.state = services.NewAppState()
	a.errors = services.NewErrorPresenter(a, a.state, a.logger)
	a.prefs = services.NewPreferenceService(store, a.logger)

	clipboard := services.NewClipboardService(a.logger)
	results := services.NewResultService(a.state, a, clipboard, a.formatter,
		cfg.UI.ProviderLabel, cfg.GetCopyFeedbackDuration(), a.logger)
	a.results = results

	a.input = services.NewInputService(a.state, a, a.errors, results, a.prefs,
		services.NewFileInspector(a.logger), a.formatter, cfg.Limits, a.logger)
	a.drop = services.NewDropService(a, a.input, a.logger)
	a.analysis = services.NewAnalysisService(a.state, client, a, a.errors, results,
		cfg.Limits, cfg.GetLoadingInterval(), a.logger)
	a.themes = services.NewThemeService(a.state, a, a.prefs, cfg.GetThemesDir(), a.applyThemeConfig, a.logger)
	a.health = services.NewHealthService(client, a.logger)

	// The result card and counter carry state-dependent colors that the
	// generic widget pass in applyThemeConfig cannot know about
	if err := a.themes.RegisterComponent("result", func(*config.ColorsConfig) error {
		a.styleResult()
		return nil
	}); err != nil {
		a.logf("register result component: %v", err)
	}
	if err := a.themes.RegisterComponent("counter", func(*config.ColorsConfig) error {
		a.counter.SetTextColor(a.bandColor(a.countBand))
		return nil
	}); err != nil {
		a.logf("register counter component: %v", err)
	}
}

// initErrorHandler creates the banner/status handler over the widgets
func (a *App) initErrorHandler() {
	banner, _ := a.views["banner"].(*tview.TextView)
	status, _ := a.views["status"].(*tview.TextView)
	a.errorHandler = NewErrorHandler(a.ui, a, a.layout, banner, status, a.logger)
}

// State exposes the application state, mainly for tests and the entry point
func (a *App) State() *services.AppState {
	return a.state
}

// Run restores the remembered tab and theme, starts the API health check
// and enters the event loop until the user quits. The restore runs before
// the loop, so its widget updates apply inline.
func (a *App) Run() error {
	a.SetRoot(a.Pages, true)
	a.restore()

	a.loop.Store(loopRunning)
	go a.pumpUpdates()
	go a.checkHealth()

	defer a.shutdown()
	return a.Application.Run()
}

// restore applies persisted preferences before any interaction
func (a *App) restore() {
	a.errors.Guard(func() {
		if err := a.themes.Init(a.ctx); err != nil {
			a.logf("theme init: %v", err)
		}
		a.input.TextChanged("")
		a.input.ClearFile(a.ctx)
		if err := a.input.SwitchTab(a.ctx, a.prefs.ActiveTab(a.ctx)); err != nil {
			a.logf("restore tab: %v", err)
		}
	})
}

func (a *App) checkHealth() {
	summary := a.health.Summary(a.ctx)
	a.logf("health: %s", summary)
	a.errorHandler.SetBaseline(summary + "  │  " + a.keyHints())
}

// shutdown cancels in-flight work and waits for background tasks
func (a *App) shutdown() {
	a.loop.Store(loopStopped)
	a.cancel()

	a.textMu.Lock()
	if a.textTimer != nil {
		a.textTimer.Stop()
		a.textTimer = nil
	}
	a.textMu.Unlock()

	a.results.Close()
	a.errorHandler.Close()
	a.errors.Wait()
}

// onTextEdited marks the editor text dirty and schedules a flush
func (a *App) onTextEdited() {
	a.textMu.Lock()
	defer a.textMu.Unlock()
	a.textDirty = true
	if a.textTimer != nil {
		a.textTimer.Stop()
	}
	a.textTimer = time.AfterFunc(textSettleDelay, func() {
		a.ui(a.flushText)
	})
}

// flushText hands pending editor text to the input service. Must run on
// the event loop.
func (a *App) flushText() {
	a.textMu.Lock()
	if a.textTimer != nil {
		a.textTimer.Stop()
		a.textTimer = nil
	}
	dirty := a.textDirty
	a.textDirty = false
	a.textMu.Unlock()

	if dirty {
		a.input.TextChanged(a.editor.GetText())
	}
}

func (a *App) logf(format string, args ...interface{}) {
	if a.logger != nil {
		a.logger.Printf(format, args...)
	}
}
