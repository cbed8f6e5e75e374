package tui

import (
	"context"
	"errors"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/ajramos/mailsort/internal/classifier"
	"github.com/ajramos/mailsort/internal/config"
	"github.com/ajramos/mailsort/internal/services"
	"github.com/derailed/tcell/v2"
	"github.com/derailed/tview"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const waitFor = 2 * time.Second

// stubClassifier answers every request with a fixed result or error
type stubClassifier struct {
	mu       sync.Mutex
	requests []classifier.Request
	result   *classifier.Result
	err      error
	release  chan struct{} // when set, Classify waits for it
}

func (s *stubClassifier) Classify(ctx context.Context, req classifier.Request) (*classifier.Result, error) {
	s.mu.Lock()
	s.requests = append(s.requests, req)
	release := s.release
	s.mu.Unlock()

	if release != nil {
		select {
		case <-release:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return s.result, s.err
}

func (s *stubClassifier) Health(ctx context.Context) (*classifier.Health, error) {
	return nil, errors.New("offline")
}

func (s *stubClassifier) calls() []classifier.Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]classifier.Request(nil), s.requests...)
}

type memPrefs struct {
	mu     sync.Mutex
	values map[string]string
}

func (m *memPrefs) Get(ctx context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *memPrefs) Set(ctx context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

type testApp struct {
	*App
	screen tcell.SimulationScreen
	done   chan error
}

func startApp(t *testing.T, client services.Classifier, store services.PreferenceStore) *testApp {
	t.Helper()

	cfg := config.DefaultConfig()
	cfg.UI.ThemesDir = filepath.Join(t.TempDir(), "themes")
	cfg.UI.LoadingIntervalMs = 10
	cfg.UI.CopyFeedbackMs = 30

	app := NewApp(cfg, client, store, log.New(io.Discard, "", 0))

	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	app.SetScreen(screen)
	screen.SetSize(100, 40)

	ta := &testApp{App: app, screen: screen, done: make(chan error, 1)}
	go func() { ta.done <- app.Run() }()
	require.Eventually(t, app.uiReady.Load, waitFor, 5*time.Millisecond)

	t.Cleanup(func() {
		app.Stop()
		select {
		case <-ta.done:
		case <-time.After(waitFor):
			t.Error("app did not stop")
		}
	})
	return ta
}

func (ta *testApp) key(k tcell.Key, mod tcell.ModMask) {
	ta.screen.PostEventWait(tcell.NewEventKey(k, 0, mod))
}

func (ta *testApp) typeText(s string) {
	for _, r := range s {
		ta.screen.PostEventWait(tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone))
	}
}

// onLoop runs fn on the event loop and waits for it
func (ta *testApp) onLoop(t *testing.T, fn func()) {
	t.Helper()
	done := make(chan struct{})
	ta.QueueUpdate(func() {
		fn()
		close(done)
	})
	select {
	case <-done:
	case <-time.After(waitFor):
		t.Error("event loop did not run the update")
	}
}

// eventuallyOnLoop waits until cond, evaluated on the event loop, holds
func (ta *testApp) eventuallyOnLoop(t *testing.T, cond func() bool) {
	t.Helper()
	require.Eventually(t, func() bool {
		ok := false
		ta.onLoop(t, func() { ok = cond() })
		return ok
	}, waitFor, 5*time.Millisecond)
}

func productiveResult() *classifier.Result {
	return &classifier.Result{
		Classification:       classifier.ClassProductive,
		ClassificationReason: "Pede uma ação",
		SuggestedResponse:    "Thanks",
		ClassificationTime:   0.5,
		GenerationTime:       0.3,
		ModelUsed:            "x",
		CharCount:            5,
		AnalyzedContent:      "Hello",
	}
}

func TestApp_TextAnalysisShowsResult(t *testing.T) {
	client := &stubClassifier{result: productiveResult()}
	ta := startApp(t, client, nil)

	ta.key(tcell.KeyF2, tcell.ModNone)
	require.Eventually(t, func() bool { return ta.State().Mode() == services.ModeText }, waitFor, 5*time.Millisecond)
	ta.onLoop(t, func() { ta.SetFocus(ta.editor) })

	ta.typeText("Hello")
	ta.key(tcell.KeyCtrlR, tcell.ModCtrl)

	require.Eventually(t, func() bool { return ta.State().Result() != nil }, waitFor, 5*time.Millisecond)
	require.Eventually(t, func() bool { return !ta.State().Loading() }, waitFor, 5*time.Millisecond)

	calls := client.calls()
	require.Len(t, calls, 1)
	assert.Nil(t, calls[0].File)
	assert.Equal(t, "Hello", calls[0].Text)

	ta.eventuallyOnLoop(t, func() bool { return ta.resultShown && !ta.loadingShown })

	ta.onLoop(t, func() {
		assert.Contains(t, ta.badge.GetText(true), "PRODUTIVO")
		assert.Equal(t, "Thanks", ta.suggested.GetText(true))
		assert.Contains(t, ta.stats.GetText(true), "0.80s")
		assert.Contains(t, ta.stats.GetText(true), "Groq AI (x)")
		assert.True(t, strings.HasPrefix(ta.counter.GetText(true), "5 / 50.000"))
	})
	assert.Empty(t, ta.State().Error())
}

func TestApp_EmptyTextDoesNotSubmit(t *testing.T) {
	client := &stubClassifier{result: productiveResult()}
	ta := startApp(t, client, nil)

	ta.key(tcell.KeyF2, tcell.ModNone)
	require.Eventually(t, func() bool { return ta.State().Mode() == services.ModeText }, waitFor, 5*time.Millisecond)
	ta.onLoop(t, func() { ta.SetFocus(ta.editor) })
	ta.typeText("   ")
	ta.key(tcell.KeyCtrlR, tcell.ModCtrl)

	assert.Never(t, func() bool { return len(client.calls()) > 0 }, 200*time.Millisecond, 10*time.Millisecond)
	assert.Equal(t, "   ", ta.State().Text())
	assert.Nil(t, ta.State().Result())
	ta.onLoop(t, func() { assert.False(t, ta.submitEnabled) })
}

func TestApp_APIErrorShowsBanner(t *testing.T) {
	client := &stubClassifier{err: &classifier.APIError{StatusCode: 400, Detail: "Conteúdo vazio"}}
	ta := startApp(t, client, nil)

	ta.key(tcell.KeyF2, tcell.ModNone)
	require.Eventually(t, func() bool { return ta.State().Mode() == services.ModeText }, waitFor, 5*time.Millisecond)
	ta.onLoop(t, func() { ta.SetFocus(ta.editor) })
	ta.typeText("Hi")
	ta.key(tcell.KeyCtrlR, tcell.ModCtrl)

	want := services.MsgAnalysisPrefix + "Conteúdo vazio"
	require.Eventually(t, func() bool { return ta.State().Error() == want }, waitFor, 5*time.Millisecond)
	require.Eventually(t, func() bool { return ta.errorHandler.Banner() == want }, waitFor, 5*time.Millisecond)
	assert.Nil(t, ta.State().Result())
}

func TestApp_FilePathSelectsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mail.txt")
	require.NoError(t, os.WriteFile(path, []byte("Reunião amanhã"), 0o600))

	client := &stubClassifier{result: productiveResult()}
	ta := startApp(t, client, nil)

	ta.onLoop(t, func() { ta.SetFocus(ta.pathField) })
	ta.typeText(path)
	ta.key(tcell.KeyEnter, tcell.ModNone)

	require.Eventually(t, func() bool { return ta.State().File() != nil }, waitFor, 5*time.Millisecond)
	assert.Equal(t, "mail.txt", ta.State().File().Name)
	assert.Equal(t, "text/plain", ta.State().File().ContentType)

	ta.eventuallyOnLoop(t, func() bool {
		return ta.fileLabel.GetText(true) == services.MsgFileSelected+"mail.txt"
	})

	ta.key(tcell.KeyCtrlR, tcell.ModCtrl)
	require.Eventually(t, func() bool { return len(client.calls()) == 1 }, waitFor, 5*time.Millisecond)
	require.NotNil(t, client.calls()[0].File)
	assert.Equal(t, "Reunião amanhã", string(client.calls()[0].File.Data))

	ta.key(tcell.KeyCtrlX, tcell.ModCtrl)
	require.Eventually(t, func() bool { return ta.State().File() == nil }, waitFor, 5*time.Millisecond)
	ta.onLoop(t, func() { assert.Empty(t, ta.pathField.GetText()) })
}

func TestApp_ThemeToggleAndRestore(t *testing.T) {
	store := &memPrefs{values: map[string]string{
		services.PrefTheme:     "dark",
		services.PrefActiveTab: "text",
	}}
	ta := startApp(t, &stubClassifier{}, store)

	// Remembered preferences are applied at startup
	require.Eventually(t, func() bool { return ta.State().Mode() == services.ModeText }, waitFor, 5*time.Millisecond)
	assert.Equal(t, services.ThemeDark, ta.State().Theme())
	ta.onLoop(t, func() {
		assert.Equal(t, config.DarkColors().Foundation.Background.Color(), tview.Styles.PrimitiveBackgroundColor)
		assert.Equal(t, services.ThemeDark, ta.activeTheme)
		assert.Equal(t, ta.editor, ta.GetFocus())
	})

	ta.key(tcell.KeyCtrlT, tcell.ModCtrl)
	require.Eventually(t, func() bool { return ta.State().Theme() == services.ThemeLight }, waitFor, 5*time.Millisecond)
	ta.eventuallyOnLoop(t, func() bool { return ta.activeTheme == services.ThemeLight })
	ta.onLoop(t, func() {
		assert.Equal(t, config.LightColors().Foundation.Background.Color(), tview.Styles.PrimitiveBackgroundColor)
	})

	v, _, _ := store.Get(context.Background(), services.PrefTheme)
	assert.Equal(t, "light", v)
}

func TestApp_TabKeysSwitchInputWidget(t *testing.T) {
	ta := startApp(t, &stubClassifier{}, nil)
	ta.eventuallyOnLoop(t, func() bool { return ta.GetFocus() == ta.pathField })

	ta.key(tcell.KeyF2, tcell.ModNone)
	ta.eventuallyOnLoop(t, func() bool { return ta.mode == services.ModeText && ta.GetFocus() == ta.editor })

	ta.key(tcell.KeyF1, tcell.ModNone)
	ta.eventuallyOnLoop(t, func() bool { return ta.mode == services.ModeFile && ta.GetFocus() == ta.pathField })
	assert.Equal(t, services.ModeFile, ta.State().Mode())
}

func TestApp_LoadingRestoresFocusOfVisibleTab(t *testing.T) {
	release := make(chan struct{})
	client := &stubClassifier{result: productiveResult(), release: release}
	ta := startApp(t, client, nil)

	ta.key(tcell.KeyF2, tcell.ModNone)
	ta.eventuallyOnLoop(t, func() bool { return ta.GetFocus() == ta.editor })
	ta.typeText("Hello")
	ta.key(tcell.KeyCtrlR, tcell.ModCtrl)
	ta.eventuallyOnLoop(t, func() bool { return ta.loadingShown && ta.GetFocus() == ta.loadingView })

	// Switching tabs under the overlay leaves the editor on a hidden page
	ta.key(tcell.KeyF1, tcell.ModNone)
	require.Eventually(t, func() bool { return ta.State().Mode() == services.ModeFile }, waitFor, 5*time.Millisecond)
	close(release)

	ta.eventuallyOnLoop(t, func() bool { return !ta.loadingShown })
	ta.onLoop(t, func() { assert.Equal(t, ta.pathField, ta.GetFocus()) })
}

func TestApp_QuitStopsEventLoop(t *testing.T) {
	ta := startApp(t, &stubClassifier{}, nil)

	ta.key(tcell.KeyCtrlQ, tcell.ModCtrl)

	select {
	case err := <-ta.done:
		assert.NoError(t, err)
		ta.done <- err // let cleanup observe the exit too
	case <-time.After(waitFor):
		t.Fatal("quit key did not stop the app")
	}
}
