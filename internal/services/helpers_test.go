package services

import (
	"bytes"
	"context"
	"errors"
	"log"
	"sync"
	"testing"
	"time"

	"github.com/ajramos/mailsort/internal/classifier"
	"github.com/ajramos/mailsort/internal/config"
	"github.com/ajramos/mailsort/internal/render"
	"github.com/stretchr/testify/mock"
)

// fakeView records everything the services push to the display
type fakeView struct {
	mu sync.Mutex

	tab           InputMode
	fileLabel     string
	fileInfo      *render.FileInfo
	count         string
	band          CountBand
	submitEnabled bool
	dropTarget    bool

	loadingVisible   bool
	captions         []string
	captionWhileIdle bool

	result        *render.ResultDisplay
	resultVisible bool
	copyLabel     string

	errMsg     string
	errVisible bool

	theme Theme

	events []string
}

func (v *fakeView) record(event string) { v.events = append(v.events, event) }

func (v *fakeView) ShowTab(mode InputMode) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.tab = mode
	v.record("tab:" + string(mode))
}

func (v *fakeView) SetFileLabel(text string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.fileLabel = text
}

func (v *fakeView) SetFileInfo(info *render.FileInfo) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.fileInfo = info
}

func (v *fakeView) SetCharCount(count string, band CountBand) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.count, v.band = count, band
}

func (v *fakeView) SetSubmitEnabled(enabled bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.submitEnabled = enabled
}

func (v *fakeView) SetDropTarget(active bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.dropTarget = active
}

func (v *fakeView) ShowLoading(caption string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.loadingVisible = true
	v.captions = append(v.captions, caption)
	v.record("loading:show")
}

func (v *fakeView) SetLoadingCaption(caption string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if !v.loadingVisible {
		v.captionWhileIdle = true
	}
	v.captions = append(v.captions, caption)
}

func (v *fakeView) HideLoading() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.loadingVisible = false
	v.record("loading:hide")
}

func (v *fakeView) ShowResult(display render.ResultDisplay) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.result = &display
	v.resultVisible = true
	v.record("result:show")
}

func (v *fakeView) HideResult() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.resultVisible = false
	v.record("result:hide")
}

func (v *fakeView) SetCopyLabel(label string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.copyLabel = label
}

func (v *fakeView) ShowError(msg string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.errMsg = msg
	v.errVisible = true
	v.record("error:show")
}

func (v *fakeView) HideError() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.errVisible = false
	v.record("error:hide")
}

func (v *fakeView) SetActiveTheme(theme Theme) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.theme = theme
}

func (v *fakeView) snapshot() *fakeView {
	v.mu.Lock()
	defer v.mu.Unlock()
	out := &fakeView{
		tab: v.tab, fileLabel: v.fileLabel, fileInfo: v.fileInfo, count: v.count, band: v.band,
		submitEnabled: v.submitEnabled, dropTarget: v.dropTarget, loadingVisible: v.loadingVisible,
		captionWhileIdle: v.captionWhileIdle, result: v.result, resultVisible: v.resultVisible,
		copyLabel: v.copyLabel, errMsg: v.errMsg, errVisible: v.errVisible, theme: v.theme,
	}
	out.captions = append([]string(nil), v.captions...)
	out.events = append([]string(nil), v.events...)
	return out
}

// mockClassifier is a testify mock of the API client
type mockClassifier struct {
	mock.Mock
}

func (m *mockClassifier) Classify(ctx context.Context, req classifier.Request) (*classifier.Result, error) {
	args := m.Called(ctx, req)
	res, _ := args.Get(0).(*classifier.Result)
	return res, args.Error(1)
}

func (m *mockClassifier) Health(ctx context.Context) (*classifier.Health, error) {
	args := m.Called(ctx)
	h, _ := args.Get(0).(*classifier.Health)
	return h, args.Error(1)
}

// memStore is an in-memory PreferenceStore
type memStore struct {
	mu     sync.Mutex
	values map[string]string
	err    error
}

func newMemStore() *memStore {
	return &memStore{values: map[string]string{}}
}

func (s *memStore) Get(ctx context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return "", false, s.err
	}
	v, ok := s.values[key]
	return v, ok, nil
}

func (s *memStore) Set(ctx context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.values[key] = value
	return nil
}

// fakeClipboard records copied text
type fakeClipboard struct {
	mu     sync.Mutex
	copied []string
	err    error
}

func (c *fakeClipboard) Copy(ctx context.Context, text string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return c.err
	}
	c.copied = append(c.copied, text)
	return nil
}

var errBoom = errors.New("boom")

// harness wires every service against fakes
type harness struct {
	state    *AppState
	view     *fakeView
	store    *memStore
	logs     *bytes.Buffer
	errors   *ErrorPresenter
	prefs    *PreferenceServiceImpl
	results  *ResultServiceImpl
	input    *InputServiceImpl
	drop     *DropServiceImpl
	analysis *AnalysisServiceImpl
	clip     *fakeClipboard
}

func newHarness(t *testing.T, client Classifier) *harness {
	t.Helper()
	h := &harness{
		state: NewAppState(),
		view:  &fakeView{},
		store: newMemStore(),
		logs:  &bytes.Buffer{},
		clip:  &fakeClipboard{},
	}
	logger := log.New(&syncWriter{buf: h.logs}, "", 0)
	limits := config.DefaultLimitsConfig()
	formatter := render.NewFormatter("pt-BR")

	h.errors = NewErrorPresenter(h.view, h.state, logger)
	h.prefs = NewPreferenceService(h.store, logger)
	h.results = NewResultService(h.state, h.view, h.clip, formatter, "Groq AI", 30*time.Millisecond, logger)
	h.input = NewInputService(h.state, h.view, h.errors, h.results, h.prefs, NewFileInspector(logger), formatter, limits, logger)
	h.drop = NewDropService(h.view, h.input, logger)
	h.analysis = NewAnalysisService(h.state, client, h.view, h.errors, h.results, limits, 10*time.Millisecond, logger)
	t.Cleanup(h.results.Close)
	return h
}

// syncWriter lets the background goroutines share the log buffer
type syncWriter struct {
	mu  sync.Mutex
	buf *bytes.Buffer
}

func (w *syncWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.buf.Write(p)
}

func sampleResult() *classifier.Result {
	return &classifier.Result{
		Classification:       "PRODUTIVO",
		ClassificationReason: "Solicita atualização de chamado",
		SuggestedResponse:    "Thanks",
		ClassificationTime:   0.5,
		GenerationTime:       0.3,
		ModelUsed:            "x",
		CharCount:            5,
		AnalyzedContent:      "Hello",
	}
}
