package services

import (
	"context"

	"github.com/ajramos/mailsort/internal/classifier"
	"github.com/ajramos/mailsort/internal/config"
	"github.com/ajramos/mailsort/internal/render"
)

// Classifier submits emails to the remote classification API
type Classifier interface {
	Classify(ctx context.Context, req classifier.Request) (*classifier.Result, error)
	Health(ctx context.Context) (*classifier.Health, error)
}

// PreferenceStore persists key/value preferences
type PreferenceStore interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

// Clipboard copies text to the user's clipboard
type Clipboard interface {
	Copy(ctx context.Context, text string) error
}

// CountBand is the colour cue of the text length counter
type CountBand int

const (
	BandNeutral CountBand = iota
	BandWarning
	BandDanger
)

// InputView is the part of the display owned by the input panel
type InputView interface {
	ShowTab(mode InputMode)
	SetFileLabel(text string)
	// SetFileInfo shows the info block; nil hides it
	SetFileInfo(info *render.FileInfo)
	SetCharCount(count string, band CountBand)
	SetSubmitEnabled(enabled bool)
	SetDropTarget(active bool)
}

// LoadingView is the loading overlay
type LoadingView interface {
	ShowLoading(caption string)
	SetLoadingCaption(caption string)
	HideLoading()
}

// ResultView is the result region
type ResultView interface {
	ShowResult(display render.ResultDisplay)
	HideResult()
	SetCopyLabel(label string)
}

// ErrorView is the error banner
type ErrorView interface {
	ShowError(msg string)
	HideError()
}

// ThemeView reflects the active theme in the theme buttons
type ThemeView interface {
	SetActiveTheme(theme Theme)
}

// PreferenceService remembers the active tab and theme
type PreferenceService interface {
	ActiveTab(ctx context.Context) InputMode
	SetActiveTab(ctx context.Context, mode InputMode)
	Theme(ctx context.Context) Theme
	SetTheme(ctx context.Context, theme Theme)
}

// InputService handles the input panel: tabs, file selection and text
type InputService interface {
	SwitchTab(ctx context.Context, mode InputMode) error
	SelectFile(ctx context.Context, path string)
	ClearFile(ctx context.Context)
	TextChanged(value string)
	SubmitEnabled() bool
	Refresh()
}

// DropService turns a path dropped on the file field into a selection
type DropService interface {
	DragOver()
	DragLeave()
	Drop(ctx context.Context, payload string)
}

// AnalysisService submits the current input and reports the outcome
type AnalysisService interface {
	Analyze(ctx context.Context) error
}

// ResultService renders analysis results
type ResultService interface {
	Render(res *classifier.Result)
	Clear()
	CopySuggestedResponse(ctx context.Context) error
	Close()
}

// ThemeService applies and persists the light/dark theme
type ThemeService interface {
	Init(ctx context.Context) error
	ApplyTheme(ctx context.Context, theme Theme) error
	Toggle(ctx context.Context) error
	Current() Theme
	CurrentColors() *config.ColorsConfig
	RegisterComponent(name string, callback ThemeUpdateCallback) error
}

// HealthService reports the API status
type HealthService interface {
	Check(ctx context.Context) (*classifier.Health, error)
	Summary(ctx context.Context) string
}
