package services

import (
	"fmt"
	"sync"

	"github.com/ajramos/mailsort/internal/classifier"
)

// InputMode selects how the email is provided
type InputMode string

const (
	ModeFile InputMode = "file"
	ModeText InputMode = "text"
)

// ParseInputMode validates a stored or user supplied mode
func ParseInputMode(s string) (InputMode, error) {
	switch InputMode(s) {
	case ModeFile, ModeText:
		return InputMode(s), nil
	}
	return "", fmt.Errorf("unknown input mode %q", s)
}

// Theme is the light/dark appearance preference
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// ParseTheme validates a stored or user supplied theme
func ParseTheme(s string) (Theme, error) {
	switch Theme(s) {
	case ThemeLight, ThemeDark:
		return Theme(s), nil
	}
	return "", fmt.Errorf("unknown theme %q", s)
}

// Opposite returns the other theme
func (t Theme) Opposite() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// SelectedFile is a validated file chosen for analysis
type SelectedFile struct {
	Path        string
	Name        string
	ContentType string
	Size        int64
	Pages       int
}

// AppState is the single owned application state. The analysis goroutine
// and the UI loop both reach it, so every access goes through the mutex.
type AppState struct {
	mu sync.RWMutex

	mode    InputMode
	file    *SelectedFile
	text    string
	result  *classifier.Result
	errMsg  string
	loading int
	theme   Theme
}

// NewAppState creates the state with file mode and the light theme
func NewAppState() *AppState {
	return &AppState{mode: ModeFile, theme: ThemeLight}
}

func (s *AppState) Mode() InputMode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.mode
}

func (s *AppState) SetMode(mode InputMode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mode = mode
}

// File returns a copy of the current selection, or nil
func (s *AppState) File() *SelectedFile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.file == nil {
		return nil
	}
	f := *s.file
	return &f
}

func (s *AppState) SetFile(f *SelectedFile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.file = f
}

func (s *AppState) Text() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.text
}

func (s *AppState) SetText(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.text = text
}

func (s *AppState) Result() *classifier.Result {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.result
}

func (s *AppState) SetResult(res *classifier.Result) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.result = res
}

// Error returns the message currently shown in the banner, or ""
func (s *AppState) Error() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.errMsg
}

func (s *AppState) SetError(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errMsg = msg
}

// Loading reports whether at least one analysis is in flight
func (s *AppState) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading > 0
}

// beginLoading records a new analysis and returns how many are in flight
func (s *AppState) beginLoading() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading++
	return s.loading
}

// endLoading records a finished analysis and returns how many remain
func (s *AppState) endLoading() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loading > 0 {
		s.loading--
	}
	return s.loading
}

func (s *AppState) Theme() Theme {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.theme
}

func (s *AppState) SetTheme(theme Theme) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.theme = theme
}
