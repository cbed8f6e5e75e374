package services

import (
	"context"
	"log"
)

// Preference keys
const (
	PrefActiveTab = "activeTab"
	PrefTheme     = "theme"
)

// PreferenceServiceImpl implements PreferenceService on top of a key/value
// store. A nil store disables persistence; defaults are returned instead.
type PreferenceServiceImpl struct {
	store  PreferenceStore
	logger *log.Logger
}

// NewPreferenceService creates a new preference service
func NewPreferenceService(store PreferenceStore, logger *log.Logger) *PreferenceServiceImpl {
	return &PreferenceServiceImpl{store: store, logger: logger}
}

// ActiveTab returns the remembered input mode, file by default
func (s *PreferenceServiceImpl) ActiveTab(ctx context.Context) InputMode {
	mode, err := ParseInputMode(s.get(ctx, PrefActiveTab))
	if err != nil {
		return ModeFile
	}
	return mode
}

// SetActiveTab remembers the input mode
func (s *PreferenceServiceImpl) SetActiveTab(ctx context.Context, mode InputMode) {
	s.set(ctx, PrefActiveTab, string(mode))
}

// Theme returns the remembered theme, light by default
func (s *PreferenceServiceImpl) Theme(ctx context.Context) Theme {
	theme, err := ParseTheme(s.get(ctx, PrefTheme))
	if err != nil {
		return ThemeLight
	}
	return theme
}

// SetTheme remembers the theme
func (s *PreferenceServiceImpl) SetTheme(ctx context.Context, theme Theme) {
	s.set(ctx, PrefTheme, string(theme))
}

func (s *PreferenceServiceImpl) get(ctx context.Context, key string) string {
	if s.store == nil {
		return ""
	}
	value, found, err := s.store.Get(ctx, key)
	if err != nil {
		s.logf("preferences: read %s: %v", key, err)
		return ""
	}
	if !found {
		return ""
	}
	return value
}

func (s *PreferenceServiceImpl) set(ctx context.Context, key, value string) {
	if s.store == nil {
		return
	}
	if err := s.store.Set(ctx, key, value); err != nil {
		s.logf("preferences: write %s: %v", key, err)
	}
}

func (s *PreferenceServiceImpl) logf(format string, args ...interface{}) {
	if s.logger != nil {
		s.logger.Printf(format, args...)
	}
}
