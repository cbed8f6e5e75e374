package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/ajramos/mailsort/internal/config"
)

// ThemeUpdateCallback represents a function that gets called when theme changes
type ThemeUpdateCallback func(*config.ColorsConfig) error

// ComponentRegistration represents a component that can receive theme updates
type ComponentRegistration struct {
	name     string
	callback ThemeUpdateCallback
}

// ThemeServiceImpl implements ThemeService
type ThemeServiceImpl struct {
	mu             sync.Mutex
	state          *AppState
	view           ThemeView
	prefs          PreferenceService
	themeLoader    *config.ThemeLoader
	applyThemeFunc func(*config.ColorsConfig) error // Function to apply theme to the app
	logger         *log.Logger

	// Component registration system
	registeredComponents []ComponentRegistration
	currentThemeConfig   *config.ColorsConfig // Cache current theme for new registrations
}

// NewThemeService creates a new theme service
func NewThemeService(state *AppState, view ThemeView, prefs PreferenceService, themesDir string,
	applyThemeFunc func(*config.ColorsConfig) error, logger *log.Logger) *ThemeServiceImpl {
	return &ThemeServiceImpl{
		state:          state,
		view:           view,
		prefs:          prefs,
		themeLoader:    config.NewThemeLoader(themesDir),
		applyThemeFunc: applyThemeFunc,
		logger:         logger,
	}
}

// Init applies the remembered theme (light by default)
func (s *ThemeServiceImpl) Init(ctx context.Context) error {
	return s.ApplyTheme(ctx, s.prefs.Theme(ctx))
}

// Toggle switches between light and dark
func (s *ThemeServiceImpl) Toggle(ctx context.Context) error {
	return s.ApplyTheme(ctx, s.Current().Opposite())
}

// Current returns the active theme
func (s *ThemeServiceImpl) Current() Theme {
	return s.state.Theme()
}

// ApplyTheme loads the palette for theme, applies it, marks the matching
// theme button active and remembers the choice
func (s *ThemeServiceImpl) ApplyTheme(ctx context.Context, theme Theme) error {
	if _, err := ParseTheme(string(theme)); err != nil {
		return err
	}

	themeConfig, err := s.themeLoader.LoadTheme(string(theme))
	if err != nil {
		// A broken user theme file must not leave the app unstyled
		s.logf("theme %s: %v; using built-in palette", theme, err)
		themeConfig = config.BuiltinColors(string(theme))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Apply theme using the provided function
	if s.applyThemeFunc != nil {
		if err := s.applyThemeFunc(themeConfig); err != nil {
			return fmt.Errorf("failed to apply theme '%s': %w", theme, err)
		}
	}

	s.currentThemeConfig = themeConfig
	s.state.SetTheme(theme)
	if s.view != nil {
		s.view.SetActiveTheme(theme)
	}
	s.prefs.SetTheme(ctx, theme)

	// Notify all registered components
	if err := s.notifyComponents(themeConfig); err != nil {
		return fmt.Errorf("failed to notify components of theme change: %w", err)
	}
	return nil
}

// RegisterComponent registers a component to receive theme updates
func (s *ThemeServiceImpl) RegisterComponent(name string, callback ThemeUpdateCallback) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.registeredComponents = append(s.registeredComponents, ComponentRegistration{
		name:     name,
		callback: callback,
	})

	// If we have a current theme, apply it to the new component immediately
	if s.currentThemeConfig != nil {
		if err := callback(s.currentThemeConfig); err != nil {
			return fmt.Errorf("failed to apply current theme to component '%s': %w", name, err)
		}
	}
	return nil
}

// CurrentColors returns the currently loaded theme configuration
func (s *ThemeServiceImpl) CurrentColors() *config.ColorsConfig {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentThemeConfig
}

// notifyComponents sends theme updates to all registered components
func (s *ThemeServiceImpl) notifyComponents(themeConfig *config.ColorsConfig) error {
	var errs []string
	for _, component := range s.registeredComponents {
		if err := component.callback(themeConfig); err != nil {
			errs = append(errs, fmt.Sprintf("component '%s': %v", component.name, err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("theme update errors: %s", strings.Join(errs, "; "))
	}
	return nil
}

func (s *ThemeServiceImpl) logf(format string, args ...interface{}) {
	if s.logger != nil {
		s.logger.Printf(format, args...)
	}
}
