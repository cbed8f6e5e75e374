package tui

import (
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/derailed/tcell/v2"
	"github.com/derailed/tview"
)

// bannerHeight is the banner row count while an error is shown
const bannerHeight = 3

// LogLevel represents the severity of a message
type LogLevel int

const (
	LogLevelInfo LogLevel = iota
	LogLevelWarning
	LogLevelError
	LogLevelSuccess
)

// ErrorHandler owns the error banner and the status bar. The banner holds
// at most one message; the status bar shows a baseline that flash messages
// temporarily replace.
type ErrorHandler struct {
	mu         sync.RWMutex
	dispatch   func(func()) // schedules widget updates; nil runs them inline
	appRef     *App         // Reference to main App for theme colors
	layout     *tview.Flex
	bannerView *tview.TextView
	statusView *tview.TextView
	logger     *log.Logger

	// Status message state
	baseline    string
	bannerText  string
	statusTimer *time.Timer
}

// NewErrorHandler creates a new error handler
func NewErrorHandler(dispatch func(func()), appRef *App, layout *tview.Flex, bannerView, statusView *tview.TextView, logger *log.Logger) *ErrorHandler {
	return &ErrorHandler{
		dispatch:   dispatch,
		appRef:     appRef,
		layout:     layout,
		bannerView: bannerView,
		statusView: statusView,
		logger:     logger,
	}
}

// ShowError puts msg in the banner, replacing any previous message, and
// makes the banner visible
func (eh *ErrorHandler) ShowError(msg string) {
	if strings.TrimSpace(msg) == "" {
		return
	}

	eh.mu.Lock()
	eh.bannerText = msg
	eh.mu.Unlock()

	eh.queue(func() {
		if eh.bannerView == nil {
			return
		}
		eh.bannerView.SetText(eh.formatMessage(msg, LogLevelError))
		eh.bannerView.ScrollToBeginning()
		if eh.layout != nil {
			eh.layout.ResizeItem(eh.bannerView, bannerHeight, 0)
		}
	})
}

// HideError clears and collapses the banner
func (eh *ErrorHandler) HideError() {
	eh.mu.Lock()
	eh.bannerText = ""
	eh.mu.Unlock()

	eh.queue(func() {
		if eh.bannerView == nil {
			return
		}
		eh.bannerView.SetText("")
		if eh.layout != nil {
			eh.layout.ResizeItem(eh.bannerView, 0, 0)
		}
	})
}

// Banner returns the message currently in the banner, or ""
func (eh *ErrorHandler) Banner() string {
	eh.mu.RLock()
	defer eh.mu.RUnlock()
	return eh.bannerText
}

// SetBaseline sets the status text shown when no flash message is active
func (eh *ErrorHandler) SetBaseline(msg string) {
	eh.mu.Lock()
	eh.baseline = msg
	flashing := eh.statusTimer != nil
	eh.mu.Unlock()

	if flashing {
		return
	}
	eh.queue(func() {
		if eh.statusView != nil {
			eh.statusView.SetText(msg)
			eh.statusView.SetTextColor(eh.levelToColor(LogLevelInfo))
		}
	})
}

// ShowFlashMessage shows a temporary status message, then restores the baseline
func (eh *ErrorHandler) ShowFlashMessage(msg string, level LogLevel, duration time.Duration) {
	if strings.TrimSpace(msg) == "" {
		return
	}
	if eh.logger != nil {
		eh.logger.Printf("%s: %s", eh.levelToString(level), msg)
	}

	formatted := eh.formatMessage(msg, level)
	eh.queue(func() {
		if eh.statusView != nil {
			eh.statusView.SetText(formatted)
			eh.statusView.SetTextColor(eh.levelToColor(level))
		}
	})

	eh.mu.Lock()
	defer eh.mu.Unlock()
	if eh.statusTimer != nil {
		eh.statusTimer.Stop()
	}
	eh.statusTimer = time.AfterFunc(duration, eh.restoreBaseline)
}

func (eh *ErrorHandler) restoreBaseline() {
	eh.mu.Lock()
	eh.statusTimer = nil
	baseline := eh.baseline
	eh.mu.Unlock()

	eh.queue(func() {
		if eh.statusView != nil {
			eh.statusView.SetText(baseline)
			eh.statusView.SetTextColor(eh.levelToColor(LogLevelInfo))
		}
	})
}

// Close stops a pending flash timer
func (eh *ErrorHandler) Close() {
	eh.mu.Lock()
	defer eh.mu.Unlock()
	if eh.statusTimer != nil {
		eh.statusTimer.Stop()
		eh.statusTimer = nil
	}
}

// queue hands fn to the dispatcher, or runs it directly without one
func (eh *ErrorHandler) queue(fn func()) {
	if eh.dispatch == nil {
		fn()
		return
	}
	eh.dispatch(fn)
}

// formatMessage formats a message with appropriate icon
func (eh *ErrorHandler) formatMessage(msg string, level LogLevel) string {
	var icon string

	switch level {
	case LogLevelInfo:
		icon = "ℹ️"
	case LogLevelWarning:
		icon = "⚠️"
	case LogLevelError:
		icon = "❌"
	case LogLevelSuccess:
		icon = "✅"
	default:
		icon = "•"
	}

	return fmt.Sprintf("%s %s", icon, msg)
}

// levelToString converts LogLevel to string
func (eh *ErrorHandler) levelToString(level LogLevel) string {
	switch level {
	case LogLevelInfo:
		return "INFO"
	case LogLevelWarning:
		return "WARN"
	case LogLevelError:
		return "ERROR"
	case LogLevelSuccess:
		return "SUCCESS"
	default:
		return "UNKNOWN"
	}
}

// levelToColor converts LogLevel to theme-aware tcell.Color
func (eh *ErrorHandler) levelToColor(level LogLevel) tcell.Color {
	if eh.appRef == nil {
		return tview.Styles.PrimaryTextColor
	}
	switch level {
	case LogLevelWarning:
		return eh.appRef.GetStatusColor("warning")
	case LogLevelError:
		return eh.appRef.GetStatusColor("error")
	case LogLevelSuccess:
		return eh.appRef.GetStatusColor("success")
	default:
		return eh.appRef.GetStatusColor("info")
	}
}
