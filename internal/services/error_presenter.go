package services

import (
	"log"
	"runtime/debug"
	"strings"
	"sync"
)

// ErrorPresenter owns the single error banner. It also recovers panics so
// that no failure ends the session.
type ErrorPresenter struct {
	view   ErrorView
	state  *AppState
	logger *log.Logger
	wg     sync.WaitGroup
}

// NewErrorPresenter creates a new error presenter
func NewErrorPresenter(view ErrorView, state *AppState, logger *log.Logger) *ErrorPresenter {
	return &ErrorPresenter{view: view, state: state, logger: logger}
}

// Show displays msg in the banner, replacing any previous message
func (p *ErrorPresenter) Show(msg string) {
	if strings.TrimSpace(msg) == "" {
		return
	}
	p.logf("ERROR: %s", msg)
	p.state.SetError(msg)
	if p.view != nil {
		p.view.ShowError(msg)
	}
}

// Clear hides the banner
func (p *ErrorPresenter) Clear() {
	p.state.SetError("")
	if p.view != nil {
		p.view.HideError()
	}
}

// Guard runs a UI handler and turns a panic into the generic unexpected error
func (p *ErrorPresenter) Guard(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			p.logf("panic in handler: %v\n%s", r, debug.Stack())
			p.Show(MsgUnexpected)
		}
	}()
	fn()
}

// Go runs background work on its own goroutine. A panic there is reported
// as the generic asynchronous failure.
func (p *ErrorPresenter) Go(fn func()) {
	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		defer func() {
			if r := recover(); r != nil {
				p.logf("panic in background task: %v\n%s", r, debug.Stack())
				p.Show(MsgAsyncFailure)
			}
		}()
		fn()
	}()
}

// Wait blocks until every task started with Go has returned
func (p *ErrorPresenter) Wait() {
	p.wg.Wait()
}

func (p *ErrorPresenter) logf(format string, args ...interface{}) {
	if p.logger != nil {
		p.logger.Printf(format, args...)
	}
}
