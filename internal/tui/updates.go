package tui

// Event loop phases for widget updates
const (
	loopIdle int32 = iota
	loopRunning
	loopStopped
)

// ui applies fn to the widgets. Before the event loop starts fn runs
// inline; while the loop runs it is queued in call order and the caller
// never waits for the loop, so handlers already on the loop and background
// goroutines can both use it; after the loop exits fn is dropped.
func (a *App) ui(fn func()) {
	switch a.loop.Load() {
	case loopIdle:
		fn()
		return
	case loopStopped:
		return
	}

	a.uiMu.Lock()
	a.uiPending = append(a.uiPending, fn)
	a.uiMu.Unlock()

	select {
	case a.uiWake <- struct{}{}:
	default:
	}
}

// pumpUpdates hands pending widget updates to the event loop until the app
// context ends. It is the only goroutine that waits on the loop.
func (a *App) pumpUpdates() {
	for {
		select {
		case <-a.ctx.Done():
			return
		case <-a.uiWake:
		}
		if a.loop.Load() != loopRunning {
			return
		}
		a.QueueUpdateDraw(a.drainUpdates)
	}
}

// drainUpdates runs queued updates on the event loop, including the ones
// they queue themselves
func (a *App) drainUpdates() {
	for {
		a.uiMu.Lock()
		pending := a.uiPending
		a.uiPending = nil
		a.uiMu.Unlock()

		if len(pending) == 0 {
			return
		}
		for _, fn := range pending {
			fn()
		}
	}
}
