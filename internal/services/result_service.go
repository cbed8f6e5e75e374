package services

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/ajramos/mailsort/internal/classifier"
	"github.com/ajramos/mailsort/internal/render"
)

// ResultServiceImpl implements ResultService
type ResultServiceImpl struct {
	state         *AppState
	view          ResultView
	clipboard     Clipboard
	formatter     *render.Formatter
	providerLabel string
	feedback      time.Duration
	logger        *log.Logger

	mu    sync.Mutex
	timer *time.Timer
}

// NewResultService creates a new result service
func NewResultService(state *AppState, view ResultView, clipboard Clipboard, formatter *render.Formatter,
	providerLabel string, feedback time.Duration, logger *log.Logger) *ResultServiceImpl {
	if feedback <= 0 {
		feedback = 2 * time.Second
	}
	return &ResultServiceImpl{
		state:         state,
		view:          view,
		clipboard:     clipboard,
		formatter:     formatter,
		providerLabel: providerLabel,
		feedback:      feedback,
		logger:        logger,
	}
}

// Render shows res in the result region and keeps it as the current result
func (s *ResultServiceImpl) Render(res *classifier.Result) {
	if res == nil {
		s.Clear()
		return
	}
	s.state.SetResult(res)

	display := s.formatter.BuildResultDisplay(res, s.providerLabel)
	display.Reason = render.SanitizeForTerminal(display.Reason)
	display.SuggestedResponse = render.SanitizeForTerminal(display.SuggestedResponse)
	display.AnalyzedContent = render.SanitizeForTerminal(display.AnalyzedContent)
	s.view.ShowResult(display)
}

// Clear hides the result region and forgets the current result
func (s *ResultServiceImpl) Clear() {
	s.state.SetResult(nil)
	s.view.HideResult()
}

// CopySuggestedResponse copies the suggested reply. On success the copy
// button shows a confirmation that reverts after the feedback duration.
// Failures are only logged by the caller; the banner is never used.
func (s *ResultServiceImpl) CopySuggestedResponse(ctx context.Context) error {
	res := s.state.Result()
	if res == nil {
		return nil
	}
	if err := s.clipboard.Copy(ctx, res.SuggestedResponse); err != nil {
		s.logf("copy suggested response: %v", err)
		return err
	}

	s.view.SetCopyLabel(MsgCopied)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.feedback, func() {
		s.view.SetCopyLabel(MsgCopyIdle)
	})
	return nil
}

// Close cancels a pending copy label revert
func (s *ResultServiceImpl) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

func (s *ResultServiceImpl) logf(format string, args ...interface{}) {
	if s.logger != nil {
		s.logger.Printf(format, args...)
	}
}
