package services

import (
	"context"
	"log"
	"strings"
	"unicode/utf8"

	"github.com/ajramos/mailsort/internal/config"
	"github.com/ajramos/mailsort/internal/render"
)

// InputServiceImpl implements InputService
type InputServiceImpl struct {
	state     *AppState
	view      InputView
	errors    *ErrorPresenter
	results   ResultService
	prefs     PreferenceService
	inspector *FileInspector
	formatter *render.Formatter
	limits    config.LimitsConfig
	logger    *log.Logger
}

// NewInputService creates a new input service
func NewInputService(state *AppState, view InputView, errors *ErrorPresenter, results ResultService,
	prefs PreferenceService, inspector *FileInspector, formatter *render.Formatter,
	limits config.LimitsConfig, logger *log.Logger) *InputServiceImpl {
	return &InputServiceImpl{
		state:     state,
		view:      view,
		errors:    errors,
		results:   results,
		prefs:     prefs,
		inspector: inspector,
		formatter: formatter,
		limits:    limits,
		logger:    logger,
	}
}

// SwitchTab activates an input mode and remembers it
func (s *InputServiceImpl) SwitchTab(ctx context.Context, mode InputMode) error {
	if _, err := ParseInputMode(string(mode)); err != nil {
		return err
	}
	s.prefs.SetActiveTab(ctx, mode)
	s.state.SetMode(mode)
	s.view.ShowTab(mode)

	s.errors.Clear()
	s.results.Clear()
	s.Refresh()
	return nil
}

// SelectFile validates the file at path and makes it the selection.
// An empty path removes the selection.
func (s *InputServiceImpl) SelectFile(ctx context.Context, path string) {
	path = strings.TrimSpace(path)
	if path == "" {
		s.ClearFile(ctx)
		return
	}

	file, err := s.inspector.Inspect(path)
	if err != nil {
		s.logf("select file: %v", err)
		s.errors.Show(MsgUnreadableFile + path)
		return
	}

	if !s.allowedType(file.ContentType) {
		s.errors.Show(MsgUnsupportedType)
		return
	}
	if file.Size > s.limits.MaxFileSizeBytes {
		s.errors.Show(MsgFileTooLarge)
		return
	}

	if file.ContentType == pdfContentType {
		file.Pages = s.inspector.PageCount(path)
	}

	s.state.SetFile(file)
	s.view.SetFileLabel(MsgFileSelected + file.Name)
	s.view.SetFileInfo(&render.FileInfo{
		Name:        file.Name,
		ContentType: file.ContentType,
		Size:        file.Size,
		Pages:       file.Pages,
	})
	s.logf("file selected: %s (%s, %d bytes)", file.Name, file.ContentType, file.Size)

	s.errors.Clear()
	s.Refresh()
}

// ClearFile removes the selection and resets the label and info block
func (s *InputServiceImpl) ClearFile(ctx context.Context) {
	s.state.SetFile(nil)
	s.view.SetFileLabel(MsgFilePrompt)
	s.view.SetFileInfo(nil)
	s.Refresh()
}

// TextChanged records the pasted text and updates the counter
func (s *InputServiceImpl) TextChanged(value string) {
	s.state.SetText(value)

	n := utf8.RuneCountInString(value)
	s.view.SetCharCount(s.formatter.Count(n), s.band(n))
	s.Refresh()
}

// SubmitEnabled reports whether the current mode has something to analyze
func (s *InputServiceImpl) SubmitEnabled() bool {
	switch s.state.Mode() {
	case ModeFile:
		return s.state.File() != nil
	case ModeText:
		return strings.TrimSpace(s.state.Text()) != ""
	}
	return false
}

// Refresh pushes the submit enablement to the view
func (s *InputServiceImpl) Refresh() {
	s.view.SetSubmitEnabled(s.SubmitEnabled())
}

func (s *InputServiceImpl) band(n int) CountBand {
	switch {
	case n > s.limits.DangerTextChars:
		return BandDanger
	case n > s.limits.WarnTextChars:
		return BandWarning
	}
	return BandNeutral
}

func (s *InputServiceImpl) allowedType(contentType string) bool {
	for _, t := range s.limits.AllowedTypes {
		if contentType == t {
			return true
		}
	}
	return false
}

func (s *InputServiceImpl) logf(format string, args ...interface{}) {
	if s.logger != nil {
		s.logger.Printf(format, args...)
	}
}
