package services

import (
	"context"
	"log"
	"net/url"
	"os"
	"strings"

	"github.com/mattn/go-shellwords"
)

// DropServiceImpl implements DropService. Terminals deliver a dropped file
// as its path pasted into the focused field, so the drop payload is text.
type DropServiceImpl struct {
	view   InputView
	input  InputService
	logger *log.Logger
}

// NewDropService creates a new drop service
func NewDropService(view InputView, input InputService, logger *log.Logger) *DropServiceImpl {
	return &DropServiceImpl{view: view, input: input, logger: logger}
}

// DragOver shows the drop-target cue
func (s *DropServiceImpl) DragOver() {
	s.view.SetDropTarget(true)
}

// DragLeave removes the drop-target cue
func (s *DropServiceImpl) DragLeave() {
	s.view.SetDropTarget(false)
}

// Drop removes the cue and selects the first dropped path; the rest are ignored
func (s *DropServiceImpl) Drop(ctx context.Context, payload string) {
	s.view.SetDropTarget(false)

	// A path with bare spaces or Windows separators arrives unquoted
	trimmed := strings.TrimSpace(payload)
	if trimmed != "" {
		if _, err := os.Stat(trimmed); err == nil {
			s.input.SelectFile(ctx, trimmed)
			return
		}
	}

	paths := ParseDroppedPaths(payload)
	if len(paths) == 0 {
		return
	}
	if len(paths) > 1 && s.logger != nil {
		s.logger.Printf("drop: %d paths received, using %s", len(paths), paths[0])
	}
	s.input.SelectFile(ctx, paths[0])
}

// ParseDroppedPaths splits the text a terminal inserts for dropped files.
// Paths may be separated by whitespace or newlines, single or double quoted,
// backslash escaped, or given as file:// URIs. A payload the shell-words
// parser rejects (unbalanced quotes) yields no paths.
func ParseDroppedPaths(payload string) []string {
	words, err := shellwords.NewParser().Parse(payload)
	if err != nil {
		return nil
	}

	var paths []string
	for _, w := range words {
		if p := normalizeDroppedPath(w); p != "" {
			paths = append(paths, p)
		}
	}
	return paths
}

func normalizeDroppedPath(p string) string {
	if strings.HasPrefix(p, "file://") {
		u, err := url.Parse(p)
		if err != nil || u.Path == "" {
			return ""
		}
		return u.Path
	}
	return p
}
