package tui

import (
	"io"
	"log"
	"os"
	"path/filepath"
)

// OpenLogger opens the file logger at path. The TUI owns the terminal, so
// when the file cannot be opened logs are discarded rather than printed.
// The returned function closes the file.
func OpenLogger(path string) (*log.Logger, func()) {
	if path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err == nil {
			if f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644); err == nil {
				logger := log.New(f, "[mailsort] ", log.LstdFlags|log.Lmicroseconds)
				return logger, func() { _ = f.Close() }
			}
		}
	}
	return log.New(io.Discard, "[mailsort] ", log.LstdFlags|log.Lmicroseconds), func() {}
}
