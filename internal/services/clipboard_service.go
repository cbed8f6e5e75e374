package services

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/exec"
	"runtime"
	"strings"
)

// ErrNoClipboard means neither a clipboard utility nor the terminal accepted the text
var ErrNoClipboard = errors.New("no clipboard available")

// ClipboardService copies text with the platform clipboard utility and
// falls back to an OSC 52 terminal escape sequence
type ClipboardService struct {
	logger *log.Logger

	goos         string
	getenv       func(string) string
	lookPath     func(string) (string, error)
	run          func(ctx context.Context, stdin string, name string, args ...string) error
	openTerminal func() (io.WriteCloser, error)
}

// NewClipboardService creates a clipboard service for the running platform
func NewClipboardService(logger *log.Logger) *ClipboardService {
	return &ClipboardService{
		logger:   logger,
		goos:     runtime.GOOS,
		getenv:   os.Getenv,
		lookPath: exec.LookPath,
		run: func(ctx context.Context, stdin string, name string, args ...string) error {
			cmd := exec.CommandContext(ctx, name, args...)
			cmd.Stdin = strings.NewReader(stdin)
			return cmd.Run()
		},
		openTerminal: func() (io.WriteCloser, error) {
			return os.OpenFile("/dev/tty", os.O_WRONLY, 0)
		},
	}
}

// Copy puts text on the clipboard
func (c *ClipboardService) Copy(ctx context.Context, text string) error {
	cmdErr := c.copyWithUtility(ctx, text)
	if cmdErr == nil {
		return nil
	}
	c.logf("clipboard utility failed: %v", cmdErr)

	if err := c.copyWithOSC52(text); err != nil {
		c.logf("OSC 52 fallback failed: %v", err)
		return fmt.Errorf("%w: %v; %v", ErrNoClipboard, cmdErr, err)
	}
	c.logf("copied %d bytes via OSC 52", len(text))
	return nil
}

func (c *ClipboardService) copyWithUtility(ctx context.Context, text string) error {
	candidates := c.candidates()
	if len(candidates) == 0 {
		return fmt.Errorf("clipboard not supported on platform: %s", c.goos)
	}

	var lastErr error
	for _, argv := range candidates {
		if _, err := c.lookPath(argv[0]); err != nil {
			lastErr = err
			continue
		}
		if err := c.run(ctx, text, argv[0], argv[1:]...); err != nil {
			lastErr = fmt.Errorf("%s: %w", argv[0], err)
			continue
		}
		c.logf("copied %d bytes via %s", len(text), argv[0])
		return nil
	}
	return lastErr
}

// candidates lists clipboard commands in preference order
func (c *ClipboardService) candidates() [][]string {
	switch c.goos {
	case "darwin":
		return [][]string{{"pbcopy"}}
	case "windows":
		return [][]string{{"clip"}}
	case "linux", "freebsd", "openbsd", "netbsd":
		var out [][]string
		if c.getenv("WAYLAND_DISPLAY") != "" {
			out = append(out, []string{"wl-copy"})
		}
		return append(out,
			[]string{"xclip", "-selection", "clipboard"},
			[]string{"xsel", "--clipboard", "--input"},
		)
	}
	return nil
}

func (c *ClipboardService) copyWithOSC52(text string) error {
	if c.openTerminal == nil {
		return errors.New("no terminal")
	}
	w, err := c.openTerminal()
	if err != nil {
		return err
	}
	defer w.Close()

	_, err = io.WriteString(w, osc52Sequence(text, c.getenv("TMUX") != ""))
	return err
}

// osc52Sequence builds the escape that asks the terminal to set its
// clipboard; inside tmux it is wrapped in a passthrough
func osc52Sequence(text string, tmux bool) string {
	seq := "\x1b]52;c;" + base64.StdEncoding.EncodeToString([]byte(text)) + "\x07"
	if tmux {
		return "\x1bPtmux;" + strings.ReplaceAll(seq, "\x1b", "\x1b\x1b") + "\x1b\\"
	}
	return seq
}

func (c *ClipboardService) logf(format string, args ...interface{}) {
	if c.logger != nil {
		c.logger.Printf(format, args...)
	}
}
