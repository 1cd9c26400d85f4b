package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
)

// Logger writes component-tagged lines. A nil *Logger discards everything,
// so callers can hold one unconditionally.
type Logger struct {
	out       *log.Logger
	file      *os.File
	component string
	verbose   bool
}

// Open appends to the log file at path. An empty path yields a logger that
// discards output, since the TUI owns the terminal.
func Open(path string, verbose bool) (*Logger, error) {
	if strings.TrimSpace(path) == "" {
		return New(io.Discard, verbose), nil
	}
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create log dir: %w", err)
		}
	}
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	l := New(file, verbose)
	l.file = file
	return l, nil
}

func New(w io.Writer, verbose bool) *Logger {
	return &Logger{out: log.New(w, "", log.LstdFlags), verbose: verbose}
}

// With returns a logger sharing the same output, tagged with component.
func (l *Logger) With(component string) *Logger {
	if l == nil {
		return nil
	}
	cp := *l
	cp.file = nil
	cp.component = component
	return &cp
}

func (l *Logger) Printf(format string, args ...any) {
	if l == nil {
		return
	}
	l.out.Print(l.prefix() + fmt.Sprintf(format, args...))
}

// Debugf only writes when verbose logging is on.
func (l *Logger) Debugf(format string, args ...any) {
	if l == nil || !l.verbose {
		return
	}
	l.out.Print(l.prefix() + "debug: " + fmt.Sprintf(format, args...))
}

func (l *Logger) Close() error {
	if l == nil || l.file == nil {
		return nil
	}
	return l.file.Close()
}

func (l *Logger) prefix() string {
	if l.component == "" {
		return ""
	}
	return "[" + l.component + "] "
}
