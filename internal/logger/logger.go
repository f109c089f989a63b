// Package logger configures structured logging with log/slog.
package logger

import (
	"io"
	"log/slog"
	"strings"
	"sync"
)

// output is where every logger built by Setup writes. Loggers handed out
// before a Redirect follow it.
var output = &switchWriter{w: io.Discard}

type switchWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *switchWriter) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(p)
}

func (s *switchWriter) swap(w io.Writer) io.Writer {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev := s.w
	s.w = w
	return prev
}

// Setup builds a text logger writing to w at the given level and installs it
// as the slog default. debug forces the debug level.
// Unknown levels fall back to warn.
func Setup(w io.Writer, level string, debug bool) *slog.Logger {
	lvl := ParseLevel(level)
	if debug {
		lvl = slog.LevelDebug
	}

	output.swap(w)
	l := slog.New(slog.NewTextHandler(output, &slog.HandlerOptions{Level: lvl}))
	slog.SetDefault(l)
	return l
}

// Redirect sends log output to w until restore is called. The terminal UI
// uses it to keep log lines off the screen it draws.
func Redirect(w io.Writer) (restore func()) {
	prev := output.swap(w)
	return func() { output.swap(prev) }
}

// ParseLevel maps a level name to a slog.Level.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
