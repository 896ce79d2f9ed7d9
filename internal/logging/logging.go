// Package logging hands out component loggers that share one level and sink.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
)

var (
	level = new(slog.LevelVar)

	mu   sync.RWMutex
	base = newBase(os.Stderr)
)

func newBase(w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// Logger returns a logger tagged with component. Level changes made later
// through SetLevel still apply to it.
func Logger(component string) *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return base.With("component", component)
}

// SetLevel accepts debug, info, warn or error.
func SetLevel(name string) error {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(name))); err != nil {
		return fmt.Errorf("log level %q: %w", name, err)
	}
	level.Set(l)
	return nil
}

// SetOutput redirects loggers created after the call.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	base = newBase(w)
}
