// Package logging provides the file-backed structured logger.
//
// The TUI owns the terminal, so logs never go to stdout/stderr; everything is
// written to the configured log file.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
)

// Setup opens (creating parent directories as needed) the log file and
// returns a logger writing to it. An empty path returns a disabled logger.
func Setup(path, level string) (zerolog.Logger, error) {
	if strings.TrimSpace(path) == "" {
		return zerolog.New(io.Discard), nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return zerolog.New(io.Discard), fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return zerolog.New(io.Discard), fmt.Errorf("open log file: %w", err)
	}

	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	logger := zerolog.New(f).Level(lvl).With().Timestamp().Logger()
	return logger, nil
}
