package app

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
)

// NewLogger writes JSON events to a file under the data root. The TUI owns
// stdout, so nothing is ever logged there. If the file cannot be opened the
// logger is silently discarded rather than failing startup.
func NewLogger(root string) (zerolog.Logger, func()) {
	zerolog.TimeFieldFormat = time.RFC3339

	dir := filepath.Join(root, "logs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return zerolog.New(io.Discard), func() {}
	}
	f, err := os.OpenFile(filepath.Join(dir, "ecoa.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return zerolog.New(io.Discard), func() {}
	}
	logger := zerolog.New(f).With().Timestamp().Logger()
	return logger, func() { _ = f.Close() }
}
