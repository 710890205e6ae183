// Package logging builds the file-backed charm logger shared by the commands.
package logging

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
)

// New creates a logger appending to path. The terminal is owned by the UI, so
// when the file cannot be opened the logger discards its output.
// Unknown levels fall back to info.
func New(path, level string) *log.Logger {
	var w io.Writer = io.Discard
	if path != "" {
		if dir := filepath.Dir(path); dir != "." {
			_ = os.MkdirAll(dir, 0755)
		}
		if f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666); err == nil {
			w = f
		}
	}

	lvl, err := log.ParseLevel(level)
	if err != nil {
		lvl = log.InfoLevel
	}

	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
		Prefix:          "bikeshare",
		Level:           lvl,
	})
}
