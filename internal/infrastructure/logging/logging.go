// Package logging builds the structured loggers used across the module.
package logging

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// New returns a logger writing to stderr at the given level ("debug",
// "info", "warn", "error").
func New(level, prefix string) (*log.Logger, error) {
	return NewWithWriter(os.Stderr, level, prefix)
}

// NewWithWriter is New with an explicit destination.
func NewWithWriter(w io.Writer, level, prefix string) (*log.Logger, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           lvl,
	}), nil
}

// Discard returns a logger that drops everything.
func Discard() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.FatalLevel})
}
