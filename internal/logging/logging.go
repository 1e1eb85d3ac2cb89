// Package logging builds the hclog logger shared by commands and the
// scan engine.
package logging

import (
	"os"

	"github.com/hashicorp/go-hclog"
)

// New returns a named logger writing to stderr at the given level. An
// unknown level string falls back to warn so diagnostics stay quiet by
// default on user terminals.
func New(name, level string) hclog.Logger {
	lvl := hclog.LevelFromString(level)
	if lvl == hclog.NoLevel {
		lvl = hclog.Warn
	}
	return hclog.New(&hclog.LoggerOptions{
		Name:   name,
		Output: os.Stderr,
		Level:  lvl,
	})
}
