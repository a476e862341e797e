// Package logs installs the shared go-logging backend.
package logs

import (
	"io"

	"github.com/op/go-logging"
	"github.com/pkg/errors"
)

// Modules are the logger names used across the repository.
var Modules = []string{"main", "ml", "play", "ui", "record", "dataset"}

var format = logging.MustStringFormatter(`%{time:15:04:05.000} %{module} %{shortfunc}() ▶ %{level:.4s} %{message}`)

// Setup routes every logger to w at the given level name (DEBUG, INFO, ...).
func Setup(w io.Writer, level string) error {
	lvl, err := logging.LogLevel(level)
	if err != nil {
		return errors.Wrapf(err, "log level %q", level)
	}
	backend := logging.NewBackendFormatter(logging.NewLogBackend(w, "", 0), format)
	logging.SetBackend(backend)
	for _, m := range Modules {
		logging.SetLevel(lvl, m)
	}
	return nil
}
