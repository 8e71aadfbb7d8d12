// Package log sets up the process-wide logrus logger. While the TUI runs
// nothing may reach the terminal, so output goes to a daily file or nowhere.
package log

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/sirupsen/logrus"
)

// Options controls logging. Zero value disables logging.
type Options struct {
	Enabled bool
	Level   string // logrus level name, info when empty or invalid
	JSON    bool
	Dir     string // defaults to $XDG_STATE_HOME/tunebrew
}

// Setup configures the standard logrus logger. It returns a function that
// closes the log file.
func Setup(opts Options) (func() error, error) {
	if !opts.Enabled {
		logrus.SetOutput(io.Discard)
		return func() error { return nil }, nil
	}

	dir := opts.Dir
	if dir == "" {
		dir = filepath.Join(xdg.StateHome, "tunebrew")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}

	path := filepath.Join(dir, time.Now().Format("2006-01-02")+".log")
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	logrus.SetOutput(f)

	if opts.JSON {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{DisableColors: true, FullTimestamp: true})
	}

	lvl, err := logrus.ParseLevel(opts.Level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	logrus.SetLevel(lvl)

	return f.Close, nil
}

// For returns an entry tagged with the component name.
func For(component string) *logrus.Entry {
	return logrus.WithField("component", component)
}
