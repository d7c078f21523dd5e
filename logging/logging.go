// Package logging brings up the single shared logrus logger every other
// package pulls diagnostics through, keyed by the fields a multi-user
// driver tick loop needs to make sense of: which user, which tick, how
// deep the call stack was, why a command failed.
package logging

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

var root = logrus.New()

// Fields is a thin alias so callers don't need to import logrus directly
// just to build a structured log line.
type Fields = logrus.Fields

// Configure sets the root logger's level and output destination. Called
// once at startup after config has loaded; safe to call again in tests
// to redirect output to a buffer.
func Configure(level string, out io.Writer) error {
	if out == nil {
		out = os.Stderr
	}
	root.SetOutput(out)
	root.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	if level == "" {
		level = "info"
	}
	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		return err
	}
	root.SetLevel(parsed)
	return nil
}

// Logger returns the shared root logger.
func Logger() *logrus.Logger { return root }

// WithUser scopes a log entry to one interactive user, the way dispatch
// tags every command-routing decision.
func WithUser(name string) *logrus.Entry {
	return root.WithField("user", name)
}

// WithTick scopes a log entry to one server heartbeat tick.
func WithTick(tick int64) *logrus.Entry {
	return root.WithField("tick", tick)
}
