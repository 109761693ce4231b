// logx.go - warning sink used by P2/P3.
// SPDX-License-Identifier: GPL-3.0-or-later

// Package logx wraps logrus the way the teacher wraps os.Stderr/os.Stdout
// behind ExecEnv: an interface ([Logger]) so tests can capture emitted
// warnings instead of asserting on global logger state.
package logx

import (
	"io"

	"github.com/sirupsen/logrus"
)

// Logger is the contract the parser depends on for non-fatal diagnostics
// (spec.md §7 "Warnings... are logged at WARN and the offending input is
// skipped").
type Logger interface {
	Warnf(format string, args ...any)
}

// logrusLogger adapts *logrus.Logger to [Logger].
type logrusLogger struct {
	entry *logrus.Logger
}

var _ Logger = &logrusLogger{}

// New returns a [Logger] writing to w at WARN level and above.
func New(w io.Writer) Logger {
	l := logrus.New()
	l.SetOutput(w)
	l.SetLevel(logrus.WarnLevel)
	l.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	return &logrusLogger{entry: l}
}

// Warnf implements [Logger].
func (l *logrusLogger) Warnf(format string, args ...any) {
	l.entry.Warnf(format, args...)
}

// Discard is a [Logger] that drops every message, useful as a safe
// default and in tests that do not care about warnings.
var Discard Logger = discardLogger{}

type discardLogger struct{}

func (discardLogger) Warnf(string, ...any) {}

// Reset re-initializes the warning sink to write to w. This models the
// "resetLog" parameter threaded through the top-level Parse entry point
// (spec.md §2), which pgBackRest uses to reopen logging destinations
// across local/remote role dispatch.
func Reset(w io.Writer) Logger {
	return New(w)
}
