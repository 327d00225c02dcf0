// Package logging builds the process logger: a zap core bridged to the
// logr.Logger API that every other package receives by injection.
package logging

import (
	"fmt"
	"strings"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Named logr verbosity levels. Verbosity increases with the value:
// V(DEBUG) messages describe per-run decisions, V(TRACE) messages
// describe per-node/per-switch steps.
const (
	DEBUG = 1
	TRACE = 2
)

// NewLogger builds a logger at the given level. Level names are
// error, warn, info, debug and trace; the empty string means info.
// When development is true the console encoder is used instead of JSON.
func NewLogger(level string, development bool) (logr.Logger, error) {
	zapLevel, err := parseLevel(level)
	if err != nil {
		return logr.Discard(), err
	}

	var cfg zap.Config
	if development {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(zapLevel)

	zl, err := cfg.Build()
	if err != nil {
		return logr.Discard(), fmt.Errorf("building zap logger: %w", err)
	}
	return zapr.NewLogger(zl), nil
}

// NewTestLogger returns a development-mode logger with all verbosity
// enabled, for use in test suites. It also installs the logger as the zap
// global so suite bootstraps can call it for the side effect alone.
func NewTestLogger() logr.Logger {
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.Level(-TRACE))

	zl, err := cfg.Build()
	if err != nil {
		panic(fmt.Sprintf("building test logger: %v", err))
	}
	zap.ReplaceGlobals(zl)
	return zapr.NewLogger(zl)
}

// parseLevel maps a level name to the zap level enabling it. The logr
// verbosity levels above sit below zap's DebugLevel, so "trace" enables
// everything.
func parseLevel(level string) (zapcore.Level, error) {
	switch strings.ToLower(level) {
	case "", "info":
		return zapcore.InfoLevel, nil
	case "debug":
		return zapcore.Level(-DEBUG), nil
	case "trace":
		return zapcore.Level(-TRACE), nil
	case "warn", "warning":
		return zapcore.WarnLevel, nil
	case "error":
		return zapcore.ErrorLevel, nil
	default:
		return zapcore.InfoLevel, fmt.Errorf("unknown log level %q", level)
	}
}
