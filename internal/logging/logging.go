// Package logging configures the logr/zap logger shared by the triage engine and
// defines the verbosity levels used with logger.V(...).
package logging

import (
	"fmt"
	"os"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	ctrl "sigs.k8s.io/controller-runtime"
	crzap "sigs.k8s.io/controller-runtime/pkg/log/zap"
)

// Verbosity levels passed to logr's V(). zapr maps V(n) to zap level -n.
const (
	INFO  = 0
	DEBUG = 1
	TRACE = 2
)

// NewLogger builds a zap-backed logr.Logger. level accepts zap level names
// ("debug", "info", "warn", "error") plus "trace".
func NewLogger(level string, development bool) (logr.Logger, error) {
	zapLevel, err := parseLevel(level)
	if err != nil {
		return logr.Discard(), err
	}

	cfg := zap.NewProductionConfig()
	if development {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(zapLevel)

	zapLog, err := cfg.Build()
	if err != nil {
		return logr.Discard(), fmt.Errorf("building zap logger: %w", err)
	}
	return zapr.NewLogger(zapLog), nil
}

// Setup builds a logger and installs it as the controller-runtime global logger,
// which is what ctrl.Log and ctrl.LoggerFrom fall back to.
func Setup(level string, development bool) (logr.Logger, error) {
	logger, err := NewLogger(level, development)
	if err != nil {
		return logger, err
	}
	ctrl.SetLogger(logger)
	return logger, nil
}

// NewTestLogger installs a development logger writing to stderr at TRACE verbosity.
// Test suites call it once before running specs.
func NewTestLogger() logr.Logger {
	logger := crzap.New(
		crzap.UseDevMode(true),
		crzap.WriteTo(os.Stderr),
		crzap.Level(zapcore.Level(-TRACE)),
	)
	ctrl.SetLogger(logger)
	return logger
}

func parseLevel(level string) (zapcore.Level, error) {
	switch level {
	case "":
		return zapcore.InfoLevel, nil
	case "trace":
		return zapcore.Level(-TRACE), nil
	}
	zapLevel, err := zapcore.ParseLevel(level)
	if err != nil {
		return zapcore.InfoLevel, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return zapLevel, nil
}
