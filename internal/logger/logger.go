// Package logger holds the process-wide structured logger.
//
// The logger starts as a no-op so packages can log before main has parsed
// flags. Initialize swaps in a console or JSON zap logger.
package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the global logger instance.
var Logger *zap.SugaredLogger

func init() {
	Logger = zap.NewNop().Sugar()
}

// Standard field names for structured logging.
const (
	FieldRunID       = "run_id"
	FieldFileKey     = "file_key"
	FieldComponentID = "component_id"
	FieldComponent   = "component"
	FieldCount       = "count"
	FieldDurationMS  = "duration_ms"
	FieldError       = "error"
	FieldPath        = "path"
	FieldURL         = "url"
	FieldStatus      = "status"
	FieldAttempt     = "attempt"
)

// Initialize sets up the global logger. jsonOutput selects machine-readable
// output on stderr; verbosity 0 logs warnings and above, 1 info, 2+ debug.
func Initialize(jsonOutput bool, verbosity int) error {
	level := zap.WarnLevel
	switch {
	case verbosity >= 2:
		level = zap.DebugLevel
	case verbosity == 1:
		level = zap.InfoLevel
	}

	if jsonOutput {
		cfg := zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(level)
		cfg.OutputPaths = []string{"stderr"}
		zl, err := cfg.Build()
		if err != nil {
			return err
		}
		Logger = zl.Sugar()
		return nil
	}

	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	encCfg.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
	encCfg.EncodeCaller = nil

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encCfg),
		zapcore.AddSync(os.Stderr),
		level,
	)
	Logger = zap.New(core).Sugar()
	return nil
}

// ComponentLogger returns a named logger for a specific package or subsystem.
// Call it at construction time, not at package init, so it picks up the
// logger installed by Initialize.
func ComponentLogger(name string) *zap.SugaredLogger {
	return Logger.Named(name)
}

// Cleanup flushes any buffered log entries.
func Cleanup() {
	if Logger != nil {
		_ = Logger.Sync()
	}
}
