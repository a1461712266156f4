package logging

import (
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/muurk/gridbook/internal/grid"
)

var logger *zap.Logger

// LogLevelEnvVar is the environment variable that controls logging verbosity.
// When unset or empty, logging is silent (no zap output).
// Valid values: "debug", "info", "warn", "error"
const LogLevelEnvVar = "GRIDBOOK_LOG_LEVEL"

// Initialize creates a new logger with the specified level writing to output.
// If level is empty, it checks GRIDBOOK_LOG_LEVEL environment variable.
// If neither is set, logging is disabled (silent mode).
// An empty output writes to stdout.
func Initialize(level string, output string) error {
	if level == "" {
		level = os.Getenv(LogLevelEnvVar)
	}

	if level == "" {
		logger = zap.NewNop()
		return nil
	}

	if output == "" {
		output = "stdout"
	}

	config := zap.Config{
		Level:            zap.NewAtomicLevelAt(ParseLevel(level)),
		Development:      false,
		Encoding:         "console",
		EncoderConfig:    zap.NewDevelopmentEncoderConfig(),
		OutputPaths:      []string{output},
		ErrorOutputPaths: []string{"stderr"},
	}

	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.EncoderConfig.EncodeCaller = zapcore.ShortCallerEncoder
	if output == "stdout" || output == "stderr" {
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		// No ANSI escapes in log files
		config.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	}

	var err error
	logger, err = config.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	return nil
}

// ParseLevel maps a level name to a zap level.
// Unknown names fall back to info.
func ParseLevel(level string) zapcore.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zapcore.DebugLevel
	case "info":
		return zapcore.InfoLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// SetLogger replaces the global logger (used by tests)
func SetLogger(l *zap.Logger) {
	logger = l
}

// GetLogger returns the global logger instance
func GetLogger() *zap.Logger {
	if logger == nil {
		// Fallback to silent logger if not initialized
		logger = zap.NewNop()
	}
	return logger
}

// Info logs an info message
func Info(msg string, fields ...zap.Field) {
	GetLogger().Info(msg, fields...)
}

// Debug logs a debug message
func Debug(msg string, fields ...zap.Field) {
	GetLogger().Debug(msg, fields...)
}

// Warn logs a warning message
func Warn(msg string, fields ...zap.Field) {
	GetLogger().Warn(msg, fields...)
}

// Error logs an error message
func Error(msg string, fields ...zap.Field) {
	GetLogger().Error(msg, fields...)
}

// LogStoryLoaded logs a story fixture being turned into a grid
func LogStoryLoaded(source string, fields int, rows int) {
	Info("Story loaded",
		zap.String("source", source),
		zap.Int("fields", fields),
		zap.Int("rows", rows),
	)
}

// LogCellEdit logs a committed cell edit
func LogCellEdit(rowID grid.RowID, fieldKey string, value any) {
	Debug("Cell edited",
		zap.String("row_id", string(rowID)),
		zap.String("field", fieldKey),
		zap.Any("value", value),
	)
}

// LogSelection logs a selection change
func LogSelection(changed []grid.RowID, selectedCount int) {
	Debug("Selection changed",
		zap.Strings("changed", rowIDStrings(changed)),
		zap.Int("selected", selectedCount),
	)
}

// LogValidation logs the outcome of a validation pass
func LogValidation(errorCount int, invalidRows int) {
	if errorCount == 0 {
		Info("Validation passed")
		return
	}
	Warn("Validation found errors",
		zap.Int("errors", errorCount),
		zap.Int("invalid_rows", invalidRows),
	)
}

// LogContractViolation logs a rejected grid call
func LogContractViolation(op string, err error) {
	Error("Grid call rejected",
		zap.String("op", op),
		zap.Error(err),
	)
}

// GridObserver returns an observer that logs every change of state
func GridObserver(state *grid.State) grid.Observer {
	return grid.ObserverFunc(func(ev grid.Event) {
		switch ev.Kind {
		case grid.SelectionChanged:
			LogSelection(ev.RowIDs, state.SelectionCount())
		case grid.CellEdited:
			value, _ := state.Value(ev.RowIDs[0], ev.FieldKey)
			LogCellEdit(ev.RowIDs[0], ev.FieldKey, value)
		default:
			Debug("Grid changed",
				zap.Stringer("kind", ev.Kind),
				zap.Strings("rows", rowIDStrings(ev.RowIDs)),
			)
		}
	})
}

func rowIDStrings(ids []grid.RowID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = string(id)
	}
	return out
}

// Sync flushes any buffered log entries
func Sync() {
	if logger != nil {
		_ = logger.Sync()
	}
}
