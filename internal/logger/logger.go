// Package logger provides logging functionality for the application.
package logger

import (
	"fmt"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Interface defines the logger interface.
type Interface interface {
	Debug(msg string, fields ...any)
	Info(msg string, fields ...any)
	Warn(msg string, fields ...any)
	Error(msg string, fields ...any)
	Fatal(msg string, fields ...any)
	With(fields ...any) Interface
	// Structured logging helpers
	WithImportID(importID string) Interface
	WithURL(url string) Interface
	WithStrategy(strategy string) Interface
	WithDuration(duration time.Duration) Interface
	WithError(err error) Interface
	WithComponent(component string) Interface
}

// Config holds the logger configuration.
type Config struct {
	// Level is one of debug, info, warn, error, fatal.
	Level string
	// Encoding selects console or json output.
	Encoding string
	// Development enables colored, human-friendly output.
	Development bool
}

// Logger implements the Interface.
type Logger struct {
	zapLogger *zap.Logger
}

var (
	// logLevels maps string levels to zapcore.Level
	logLevels = map[string]zapcore.Level{
		"debug": zapcore.DebugLevel,
		"info":  zapcore.InfoLevel,
		"warn":  zapcore.WarnLevel,
		"error": zapcore.ErrorLevel,
		"fatal": zapcore.FatalLevel,
	}

	// Common field keys
	fieldKeys = struct {
		ImportID  string
		URL       string
		Strategy  string
		Duration  string
		Error     string
		Component string
	}{
		ImportID:  "import_id",
		URL:       "url",
		Strategy:  "strategy",
		Duration:  "duration",
		Error:     "error",
		Component: "component",
	}
)

// New creates a new logger instance.
func New(config *Config) (Interface, error) {
	if config.Level == "" {
		config.Level = "info"
	}
	if config.Encoding == "" {
		config.Encoding = "console"
	}

	encoderConfig := zap.NewDevelopmentEncoderConfig()
	if config.Development {
		encoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		encoderConfig.EncodeTime = func(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
			enc.AppendString(t.Format("2006-01-02 15:04:05.000"))
		}
		encoderConfig.ConsoleSeparator = " | "
	} else {
		encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
		encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}
	encoderConfig.EncodeDuration = zapcore.StringDurationEncoder
	encoderConfig.EncodeCaller = zapcore.ShortCallerEncoder

	var encoder zapcore.Encoder
	if config.Encoding == "json" {
		encoder = zapcore.NewJSONEncoder(encoderConfig)
	} else {
		encoder = zapcore.NewConsoleEncoder(encoderConfig)
	}

	core := zapcore.NewCore(
		encoder,
		zapcore.AddSync(os.Stdout),
		getLogLevel(config.Level),
	)

	opts := []zap.Option{
		zap.AddCaller(),
		zap.AddStacktrace(zapcore.ErrorLevel),
	}
	if config.Development {
		opts = append(opts, zap.Development())
	}

	return &Logger{zapLogger: zap.New(core, opts...)}, nil
}

// getLogLevel converts a string level to zapcore.Level
func getLogLevel(level string) zapcore.Level {
	lvl, exists := logLevels[strings.ToLower(level)]
	if !exists {
		return zapcore.InfoLevel
	}
	return lvl
}

// Debug logs a debug message.
func (l *Logger) Debug(msg string, fields ...any) {
	l.zapLogger.Debug(msg, l.toZapFields(fields)...)
}

// Info logs an info message.
func (l *Logger) Info(msg string, fields ...any) {
	l.zapLogger.Info(msg, l.toZapFields(fields)...)
}

// Warn logs a warning message.
func (l *Logger) Warn(msg string, fields ...any) {
	l.zapLogger.Warn(msg, l.toZapFields(fields)...)
}

// Error logs an error message.
func (l *Logger) Error(msg string, fields ...any) {
	l.zapLogger.Error(msg, l.toZapFields(fields)...)
}

// Fatal logs a fatal message and exits.
func (l *Logger) Fatal(msg string, fields ...any) {
	l.zapLogger.Fatal(msg, l.toZapFields(fields)...)
}

// With creates a new logger with the given fields.
func (l *Logger) With(fields ...any) Interface {
	return &Logger{
		zapLogger: l.zapLogger.With(l.toZapFields(fields)...),
	}
}

// WithImportID adds an import ID to the logger.
func (l *Logger) WithImportID(importID string) Interface {
	return l.With(fieldKeys.ImportID, importID)
}

// WithURL adds a source URL to the logger.
func (l *Logger) WithURL(url string) Interface {
	return l.With(fieldKeys.URL, url)
}

// WithStrategy adds the winning extraction strategy to the logger.
func (l *Logger) WithStrategy(strategy string) Interface {
	return l.With(fieldKeys.Strategy, strategy)
}

// WithDuration adds a duration to the logger.
func (l *Logger) WithDuration(duration time.Duration) Interface {
	return l.With(fieldKeys.Duration, duration)
}

// WithError adds an error to the logger.
func (l *Logger) WithError(err error) Interface {
	return l.With(fieldKeys.Error, err)
}

// WithComponent adds a component name to the logger.
func (l *Logger) WithComponent(component string) Interface {
	return l.With(fieldKeys.Component, component)
}

// toZapFields converts a list of any fields to zap.Field.
func (l *Logger) toZapFields(fields []any) []zap.Field {
	if len(fields) == 0 {
		return nil
	}

	zapFields := make([]zap.Field, 0, len(fields))
	for i := 0; i < len(fields); i++ {
		switch field := fields[i].(type) {
		case zap.Field:
			// If it's already a zap.Field, use it directly
			zapFields = append(zapFields, field)
		case string:
			// If it's a string, it should be a key
			if i+1 >= len(fields) {
				l.zapLogger.Warn("Missing value for field key",
					zap.String("key", field),
				)
				continue
			}
			zapFields = append(zapFields, zap.Any(field, fields[i+1]))
			i++ // Skip the value in the next iteration
		default:
			// If it's neither, log a warning and skip
			l.zapLogger.Warn("Invalid field type",
				zap.String("expected_type", "string or zap.Field"),
				zap.String("actual_type", fmt.Sprintf("%T", field)),
			)
		}
	}

	return zapFields
}
