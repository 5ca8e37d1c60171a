package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

const timestampFormat = "2006-01-02 15:04:05.000"

// Config selects level, format and destination of log output.
type Config struct {
	Level  string // debug, info, warn, error
	Format string // text or json
	File   string // rotate into this file instead of stdout when set

	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// Logger wraps logrus with structured logging methods taking
// alternating key/value pairs.
type Logger struct {
	logger *logrus.Logger
}

// New creates a Logger writing text at info level to stdout.
func New() *Logger {
	l := logrus.New()
	l.SetOutput(os.Stdout)
	l.SetLevel(logrus.InfoLevel)
	l.SetFormatter(&logrus.TextFormatter{
		TimestampFormat: timestampFormat,
		FullTimestamp:   true,
	})
	return &Logger{logger: l}
}

// NewWithConfig creates a Logger from cfg.
func NewWithConfig(cfg Config) (*Logger, error) {
	l := New()

	if cfg.Level != "" {
		level, err := logrus.ParseLevel(cfg.Level)
		if err != nil {
			return nil, fmt.Errorf("invalid log level: %w", err)
		}
		l.logger.SetLevel(level)
	}

	switch strings.ToLower(cfg.Format) {
	case "", "text":
	case "json":
		l.logger.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: timestampFormat,
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyTime:  "timestamp",
				logrus.FieldKeyLevel: "level",
				logrus.FieldKeyMsg:   "message",
			},
		})
	default:
		return nil, fmt.Errorf("unsupported log format: %s", cfg.Format)
	}

	if cfg.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.File), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
		l.logger.SetOutput(&lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
			Compress:   true,
		})
	}

	return l, nil
}

// Nop returns a Logger that discards everything.
func Nop() *Logger {
	l := New()
	l.logger.SetOutput(io.Discard)
	return l
}

// SetOutput redirects log output, mostly for tests.
func (l *Logger) SetOutput(w io.Writer) {
	l.logger.SetOutput(w)
}

// Debug logs a debug message with structured key-value pairs
func (l *Logger) Debug(msg string, keysAndValues ...interface{}) {
	l.entry(keysAndValues).Debug(msg)
}

// Info logs an informational message with structured key-value pairs
func (l *Logger) Info(msg string, keysAndValues ...interface{}) {
	l.entry(keysAndValues).Info(msg)
}

// Warn logs a warning with structured key-value pairs
func (l *Logger) Warn(msg string, keysAndValues ...interface{}) {
	l.entry(keysAndValues).Warn(msg)
}

// Error logs an error message with structured key-value pairs
func (l *Logger) Error(msg string, keysAndValues ...interface{}) {
	l.entry(keysAndValues).Error(msg)
}

// entry turns "key1", value1, "key2", value2 into logrus fields.
// A trailing key without a value is dropped.
func (l *Logger) entry(keysAndValues []interface{}) *logrus.Entry {
	fields := make(logrus.Fields, len(keysAndValues)/2)
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		fields[fmt.Sprint(keysAndValues[i])] = keysAndValues[i+1]
	}
	return l.logger.WithFields(fields)
}
