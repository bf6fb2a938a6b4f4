// Package zaplogger adapts go.uber.org/zap to types.Logger.
package zaplogger

import (
	"fmt"

	"github.com/zazjoe90-oss/go-linkbio/pkg/types"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options configures Build.
type Options struct {
	Level       string
	Development bool
	Service     string
}

// Build constructs a zap logger with ISO8601 timestamps under "timestamp".
func Build(opts Options) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	if opts.Development {
		config = zap.NewDevelopmentConfig()
	}
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	if opts.Level != "" {
		level, err := zap.ParseAtomicLevel(opts.Level)
		if err != nil {
			return nil, fmt.Errorf("log level: %w", err)
		}
		config.Level = level
	}

	logger, err := config.Build()
	if err != nil {
		return nil, err
	}
	if opts.Service != "" {
		logger = logger.With(zap.String("service", opts.Service))
	}
	return logger, nil
}

// Logger implements types.Logger on top of a zap.SugaredLogger. Fields are
// alternating key/value pairs.
type Logger struct {
	sugar *zap.SugaredLogger
}

// New wraps logger. A nil logger yields a no-op zap logger.
func New(logger *zap.Logger) *Logger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Logger{sugar: logger.Sugar()}
}

var _ types.Logger = (*Logger)(nil)

// Debug implements types.Logger.
func (l *Logger) Debug(msg string, fields ...any) {
	l.sugar.Debugw(msg, fields...)
}

// Info implements types.Logger.
func (l *Logger) Info(msg string, fields ...any) {
	l.sugar.Infow(msg, fields...)
}

// Error implements types.Logger.
func (l *Logger) Error(msg string, err error, fields ...any) {
	if err != nil {
		fields = append(fields, zap.Error(err))
	}
	l.sugar.Errorw(msg, fields...)
}

// Zap exposes the underlying logger.
func (l *Logger) Zap() *zap.Logger {
	return l.sugar.Desugar()
}
