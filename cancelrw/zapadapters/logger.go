// Package zapadapters provides a zap adapter for the cancelrw Logger interface.
// Use it when your application already logs through zap and you want token
// cancellations and copy summaries in the same stream.
package zapadapters

import (
	"go.uber.org/zap"

	"github.com/rodrigorc/cancel-rw/cancelrw"
)

// ZapLogger implements cancelrw.Logger on top of a zap SugaredLogger.
// The sugared API takes the same loosely-typed key-value pairs as the
// cancelrw logging interface, so args pass through without conversion.
type ZapLogger struct {
	logger *zap.SugaredLogger
}

// NewZapLogger creates a logger adapter from a structured zap logger.
func NewZapLogger(logger *zap.Logger) *ZapLogger {
	return &ZapLogger{logger: logger.Sugar()}
}

// NewZapSugaredLogger creates a logger adapter from an already sugared logger.
func NewZapSugaredLogger(logger *zap.SugaredLogger) *ZapLogger {
	return &ZapLogger{logger: logger}
}

// Debug logs a debug message.
func (l *ZapLogger) Debug(msg string, args ...any) {
	l.logger.Debugw(msg, args...)
}

// Info logs an info message.
func (l *ZapLogger) Info(msg string, args ...any) {
	l.logger.Infow(msg, args...)
}

// Warn logs a warning message.
func (l *ZapLogger) Warn(msg string, args ...any) {
	l.logger.Warnw(msg, args...)
}

// Error logs an error message.
func (l *ZapLogger) Error(msg string, args ...any) {
	l.logger.Errorw(msg, args...)
}

// Ensure ZapLogger implements cancelrw.Logger.
var _ cancelrw.Logger = (*ZapLogger)(nil)
