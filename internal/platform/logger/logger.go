// Package logger provides structured logging for the pet server.
// Every autonomous action (sweeps, removals, notifications) should be traceable through this.
package logger

import (
	"os"

	"github.com/sirupsen/logrus"
)

// Logger wraps the process-wide structured logger.
type Logger struct {
	log *logrus.Logger
}

// NewLogger creates a logger at the given level ("debug", "info", "warn", "error").
// Unknown levels fall back to info.
func NewLogger(level string) *Logger {
	l := logrus.New()
	l.SetOutput(os.Stdout)
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		parsed = logrus.InfoLevel
	}
	l.SetLevel(parsed)

	return &Logger{log: l}
}

// Info logs informational messages.
func (l *Logger) Info(msg string) {
	l.log.Info(msg)
}

// Infof logs formatted informational messages.
func (l *Logger) Infof(format string, args ...interface{}) {
	l.log.Infof(format, args...)
}

// Warn logs warning messages.
func (l *Logger) Warn(msg string) {
	l.log.Warn(msg)
}

// Warnf logs formatted warning messages.
func (l *Logger) Warnf(format string, args ...interface{}) {
	l.log.Warnf(format, args...)
}

// Error logs error messages.
func (l *Logger) Error(msg string) {
	l.log.Error(msg)
}

// Errorf logs formatted error messages.
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.log.Errorf(format, args...)
}

// Event logs a structured domain event with its actor for audit trails.
func (l *Logger) Event(eventType, ownerID, details string) {
	l.log.WithFields(logrus.Fields{
		"event": eventType,
		"owner": ownerID,
	}).Info(details)
}
