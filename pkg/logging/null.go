package logging

import "context"

// NullLogger discards everything. It is the logger of a scan that was
// started without a log file.
type NullLogger struct{}

var _ Logger = (*NullLogger)(nil)

// NewNullLogger creates a new null logger
func NewNullLogger() *NullLogger {
	return &NullLogger{}
}

func (l *NullLogger) Debug(ctx context.Context, msg string, fields Fields)            {}
func (l *NullLogger) Info(ctx context.Context, msg string, fields Fields)             {}
func (l *NullLogger) Warn(ctx context.Context, msg string, fields Fields)             {}
func (l *NullLogger) Error(ctx context.Context, msg string, err error, fields Fields) {}

// WithFields returns the same null logger
func (l *NullLogger) WithFields(fields Fields) Logger { return l }

// Close does nothing
func (l *NullLogger) Close() error { return nil }
