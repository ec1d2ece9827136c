package logging

import (
	"context"

	"github.com/alexisbeaulieu97/motionkit/internal/ports"
)

// NoOpLogger discards all log entries.
type NoOpLogger struct{}

func (*NoOpLogger) Debug(context.Context, string, ...interface{}) {}
func (*NoOpLogger) Info(context.Context, string, ...interface{})  {}
func (*NoOpLogger) Warn(context.Context, string, ...interface{})  {}
func (*NoOpLogger) Error(context.Context, string, ...interface{}) {}

func (n *NoOpLogger) With(...interface{}) ports.Logger { return n }

// NewNoOpLogger returns a ports.Logger that discards all log entries.
func NewNoOpLogger() ports.Logger {
	return &NoOpLogger{}
}

// OrNoOp returns logger, or a discarding logger when it is nil, so optional
// logger parameters can be used without nil checks.
func OrNoOp(logger ports.Logger) ports.Logger {
	if logger == nil {
		return NewNoOpLogger()
	}
	return logger
}
