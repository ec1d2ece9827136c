package logging

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexisbeaulieu97/motionkit/internal/ports"
)

// BufferedLogger holds entries in an EventBuffer while the demo owns the
// terminal. Entries below the configured level are dropped on arrival so the
// on-screen tail and the replay agree with the primary logger.
type BufferedLogger struct {
	buffer *EventBuffer
	min    logLevel
	fields []interface{}
}

// NewBufferedLogger returns a logger writing into buffer. An empty level
// means info.
func NewBufferedLogger(buffer *EventBuffer, level string) (*BufferedLogger, error) {
	floor, err := parseLogLevel(level)
	if err != nil {
		return nil, err
	}
	return &BufferedLogger{buffer: buffer, min: floor}, nil
}

func (l *BufferedLogger) Debug(ctx context.Context, msg string, fields ...interface{}) {
	l.log(ctx, levelDebug, msg, fields...)
}

func (l *BufferedLogger) Info(ctx context.Context, msg string, fields ...interface{}) {
	l.log(ctx, levelInfo, msg, fields...)
}

func (l *BufferedLogger) Warn(ctx context.Context, msg string, fields ...interface{}) {
	l.log(ctx, levelWarn, msg, fields...)
}

func (l *BufferedLogger) Error(ctx context.Context, msg string, fields ...interface{}) {
	l.log(ctx, levelError, msg, fields...)
}

// With returns a child sharing the buffer and level.
func (l *BufferedLogger) With(fields ...interface{}) ports.Logger {
	next := append(append([]interface{}{}, l.fields...), fields...)
	return &BufferedLogger{buffer: l.buffer, min: l.min, fields: next}
}

func (l *BufferedLogger) log(ctx context.Context, level logLevel, msg string, fields ...interface{}) {
	if l == nil || l.buffer == nil || level < l.min {
		return
	}
	payload := append(append([]interface{}{}, l.fields...), fields...)
	l.buffer.add(bufferedEntry{
		ctx:    ctx,
		level:  level,
		msg:    msg,
		fields: payload,
	})
}

func parseLogLevel(level string) (logLevel, error) {
	switch strings.ToLower(level) {
	case "debug":
		return levelDebug, nil
	case "", "info":
		return levelInfo, nil
	case "warn", "warning":
		return levelWarn, nil
	case "error":
		return levelError, nil
	}
	return levelInfo, fmt.Errorf("parse log level: unknown level %q", level)
}

var _ ports.Logger = (*BufferedLogger)(nil)
