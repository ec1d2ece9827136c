package logging

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"github.com/alexisbeaulieu97/motionkit/internal/ports"
)

// ZerologLogger implements ports.Logger on top of zerolog. It writes one
// JSON object per line, which suits piping `motionkit resolve` diagnostics
// into other tools.
type ZerologLogger struct {
	base  zerolog.Logger
	layer string
}

// NewZerolog creates a zerolog-backed adapter. Formatter, TimeFormat and
// ReportCaller only apply to the charmbracelet/log adapter and are ignored.
func NewZerolog(opts Options) (*ZerologLogger, error) {
	writer := opts.Writer
	if writer == nil {
		writer = os.Stdout
	}

	level := zerolog.InfoLevel
	if opts.Level != "" {
		parsed, err := zerolog.ParseLevel(strings.ToLower(opts.Level))
		if err != nil {
			return nil, fmt.Errorf("parse log level: %w", err)
		}
		level = parsed
	}

	builder := zerolog.New(writer).Level(level).With().Timestamp()
	if opts.Component != "" {
		builder = builder.Str("component", opts.Component)
	}
	for _, kv := range pairs(mapToFields(opts.Fields)) {
		builder = builder.Interface(kv.key, kv.value)
	}

	return &ZerologLogger{base: builder.Logger(), layer: defaultLayer(opts.Layer)}, nil
}

// Debug emits a debug log entry.
func (l *ZerologLogger) Debug(ctx context.Context, msg string, fields ...interface{}) {
	l.log(ctx, zerolog.DebugLevel, msg, fields...)
}

// Info emits an info log entry.
func (l *ZerologLogger) Info(ctx context.Context, msg string, fields ...interface{}) {
	l.log(ctx, zerolog.InfoLevel, msg, fields...)
}

// Warn emits a warning log entry.
func (l *ZerologLogger) Warn(ctx context.Context, msg string, fields ...interface{}) {
	l.log(ctx, zerolog.WarnLevel, msg, fields...)
}

// Error emits an error log entry.
func (l *ZerologLogger) Error(ctx context.Context, msg string, fields ...interface{}) {
	l.log(ctx, zerolog.ErrorLevel, msg, fields...)
}

// With derives a new logger with persistent fields.
func (l *ZerologLogger) With(fields ...interface{}) ports.Logger {
	if l == nil {
		return &NoOpLogger{}
	}
	builder := l.base.With()
	for _, kv := range pairs(fields) {
		builder = builder.Interface(kv.key, kv.value)
	}
	return &ZerologLogger{base: builder.Logger(), layer: l.layer}
}

func (l *ZerologLogger) log(ctx context.Context, level zerolog.Level, msg string, fields ...interface{}) {
	if l == nil {
		return
	}
	event := l.base.WithLevel(level)
	if !event.Enabled() {
		return
	}
	event = event.Str("layer", l.layer)
	if id := ports.GetCorrelationID(ctx); id != "" {
		event = event.Str("correlation_id", id)
	}
	for _, kv := range pairs(fields) {
		if err, ok := kv.value.(error); ok {
			event = event.AnErr(kv.key, err)
			continue
		}
		event = event.Interface(kv.key, kv.value)
	}
	event.Msg(msg)
}

type pair struct {
	key   string
	value interface{}
}

func pairs(values []interface{}) []pair {
	out := make([]pair, 0, len(values)/2)
	for i := 0; i+1 < len(values); i += 2 {
		key, ok := values[i].(string)
		if !ok || key == "" {
			continue
		}
		out = append(out, pair{key: key, value: values[i+1]})
	}
	return out
}

var _ ports.Logger = (*ZerologLogger)(nil)
