package logging

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/alexisbeaulieu97/motionkit/internal/ports"
)

const defaultBufferLimit = 1000

type logLevel int

const (
	levelDebug logLevel = iota
	levelInfo
	levelWarn
	levelError
)

type bufferedEntry struct {
	ctx    context.Context
	level  logLevel
	msg    string
	fields []interface{}
}

// EventBuffer stores log events while the terminal is owned by the TUI, and
// replays them once the primary logger can write again.
type EventBuffer struct {
	mu     sync.Mutex
	limit  int
	events []bufferedEntry
}

// NewEventBuffer creates a buffer with the provided capacity (defaults to 1000).
func NewEventBuffer(limit int) *EventBuffer {
	if limit <= 0 {
		limit = defaultBufferLimit
	}
	return &EventBuffer{
		limit:  limit,
		events: make([]bufferedEntry, 0, limit),
	}
}

func (b *EventBuffer) add(entry bufferedEntry) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(b.events) == b.limit {
		copy(b.events, b.events[1:])
		b.events[len(b.events)-1] = entry
		return
	}
	b.events = append(b.events, entry)
}

// Flush replays buffered events using the provided logger, preserving ordering.
func (b *EventBuffer) Flush(delegate ports.Logger) {
	if delegate == nil {
		return
	}
	b.mu.Lock()
	events := make([]bufferedEntry, len(b.events))
	copy(events, b.events)
	b.events = b.events[:0]
	b.mu.Unlock()

	for _, entry := range events {
		switch entry.level {
		case levelDebug:
			delegate.Debug(entry.ctx, entry.msg, entry.fields...)
		case levelWarn:
			delegate.Warn(entry.ctx, entry.msg, entry.fields...)
		case levelError:
			delegate.Error(entry.ctx, entry.msg, entry.fields...)
		default:
			delegate.Info(entry.ctx, entry.msg, entry.fields...)
		}
	}
}

// Tail renders the most recent n entries as single lines, oldest first.
func (b *EventBuffer) Tail(n int) []string {
	b.mu.Lock()
	defer b.mu.Unlock()

	start := 0
	if n > 0 && len(b.events) > n {
		start = len(b.events) - n
	}
	lines := make([]string, 0, len(b.events)-start)
	for _, entry := range b.events[start:] {
		lines = append(lines, entry.line())
	}
	return lines
}

// Len returns the number of buffered entries.
func (b *EventBuffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.events)
}

func (e bufferedEntry) line() string {
	var sb strings.Builder
	sb.WriteString(e.level.String())
	sb.WriteByte(' ')
	sb.WriteString(e.msg)
	for i := 0; i+1 < len(e.fields); i += 2 {
		fmt.Fprintf(&sb, " %v=%v", e.fields[i], e.fields[i+1])
	}
	return sb.String()
}

func (l logLevel) String() string {
	switch l {
	case levelDebug:
		return "DEBU"
	case levelWarn:
		return "WARN"
	case levelError:
		return "ERRO"
	default:
		return "INFO"
	}
}
