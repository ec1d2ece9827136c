package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	cblog "github.com/charmbracelet/log"

	"github.com/alexisbeaulieu97/motionkit/internal/ports"
)

func TestLoggerIncludesCorrelationIDAndLayer(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{
		Writer:     &buf,
		Level:      "debug",
		Formatter:  cblog.JSONFormatter,
		Layer:      "infrastructure",
		Component:  "token_source",
		TimeFormat: "2006-01-02T15:04:05Z07:00",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ctx := ports.WithCorrelationID(context.Background(), "abc123")
	logger.Info(ctx, "loaded reference", "path", "/tmp/reference.yaml")

	line := strings.TrimSpace(buf.String())
	if line == "" {
		t.Fatal("expected log output, got empty string")
	}

	payload := make(map[string]interface{})
	if err := json.Unmarshal([]byte(line), &payload); err != nil {
		t.Fatalf("failed to parse log line %q: %v", line, err)
	}

	if payload["layer"] != "infrastructure" {
		t.Fatalf("expected layer to be infrastructure, got %v", payload["layer"])
	}
	if payload["component"] != "token_source" {
		t.Fatalf("expected component field, got %v", payload["component"])
	}
	if payload["correlation_id"] != "abc123" {
		t.Fatalf("expected correlation_id to be abc123, got %v", payload["correlation_id"])
	}
	if payload["path"] != "/tmp/reference.yaml" {
		t.Fatalf("expected path to be recorded, got %v", payload["path"])
	}
	if payload["msg"] != "loaded reference" {
		t.Fatalf("expected message to be recorded, got %v", payload["msg"])
	}
}

func TestLoggerWithAddsFields(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{
		Writer:    &buf,
		Formatter: cblog.JSONFormatter,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	child := logger.With("component", "resolver").(*Logger)
	child.Warn(context.Background(), "resolution warning", "token", "ACCORDION_ARROW_MASS")

	line := strings.TrimSpace(buf.String())
	payload := make(map[string]interface{})
	if err := json.Unmarshal([]byte(line), &payload); err != nil {
		t.Fatalf("failed to parse log line: %v", err)
	}

	if payload["component"] != "resolver" {
		t.Fatalf("expected component=resolver, got %v", payload["component"])
	}
	if payload["token"] != "ACCORDION_ARROW_MASS" {
		t.Fatalf("expected token field, got %v", payload["token"])
	}
	if payload["layer"] != "infrastructure" {
		t.Fatalf("expected default layer infrastructure, got %v", payload["layer"])
	}
}

func TestNoOpLogger(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{
		Writer:    &buf,
		Formatter: cblog.JSONFormatter,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	noOp := NewNoOpLogger()
	noOp.Info(context.Background(), "hello world")

	if buf.Len() != 0 {
		t.Fatalf("expected no output from noop logger, got %s", buf.String())
	}

	// ensure With on noop doesn't panic and returns the same instance
	if noOp.With("key", "value") != noOp {
		t.Fatalf("expected With to return same no-op logger instance")
	}

	// Base logger still writes.
	logger.Info(context.Background(), "emitted")
	if buf.Len() == 0 {
		t.Fatal("expected base logger to write output")
	}
}

func TestBufferedLoggerStoresAndFlushes(t *testing.T) {
	buffer := NewEventBuffer(10)
	bufLogger, err := NewBufferedLogger(buffer, "debug")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ctx := ports.WithCorrelationID(context.Background(), "buffered")
	bufLogger.Info(ctx, "booting", "component", "bootstrap")
	bufLogger.With("component", "kvstore").Error(ctx, "failed", "attempt", 1)

	var output bytes.Buffer
	delegate, err := New(Options{Writer: &output, Formatter: cblog.JSONFormatter})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	buffer.Flush(delegate)

	lines := strings.Split(strings.TrimSpace(output.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 log lines, got %d", len(lines))
	}

	var first map[string]interface{}
	if err := json.Unmarshal([]byte(lines[0]), &first); err != nil {
		t.Fatalf("failed to parse first log line: %v", err)
	}
	if first["msg"] != "booting" || first["component"] != "bootstrap" {
		t.Fatalf("unexpected first event payload: %+v", first)
	}

	var second map[string]interface{}
	if err := json.Unmarshal([]byte(lines[1]), &second); err != nil {
		t.Fatalf("failed to parse second log line: %v", err)
	}
	if second["msg"] != "failed" || second["component"] != "kvstore" {
		t.Fatalf("unexpected second event payload: %+v", second)
	}
	if second["correlation_id"] != "buffered" {
		t.Fatalf("expected correlation id to be preserved, got %v", second["correlation_id"])
	}
}

func TestBufferedLoggerTail(t *testing.T) {
	buffer := NewEventBuffer(2)
	logger, err := NewBufferedLogger(buffer, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	logger.Info(context.Background(), "first")
	logger.Warn(context.Background(), "second", "token", "ACCORDION_ARROW_MASS")
	logger.Error(context.Background(), "third")

	lines := buffer.Tail(5)
	if len(lines) != 2 {
		t.Fatalf("expected buffer to keep 2 entries, got %d", len(lines))
	}
	if lines[0] != "WARN second token=ACCORDION_ARROW_MASS" {
		t.Fatalf("unexpected first line %q", lines[0])
	}
	if lines[1] != "ERRO third" {
		t.Fatalf("unexpected second line %q", lines[1])
	}
}

func TestBufferedLoggerDropsEntriesBelowLevel(t *testing.T) {
	cases := []struct {
		level string
		want  []string
	}{
		{level: "debug", want: []string{"DEBU measured rows=4", "INFO opened", "WARN unresolved"}},
		{level: "info", want: []string{"INFO opened", "WARN unresolved"}},
		{level: "WARN", want: []string{"WARN unresolved"}},
	}

	for _, tc := range cases {
		t.Run(tc.level, func(t *testing.T) {
			buffer := NewEventBuffer(0)
			logger, err := NewBufferedLogger(buffer, tc.level)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			child := logger.With()
			child.Debug(context.Background(), "measured", "rows", 4)
			child.Info(context.Background(), "opened")
			child.Warn(context.Background(), "unresolved")

			got := buffer.Tail(0)
			if strings.Join(got, "|") != strings.Join(tc.want, "|") {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}

	if _, err := NewBufferedLogger(NewEventBuffer(0), "loud"); err == nil {
		t.Fatal("expected error for unknown level")
	}
}

func TestOrNoOp(t *testing.T) {
	if _, ok := OrNoOp(nil).(*NoOpLogger); !ok {
		t.Fatal("expected nil logger to be replaced by a no-op logger")
	}
	buffered, err := NewBufferedLogger(NewEventBuffer(0), "info")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if OrNoOp(buffered) != ports.Logger(buffered) {
		t.Fatal("expected non-nil logger to pass through")
	}
}

func TestZerologLoggerWritesFields(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewForFormat(FormatZerolog, Options{
		Writer:    &buf,
		Level:     "debug",
		Layer:     "application",
		Component: "token_service",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ctx := ports.WithCorrelationID(context.Background(), "zl-1")
	logger.With("target", "CONTENT").Debug(ctx, "preset applied", "preset", "soft")

	payload := make(map[string]interface{})
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &payload); err != nil {
		t.Fatalf("failed to parse log line %q: %v", buf.String(), err)
	}
	for key, want := range map[string]string{
		"message":        "preset applied",
		"level":          "debug",
		"layer":          "application",
		"component":      "token_service",
		"correlation_id": "zl-1",
		"target":         "CONTENT",
		"preset":         "soft",
	} {
		if payload[key] != want {
			t.Fatalf("expected %s=%s, got %v", key, want, payload[key])
		}
	}
}

func TestZerologLoggerRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewZerolog(Options{Writer: &buf, Level: "warn"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	logger.Info(context.Background(), "hidden")
	if buf.Len() != 0 {
		t.Fatalf("expected info to be filtered, got %s", buf.String())
	}
}

func TestNewForFormatRejectsUnknown(t *testing.T) {
	if _, err := NewForFormat("xml", Options{}); err == nil {
		t.Fatal("expected error for unknown format")
	}
}
