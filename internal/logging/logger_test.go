package logging

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"retain/internal/services"
)

type captureWriter struct {
	mu  sync.Mutex
	buf strings.Builder
}

func (w *captureWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.buf.WriteString(string(p))
}

func (w *captureWriter) String() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.buf.String()
}

func TestConsoleHandlerComponentPrefix(t *testing.T) {
	writer := &captureWriter{}
	levelVar := new(slog.LevelVar)
	logger := slog.New(newConsoleHandler(writer, levelVar))

	WithComponent(logger, "scheduler").Info("chunk dispatched", Int("chunk", 3))

	line := writer.String()
	if !strings.Contains(line, "INFO scheduler: chunk dispatched") {
		t.Fatalf("unexpected console line: %q", line)
	}
	if !strings.Contains(line, "chunk=3") {
		t.Fatalf("expected chunk attribute in line: %q", line)
	}
}

func TestConsoleHandlerQuotesValues(t *testing.T) {
	writer := &captureWriter{}
	levelVar := new(slog.LevelVar)
	logger := slog.New(newConsoleHandler(writer, levelVar))

	logger.Warn("skipping entry", String("reason", "permission denied"))

	if !strings.Contains(writer.String(), `reason="permission denied"`) {
		t.Fatalf("expected quoted attribute, got %q", writer.String())
	}
}

func TestWithContextAddsRunFields(t *testing.T) {
	writer := &captureWriter{}
	levelVar := new(slog.LevelVar)
	logger := slog.New(newConsoleHandler(writer, levelVar))

	ctx := services.WithRunID(context.Background(), "run-123")
	ctx = services.WithFile(ctx, "/records/memo.txt")
	WithContext(ctx, logger).Info("processing")

	line := writer.String()
	if !strings.Contains(line, "run_id=run-123") {
		t.Fatalf("missing run_id field: %q", line)
	}
	if !strings.Contains(line, "file=/records/memo.txt") {
		t.Fatalf("missing file field: %q", line)
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := New(Options{Format: "yaml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestParseLevelDefaultsToInfo(t *testing.T) {
	if got := parseLevel("verbose"); got != slog.LevelInfo {
		t.Fatalf("parseLevel(verbose) = %v, want info", got)
	}
	if got := parseLevel("debug"); got != slog.LevelDebug {
		t.Fatalf("parseLevel(debug) = %v, want debug", got)
	}
}
