package logging

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"ytmeta/internal/services"
)

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := New(Options{Format: "yaml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestNewWritesToFile(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "logs", "ytmeta.log")
	logger, err := New(Options{Format: "json", Level: "debug", OutputPaths: []string{logPath}})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	logger.Info("resolution started", String("video_id", "dQw4w9WgXcQ"))

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(data), "dQw4w9WgXcQ") {
		t.Errorf("expected log line in file, got %q", string(data))
	}
	if !strings.Contains(string(data), `"level":"info"`) {
		t.Errorf("expected lowercase level key, got %q", string(data))
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"warn":    slog.LevelWarn,
		"error":   slog.LevelError,
		"info":    slog.LevelInfo,
		"":        slog.LevelInfo,
		"unknown": slog.LevelInfo,
	}
	for input, want := range cases {
		if got := parseLevel(input); got != want {
			t.Errorf("parseLevel(%q) = %v, want %v", input, got, want)
		}
	}
}

func TestWithContextAddsFields(t *testing.T) {
	ctx := services.WithRequestID(context.Background(), "req-1")
	ctx = services.WithVideoID(ctx, "dQw4w9WgXcQ")

	fields := ContextFields(ctx)
	if len(fields) != 2 {
		t.Fatalf("expected 2 context fields, got %d", len(fields))
	}
	if fields[0].Key != FieldCorrelationID {
		t.Errorf("expected correlation id first, got %q", fields[0].Key)
	}
	if fields[1].Key != FieldVideoID {
		t.Errorf("expected video id second, got %q", fields[1].Key)
	}
}

func TestNewComponentLoggerNilBase(t *testing.T) {
	logger := NewComponentLogger(nil, "metacache")
	if logger == nil {
		t.Fatal("expected logger even with nil base")
	}
	// Must not panic when used.
	logger.Info("noop")
}
