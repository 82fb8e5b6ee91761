package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestNewLoggerNotNil(t *testing.T) {
	logger := NewLogger(Config{})
	if logger == nil {
		t.Fatal("expected logger to be non-nil")
	}
}

func TestNewLoggerUsesTextHandlerWithInfoLevel(t *testing.T) {
	logger := NewLogger(Config{Format: "text", Level: "info"})

	if enabled := logger.Enabled(context.Background(), slog.LevelInfo); !enabled {
		t.Fatal("expected info level to be enabled")
	}

	if enabled := logger.Enabled(context.Background(), slog.LevelDebug); enabled {
		t.Fatal("expected debug level to be disabled")
	}
}

func TestNewLoggerJSONIncludesServiceAndVersion(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(Config{Format: "JSON", Level: "debug", Service: "svc", Version: "v1", Output: &buf})

	logger.Debug("hello")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected json log line, got %q: %v", buf.String(), err)
	}
	if entry[FieldService] != "svc" || entry[FieldVersion] != "v1" {
		t.Fatalf("expected common fields, got %+v", entry)
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"":        slog.LevelInfo,
		"DEBUG":   slog.LevelDebug,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"nope":    slog.LevelInfo,
	}
	for raw, want := range cases {
		if got := parseLevel(raw); got != want {
			t.Fatalf("parseLevel(%q) = %s, expected %s", raw, got, want)
		}
	}
}

func TestContextLogger(t *testing.T) {
	var buf bytes.Buffer
	scoped := slog.New(slog.NewTextHandler(&buf, nil))
	fallback := slog.Default()

	if got := FromContext(context.Background(), fallback); got != fallback {
		t.Fatalf("expected fallback without stored logger")
	}
	ctx := WithLogger(context.Background(), scoped)
	if got := FromContext(ctx, fallback); got != scoped {
		t.Fatalf("expected stored logger")
	}
	if got := WithLogger(ctx, nil); got != ctx {
		t.Fatalf("expected nil logger to leave context unchanged")
	}
}

func TestHelpersAreNilSafe(t *testing.T) {
	Debug(nil, "ignored")
	Info(nil, "ignored")
	Warn(nil, "ignored")
	Error(nil, "ignored", nil)

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	Error(logger, "failed", errTest("boom"), FieldTab, "Log")
	if !strings.Contains(buf.String(), "error=boom") || !strings.Contains(buf.String(), "tab=Log") {
		t.Fatalf("expected error and tab fields, got %q", buf.String())
	}

	buf.Reset()
	Debug(logger, "rows cleaned")
	if buf.Len() != 0 {
		t.Fatalf("expected debug suppressed at info level, got %q", buf.String())
	}
	debugLogger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	Debug(debugLogger, "rows cleaned")
	if !strings.Contains(buf.String(), "level=DEBUG") {
		t.Fatalf("expected debug line, got %q", buf.String())
	}
}

type errTest string

func (e errTest) Error() string { return string(e) }
