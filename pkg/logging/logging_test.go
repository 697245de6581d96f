package logging

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"course_assistant/pkg/config"
)

func TestInitCreatesLogFile(t *testing.T) {
	tmpDir := t.TempDir()
	logPath := filepath.Join(tmpDir, "logs", "course_assistant.log")

	cfg := config.Default()
	cfg.LogFile = logPath
	cfg.LogFormat = "json"
	cfg.LogLevel = "info"

	logger, err := Init(cfg, nil)
	if err != nil {
		t.Fatalf("Init() error: %v", err)
	}

	logger.Info("hello", slog.String("component", "test"))

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("ReadFile() error: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("Expected log file to have content")
	}
	if !strings.Contains(string(data), "hello") {
		t.Fatalf("Expected log to contain message, got: %s", string(data))
	}
}

func TestInitFansOutToConsole(t *testing.T) {
	tmpDir := t.TempDir()
	logPath := filepath.Join(tmpDir, "course_assistant.log")

	cfg := config.Default()
	cfg.LogFile = logPath
	cfg.LogLevel = "debug"

	var console bytes.Buffer
	logger, err := Init(cfg, &console)
	if err != nil {
		t.Fatalf("Init() error: %v", err)
	}

	logger.Debug("chat_send_start", "message_count", 3)

	if !strings.Contains(console.String(), "chat_send_start") {
		t.Fatalf("Expected console output, got: %q", console.String())
	}
	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("ReadFile() error: %v", err)
	}
	if !strings.Contains(string(data), `"message_count":3`) {
		t.Fatalf("Expected JSON record in file, got: %s", string(data))
	}
}

func TestInitRespectsLevel(t *testing.T) {
	tmpDir := t.TempDir()

	cfg := config.Default()
	cfg.LogFile = filepath.Join(tmpDir, "course_assistant.log")
	cfg.LogLevel = "warn"

	var console bytes.Buffer
	logger, err := Init(cfg, &console)
	if err != nil {
		t.Fatalf("Init() error: %v", err)
	}

	logger.Info("should_not_appear")
	if strings.Contains(console.String(), "should_not_appear") {
		t.Fatal("Expected info record to be filtered at warn level")
	}
	if logger.Enabled(context.Background(), LevelTrace) {
		t.Fatal("Expected trace to be disabled at warn level")
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"trace":   LevelTrace,
		"DEBUG":   slog.LevelDebug,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"bogus":   slog.LevelInfo,
	}

	for input, want := range tests {
		if got := parseLogLevel(input); got != want {
			t.Errorf("parseLogLevel(%q) = %v, want %v", input, got, want)
		}
	}
}
