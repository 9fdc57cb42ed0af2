package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewLoggerCreatesFile(t *testing.T) {
	dir := t.TempDir()

	logger, err := NewLogger(dir, LevelInfo)
	if err != nil {
		t.Fatalf("NewLogger failed: %v", err)
	}
	defer logger.Close()

	logger.Info("run started", "targets", 2)

	data, err := os.ReadFile(filepath.Join(dir, "lunar.log"))
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	if !strings.Contains(string(data), "run started") {
		t.Errorf("log file missing message: %s", data)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{"DEBUG", slog.LevelDebug},
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"WARN", slog.LevelWarn},
		{"ERROR", slog.LevelError},
		{"bogus", slog.LevelInfo},
		{"", slog.LevelInfo},
	}

	for _, tt := range tests {
		if got := parseLevel(tt.input); got != tt.want {
			t.Errorf("parseLevel(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestChildLoggerAttributes(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWriterLogger(&buf, LevelDebug)

	child := logger.WithProject("web-app").WithTask("build")
	child.Debug("resolving token", "token", "@files(sources)")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log output is not JSON: %v", err)
	}
	if entry["project"] != "web-app" {
		t.Errorf("project = %v, want web-app", entry["project"])
	}
	if entry["task"] != "build" {
		t.Errorf("task = %v, want build", entry["task"])
	}
	if entry["token"] != "@files(sources)" {
		t.Errorf("token = %v, want @files(sources)", entry["token"])
	}
}

func TestChildLoggerDoesNotMutateParent(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWriterLogger(&buf, LevelInfo)

	_ = logger.WithProject("web-app")
	logger.Info("no project attr")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log output is not JSON: %v", err)
	}
	if _, ok := entry["project"]; ok {
		t.Errorf("parent logger unexpectedly carries child attribute")
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWriterLogger(&buf, LevelWarn)

	logger.Info("hidden")
	logger.Warn("visible")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("INFO message logged at WARN level")
	}
	if !strings.Contains(out, "visible") {
		t.Errorf("WARN message not logged")
	}
}
