package logging

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func TestNew_WritesJSONLinesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "apolice.log")

	l, err := New(path, "debug")
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	l.Debug("search dispatched", zap.Uint64("seq", 3))
	_ = l.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 1 {
		t.Fatalf("got %d lines, want 1: %q", len(lines), data)
	}

	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("log line is not JSON: %v", err)
	}
	if entry["msg"] != "search dispatched" || entry["level"] != "debug" {
		t.Fatalf("entry = %v", entry)
	}
	if seq, _ := entry["seq"].(float64); seq != 3 {
		t.Fatalf("seq = %v, want 3", entry["seq"])
	}
}

func TestNew_LevelFilters(t *testing.T) {
	path := filepath.Join(t.TempDir(), "apolice.log")

	l, err := New(path, "warn")
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	l.Info("hidden")
	l.Warn("shown")
	_ = l.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if strings.Contains(string(data), "hidden") || !strings.Contains(string(data), "shown") {
		t.Fatalf("unexpected log content: %q", data)
	}
}

func TestNew_EmptyPathIsNop(t *testing.T) {
	l, err := New("  ", "info")
	if err != nil || l == nil {
		t.Fatalf("New(blank) = %v, %v", l, err)
	}
	l.Info("dropped")
}

func TestNew_RejectsUnknownLevel(t *testing.T) {
	if _, err := New(filepath.Join(t.TempDir(), "x.log"), "loud"); err == nil {
		t.Fatal("New accepted unknown level")
	}
}

func TestNewConsole(t *testing.T) {
	l, err := NewConsole("warn")
	if err != nil {
		t.Fatalf("NewConsole returned error: %v", err)
	}
	if l.Core().Enabled(zap.InfoLevel) || !l.Core().Enabled(zap.WarnLevel) {
		t.Fatal("console logger does not honour warn level")
	}
	if _, err := NewConsole("loud"); err == nil {
		t.Fatal("NewConsole accepted unknown level")
	}
}
