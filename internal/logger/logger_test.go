package logger

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":  slog.LevelDebug,
		"INFO":   slog.LevelInfo,
		"warn":   slog.LevelWarn,
		"error":  slog.LevelError,
		"":       slog.LevelWarn,
		"chatty": slog.LevelWarn,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestInitConsoleLevel(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	log := Init(Options{Level: "warn", Format: "text", Output: &buf})
	log.Info("hidden")
	log.Warn("shown", "line", 3)

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info should be filtered at warn level: %s", out)
	}
	if !strings.Contains(out, "shown") || !strings.Contains(out, "line=3") {
		t.Errorf("expected warn record in text form, got %s", out)
	}
}

func TestInitFanoutToFile(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	path := filepath.Join(t.TempDir(), "quest.log")
	log := Init(Options{Level: "error", Format: "json", File: path, Output: &buf})
	log.Info("goals saved", "count", 2)

	if buf.Len() != 0 {
		t.Errorf("console should filter info at error level, got %s", buf.String())
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(b), `"msg":"goals saved"`) {
		t.Errorf("expected JSON record in log file, got %s", b)
	}
}
