package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestNewWritesJSONWithTsKey(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&Config{Output: &buf, Level: slog.LevelInfo})

	logger.Info("engine ready", "cooldown_hours", 48)

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not JSON: %v (%s)", err, buf.String())
	}
	if _, ok := entry["ts"]; !ok {
		t.Error("expected ts key")
	}
	if _, ok := entry["time"]; ok {
		t.Error("time key should be renamed to ts")
	}
	if entry["msg"] != "engine ready" {
		t.Errorf("msg = %v", entry["msg"])
	}
	if entry["cooldown_hours"] != float64(48) {
		t.Errorf("cooldown_hours = %v", entry["cooldown_hours"])
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&Config{Output: &buf, Level: slog.LevelWarn})

	logger.Info("dropped")
	logger.Warn("kept")

	out := buf.String()
	if strings.Contains(out, "dropped") {
		t.Error("info line should be filtered at warn level")
	}
	if !strings.Contains(out, "kept") {
		t.Error("warn line missing")
	}
}

func TestDebugOverridesLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&Config{Output: &buf, Level: slog.LevelError, Debug: true})

	logger.Debug("visible")
	if !strings.Contains(buf.String(), "visible") {
		t.Error("debug flag should enable debug logging")
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"bogus", slog.LevelInfo},
		{"", slog.LevelInfo},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestDiscard(t *testing.T) {
	// Must not panic and must swallow everything
	Discard().Error("nobody sees this")
}
