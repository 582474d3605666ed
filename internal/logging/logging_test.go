package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestLevelFromString(t *testing.T) {
	testCases := []struct {
		input string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"ERROR", slog.LevelError},
		{"", slog.LevelInfo},
		{"bogus", slog.LevelInfo},
	}
	for _, tc := range testCases {
		if got := LevelFromString(tc.input); got != tc.want {
			t.Errorf("LevelFromString(%q) = %v, want %v", tc.input, got, tc.want)
		}
	}
}

func TestHumanFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, FormatHuman, slog.LevelInfo)

	logger.Info("Scan complete", "files", 3)
	out := buf.String()
	if !strings.Contains(out, "[info]") || !strings.Contains(out, "Scan complete") {
		t.Errorf("unexpected human output: %q", out)
	}
	if !strings.Contains(out, "files=3") {
		t.Errorf("missing attributes in output: %q", out)
	}

	buf.Reset()
	logger.Debug("suppressed")
	if buf.Len() != 0 {
		t.Errorf("debug should be filtered at info level: %q", buf.String())
	}
}

func TestJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, FormatJSON, slog.LevelInfo)

	logger.Info("Scan complete", "files", 3)
	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if record["msg"] != "Scan complete" {
		t.Errorf("msg = %v, want Scan complete", record["msg"])
	}
}
