package logging

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNew_FileJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	logger, release := New(Options{Level: slog.LevelInfo, Format: "JSON", File: path})

	logger.Debug("hidden")
	logger.Info("hello", slog.String("name", "Ada"))
	release()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 1 {
		t.Fatalf("lines = %d, want 1 (debug filtered): %q", len(lines), data)
	}
	var rec map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &rec); err != nil {
		t.Fatalf("not JSON: %v", err)
	}
	if rec["msg"] != "hello" || rec["name"] != "Ada" {
		t.Errorf("record = %v", rec)
	}
}

func TestNew_FileText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	logger, release := New(Options{Level: slog.LevelDebug, Format: FormatText, File: path})
	logger.Debug("visible")
	release()

	data, _ := os.ReadFile(path)
	if !strings.Contains(string(data), "msg=visible") {
		t.Errorf("text output = %q", data)
	}
}

func TestNew_DevNull(t *testing.T) {
	logger, release := New(Options{File: os.DevNull})
	defer release()
	if logger.Enabled(t.Context(), slog.LevelError) {
		t.Error("discard logger should not be enabled")
	}
}
