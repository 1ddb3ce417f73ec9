package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fennig/focusping/internal/config"
)

func testLoggingConfig(dir string) config.LoggingConfig {
	return config.LoggingConfig{
		Enabled:    true,
		Dir:        dir,
		Level:      "info",
		MaxSizeMB:  1,
		MaxBackups: 1,
	}
}

type failingWriter struct{}

func (failingWriter) Write(p []byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestBootstrap_WritesJSONToRoleFile(t *testing.T) {
	dir := t.TempDir()
	var sink bytes.Buffer

	logger := bootstrapWithOptions(testLoggingConfig(dir), RoleWatch, bootstrapOptions{
		newWriter: func(path string, cfg config.LoggingConfig) io.Writer {
			if filepath.Base(path) != "watch.log" {
				t.Errorf("log file = %q, want watch.log", filepath.Base(path))
			}
			return &sink
		},
	})

	logger.Info("watch.loop.started", "interval", "5s")

	var record map[string]any
	if err := json.Unmarshal(sink.Bytes(), &record); err != nil {
		t.Fatalf("log output is not JSON: %v (%q)", err, sink.String())
	}
	if record["msg"] != "watch.loop.started" {
		t.Errorf("msg = %v, want watch.loop.started", record["msg"])
	}
	if record["interval"] != "5s" {
		t.Errorf("interval = %v, want 5s", record["interval"])
	}
}

func TestBootstrap_DisabledWatchDiscards(t *testing.T) {
	logger := bootstrapWithOptions(config.LoggingConfig{Enabled: false}, RoleWatch, bootstrapOptions{})
	// Must not panic and must not print anywhere visible; nothing to
	// assert beyond the handler accepting records.
	logger.Info("watch.loop.started")
}

func TestBootstrap_PrimaryFailureFallsBack(t *testing.T) {
	dir := t.TempDir()
	var warn, fallback bytes.Buffer

	logger := bootstrapWithOptions(testLoggingConfig(dir), RoleCLI, bootstrapOptions{
		newWriter:      func(string, config.LoggingConfig) io.Writer { return failingWriter{} },
		warnWriter:     &warn,
		fallbackWriter: &fallback,
	})

	logger.Info("first")
	logger.Info("second")

	if got := strings.Count(warn.String(), "warning:"); got != 1 {
		t.Errorf("warnings emitted = %d, want exactly 1", got)
	}
	if got := strings.Count(fallback.String(), "\n"); got != 2 {
		t.Errorf("fallback records = %d, want 2", got)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"WARN", slog.LevelWarn},
		{" error ", slog.LevelError},
		{"bogus", slog.LevelInfo},
		{"", slog.LevelInfo},
	}
	for _, tt := range tests {
		if got := parseLevel(tt.in).Level(); got != tt.want {
			t.Errorf("parseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNewOperationID_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := NewOperationID()
		if !strings.HasPrefix(id, "op-") {
			t.Fatalf("id %q missing prefix", id)
		}
		if seen[id] {
			t.Fatalf("duplicate id %q", id)
		}
		seen[id] = true
	}
}
