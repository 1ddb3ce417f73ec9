// Package logging configures the process-wide slog logger.
//
// Log output goes to a rotated file under the configured directory. The
// watch and wrap roles hold the terminal in raw mode, so their fallback
// when file logging is unavailable is to discard rather than scribble
// JSON over the user's terminal; plain CLI roles fall back to stderr.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fennig/focusping/internal/config"
	"gopkg.in/natefinch/lumberjack.v2"
)

type Role string

const (
	RoleCLI   Role = "cli"
	RoleWatch Role = "watch"
	RoleWrap  Role = "wrap"
)

type bootstrapOptions struct {
	newWriter      func(path string, cfg config.LoggingConfig) io.Writer
	warnWriter     io.Writer
	fallbackWriter io.Writer
}

// Bootstrap configures and sets the process default logger.
func Bootstrap(cfg config.LoggingConfig, role Role) *slog.Logger {
	logger := bootstrapWithOptions(cfg, role, bootstrapOptions{})
	slog.SetDefault(logger)
	return logger
}

func bootstrapWithOptions(cfg config.LoggingConfig, role Role, opts bootstrapOptions) *slog.Logger {
	warnWriter := opts.warnWriter
	if warnWriter == nil {
		warnWriter = os.Stderr
	}

	fallbackWriter := opts.fallbackWriter
	if fallbackWriter == nil {
		fallbackWriter = roleFallback(role)
	}

	handlerOpts := &slog.HandlerOptions{
		Level:       parseLevel(cfg.Level),
		ReplaceAttr: normalizeTime,
	}

	if !cfg.Enabled {
		return slog.New(slog.NewJSONHandler(fallbackWriter, handlerOpts))
	}

	filePath := filepath.Join(cfg.Dir, roleFilename(role))
	if err := os.MkdirAll(filepath.Dir(filePath), 0o755); err != nil {
		fmt.Fprintf(warnWriter, "warning: unable to initialize log directory %q: %v; continuing without file logging\n", filepath.Dir(filePath), err)
		return slog.New(slog.NewJSONHandler(fallbackWriter, handlerOpts))
	}

	writerFactory := opts.newWriter
	if writerFactory == nil {
		writerFactory = newLumberjackWriter
	}

	guarded := &guardedWriter{
		primary:  writerFactory(filePath, cfg),
		fallback: fallbackWriter,
		warn:     warnWriter,
		path:     filePath,
	}

	return slog.New(slog.NewJSONHandler(guarded, handlerOpts))
}

func newLumberjackWriter(path string, cfg config.LoggingConfig) io.Writer {
	return &lumberjack.Logger{
		Filename:   path,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		Compress:   cfg.Compress,
	}
}

func roleFilename(role Role) string {
	switch role {
	case RoleWatch:
		return "watch.log"
	case RoleWrap:
		return "wrap.log"
	default:
		return "cli.log"
	}
}

// roleFallback picks where logs land when file logging is off or broken.
// Roles that own the raw terminal must never write there.
func roleFallback(role Role) io.Writer {
	switch role {
	case RoleWatch, RoleWrap:
		return io.Discard
	default:
		return os.Stderr
	}
}

func parseLevel(level string) *slog.LevelVar {
	lvl := new(slog.LevelVar)
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "error":
		lvl.Set(slog.LevelError)
	case "warn":
		lvl.Set(slog.LevelWarn)
	case "debug":
		lvl.Set(slog.LevelDebug)
	default:
		lvl.Set(slog.LevelInfo)
	}
	return lvl
}

func normalizeTime(_ []string, attr slog.Attr) slog.Attr {
	if attr.Key == slog.TimeKey {
		return slog.String(slog.TimeKey, attr.Value.Time().UTC().Format(time.RFC3339))
	}
	return attr
}

// guardedWriter sends log records to the primary writer and falls back
// (with a single warning) if it stops accepting writes.
type guardedWriter struct {
	primary  io.Writer
	fallback io.Writer
	warn     io.Writer
	path     string
	warnOnce sync.Once
}

func (w *guardedWriter) Write(p []byte) (int, error) {
	n, err := w.primary.Write(p)
	if err == nil {
		return n, nil
	}

	w.warnOnce.Do(func() {
		fmt.Fprintf(w.warn, "warning: log file %q unavailable (%v); falling back\n", w.path, err)
	})
	return w.fallback.Write(p)
}
