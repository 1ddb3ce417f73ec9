package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

type pathResolverOptions struct {
	GOOS         string
	getenv       func(string) string
	userHomeDir  func() (string, error)
	userCacheDir func() (string, error)
}

func (o *pathResolverOptions) fill() {
	if strings.TrimSpace(o.GOOS) == "" {
		o.GOOS = runtime.GOOS
	}
	if o.getenv == nil {
		o.getenv = os.Getenv
	}
	if o.userHomeDir == nil {
		o.userHomeDir = os.UserHomeDir
	}
	if o.userCacheDir == nil {
		o.userCacheDir = os.UserCacheDir
	}
}

func defaultLogDir() string {
	return resolveDefaultLogDir(pathResolverOptions{})
}

func resolveDefaultLogDir(opts pathResolverOptions) string {
	opts.fill()

	switch opts.GOOS {
	case "darwin":
		home, err := opts.userHomeDir()
		if err != nil || strings.TrimSpace(home) == "" {
			return "log"
		}
		return filepath.Join(home, "Library", "Logs", "focusping")
	default:
		cache, err := opts.userCacheDir()
		if err != nil || strings.TrimSpace(cache) == "" {
			return "log"
		}
		return filepath.Join(cache, "focusping", "log")
	}
}

func defaultSocketPath() string {
	return resolveDefaultSocketPath(pathResolverOptions{})
}

// resolveDefaultSocketPath prefers the per-user runtime directory where
// one exists, since the host session socket should not be visible to
// other users.
func resolveDefaultSocketPath(opts pathResolverOptions) string {
	opts.fill()

	if opts.GOOS == "linux" {
		if dir := opts.getenv("XDG_RUNTIME_DIR"); strings.TrimSpace(dir) != "" {
			return filepath.Join(dir, "focusping.sock")
		}
	}
	return filepath.Join(os.TempDir(), "focusping.sock")
}
