// Package config loads focusping's YAML configuration, falling back to
// sane defaults when no file exists.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// EnvConfigPath overrides the config file location when set.
const EnvConfigPath = "FOCUSPING_CONFIG"

type Config struct {
	Watch        WatchConfig        `yaml:"watch"`
	Notification NotificationConfig `yaml:"notification"`
	Remote       RemoteConfig       `yaml:"remote"`
	Logging      LoggingConfig      `yaml:"logging"`
}

type WatchConfig struct {
	// IntervalSeconds is how often the scheduler evaluates whether to
	// notify. Values below 1 are replaced by the default.
	IntervalSeconds int `yaml:"interval_seconds"`
}

type NotificationConfig struct {
	Title string `yaml:"title"`
	Body  string `yaml:"body"`
	// LinuxProgram overrides the notification binary on linux
	// (e.g. dunstify). Empty means notify-send.
	LinuxProgram string `yaml:"linux_program"`
}

type RemoteConfig struct {
	// SocketPath is the unix socket of the running host session that
	// remote commands are forwarded to.
	SocketPath string `yaml:"socket_path"`
}

type LoggingConfig struct {
	Enabled    bool   `yaml:"enabled"`
	Dir        string `yaml:"dir"`
	Level      string `yaml:"level"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	Compress   bool   `yaml:"compress"`
}

func DefaultConfig() Config {
	return Config{
		Watch: WatchConfig{
			IntervalSeconds: 5,
		},
		Notification: NotificationConfig{
			Title: "Focus ping",
			Body:  "Terminal not focused.",
		},
		Remote: RemoteConfig{
			SocketPath: defaultSocketPath(),
		},
		Logging: LoggingConfig{
			Enabled:    true,
			Dir:        defaultLogDir(),
			Level:      "info",
			MaxSizeMB:  10,
			MaxBackups: 3,
			Compress:   false,
		},
	}
}

// ConfigDir returns the config directory path.
func ConfigDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("get user config dir: %w", err)
	}
	return filepath.Join(configDir, "focusping"), nil
}

// ConfigPath returns the full path to the config file, honoring the
// FOCUSPING_CONFIG environment override.
func ConfigPath() (string, error) {
	if env := os.Getenv(EnvConfigPath); env != "" {
		return env, nil
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Load reads the config from disk, falling back to defaults.
func Load() (Config, error) {
	cfg := DefaultConfig()

	path, err := ConfigPath()
	if err != nil {
		return cfg, nil // return defaults if we can't determine path
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil // no config file, use defaults
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}

	if cfg.Watch.IntervalSeconds < 1 {
		slog.Warn("config.watch.interval_invalid", "interval_seconds", cfg.Watch.IntervalSeconds, "using", 5)
		cfg.Watch.IntervalSeconds = 5
	}

	return cfg, nil
}

// Init creates a default config file if one doesn't exist.
func Init() (string, error) {
	path, err := ConfigPath()
	if err != nil {
		return "", err
	}

	if _, err := os.Stat(path); err == nil {
		return "", fmt.Errorf("config already exists at %s", path)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create config dir: %w", err)
	}

	cfg := DefaultConfig()
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return "", fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write config: %w", err)
	}

	return path, nil
}
