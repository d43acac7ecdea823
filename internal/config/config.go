package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// Config captures the tunables StreaMaski reads at startup. Everything has
// a working default; the config file is optional.
type Config struct {
	RelayURL           string
	LogDir             string
	LogLevel           string
	StatusTimeoutSecs  int
	StatusCacheSecs    int
	MaxStatusChecks    int
	StreamlinkOverride string
}

const (
	defaultConfigPath      = "~/.config/streamaski/config.toml"
	defaultLogDir          = "~/.local/share/streamaski"
	defaultRelayURL        = "https://eu.luminous.dev"
	defaultLogLevel        = "info"
	defaultStatusTimeout   = 10
	defaultStatusCacheSecs = 60
	defaultMaxChecks       = 5
)

// Load locates and parses the config file, falling back to defaults when
// missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := defaults()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg.LogDir = mustExpand(cfg.LogDir)
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		RelayURL           string `toml:"relay_url"`
		LogDir             string `toml:"log_dir"`
		LogLevel           string `toml:"log_level"`
		StatusTimeoutSecs  int    `toml:"status_timeout_seconds"`
		StatusCacheSecs    int    `toml:"status_cache_seconds"`
		MaxStatusChecks    int    `toml:"max_status_checks"`
		StreamlinkOverride string `toml:"streamlink_path"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if v := strings.TrimSpace(raw.RelayURL); v != "" {
		cfg.RelayURL = v
	}
	if v := strings.TrimSpace(raw.LogDir); v != "" {
		cfg.LogDir = v
	}
	if v := strings.TrimSpace(raw.LogLevel); v != "" {
		cfg.LogLevel = v
	}
	if raw.StatusTimeoutSecs > 0 {
		cfg.StatusTimeoutSecs = raw.StatusTimeoutSecs
	}
	if raw.StatusCacheSecs > 0 {
		cfg.StatusCacheSecs = raw.StatusCacheSecs
	}
	if raw.MaxStatusChecks > 0 {
		cfg.MaxStatusChecks = raw.MaxStatusChecks
	}
	cfg.StreamlinkOverride = strings.TrimSpace(raw.StreamlinkOverride)

	cfg.LogDir = mustExpand(cfg.LogDir)
	return cfg, nil
}

func defaults() Config {
	return Config{
		RelayURL:          defaultRelayURL,
		LogDir:            defaultLogDir,
		LogLevel:          defaultLogLevel,
		StatusTimeoutSecs: defaultStatusTimeout,
		StatusCacheSecs:   defaultStatusCacheSecs,
		MaxStatusChecks:   defaultMaxChecks,
	}
}

// LogPath returns the path to the application log file.
func (c Config) LogPath() string {
	if strings.TrimSpace(c.LogDir) == "" {
		return mustExpand(defaultLogDir + "/streamaski.log")
	}
	return filepath.Join(c.LogDir, "streamaski.log")
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
