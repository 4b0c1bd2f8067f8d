// Package config handles the configuration directory, the config file and
// the backend base URL.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// AppName is the application directory name.
	AppName = "taskman"

	// ConfigFile is the optional YAML settings file.
	ConfigFile = "config.yaml"

	// TokenFile holds the raw session token.
	TokenFile = "token"

	// APIURLEnv overrides the backend base URL from the environment.
	APIURLEnv = "TASKMAN_API_URL"

	// DefaultAPIURL is used when no other source names a backend.
	DefaultAPIURL = "http://localhost:8000"
)

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string

	// APIURL is the backend base URL without a trailing slash.
	APIURL string

	// Timeout bounds each command's backend calls. Zero means no limit.
	Timeout time.Duration

	// Debug enables debug logging.
	Debug bool

	// Quiet suppresses informational output.
	Quiet bool

	// Log receives debug records. Nil discards them.
	Log *slog.Logger
}

// fileSettings is the on-disk shape of config.yaml.
type fileSettings struct {
	APIURL string `yaml:"api_url"`
}

// New creates a Config with the default or specified config directory and
// resolves the base URL.
//
// The base URL is taken from, in order: apiURL (the --api-url flag), the
// TASKMAN_API_URL environment variable, api_url in config.yaml, and
// DefaultAPIURL.
func New(configDir, apiURL string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}
	cfg := &Config{Dir: dir}

	raw := apiURL
	if raw == "" {
		raw = os.Getenv(APIURLEnv)
	}
	if raw == "" {
		settings, err := cfg.readSettings()
		if err != nil {
			return nil, err
		}
		raw = settings.APIURL
	}
	if raw == "" {
		raw = DefaultAPIURL
	}

	normalized, err := NormalizeAPIURL(raw)
	if err != nil {
		return nil, err
	}
	cfg.APIURL = normalized
	return cfg, nil
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home can't be determined
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// NormalizeAPIURL checks that raw is an absolute http(s) URL and trims
// trailing slashes.
func NormalizeAPIURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("invalid api url %q: %w", raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("invalid api url %q: scheme must be http or https", raw)
	}
	if u.Host == "" {
		return "", fmt.Errorf("invalid api url %q: missing host", raw)
	}
	return strings.TrimRight(raw, "/"), nil
}

// ConfigPath returns the path to config.yaml.
func (c *Config) ConfigPath() string {
	return filepath.Join(c.Dir, ConfigFile)
}

// TokenPath returns the path to the stored session token.
func (c *Config) TokenPath() string {
	return filepath.Join(c.Dir, TokenFile)
}

func (c *Config) readSettings() (fileSettings, error) {
	var s fileSettings
	data, err := os.ReadFile(c.ConfigPath())
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return s, fmt.Errorf("failed to read %s: %w", ConfigFile, err)
	}
	if err := yaml.Unmarshal(data, &s); err != nil {
		return s, fmt.Errorf("invalid %s: %w", ConfigFile, err)
	}
	return s, nil
}
