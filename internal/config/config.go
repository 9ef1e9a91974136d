// Package config loads the wakedev configuration from the config hierarchy:
// environment variables (WAKEDEV_*) > local config file > global config file
// > built-in defaults. Files are JSON, loaded with koanf; the resulting
// struct is validated with go-playground/validator.
//
// The loaded Configuration is read-only after startup. The listener server
// in particular relies on this: token and allowlist are compared concurrently
// without synchronization.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// RemoteConfig configures the transport client side of the relay.
type RemoteConfig struct {
	Host            string `koanf:"host"`
	Port            int    `koanf:"port" validate:"min=0,max=65535"`
	Token           string `koanf:"token"`
	TimeoutMs       int    `koanf:"timeout_ms" validate:"min=0"`
	Retries         int    `koanf:"retries" validate:"min=0,max=10"`
	RetryDelayMs    int    `koanf:"retry_delay_ms" validate:"min=0"`
	FallbackToLocal bool   `koanf:"fallback_to_local"`
}

// Configured reports whether a remote listener target is set.
func (r RemoteConfig) Configured() bool {
	return r.Host != ""
}

// Timeout returns the per-attempt HTTP timeout.
func (r RemoteConfig) Timeout() time.Duration {
	return time.Duration(r.TimeoutMs) * time.Millisecond
}

// RetryDelay returns the pause between remote attempts.
func (r RemoteConfig) RetryDelay() time.Duration {
	return time.Duration(r.RetryDelayMs) * time.Millisecond
}

// ListenerConfig configures the listener server side of the relay.
type ListenerConfig struct {
	Bind           string   `koanf:"bind"`
	Port           int      `koanf:"port" validate:"min=0,max=65535"`
	Token          string   `koanf:"token"`
	RequireToken   bool     `koanf:"require_token"`
	PrefixHostname bool     `koanf:"prefix_hostname"`
	AllowHosts     []string `koanf:"allow_hosts"`
	OnClick        string   `koanf:"on_click"`
}

// Addr returns the listen address in host:port form.
func (l ListenerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", l.Bind, l.Port)
}

// SourceConfig holds per-source presentation presets.
type SourceConfig struct {
	DisplayName string `koanf:"display_name"`
	Icon        string `koanf:"icon"`
}

// Configuration is the full wakedev configuration.
type Configuration struct {
	DefaultProvider string                  `koanf:"default_provider"`
	Remote          RemoteConfig            `koanf:"remote"`
	Listener        ListenerConfig          `koanf:"listener"`
	Sources         map[string]SourceConfig `koanf:"sources"`
}

// EnvPrefix is the prefix for configuration environment variables.
const EnvPrefix = "WAKEDEV_"

// Load loads configuration from global, local, and environment sources.
// Priority: environment variables > local config > global config > defaults.
// An empty localConfigPath skips the local layer.
func Load(localConfigPath string) (*Configuration, error) {
	k := koanf.New(".")

	for key, value := range Defaults() {
		k.Set(key, value)
	}

	globalPath := DefaultPath()
	if _, err := os.Stat(globalPath); err == nil {
		if err := k.Load(file.Provider(globalPath), json.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load global config: %w", err)
		}
	}

	if localConfigPath != "" && localConfigPath != globalPath {
		if _, err := os.Stat(localConfigPath); err == nil {
			if err := k.Load(file.Provider(localConfigPath), json.Parser()); err != nil {
				return nil, fmt.Errorf("failed to load local config: %w", err)
			}
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envTransform), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment overrides: %w", err)
	}

	var cfg Configuration
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	cfg.Listener.OnClick = expandHomePath(cfg.Listener.OnClick)
	return &cfg, nil
}

// sections that map an env var's first underscore segment to a nested key.
var envSections = []string{"remote", "listener"}

// envTransform converts environment variable names to config keys.
// WAKEDEV_REMOTE_TIMEOUT_MS -> remote.timeout_ms;
// WAKEDEV_DEFAULT_PROVIDER -> default_provider.
func envTransform(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	for _, section := range envSections {
		prefix := section + "_"
		if strings.HasPrefix(key, prefix) {
			return section + "." + strings.TrimPrefix(key, prefix)
		}
	}
	return key
}

// expandHomePath expands a leading ~/ to the user's home directory.
func expandHomePath(path string) string {
	if strings.HasPrefix(path, "~/") {
		if homeDir, err := os.UserHomeDir(); err == nil {
			return filepath.Join(homeDir, path[2:])
		}
	}
	return path
}
