// Package config loads optional TOML configuration for the CLI and server.
//
// Configuration is entirely optional: every field has a working default and
// flags override file values. The default location is
// $XDG_CONFIG_HOME/codecity/config.toml.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/codecity/pkg/errors"
)

// Duration wraps time.Duration so TOML values like "15m" decode directly.
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler for TOML decoding.
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = parsed
	return nil
}

// Config is the full file-backed configuration.
type Config struct {
	Scan   ScanConfig   `toml:"scan"`
	Server ServerConfig `toml:"server"`
	Cache  CacheConfig  `toml:"cache"`
	Render RenderConfig `toml:"render"`
}

// ScanConfig controls project scanning.
type ScanConfig struct {
	// Exclude lists glob patterns skipped in addition to the built-in set.
	Exclude []string `toml:"exclude"`

	// IncludeHidden scans dotfiles and dot-directories.
	IncludeHidden bool `toml:"include_hidden"`
}

// ServerConfig controls the HTTP API.
type ServerConfig struct {
	// Addr is the listen address, e.g. ":8080".
	Addr string `toml:"addr"`
}

// CacheConfig selects and tunes the layout cache backend.
type CacheConfig struct {
	// Backend is one of "file", "redis", or "none".
	Backend string `toml:"backend"`

	// Dir overrides the file cache directory.
	Dir string `toml:"dir"`

	// TTL expires cached layouts; zero means no expiration.
	TTL Duration `toml:"ttl"`

	// Redis connection settings, used when Backend is "redis".
	RedisAddr     string `toml:"redis_addr"`
	RedisPassword string `toml:"redis_password"`
	RedisDB       int    `toml:"redis_db"`
}

// RenderConfig controls default render output.
type RenderConfig struct {
	// Formats are the artifact formats produced when none are requested.
	Formats []string `toml:"formats"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Server: ServerConfig{Addr: ":8080"},
		Cache:  CacheConfig{Backend: "file", RedisAddr: "localhost:6379"},
		Render: RenderConfig{Formats: []string{"svg"}},
	}
}

// DefaultPath returns the conventional config file location, or "" when the
// user config directory cannot be determined.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "codecity", "config.toml")
}

// Load reads and validates a config file, applying values over Default().
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, errors.New(errors.ErrCodeFileNotFound, "config file not found: %s", path)
		}
		return cfg, errors.Wrap(errors.ErrCodeInternal, err, "failed to read config file")
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidFormat, err, "failed to parse config file")
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadDefault reads the conventional config file, falling back to defaults
// when the file does not exist.
func LoadDefault() (Config, error) {
	path := DefaultPath()
	if path == "" {
		return Default(), nil
	}
	cfg, err := Load(path)
	if err != nil && errors.GetCode(err) == errors.ErrCodeFileNotFound {
		return Default(), nil
	}
	return cfg, err
}

// Validate checks field values that have a closed set of options.
func (c Config) Validate() error {
	switch c.Cache.Backend {
	case "file", "redis", "none":
	default:
		return errors.New(errors.ErrCodeInvalidInput,
			"cache backend must be one of: file, redis, none")
	}
	for _, pattern := range c.Scan.Exclude {
		if err := errors.ValidateExcludePattern(pattern); err != nil {
			return err
		}
	}
	return nil
}
