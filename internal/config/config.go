package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	DefaultBaseURL        = "https://saavn.dev"
	DefaultCatalogTimeout = 10 * time.Second
	DefaultRedisAddr      = "localhost:6379"
	DefaultLogLevel       = "info"
)

type Config struct {
	Catalog  CatalogConfig  `koanf:"catalog"`
	State    StateConfig    `koanf:"state"`
	Player   PlayerConfig   `koanf:"player"`
	Download DownloadConfig `koanf:"download"`
	Log      LogConfig      `koanf:"log"`
}

// CatalogConfig points at the song search API.
type CatalogConfig struct {
	BaseURL string        `koanf:"base_url"`
	Timeout time.Duration `koanf:"timeout"`
}

// StateConfig selects where the playback snapshot is kept.
type StateConfig struct {
	Backend       string `koanf:"backend"` // "sqlite", "redis" or "memory" (default: "sqlite")
	Path          string `koanf:"path"`    // sqlite file, empty means the XDG data dir
	RedisAddr     string `koanf:"redis_addr"`
	RedisPassword string `koanf:"redis_password"`
	RedisDB       int    `koanf:"redis_db"`
}

// PlayerConfig holds playback preferences.
type PlayerConfig struct {
	Volume *float64 `koanf:"volume"` // initial level 0.0-1.0 when nothing was saved (default: 1.0)
}

// DownloadConfig holds where downloaded songs are written.
type DownloadConfig struct {
	Dir string `koanf:"dir"`
}

// LogConfig holds the rotated log file settings.
type LogConfig struct {
	Level      string `koanf:"level"`
	File       string `koanf:"file"`
	MaxSizeMB  int    `koanf:"max_size_mb"`
	MaxBackups int    `koanf:"max_backups"`
	MaxAgeDays int    `koanf:"max_age_days"`
}

func Load() (*Config, error) {
	return loadFrom(getConfigPaths())
}

// LoadFile reads only path. A missing file yields the defaults.
func LoadFile(path string) (*Config, error) {
	return loadFrom([]string{expandPath(path)})
}

func loadFrom(paths []string) (*Config, error) {
	k := koanf.New(".")

	// Later files override earlier ones.
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, err
			}
		}
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	cfg.Catalog.BaseURL = strings.TrimSuffix(cfg.Catalog.BaseURL, "/")
	cfg.State.Path = expandPath(cfg.State.Path)
	cfg.Download.Dir = expandPath(cfg.Download.Dir)
	cfg.Log.File = expandPath(cfg.Log.File)

	return cfg, nil
}

func getConfigPaths() []string {
	paths := []string{}

	// 1. ~/.config/saavn/config.toml
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "saavn", "config.toml"))
	}

	// 2. ./config.toml (pwd, highest priority)
	paths = append(paths, "config.toml")

	return paths
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// GetCatalogConfig returns the catalog settings with defaults applied.
func (c *Config) GetCatalogConfig() CatalogConfig {
	cfg := c.Catalog
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultCatalogTimeout
	}
	return cfg
}

// GetStateConfig returns the store settings with defaults applied.
// An empty Path is left for the store to resolve.
func (c *Config) GetStateConfig() StateConfig {
	cfg := c.State
	cfg.Backend = strings.ToLower(strings.TrimSpace(cfg.Backend))
	if cfg.Backend == "" {
		cfg.Backend = "sqlite"
	}
	if cfg.RedisAddr == "" {
		cfg.RedisAddr = DefaultRedisAddr
	}
	return cfg
}

// InitialVolume returns the configured start level clamped to [0, 1].
func (c *Config) InitialVolume() float64 {
	if c.Player.Volume == nil {
		return 1
	}
	return min(max(*c.Player.Volume, 0), 1)
}

// DownloadDir returns the directory downloads are written to, defaulting
// to a saavn folder in the user's music directory.
func (c *Config) DownloadDir() string {
	if c.Download.Dir != "" {
		return c.Download.Dir
	}
	return filepath.Join(xdg.UserDirs.Music, "saavn")
}

// GetLogConfig returns the log settings with defaults applied. The log
// file defaults to the XDG state dir.
func (c *Config) GetLogConfig() LogConfig {
	cfg := c.Log
	if cfg.Level == "" {
		cfg.Level = DefaultLogLevel
	}
	if cfg.File == "" {
		if path, err := xdg.StateFile("saavn/saavn.log"); err == nil {
			cfg.File = path
		}
	}
	if cfg.MaxSizeMB <= 0 {
		cfg.MaxSizeMB = 10
	}
	if cfg.MaxBackups <= 0 {
		cfg.MaxBackups = 3
	}
	if cfg.MaxAgeDays <= 0 {
		cfg.MaxAgeDays = 28
	}
	return cfg
}
