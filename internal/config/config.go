package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	DefaultThumbnailBase = "https://suno-homebrew.s3.ap-northeast-2.amazonaws.com"
	DefaultShareMethod   = "clipboard"
	DefaultPollInterval  = 5 * time.Second
	DefaultRecentLimit   = 3
)

type Config struct {
	APIURL        string `koanf:"api_url"`        // song generation API
	ThumbnailBase string `koanf:"thumbnail_base"` // album cover host
	ShareBase     string `koanf:"share_base"`     // host of shared links
	ShareMethod   string `koanf:"share_method"`   // "clipboard", "qr", or "none"
	Autoplay      *bool  `koanf:"autoplay"`       // autoplay picks from "my songs" (default: true)
	PollInterval  string `koanf:"poll_interval"`  // refresh while songs are pending (default: 5s)
	RecentLimit   int    `koanf:"recent_limit"`   // completed songs on the home list (default: 3)

	// model_name -> display name
	Artists map[string]string `koanf:"artists"`

	Log LogConfig `koanf:"log"`
}

// LogConfig holds file logging configuration.
type LogConfig struct {
	Enabled *bool  `koanf:"enabled"` // default: true
	Level   string `koanf:"level"`   // logrus level (default: info)
	JSON    bool   `koanf:"json"`
	Dir     string `koanf:"dir"` // default: $XDG_STATE_HOME/tunebrew
}

func Load() (*Config, error) {
	return LoadFrom(getConfigPaths()...)
}

// LoadFrom loads the given files in order, later files overriding earlier
// ones. Missing files are skipped.
func LoadFrom(paths ...string) (*Config, error) {
	k := koanf.New(".")

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

	cfg.APIURL = strings.TrimSuffix(cfg.APIURL, "/")
	cfg.ThumbnailBase = strings.TrimSuffix(cfg.ThumbnailBase, "/")
	cfg.ShareBase = strings.TrimSuffix(cfg.ShareBase, "/")

	if cfg.Log.Dir != "" {
		cfg.Log.Dir = expandPath(cfg.Log.Dir)
	}

	return cfg, nil
}

func getConfigPaths() []string {
	paths := []string{}

	// 1. ~/.config/tunebrew/config.toml
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "tunebrew", "config.toml"))
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

// HasAPI returns true if the song API is configured.
func (c *Config) HasAPI() bool {
	return c.APIURL != ""
}

// GetThumbnailBase returns the album cover host with the default applied.
func (c *Config) GetThumbnailBase() string {
	if c.ThumbnailBase == "" {
		return DefaultThumbnailBase
	}
	return c.ThumbnailBase
}

// GetShareMethod returns the normalized share method.
func (c *Config) GetShareMethod() string {
	switch m := strings.ToLower(c.ShareMethod); m {
	case "clipboard", "qr", "none":
		return m
	default:
		return DefaultShareMethod
	}
}

// GetAutoplay returns whether picks from "my songs" start playing.
func (c *Config) GetAutoplay() bool {
	return c.Autoplay == nil || *c.Autoplay
}

// GetPollInterval returns the pending-song refresh interval. Values below
// one second fall back to the default.
func (c *Config) GetPollInterval() time.Duration {
	d, err := time.ParseDuration(c.PollInterval)
	if err != nil || d < time.Second {
		return DefaultPollInterval
	}
	return d
}

// GetRecentLimit returns the size of the home list.
func (c *Config) GetRecentLimit() int {
	if c.RecentLimit <= 0 {
		return DefaultRecentLimit
	}
	return c.RecentLimit
}

// GetArtists returns the model name mapping, with the built-in singers
// filled in when not overridden.
func (c *Config) GetArtists() map[string]string {
	artists := map[string]string{
		"isu": "이수",
		"ljb": "임재범",
	}
	for k, v := range c.Artists {
		artists[k] = v
	}
	return artists
}

// GetLogConfig returns the log configuration with defaults applied.
func (c *Config) GetLogConfig() LogConfig {
	cfg := c.Log
	if cfg.Enabled == nil {
		enabled := true
		cfg.Enabled = &enabled
	}
	if cfg.Level == "" {
		cfg.Level = "info"
	}
	return cfg
}
