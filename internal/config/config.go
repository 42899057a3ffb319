package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type Config struct {
	// Server holds the music server connection.
	Server ServerConfig `koanf:"server"`

	// Lastfm enables Last.fm scrobbling when both keys are set.
	Lastfm LastfmConfig `koanf:"lastfm"`

	// Discord enables rich presence when configured.
	Discord DiscordConfig `koanf:"discord"`

	// Notifications controls desktop track-change notifications.
	Notifications NotificationsConfig `koanf:"notifications"`

	// UI holds cosmetic settings.
	UI UIConfig `koanf:"ui"`
}

// UIConfig holds cosmetic settings.
type UIConfig struct {
	Icons string `koanf:"icons"` // "nerd", "unicode" or "none"
}

// ServerConfig holds the Subsonic server connection settings.
type ServerConfig struct {
	URL      string `koanf:"url"`
	Username string `koanf:"username"`
	Password string `koanf:"password"`
	Bitrate  int    `koanf:"bitrate"` // transcode cap in kbit/s, 0 = original
}

// LastfmConfig holds Last.fm scrobbling credentials.
type LastfmConfig struct {
	APIKey    string `koanf:"api_key"`
	APISecret string `koanf:"api_secret"`
}

// DiscordConfig holds rich presence settings.
type DiscordConfig struct {
	Enabled       bool   `koanf:"enabled"`
	ApplicationID string `koanf:"application_id"`
}

// NotificationsConfig holds desktop notification settings.
type NotificationsConfig struct {
	Enabled *bool `koanf:"enabled"` // default: true
}

func Load() (*Config, error) {
	k := koanf.New(".")

	// Try config files in order of priority (last wins)
	for _, path := range getConfigPaths() {
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

	cfg.Server.URL = strings.TrimSuffix(cfg.Server.URL, "/")
	return cfg, nil
}

func getConfigPaths() []string {
	paths := []string{}

	// 1. ~/.config/crest/config.toml
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "crest", "config.toml"))
	}

	// 2. ./config.toml (pwd, highest priority)
	paths = append(paths, "config.toml")

	return paths
}

// HasServer returns true if the server connection is configured.
func (c *Config) HasServer() bool {
	return c.Server.URL != "" && c.Server.Username != ""
}

// HasLastfm returns true if Last.fm scrobbling is configured.
func (c *Config) HasLastfm() bool {
	return c.Lastfm.APIKey != "" && c.Lastfm.APISecret != ""
}

// NotificationsEnabled applies the enabled-by-default rule.
func (c *Config) NotificationsEnabled() bool {
	if c.Notifications.Enabled == nil {
		return true
	}
	return *c.Notifications.Enabled
}
