package config

import "testing"

func TestHasServer(t *testing.T) {
	tests := []struct {
		name     string
		cfg      Config
		expected bool
	}{
		{
			name:     "unconfigured",
			cfg:      Config{},
			expected: false,
		},
		{
			name:     "url only",
			cfg:      Config{Server: ServerConfig{URL: "https://music.example.com"}},
			expected: false,
		},
		{
			name: "url and username",
			cfg: Config{Server: ServerConfig{
				URL:      "https://music.example.com",
				Username: "demo",
			}},
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cfg.HasServer(); got != tt.expected {
				t.Errorf("HasServer() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestHasLastfm(t *testing.T) {
	cfg := Config{Lastfm: LastfmConfig{APIKey: "k"}}
	if cfg.HasLastfm() {
		t.Error("HasLastfm() should require both key and secret")
	}
	cfg.Lastfm.APISecret = "s"
	if !cfg.HasLastfm() {
		t.Error("HasLastfm() = false with both keys set")
	}
}

func TestNotificationsEnabled_DefaultsTrue(t *testing.T) {
	cfg := Config{}
	if !cfg.NotificationsEnabled() {
		t.Error("notifications should default to enabled")
	}

	off := false
	cfg.Notifications.Enabled = &off
	if cfg.NotificationsEnabled() {
		t.Error("explicit false should disable notifications")
	}
}
