package presence

import (
	"fmt"
	"time"

	"github.com/hugolgst/rich-go/client"
)

// DiscordTransport publishes presence over the local Discord IPC socket.
type DiscordTransport struct{}

var _ Transport = (*DiscordTransport)(nil)

func NewDiscordTransport() *DiscordTransport {
	return &DiscordTransport{}
}

func (d *DiscordTransport) Connect(applicationID string) error {
	if err := client.Login(applicationID); err != nil {
		return fmt.Errorf("discord login: %w", err)
	}
	return nil
}

func (d *DiscordTransport) SetActivity(info Info) error {
	state := "by " + info.Artist
	if info.Album != "" {
		state = fmt.Sprintf("by %s • %s", info.Artist, info.Album)
	}

	smallImage, smallText := "play", "Playing"
	if info.Paused {
		smallImage, smallText = "pause", "Paused"
	}

	activity := client.Activity{
		Details:    info.Title,
		State:      state,
		LargeImage: "crest",
		LargeText:  "Crest",
		SmallImage: smallImage,
		SmallText:  smallText,
	}

	if !info.Paused && info.Duration > 0 {
		now := time.Now()
		start := now.Add(-info.Position)
		end := now.Add(info.Duration - info.Position)
		activity.Timestamps = &client.Timestamps{Start: &start, End: &end}
	}

	return client.SetActivity(activity)
}

func (d *DiscordTransport) Clear() error {
	// rich-go has no explicit clear; an empty idle activity comes close.
	return client.SetActivity(client.Activity{
		Details:    "Idle",
		State:      "Nothing playing",
		LargeImage: "crest",
		LargeText:  "Crest",
	})
}

func (d *DiscordTransport) Close() {
	client.Logout()
}
