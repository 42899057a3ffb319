// Package notify sends desktop notifications on track changes.
package notify

import (
	"fmt"

	"github.com/gen2brain/beeep"
)

// Notifier sends desktop notifications. A disabled notifier accepts
// calls and does nothing.
type Notifier struct {
	enabled bool
}

func New(enabled bool) *Notifier {
	return &Notifier{enabled: enabled}
}

// TrackStarted announces a new track.
func (n *Notifier) TrackStarted(title, artist, album string) {
	if !n.enabled {
		return
	}

	body := artist
	if album != "" {
		body = fmt.Sprintf("%s – %s", artist, album)
	}
	// Notification failure is not worth surfacing; playback continues.
	_ = beeep.Notify(title, body, "")
}
