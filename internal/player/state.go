package player

// State is the playback state machine.
//
// Valid transitions:
//   - Stopped → Playing (via Load)
//   - Playing → Paused  (via Pause)
//   - Playing → Stopped (via Stop)
//   - Paused  → Playing (via Play)
//   - Paused  → Stopped (via Stop)
//
// Toggle cycles Playing ↔ Paused and is a no-op when Stopped.
// Everything else is ignored rather than rejected.
type State int

const (
	Stopped State = iota
	Playing
	Paused
)

// String returns the state name for debugging.
func (s State) String() string {
	switch s {
	case Stopped:
		return "Stopped"
	case Playing:
		return "Playing"
	case Paused:
		return "Paused"
	default:
		return "Unknown"
	}
}

// IsActive returns true if a track is loaded (Playing or Paused).
func (s State) IsActive() bool {
	return s == Playing || s == Paused
}
