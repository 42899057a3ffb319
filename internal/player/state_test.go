package player

import "testing"

func TestStateString(t *testing.T) {
	tests := []struct {
		state State
		want  string
	}{
		{Stopped, "Stopped"},
		{Playing, "Playing"},
		{Paused, "Paused"},
		{State(99), "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.state.String(); got != tt.want {
			t.Errorf("State(%d).String() = %q, want %q", tt.state, got, tt.want)
		}
	}
}

func TestStateIsActive(t *testing.T) {
	if Stopped.IsActive() {
		t.Error("Stopped should not be active")
	}
	if !Playing.IsActive() {
		t.Error("Playing should be active")
	}
	if !Paused.IsActive() {
		t.Error("Paused should be active")
	}
}

func TestLevelToVolume(t *testing.T) {
	tests := []struct {
		level float64
		want  float64
	}{
		{1.0, 0},
		{0.5, -1},
		{0.25, -2},
		{0, -10},
		{-0.3, -10},
		{1.5, 0},
	}
	for _, tt := range tests {
		if got := levelToVolume(tt.level); got != tt.want {
			t.Errorf("levelToVolume(%v) = %v, want %v", tt.level, got, tt.want)
		}
	}
}

func TestMockStateMachine(t *testing.T) {
	m := NewMock()

	if m.State() != Stopped {
		t.Fatalf("initial state = %v, want Stopped", m.State())
	}

	// Toggle is a no-op when stopped.
	m.Toggle()
	if m.State() != Stopped {
		t.Errorf("toggle while stopped changed state to %v", m.State())
	}

	if err := m.Load(t.Context(), "http://example/stream", 0); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if m.State() != Playing {
		t.Errorf("state after load = %v, want Playing", m.State())
	}

	m.Pause()
	if m.State() != Paused {
		t.Errorf("state after pause = %v, want Paused", m.State())
	}
	m.Play()
	if m.State() != Playing {
		t.Errorf("state after play = %v, want Playing", m.State())
	}
	m.Stop()
	if m.State() != Stopped {
		t.Errorf("state after stop = %v, want Stopped", m.State())
	}
}
