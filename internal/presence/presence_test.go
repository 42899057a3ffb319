package presence

import (
	"sync"
	"testing"
	"time"
)

type fakeTransport struct {
	mu         sync.Mutex
	connects   int
	connectErr error
	activities []Info
	clears     int
	closes     int
}

func (f *fakeTransport) Connect(string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.connects++
	return f.connectErr
}

func (f *fakeTransport) SetActivity(info Info) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.activities = append(f.activities, info)
	return nil
}

func (f *fakeTransport) Clear() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.clears++
	return nil
}

func (f *fakeTransport) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closes++
}

func (f *fakeTransport) Activities() []Info {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Info(nil), f.activities...)
}

func waitForActivities(t *testing.T, f *fakeTransport, n int) []Info {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if got := f.Activities(); len(got) >= n {
			return got
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("transport never received %d activities, got %d", n, len(f.Activities()))
	return nil
}

func TestUpdater_BurstCoalescesToLast(t *testing.T) {
	f := &fakeTransport{}
	u := NewUpdater(f, "app-id", true)

	// Rapid skips: only the settled track should publish.
	u.Update(Info{TrackID: "a", Title: "A"})
	u.Update(Info{TrackID: "b", Title: "B"})
	u.Update(Info{TrackID: "c", Title: "C"})

	got := waitForActivities(t, f, 1)
	if len(got) != 1 {
		t.Fatalf("published %d activities, want 1", len(got))
	}
	if got[0].TrackID != "c" {
		t.Errorf("published %q, want c", got[0].TrackID)
	}
}

func TestUpdater_ConnectsLazilyOnce(t *testing.T) {
	f := &fakeTransport{}
	u := NewUpdater(f, "app-id", true)

	u.Update(Info{TrackID: "a"})
	waitForActivities(t, f, 1)
	u.Update(Info{TrackID: "b"})
	waitForActivities(t, f, 2)

	f.mu.Lock()
	connects := f.connects
	f.mu.Unlock()
	if connects != 1 {
		t.Errorf("connects = %d, want 1", connects)
	}
}

func TestUpdater_ClearCancelsPending(t *testing.T) {
	f := &fakeTransport{}
	u := NewUpdater(f, "app-id", true)

	u.Update(Info{TrackID: "a"})
	u.Clear()

	time.Sleep(updateDebounce + 100*time.Millisecond)
	if got := f.Activities(); len(got) != 0 {
		t.Errorf("pending update published after Clear: %v", got)
	}
}

func TestUpdater_DisabledDoesNothing(t *testing.T) {
	f := &fakeTransport{}
	u := NewUpdater(f, "app-id", false)

	u.Update(Info{TrackID: "a"})
	u.Clear()
	u.Close()

	time.Sleep(updateDebounce + 100*time.Millisecond)
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.connects != 0 || len(f.activities) != 0 || f.closes != 0 {
		t.Error("disabled updater touched the transport")
	}
}

func TestUpdater_EmptyAppIDDisables(t *testing.T) {
	f := &fakeTransport{}
	u := NewUpdater(f, "", true)

	u.Update(Info{TrackID: "a"})
	time.Sleep(updateDebounce + 100*time.Millisecond)
	if len(f.Activities()) != 0 {
		t.Error("updater with empty application id should be inert")
	}
}
