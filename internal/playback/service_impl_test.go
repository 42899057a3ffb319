package playback

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/llehouerou/crest/internal/player"
	"github.com/llehouerou/crest/internal/playlist"
)

// fakeStreams resolves track ids to predictable URLs.
type fakeStreams struct{}

func (fakeStreams) StreamURL(id string) string {
	return "http://srv/rest/stream?id=" + id
}

// recordingScrobbler records submissions for assertions.
type recordingScrobbler struct {
	mu         sync.Mutex
	nowPlaying []string
	scrobbles  []string
}

func (r *recordingScrobbler) NowPlaying(_ context.Context, track playlist.Track) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nowPlaying = append(r.nowPlaying, track.ID)
	return nil
}

func (r *recordingScrobbler) Scrobble(_ context.Context, track playlist.Track) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.scrobbles = append(r.scrobbles, track.ID)
	return nil
}

func (r *recordingScrobbler) Scrobbles() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.scrobbles...)
}

func newTestService(t *testing.T) (Service, *player.Mock, *playlist.Queue) {
	t.Helper()
	p := player.NewMock()
	q := playlist.NewQueue()
	svc := New(p, q, fakeStreams{})
	t.Cleanup(func() { svc.Close() })
	return svc, p, q
}

func tracks(ids ...string) []playlist.Track {
	out := make([]playlist.Track, len(ids))
	for i, id := range ids {
		out[i] = playlist.Track{ID: id, Title: "Track " + id, Duration: 3 * time.Minute}
	}
	return out
}

func TestService_PlayFromList_LoadsStream(t *testing.T) {
	svc, p, _ := newTestService(t)

	if err := svc.PlayFromList(tracks("a", "b"), 0); err != nil {
		t.Fatalf("PlayFromList failed: %v", err)
	}

	calls := p.LoadCalls()
	if len(calls) != 1 {
		t.Fatalf("expected 1 load, got %d", len(calls))
	}
	if calls[0] != "http://srv/rest/stream?id=a" {
		t.Errorf("loaded %q, want stream URL for a", calls[0])
	}
	if svc.State() != StatePlaying {
		t.Errorf("state = %v, want Playing", svc.State())
	}
	if cur := svc.CurrentTrack(); cur == nil || cur.ID != "a" {
		t.Errorf("current track = %+v, want a", cur)
	}
}

func TestService_PlayFromList_EmitsTrackChange(t *testing.T) {
	svc, _, _ := newTestService(t)
	sub := svc.Subscribe()

	if err := svc.PlayFromList(tracks("a"), 0); err != nil {
		t.Fatalf("PlayFromList failed: %v", err)
	}

	select {
	case e := <-sub.TrackChanged:
		if e.Current == nil || e.Current.ID != "a" {
			t.Errorf("TrackChange.Current = %+v, want a", e.Current)
		}
		if e.Previous != nil {
			t.Errorf("TrackChange.Previous = %+v, want nil", e.Previous)
		}
		if e.Index != 0 {
			t.Errorf("TrackChange.Index = %d, want 0", e.Index)
		}
	default:
		t.Fatal("no TrackChange emitted")
	}
}

func TestService_TrackEnd_AdvancesQueue(t *testing.T) {
	svc, p, _ := newTestService(t)

	if err := svc.PlayFromList(tracks("a", "b", "c"), 0); err != nil {
		t.Fatalf("PlayFromList failed: %v", err)
	}

	p.SimulateTrackEnd()

	if cur := svc.CurrentTrack(); cur == nil || cur.ID != "b" {
		t.Fatalf("current after end = %+v, want b", cur)
	}
	if got := len(p.LoadCalls()); got != 2 {
		t.Errorf("load calls = %d, want 2", got)
	}
	if hist := svc.HistoryTracks(); len(hist) != 1 || hist[0].ID != "a" {
		t.Errorf("history = %+v, want [a]", hist)
	}
}

func TestService_TrackEnd_DrainStopsAndKeepsHistory(t *testing.T) {
	svc, p, _ := newTestService(t)

	if err := svc.PlayFromList(tracks("a", "b", "c"), 0); err != nil {
		t.Fatalf("PlayFromList failed: %v", err)
	}
	for range 3 {
		p.SimulateTrackEnd()
	}

	if svc.State() != StateStopped {
		t.Errorf("state after drain = %v, want Stopped", svc.State())
	}
	if cur := svc.CurrentTrack(); cur != nil {
		t.Errorf("current after drain = %+v, want nil", cur)
	}
	hist := svc.HistoryTracks()
	if len(hist) != 3 {
		t.Fatalf("history length = %d, want 3", len(hist))
	}
	for i, id := range []string{"a", "b", "c"} {
		if hist[i].ID != id {
			t.Errorf("history[%d] = %s, want %s", i, hist[i].ID, id)
		}
	}
}

func TestService_TrackEnd_RepeatReplays(t *testing.T) {
	svc, p, _ := newTestService(t)

	if err := svc.PlayFromList(tracks("a", "b"), 0); err != nil {
		t.Fatalf("PlayFromList failed: %v", err)
	}
	svc.ToggleRepeat()

	p.SimulateTrackEnd()

	if cur := svc.CurrentTrack(); cur == nil || cur.ID != "a" {
		t.Errorf("current with repeat = %+v, want a", cur)
	}
	if svc.QueueLen() != 2 {
		t.Errorf("queue length = %d, want 2 (repeat removes nothing)", svc.QueueLen())
	}
}

func TestService_Next_IgnoresRepeat(t *testing.T) {
	svc, _, _ := newTestService(t)

	if err := svc.PlayFromList(tracks("a", "b"), 0); err != nil {
		t.Fatalf("PlayFromList failed: %v", err)
	}
	svc.ToggleRepeat()

	if err := svc.Next(); err != nil {
		t.Fatalf("Next failed: %v", err)
	}
	if cur := svc.CurrentTrack(); cur == nil || cur.ID != "b" {
		t.Errorf("current after manual skip = %+v, want b", cur)
	}
}

func TestService_Previous_RestartsPastWindow(t *testing.T) {
	svc, p, _ := newTestService(t)
	sub := svc.Subscribe()

	if err := svc.PlayFromList(tracks("a", "b"), 0); err != nil {
		t.Fatalf("PlayFromList failed: %v", err)
	}
	p.SimulateTrackEnd() // now on b, a in history
	p.SetPosition(10 * time.Second)

	if err := svc.Previous(); err != nil {
		t.Fatalf("Previous failed: %v", err)
	}

	if cur := svc.CurrentTrack(); cur == nil || cur.ID != "b" {
		t.Errorf("current = %+v, want b (restart, not back)", cur)
	}
	if calls := p.SeekCalls(); len(calls) == 0 || calls[len(calls)-1] != 0 {
		t.Errorf("expected seek to 0, got %v", calls)
	}

	drainPositions(sub)
}

func TestService_Previous_PopsHistoryWithinWindow(t *testing.T) {
	svc, p, _ := newTestService(t)

	if err := svc.PlayFromList(tracks("a", "b"), 0); err != nil {
		t.Fatalf("PlayFromList failed: %v", err)
	}
	p.SimulateTrackEnd() // now on b, a in history
	p.SetPosition(1 * time.Second)

	if err := svc.Previous(); err != nil {
		t.Fatalf("Previous failed: %v", err)
	}

	if cur := svc.CurrentTrack(); cur == nil || cur.ID != "a" {
		t.Errorf("current = %+v, want a", cur)
	}
	if idx := svc.QueueIndex(); idx != 0 {
		t.Errorf("queue index = %d, want 0", idx)
	}
}

func TestService_LoadError_EmitsErrorEvent(t *testing.T) {
	svc, p, _ := newTestService(t)
	sub := svc.Subscribe()

	loadErr := errors.New("connection refused")
	p.SetLoadError(loadErr)

	if err := svc.PlayFromList(tracks("a"), 0); err == nil {
		t.Fatal("expected PlayFromList to fail")
	}

	select {
	case e := <-sub.Error:
		if e.TrackID != "a" {
			t.Errorf("error track id = %q, want a", e.TrackID)
		}
		if !errors.Is(e.Err, loadErr) {
			t.Errorf("error = %v, want %v", e.Err, loadErr)
		}
	default:
		t.Fatal("no ErrorEvent emitted")
	}
}

func TestService_ToggleShuffle_EmitsModeAndQueue(t *testing.T) {
	svc, _, _ := newTestService(t)

	if err := svc.PlayFromList(tracks("a", "b", "c"), 0); err != nil {
		t.Fatalf("PlayFromList failed: %v", err)
	}
	sub := svc.Subscribe()

	if on := svc.ToggleShuffle(); !on {
		t.Error("ToggleShuffle should return true")
	}

	select {
	case e := <-sub.ModeChanged:
		if !e.Shuffle {
			t.Error("ModeChange.Shuffle should be true")
		}
		if e.Repeat {
			t.Error("shuffle on should cancel repeat")
		}
	default:
		t.Fatal("no ModeChange emitted")
	}
	select {
	case e := <-sub.QueueChanged:
		if len(e.Tracks) != 3 {
			t.Errorf("QueueChange has %d tracks, want 3", len(e.Tracks))
		}
	default:
		t.Fatal("no QueueChange emitted")
	}
}

func TestService_Scrobble_FiresOncePastHalfDuration(t *testing.T) {
	p := player.NewMock()
	q := playlist.NewQueue()
	sc := &recordingScrobbler{}
	svc := New(p, q, fakeStreams{}, sc).(*serviceImpl)
	defer svc.Close()

	if err := svc.PlayFromList(tracks("a"), 0); err != nil {
		t.Fatalf("PlayFromList failed: %v", err)
	}

	// Before the threshold: nothing.
	p.SetPosition(1 * time.Minute)
	svc.maybeScrobble()
	if got := sc.Scrobbles(); len(got) != 0 {
		t.Fatalf("scrobbled too early: %v", got)
	}

	// Past half of 3m.
	p.SetPosition(100 * time.Second)
	svc.maybeScrobble()
	svc.maybeScrobble() // latch: second check must not resubmit

	waitFor(t, func() bool { return len(sc.Scrobbles()) == 1 })
	if got := sc.Scrobbles(); len(got) != 1 || got[0] != "a" {
		t.Errorf("scrobbles = %v, want [a]", got)
	}
}

func TestService_Seek_PastEndAdvances(t *testing.T) {
	svc, p, _ := newTestService(t)

	if err := svc.PlayFromList(tracks("a", "b"), 0); err != nil {
		t.Fatalf("PlayFromList failed: %v", err)
	}
	p.SetPosition(170 * time.Second)

	if err := svc.Seek(30 * time.Second); err != nil {
		t.Fatalf("Seek failed: %v", err)
	}
	if cur := svc.CurrentTrack(); cur == nil || cur.ID != "b" {
		t.Errorf("current after over-seek = %+v, want b", cur)
	}
}

func TestService_Subscribe_CloseSignalsDone(t *testing.T) {
	p := player.NewMock()
	q := playlist.NewQueue()
	svc := New(p, q, fakeStreams{})
	sub := svc.Subscribe()

	svc.Close()

	select {
	case <-sub.Done:
	case <-time.After(time.Second):
		t.Fatal("Done not closed after service Close")
	}
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition never met")
}

func drainPositions(sub *Subscription) {
	for {
		select {
		case <-sub.PositionChanged:
		default:
			return
		}
	}
}

func TestToggle_StartsRestoredQueue(t *testing.T) {
	svc, p, q := newTestService(t)
	q.Restore(tracks("a", "b", "c"), 1, false, false)

	if err := svc.Toggle(); err != nil {
		t.Fatalf("Toggle failed: %v", err)
	}

	track := svc.CurrentTrack()
	if track == nil || track.ID != "b" {
		t.Fatalf("CurrentTrack() = %v, want b", track)
	}
	if got := p.LoadCalls(); len(got) != 1 {
		t.Errorf("player loads = %v, want one", got)
	}
}
