package radio

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/llehouerou/crest/internal/playlist"
)

type stubFetcher struct {
	tracks []playlist.Track
	err    error
	calls  int
}

func (s *stubFetcher) SimilarSongs(_ context.Context, _ string, _ int) ([]playlist.Track, error) {
	s.calls++
	return s.tracks, s.err
}

func similar(ids ...string) []playlist.Track {
	out := make([]playlist.Track, len(ids))
	for i, id := range ids {
		out[i] = playlist.Track{ID: id, Title: "Track " + id}
	}
	return out
}

func TestToggle(t *testing.T) {
	r := New()

	if r.Enabled() {
		t.Fatal("radio should start disabled")
	}
	if !r.Toggle() {
		t.Error("first Toggle should enable")
	}
	if r.Toggle() {
		t.Error("second Toggle should disable")
	}
}

func TestNeedsMore(t *testing.T) {
	r := New()

	if r.NeedsMore(10, 2) {
		t.Error("disabled radio should never need more")
	}

	r.Toggle()
	tests := []struct {
		queueLen, index int
		want            bool
	}{
		{10, 2, false}, // 7 upcoming
		{10, 7, true},  // 2 upcoming
		{10, 9, true},  // last track
		{3, -1, false}, // nothing playing
		{1, 0, true},
	}
	for _, tt := range tests {
		if got := r.NeedsMore(tt.queueLen, tt.index); got != tt.want {
			t.Errorf("NeedsMore(%d, %d) = %v, want %v", tt.queueLen, tt.index, got, tt.want)
		}
	}
}

func TestRefill_FiltersSeenAndQueued(t *testing.T) {
	r := New()
	r.Toggle()
	f := &stubFetcher{tracks: similar("a", "b", "c", "seed")}

	got, err := r.Refill(context.Background(), f, "seed", similar("b"))
	if err != nil {
		t.Fatalf("Refill failed: %v", err)
	}
	want := []string{"a", "c"}
	if len(got) != len(want) {
		t.Fatalf("Refill returned %d tracks, want %d", len(got), len(want))
	}
	for i, id := range want {
		if got[i].ID != id {
			t.Errorf("track %d = %s, want %s", i, got[i].ID, id)
		}
	}

	// A second refill with the same candidates yields nothing new.
	got, err = r.Refill(context.Background(), f, "seed", nil)
	if err != nil {
		t.Fatalf("second Refill failed: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("second Refill returned %d tracks, want 0", len(got))
	}
}

func TestRefill_CapsBatch(t *testing.T) {
	r := New()
	r.Toggle()
	ids := make([]string, fetchCount)
	for i := range ids {
		ids[i] = fmt.Sprintf("t%d", i)
	}
	f := &stubFetcher{tracks: similar(ids...)}

	got, err := r.Refill(context.Background(), f, "seed", nil)
	if err != nil {
		t.Fatalf("Refill failed: %v", err)
	}
	if len(got) != batchSize {
		t.Errorf("Refill returned %d tracks, want %d", len(got), batchSize)
	}
}

func TestRefill_DisabledAfterFetchDropsResult(t *testing.T) {
	r := New()
	r.Toggle()
	r.Toggle()
	f := &stubFetcher{tracks: similar("a")}

	got, err := r.Refill(context.Background(), f, "seed", nil)
	if err != nil {
		t.Fatalf("Refill failed: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Refill while disabled returned %d tracks, want 0", len(got))
	}
}

func TestRefill_FetchError(t *testing.T) {
	r := New()
	r.Toggle()
	f := &stubFetcher{err: errors.New("server down")}

	if _, err := r.Refill(context.Background(), f, "seed", nil); err == nil {
		t.Error("expected fetch error to propagate")
	}
}
