// Package radio keeps the queue topped up with tracks similar to the
// one playing, fetched from the server. It decides when a refill is
// due and which fetched tracks are fresh; queueing them is the host's
// business.
package radio

import (
	"context"
	"sync"

	"github.com/llehouerou/crest/internal/playlist"
)

// refillThreshold is how few upcoming tracks trigger a refill.
const refillThreshold = 2

// fetchCount is how many similar tracks to request per refill. More
// than needed, since duplicates are filtered out afterwards.
const fetchCount = 20

// batchSize caps how many tracks one refill adds to the queue.
const batchSize = 10

// Fetcher supplies similar tracks for a seed track.
type Fetcher interface {
	SimilarSongs(ctx context.Context, id string, count int) ([]playlist.Track, error)
}

// Radio tracks radio-mode state: whether it is on and which track ids
// were already queued this session, so refills never repeat a track.
type Radio struct {
	mu      sync.Mutex
	enabled bool
	seen    map[string]bool
}

func New() *Radio {
	return &Radio{seen: make(map[string]bool)}
}

// Toggle flips radio mode. Disabling forgets the session's seen set.
func (r *Radio) Toggle() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.enabled = !r.enabled
	if !r.enabled {
		r.seen = make(map[string]bool)
	}
	return r.enabled
}

func (r *Radio) Enabled() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.enabled
}

// NeedsMore reports whether the queue is running low: radio is on and
// at most refillThreshold tracks remain after the current position.
func (r *Radio) NeedsMore(queueLen, index int) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.enabled || index < 0 {
		return false
	}
	return queueLen-index-1 <= refillThreshold
}

// Refill fetches tracks similar to seedID and returns the ones not yet
// played or queued this session, excluding anything already in queued.
// Returned tracks are remembered so later refills skip them.
func (r *Radio) Refill(ctx context.Context, f Fetcher, seedID string, queued []playlist.Track) ([]playlist.Track, error) {
	similar, err := f.SimilarSongs(ctx, seedID, fetchCount)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.enabled {
		return nil, nil
	}

	inQueue := make(map[string]bool, len(queued))
	for _, t := range queued {
		inQueue[t.ID] = true
	}

	var fresh []playlist.Track
	for _, t := range similar {
		if r.seen[t.ID] || inQueue[t.ID] || t.ID == seedID {
			continue
		}
		r.seen[t.ID] = true
		fresh = append(fresh, t)
		if len(fresh) == batchSize {
			break
		}
	}
	return fresh, nil
}
