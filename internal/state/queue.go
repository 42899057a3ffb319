package state

import (
	"database/sql"
	"time"

	"github.com/llehouerou/crest/internal/db"
	"github.com/llehouerou/crest/internal/playlist"
)

// QueueState is a snapshot of the play queue suitable for restoring
// on the next launch.
type QueueState struct {
	Tracks       []playlist.Track
	CurrentIndex int
	Shuffle      bool
	Repeat       bool
}

// SaveQueue replaces the stored queue snapshot.
func (m *Manager) SaveQueue(qs QueueState) error {
	return db.WithTx(m.db, func(tx *sql.Tx) error {
		if _, err := tx.Exec(`DELETE FROM queue_tracks`); err != nil {
			return err
		}
		_, err := tx.Exec(`
			INSERT INTO queue_state (id, current_index, shuffle, repeat)
			VALUES (1, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET
				current_index = excluded.current_index,
				shuffle = excluded.shuffle,
				repeat = excluded.repeat
		`, qs.CurrentIndex, boolInt(qs.Shuffle), boolInt(qs.Repeat))
		if err != nil {
			return err
		}
		stmt, err := tx.Prepare(`
			INSERT INTO queue_tracks
				(position, track_id, title, artist, album, duration_seconds, cover_art, suffix)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`)
		if err != nil {
			return err
		}
		defer stmt.Close()
		for i, t := range qs.Tracks {
			if _, err := stmt.Exec(i, t.ID, t.Title, t.Artist, t.Album,
				int64(t.Duration/time.Second), t.CoverArt, t.Suffix); err != nil {
				return err
			}
		}
		return nil
	})
}

// Queue returns the stored queue snapshot. An empty snapshot with
// CurrentIndex -1 is returned when nothing was saved.
func (m *Manager) Queue() (QueueState, error) {
	qs := QueueState{CurrentIndex: -1}

	row := m.db.QueryRow(`SELECT current_index, shuffle, repeat FROM queue_state WHERE id = 1`)
	var shuffle, repeat int
	if err := row.Scan(&qs.CurrentIndex, &shuffle, &repeat); err != nil {
		if err == sql.ErrNoRows {
			return qs, nil
		}
		return qs, err
	}
	qs.Shuffle = shuffle != 0
	qs.Repeat = repeat != 0

	rows, err := m.db.Query(`
		SELECT track_id, title, artist, album, duration_seconds, cover_art, suffix
		FROM queue_tracks
		ORDER BY position
	`)
	if err != nil {
		return qs, err
	}
	defer rows.Close()

	for rows.Next() {
		var t playlist.Track
		var artist, album, coverArt, suffix sql.NullString
		var seconds sql.NullInt64
		if err := rows.Scan(&t.ID, &t.Title, &artist, &album, &seconds, &coverArt, &suffix); err != nil {
			return qs, err
		}
		t.Artist = db.NullStringValue(artist)
		t.Album = db.NullStringValue(album)
		t.Duration = time.Duration(db.NullInt64Value(seconds)) * time.Second
		t.CoverArt = db.NullStringValue(coverArt)
		t.Suffix = db.NullStringValue(suffix)
		qs.Tracks = append(qs.Tracks, t)
	}
	return qs, rows.Err()
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
