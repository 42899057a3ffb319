package state

import (
	"database/sql"
	"time"

	"github.com/llehouerou/crest/internal/db"
	"github.com/llehouerou/crest/internal/playlist"
)

// recentlyPlayedCap bounds the recently-played log. Older entries are
// trimmed on insert.
const recentlyPlayedCap = 50

// RecordPlay moves a track to the head of the recently-played log.
// A track already present is re-inserted rather than duplicated, and
// anything beyond the cap falls off the tail.
func (m *Manager) RecordPlay(track playlist.Track) error {
	return db.WithTx(m.db, func(tx *sql.Tx) error {
		if _, err := tx.Exec(`DELETE FROM recently_played WHERE track_id = ?`, track.ID); err != nil {
			return err
		}
		_, err := tx.Exec(`
			INSERT INTO recently_played
				(track_id, title, artist, album, duration_seconds, cover_art, suffix, played_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`, track.ID, track.Title, track.Artist, track.Album,
			int64(track.Duration/time.Second), track.CoverArt, track.Suffix,
			time.Now().UnixNano())
		if err != nil {
			return err
		}
		_, err = tx.Exec(`
			DELETE FROM recently_played WHERE track_id NOT IN (
				SELECT track_id FROM recently_played ORDER BY played_at DESC LIMIT ?
			)
		`, recentlyPlayedCap)
		return err
	})
}

// PlayedTrack is one recently-played log entry.
type PlayedTrack struct {
	playlist.Track
	PlayedAt time.Time
}

// RecentlyPlayed returns the log, most recent first.
func (m *Manager) RecentlyPlayed() ([]PlayedTrack, error) {
	rows, err := m.db.Query(`
		SELECT track_id, title, artist, album, duration_seconds, cover_art, suffix, played_at
		FROM recently_played
		ORDER BY played_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tracks []PlayedTrack
	for rows.Next() {
		var t PlayedTrack
		var artist, album, coverArt, suffix sql.NullString
		var seconds sql.NullInt64
		var playedAt int64
		if err := rows.Scan(&t.ID, &t.Title, &artist, &album, &seconds, &coverArt, &suffix, &playedAt); err != nil {
			return nil, err
		}
		t.Artist = db.NullStringValue(artist)
		t.Album = db.NullStringValue(album)
		t.Duration = time.Duration(db.NullInt64Value(seconds)) * time.Second
		t.CoverArt = db.NullStringValue(coverArt)
		t.Suffix = db.NullStringValue(suffix)
		t.PlayedAt = time.Unix(0, playedAt)
		tracks = append(tracks, t)
	}
	return tracks, rows.Err()
}
