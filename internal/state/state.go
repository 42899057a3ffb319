// Package state persists session data that outlives the process: the
// recently-played log, the queue snapshot, volume, and the Last.fm
// session key. Backed by SQLite in the xdg data directory.
package state

import (
	"database/sql"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/adrg/xdg"
	_ "modernc.org/sqlite" // SQLite driver
)

const (
	appName    = "crest"
	dbFileName = "crest.db"

	// Volume changes arrive on every slider tick; writes are debounced.
	volumeSaveDebounce = 500 * time.Millisecond
)

type Manager struct {
	db *sql.DB

	saveMu        sync.Mutex
	volumeTimer   *time.Timer
	pendingVolume *float64
}

// Open opens (creating if needed) the state database at the default
// xdg location.
func Open() (*Manager, error) {
	dbPath, err := xdg.DataFile(filepath.Join(appName, dbFileName))
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, err
	}
	return openAt(dbPath)
}

// OpenAt opens a state database at an explicit path (tests).
func OpenAt(path string) (*Manager, error) {
	return openAt(path)
}

func openAt(path string) (*Manager, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if err := initSchema(db); err != nil {
		db.Close()
		return nil, err
	}
	return &Manager{db: db}, nil
}

// Close flushes any pending debounced write and closes the database.
func (m *Manager) Close() error {
	m.saveMu.Lock()
	if m.volumeTimer != nil {
		m.volumeTimer.Stop()
	}
	pending := m.pendingVolume
	m.pendingVolume = nil
	m.saveMu.Unlock()

	if pending != nil {
		_ = saveSetting(m.db, settingVolume, *pending)
	}
	return m.db.Close()
}

// SaveVolume schedules a volume write. The timer resets on every call,
// so only the last value in a burst reaches disk.
func (m *Manager) SaveVolume(volume float64) {
	m.saveMu.Lock()
	defer m.saveMu.Unlock()

	m.pendingVolume = &volume

	if m.volumeTimer != nil {
		m.volumeTimer.Stop()
	}
	m.volumeTimer = time.AfterFunc(volumeSaveDebounce, func() {
		m.saveMu.Lock()
		pending := m.pendingVolume
		m.pendingVolume = nil
		m.saveMu.Unlock()

		if pending != nil {
			_ = saveSetting(m.db, settingVolume, *pending)
		}
	})
}

// Volume returns the saved volume, or 1.0 if none was saved.
func (m *Manager) Volume() float64 {
	v, err := getFloatSetting(m.db, settingVolume)
	if err != nil {
		return 1.0
	}
	return v
}

// SaveLastfmSession stores the Last.fm session key and username.
func (m *Manager) SaveLastfmSession(username, sessionKey string) error {
	_, err := m.db.Exec(`
		INSERT INTO lastfm_session (id, username, session_key)
		VALUES (1, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			username = excluded.username,
			session_key = excluded.session_key
	`, username, sessionKey)
	return err
}

// LastfmSession returns the saved session, or empty strings if none.
func (m *Manager) LastfmSession() (username, sessionKey string) {
	row := m.db.QueryRow(`SELECT username, session_key FROM lastfm_session WHERE id = 1`)
	_ = row.Scan(&username, &sessionKey)
	return username, sessionKey
}
