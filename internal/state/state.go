// Package state persists tunebrew's local state in sqlite: the key-value
// entries behind liked and requested songs, the now-playing track and the
// volume.
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
	appName      = "tunebrew"
	dbFileName   = "tunebrew.db"
	saveDebounce = 500 * time.Millisecond
)

type Manager struct {
	db        *sql.DB
	saveMu    sync.Mutex
	saveTimer *time.Timer
	pending   *NowPlaying
}

// Open opens the database under the XDG data directory.
func Open() (*Manager, error) {
	dbPath, err := getDBPath()
	if err != nil {
		return nil, err
	}
	return OpenPath(dbPath)
}

// OpenPath opens the database at path, creating it and its directory when
// missing.
func OpenPath(path string) (*Manager, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	if err := initSchema(db); err != nil {
		db.Close()
		return nil, err
	}

	return &Manager{db: db}, nil
}

func (m *Manager) Close() error {
	m.saveMu.Lock()
	if m.saveTimer != nil {
		m.saveTimer.Stop()
	}
	pending := m.pending
	m.pending = nil
	m.saveMu.Unlock()

	if pending != nil {
		_ = saveNowPlaying(m.db, *pending)
	}

	return m.db.Close()
}

func (m *Manager) GetNowPlaying() (*NowPlaying, error) {
	m.saveMu.Lock()
	pending := m.pending
	m.saveMu.Unlock()
	if pending != nil {
		if pending.SongID == "" {
			return nil, nil //nolint:nilnil // cleared by close
		}
		np := *pending
		np.Version = max(np.Version, 1)
		return &np, nil
	}
	return getNowPlaying(m.db)
}

// SaveNowPlaying records np after a short quiet period. Rapid track switches
// only write the last one.
func (m *Manager) SaveNowPlaying(np NowPlaying) {
	m.saveMu.Lock()
	defer m.saveMu.Unlock()

	m.pending = &np

	if m.saveTimer != nil {
		m.saveTimer.Stop()
	}

	m.saveTimer = time.AfterFunc(saveDebounce, func() {
		m.saveMu.Lock()
		pending := m.pending
		m.pending = nil
		m.saveMu.Unlock()

		if pending != nil {
			_ = saveNowPlaying(m.db, *pending)
		}
	})
}

func getDBPath() (string, error) {
	return xdg.DataFile(filepath.Join(appName, dbFileName))
}
