package state

import (
	"database/sql"
	"errors"

	dbutil "github.com/llehouerou/tunebrew/internal/db"
)

// NowPlaying is the track restored on the next launch.
type NowPlaying struct {
	SongID   string
	Version  int
	ViewMode string
}

func getNowPlaying(db *sql.DB) (*NowPlaying, error) {
	var songID, viewMode sql.NullString
	var version int

	row := db.QueryRow(`SELECT song_id, version, view_mode FROM now_playing WHERE id = 1`)
	err := row.Scan(&songID, &version, &viewMode)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil //nolint:nilnil // nothing saved yet
	}
	if err != nil {
		return nil, err
	}
	if !songID.Valid || songID.String == "" {
		return nil, nil //nolint:nilnil // cleared by close
	}

	return &NowPlaying{
		SongID:   songID.String,
		Version:  max(version, 1),
		ViewMode: dbutil.NullStringValue(viewMode, "minimized"),
	}, nil
}

func saveNowPlaying(db *sql.DB, np NowPlaying) error {
	var songID any
	if np.SongID != "" {
		songID = np.SongID
	}
	_, err := db.Exec(`
		INSERT INTO now_playing (id, song_id, version, view_mode)
		VALUES (1, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			song_id = excluded.song_id,
			version = excluded.version,
			view_mode = excluded.view_mode
	`, songID, max(np.Version, 1), np.ViewMode)
	return err
}
