// Package prefstore persists the user's caption-hidden preference
// across player sessions, keyed by video id. It stands in for the
// long-lived cookie the engine's persistence collaborator describes.
package prefstore

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS caption_prefs (
	video_id   TEXT PRIMARY KEY,
	hidden     INTEGER NOT NULL,
	updated_at TEXT NOT NULL
);`

// Store is a SQLite-backed preference store.
type Store struct {
	db   *sql.DB
	path string
}

// Open creates or opens the preference database at path, creating
// parent directories as needed.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create preference dir: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open preference db %s: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize preference db: %w", err)
	}
	return &Store{db: db, path: path}, nil
}

// Load returns the stored preference for videoID. ok is false when the
// video has no stored preference yet.
func (s *Store) Load(videoID string) (hidden bool, ok bool, err error) {
	row := s.db.QueryRow(
		`SELECT hidden FROM caption_prefs WHERE video_id = ?`, videoID,
	)
	var value int
	if err := row.Scan(&value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, false, nil
		}
		return false, false, fmt.Errorf("load preference for %s: %w", videoID, err)
	}
	return value != 0, true, nil
}

// Save upserts the preference for videoID.
func (s *Store) Save(videoID string, hidden bool) error {
	value := 0
	if hidden {
		value = 1
	}
	_, err := s.db.Exec(
		`INSERT INTO caption_prefs (video_id, hidden, updated_at)
		 VALUES (?, ?, ?)
		 ON CONFLICT(video_id) DO UPDATE SET
			hidden = excluded.hidden,
			updated_at = excluded.updated_at`,
		videoID, value, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("save preference for %s: %w", videoID, err)
	}
	return nil
}

// Path returns the on-disk location of the database.
func (s *Store) Path() string {
	return s.path
}

func (s *Store) Close() error {
	return s.db.Close()
}
