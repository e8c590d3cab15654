package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// LoadProgress returns the saved level index for profile, or
// ErrNoProgress.
func (s *Store) LoadProgress(profile string) (int, error) {
	var level int
	err := s.queryRow("SELECT level FROM progress WHERE profile = ?", profile).Scan(&level)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrNoProgress
	}
	if err != nil {
		return 0, fmt.Errorf("storage: cannot load progress: %w", err)
	}
	return level, nil
}

// SaveProgress stores the level index profile should resume at.
func (s *Store) SaveProgress(profile string, level int) error {
	if level < 0 {
		return fmt.Errorf("storage: negative level %d", level)
	}
	_, err := s.exec(
		`INSERT INTO progress (profile, level, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT (profile) DO UPDATE SET level = excluded.level, updated_at = excluded.updated_at`,
		profile, level, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save progress: %w", err)
	}
	return nil
}

// ResetProgress forgets the saved level for profile.
func (s *Store) ResetProgress(profile string) error {
	if _, err := s.exec("DELETE FROM progress WHERE profile = ?", profile); err != nil {
		return fmt.Errorf("storage: cannot reset progress: %w", err)
	}
	return nil
}
