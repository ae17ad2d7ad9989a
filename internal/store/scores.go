package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/verte-zerg/pinkytype/internal/model"
	"github.com/verte-zerg/pinkytype/internal/names"
)

// Scores returns the top entries for a category by WPM descending.
func (s *Store) Scores(ctx context.Context, category string) ([]model.LeaderboardEntry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, wpm, accuracy, category, created_at
		 FROM scores
		 WHERE category = ?
		 ORDER BY wpm DESC, created_at ASC
		 LIMIT ?`, category, MaxScoresPerCategory)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	entries := []model.LeaderboardEntry{}
	for rows.Next() {
		var e model.LeaderboardEntry
		var createdAt string
		if err := rows.Scan(&e.ID, &e.Name, &e.WPM, &e.Accuracy, &e.Category, &createdAt); err != nil {
			return nil, err
		}
		if e.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

// PersonalBest returns the stored WPM for name in category.
func (s *Store) PersonalBest(ctx context.Context, name, category string) (int, bool, error) {
	var wpm int
	err := s.db.QueryRowContext(ctx,
		`SELECT wpm FROM scores
		 WHERE lower(name) = ? AND category = ?
		 ORDER BY wpm DESC
		 LIMIT 1`, names.Normalize(name), category).Scan(&wpm)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return wpm, true, nil
}

// Save upserts a score. A stored record for the same name and category is
// replaced only when the new WPM is at least the stored WPM.
func (s *Store) Save(ctx context.Context, sub model.ScoreSubmission) (err error) {
	name := names.Normalize(sub.Name)
	createdAt := s.now().UTC().Format(time.RFC3339Nano)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	var id string
	var existing int
	err = tx.QueryRowContext(ctx,
		`SELECT id, wpm FROM scores WHERE lower(name) = ? AND category = ?`,
		name, sub.Category).Scan(&id, &existing)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		_, err = tx.ExecContext(ctx,
			`INSERT INTO scores (id, name, wpm, accuracy, category, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
			uuid.NewString(), name, sub.WPM, sub.Accuracy, sub.Category, createdAt)
		if err != nil {
			return err
		}
	case err != nil:
		return err
	case sub.WPM >= existing:
		_, err = tx.ExecContext(ctx,
			`UPDATE scores SET wpm = ?, accuracy = ?, created_at = ? WHERE id = ?`,
			sub.WPM, sub.Accuracy, createdAt, id)
		if err != nil {
			return err
		}
	}
	return tx.Commit()
}

// IsNameTaken reports whether any category holds a score for name.
func (s *Store) IsNameTaken(ctx context.Context, name string) (bool, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM scores WHERE lower(name) = ?`, names.Normalize(name)).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
