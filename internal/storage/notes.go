package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// Note is a per-player annotation, the unit the XML notes format
// round-trips through.
type Note struct {
	PlayerName string
	LabelID    string
	Text       string
	UpdatedAt  time.Time
}

// NoteLabel is a named color category for notes.
type NoteLabel struct {
	ID    string
	Color string
	Name  string
}

// SaveNote upserts a player's note, keeping the note's own update time
// so exports reproduce it. One note per player; on conflict the incoming
// note only wins when it is not older than the stored one, so importing
// a stale XML file cannot clobber newer notes.
func (s *Store) SaveNote(ctx context.Context, n Note) error {
	updated := n.UpdatedAt.UTC()
	if n.UpdatedAt.IsZero() {
		updated = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO notes (player_name, label_id, text, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(player_name) DO UPDATE SET
			label_id = excluded.label_id,
			text = excluded.text,
			updated_at = excluded.updated_at
		WHERE excluded.updated_at >= notes.updated_at`,
		n.PlayerName, n.LabelID, n.Text, updated)
	if err != nil {
		return fmt.Errorf("saving note for %s: %w", n.PlayerName, err)
	}
	return nil
}

// GetNote returns a player's note, or nil when none exists.
func (s *Store) GetNote(ctx context.Context, playerName string) (*Note, error) {
	n := &Note{}
	err := s.db.QueryRowContext(ctx, `
		SELECT player_name, label_id, text, updated_at
		FROM notes WHERE player_name = ?`, playerName).Scan(
		&n.PlayerName, &n.LabelID, &n.Text, &n.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading note for %s: %w", playerName, err)
	}
	return n, nil
}

// Notes lists every note, sorted by player name.
func (s *Store) Notes(ctx context.Context) ([]Note, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT player_name, label_id, text, updated_at
		FROM notes ORDER BY player_name`)
	if err != nil {
		return nil, fmt.Errorf("listing notes: %w", err)
	}
	defer rows.Close()

	var out []Note
	for rows.Next() {
		var n Note
		if err := rows.Scan(&n.PlayerName, &n.LabelID, &n.Text, &n.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning note: %w", err)
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

// SaveLabel upserts a note label.
func (s *Store) SaveLabel(ctx context.Context, l NoteLabel) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO note_labels (label_id, color, name)
		VALUES (?, ?, ?)
		ON CONFLICT(label_id) DO UPDATE SET
			color = excluded.color,
			name = excluded.name`,
		l.ID, l.Color, l.Name)
	if err != nil {
		return fmt.Errorf("saving label %s: %w", l.ID, err)
	}
	return nil
}

// Labels lists every note label in id order.
func (s *Store) Labels(ctx context.Context) ([]NoteLabel, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT label_id, color, name FROM note_labels ORDER BY label_id`)
	if err != nil {
		return nil, fmt.Errorf("listing labels: %w", err)
	}
	defer rows.Close()

	var out []NoteLabel
	for rows.Next() {
		var l NoteLabel
		if err := rows.Scan(&l.ID, &l.Color, &l.Name); err != nil {
			return nil, fmt.Errorf("scanning label: %w", err)
		}
		out = append(out, l)
	}
	return out, rows.Err()
}
