package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// FileStatus classifies a processed hand-history file.
type FileStatus string

const (
	// FileProcessed means at least one hand was parsed and stored.
	FileProcessed FileStatus = "processed"
	// FileNoHands means the file held no parseable hands yet; it stays
	// eligible for reprocessing since the site appends to live files.
	FileNoHands FileStatus = "no_hands"
	// FileError means reading or parsing failed outright.
	FileError FileStatus = "error"
)

// FileRecord is one row of the processed-file ledger.
type FileRecord struct {
	Path        string     `json:"path"`
	Status      FileStatus `json:"status"`
	HandsCount  int        `json:"hands_count"`
	Error       string     `json:"error,omitempty"`
	ProcessedAt time.Time  `json:"processed_at"`
}

// MarkFile upserts the ledger entry for a file.
func (s *Store) MarkFile(ctx context.Context, path string, status FileStatus, handsCount int, errMsg string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO hand_files (path, status, hands_count, error, processed_at)
		VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(path) DO UPDATE SET
			status = excluded.status,
			hands_count = excluded.hands_count,
			error = excluded.error,
			processed_at = CURRENT_TIMESTAMP`,
		path, string(status), handsCount, errMsg)
	if err != nil {
		return fmt.Errorf("marking file %s: %w", path, err)
	}
	return nil
}

// FileState returns the ledger entry for a file, or nil if never seen.
func (s *Store) FileState(ctx context.Context, path string) (*FileRecord, error) {
	fr := &FileRecord{}
	var status string
	err := s.db.QueryRowContext(ctx, `
		SELECT path, status, hands_count, error, processed_at
		FROM hand_files WHERE path = ?`, path).Scan(
		&fr.Path, &status, &fr.HandsCount, &fr.Error, &fr.ProcessedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading file state %s: %w", path, err)
	}
	fr.Status = FileStatus(status)
	return fr, nil
}

// ShouldProcess reports whether a file needs (re)processing. Files that
// already yielded hands are final; empty or failed files are retried.
func (s *Store) ShouldProcess(ctx context.Context, path string) (bool, error) {
	fr, err := s.FileState(ctx, path)
	if err != nil {
		return false, err
	}
	if fr == nil {
		return true, nil
	}
	return fr.Status != FileProcessed, nil
}

// Files lists every ledger entry, most recently processed first.
func (s *Store) Files(ctx context.Context) ([]FileRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT path, status, hands_count, error, processed_at
		FROM hand_files ORDER BY processed_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("listing files: %w", err)
	}
	defer rows.Close()

	var out []FileRecord
	for rows.Next() {
		var fr FileRecord
		var status string
		if err := rows.Scan(&fr.Path, &status, &fr.HandsCount, &fr.Error, &fr.ProcessedAt); err != nil {
			return nil, fmt.Errorf("scanning file record: %w", err)
		}
		fr.Status = FileStatus(status)
		out = append(out, fr)
	}
	return out, rows.Err()
}
