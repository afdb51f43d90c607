// Package sqlite contains SQLite implementations of repository interfaces.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/courier/internal/ports/secondary"
)

// AttemptRepository implements secondary.AttemptRepository with SQLite.
type AttemptRepository struct {
	db *sql.DB
}

// NewAttemptRepository creates a new SQLite attempt repository.
func NewAttemptRepository(db *sql.DB) *AttemptRepository {
	return &AttemptRepository{db: db}
}

// Record persists one delivery attempt.
func (r *AttemptRepository) Record(ctx context.Context, attempt *secondary.AttemptRecord) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO delivery_attempts (message_id, sender_id, recipient_id, mode, outcome, error) VALUES (?, ?, ?, ?, ?, ?)",
		attempt.MessageID, attempt.SenderID, attempt.RecipientID, attempt.Mode, attempt.Outcome, attempt.Error,
	)
	if err != nil {
		return fmt.Errorf("failed to record attempt: %w", err)
	}
	return nil
}

// List retrieves attempts matching the given filters, newest first.
func (r *AttemptRepository) List(ctx context.Context, filters secondary.AttemptFilters) ([]*secondary.AttemptRecord, error) {
	query := "SELECT id, message_id, sender_id, recipient_id, mode, outcome, COALESCE(error, ''), timestamp FROM delivery_attempts WHERE 1=1"
	var args []any

	if filters.RecipientID != "" {
		query += " AND recipient_id = ?"
		args = append(args, filters.RecipientID)
	}
	if filters.Outcome != "" {
		query += " AND outcome = ?"
		args = append(args, filters.Outcome)
	}

	query += " ORDER BY id DESC"

	if filters.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filters.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list attempts: %w", err)
	}
	defer rows.Close()

	var attempts []*secondary.AttemptRecord
	for rows.Next() {
		var timestamp time.Time
		record := &secondary.AttemptRecord{}
		err := rows.Scan(&record.ID, &record.MessageID, &record.SenderID, &record.RecipientID,
			&record.Mode, &record.Outcome, &record.Error, &timestamp)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attempt: %w", err)
		}
		record.Timestamp = timestamp.Format(time.RFC3339)
		attempts = append(attempts, record)
	}
	return attempts, rows.Err()
}

// Ensure AttemptRepository implements the interface.
var _ secondary.AttemptRepository = (*AttemptRepository)(nil)
