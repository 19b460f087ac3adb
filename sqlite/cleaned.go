package sqlite

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/fwojciec/mailclean"
)

// Compile-time interface verification.
var _ mailclean.CleanedService = (*CleanedService)(nil)

// CleanedService implements mailclean.CleanedService using SQLite. The
// payload column preserves the raw body alongside the cleaned one.
type CleanedService struct {
	db *DB
}

// NewCleanedService creates a new CleanedService.
func NewCleanedService(db *DB) *CleanedService {
	return &CleanedService{db: db}
}

// UpsertCleaned inserts or replaces cleaned messages keyed by ID in a single
// transaction.
func (s *CleanedService) UpsertCleaned(ctx context.Context, msgs []*mailclean.CleanedMessage) error {
	if len(msgs) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO messages (id, subject, sender, recipients, date, headers, attachments,
			payload, body_clean, cleaning_stats, imported_at, cleaned_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			subject = excluded.subject,
			sender = excluded.sender,
			recipients = excluded.recipients,
			date = excluded.date,
			headers = excluded.headers,
			attachments = excluded.attachments,
			payload = excluded.payload,
			body_clean = excluded.body_clean,
			cleaning_stats = excluded.cleaning_stats,
			imported_at = excluded.imported_at,
			cleaned_at = excluded.cleaned_at
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, msg := range msgs {
		if err := msg.Validate(); err != nil {
			return err
		}

		cleanedAt := msg.CleanedAt
		if cleanedAt.IsZero() {
			cleanedAt = time.Now().UTC()
		}

		headers, attachments, err := marshalMetadata(&msg.Message)
		if err != nil {
			return err
		}

		stats, err := json.Marshal(msg.Stats)
		if err != nil {
			return fmt.Errorf("marshal cleaning stats: %w", err)
		}

		if _, err := stmt.ExecContext(ctx, msg.ID, msg.Subject, msg.Sender, msg.Recipients,
			formatDate(msg.Date), headers, attachments, msg.Payload, msg.BodyClean,
			string(stats), formatDate(msg.ImportedAt), cleanedAt.Format(time.RFC3339)); err != nil {
			return fmt.Errorf("upsert cleaned message %q: %w", msg.ID, err)
		}
	}

	return tx.Commit()
}

// SearchCleaned runs a full-text query over subject and cleaned body.
func (s *CleanedService) SearchCleaned(ctx context.Context, query string, limit int) ([]*mailclean.CleanedMessage, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT m.id, m.subject, m.sender, m.recipients, m.date, m.headers, m.attachments,
			m.payload, m.body_clean, m.cleaning_stats, m.imported_at, m.cleaned_at
		FROM messages_clean_fts f
		JOIN messages m ON m.rowid = f.rowid
		WHERE messages_clean_fts MATCH ?
		ORDER BY rank
		LIMIT ?
	`, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var msgs []*mailclean.CleanedMessage
	for rows.Next() {
		var msg mailclean.CleanedMessage
		var date, headers, attachments, stats, importedAt, cleanedAt string

		if err := rows.Scan(&msg.ID, &msg.Subject, &msg.Sender, &msg.Recipients,
			&date, &headers, &attachments, &msg.Payload, &msg.BodyClean,
			&stats, &importedAt, &cleanedAt); err != nil {
			return nil, err
		}

		if err := unmarshalMetadata(&msg.Message, headers, attachments); err != nil {
			return nil, err
		}
		if stats != "" {
			if err := json.Unmarshal([]byte(stats), &msg.Stats); err != nil {
				return nil, fmt.Errorf("unmarshal cleaning stats: %w", err)
			}
		}
		msg.Date = parseDate(date)
		msg.ImportedAt = parseDate(importedAt)
		msg.CleanedAt = parseDate(cleanedAt)

		msgs = append(msgs, &msg)
	}
	return msgs, rows.Err()
}
