package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/fwojciec/mailclean"
)

// Compile-time interface verification.
var _ mailclean.MessageService = (*MessageService)(nil)

// MessageService implements mailclean.MessageService using SQLite.
type MessageService struct {
	db *DB
}

// NewMessageService creates a new MessageService.
func NewMessageService(db *DB) *MessageService {
	return &MessageService{db: db}
}

// UpsertMessages inserts or replaces messages keyed by ID in a single
// transaction.
func (s *MessageService) UpsertMessages(ctx context.Context, msgs []*mailclean.Message) error {
	if len(msgs) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO messages (id, subject, sender, recipients, date, headers, attachments, payload, imported_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			subject = excluded.subject,
			sender = excluded.sender,
			recipients = excluded.recipients,
			date = excluded.date,
			headers = excluded.headers,
			attachments = excluded.attachments,
			payload = excluded.payload,
			imported_at = excluded.imported_at
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, msg := range msgs {
		if err := msg.Validate(); err != nil {
			return err
		}

		importedAt := msg.ImportedAt
		if importedAt.IsZero() {
			importedAt = time.Now().UTC()
		}

		headers, attachments, err := marshalMetadata(msg)
		if err != nil {
			return err
		}

		if _, err := stmt.ExecContext(ctx, msg.ID, msg.Subject, msg.Sender, msg.Recipients,
			formatDate(msg.Date), headers, attachments, msg.Payload,
			importedAt.Format(time.RFC3339)); err != nil {
			return fmt.Errorf("upsert message %q: %w", msg.ID, err)
		}
	}

	return tx.Commit()
}

// FindMessages retrieves messages matching the filter, ordered by ID.
func (s *MessageService) FindMessages(ctx context.Context, filter mailclean.MessageFilter) ([]*mailclean.Message, error) {
	query := `
		SELECT id, subject, sender, recipients, date, headers, attachments, payload, imported_at
		FROM messages
	`
	var args []any
	if filter.ID != nil {
		query += " WHERE id = ?"
		args = append(args, *filter.ID)
	}
	query += " ORDER BY id"
	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}
	if filter.Offset > 0 {
		query += " OFFSET ?"
		args = append(args, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanMessages(rows)
}

// CountMessages returns the total number of stored messages.
func (s *MessageService) CountMessages(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM messages").Scan(&n)
	return n, err
}

// SearchMessages runs a full-text query over subject and payload.
func (s *MessageService) SearchMessages(ctx context.Context, query string, limit int) ([]*mailclean.Message, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT m.id, m.subject, m.sender, m.recipients, m.date, m.headers, m.attachments, m.payload, m.imported_at
		FROM messages_fts f
		JOIN messages m ON m.rowid = f.rowid
		WHERE messages_fts MATCH ?
		ORDER BY rank
		LIMIT ?
	`, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanMessages(rows)
}

// scanMessages reads message rows from the common column set.
func scanMessages(rows *sql.Rows) ([]*mailclean.Message, error) {
	var msgs []*mailclean.Message
	for rows.Next() {
		var msg mailclean.Message
		var date, headers, attachments, importedAt string

		if err := rows.Scan(&msg.ID, &msg.Subject, &msg.Sender, &msg.Recipients,
			&date, &headers, &attachments, &msg.Payload, &importedAt); err != nil {
			return nil, err
		}

		if err := unmarshalMetadata(&msg, headers, attachments); err != nil {
			return nil, err
		}
		msg.Date = parseDate(date)
		msg.ImportedAt = parseDate(importedAt)

		msgs = append(msgs, &msg)
	}
	return msgs, rows.Err()
}

// marshalMetadata encodes the headers map and attachment descriptors as JSON.
func marshalMetadata(msg *mailclean.Message) (headers, attachments string, err error) {
	h := msg.Headers
	if h == nil {
		h = map[string]string{}
	}
	hb, err := json.Marshal(h)
	if err != nil {
		return "", "", fmt.Errorf("marshal headers: %w", err)
	}

	a := msg.Attachments
	if a == nil {
		a = []mailclean.Attachment{}
	}
	ab, err := json.Marshal(a)
	if err != nil {
		return "", "", fmt.Errorf("marshal attachments: %w", err)
	}

	return string(hb), string(ab), nil
}

func unmarshalMetadata(msg *mailclean.Message, headers, attachments string) error {
	if headers != "" {
		if err := json.Unmarshal([]byte(headers), &msg.Headers); err != nil {
			return fmt.Errorf("unmarshal headers: %w", err)
		}
	}
	if attachments != "" {
		if err := json.Unmarshal([]byte(attachments), &msg.Attachments); err != nil {
			return fmt.Errorf("unmarshal attachments: %w", err)
		}
	}
	return nil
}

// formatDate renders a time as RFC3339, or empty for the zero value.
func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

// parseDate parses an RFC3339 timestamp, returning the zero value for empty
// or malformed input. Message dates come from untrusted mail headers, so
// malformed values degrade rather than fail the read.
func parseDate(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
