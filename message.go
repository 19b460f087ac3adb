package mailclean

import (
	"context"
	"time"
)

// PartSeparator is the sentinel that delimits decoded body parts when a
// multi-part message is recombined into a single payload string.
const PartSeparator = "\n\n---PART---\n\n"

// Message represents a stored email message: decoded headers plus the raw
// multi-part payload (text parts joined by PartSeparator).
type Message struct {
	ID         string            `json:"id"`
	Subject    string            `json:"subject"`
	Sender     string            `json:"sender"`
	Recipients string            `json:"recipients"`
	Date       time.Time         `json:"date"`
	Headers    map[string]string `json:"headers"`
	Payload    string            `json:"payload"`

	// Attachments carries descriptors only; content is never stored.
	Attachments []Attachment `json:"attachments,omitempty"`

	ImportedAt time.Time `json:"importedAt"`
}

// Validate returns an error if the message contains invalid fields.
func (m *Message) Validate() error {
	if m.ID == "" {
		return Errorf(EINVALID, "message ID required")
	}
	return nil
}

// Info returns the metadata side channel for metadata-aware cleaning stages.
func (m *Message) Info() *MessageInfo {
	return &MessageInfo{
		Headers:     m.Headers,
		Attachments: m.Attachments,
	}
}

// CleanedMessage pairs a message with its cleaned body and cleaning stats.
// BodyRaw preserves the original payload alongside the cleaned text.
type CleanedMessage struct {
	Message
	BodyClean string    `json:"bodyClean"`
	Stats     Stats     `json:"stats"`
	CleanedAt time.Time `json:"cleanedAt"`
}

// MessageFilter selects a page of stored messages.
type MessageFilter struct {
	ID *string `json:"id"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// MessageService stores and retrieves raw imported messages.
type MessageService interface {
	// UpsertMessages inserts or replaces messages keyed by ID.
	UpsertMessages(ctx context.Context, msgs []*Message) error

	// FindMessages retrieves messages matching the filter, ordered by ID.
	FindMessages(ctx context.Context, filter MessageFilter) ([]*Message, error)

	// CountMessages returns the total number of stored messages.
	CountMessages(ctx context.Context) (int, error)

	// SearchMessages runs a full-text query over subject and payload.
	SearchMessages(ctx context.Context, query string, limit int) ([]*Message, error)
}

// CleanedService stores cleaned messages.
type CleanedService interface {
	// UpsertCleaned inserts or replaces cleaned messages keyed by ID.
	UpsertCleaned(ctx context.Context, msgs []*CleanedMessage) error

	// SearchCleaned runs a full-text query over subject and cleaned body.
	SearchCleaned(ctx context.Context, query string, limit int) ([]*CleanedMessage, error)
}

// CleanedWriter writes cleaned messages to some destination (e.g. files).
type CleanedWriter interface {
	WriteCleaned(ctx context.Context, msg *CleanedMessage) error
}
