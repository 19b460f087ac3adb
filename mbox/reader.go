// Package mbox reads messages from mbox archives, decoding MIME headers and
// recombining text parts into a single payload string.
package mbox

import (
	"context"
	"errors"
	"io"
	"os"
	"strings"

	mboxlib "github.com/emersion/go-mbox"
	_ "github.com/emersion/go-message/charset"
	"github.com/emersion/go-message/mail"
	"github.com/fwojciec/mailclean"
	"github.com/google/uuid"
)

// Reader reads messages from an mbox file.
type Reader struct {
	path string
}

// NewReader creates a Reader for the given mbox file.
func NewReader(path string) *Reader {
	return &Reader{path: path}
}

// Read iterates the mbox, calling fn for each decoded message. Messages that
// cannot be parsed are skipped and counted rather than failing the run; a
// fn error stops iteration.
func (r *Reader) Read(ctx context.Context, fn func(*mailclean.Message) error) (skipped int, err error) {
	file, err := os.Open(r.path)
	if err != nil {
		return 0, err
	}
	defer file.Close()

	return readAll(ctx, mboxlib.NewReader(file), fn)
}

// Count returns the number of messages in the mbox file.
func (r *Reader) Count() (int, error) {
	file, err := os.Open(r.path)
	if err != nil {
		return 0, err
	}
	defer file.Close()

	reader := mboxlib.NewReader(file)
	count := 0
	for {
		msg, err := reader.NextMessage()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return count, nil
			}
			return 0, err
		}
		if _, err := io.Copy(io.Discard, msg); err != nil {
			return 0, err
		}
		count++
	}
}

func readAll(ctx context.Context, reader *mboxlib.Reader, fn func(*mailclean.Message) error) (skipped int, err error) {
	for {
		if err := ctx.Err(); err != nil {
			return skipped, err
		}

		msgReader, err := reader.NextMessage()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return skipped, nil
			}
			return skipped, err
		}

		msg, err := parseMessage(msgReader)
		if err != nil {
			skipped++
			continue
		}

		if err := fn(msg); err != nil {
			return skipped, err
		}
	}
}

// parseMessage decodes one RFC 5322 message: RFC 2047 headers, charset
// handling for each text part, attachment descriptors without content.
// Text parts are joined with the part sentinel.
func parseMessage(raw io.Reader) (*mailclean.Message, error) {
	mr, err := mail.CreateReader(raw)
	if err != nil {
		return nil, err
	}

	msg := &mailclean.Message{Headers: make(map[string]string)}

	// Keep every header, lowercased; duplicates are joined with newlines.
	for f := mr.Header.Fields(); f.Next(); {
		key := strings.ToLower(f.Key())
		text, err := f.Text()
		if err != nil {
			text = f.Value()
		}
		if existing, ok := msg.Headers[key]; ok {
			msg.Headers[key] = existing + "\n" + text
		} else {
			msg.Headers[key] = text
		}
	}

	if id, err := mr.Header.MessageID(); err == nil && id != "" {
		msg.ID = id
	} else {
		msg.ID = uuid.New().String()
	}
	msg.Subject, _ = mr.Header.Subject()
	msg.Sender, _ = mr.Header.Text("From")
	msg.Recipients, _ = mr.Header.Text("To")
	if date, err := mr.Header.Date(); err == nil {
		msg.Date = date
	}

	var parts []string
	for {
		p, err := mr.NextPart()
		if err != nil {
			// io.EOF ends the message; anything else means truncated
			// MIME, in which case we keep what we have.
			break
		}

		switch h := p.Header.(type) {
		case *mail.InlineHeader:
			ct, _, _ := h.ContentType()
			if ct != "text/plain" && ct != "text/html" {
				continue
			}
			b, err := io.ReadAll(p.Body)
			if err == nil && len(b) > 0 {
				parts = append(parts, string(b))
			}
		case *mail.AttachmentHeader:
			name, _ := h.Filename()
			ct, _, _ := h.ContentType()
			size, _ := io.Copy(io.Discard, p.Body)
			msg.Attachments = append(msg.Attachments, mailclean.Attachment{
				Name:     name,
				Size:     size,
				MIMEType: ct,
			})
		}
	}
	msg.Payload = strings.Join(parts, mailclean.PartSeparator)

	return msg, nil
}
