// Package fs provides file-based export of cleaned messages.
package fs

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fwojciec/mailclean"
)

// IDToPath converts a Message-ID to a safe relative file path.
// Example: <abc.123@example.com> → abc.123_example.com.md
func IDToPath(id string) string {
	id = strings.Trim(id, "<> ")
	if id == "" {
		id = "message"
	}

	var sb strings.Builder
	for _, r := range id {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9',
			r == '.', r == '-', r == '_':
			sb.WriteRune(r)
		default:
			sb.WriteRune('_')
		}
	}
	return sb.String() + ".md"
}

// FormatMessage formats a cleaned message with YAML frontmatter.
func FormatMessage(msg *mailclean.CleanedMessage) string {
	var b strings.Builder
	b.WriteString("---\n")
	b.WriteString("message-id: ")
	b.WriteString(msg.ID)
	b.WriteString("\nsubject: ")
	b.WriteString(msg.Subject)
	b.WriteString("\nfrom: ")
	b.WriteString(msg.Sender)
	if !msg.Date.IsZero() {
		b.WriteString("\ndate: ")
		b.WriteString(msg.Date.UTC().Format(time.RFC3339))
	}
	b.WriteString("\n---\n\n")
	b.WriteString(msg.BodyClean)
	return b.String()
}

// Ensure Writer implements mailclean.CleanedWriter at compile time.
var _ mailclean.CleanedWriter = (*Writer)(nil)

// Writer writes cleaned messages as markdown files to a directory.
type Writer struct {
	baseDir string
}

// NewWriter creates a new Writer that writes to the given base directory.
func NewWriter(baseDir string) *Writer {
	return &Writer{baseDir: baseDir}
}

// WriteCleaned writes a cleaned message to disk as a markdown file.
func (w *Writer) WriteCleaned(ctx context.Context, msg *mailclean.CleanedMessage) error {
	if err := msg.Validate(); err != nil {
		return err
	}

	fullPath := filepath.Join(w.baseDir, IDToPath(msg.ID))

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return err
	}

	return os.WriteFile(fullPath, []byte(FormatMessage(msg)), 0644)
}
