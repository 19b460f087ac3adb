package mailclean

import (
	"fmt"
	"math"
	"strings"
)

// Level controls how aggressively a payload is cleaned. Levels are ordered
// by inclusiveness: every stage active at a lower level is also active at a
// higher one.
type Level int

// Cleaning levels, from least to most aggressive.
const (
	// LevelMinimal converts HTML to Markdown and normalizes whitespace.
	LevelMinimal Level = iota

	// LevelStandard additionally strips signatures and boilerplate.
	LevelStandard

	// LevelAggressive additionally strips quoted replies and annotates
	// attachments.
	LevelAggressive
)

// ParseLevel converts a level name to a Level.
// Returns EINVALID for unknown names.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "minimal":
		return LevelMinimal, nil
	case "standard":
		return LevelStandard, nil
	case "aggressive":
		return LevelAggressive, nil
	}
	return 0, Errorf(EINVALID, "unknown cleaning level %q", s)
}

// String returns the level name.
func (l Level) String() string {
	switch l {
	case LevelMinimal:
		return "minimal"
	case LevelStandard:
		return "standard"
	case LevelAggressive:
		return "aggressive"
	}
	return fmt.Sprintf("Level(%d)", int(l))
}

// Includes reports whether a stage requiring at least min is active at l.
func (l Level) Includes(min Level) bool {
	return l >= min
}

// Stats describes the size reduction achieved by cleaning a single payload.
// Bytes are measured as encoded string length, not rune count, so the
// numbers are consistent across scripts with variable-width encoding.
type Stats struct {
	OriginalBytes    int     `json:"original_bytes"`
	CleanBytes       int     `json:"clean_bytes"`
	ReductionPercent float64 `json:"reduction_percent"`
}

// NewStats computes Stats for the given sizes. ReductionPercent is rounded
// to two decimals and defined as 0 when originalBytes is 0.
func NewStats(originalBytes, cleanBytes int) Stats {
	var reduction float64
	if originalBytes > 0 {
		reduction = float64(originalBytes-cleanBytes) / float64(originalBytes) * 100
		reduction = math.Round(reduction*100) / 100
	}
	return Stats{
		OriginalBytes:    originalBytes,
		CleanBytes:       cleanBytes,
		ReductionPercent: reduction,
	}
}

// Result is the outcome of cleaning a single payload.
type Result struct {
	// Body is the cleaned text.
	Body string `json:"body"`

	// Stats describes the size reduction.
	Stats Stats `json:"stats"`
}

// Attachment describes an attachment associated with a message. It is
// metadata only; attachment content is never processed.
type Attachment struct {
	Name     string `json:"name"`
	Size     int64  `json:"size"`
	MIMEType string `json:"mimeType"`
}

// MessageInfo is an optional side channel of message metadata consulted by
// metadata-aware cleaning stages. A nil MessageInfo degrades those stages to
// pass-through.
type MessageInfo struct {
	Headers     map[string]string `json:"headers"`
	Attachments []Attachment      `json:"attachments"`
}

// Cleaner cleans a raw email payload into compact plain text. Cleaning never
// fails: malformed input degrades to a less thorough extraction, and an
// empty payload yields a zero-valued result.
type Cleaner interface {
	Clean(payload string, info *MessageInfo) Result
}

// Converter converts an HTML fragment to Markdown-flavored plain text.
type Converter interface {
	Convert(html string) (string, error)
}

// HTMLRewriter prepares an HTML part for conversion: inline content-id
// images become bracketed placeholders, remaining images are dropped, and
// fragment-only anchors are unwrapped to their text.
type HTMLRewriter interface {
	RewriteHTML(html string) (string, error)
}

// Extractor is the lenient fallback used when Markdown conversion fails: it
// strips tags and joins the remaining block text with newlines.
type Extractor interface {
	ExtractText(html string) (string, error)
}

// ReplyUnwrapper removes quoted reply and forwarded-message chains from
// plain text, returning only the new content above the quote.
// Returns ENOTFOUND when the text contains no recognizable quoting, which
// signals the caller to select its heuristic fallback.
type ReplyUnwrapper interface {
	Unwrap(text string) (string, error)
}
