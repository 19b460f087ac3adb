// Package quote detects quoted reply and forwarded-message chains in plain
// text email bodies and returns only the new content above them.
package quote

import (
	"regexp"
	"strings"

	"github.com/fwojciec/mailclean"
)

// Ensure Unwrapper implements mailclean.ReplyUnwrapper at compile time.
var _ mailclean.ReplyUnwrapper = (*Unwrapper)(nil)

// Unwrapper recognizes common reply and forward conventions: ">" line
// prefixes, "On <date>, <person> wrote:" attributions, Original/Forwarded
// Message dividers, Apple Mail forward markers, and Outlook-style header
// blocks.
type Unwrapper struct{}

// NewUnwrapper creates a new Unwrapper.
func NewUnwrapper() *Unwrapper {
	return &Unwrapper{}
}

var (
	quotePrefixRe = regexp.MustCompile(`^\s*>`)
	attributionRe = regexp.MustCompile(`(?i)^on\b.{0,500}\bwrote:\s*$`)
	dividerRe     = regexp.MustCompile(`(?i)^-+\s*(original|forwarded) message\s*-+\s*$`)
	forwardRe     = regexp.MustCompile(`(?i)^begin forwarded message:\s*$`)
	fromLineRe    = regexp.MustCompile(`(?i)^from:\s+\S`)
	headerLineRe  = regexp.MustCompile(`(?i)^(sent|to|cc|subject|date):\s`)
)

// Unwrap returns the text above the first quoted or forwarded section.
// Returns ENOTFOUND when no quoting is recognized, signaling the caller to
// use its own heuristics.
func (u *Unwrapper) Unwrap(text string) (string, error) {
	lines := strings.Split(text, "\n")

	boundary := -1
	for i, line := range lines {
		if quotePrefixRe.MatchString(line) ||
			attributionRe.MatchString(line) ||
			dividerRe.MatchString(line) ||
			forwardRe.MatchString(line) ||
			isHeaderBlockStart(lines, i) {
			boundary = i
			break
		}
	}

	if boundary < 0 {
		return "", mailclean.Errorf(mailclean.ENOTFOUND, "no quoted content found")
	}

	return strings.Join(lines[:boundary], "\n"), nil
}

// isHeaderBlockStart reports whether line i opens an Outlook-style quoted
// header block: a "From:" line followed within the next three lines by
// another message header.
func isHeaderBlockStart(lines []string, i int) bool {
	if !fromLineRe.MatchString(lines[i]) {
		return false
	}
	for j := i + 1; j <= i+3 && j < len(lines); j++ {
		if headerLineRe.MatchString(lines[j]) {
			return true
		}
	}
	return false
}
