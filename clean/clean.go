// Package clean implements the level-gated cleaning pipeline that reduces
// raw email payloads to compact plain text.
package clean

import (
	"regexp"
	"strings"

	"github.com/fwojciec/mailclean"
)

// Compile-time interface verification.
var _ mailclean.Cleaner = (*Cleaner)(nil)

// Cleaner runs a payload through a fixed, level-determined sequence of
// stages. It is a pure transform with no shared mutable state and is safe to
// invoke concurrently across messages.
type Cleaner struct {
	// Level controls which stages run. Defaults to LevelMinimal.
	Level mailclean.Level

	// Rewriter prepares HTML parts before conversion.
	Rewriter mailclean.HTMLRewriter

	// Converter converts HTML parts to Markdown-flavored text.
	Converter mailclean.Converter

	// Extractor is the lenient fallback when conversion fails.
	Extractor mailclean.Extractor

	// Unwrapper removes quoted reply chains at the aggressive level.
	// When nil, or when it finds no quoting, heuristics are used instead.
	Unwrapper mailclean.ReplyUnwrapper
}

// Clean cleans a single payload. It never fails: extraction errors degrade
// to a fallback strategy, and an empty payload yields zero-valued stats.
func (c *Cleaner) Clean(payload string, info *mailclean.MessageInfo) mailclean.Result {
	originalBytes := len(payload)

	text := c.extractText(payload)
	text = MinimalNormalize(text)

	if c.Level.Includes(mailclean.LevelStandard) {
		text = StripSignatures(text)
		text = StripBoilerplate(text)
	}

	if c.Level.Includes(mailclean.LevelAggressive) {
		text = c.stripQuotedReplies(text)
		text = annotateAttachments(text, info)
	}

	text = NormalizeWhitespace(text)

	return mailclean.Result{
		Body:  text,
		Stats: mailclean.NewStats(originalBytes, len(text)),
	}
}

// SplitParts splits a raw payload into body parts on the part sentinel,
// trimming each part and discarding empty ones. If nothing survives, the
// original payload is returned as a single part so no data is lost.
func SplitParts(payload string) []string {
	raw := strings.Split(payload, mailclean.PartSeparator)
	parts := make([]string, 0, len(raw))
	for _, p := range raw {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		parts = append(parts, p)
	}
	if len(parts) == 0 && payload != "" {
		return []string{payload}
	}
	return parts
}

// looksLikeHTML sniffs for HTML markers so plain payloads bypass conversion
// entirely.
func looksLikeHTML(payload string) bool {
	lower := strings.ToLower(payload)
	return strings.Contains(lower, "<html") ||
		strings.Contains(lower, "<div") ||
		strings.Contains(lower, "<p>")
}

// extractText converts HTML parts to plain text and passes plain parts
// through verbatim. Parts are rejoined with a blank-line separator.
func (c *Cleaner) extractText(payload string) string {
	if !looksLikeHTML(payload) {
		return payload
	}

	parts := SplitParts(payload)
	cleaned := make([]string, 0, len(parts))
	for _, part := range parts {
		if strings.Contains(part, "<") && strings.Contains(part, ">") {
			cleaned = append(cleaned, c.convertPart(part))
		} else {
			cleaned = append(cleaned, part)
		}
	}

	if len(cleaned) == 0 {
		return payload
	}
	return strings.Join(cleaned, "\n\n")
}

// convertPart converts a single HTML part. Selection between the primary
// conversion and the fallback extraction is explicit: whichever succeeds
// first wins, and the raw part is the last resort.
func (c *Cleaner) convertPart(part string) string {
	rewritten := part
	if c.Rewriter != nil {
		if out, err := c.Rewriter.RewriteHTML(part); err == nil {
			rewritten = out
		}
	}
	if c.Converter != nil {
		if md, err := c.Converter.Convert(rewritten); err == nil {
			return md
		}
	}
	if c.Extractor != nil {
		if text, err := c.Extractor.ExtractText(rewritten); err == nil {
			return text
		}
	}
	return part
}

var (
	excessNewlinesRe = regexp.MustCompile(`\n{4,}`)
	mailtoRe         = regexp.MustCompile(`<mailto:([^>]+)>`)
	telRe            = regexp.MustCompile(`<tel:([^>]+)>`)
)

// MinimalNormalize collapses runs of 4+ newlines to two blank lines and
// unwraps bracketed mailto:/tel: link artifacts to their bare address.
// Applied at every level.
func MinimalNormalize(text string) string {
	text = excessNewlinesRe.ReplaceAllString(text, "\n\n\n")
	text = mailtoRe.ReplaceAllString(text, "$1")
	text = telRe.ReplaceAllString(text, "$1")
	return text
}

// signatureMarkers are applied in order against the progressively shortened
// text. The first is the conventional "-- " delimiter; the rest are mobile
// client auto-signatures anchored to the end of the text.
var signatureMarkers = []*regexp.Regexp{
	regexp.MustCompile(`\n-- \n`),
	regexp.MustCompile(`(?i)\nSent from my iPhone\s*$`),
	regexp.MustCompile(`(?i)\nSent from my iPad\s*$`),
	regexp.MustCompile(`(?i)\nGet Outlook for iOS\s*$`),
	regexp.MustCompile(`(?i)\nGet Outlook for Android\s*$`),
}

// StripSignatures removes trailing signature blocks: everything from the
// first match of each marker onward is discarded.
func StripSignatures(text string) string {
	for _, re := range signatureMarkers {
		if loc := re.FindStringIndex(text); loc != nil {
			text = text[:loc[0]]
		}
	}
	return text
}

const (
	// boilerplateMarker opens the fixed disclaimer block.
	boilerplateMarker = "Company CSR Policy:"

	// boilerplateWindow is the nominal span of the disclaimer in bytes.
	boilerplateWindow = 600
)

// sectionEnds shorten the deletion span to the nearest section boundary
// found between the marker and the nominal end.
var sectionEnds = []string{"\n\nFrom:", "\n\n---PART---", "\n\n\n\n"}

// StripBoilerplate deletes the disclaimer block as an explicit bounded span:
// start index, nominal end, earliest boundary marker within range. Text
// before and after the span is retained.
func StripBoilerplate(text string) string {
	start := strings.Index(text, boilerplateMarker)
	if start < 0 {
		return text
	}

	nominalEnd := start + boilerplateWindow
	end := nominalEnd
	if end > len(text) {
		end = len(text)
	}

	for _, marker := range sectionEnds {
		pos := strings.Index(text[start:], marker)
		if pos < 0 {
			continue
		}
		pos += start
		if pos > start && pos < nominalEnd {
			end = pos
			break
		}
	}

	return text[:start] + text[end:]
}

// stripQuotedReplies removes quoted/forwarded reply chains. The unwrapper is
// the primary path; when it is absent or finds no quoting, the line-prefix
// and divider-block heuristics run instead.
func (c *Cleaner) stripQuotedReplies(text string) string {
	if c.Unwrapper != nil {
		if top, err := c.Unwrapper.Unwrap(text); err == nil {
			return strings.TrimSpace(top)
		}
	}
	return stripQuotedHeuristic(text)
}

var (
	originalMessageRe  = regexp.MustCompile(`(?i)-+\s*Original Message\s*-+`)
	forwardedMessageRe = regexp.MustCompile(`(?i)-+\s*Forwarded Message\s*-+`)
)

func stripQuotedHeuristic(text string) string {
	lines := strings.Split(text, "\n")
	kept := make([]string, 0, len(lines))
	for _, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), ">") {
			continue
		}
		kept = append(kept, line)
	}
	text = strings.Join(kept, "\n")

	text = stripDividerBlocks(text, originalMessageRe)
	text = stripDividerBlocks(text, forwardedMessageRe)
	return text
}

// stripDividerBlocks removes each divider and everything after it up to the
// next blank-line boundary or end of text. RE2 has no lookahead, so the span
// end is located by explicit scan.
func stripDividerBlocks(text string, re *regexp.Regexp) string {
	for {
		loc := re.FindStringIndex(text)
		if loc == nil {
			return text
		}

		start := loc[0]
		for start > 0 && text[start-1] == '\n' {
			start--
		}

		end := len(text)
		if i := strings.Index(text[loc[1]:], "\n\n"); i >= 0 {
			end = loc[1] + i
		}

		text = text[:start] + text[end:]
	}
}

// annotateAttachments is the seam where attachment descriptors from the
// metadata side channel would be interleaved into the text, e.g.
// "[Attachment: invoice.pdf, 245KB, application/pdf]". Currently a
// pass-through; absent metadata degrades to the same behavior.
func annotateAttachments(text string, info *mailclean.MessageInfo) string {
	if info == nil || len(info.Attachments) == 0 {
		return text
	}
	return text
}

var (
	horizontalSpaceRe = regexp.MustCompile(`[ \t]+`)
	newlineRunRe      = regexp.MustCompile(`\n{3,}`)
)

// NormalizeWhitespace is the final pass: collapses horizontal whitespace
// runs to a single space, caps newline runs at two, strips trailing
// whitespace from every line, and trims the document edges. Running it on
// its own output produces no further change.
func NormalizeWhitespace(text string) string {
	text = horizontalSpaceRe.ReplaceAllString(text, " ")
	text = newlineRunRe.ReplaceAllString(text, "\n\n")

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t\r")
	}

	return strings.TrimSpace(strings.Join(lines, "\n"))
}
