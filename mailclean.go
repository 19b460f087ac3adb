// Package mailclean extracts usable plain text from raw email payloads and
// reduces it to a compact form suitable for LLM consumption. It imports mbox
// archives into SQLite, cleans message bodies through a staged, level-gated
// pipeline (HTML→Markdown, signature/boilerplate/quoted-reply removal,
// whitespace normalization), and analyzes corpora for recurring footer text.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, mbox/, htmltomarkdown/).
package mailclean
