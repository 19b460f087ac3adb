package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/fwojciec/mailclean"
	"github.com/fwojciec/mailclean/clean"
	mcslog "github.com/fwojciec/mailclean/slog"
	"github.com/fwojciec/mailclean/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger

	Rewriter  mailclean.HTMLRewriter
	Converter mailclean.Converter
	Extractor mailclean.Extractor
	Unwrapper mailclean.ReplyUnwrapper

	// OpenDB opens a SQLite database at path. Tests may override it.
	OpenDB func(path string) (*sqlite.DB, error)
}

// newCleaner assembles the cleaning pipeline for the given level.
func (d *Dependencies) newCleaner(level mailclean.Level) mailclean.Cleaner {
	c := &clean.Cleaner{
		Level:     level,
		Rewriter:  d.Rewriter,
		Converter: d.Converter,
		Extractor: d.Extractor,
		Unwrapper: d.Unwrapper,
	}
	return mcslog.NewLoggingCleaner(c, d.Logger)
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool `short:"v" help:"Enable debug logging"`

	Import  ImportCmd  `cmd:"" help:"Import messages from an mbox file into a database"`
	Clean   CleanCmd   `cmd:"" help:"Create a cleaned copy of a database optimized for LLM consumption"`
	Analyze AnalyzeCmd `cmd:"" help:"Detect recurring signature/boilerplate footers in a database"`
	Search  SearchCmd  `cmd:"" help:"Full-text search over stored messages"`
	Export  ExportCmd  `cmd:"" help:"Clean messages and write them as markdown files"`
}

// ImportCmd is the "import" subcommand.
type ImportCmd struct {
	DBPath   string `arg:"" help:"Destination database path"`
	MboxPath string `arg:"" type:"existingfile" help:"Path to the mbox file"`
}

// CleanCmd is the "clean" subcommand.
type CleanCmd struct {
	SourceDB          string `arg:"" type:"existingfile" help:"Source database path"`
	DestDB            string `arg:"" help:"Destination database path"`
	Level             string `default:"standard" enum:"minimal,standard,aggressive" help:"Cleaning level: minimal (HTML→MD), standard (+signatures), aggressive (+quoted replies)"`
	AnalyzeSignatures bool   `help:"Analyze corpus for recurring signatures before cleaning"`
}

// AnalyzeCmd is the "analyze" subcommand.
type AnalyzeCmd struct {
	DBPath         string `arg:"" env:"MAILCLEAN_DB" type:"existingfile" help:"Database path"`
	MinOccurrences int    `default:"100" help:"Minimum occurrences for a footer to count as boilerplate"`
	Show           bool   `help:"Print the detected footers"`
}

// SearchCmd is the "search" subcommand.
type SearchCmd struct {
	DBPath string `arg:"" env:"MAILCLEAN_DB" type:"existingfile" help:"Database path"`
	Query  string `arg:"" help:"FTS5 query"`
	Limit  int    `short:"n" default:"10" help:"Maximum number of results"`
	Clean  bool   `help:"Search cleaned bodies instead of raw payloads"`
}

// ExportCmd is the "export" subcommand.
type ExportCmd struct {
	DBPath string `arg:"" env:"MAILCLEAN_DB" type:"existingfile" help:"Source database path"`
	Dir    string `arg:"" help:"Output directory"`
	Level  string `default:"standard" enum:"minimal,standard,aggressive" help:"Cleaning level"`
}
