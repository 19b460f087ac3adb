package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/mailclean/goquery"
	"github.com/fwojciec/mailclean/htmltomarkdown"
	"github.com/fwojciec/mailclean/quote"
	"github.com/fwojciec/mailclean/sqlite"
)

// batchSize is how many messages are read, cleaned, and upserted per chunk.
const batchSize = 1000

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct{}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("mailclean"),
		kong.Description("Import, clean, and analyze email archives for LLM consumption."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'mailclean --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	logLevel := slog.LevelInfo
	if cli.Verbose {
		logLevel = slog.LevelDebug
	}
	deps.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: logLevel}))

	// Wire the cleaning pipeline components.
	deps.Rewriter = goquery.NewRewriter()
	deps.Converter = htmltomarkdown.NewConverter()
	deps.Extractor = goquery.NewExtractor()
	deps.Unwrapper = quote.NewUnwrapper()

	deps.OpenDB = func(path string) (*sqlite.DB, error) {
		db := sqlite.NewDB(path)
		if err := db.Open(); err != nil {
			return nil, fmt.Errorf("failed to open database at %q: %w", path, err)
		}
		return db, nil
	}

	return kongCtx.Run(deps)
}
