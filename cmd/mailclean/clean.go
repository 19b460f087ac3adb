package main

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/fwojciec/mailclean"
	"github.com/fwojciec/mailclean/clean"
	"github.com/fwojciec/mailclean/sqlite"
)

// Run executes the clean command.
func (c *CleanCmd) Run(deps *Dependencies) error {
	level, err := mailclean.ParseLevel(c.Level)
	if err != nil {
		return err
	}

	if filepath.Clean(c.SourceDB) == filepath.Clean(c.DestDB) {
		return mailclean.Errorf(mailclean.ECONFLICT,
			"source and destination databases must differ, both are %q", c.SourceDB)
	}

	source, err := deps.OpenDB(c.SourceDB)
	if err != nil {
		return err
	}
	defer source.Close()

	dest, err := deps.OpenDB(c.DestDB)
	if err != nil {
		return err
	}
	defer dest.Close()

	messages := sqlite.NewMessageService(source)
	cleanedStore := sqlite.NewCleanedService(dest)

	total, err := messages.CountMessages(deps.Ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(deps.Stdout, "Cleaning %d messages at level %s: %s → %s\n",
		total, level, c.SourceDB, c.DestDB)

	if c.AnalyzeSignatures {
		threshold := 100
		if total/100 > threshold {
			threshold = total / 100
		}
		payloads, err := collectPayloads(deps, messages)
		if err != nil {
			return err
		}
		corpus := clean.AnalyzeCorpus(payloads, threshold)
		fmt.Fprintf(deps.Stdout, "Found %d common signature patterns\n", corpus.Size())
	}

	cleaner := deps.newCleaner(level)

	var stats mailclean.BatchStats
	for offset := 0; ; offset += batchSize {
		msgs, err := messages.FindMessages(deps.Ctx, mailclean.MessageFilter{
			Offset: offset,
			Limit:  batchSize,
		})
		if err != nil {
			return err
		}
		if len(msgs) == 0 {
			break
		}

		out := make([]*mailclean.CleanedMessage, 0, len(msgs))
		for _, msg := range msgs {
			result := cleaner.Clean(msg.Payload, msg.Info())
			stats.Add(result.Stats)
			out = append(out, &mailclean.CleanedMessage{
				Message:   *msg,
				BodyClean: result.Body,
				Stats:     result.Stats,
			})
		}

		if err := cleanedStore.UpsertCleaned(deps.Ctx, out); err != nil {
			return err
		}
		deps.Logger.Info("cleaned batch", "processed", offset+len(msgs), "total", total)

		if len(msgs) < batchSize {
			break
		}
	}

	printBatchStats(deps.Stdout, &stats)
	fmt.Fprintf(deps.Stdout, "Cleaned database saved to %s\n", c.DestDB)
	fmt.Fprintf(deps.Stdout, "Tip: query body_clean for LLM-optimized content\n")

	return nil
}

// collectPayloads pages through the database gathering non-empty payloads
// for corpus analysis.
func collectPayloads(deps *Dependencies, messages mailclean.MessageService) ([]string, error) {
	var payloads []string
	for offset := 0; ; offset += batchSize {
		msgs, err := messages.FindMessages(deps.Ctx, mailclean.MessageFilter{
			Offset: offset,
			Limit:  batchSize,
		})
		if err != nil {
			return nil, err
		}
		if len(msgs) == 0 {
			break
		}
		for _, msg := range msgs {
			if msg.Payload != "" {
				payloads = append(payloads, msg.Payload)
			}
		}
		if len(msgs) < batchSize {
			break
		}
	}
	return payloads, nil
}

// printBatchStats reports the aggregate cleaning outcome.
func printBatchStats(w io.Writer, stats *mailclean.BatchStats) {
	fmt.Fprintf(w, "Messages processed: %d\n", stats.Messages)
	fmt.Fprintf(w, "Original size: %d bytes (%.2f MB)\n",
		stats.OriginalBytes, float64(stats.OriginalBytes)/1024/1024)
	fmt.Fprintf(w, "Cleaned size: %d bytes (%.2f MB)\n",
		stats.CleanBytes, float64(stats.CleanBytes)/1024/1024)

	if stats.OriginalBytes > 0 {
		fmt.Fprintf(w, "Size reduction: %.2f%%\n", stats.ReductionPercent())
		fmt.Fprintf(w, "Estimated tokens saved: %d (%d → %d)\n",
			stats.EstimatedTokensSaved(),
			stats.EstimatedOriginalTokens(),
			stats.EstimatedCleanTokens())
	}
}
