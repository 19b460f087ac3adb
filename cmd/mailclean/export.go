package main

import (
	"fmt"

	"github.com/fwojciec/mailclean"
	"github.com/fwojciec/mailclean/fs"
	"github.com/fwojciec/mailclean/sqlite"
)

// Run executes the export command.
func (c *ExportCmd) Run(deps *Dependencies) error {
	level, err := mailclean.ParseLevel(c.Level)
	if err != nil {
		return err
	}

	db, err := deps.OpenDB(c.DBPath)
	if err != nil {
		return err
	}
	defer db.Close()
	messages := sqlite.NewMessageService(db)

	cleaner := deps.newCleaner(level)
	writer := fs.NewWriter(c.Dir)

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

		for _, msg := range msgs {
			result := cleaner.Clean(msg.Payload, msg.Info())
			stats.Add(result.Stats)

			cleaned := &mailclean.CleanedMessage{
				Message:   *msg,
				BodyClean: result.Body,
				Stats:     result.Stats,
			}
			if err := writer.WriteCleaned(deps.Ctx, cleaned); err != nil {
				return err
			}
		}

		if len(msgs) < batchSize {
			break
		}
	}

	fmt.Fprintf(deps.Stdout, "Exported %d messages to %s\n", stats.Messages, c.Dir)
	printBatchStats(deps.Stdout, &stats)

	return nil
}
