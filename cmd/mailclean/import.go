package main

import (
	"fmt"

	"github.com/fwojciec/mailclean"
	"github.com/fwojciec/mailclean/bloom"
	"github.com/fwojciec/mailclean/mbox"
	"github.com/fwojciec/mailclean/sqlite"
)

// dedupeFalsePositiveRate is the acceptable false positive rate for the
// duplicate Message-ID estimate. Duplicates are reported, not dropped, so a
// false positive only inflates the report by one.
const dedupeFalsePositiveRate = 0.001

// Run executes the import command.
func (c *ImportCmd) Run(deps *Dependencies) error {
	db, err := deps.OpenDB(c.DBPath)
	if err != nil {
		return err
	}
	defer db.Close()
	messages := sqlite.NewMessageService(db)

	reader := mbox.NewReader(c.MboxPath)
	total, err := reader.Count()
	if err != nil {
		return fmt.Errorf("failed to read mbox at %q: %w", c.MboxPath, err)
	}
	fmt.Fprintf(deps.Stdout, "Importing %d messages from %s\n", total, c.MboxPath)

	expected := uint(total)
	if expected == 0 {
		expected = 1
	}
	seen := bloom.NewFilter(expected, dedupeFalsePositiveRate)

	var batch []*mailclean.Message
	imported := 0
	duplicates := 0

	skipped, err := reader.Read(deps.Ctx, func(msg *mailclean.Message) error {
		if seen.Test(msg.ID) {
			duplicates++
		} else {
			seen.Add(msg.ID)
		}

		batch = append(batch, msg)
		imported++

		if len(batch) >= batchSize {
			if err := messages.UpsertMessages(deps.Ctx, batch); err != nil {
				return err
			}
			deps.Logger.Info("imported batch", "imported", imported, "total", total)
			batch = batch[:0]
		}
		return nil
	})
	if err != nil {
		return err
	}
	if len(batch) > 0 {
		if err := messages.UpsertMessages(deps.Ctx, batch); err != nil {
			return err
		}
	}

	fmt.Fprintf(deps.Stdout, "Imported %d messages into %s\n", imported, c.DBPath)
	if skipped > 0 {
		fmt.Fprintf(deps.Stdout, "Skipped %d unparseable messages\n", skipped)
	}
	if duplicates > 0 {
		fmt.Fprintf(deps.Stdout, "~%d duplicate Message-IDs (rows were upserted)\n", duplicates)
	}

	return nil
}
