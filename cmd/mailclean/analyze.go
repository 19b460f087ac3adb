package main

import (
	"fmt"

	"github.com/fwojciec/mailclean/clean"
	"github.com/fwojciec/mailclean/sqlite"
)

// Run executes the analyze command.
func (c *AnalyzeCmd) Run(deps *Dependencies) error {
	db, err := deps.OpenDB(c.DBPath)
	if err != nil {
		return err
	}
	defer db.Close()
	messages := sqlite.NewMessageService(db)

	payloads, err := collectPayloads(deps, messages)
	if err != nil {
		return err
	}

	corpus := clean.AnalyzeCorpus(payloads, c.MinOccurrences)

	fmt.Fprintf(deps.Stdout, "Analyzed %d payloads\n", len(payloads))
	fmt.Fprintf(deps.Stdout, "Found %d footers occurring at least %d times\n",
		corpus.Size(), c.MinOccurrences)

	if c.Show {
		for i, footer := range corpus.Footers() {
			fmt.Fprintf(deps.Stdout, "--- footer %d ---\n%s\n", i+1, footer)
		}
	}

	return nil
}
