package main

import (
	"fmt"
	"strings"

	"github.com/fwojciec/mailclean/sqlite"
)

// Run executes the search command.
func (c *SearchCmd) Run(deps *Dependencies) error {
	db, err := deps.OpenDB(c.DBPath)
	if err != nil {
		return err
	}
	defer db.Close()

	if c.Clean {
		msgs, err := sqlite.NewCleanedService(db).SearchCleaned(deps.Ctx, c.Query, c.Limit)
		if err != nil {
			return err
		}
		if len(msgs) == 0 {
			fmt.Fprintln(deps.Stdout, "No matches.")
			return nil
		}
		for _, msg := range msgs {
			fmt.Fprintf(deps.Stdout, "%s  %s\n    %s\n", msg.ID, msg.Subject, snippet(msg.BodyClean))
		}
		return nil
	}

	msgs, err := sqlite.NewMessageService(db).SearchMessages(deps.Ctx, c.Query, c.Limit)
	if err != nil {
		return err
	}
	if len(msgs) == 0 {
		fmt.Fprintln(deps.Stdout, "No matches.")
		return nil
	}
	for _, msg := range msgs {
		fmt.Fprintf(deps.Stdout, "%s  %s\n    %s\n", msg.ID, msg.Subject, snippet(msg.Payload))
	}
	return nil
}

// snippet renders the first line of a body, truncated for display.
func snippet(body string) string {
	body = strings.TrimSpace(body)
	if i := strings.IndexByte(body, '\n'); i >= 0 {
		body = body[:i]
	}
	const max = 80
	if len(body) > max {
		return body[:max] + "…"
	}
	return body
}
