package sqlite_test

import (
	"context"
	"testing"

	"github.com/fwojciec/mailclean"
	"github.com/fwojciec/mailclean/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanedService_UpsertCleaned(t *testing.T) {
	t.Parallel()

	t.Run("stores cleaned body and stats alongside the raw payload", func(t *testing.T) {
		t.Parallel()

		db := MustOpenDB(t)
		cleaned := sqlite.NewCleanedService(db)
		ctx := context.Background()

		msg := &mailclean.CleanedMessage{
			Message: mailclean.Message{
				ID:      "<a@example.com>",
				Subject: "Meeting notes",
				Payload: "raw body with signature\n-- \nJohn",
			},
			BodyClean: "raw body with signature",
			Stats:     mailclean.NewStats(33, 23),
		}

		require.NoError(t, cleaned.UpsertCleaned(ctx, []*mailclean.CleanedMessage{msg}))

		got, err := cleaned.SearchCleaned(ctx, "signature", 10)
		require.NoError(t, err)
		require.Len(t, got, 1)

		assert.Equal(t, msg.ID, got[0].ID)
		assert.Equal(t, msg.Payload, got[0].Payload)
		assert.Equal(t, msg.BodyClean, got[0].BodyClean)
		assert.Equal(t, msg.Stats, got[0].Stats)
		assert.False(t, got[0].CleanedAt.IsZero())
	})

	t.Run("upsert replaces an earlier cleaning run", func(t *testing.T) {
		t.Parallel()

		db := MustOpenDB(t)
		cleaned := sqlite.NewCleanedService(db)
		ctx := context.Background()

		msg := &mailclean.CleanedMessage{
			Message:   mailclean.Message{ID: "<a@example.com>"},
			BodyClean: "first pass",
		}
		require.NoError(t, cleaned.UpsertCleaned(ctx, []*mailclean.CleanedMessage{msg}))

		msg.BodyClean = "second pass"
		require.NoError(t, cleaned.UpsertCleaned(ctx, []*mailclean.CleanedMessage{msg}))

		got, err := cleaned.SearchCleaned(ctx, "second", 10)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "second pass", got[0].BodyClean)

		got, err = cleaned.SearchCleaned(ctx, "first", 10)
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("rejects cleaned message without ID", func(t *testing.T) {
		t.Parallel()

		db := MustOpenDB(t)
		cleaned := sqlite.NewCleanedService(db)

		err := cleaned.UpsertCleaned(context.Background(), []*mailclean.CleanedMessage{
			{BodyClean: "no id"},
		})
		require.Error(t, err)
		assert.Equal(t, mailclean.EINVALID, mailclean.ErrorCode(err))
	})
}

func TestCleanedService_SearchCleaned(t *testing.T) {
	t.Parallel()

	t.Run("searches cleaned body not raw payload", func(t *testing.T) {
		t.Parallel()

		db := MustOpenDB(t)
		cleaned := sqlite.NewCleanedService(db)
		ctx := context.Background()

		msg := &mailclean.CleanedMessage{
			Message: mailclean.Message{
				ID:      "<a@example.com>",
				Payload: "body plus zanzibar signature",
			},
			BodyClean: "body only",
		}
		require.NoError(t, cleaned.UpsertCleaned(ctx, []*mailclean.CleanedMessage{msg}))

		got, err := cleaned.SearchCleaned(ctx, "zanzibar", 10)
		require.NoError(t, err)
		assert.Empty(t, got)

		got, err = cleaned.SearchCleaned(ctx, "body", 10)
		require.NoError(t, err)
		require.Len(t, got, 1)
	})
}
