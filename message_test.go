package mailclean_test

import (
	"testing"

	"github.com/fwojciec/mailclean"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessage_Validate(t *testing.T) {
	t.Parallel()

	t.Run("valid message", func(t *testing.T) {
		t.Parallel()

		msg := &mailclean.Message{ID: "<abc@example.com>"}
		require.NoError(t, msg.Validate())
	})

	t.Run("missing ID", func(t *testing.T) {
		t.Parallel()

		msg := &mailclean.Message{Subject: "no id"}
		err := msg.Validate()
		require.Error(t, err)
		assert.Equal(t, mailclean.EINVALID, mailclean.ErrorCode(err))
	})
}

func TestMessage_Info(t *testing.T) {
	t.Parallel()

	msg := &mailclean.Message{
		ID:      "<abc@example.com>",
		Headers: map[string]string{"subject": "hello"},
		Attachments: []mailclean.Attachment{
			{Name: "invoice.pdf", Size: 1024, MIMEType: "application/pdf"},
		},
	}

	info := msg.Info()
	require.NotNil(t, info)
	assert.Equal(t, msg.Headers, info.Headers)
	assert.Equal(t, msg.Attachments, info.Attachments)
}
