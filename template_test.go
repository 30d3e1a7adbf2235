package mailward

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfirmationEmailContainsLinkInBothParts(t *testing.T) {
	confirmURL := "http://localhost/subscriptions/confirm?subscription_token=abc-123"

	html, text, err := ConfirmationEmail("Mailward", "http://localhost", confirmURL)
	require.NoError(t, err)

	assert.Contains(t, html, confirmURL)
	assert.Contains(t, text, confirmURL)
}

func TestThankYouEmail(t *testing.T) {
	html, text, err := ThankYouEmail("Mailward", "http://localhost")
	require.NoError(t, err)

	assert.Contains(t, html, "Thank you for subscribing to Mailward")
	assert.Contains(t, text, "Thank you for subscribing to Mailward")
}
