package mailward

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSubscriberEmail(t *testing.T) {
	email, err := ParseSubscriberEmail("ursula_le_guin@gmail.com")
	require.NoError(t, err)
	assert.Equal(t, "ursula_le_guin@gmail.com", email.String())
}

func TestParseSubscriberEmailRejectsInvalidInput(t *testing.T) {
	for _, s := range []string{
		"",
		"   ",
		"not-an-email",
		"@gmail.com",
		"ursula@",
		"Ursula <ursula@gmail.com>",
	} {
		_, err := ParseSubscriberEmail(s)
		assert.Error(t, err, "input %q", s)
		assert.Equal(t, ErrInvalid, ErrorCode(err))
	}
}
