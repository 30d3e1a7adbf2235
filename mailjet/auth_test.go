package mailjet

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mailward/mailward"
)

func TestAuthorizationHeader(t *testing.T) {
	header, err := authorizationHeader("key", mailward.Secret("secret"))
	require.NoError(t, err)
	assert.Equal(t, "Basic a2V5OnNlY3JldA==", header)
}

func TestAuthorizationHeaderHasBasicScheme(t *testing.T) {
	header, err := authorizationHeader("pubkey", mailward.Secret("s3cr3t"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(header, "Basic "))
	assert.NotContains(t, header, "\n")
}

func TestAuthorizationHeaderRejectsEmptyPublicKey(t *testing.T) {
	_, err := authorizationHeader("", mailward.Secret("secret"))
	assert.Error(t, err)
}

func TestAuthorizationHeaderRejectsColonInPublicKey(t *testing.T) {
	_, err := authorizationHeader("pub:key", mailward.Secret("secret"))
	assert.Error(t, err)
}

func TestAuthorizationHeaderRejectsControlCharacters(t *testing.T) {
	_, err := authorizationHeader("pub\nkey", mailward.Secret("secret"))
	assert.Error(t, err)

	_, err = authorizationHeader("pubkey", mailward.Secret("sec\rret"))
	assert.Error(t, err)
}
