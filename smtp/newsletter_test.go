package smtp

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mailward/mailward"
)

func TestBuildMessageCarriesBothParts(t *testing.T) {
	cfg := &mailward.Config{}
	cfg.SMTP.From = "newsletter@example.com"
	cfg.Newsletter.Product.Name = "Mailward"

	es := &emailService{config: cfg, serverURL: "http://localhost"}

	m := es.buildMessage("ursula_le_guin@gmail.com", "Welcome!", "<p>hello html</p>", "hello text")

	var buf bytes.Buffer
	_, err := m.WriteTo(&buf)
	require.NoError(t, err)

	raw := buf.String()
	assert.Contains(t, raw, "text/plain")
	assert.Contains(t, raw, "text/html")
	assert.Contains(t, raw, "hello text")
	assert.Contains(t, raw, "hello html")
}
