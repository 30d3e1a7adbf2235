package mailward

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSecretExpose(t *testing.T) {
	s := Secret("hunter2")
	assert.Equal(t, "hunter2", s.Expose())
}

func TestSecretIsRedactedWhenFormatted(t *testing.T) {
	s := Secret("hunter2")

	assert.NotContains(t, fmt.Sprintf("%s", s), "hunter2")
	assert.NotContains(t, fmt.Sprintf("%v", s), "hunter2")
	assert.NotContains(t, fmt.Sprintf("%#v", s), "hunter2")
}

func TestSecretIsRedactedInJSON(t *testing.T) {
	payload := struct {
		Key Secret `json:"key"`
	}{Key: Secret("hunter2")}

	data, err := json.Marshal(payload)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "hunter2")
	assert.Contains(t, string(data), "[REDACTED]")
}
