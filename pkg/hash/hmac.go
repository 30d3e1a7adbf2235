package hash

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"

	"github.com/pkg/errors"
)

// ComputeHmac256 returns the base64-encoded HMAC-SHA256 of message under
// secret. Unsubscribe links carry it so the email cannot be forged.
func ComputeHmac256(message, secret string) (string, error) {
	h := hmac.New(sha256.New, []byte(secret))
	if _, err := h.Write([]byte(message)); err != nil {
		return "", errors.Wrap(err, "hmac.Write")
	}

	return base64.StdEncoding.EncodeToString(h.Sum(nil)), nil
}
