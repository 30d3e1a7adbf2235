package mailjet

import (
	"encoding/base64"

	"github.com/pkg/errors"

	"github.com/mailward/mailward"
)

// authorizationHeader computes the value of the Authorization header:
// the public key and the secret joined by a colon, base64-encoded, with
// the "Basic " scheme prefix. The public key must not contain a colon
// (it would shift the split point on the provider side) and neither
// input may contain control characters.
func authorizationHeader(publicKey string, secret mailward.Secret) (string, error) {
	if publicKey == "" {
		return "", errors.New("public key is required")
	}

	for _, r := range publicKey {
		if r == ':' || r < 0x20 || r == 0x7f {
			return "", errors.New("public key contains a colon or control character")
		}
	}

	for _, r := range secret.Expose() {
		if r < 0x20 || r == 0x7f {
			return "", errors.New("secret key contains a control character")
		}
	}

	pair := publicKey + ":" + secret.Expose()

	return "Basic " + base64.StdEncoding.EncodeToString([]byte(pair)), nil
}
