package mailward

import uuid "github.com/satori/go.uuid"

// NewToken returns an unguessable confirmation token, drawn from a
// cryptographically strong random source.
func NewToken() string {
	return uuid.NewV4().String()
}
