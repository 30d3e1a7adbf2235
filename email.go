package mailward

import (
	"net/mail"
	"strings"
)

// EmailService is the interface that wraps methods related to outbound email
type EmailService interface {
	SendConfirmationEmail(to, token string) error
	SendThankYouEmail(to string) error
	SendNewsletter(subscribers []Subscription, subject, body string)
}

// SubscriberEmail is a syntactically valid subscriber address. The zero
// value is invalid; obtain one through ParseSubscriberEmail.
type SubscriberEmail struct {
	address string
}

// ParseSubscriberEmail validates s and returns it as a SubscriberEmail.
// It rejects empty strings, display names, and addresses without a domain.
func ParseSubscriberEmail(s string) (SubscriberEmail, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return SubscriberEmail{}, &Error{Code: ErrInvalid, Message: "email is required", Op: "ParseSubscriberEmail"}
	}

	addr, err := mail.ParseAddress(s)
	if err != nil || addr.Name != "" || addr.Address != s {
		return SubscriberEmail{}, &Error{Code: ErrInvalid, Message: "invalid email address", Op: "ParseSubscriberEmail", Err: err}
	}

	at := strings.LastIndex(s, "@")
	if at <= 0 || at == len(s)-1 {
		return SubscriberEmail{}, &Error{Code: ErrInvalid, Message: "invalid email address", Op: "ParseSubscriberEmail"}
	}

	return SubscriberEmail{address: s}, nil
}

func (e SubscriberEmail) String() string {
	return e.address
}
