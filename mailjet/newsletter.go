package mailjet

import (
	"context"
	"fmt"
	"net/url"

	"github.com/getsentry/sentry-go"

	"github.com/mailward/mailward"
)

type emailService struct {
	client    *Client
	serverURL string
	config    *mailward.Config
}

// NewEmailService returns an email service delivering through the
// Mailjet send API. serverURL is the public base address used to build
// confirmation links.
func NewEmailService(config *mailward.Config, serverURL string) (mailward.EmailService, error) {
	client, err := NewClient(config)
	if err != nil {
		return nil, err
	}

	return &emailService{
		client:    client,
		serverURL: serverURL,
		config:    config,
	}, nil
}

// SendConfirmationEmail sends the double opt-in email carrying the
// confirmation link bound to token.
func (es *emailService) SendConfirmationEmail(to, token string) error {
	confirmURL := fmt.Sprintf("%s/subscriptions/confirm?subscription_token=%s", es.serverURL, url.QueryEscape(token))

	html, text, err := mailward.ConfirmationEmail(es.config.Newsletter.Product.Name, es.serverURL, confirmURL)
	if err != nil {
		return err
	}

	return es.client.SendEmail(context.Background(), Address{Email: to}, es.config.Newsletter.Subject.Confirmation, html, text)
}

// SendThankYouEmail sends a "thank you" email after confirmation.
func (es *emailService) SendThankYouEmail(to string) error {
	html, text, err := mailward.ThankYouEmail(es.config.Newsletter.Product.Name, es.serverURL)
	if err != nil {
		return err
	}

	return es.client.SendEmail(context.Background(), Address{Email: to}, es.config.Newsletter.Subject.ThankYou, html, text)
}

// SendNewsletter delivers body to every subscriber. Per-recipient
// failures are reported to Sentry and do not stop the fan-out.
func (es *emailService) SendNewsletter(subscribers []mailward.Subscription, subject, body string) {
	for _, s := range subscribers {
		if err := es.client.SendEmail(context.Background(), Address{Email: s.Email, Name: s.Name}, subject, body, body); err != nil {
			sentry.CaptureException(err)
		}
	}
}
