package smtp

import (
	"fmt"
	"net/url"

	"github.com/getsentry/sentry-go"
	"github.com/pkg/errors"
	"gopkg.in/gomail.v2"

	"github.com/mailward/mailward"
)

type emailService struct {
	serverURL string
	config    *mailward.Config
}

// NewEmailService returns an email service delivering over plain SMTP,
// for deployments without a provider account.
func NewEmailService(config *mailward.Config, serverURL string) mailward.EmailService {
	return &emailService{
		serverURL: serverURL,
		config:    config,
	}
}

// SendConfirmationEmail sends the double opt-in email carrying the
// confirmation link bound to token.
func (es *emailService) SendConfirmationEmail(to, token string) error {
	confirmURL := fmt.Sprintf("%s/subscriptions/confirm?subscription_token=%s", es.serverURL, url.QueryEscape(token))

	html, text, err := mailward.ConfirmationEmail(es.config.Newsletter.Product.Name, es.serverURL, confirmURL)
	if err != nil {
		return err
	}

	return es.sendEmail(to, es.config.Newsletter.Subject.Confirmation, html, text)
}

// SendThankYouEmail sends a "thank you" email after confirmation.
func (es *emailService) SendThankYouEmail(to string) error {
	html, text, err := mailward.ThankYouEmail(es.config.Newsletter.Product.Name, es.serverURL)
	if err != nil {
		return err
	}

	return es.sendEmail(to, es.config.Newsletter.Subject.ThankYou, html, text)
}

// SendNewsletter delivers body to every subscriber. Per-recipient
// failures are reported to Sentry and do not stop the fan-out.
func (es *emailService) SendNewsletter(subscribers []mailward.Subscription, subject, body string) {
	for _, s := range subscribers {
		if err := es.sendEmail(s.Email, subject, body, body); err != nil {
			sentry.CaptureException(err)
		}
	}
}

// buildMessage assembles a multipart message: plain text first, HTML as
// the preferred alternative.
func (es *emailService) buildMessage(to, subject, html, text string) *gomail.Message {
	m := gomail.NewMessage()
	m.SetHeader("From", es.config.SMTP.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", text)
	m.AddAlternative("text/html", html)

	return m
}

func (es *emailService) sendEmail(to, subject, html, text string) error {
	m := es.buildMessage(to, subject, html, text)

	d := gomail.NewDialer(es.config.SMTP.Host, es.config.SMTP.Port, es.config.SMTP.Username, es.config.SMTP.Password.Expose())
	if err := d.DialAndSend(m); err != nil {
		return errors.Wrapf(err, "failed to send mail to %s", to)
	}

	return nil
}
