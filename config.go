package mailward

import "time"

// EmailAddress pairs an address with a display name. Used for the
// authenticated sender identity and for observer recipients.
type EmailAddress struct {
	Email string
	Name  string
}

// Config represents the main config
type Config struct {
	DB struct {
		Type string // "bolt" or "sqlite"
		Path string
	}

	HTTP struct {
		Addr string
	}

	Email struct {
		Provider string // "mailjet" or "smtp"
	}

	Mailjet struct {
		BaseURL   string
		PublicKey string
		SecretKey Secret
		Sender    EmailAddress
		// Observers are appended ahead of the real recipient on every
		// outbound message. Leave empty to disable.
		Observers []EmailAddress
		Timeout   time.Duration
	}

	SMTP struct {
		Host     string
		Port     int
		Username string
		Password Secret
		From     string
	}

	Newsletter struct {
		Product struct {
			Name string
		}
		Subject struct {
			Confirmation string
			ThankYou     string
		}
		HMAC struct {
			Secret string
		}
		TokenTTL time.Duration
		Cron     struct {
			Spec string
		}
	}

	Sentry struct {
		DSN string
	}

	AMQP struct {
		URL string
	}
}
