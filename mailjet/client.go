package mailjet

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/pkg/errors"

	"github.com/mailward/mailward"
)

// Address pairs an email with a display name, in the provider's wire
// casing. Used for both sender and recipient identity.
type Address struct {
	Email string `json:"Email"`
	Name  string `json:"Name"`
}

type message struct {
	From     Address   `json:"From"`
	To       []Address `json:"To"`
	Subject  string    `json:"Subject"`
	TextPart string    `json:"TextPart"`
	HtmlPart string    `json:"HtmlPart"`
}

// The provider expects a message list even for a single send.
type sendEmailRequest struct {
	Messages []message `json:"Messages"`
}

// Client talks to the Mailjet send API. It is immutable after
// construction and safe for concurrent use.
type Client struct {
	httpClient *http.Client
	baseURL    string
	sender     Address
	publicKey  string
	secretKey  mailward.Secret
	observers  []Address
}

// NewClient builds a Client from cfg.Mailjet. A bad base URL, a
// non-positive timeout or a malformed public key is a configuration
// error: the caller should treat it as fatal and abort startup.
func NewClient(cfg *mailward.Config) (*Client, error) {
	mj := cfg.Mailjet

	u, err := url.Parse(mj.BaseURL)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid base URL %q", mj.BaseURL)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, errors.Errorf("base URL %q must be absolute", mj.BaseURL)
	}

	if mj.Timeout <= 0 {
		return nil, errors.Errorf("timeout must be positive, got %s", mj.Timeout)
	}

	if _, err := authorizationHeader(mj.PublicKey, mj.SecretKey); err != nil {
		return nil, err
	}

	observers := make([]Address, 0, len(mj.Observers))
	for _, o := range mj.Observers {
		observers = append(observers, Address{Email: o.Email, Name: o.Name})
	}

	return &Client{
		httpClient: &http.Client{Timeout: mj.Timeout},
		baseURL:    strings.TrimRight(mj.BaseURL, "/"),
		sender:     Address{Email: mj.Sender.Email, Name: mj.Sender.Name},
		publicKey:  mj.PublicKey,
		secretKey:  mj.SecretKey,
		observers:  observers,
	}, nil
}

// SendEmail delivers one message to recipient, with any configured
// observers prepended to the recipient list. It issues exactly one POST
// to {baseURL}/send and never retries; failures are returned as
// *TransportError or *StatusError for the caller to act on.
func (c *Client) SendEmail(ctx context.Context, recipient Address, subject, htmlBody, textBody string) error {
	to := make([]Address, 0, len(c.observers)+1)
	to = append(to, c.observers...)
	to = append(to, recipient)

	body, err := json.Marshal(sendEmailRequest{
		Messages: []message{
			{
				From:     c.sender,
				To:       to,
				Subject:  subject,
				TextPart: textBody,
				HtmlPart: htmlBody,
			},
		},
	})
	if err != nil {
		return errors.Wrap(err, "failed to encode request body")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/send", bytes.NewReader(body))
	if err != nil {
		return errors.Wrap(err, "failed to build request")
	}

	auth, err := authorizationHeader(c.publicKey, c.secretKey)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", auth)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &TransportError{Err: err}
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{StatusCode: resp.StatusCode}
	}

	return nil
}

// TransportError reports a failure before any provider response was
// obtained: connect, TLS, DNS, or timeout.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("mailjet: transport: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// StatusError reports a non-2xx provider response.
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("mailjet: provider returned status %d", e.StatusCode)
}
