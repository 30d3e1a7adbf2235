package mailjet

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mailward/mailward"
)

type recordedRequest struct {
	method      string
	path        string
	contentType string
	auth        string
	body        []byte
}

type providerStub struct {
	mu       sync.Mutex
	requests []recordedRequest
	status   int
	delay    time.Duration
	server   *httptest.Server
}

func newProviderStub(status int) *providerStub {
	p := &providerStub{status: status}
	p.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)

		p.mu.Lock()
		p.requests = append(p.requests, recordedRequest{
			method:      r.Method,
			path:        r.URL.Path,
			contentType: r.Header.Get("Content-Type"),
			auth:        r.Header.Get("Authorization"),
			body:        body,
		})
		p.mu.Unlock()

		if p.delay > 0 {
			time.Sleep(p.delay)
		}
		w.WriteHeader(p.status)
	}))

	return p
}

func (p *providerStub) received() []recordedRequest {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]recordedRequest(nil), p.requests...)
}

func testConfig(baseURL string, timeout time.Duration) *mailward.Config {
	cfg := &mailward.Config{}
	cfg.Mailjet.BaseURL = baseURL
	cfg.Mailjet.PublicKey = "pubkey"
	cfg.Mailjet.SecretKey = mailward.Secret("s3cr3t")
	cfg.Mailjet.Sender = mailward.EmailAddress{Email: "newsletter@example.com", Name: "Newsletter"}
	cfg.Mailjet.Observers = []mailward.EmailAddress{{Email: "ops@example.com", Name: "Ops"}}
	cfg.Mailjet.Timeout = timeout
	return cfg
}

type wireEnvelope struct {
	Messages []struct {
		From struct {
			Email string
			Name  string
		}
		To []struct {
			Email string
			Name  string
		}
		Subject  string
		TextPart string
		HtmlPart string
	}
}

func TestSendEmailFiresOneRequestToSendEndpoint(t *testing.T) {
	provider := newProviderStub(http.StatusOK)
	defer provider.server.Close()

	client, err := NewClient(testConfig(provider.server.URL, time.Second))
	require.NoError(t, err)

	err = client.SendEmail(context.Background(), Address{Email: "ursula_le_guin@gmail.com", Name: "le guin"},
		"Welcome!", "<p>Welcome to our newsletter!</p>", "Welcome to our newsletter!")
	require.NoError(t, err)

	requests := provider.received()
	require.Len(t, requests, 1)

	req := requests[0]
	assert.Equal(t, http.MethodPost, req.method)
	assert.Equal(t, "/send", req.path)
	assert.Equal(t, "application/json", req.contentType)
	assert.Equal(t, "Basic cHVia2V5OnMzY3IzdA==", req.auth)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(req.body, &body))
	messages, ok := body["Messages"].([]interface{})
	require.True(t, ok)
	require.Len(t, messages, 1)

	message, ok := messages[0].(map[string]interface{})
	require.True(t, ok)
	for _, key := range []string{"From", "To", "Subject", "TextPart", "HtmlPart"} {
		assert.Contains(t, message, key)
	}
}

func TestSendEmailObserversComeBeforeRecipient(t *testing.T) {
	provider := newProviderStub(http.StatusOK)
	defer provider.server.Close()

	client, err := NewClient(testConfig(provider.server.URL, time.Second))
	require.NoError(t, err)

	err = client.SendEmail(context.Background(), Address{Email: "ursula_le_guin@gmail.com", Name: "le guin"},
		"Welcome!", "<p>hi</p>", "hi")
	require.NoError(t, err)

	requests := provider.received()
	require.Len(t, requests, 1)

	var envelope wireEnvelope
	require.NoError(t, json.Unmarshal(requests[0].body, &envelope))
	require.Len(t, envelope.Messages, 1)

	message := envelope.Messages[0]
	assert.Equal(t, "newsletter@example.com", message.From.Email)
	require.Len(t, message.To, 2)
	assert.Equal(t, "ops@example.com", message.To[0].Email)
	assert.Equal(t, "ursula_le_guin@gmail.com", message.To[1].Email)
}

func TestSendEmailSucceedsOnAny2xx(t *testing.T) {
	for _, status := range []int{http.StatusOK, http.StatusCreated, http.StatusAccepted} {
		provider := newProviderStub(status)

		client, err := NewClient(testConfig(provider.server.URL, time.Second))
		require.NoError(t, err)

		err = client.SendEmail(context.Background(), Address{Email: "foo@example.com"}, "subject", "<p>html</p>", "text")
		assert.NoError(t, err, "status %d", status)

		provider.server.Close()
	}
}

func TestSendEmailFailsOn500WithoutRetry(t *testing.T) {
	provider := newProviderStub(http.StatusInternalServerError)
	defer provider.server.Close()

	client, err := NewClient(testConfig(provider.server.URL, time.Second))
	require.NoError(t, err)

	err = client.SendEmail(context.Background(), Address{Email: "foo@example.com"}, "subject", "<p>html</p>", "text")
	require.Error(t, err)

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusInternalServerError, statusErr.StatusCode)

	assert.Len(t, provider.received(), 1)
}

func TestSendEmailTimesOutAsTransportError(t *testing.T) {
	provider := newProviderStub(http.StatusOK)
	provider.delay = 500 * time.Millisecond
	defer provider.server.Close()

	client, err := NewClient(testConfig(provider.server.URL, 50*time.Millisecond))
	require.NoError(t, err)

	start := time.Now()
	err = client.SendEmail(context.Background(), Address{Email: "foo@example.com"}, "subject", "<p>html</p>", "text")
	require.Error(t, err)

	var transportErr *TransportError
	assert.ErrorAs(t, err, &transportErr)
	assert.Less(t, time.Since(start), 500*time.Millisecond)
}

func TestSendEmailErrorNeverContainsSecret(t *testing.T) {
	provider := newProviderStub(http.StatusInternalServerError)
	defer provider.server.Close()

	client, err := NewClient(testConfig(provider.server.URL, time.Second))
	require.NoError(t, err)

	err = client.SendEmail(context.Background(), Address{Email: "foo@example.com"}, "subject", "<p>html</p>", "text")
	require.Error(t, err)
	assert.NotContains(t, err.Error(), "s3cr3t")
}

func TestNewClientRejectsBadConfig(t *testing.T) {
	cfg := testConfig("", time.Second)
	_, err := NewClient(cfg)
	assert.Error(t, err)

	cfg = testConfig("http://localhost:9999", 0)
	_, err = NewClient(cfg)
	assert.Error(t, err)

	cfg = testConfig("http://localhost:9999", time.Second)
	cfg.Mailjet.PublicKey = "pub:key"
	_, err = NewClient(cfg)
	assert.Error(t, err)
}
