package mock

import (
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/mailward/mailward"
)

// SubscriptionService is a testify mock of mailward.SubscriptionService
type SubscriptionService struct {
	mock.Mock
}

func (m *SubscriptionService) FindByEmail(email string) (*mailward.Subscription, error) {
	args := m.Called(email)
	sub, _ := args.Get(0).(*mailward.Subscription)
	return sub, args.Error(1)
}

func (m *SubscriptionService) FindByToken(token string) (*mailward.Subscription, error) {
	args := m.Called(token)
	sub, _ := args.Get(0).(*mailward.Subscription)
	return sub, args.Error(1)
}

func (m *SubscriptionService) FindByStatus(status string) ([]mailward.Subscription, error) {
	args := m.Called(status)
	subs, _ := args.Get(0).([]mailward.Subscription)
	return subs, args.Error(1)
}

func (m *SubscriptionService) Insert(s *mailward.Subscription) error {
	args := m.Called(s)
	return args.Error(0)
}

func (m *SubscriptionService) Update(email, token string) error {
	args := m.Called(email, token)
	return args.Error(0)
}

func (m *SubscriptionService) Confirm(token string) (bool, error) {
	args := m.Called(token)
	return args.Bool(0), args.Error(1)
}

func (m *SubscriptionService) Unsubscribe(email string) error {
	args := m.Called(email)
	return args.Error(0)
}

func (m *SubscriptionService) DeletePendingBefore(t time.Time) (int, error) {
	args := m.Called(t)
	return args.Int(0), args.Error(1)
}

// EmailService is a testify mock of mailward.EmailService
type EmailService struct {
	mock.Mock
}

func (m *EmailService) SendConfirmationEmail(to, token string) error {
	args := m.Called(to, token)
	return args.Error(0)
}

func (m *EmailService) SendThankYouEmail(to string) error {
	args := m.Called(to)
	return args.Error(0)
}

func (m *EmailService) SendNewsletter(subscribers []mailward.Subscription, subject, body string) {
	m.Called(subscribers, subject, body)
}
