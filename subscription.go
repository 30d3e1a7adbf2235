package mailward

import "time"

// SubscriptionService is the interface that wraps methods related to the subscriber store
type SubscriptionService interface {
	FindByEmail(email string) (*Subscription, error)
	FindByToken(token string) (*Subscription, error)
	FindByStatus(status string) ([]Subscription, error)
	Insert(s *Subscription) error
	Update(email, token string) error
	// Confirm moves the subscription bound to token to confirmed and
	// reports whether this call performed the transition. It returns
	// (false, nil) when the row was already confirmed.
	Confirm(token string) (bool, error)
	Unsubscribe(email string) error
	DeletePendingBefore(t time.Time) (int, error)
}

// Subscription represents a subscriber and the confirmation token bound to it
type Subscription struct {
	ID        int    `storm:"id,increment"`
	Email     string `storm:"unique"`
	Name      string
	Token     string    `storm:"index"`
	Status    string    `storm:"index"`
	CreatedAt time.Time `storm:"index"`
}

// Subscriber lifecycle states
const (
	StatusPendingConfirmation = "pending_confirmation"
	StatusConfirmed           = "confirmed"
	StatusUnsubscribed        = "unsubscribed"
)

// NewSubscription returns a subscription awaiting confirmation
func NewSubscription(email, name, token string) *Subscription {
	return &Subscription{
		Email:     email,
		Name:      name,
		Token:     token,
		Status:    StatusPendingConfirmation,
		CreatedAt: time.Now().UTC(),
	}
}

type SubscriptionResponse struct {
	Message string `json:"message"`
}

type NewsletterRequest struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}
