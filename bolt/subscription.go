package bolt

import (
	"time"

	"github.com/asdine/storm/v3"
	"github.com/asdine/storm/v3/q"
	"github.com/go-errors/errors"

	"github.com/mailward/mailward"
)

type subscriptionService struct {
	db *DB
}

func NewSubscriptionService(db *DB) mailward.SubscriptionService {
	return &subscriptionService{
		db: db,
	}
}

// FindByEmail finds a subscription by email
func (ss *subscriptionService) FindByEmail(email string) (*mailward.Subscription, error) {
	var s mailward.Subscription
	if err := ss.db.stormDB.One("Email", email, &s); err != nil {
		if errors.Is(err, storm.ErrNotFound) {
			return nil, &mailward.Error{Code: mailward.ErrNotFound, Op: "FindByEmail", Message: "subscription not found"}
		}
		return nil, errors.Errorf("failed to find by email: %v", err)
	}

	return &s, nil
}

// FindByToken finds a subscription by its confirmation token
func (ss *subscriptionService) FindByToken(token string) (*mailward.Subscription, error) {
	var s mailward.Subscription
	if err := ss.db.stormDB.One("Token", token, &s); err != nil {
		if errors.Is(err, storm.ErrNotFound) {
			return nil, &mailward.Error{Code: mailward.ErrNotFound, Op: "FindByToken", Message: "subscription not found"}
		}
		return nil, errors.Errorf("failed to find by token: %v", err)
	}

	return &s, nil
}

// FindByStatus finds subscriptions by status
func (ss *subscriptionService) FindByStatus(status string) ([]mailward.Subscription, error) {
	var subscriptions []mailward.Subscription
	if err := ss.db.stormDB.Find("Status", status, &subscriptions); err != nil {
		if errors.Is(err, storm.ErrNotFound) {
			return nil, nil
		}
		return nil, errors.Errorf("failed to find by status: %v", err)
	}

	return subscriptions, nil
}

// Insert inserts a new pending subscription
func (ss *subscriptionService) Insert(s *mailward.Subscription) error {
	if err := ss.db.stormDB.Save(s); err != nil {
		return errors.Errorf("failed to save: %v", err)
	}

	return nil
}

// Update moves the subscription back to pending with a fresh token
func (ss *subscriptionService) Update(email, token string) error {
	s, err := ss.FindByEmail(email)
	if err != nil {
		return err
	}

	s.Status = mailward.StatusPendingConfirmation
	s.Token = token
	s.CreatedAt = time.Now().UTC()
	if err := ss.db.stormDB.Save(s); err != nil {
		return errors.Errorf("failed to save: %v", err)
	}

	return nil
}

// Confirm moves the subscription bound to token to confirmed and
// reports whether this call made the transition. The read and the write
// share one transaction, so concurrent confirmations of the same token
// cannot both observe the pending state.
func (ss *subscriptionService) Confirm(token string) (bool, error) {
	tx, err := ss.db.stormDB.Begin(true)
	if err != nil {
		return false, errors.Errorf("failed to begin transaction: %v", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var s mailward.Subscription
	if err := tx.One("Token", token, &s); err != nil {
		if errors.Is(err, storm.ErrNotFound) {
			return false, &mailward.Error{Code: mailward.ErrNotFound, Op: "Confirm", Message: "subscription not found"}
		}
		return false, errors.Errorf("failed to find by token: %v", err)
	}

	if s.Status == mailward.StatusConfirmed {
		return false, nil
	}

	s.Status = mailward.StatusConfirmed
	if err := tx.Save(&s); err != nil {
		return false, errors.Errorf("failed to save: %v", err)
	}

	return true, tx.Commit()
}

// Unsubscribe unsubscribes from the newsletter
func (ss *subscriptionService) Unsubscribe(email string) error {
	s, err := ss.FindByEmail(email)
	if err != nil {
		return err
	}

	s.Status = mailward.StatusUnsubscribed
	if err := ss.db.stormDB.Save(s); err != nil {
		return errors.Errorf("failed to save: %v", err)
	}

	return nil
}

// DeletePendingBefore removes pending subscriptions created before t and
// returns how many were removed. Their tokens stop matching afterwards.
func (ss *subscriptionService) DeletePendingBefore(t time.Time) (int, error) {
	query := ss.db.stormDB.Select(q.And(
		q.Eq("Status", mailward.StatusPendingConfirmation),
		q.Lt("CreatedAt", t),
	))

	var stale []mailward.Subscription
	if err := query.Find(&stale); err != nil {
		if errors.Is(err, storm.ErrNotFound) {
			return 0, nil
		}
		return 0, errors.Errorf("failed to find stale subscriptions: %v", err)
	}

	if err := query.Delete(new(mailward.Subscription)); err != nil {
		return 0, errors.Errorf("failed to delete stale subscriptions: %v", err)
	}

	return len(stale), nil
}
