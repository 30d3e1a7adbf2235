package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

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

const columns = "id, email, name, token, status, created_at"

func scanSubscription(row *sql.Row) (*mailward.Subscription, error) {
	var s mailward.Subscription
	err := row.Scan(&s.ID, &s.Email, &s.Name, &s.Token, &s.Status, &s.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// FindByEmail finds a subscription by email
func (ss *subscriptionService) FindByEmail(email string) (*mailward.Subscription, error) {
	row := ss.db.sqlDB.QueryRow("SELECT "+columns+" FROM subscriptions WHERE email = ?", email)
	s, err := scanSubscription(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &mailward.Error{Code: mailward.ErrNotFound, Op: "FindByEmail", Message: "subscription not found"}
		}
		return nil, fmt.Errorf("failed to find by email %s: %w", email, err)
	}
	return s, nil
}

// FindByToken finds a subscription by its confirmation token
func (ss *subscriptionService) FindByToken(token string) (*mailward.Subscription, error) {
	row := ss.db.sqlDB.QueryRow("SELECT "+columns+" FROM subscriptions WHERE token = ?", token)
	s, err := scanSubscription(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &mailward.Error{Code: mailward.ErrNotFound, Op: "FindByToken", Message: "subscription not found"}
		}
		return nil, fmt.Errorf("failed to find by token: %w", err)
	}
	return s, nil
}

// FindByStatus finds subscriptions by status
func (ss *subscriptionService) FindByStatus(status string) ([]mailward.Subscription, error) {
	rows, err := ss.db.sqlDB.Query("SELECT "+columns+" FROM subscriptions WHERE status = ?", status)
	if err != nil {
		return nil, fmt.Errorf("failed to find by status: %w", err)
	}
	defer rows.Close()

	var subscriptions []mailward.Subscription
	for rows.Next() {
		var s mailward.Subscription
		if err := rows.Scan(&s.ID, &s.Email, &s.Name, &s.Token, &s.Status, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		subscriptions = append(subscriptions, s)
	}

	return subscriptions, rows.Err()
}

// Insert inserts a new pending subscription
func (ss *subscriptionService) Insert(s *mailward.Subscription) error {
	_, err := ss.db.sqlDB.Exec("INSERT INTO subscriptions (email, name, token, status, created_at) VALUES (?, ?, ?, ?, ?)",
		s.Email, s.Name, s.Token, s.Status, s.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert: %w", err)
	}
	return nil
}

// Update moves the subscription back to pending with a fresh token
func (ss *subscriptionService) Update(email, token string) error {
	_, err := ss.db.sqlDB.Exec("UPDATE subscriptions SET status = ?, token = ?, created_at = ? WHERE email = ?",
		mailward.StatusPendingConfirmation, token, time.Now().UTC(), email)
	if err != nil {
		return fmt.Errorf("failed to update: %w", err)
	}
	return nil
}

// Confirm moves the subscription bound to token to confirmed and
// reports whether this call made the transition. The compare-and-set is
// a single statement keyed by token, so concurrent confirmations of the
// same token cannot interleave and at most one of them reports true.
func (ss *subscriptionService) Confirm(token string) (bool, error) {
	res, err := ss.db.sqlDB.Exec("UPDATE subscriptions SET status = ? WHERE token = ? AND status <> ?",
		mailward.StatusConfirmed, token, mailward.StatusConfirmed)
	if err != nil {
		return false, fmt.Errorf("failed to confirm: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Unsubscribe unsubscribes from the newsletter
func (ss *subscriptionService) Unsubscribe(email string) error {
	_, err := ss.db.sqlDB.Exec("UPDATE subscriptions SET status = ? WHERE email = ?",
		mailward.StatusUnsubscribed, email)
	if err != nil {
		return fmt.Errorf("failed to update status: %w", err)
	}
	return nil
}

// DeletePendingBefore removes pending subscriptions created before t and
// returns how many were removed.
func (ss *subscriptionService) DeletePendingBefore(t time.Time) (int, error) {
	res, err := ss.db.sqlDB.Exec("DELETE FROM subscriptions WHERE status = ? AND created_at < ?",
		mailward.StatusPendingConfirmation, t)
	if err != nil {
		return 0, fmt.Errorf("failed to delete stale subscriptions: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(n), nil
}
