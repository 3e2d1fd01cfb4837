// Package notification manages the per-user notifications generated when a
// claim changes status.  One status change produces one notification row per
// affected user, so read state is tracked individually.
package notification

import (
	"context"
	"time"
)

// Notification is one unread/read marker for one user and one status change.
type Notification struct {
	ID             int64
	AccountID      int64
	StatusChangeID int64
	CreatedAt      time.Time
	ReadAt         *time.Time
}

// IsRead reports whether the notification was already read.
func (n *Notification) IsRead() bool {
	return n.ReadAt != nil
}

// Detail is a notification joined with the status change and claim context a
// user needs to understand it without further lookups.
type Detail struct {
	Notification
	ClaimID       int64
	ClaimDetail   string
	OldStatus     string
	NewStatus     string
	ChangedByName string
	ChangedAt     time.Time
}

// Repository provides notification persistence.
type Repository interface {
	// CreateBatch inserts one notification per account for a status change.
	CreateBatch(ctx context.Context, statusChangeID int64, accountIDs []int64) error

	// GetByID returns one notification or an NTF_001 error.
	GetByID(ctx context.Context, id int64) (*Notification, error)

	// ListPending returns the unread notifications of an account with their
	// claim context, newest first.
	ListPending(ctx context.Context, accountID int64) ([]*Detail, error)

	// CountUnread returns the number of unread notifications of an account.
	CountUnread(ctx context.Context, accountID int64) (int64, error)

	// MarkRead stamps one notification as read.  Already-read notifications
	// are left untouched.
	MarkRead(ctx context.Context, id int64, readAt time.Time) error

	// MarkAllRead stamps every unread notification of an account and returns
	// how many were affected.
	MarkAllRead(ctx context.Context, accountID int64, readAt time.Time) (int64, error)

	// DeleteForClaim removes every notification attached to the claim's
	// status history, returning the affected account IDs for cache
	// invalidation.
	DeleteForClaim(ctx context.Context, claimID int64) ([]int64, error)
}

// UnreadCounter caches per-account unread counts.  The redis implementation
// backs the navigation badge; a failing cache degrades to database counts.
type UnreadCounter interface {
	// Get returns the cached count; ok is false on miss or cache failure.
	Get(ctx context.Context, accountID int64) (count int64, ok bool)

	// Set stores the count.
	Set(ctx context.Context, accountID int64, count int64)

	// Invalidate drops the cached counts for the given accounts.
	Invalidate(ctx context.Context, accountIDs ...int64)
}
