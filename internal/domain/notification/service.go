package notification

import (
	"context"
	"time"

	"github.com/SolBenven/proyecto-final/internal/infrastructure/monitoring/logging"
	"github.com/SolBenven/proyecto-final/pkg/errors"
)

// Service exposes the notification operations available to end users.
type Service interface {
	// ListPending returns the unread notifications of an account, newest
	// first, with their claim context.
	ListPending(ctx context.Context, accountID int64) ([]*Detail, error)

	// UnreadCount returns the unread badge count, served from cache when
	// possible.
	UnreadCount(ctx context.Context, accountID int64) (int64, error)

	// MarkRead marks one notification as read.  Only the owner may do so.
	MarkRead(ctx context.Context, notificationID, accountID int64) error

	// MarkAllRead marks every unread notification of the account and
	// returns how many were affected.
	MarkAllRead(ctx context.Context, accountID int64) (int64, error)
}

type service struct {
	repo    Repository
	counter UnreadCounter
	log     logging.Logger
	now     func() time.Time
}

// NewService builds the notification service.  counter may be a no-op
// implementation when caching is disabled.
func NewService(repo Repository, counter UnreadCounter, log logging.Logger) Service {
	return &service{
		repo:    repo,
		counter: counter,
		log:     log.Named("notification"),
		now:     time.Now,
	}
}

func (s *service) ListPending(ctx context.Context, accountID int64) ([]*Detail, error) {
	return s.repo.ListPending(ctx, accountID)
}

func (s *service) UnreadCount(ctx context.Context, accountID int64) (int64, error) {
	if count, ok := s.counter.Get(ctx, accountID); ok {
		return count, nil
	}

	count, err := s.repo.CountUnread(ctx, accountID)
	if err != nil {
		return 0, err
	}
	s.counter.Set(ctx, accountID, count)
	return count, nil
}

func (s *service) MarkRead(ctx context.Context, notificationID, accountID int64) error {
	n, err := s.repo.GetByID(ctx, notificationID)
	if err != nil {
		return err
	}
	if n.AccountID != accountID {
		return errors.New(errors.ErrCodeNotificationOwner, "notification belongs to another account")
	}
	if n.IsRead() {
		return nil
	}

	if err := s.repo.MarkRead(ctx, notificationID, s.now()); err != nil {
		return err
	}
	s.counter.Invalidate(ctx, accountID)
	return nil
}

func (s *service) MarkAllRead(ctx context.Context, accountID int64) (int64, error) {
	affected, err := s.repo.MarkAllRead(ctx, accountID, s.now())
	if err != nil {
		return 0, err
	}
	if affected > 0 {
		s.counter.Invalidate(ctx, accountID)
	}
	return affected, nil
}
