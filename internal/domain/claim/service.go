package claim

import (
	"context"
	"strings"
	"time"

	"github.com/SolBenven/proyecto-final/internal/domain/department"
	"github.com/SolBenven/proyecto-final/internal/domain/notification"
	"github.com/SolBenven/proyecto-final/internal/infrastructure/monitoring/logging"
	"github.com/SolBenven/proyecto-final/pkg/errors"
)

// Service is the claim lifecycle: persistence of new claims, status changes
// with notification fan-out, supporter management, transfers, and deletion.
// Every multi-row mutation runs inside one transaction.
type Service interface {
	// Create persists a claim already routed to a department.  When the
	// claim carries an idempotency key, retries return the claim created
	// by the first attempt instead of filing a duplicate.
	Create(ctx context.Context, c *Claim) (*Claim, error)

	// GetByID returns one claim or a CLAIM_001 error.
	GetByID(ctx context.Context, id int64) (*Claim, error)

	// UpdateStatus moves a claim to newStatus, appends the history entry,
	// and fans out one notification to the creator and each supporter, all
	// atomically.  An unchanged status is a CLAIM_003 error.
	UpdateStatus(ctx context.Context, claimID int64, newStatus Status, changedByID int64) error

	// AddSupporter adheres an account to a claim.  Creators cannot support
	// their own claims and double adhesion is rejected.
	AddSupporter(ctx context.Context, claimID, accountID int64) error

	// RemoveSupporter removes an adhesion; absence is a CLAIM_007 error.
	RemoveSupporter(ctx context.Context, claimID, accountID int64) error

	// IsSupporter reports whether the account supports the claim.
	IsSupporter(ctx context.Context, claimID, accountID int64) (bool, error)

	// SupporterIDs returns supporter account IDs in adhesion order.
	SupporterIDs(ctx context.Context, claimID int64) ([]int64, error)

	// Transfer moves a claim to another department, recording the transfer
	// atomically with the reassignment.
	Transfer(ctx context.Context, claimID, toDepartmentID, byID int64, reason string) (*Transfer, error)

	// Delete removes a claim and everything hanging off it, in dependency
	// order: notifications, status history, supporters, transfers, claim.
	Delete(ctx context.Context, claimID int64) error

	// ListByCreator returns the claims an account filed, newest first.
	ListByCreator(ctx context.Context, accountID int64) ([]*Claim, error)

	// ListSupported returns the claims an account supports, most recently
	// supported first.
	ListSupported(ctx context.Context, accountID int64) ([]*Claim, error)

	// History returns a claim's status changes, newest first.
	History(ctx context.Context, claimID int64) ([]*StatusChange, error)

	// Transfers returns a claim's transfer records, newest first.
	Transfers(ctx context.Context, claimID int64) ([]*Transfer, error)
}

type service struct {
	repo      Repository
	notifRepo notification.Repository
	deptRepo  department.Repository
	counter   notification.UnreadCounter
	tx        TxRunner
	publisher EventPublisher
	log       logging.Logger
	now       func() time.Time
}

// NewService builds the claim lifecycle service.
func NewService(
	repo Repository,
	notifRepo notification.Repository,
	deptRepo department.Repository,
	counter notification.UnreadCounter,
	tx TxRunner,
	publisher EventPublisher,
	log logging.Logger,
) Service {
	return &service{
		repo:      repo,
		notifRepo: notifRepo,
		deptRepo:  deptRepo,
		counter:   counter,
		tx:        tx,
		publisher: publisher,
		log:       log.Named("claim"),
		now:       time.Now,
	}
}

func (s *service) Create(ctx context.Context, c *Claim) (*Claim, error) {
	if c.IdempotencyKey != nil {
		existing, err := s.repo.GetByIdempotencyKey(ctx, *c.IdempotencyKey)
		if err == nil {
			s.log.Info("claim creation replayed from idempotency key",
				logging.Int64("claim_id", existing.ID))
			return existing, nil
		}
		if !errors.IsCode(err, errors.ErrCodeClaimNotFound) {
			return nil, err
		}
	}

	c.Status = StatusPending
	if err := s.repo.Create(ctx, c); err != nil {
		// A concurrent retry may have won the unique race on the key.
		if c.IdempotencyKey != nil && errors.IsCode(err, errors.ErrCodeConflict) {
			return s.repo.GetByIdempotencyKey(ctx, *c.IdempotencyKey)
		}
		return nil, err
	}

	s.publish(ctx, Event{
		Type:         EventCreated,
		ClaimID:      c.ID,
		DepartmentID: c.DepartmentID,
		Status:       c.Status,
		ActorID:      c.CreatorID,
		OccurredAt:   s.now(),
	})
	return c, nil
}

func (s *service) GetByID(ctx context.Context, id int64) (*Claim, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) UpdateStatus(ctx context.Context, claimID int64, newStatus Status, changedByID int64) error {
	if !newStatus.Valid() {
		return errors.Newf(errors.ErrCodeStatusInvalid, "unknown claim status %q", newStatus)
	}

	var (
		departmentID int64
		recipients   []int64
	)
	err := s.tx.WithTx(ctx, func(ctx context.Context) error {
		c, err := s.repo.GetByID(ctx, claimID)
		if err != nil {
			return err
		}
		if c.Status == newStatus {
			return errors.New(errors.ErrCodeStatusUnchanged, "claim is already in that status")
		}
		departmentID = c.DepartmentID

		if err := s.repo.SetStatus(ctx, claimID, newStatus); err != nil {
			return err
		}

		sc := &StatusChange{
			ClaimID:     claimID,
			OldStatus:   c.Status,
			NewStatus:   newStatus,
			ChangedByID: changedByID,
			ChangedAt:   s.now(),
		}
		if err := s.repo.AddStatusChange(ctx, sc); err != nil {
			return err
		}

		supporterIDs, err := s.repo.ListSupporterIDs(ctx, claimID)
		if err != nil {
			return err
		}
		recipients = append([]int64{c.CreatorID}, supporterIDs...)
		return s.notifRepo.CreateBatch(ctx, sc.ID, recipients)
	})
	if err != nil {
		return err
	}

	s.counter.Invalidate(ctx, recipients...)
	s.publish(ctx, Event{
		Type:         EventStatusChanged,
		ClaimID:      claimID,
		DepartmentID: departmentID,
		Status:       newStatus,
		ActorID:      changedByID,
		OccurredAt:   s.now(),
	})
	return nil
}

func (s *service) AddSupporter(ctx context.Context, claimID, accountID int64) error {
	c, err := s.repo.GetByID(ctx, claimID)
	if err != nil {
		return err
	}
	if c.CreatorID == accountID {
		return errors.New(errors.ErrCodeOwnClaimSupport, "cannot support your own claim")
	}
	// The unique constraint is the final arbiter under concurrency; the
	// repository maps its violation to the same CLAIM_006 error.
	return s.repo.AddSupporter(ctx, claimID, accountID)
}

func (s *service) RemoveSupporter(ctx context.Context, claimID, accountID int64) error {
	if _, err := s.repo.GetByID(ctx, claimID); err != nil {
		return err
	}
	return s.repo.RemoveSupporter(ctx, claimID, accountID)
}

func (s *service) IsSupporter(ctx context.Context, claimID, accountID int64) (bool, error) {
	return s.repo.IsSupporter(ctx, claimID, accountID)
}

func (s *service) SupporterIDs(ctx context.Context, claimID int64) ([]int64, error) {
	return s.repo.ListSupporterIDs(ctx, claimID)
}

func (s *service) Transfer(ctx context.Context, claimID, toDepartmentID, byID int64, reason string) (*Transfer, error) {
	var transfer *Transfer
	err := s.tx.WithTx(ctx, func(ctx context.Context) error {
		c, err := s.repo.GetByID(ctx, claimID)
		if err != nil {
			return err
		}
		if _, err := s.deptRepo.GetByID(ctx, toDepartmentID); err != nil {
			return err
		}
		if c.DepartmentID == toDepartmentID {
			return errors.New(errors.ErrCodeSameDepartment, "claim already belongs to that department")
		}

		transfer = &Transfer{
			ClaimID:          claimID,
			FromDepartmentID: c.DepartmentID,
			ToDepartmentID:   toDepartmentID,
			TransferredByID:  byID,
			Reason:           trimmedReason(reason),
			TransferredAt:    s.now(),
		}
		if err := s.repo.AddTransfer(ctx, transfer); err != nil {
			return err
		}
		return s.repo.SetDepartment(ctx, claimID, toDepartmentID)
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, Event{
		Type:         EventTransferred,
		ClaimID:      claimID,
		DepartmentID: toDepartmentID,
		ActorID:      byID,
		OccurredAt:   s.now(),
	})
	return transfer, nil
}

func (s *service) Delete(ctx context.Context, claimID int64) error {
	var (
		departmentID int64
		affected     []int64
	)
	err := s.tx.WithTx(ctx, func(ctx context.Context) error {
		c, err := s.repo.GetByID(ctx, claimID)
		if err != nil {
			return err
		}
		departmentID = c.DepartmentID

		// Dependency order: notifications reference history entries, which
		// reference the claim, as do supporters and transfers.
		affected, err = s.notifRepo.DeleteForClaim(ctx, claimID)
		if err != nil {
			return err
		}
		if err := s.repo.DeleteStatusChanges(ctx, claimID); err != nil {
			return err
		}
		if err := s.repo.DeleteSupporters(ctx, claimID); err != nil {
			return err
		}
		if err := s.repo.DeleteTransfers(ctx, claimID); err != nil {
			return err
		}
		return s.repo.Delete(ctx, claimID)
	})
	if err != nil {
		return err
	}

	s.counter.Invalidate(ctx, affected...)
	s.publish(ctx, Event{
		Type:         EventDeleted,
		ClaimID:      claimID,
		DepartmentID: departmentID,
		OccurredAt:   s.now(),
	})
	return nil
}

func (s *service) ListByCreator(ctx context.Context, accountID int64) ([]*Claim, error) {
	return s.repo.ListByCreator(ctx, accountID)
}

func (s *service) ListSupported(ctx context.Context, accountID int64) ([]*Claim, error) {
	return s.repo.ListBySupporter(ctx, accountID)
}

func (s *service) History(ctx context.Context, claimID int64) ([]*StatusChange, error) {
	return s.repo.ListStatusChanges(ctx, claimID)
}

func (s *service) Transfers(ctx context.Context, claimID int64) ([]*Transfer, error) {
	return s.repo.ListTransfers(ctx, claimID)
}

func (s *service) publish(ctx context.Context, ev Event) {
	if err := s.publisher.Publish(ctx, ev); err != nil {
		s.log.Warn("failed to publish claim event",
			logging.String("event_type", string(ev.Type)),
			logging.Int64("claim_id", ev.ClaimID),
			logging.Err(err))
	}
}

func trimmedReason(reason string) *string {
	r := strings.TrimSpace(reason)
	if r == "" {
		return nil
	}
	return &r
}
