// Package adminops exposes the administrative claim operations, applying the
// actor's department scope before touching the lifecycle.
package adminops

import (
	"context"

	"github.com/SolBenven/proyecto-final/internal/domain/access"
	"github.com/SolBenven/proyecto-final/internal/domain/account"
	"github.com/SolBenven/proyecto-final/internal/domain/claim"
	"github.com/SolBenven/proyecto-final/internal/domain/department"
	"github.com/SolBenven/proyecto-final/internal/infrastructure/monitoring/logging"
	"github.com/SolBenven/proyecto-final/internal/infrastructure/monitoring/metrics"
	"github.com/SolBenven/proyecto-final/pkg/errors"
)

// Service is the admin-facing claim surface.  Every operation checks the
// actor's scope; out-of-scope claims behave as if they did not exist for
// reads and are refused for writes.
type Service interface {
	// ListClaims returns the claims the actor may see, newest first.  A
	// department filter outside the actor's scope yields an empty list.
	ListClaims(ctx context.Context, actor account.Actor, departmentID *int64) ([]*claim.Claim, error)

	// GetClaim returns one claim the actor may manage, or CLAIM_009.
	GetClaim(ctx context.Context, actor account.Actor, claimID int64) (*claim.Claim, error)

	// UpdateStatus changes a claim's status on behalf of the actor.
	UpdateStatus(ctx context.Context, actor account.Actor, claimID int64, newStatus claim.Status) error

	// TransferClaim moves a claim to another department.  Technical
	// secretary only.
	TransferClaim(ctx context.Context, actor account.Actor, claimID, toDepartmentID int64, reason string) (*claim.Transfer, error)

	// TransferTargets lists the departments a claim could be moved to.
	TransferTargets(ctx context.Context, actor account.Actor, claimID int64) ([]*department.Department, error)

	// DeleteClaim removes a claim and its dependents.  Technical secretary
	// only.
	DeleteClaim(ctx context.Context, actor account.Actor, claimID int64) error

	// SupporterIDs lists the supporters of a claim the actor manages.
	SupporterIDs(ctx context.Context, actor account.Actor, claimID int64) ([]int64, error)

	// History returns the status history of a claim the actor manages.
	History(ctx context.Context, actor account.Actor, claimID int64) ([]*claim.StatusChange, error)

	// Transfers returns the transfer history of a claim the actor manages.
	Transfers(ctx context.Context, actor account.Actor, claimID int64) ([]*claim.Transfer, error)
}

type service struct {
	claims    claim.Service
	claimRepo claim.Repository
	depts     department.Service
	metrics   *metrics.Metrics
	log       logging.Logger
}

// NewService builds the admin operations service.
func NewService(
	claims claim.Service,
	claimRepo claim.Repository,
	depts department.Service,
	m *metrics.Metrics,
	log logging.Logger,
) Service {
	return &service{
		claims:    claims,
		claimRepo: claimRepo,
		depts:     depts,
		metrics:   m,
		log:       log.Named("adminops"),
	}
}

func (s *service) ListClaims(ctx context.Context, actor account.Actor, departmentID *int64) ([]*claim.Claim, error) {
	scope := access.ScopeFor(actor)
	if scope.Empty() {
		return nil, nil
	}

	filter := claim.ListFilter{}
	switch {
	case departmentID != nil:
		if !scope.Allows(*departmentID) {
			return nil, nil
		}
		filter.DepartmentIDs = []int64{*departmentID}
	case !scope.All:
		filter.DepartmentIDs = []int64{scope.DepartmentID}
	}
	return s.claimRepo.List(ctx, filter)
}

func (s *service) GetClaim(ctx context.Context, actor account.Actor, claimID int64) (*claim.Claim, error) {
	return s.managedClaim(ctx, actor, claimID)
}

func (s *service) UpdateStatus(ctx context.Context, actor account.Actor, claimID int64, newStatus claim.Status) error {
	if _, err := s.managedClaim(ctx, actor, claimID); err != nil {
		return err
	}
	if err := s.claims.UpdateStatus(ctx, claimID, newStatus, actor.AccountID); err != nil {
		return err
	}
	s.metrics.StatusChanges.WithLabelValues(string(newStatus)).Inc()
	return nil
}

func (s *service) TransferClaim(ctx context.Context, actor account.Actor, claimID, toDepartmentID int64, reason string) (*claim.Transfer, error) {
	if !access.CanTransfer(actor) {
		return nil, errors.New(errors.ErrCodeClaimAccessDenied, "only the technical secretary may transfer claims")
	}
	return s.claims.Transfer(ctx, claimID, toDepartmentID, actor.AccountID, reason)
}

func (s *service) TransferTargets(ctx context.Context, actor account.Actor, claimID int64) ([]*department.Department, error) {
	if !access.CanTransfer(actor) {
		return nil, errors.New(errors.ErrCodeClaimAccessDenied, "only the technical secretary may transfer claims")
	}
	c, err := s.claims.GetByID(ctx, claimID)
	if err != nil {
		return nil, err
	}
	return s.depts.ListTransferTargets(ctx, c.DepartmentID)
}

func (s *service) DeleteClaim(ctx context.Context, actor account.Actor, claimID int64) error {
	if !actor.IsTechnicalSecretary() {
		return errors.New(errors.ErrCodeClaimAccessDenied, "only the technical secretary may delete claims")
	}
	if err := s.claims.Delete(ctx, claimID); err != nil {
		return err
	}
	s.log.Info("claim deleted",
		logging.Int64("claim_id", claimID),
		logging.Int64("deleted_by", actor.AccountID))
	return nil
}

func (s *service) SupporterIDs(ctx context.Context, actor account.Actor, claimID int64) ([]int64, error) {
	if _, err := s.managedClaim(ctx, actor, claimID); err != nil {
		return nil, err
	}
	return s.claims.SupporterIDs(ctx, claimID)
}

func (s *service) History(ctx context.Context, actor account.Actor, claimID int64) ([]*claim.StatusChange, error) {
	if _, err := s.managedClaim(ctx, actor, claimID); err != nil {
		return nil, err
	}
	return s.claims.History(ctx, claimID)
}

func (s *service) Transfers(ctx context.Context, actor account.Actor, claimID int64) ([]*claim.Transfer, error) {
	if _, err := s.managedClaim(ctx, actor, claimID); err != nil {
		return nil, err
	}
	return s.claims.Transfers(ctx, claimID)
}

// managedClaim loads a claim and verifies the actor's scope covers it.
func (s *service) managedClaim(ctx context.Context, actor account.Actor, claimID int64) (*claim.Claim, error) {
	c, err := s.claims.GetByID(ctx, claimID)
	if err != nil {
		return nil, err
	}
	if !access.CanManage(actor, c.DepartmentID) {
		return nil, errors.New(errors.ErrCodeClaimAccessDenied, "claim is outside your department scope")
	}
	return c, nil
}
