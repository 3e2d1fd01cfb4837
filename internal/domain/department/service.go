package department

import (
	"context"

	"github.com/SolBenven/proyecto-final/internal/domain/access"
	"github.com/SolBenven/proyecto-final/internal/domain/account"
	"github.com/SolBenven/proyecto-final/internal/infrastructure/monitoring/logging"
)

// Service exposes department queries to the application layer.
type Service interface {
	// List returns every department ordered by display name.
	List(ctx context.Context) ([]*Department, error)

	// GetByID returns one department or a DEPT_001 error.
	GetByID(ctx context.Context, id int64) (*Department, error)

	// GetByName looks a department up by its internal name.
	GetByName(ctx context.Context, name string) (*Department, error)

	// TechnicalSecretariat returns the fallback department.
	TechnicalSecretariat(ctx context.Context) (*Department, error)

	// ListVisible returns the departments the actor's scope covers,
	// ordered by display name.  Empty scopes yield an empty list.
	ListVisible(ctx context.Context, actor account.Actor) ([]*Department, error)

	// ListTransferTargets returns every department except the one the claim
	// currently belongs to.
	ListTransferTargets(ctx context.Context, currentDepartmentID int64) ([]*Department, error)
}

type service struct {
	repo Repository
	log  logging.Logger
}

// NewService builds the department service.
func NewService(repo Repository, log logging.Logger) Service {
	return &service{repo: repo, log: log.Named("department")}
}

func (s *service) List(ctx context.Context) ([]*Department, error) {
	return s.repo.List(ctx)
}

func (s *service) GetByID(ctx context.Context, id int64) (*Department, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) GetByName(ctx context.Context, name string) (*Department, error) {
	return s.repo.GetByName(ctx, name)
}

func (s *service) TechnicalSecretariat(ctx context.Context) (*Department, error) {
	return s.repo.GetTechnicalSecretariat(ctx)
}

func (s *service) ListVisible(ctx context.Context, actor account.Actor) ([]*Department, error) {
	scope := access.ScopeFor(actor)
	switch {
	case scope.All:
		return s.repo.List(ctx)
	case scope.Empty():
		return nil, nil
	default:
		return s.repo.ListByIDs(ctx, []int64{scope.DepartmentID})
	}
}

func (s *service) ListTransferTargets(ctx context.Context, currentDepartmentID int64) ([]*Department, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	targets := make([]*Department, 0, len(all))
	for _, d := range all {
		if d.ID != currentDepartmentID {
			targets = append(targets, d)
		}
	}
	return targets, nil
}
