// Package mocks provides testify mocks for the domain interfaces, shared by
// the application and interface layer tests.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/SolBenven/proyecto-final/internal/domain/claim"
)

// ClaimRepository mocks claim.Repository.
type ClaimRepository struct {
	mock.Mock
}

func (m *ClaimRepository) Create(ctx context.Context, c *claim.Claim) error {
	return m.Called(ctx, c).Error(0)
}

func (m *ClaimRepository) GetByID(ctx context.Context, id int64) (*claim.Claim, error) {
	args := m.Called(ctx, id)
	if c := args.Get(0); c != nil {
		return c.(*claim.Claim), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ClaimRepository) GetByIdempotencyKey(ctx context.Context, key string) (*claim.Claim, error) {
	args := m.Called(ctx, key)
	if c := args.Get(0); c != nil {
		return c.(*claim.Claim), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ClaimRepository) ListPending(ctx context.Context, departmentID *int64) ([]*claim.Claim, error) {
	args := m.Called(ctx, departmentID)
	if c := args.Get(0); c != nil {
		return c.([]*claim.Claim), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ClaimRepository) List(ctx context.Context, filter claim.ListFilter) ([]*claim.Claim, error) {
	args := m.Called(ctx, filter)
	if c := args.Get(0); c != nil {
		return c.([]*claim.Claim), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ClaimRepository) ListByCreator(ctx context.Context, accountID int64) ([]*claim.Claim, error) {
	args := m.Called(ctx, accountID)
	if c := args.Get(0); c != nil {
		return c.([]*claim.Claim), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ClaimRepository) ListBySupporter(ctx context.Context, accountID int64) ([]*claim.Claim, error) {
	args := m.Called(ctx, accountID)
	if c := args.Get(0); c != nil {
		return c.([]*claim.Claim), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ClaimRepository) SetStatus(ctx context.Context, id int64, status claim.Status) error {
	return m.Called(ctx, id, status).Error(0)
}

func (m *ClaimRepository) SetDepartment(ctx context.Context, id, departmentID int64) error {
	return m.Called(ctx, id, departmentID).Error(0)
}

func (m *ClaimRepository) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *ClaimRepository) AddStatusChange(ctx context.Context, sc *claim.StatusChange) error {
	return m.Called(ctx, sc).Error(0)
}

func (m *ClaimRepository) ListStatusChanges(ctx context.Context, claimID int64) ([]*claim.StatusChange, error) {
	args := m.Called(ctx, claimID)
	if c := args.Get(0); c != nil {
		return c.([]*claim.StatusChange), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ClaimRepository) DeleteStatusChanges(ctx context.Context, claimID int64) error {
	return m.Called(ctx, claimID).Error(0)
}

func (m *ClaimRepository) AddSupporter(ctx context.Context, claimID, accountID int64) error {
	return m.Called(ctx, claimID, accountID).Error(0)
}

func (m *ClaimRepository) RemoveSupporter(ctx context.Context, claimID, accountID int64) error {
	return m.Called(ctx, claimID, accountID).Error(0)
}

func (m *ClaimRepository) IsSupporter(ctx context.Context, claimID, accountID int64) (bool, error) {
	args := m.Called(ctx, claimID, accountID)
	return args.Bool(0), args.Error(1)
}

func (m *ClaimRepository) ListSupporterIDs(ctx context.Context, claimID int64) ([]int64, error) {
	args := m.Called(ctx, claimID)
	if c := args.Get(0); c != nil {
		return c.([]int64), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ClaimRepository) DeleteSupporters(ctx context.Context, claimID int64) error {
	return m.Called(ctx, claimID).Error(0)
}

func (m *ClaimRepository) AddTransfer(ctx context.Context, t *claim.Transfer) error {
	return m.Called(ctx, t).Error(0)
}

func (m *ClaimRepository) ListTransfers(ctx context.Context, claimID int64) ([]*claim.Transfer, error) {
	args := m.Called(ctx, claimID)
	if c := args.Get(0); c != nil {
		return c.([]*claim.Transfer), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ClaimRepository) DeleteTransfers(ctx context.Context, claimID int64) error {
	return m.Called(ctx, claimID).Error(0)
}

func (m *ClaimRepository) CountByStatus(ctx context.Context, departmentIDs []int64) (claim.StatusCounts, error) {
	args := m.Called(ctx, departmentIDs)
	if c := args.Get(0); c != nil {
		return c.(claim.StatusCounts), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ClaimRepository) CountByDepartmentAndStatus(ctx context.Context, departmentIDs []int64) (map[int64]claim.StatusCounts, error) {
	args := m.Called(ctx, departmentIDs)
	if c := args.Get(0); c != nil {
		return c.(map[int64]claim.StatusCounts), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ClaimRepository) ListDetails(ctx context.Context, departmentIDs []int64) ([]string, error) {
	args := m.Called(ctx, departmentIDs)
	if c := args.Get(0); c != nil {
		return c.([]string), args.Error(1)
	}
	return nil, args.Error(1)
}

// ClaimService mocks claim.Service.
type ClaimService struct {
	mock.Mock
}

func (m *ClaimService) Create(ctx context.Context, c *claim.Claim) (*claim.Claim, error) {
	args := m.Called(ctx, c)
	if v := args.Get(0); v != nil {
		return v.(*claim.Claim), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ClaimService) GetByID(ctx context.Context, id int64) (*claim.Claim, error) {
	args := m.Called(ctx, id)
	if v := args.Get(0); v != nil {
		return v.(*claim.Claim), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ClaimService) UpdateStatus(ctx context.Context, claimID int64, newStatus claim.Status, changedByID int64) error {
	return m.Called(ctx, claimID, newStatus, changedByID).Error(0)
}

func (m *ClaimService) AddSupporter(ctx context.Context, claimID, accountID int64) error {
	return m.Called(ctx, claimID, accountID).Error(0)
}

func (m *ClaimService) RemoveSupporter(ctx context.Context, claimID, accountID int64) error {
	return m.Called(ctx, claimID, accountID).Error(0)
}

func (m *ClaimService) IsSupporter(ctx context.Context, claimID, accountID int64) (bool, error) {
	args := m.Called(ctx, claimID, accountID)
	return args.Bool(0), args.Error(1)
}

func (m *ClaimService) SupporterIDs(ctx context.Context, claimID int64) ([]int64, error) {
	args := m.Called(ctx, claimID)
	if v := args.Get(0); v != nil {
		return v.([]int64), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ClaimService) Transfer(ctx context.Context, claimID, toDepartmentID, byID int64, reason string) (*claim.Transfer, error) {
	args := m.Called(ctx, claimID, toDepartmentID, byID, reason)
	if v := args.Get(0); v != nil {
		return v.(*claim.Transfer), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ClaimService) Delete(ctx context.Context, claimID int64) error {
	return m.Called(ctx, claimID).Error(0)
}

func (m *ClaimService) ListByCreator(ctx context.Context, accountID int64) ([]*claim.Claim, error) {
	args := m.Called(ctx, accountID)
	if v := args.Get(0); v != nil {
		return v.([]*claim.Claim), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ClaimService) ListSupported(ctx context.Context, accountID int64) ([]*claim.Claim, error) {
	args := m.Called(ctx, accountID)
	if v := args.Get(0); v != nil {
		return v.([]*claim.Claim), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ClaimService) History(ctx context.Context, claimID int64) ([]*claim.StatusChange, error) {
	args := m.Called(ctx, claimID)
	if v := args.Get(0); v != nil {
		return v.([]*claim.StatusChange), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ClaimService) Transfers(ctx context.Context, claimID int64) ([]*claim.Transfer, error) {
	args := m.Called(ctx, claimID)
	if v := args.Get(0); v != nil {
		return v.([]*claim.Transfer), args.Error(1)
	}
	return nil, args.Error(1)
}
