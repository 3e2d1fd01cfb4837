package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/SolBenven/proyecto-final/internal/domain/account"
	"github.com/SolBenven/proyecto-final/internal/domain/department"
)

// DepartmentRepository mocks department.Repository.
type DepartmentRepository struct {
	mock.Mock
}

func (m *DepartmentRepository) GetByID(ctx context.Context, id int64) (*department.Department, error) {
	args := m.Called(ctx, id)
	if d := args.Get(0); d != nil {
		return d.(*department.Department), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *DepartmentRepository) GetByName(ctx context.Context, name string) (*department.Department, error) {
	args := m.Called(ctx, name)
	if d := args.Get(0); d != nil {
		return d.(*department.Department), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *DepartmentRepository) GetTechnicalSecretariat(ctx context.Context) (*department.Department, error) {
	args := m.Called(ctx)
	if d := args.Get(0); d != nil {
		return d.(*department.Department), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *DepartmentRepository) List(ctx context.Context) ([]*department.Department, error) {
	args := m.Called(ctx)
	if d := args.Get(0); d != nil {
		return d.([]*department.Department), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *DepartmentRepository) ListByIDs(ctx context.Context, ids []int64) ([]*department.Department, error) {
	args := m.Called(ctx, ids)
	if d := args.Get(0); d != nil {
		return d.([]*department.Department), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *DepartmentRepository) Create(ctx context.Context, d *department.Department) error {
	return m.Called(ctx, d).Error(0)
}

// DepartmentService mocks department.Service.
type DepartmentService struct {
	mock.Mock
}

func (m *DepartmentService) List(ctx context.Context) ([]*department.Department, error) {
	args := m.Called(ctx)
	if d := args.Get(0); d != nil {
		return d.([]*department.Department), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *DepartmentService) GetByID(ctx context.Context, id int64) (*department.Department, error) {
	args := m.Called(ctx, id)
	if d := args.Get(0); d != nil {
		return d.(*department.Department), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *DepartmentService) GetByName(ctx context.Context, name string) (*department.Department, error) {
	args := m.Called(ctx, name)
	if d := args.Get(0); d != nil {
		return d.(*department.Department), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *DepartmentService) TechnicalSecretariat(ctx context.Context) (*department.Department, error) {
	args := m.Called(ctx)
	if d := args.Get(0); d != nil {
		return d.(*department.Department), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *DepartmentService) ListVisible(ctx context.Context, actor account.Actor) ([]*department.Department, error) {
	args := m.Called(ctx, actor)
	if d := args.Get(0); d != nil {
		return d.([]*department.Department), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *DepartmentService) ListTransferTargets(ctx context.Context, currentDepartmentID int64) ([]*department.Department, error) {
	args := m.Called(ctx, currentDepartmentID)
	if d := args.Get(0); d != nil {
		return d.([]*department.Department), args.Error(1)
	}
	return nil, args.Error(1)
}
