package claim

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/SolBenven/proyecto-final/internal/domain/department"
	"github.com/SolBenven/proyecto-final/internal/domain/notification"
)

type mockRepository struct {
	mock.Mock
}

func (m *mockRepository) Create(ctx context.Context, c *Claim) error {
	return m.Called(ctx, c).Error(0)
}

func (m *mockRepository) GetByID(ctx context.Context, id int64) (*Claim, error) {
	args := m.Called(ctx, id)
	if c := args.Get(0); c != nil {
		return c.(*Claim), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRepository) GetByIdempotencyKey(ctx context.Context, key string) (*Claim, error) {
	args := m.Called(ctx, key)
	if c := args.Get(0); c != nil {
		return c.(*Claim), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRepository) ListPending(ctx context.Context, departmentID *int64) ([]*Claim, error) {
	args := m.Called(ctx, departmentID)
	if c := args.Get(0); c != nil {
		return c.([]*Claim), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRepository) List(ctx context.Context, filter ListFilter) ([]*Claim, error) {
	args := m.Called(ctx, filter)
	if c := args.Get(0); c != nil {
		return c.([]*Claim), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRepository) ListByCreator(ctx context.Context, accountID int64) ([]*Claim, error) {
	args := m.Called(ctx, accountID)
	if c := args.Get(0); c != nil {
		return c.([]*Claim), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRepository) ListBySupporter(ctx context.Context, accountID int64) ([]*Claim, error) {
	args := m.Called(ctx, accountID)
	if c := args.Get(0); c != nil {
		return c.([]*Claim), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRepository) SetStatus(ctx context.Context, id int64, status Status) error {
	return m.Called(ctx, id, status).Error(0)
}

func (m *mockRepository) SetDepartment(ctx context.Context, id, departmentID int64) error {
	return m.Called(ctx, id, departmentID).Error(0)
}

func (m *mockRepository) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockRepository) AddStatusChange(ctx context.Context, sc *StatusChange) error {
	return m.Called(ctx, sc).Error(0)
}

func (m *mockRepository) ListStatusChanges(ctx context.Context, claimID int64) ([]*StatusChange, error) {
	args := m.Called(ctx, claimID)
	if c := args.Get(0); c != nil {
		return c.([]*StatusChange), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRepository) DeleteStatusChanges(ctx context.Context, claimID int64) error {
	return m.Called(ctx, claimID).Error(0)
}

func (m *mockRepository) AddSupporter(ctx context.Context, claimID, accountID int64) error {
	return m.Called(ctx, claimID, accountID).Error(0)
}

func (m *mockRepository) RemoveSupporter(ctx context.Context, claimID, accountID int64) error {
	return m.Called(ctx, claimID, accountID).Error(0)
}

func (m *mockRepository) IsSupporter(ctx context.Context, claimID, accountID int64) (bool, error) {
	args := m.Called(ctx, claimID, accountID)
	return args.Bool(0), args.Error(1)
}

func (m *mockRepository) ListSupporterIDs(ctx context.Context, claimID int64) ([]int64, error) {
	args := m.Called(ctx, claimID)
	if c := args.Get(0); c != nil {
		return c.([]int64), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRepository) DeleteSupporters(ctx context.Context, claimID int64) error {
	return m.Called(ctx, claimID).Error(0)
}

func (m *mockRepository) AddTransfer(ctx context.Context, t *Transfer) error {
	return m.Called(ctx, t).Error(0)
}

func (m *mockRepository) ListTransfers(ctx context.Context, claimID int64) ([]*Transfer, error) {
	args := m.Called(ctx, claimID)
	if c := args.Get(0); c != nil {
		return c.([]*Transfer), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRepository) DeleteTransfers(ctx context.Context, claimID int64) error {
	return m.Called(ctx, claimID).Error(0)
}

func (m *mockRepository) CountByStatus(ctx context.Context, departmentIDs []int64) (StatusCounts, error) {
	args := m.Called(ctx, departmentIDs)
	if c := args.Get(0); c != nil {
		return c.(StatusCounts), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRepository) CountByDepartmentAndStatus(ctx context.Context, departmentIDs []int64) (map[int64]StatusCounts, error) {
	args := m.Called(ctx, departmentIDs)
	if c := args.Get(0); c != nil {
		return c.(map[int64]StatusCounts), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRepository) ListDetails(ctx context.Context, departmentIDs []int64) ([]string, error) {
	args := m.Called(ctx, departmentIDs)
	if c := args.Get(0); c != nil {
		return c.([]string), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockNotificationRepo struct {
	mock.Mock
}

func (m *mockNotificationRepo) CreateBatch(ctx context.Context, statusChangeID int64, accountIDs []int64) error {
	return m.Called(ctx, statusChangeID, accountIDs).Error(0)
}

func (m *mockNotificationRepo) GetByID(ctx context.Context, id int64) (*notification.Notification, error) {
	args := m.Called(ctx, id)
	if n := args.Get(0); n != nil {
		return n.(*notification.Notification), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockNotificationRepo) ListPending(ctx context.Context, accountID int64) ([]*notification.Detail, error) {
	args := m.Called(ctx, accountID)
	if n := args.Get(0); n != nil {
		return n.([]*notification.Detail), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockNotificationRepo) CountUnread(ctx context.Context, accountID int64) (int64, error) {
	args := m.Called(ctx, accountID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockNotificationRepo) MarkRead(ctx context.Context, id int64, readAt time.Time) error {
	return m.Called(ctx, id, readAt).Error(0)
}

func (m *mockNotificationRepo) MarkAllRead(ctx context.Context, accountID int64, readAt time.Time) (int64, error) {
	args := m.Called(ctx, accountID, readAt)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockNotificationRepo) DeleteForClaim(ctx context.Context, claimID int64) ([]int64, error) {
	args := m.Called(ctx, claimID)
	if c := args.Get(0); c != nil {
		return c.([]int64), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockDeptRepo struct {
	mock.Mock
}

func (m *mockDeptRepo) GetByID(ctx context.Context, id int64) (*department.Department, error) {
	args := m.Called(ctx, id)
	if d := args.Get(0); d != nil {
		return d.(*department.Department), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockDeptRepo) GetByName(ctx context.Context, name string) (*department.Department, error) {
	args := m.Called(ctx, name)
	if d := args.Get(0); d != nil {
		return d.(*department.Department), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockDeptRepo) GetTechnicalSecretariat(ctx context.Context) (*department.Department, error) {
	args := m.Called(ctx)
	if d := args.Get(0); d != nil {
		return d.(*department.Department), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockDeptRepo) List(ctx context.Context) ([]*department.Department, error) {
	args := m.Called(ctx)
	if d := args.Get(0); d != nil {
		return d.([]*department.Department), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockDeptRepo) ListByIDs(ctx context.Context, ids []int64) ([]*department.Department, error) {
	args := m.Called(ctx, ids)
	if d := args.Get(0); d != nil {
		return d.([]*department.Department), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockDeptRepo) Create(ctx context.Context, d *department.Department) error {
	return m.Called(ctx, d).Error(0)
}

type mockCounter struct {
	mock.Mock
}

func (m *mockCounter) Get(ctx context.Context, accountID int64) (int64, bool) {
	args := m.Called(ctx, accountID)
	return args.Get(0).(int64), args.Bool(1)
}

func (m *mockCounter) Set(ctx context.Context, accountID, count int64) {
	m.Called(ctx, accountID, count)
}

func (m *mockCounter) Invalidate(ctx context.Context, accountIDs ...int64) {
	m.Called(ctx, accountIDs)
}

// passthroughTx runs the closure directly, standing in for a real transaction.
type passthroughTx struct{}

func (passthroughTx) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type recordingPublisher struct {
	events []Event
}

func (p *recordingPublisher) Publish(_ context.Context, ev Event) error {
	p.events = append(p.events, ev)
	return nil
}

// fixedNow pins service time for deterministic assertions.
var fixedNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
