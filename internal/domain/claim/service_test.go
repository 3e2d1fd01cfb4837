package claim

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/SolBenven/proyecto-final/internal/domain/department"
	"github.com/SolBenven/proyecto-final/internal/testutil"
	"github.com/SolBenven/proyecto-final/pkg/errors"
)

type fixture struct {
	repo      *mockRepository
	notifRepo *mockNotificationRepo
	deptRepo  *mockDeptRepo
	counter   *mockCounter
	publisher *recordingPublisher
	svc       Service
}

func newTestFixture() *fixture {
	f := &fixture{
		repo:      &mockRepository{},
		notifRepo: &mockNotificationRepo{},
		deptRepo:  &mockDeptRepo{},
		counter:   &mockCounter{},
		publisher: &recordingPublisher{},
	}
	f.svc = NewService(f.repo, f.notifRepo, f.deptRepo, f.counter, passthroughTx{}, f.publisher, testutil.NewMockLogger())
	f.svc.(*service).now = func() time.Time { return fixedNow }
	return f
}

func pendingClaim(id, creatorID, departmentID int64) *Claim {
	return &Claim{
		ID:           id,
		Detail:       "no funciona la calefaccion",
		Status:       StatusPending,
		DepartmentID: departmentID,
		CreatorID:    creatorID,
	}
}

func TestUpdateStatusFansOutNotifications(t *testing.T) {
	f := newTestFixture()
	ctx := context.Background()

	f.repo.On("GetByID", ctx, int64(10)).Return(pendingClaim(10, 100, 1), nil)
	f.repo.On("SetStatus", ctx, int64(10), StatusInProgress).Return(nil)
	f.repo.On("AddStatusChange", ctx, mock.MatchedBy(func(sc *StatusChange) bool {
		sc.ID = 55 // simulate the generated history ID
		return sc.OldStatus == StatusPending && sc.NewStatus == StatusInProgress && sc.ChangedByID == 9
	})).Return(nil)
	f.repo.On("ListSupporterIDs", ctx, int64(10)).Return([]int64{200, 300}, nil)
	f.notifRepo.On("CreateBatch", ctx, int64(55), []int64{100, 200, 300}).Return(nil)
	f.counter.On("Invalidate", ctx, []int64{100, 200, 300}).Return()

	err := f.svc.UpdateStatus(ctx, 10, StatusInProgress, 9)
	require.NoError(t, err)

	f.repo.AssertExpectations(t)
	f.notifRepo.AssertExpectations(t)
	f.counter.AssertExpectations(t)

	require.Len(t, f.publisher.events, 1)
	assert.Equal(t, EventStatusChanged, f.publisher.events[0].Type)
	assert.Equal(t, int64(10), f.publisher.events[0].ClaimID)
}

func TestUpdateStatusUnchangedIsRejected(t *testing.T) {
	f := newTestFixture()
	ctx := context.Background()

	f.repo.On("GetByID", ctx, int64(10)).Return(pendingClaim(10, 100, 1), nil)

	err := f.svc.UpdateStatus(ctx, 10, StatusPending, 9)
	assert.True(t, errors.IsCode(err, errors.ErrCodeStatusUnchanged))
	f.repo.AssertNotCalled(t, "SetStatus", mock.Anything, mock.Anything, mock.Anything)
	assert.Empty(t, f.publisher.events)
}

func TestUpdateStatusInvalidStatus(t *testing.T) {
	f := newTestFixture()

	err := f.svc.UpdateStatus(context.Background(), 10, Status("BOGUS"), 9)
	assert.True(t, errors.IsCode(err, errors.ErrCodeStatusInvalid))
}

func TestUpdateStatusMissingClaim(t *testing.T) {
	f := newTestFixture()
	ctx := context.Background()

	f.repo.On("GetByID", ctx, int64(77)).
		Return(nil, errors.New(errors.ErrCodeClaimNotFound, "claim not found"))

	err := f.svc.UpdateStatus(ctx, 77, StatusResolved, 9)
	assert.True(t, errors.IsCode(err, errors.ErrCodeClaimNotFound))
}

func TestAddSupporterRejectsCreator(t *testing.T) {
	f := newTestFixture()
	ctx := context.Background()

	f.repo.On("GetByID", ctx, int64(10)).Return(pendingClaim(10, 100, 1), nil)

	err := f.svc.AddSupporter(ctx, 10, 100)
	assert.True(t, errors.IsCode(err, errors.ErrCodeOwnClaimSupport))
	f.repo.AssertNotCalled(t, "AddSupporter", mock.Anything, mock.Anything, mock.Anything)
}

func TestAddSupporterMapsDuplicate(t *testing.T) {
	f := newTestFixture()
	ctx := context.Background()

	f.repo.On("GetByID", ctx, int64(10)).Return(pendingClaim(10, 100, 1), nil)
	f.repo.On("AddSupporter", ctx, int64(10), int64(200)).
		Return(errors.New(errors.ErrCodeAlreadySupporting, "already supporting this claim"))

	err := f.svc.AddSupporter(ctx, 10, 200)
	assert.True(t, errors.IsCode(err, errors.ErrCodeAlreadySupporting))
}

func TestAddSupporterSucceeds(t *testing.T) {
	f := newTestFixture()
	ctx := context.Background()

	f.repo.On("GetByID", ctx, int64(10)).Return(pendingClaim(10, 100, 1), nil)
	f.repo.On("AddSupporter", ctx, int64(10), int64(200)).Return(nil)

	assert.NoError(t, f.svc.AddSupporter(ctx, 10, 200))
	f.repo.AssertExpectations(t)
}

func TestRemoveSupporterNotSupporting(t *testing.T) {
	f := newTestFixture()
	ctx := context.Background()

	f.repo.On("GetByID", ctx, int64(10)).Return(pendingClaim(10, 100, 1), nil)
	f.repo.On("RemoveSupporter", ctx, int64(10), int64(200)).
		Return(errors.New(errors.ErrCodeNotSupporting, "not supporting this claim"))

	err := f.svc.RemoveSupporter(ctx, 10, 200)
	assert.True(t, errors.IsCode(err, errors.ErrCodeNotSupporting))
}

func TestTransferRecordsAndReassigns(t *testing.T) {
	f := newTestFixture()
	ctx := context.Background()

	f.repo.On("GetByID", ctx, int64(10)).Return(pendingClaim(10, 100, 1), nil)
	f.deptRepo.On("GetByID", ctx, int64(2)).
		Return(&department.Department{ID: 2, Name: "sistemas"}, nil)
	f.repo.On("AddTransfer", ctx, mock.MatchedBy(func(tr *Transfer) bool {
		return tr.ClaimID == 10 && tr.FromDepartmentID == 1 && tr.ToDepartmentID == 2 &&
			tr.TransferredByID == 9 && tr.Reason != nil && *tr.Reason == "corresponde a sistemas"
	})).Return(nil)
	f.repo.On("SetDepartment", ctx, int64(10), int64(2)).Return(nil)

	tr, err := f.svc.Transfer(ctx, 10, 2, 9, "  corresponde a sistemas  ")
	require.NoError(t, err)
	assert.Equal(t, int64(2), tr.ToDepartmentID)

	require.Len(t, f.publisher.events, 1)
	assert.Equal(t, EventTransferred, f.publisher.events[0].Type)
}

func TestTransferSameDepartmentRejected(t *testing.T) {
	f := newTestFixture()
	ctx := context.Background()

	f.repo.On("GetByID", ctx, int64(10)).Return(pendingClaim(10, 100, 1), nil)
	f.deptRepo.On("GetByID", ctx, int64(1)).
		Return(&department.Department{ID: 1, Name: "mantenimiento"}, nil)

	_, err := f.svc.Transfer(ctx, 10, 1, 9, "")
	assert.True(t, errors.IsCode(err, errors.ErrCodeSameDepartment))
	f.repo.AssertNotCalled(t, "SetDepartment", mock.Anything, mock.Anything, mock.Anything)
}

func TestTransferUnknownTargetDepartment(t *testing.T) {
	f := newTestFixture()
	ctx := context.Background()

	f.repo.On("GetByID", ctx, int64(10)).Return(pendingClaim(10, 100, 1), nil)
	f.deptRepo.On("GetByID", ctx, int64(99)).
		Return(nil, errors.New(errors.ErrCodeDepartmentNotFound, "department not found"))

	_, err := f.svc.Transfer(ctx, 10, 99, 9, "")
	assert.True(t, errors.IsCode(err, errors.ErrCodeDepartmentNotFound))
}

func TestTransferEmptyReasonStoredAsNil(t *testing.T) {
	f := newTestFixture()
	ctx := context.Background()

	f.repo.On("GetByID", ctx, int64(10)).Return(pendingClaim(10, 100, 1), nil)
	f.deptRepo.On("GetByID", ctx, int64(2)).
		Return(&department.Department{ID: 2}, nil)
	f.repo.On("AddTransfer", ctx, mock.MatchedBy(func(tr *Transfer) bool {
		return tr.Reason == nil
	})).Return(nil)
	f.repo.On("SetDepartment", ctx, int64(10), int64(2)).Return(nil)

	_, err := f.svc.Transfer(ctx, 10, 2, 9, "   ")
	require.NoError(t, err)
}

func TestDeleteRemovesDependentsInOrder(t *testing.T) {
	f := newTestFixture()
	ctx := context.Background()

	var order []string
	step := func(name string) func(mock.Arguments) {
		return func(mock.Arguments) { order = append(order, name) }
	}

	f.repo.On("GetByID", ctx, int64(10)).Return(pendingClaim(10, 100, 1), nil)
	f.notifRepo.On("DeleteForClaim", ctx, int64(10)).Run(step("notifications")).Return([]int64{100, 200}, nil)
	f.repo.On("DeleteStatusChanges", ctx, int64(10)).Run(step("history")).Return(nil)
	f.repo.On("DeleteSupporters", ctx, int64(10)).Run(step("supporters")).Return(nil)
	f.repo.On("DeleteTransfers", ctx, int64(10)).Run(step("transfers")).Return(nil)
	f.repo.On("Delete", ctx, int64(10)).Run(step("claim")).Return(nil)
	f.counter.On("Invalidate", ctx, []int64{100, 200}).Return()

	require.NoError(t, f.svc.Delete(ctx, 10))
	assert.Equal(t, []string{"notifications", "history", "supporters", "transfers", "claim"}, order)

	require.Len(t, f.publisher.events, 1)
	assert.Equal(t, EventDeleted, f.publisher.events[0].Type)
}

func TestCreateWithIdempotencyKeyReplays(t *testing.T) {
	f := newTestFixture()
	ctx := context.Background()
	key := "req-abc-123"

	existing := pendingClaim(42, 100, 1)
	f.repo.On("GetByIdempotencyKey", ctx, key).Return(existing, nil)

	got, err := f.svc.Create(ctx, &Claim{Detail: "otra vez lo mismo", CreatorID: 100, DepartmentID: 1, IdempotencyKey: &key})
	require.NoError(t, err)
	assert.Equal(t, int64(42), got.ID)
	f.repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	assert.Empty(t, f.publisher.events)
}

func TestCreatePersistsAndPublishes(t *testing.T) {
	f := newTestFixture()
	ctx := context.Background()
	key := "req-def-456"

	f.repo.On("GetByIdempotencyKey", ctx, key).
		Return(nil, errors.New(errors.ErrCodeClaimNotFound, "claim not found"))
	f.repo.On("Create", ctx, mock.MatchedBy(func(c *Claim) bool {
		c.ID = 7
		return c.Status == StatusPending
	})).Return(nil)

	got, err := f.svc.Create(ctx, &Claim{Detail: "sin luz", CreatorID: 100, DepartmentID: 1, IdempotencyKey: &key})
	require.NoError(t, err)
	assert.Equal(t, int64(7), got.ID)

	require.Len(t, f.publisher.events, 1)
	assert.Equal(t, EventCreated, f.publisher.events[0].Type)
}

func TestCreateLosingIdempotencyRaceRefetches(t *testing.T) {
	f := newTestFixture()
	ctx := context.Background()
	key := "req-ghi-789"

	winner := pendingClaim(8, 100, 1)
	f.repo.On("GetByIdempotencyKey", ctx, key).
		Return(nil, errors.New(errors.ErrCodeClaimNotFound, "claim not found")).Once()
	f.repo.On("Create", ctx, mock.Anything).
		Return(errors.New(errors.ErrCodeConflict, "duplicate idempotency key"))
	f.repo.On("GetByIdempotencyKey", ctx, key).Return(winner, nil).Once()

	got, err := f.svc.Create(ctx, &Claim{Detail: "sin luz", CreatorID: 100, DepartmentID: 1, IdempotencyKey: &key})
	require.NoError(t, err)
	assert.Equal(t, int64(8), got.ID)
}
