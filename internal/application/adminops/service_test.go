package adminops

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/SolBenven/proyecto-final/internal/domain/account"
	"github.com/SolBenven/proyecto-final/internal/domain/claim"
	"github.com/SolBenven/proyecto-final/internal/domain/department"
	"github.com/SolBenven/proyecto-final/internal/infrastructure/monitoring/metrics"
	"github.com/SolBenven/proyecto-final/internal/testutil"
	"github.com/SolBenven/proyecto-final/internal/testutil/mocks"
	"github.com/SolBenven/proyecto-final/pkg/errors"
)

type fixture struct {
	claims    *mocks.ClaimService
	claimRepo *mocks.ClaimRepository
	depts     *mocks.DepartmentService
	svc       Service
}

func newTestFixture() *fixture {
	f := &fixture{
		claims:    &mocks.ClaimService{},
		claimRepo: &mocks.ClaimRepository{},
		depts:     &mocks.DepartmentService{},
	}
	m := metrics.New(prometheus.NewRegistry())
	f.svc = NewService(f.claims, f.claimRepo, f.depts, m, testutil.NewMockLogger())
	return f
}

func secretary() account.Actor {
	return account.Actor{Kind: account.KindAdmin, AccountID: 1, Role: account.RoleTechnicalSecretary}
}

func head(deptID int64) account.Actor {
	return account.Actor{Kind: account.KindAdmin, AccountID: 2, Role: account.RoleDepartmentHead, DepartmentID: deptID}
}

func claimIn(deptID int64) *claim.Claim {
	return &claim.Claim{ID: 10, Detail: "algo roto", Status: claim.StatusPending, DepartmentID: deptID, CreatorID: 100}
}

func TestListClaimsSecretarySeesAll(t *testing.T) {
	f := newTestFixture()
	ctx := context.Background()

	f.claimRepo.On("List", ctx, claim.ListFilter{}).Return([]*claim.Claim{claimIn(1), claimIn(2)}, nil)

	got, err := f.svc.ListClaims(ctx, secretary(), nil)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestListClaimsHeadScopedToDepartment(t *testing.T) {
	f := newTestFixture()
	ctx := context.Background()

	f.claimRepo.On("List", ctx, claim.ListFilter{DepartmentIDs: []int64{3}}).
		Return([]*claim.Claim{claimIn(3)}, nil)

	got, err := f.svc.ListClaims(ctx, head(3), nil)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestListClaimsFilterOutsideScopeIsEmpty(t *testing.T) {
	f := newTestFixture()
	other := int64(5)

	got, err := f.svc.ListClaims(context.Background(), head(3), &other)
	require.NoError(t, err)
	assert.Empty(t, got)
	f.claimRepo.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
}

func TestListClaimsEndUserSeesNothing(t *testing.T) {
	f := newTestFixture()

	got, err := f.svc.ListClaims(context.Background(), account.Actor{Kind: account.KindEndUser, AccountID: 9}, nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestGetClaimOutsideScopeDenied(t *testing.T) {
	f := newTestFixture()
	ctx := context.Background()

	f.claims.On("GetByID", ctx, int64(10)).Return(claimIn(5), nil)

	_, err := f.svc.GetClaim(ctx, head(3), 10)
	assert.True(t, errors.IsCode(err, errors.ErrCodeClaimAccessDenied))
}

func TestUpdateStatusWithinScope(t *testing.T) {
	f := newTestFixture()
	ctx := context.Background()

	f.claims.On("GetByID", ctx, int64(10)).Return(claimIn(3), nil)
	f.claims.On("UpdateStatus", ctx, int64(10), claim.StatusResolved, int64(2)).Return(nil)

	require.NoError(t, f.svc.UpdateStatus(ctx, head(3), 10, claim.StatusResolved))
	f.claims.AssertExpectations(t)
}

func TestUpdateStatusOutsideScopeDenied(t *testing.T) {
	f := newTestFixture()
	ctx := context.Background()

	f.claims.On("GetByID", ctx, int64(10)).Return(claimIn(5), nil)

	err := f.svc.UpdateStatus(ctx, head(3), 10, claim.StatusResolved)
	assert.True(t, errors.IsCode(err, errors.ErrCodeClaimAccessDenied))
	f.claims.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestTransferRequiresSecretary(t *testing.T) {
	f := newTestFixture()

	_, err := f.svc.TransferClaim(context.Background(), head(3), 10, 5, "")
	assert.True(t, errors.IsCode(err, errors.ErrCodeClaimAccessDenied))
	f.claims.AssertNotCalled(t, "Transfer", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestTransferDelegatesForSecretary(t *testing.T) {
	f := newTestFixture()
	ctx := context.Background()

	f.claims.On("Transfer", ctx, int64(10), int64(5), int64(1), "motivo").
		Return(&claim.Transfer{ID: 1, ClaimID: 10, ToDepartmentID: 5}, nil)

	tr, err := f.svc.TransferClaim(ctx, secretary(), 10, 5, "motivo")
	require.NoError(t, err)
	assert.Equal(t, int64(5), tr.ToDepartmentID)
}

func TestTransferTargetsExcludeCurrent(t *testing.T) {
	f := newTestFixture()
	ctx := context.Background()

	f.claims.On("GetByID", ctx, int64(10)).Return(claimIn(1), nil)
	f.depts.On("ListTransferTargets", ctx, int64(1)).
		Return([]*department.Department{{ID: 2}, {ID: 3}}, nil)

	targets, err := f.svc.TransferTargets(ctx, secretary(), 10)
	require.NoError(t, err)
	assert.Len(t, targets, 2)
}

func TestDeleteClaimRequiresSecretary(t *testing.T) {
	f := newTestFixture()

	err := f.svc.DeleteClaim(context.Background(), head(3), 10)
	assert.True(t, errors.IsCode(err, errors.ErrCodeClaimAccessDenied))

	f.claims.On("Delete", mock.Anything, int64(10)).Return(nil)
	assert.NoError(t, f.svc.DeleteClaim(context.Background(), secretary(), 10))
}

func TestSupporterIDsWithinScope(t *testing.T) {
	f := newTestFixture()
	ctx := context.Background()

	f.claims.On("GetByID", ctx, int64(10)).Return(claimIn(3), nil)
	f.claims.On("SupporterIDs", ctx, int64(10)).Return([]int64{100, 200}, nil)

	ids, err := f.svc.SupporterIDs(ctx, head(3), 10)
	require.NoError(t, err)
	assert.Equal(t, []int64{100, 200}, ids)
}
