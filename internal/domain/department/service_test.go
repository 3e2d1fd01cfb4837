package department_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/SolBenven/proyecto-final/internal/domain/account"
	"github.com/SolBenven/proyecto-final/internal/domain/department"
	"github.com/SolBenven/proyecto-final/internal/infrastructure/monitoring/logging"
	"github.com/SolBenven/proyecto-final/internal/testutil/mocks"
)

func dept(id int64, name string) *department.Department {
	return &department.Department{ID: id, Name: name, DisplayName: name}
}

func TestListVisibleSecretarySeesAll(t *testing.T) {
	repo := &mocks.DepartmentRepository{}
	all := []*department.Department{dept(1, "mantenimiento"), dept(2, "sistemas")}
	repo.On("List", mock.Anything).Return(all, nil)

	svc := department.NewService(repo, logging.NewNop())
	actor := account.Actor{Kind: account.KindAdmin, AccountID: 9, Role: account.RoleTechnicalSecretary}

	got, err := svc.ListVisible(context.Background(), actor)
	require.NoError(t, err)
	assert.Equal(t, all, got)
}

func TestListVisibleHeadSeesOwnDepartment(t *testing.T) {
	repo := &mocks.DepartmentRepository{}
	repo.On("ListByIDs", mock.Anything, []int64{2}).
		Return([]*department.Department{dept(2, "sistemas")}, nil)

	svc := department.NewService(repo, logging.NewNop())
	actor := account.Actor{Kind: account.KindAdmin, AccountID: 9, Role: account.RoleDepartmentHead, DepartmentID: 2}

	got, err := svc.ListVisible(context.Background(), actor)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, int64(2), got[0].ID)
}

func TestListVisibleEndUserSeesNothing(t *testing.T) {
	repo := &mocks.DepartmentRepository{}

	svc := department.NewService(repo, logging.NewNop())
	actor := account.Actor{Kind: account.KindEndUser, AccountID: 9}

	got, err := svc.ListVisible(context.Background(), actor)
	require.NoError(t, err)
	assert.Empty(t, got)
	repo.AssertNotCalled(t, "List", mock.Anything)
	repo.AssertNotCalled(t, "ListByIDs", mock.Anything, mock.Anything)
}

func TestListTransferTargetsExcludesCurrent(t *testing.T) {
	repo := &mocks.DepartmentRepository{}
	repo.On("List", mock.Anything).Return([]*department.Department{
		dept(1, "mantenimiento"), dept(2, "sistemas"), dept(3, "limpieza"),
	}, nil)

	svc := department.NewService(repo, logging.NewNop())

	got, err := svc.ListTransferTargets(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, int64(1), got[0].ID)
	assert.Equal(t, int64(3), got[1].ID)
}
