package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/SolBenven/proyecto-final/internal/domain/account"
	"github.com/SolBenven/proyecto-final/internal/domain/claim"
	"github.com/SolBenven/proyecto-final/internal/domain/department"
	"github.com/SolBenven/proyecto-final/internal/interfaces/http/middleware"
	"github.com/SolBenven/proyecto-final/pkg/errors"
)

type adminOpsMock struct {
	mock.Mock
}

func (m *adminOpsMock) ListClaims(ctx context.Context, actor account.Actor, departmentID *int64) ([]*claim.Claim, error) {
	args := m.Called(ctx, actor, departmentID)
	if v := args.Get(0); v != nil {
		return v.([]*claim.Claim), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *adminOpsMock) GetClaim(ctx context.Context, actor account.Actor, claimID int64) (*claim.Claim, error) {
	args := m.Called(ctx, actor, claimID)
	if v := args.Get(0); v != nil {
		return v.(*claim.Claim), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *adminOpsMock) UpdateStatus(ctx context.Context, actor account.Actor, claimID int64, newStatus claim.Status) error {
	return m.Called(ctx, actor, claimID, newStatus).Error(0)
}

func (m *adminOpsMock) TransferClaim(ctx context.Context, actor account.Actor, claimID, toDepartmentID int64, reason string) (*claim.Transfer, error) {
	args := m.Called(ctx, actor, claimID, toDepartmentID, reason)
	if v := args.Get(0); v != nil {
		return v.(*claim.Transfer), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *adminOpsMock) TransferTargets(ctx context.Context, actor account.Actor, claimID int64) ([]*department.Department, error) {
	args := m.Called(ctx, actor, claimID)
	if v := args.Get(0); v != nil {
		return v.([]*department.Department), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *adminOpsMock) DeleteClaim(ctx context.Context, actor account.Actor, claimID int64) error {
	return m.Called(ctx, actor, claimID).Error(0)
}

func (m *adminOpsMock) SupporterIDs(ctx context.Context, actor account.Actor, claimID int64) ([]int64, error) {
	args := m.Called(ctx, actor, claimID)
	if v := args.Get(0); v != nil {
		return v.([]int64), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *adminOpsMock) History(ctx context.Context, actor account.Actor, claimID int64) ([]*claim.StatusChange, error) {
	args := m.Called(ctx, actor, claimID)
	if v := args.Get(0); v != nil {
		return v.([]*claim.StatusChange), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *adminOpsMock) Transfers(ctx context.Context, actor account.Actor, claimID int64) ([]*claim.Transfer, error) {
	args := m.Called(ctx, actor, claimID)
	if v := args.Get(0); v != nil {
		return v.([]*claim.Transfer), args.Error(1)
	}
	return nil, args.Error(1)
}

func newAdminTestRouter(ops *adminOpsMock) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewAdminHandler(ops)

	admin := r.Group("/api/v1/admin", middleware.Actor(), middleware.RequireAdmin())
	admin.GET("/claims", h.List)
	admin.PUT("/claims/:claimID/status", h.UpdateStatus)
	admin.DELETE("/claims/:claimID", h.Delete)
	return r
}

func asSecretary(req *http.Request) {
	req.Header.Set(middleware.HeaderAccountID, "1")
	req.Header.Set(middleware.HeaderAccountKind, "admin")
	req.Header.Set(middleware.HeaderAdminRole, "secretario_tecnico")
}

func secretaryActor() account.Actor {
	return account.Actor{Kind: account.KindAdmin, AccountID: 1, Role: account.RoleTechnicalSecretary}
}

func TestAdminListClaims(t *testing.T) {
	ops := &adminOpsMock{}
	ops.On("ListClaims", mock.Anything, secretaryActor(), (*int64)(nil)).
		Return([]*claim.Claim{sampleClaim(1)}, nil)

	r := newAdminTestRouter(ops)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/claims", nil)
	asSecretary(req)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Claims []ClaimResponse `json:"claims"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Claims, 1)
}

func TestAdminListRejectsEndUsers(t *testing.T) {
	ops := &adminOpsMock{}
	r := newAdminTestRouter(ops)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/claims", nil)
	asEndUser(req, "7")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	ops.AssertNotCalled(t, "ListClaims", mock.Anything, mock.Anything, mock.Anything)
}

func TestAdminUpdateStatus(t *testing.T) {
	ops := &adminOpsMock{}
	ops.On("UpdateStatus", mock.Anything, secretaryActor(), int64(42), claim.StatusResolved).Return(nil)

	r := newAdminTestRouter(ops)

	body, _ := json.Marshal(gin.H{"status": "RESOLVED"})
	req := httptest.NewRequest(http.MethodPut, "/api/v1/admin/claims/42/status", bytes.NewReader(body))
	asSecretary(req)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	ops.AssertExpectations(t)
}

func TestAdminUpdateStatusRejectsUnknownStatus(t *testing.T) {
	ops := &adminOpsMock{}
	r := newAdminTestRouter(ops)

	body, _ := json.Marshal(gin.H{"status": "ARCHIVED"})
	req := httptest.NewRequest(http.MethodPut, "/api/v1/admin/claims/42/status", bytes.NewReader(body))
	asSecretary(req)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	ops.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestAdminDeleteMapsAccessDenied(t *testing.T) {
	ops := &adminOpsMock{}
	ops.On("DeleteClaim", mock.Anything, mock.Anything, int64(42)).
		Return(errors.New(errors.ErrCodeClaimAccessDenied, "claim is outside your department scope"))

	r := newAdminTestRouter(ops)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/admin/claims/42", nil)
	asSecretary(req)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusForbidden, w.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "CLAIM_009", resp.Code)
}
