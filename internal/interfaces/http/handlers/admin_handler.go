package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/SolBenven/proyecto-final/internal/application/adminops"
	"github.com/SolBenven/proyecto-final/internal/domain/claim"
	"github.com/SolBenven/proyecto-final/internal/domain/department"
	"github.com/SolBenven/proyecto-final/internal/interfaces/http/middleware"
)

// AdminHandler serves the administrative claim surface.  Scope enforcement
// happens in the service; the handler only translates the wire format.
type AdminHandler struct {
	ops adminops.Service
}

// NewAdminHandler builds the admin claim handler.
func NewAdminHandler(ops adminops.Service) *AdminHandler {
	return &AdminHandler{ops: ops}
}

// List returns the claims in the actor's scope, optionally filtered by
// department and parameterized by ?department_id.
func (h *AdminHandler) List(c *gin.Context) {
	deptID, err := queryInt64(c, "department_id")
	if err != nil {
		respondError(c, err)
		return
	}

	claims, err := h.ops.ListClaims(c.Request.Context(), middleware.ContextActor(c), deptID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"claims": toClaimResponses(claims)})
}

// Get returns one claim in the actor's scope.
func (h *AdminHandler) Get(c *gin.Context) {
	id, err := pathID(c, "claimID")
	if err != nil {
		respondError(c, err)
		return
	}

	found, err := h.ops.GetClaim(c.Request.Context(), middleware.ContextActor(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toClaimResponse(found))
}

type updateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateStatus moves a claim to a new status.
func (h *AdminHandler) UpdateStatus(c *gin.Context) {
	id, err := pathID(c, "claimID")
	if err != nil {
		respondError(c, err)
		return
	}

	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, errors422(err))
		return
	}

	status, err := claim.ParseStatus(req.Status)
	if err != nil {
		respondError(c, err)
		return
	}

	if err := h.ops.UpdateStatus(c.Request.Context(), middleware.ContextActor(c), id, status); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type transferRequest struct {
	ToDepartmentID int64  `json:"to_department_id" binding:"required"`
	Reason         string `json:"reason"`
}

// TransferResponse is the wire representation of a transfer record.
type TransferResponse struct {
	ID               int64   `json:"id"`
	ClaimID          int64   `json:"claim_id"`
	FromDepartmentID int64   `json:"from_department_id"`
	ToDepartmentID   int64   `json:"to_department_id"`
	TransferredByID  int64   `json:"transferred_by_id"`
	Reason           *string `json:"reason,omitempty"`
	TransferredAt    string  `json:"transferred_at"`
}

func toTransferResponse(t *claim.Transfer) TransferResponse {
	return TransferResponse{
		ID:               t.ID,
		ClaimID:          t.ClaimID,
		FromDepartmentID: t.FromDepartmentID,
		ToDepartmentID:   t.ToDepartmentID,
		TransferredByID:  t.TransferredByID,
		Reason:           t.Reason,
		TransferredAt:    t.TransferredAt.Format(time.RFC3339),
	}
}

// Transfer moves a claim to another department.
func (h *AdminHandler) Transfer(c *gin.Context) {
	id, err := pathID(c, "claimID")
	if err != nil {
		respondError(c, err)
		return
	}

	var req transferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, errors422(err))
		return
	}

	transfer, err := h.ops.TransferClaim(c.Request.Context(), middleware.ContextActor(c), id, req.ToDepartmentID, req.Reason)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toTransferResponse(transfer))
}

// TransferTargets lists the departments a claim could be moved to.
func (h *AdminHandler) TransferTargets(c *gin.Context) {
	id, err := pathID(c, "claimID")
	if err != nil {
		respondError(c, err)
		return
	}

	targets, err := h.ops.TransferTargets(c.Request.Context(), middleware.ContextActor(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"departments": toDepartmentResponses(targets)})
}

// Delete removes a claim and everything attached to it.
func (h *AdminHandler) Delete(c *gin.Context) {
	id, err := pathID(c, "claimID")
	if err != nil {
		respondError(c, err)
		return
	}

	if err := h.ops.DeleteClaim(c.Request.Context(), middleware.ContextActor(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Supporters lists the supporter account IDs of a claim.
func (h *AdminHandler) Supporters(c *gin.Context) {
	id, err := pathID(c, "claimID")
	if err != nil {
		respondError(c, err)
		return
	}

	ids, err := h.ops.SupporterIDs(c.Request.Context(), middleware.ContextActor(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if ids == nil {
		ids = []int64{}
	}
	c.JSON(http.StatusOK, gin.H{"account_ids": ids})
}

// StatusChangeResponse is the wire representation of a history entry.
type StatusChangeResponse struct {
	ID          int64  `json:"id"`
	OldStatus   string `json:"old_status"`
	NewStatus   string `json:"new_status"`
	ChangedByID int64  `json:"changed_by_id"`
	ChangedAt   string `json:"changed_at"`
}

// History returns a claim's status history, newest first.
func (h *AdminHandler) History(c *gin.Context) {
	id, err := pathID(c, "claimID")
	if err != nil {
		respondError(c, err)
		return
	}

	changes, err := h.ops.History(c.Request.Context(), middleware.ContextActor(c), id)
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]StatusChangeResponse, 0, len(changes))
	for _, sc := range changes {
		out = append(out, StatusChangeResponse{
			ID:          sc.ID,
			OldStatus:   string(sc.OldStatus),
			NewStatus:   string(sc.NewStatus),
			ChangedByID: sc.ChangedByID,
			ChangedAt:   sc.ChangedAt.Format(time.RFC3339),
		})
	}
	c.JSON(http.StatusOK, gin.H{"history": out})
}

// Transfers returns a claim's transfer records, newest first.
func (h *AdminHandler) Transfers(c *gin.Context) {
	id, err := pathID(c, "claimID")
	if err != nil {
		respondError(c, err)
		return
	}

	transfers, err := h.ops.Transfers(c.Request.Context(), middleware.ContextActor(c), id)
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]TransferResponse, 0, len(transfers))
	for _, t := range transfers {
		out = append(out, toTransferResponse(t))
	}
	c.JSON(http.StatusOK, gin.H{"transfers": out})
}

// DepartmentResponse is the wire representation of a department.
type DepartmentResponse struct {
	ID                     int64  `json:"id"`
	Name                   string `json:"name"`
	DisplayName            string `json:"display_name"`
	IsTechnicalSecretariat bool   `json:"is_technical_secretariat"`
}

func toDepartmentResponse(d *department.Department) DepartmentResponse {
	return DepartmentResponse{
		ID:                     d.ID,
		Name:                   d.Name,
		DisplayName:            d.DisplayName,
		IsTechnicalSecretariat: d.IsTechnicalSecretariat,
	}
}

func toDepartmentResponses(depts []*department.Department) []DepartmentResponse {
	out := make([]DepartmentResponse, 0, len(depts))
	for _, d := range depts {
		out = append(out, toDepartmentResponse(d))
	}
	return out
}
