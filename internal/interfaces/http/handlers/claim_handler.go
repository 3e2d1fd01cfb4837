package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/SolBenven/proyecto-final/internal/application/intake"
	"github.com/SolBenven/proyecto-final/internal/domain/claim"
	"github.com/SolBenven/proyecto-final/internal/interfaces/http/middleware"
)

// ClaimHandler serves the end-user claim surface: filing, duplicate preview,
// personal listings, and adhesion.
type ClaimHandler struct {
	intake intake.Service
	claims claim.Service
}

// NewClaimHandler builds the end-user claim handler.
func NewClaimHandler(intakeSvc intake.Service, claims claim.Service) *ClaimHandler {
	return &ClaimHandler{intake: intakeSvc, claims: claims}
}

// ClaimResponse is the wire representation of a claim.
type ClaimResponse struct {
	ID              int64   `json:"id"`
	Detail          string  `json:"detail"`
	Status          string  `json:"status"`
	StatusDisplay   string  `json:"status_display"`
	ImagePath       *string `json:"image_path,omitempty"`
	DepartmentID    int64   `json:"department_id"`
	CreatorID       int64   `json:"creator_id"`
	SupportersCount int64   `json:"supporters_count"`
	CreatedAt       string  `json:"created_at"`
	UpdatedAt       string  `json:"updated_at"`
}

func toClaimResponse(c *claim.Claim) ClaimResponse {
	return ClaimResponse{
		ID:              c.ID,
		Detail:          c.Detail,
		Status:          string(c.Status),
		StatusDisplay:   c.Status.DisplayName(),
		ImagePath:       c.ImagePath,
		DepartmentID:    c.DepartmentID,
		CreatorID:       c.CreatorID,
		SupportersCount: c.SupportersCount,
		CreatedAt:       c.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       c.UpdatedAt.Format(time.RFC3339),
	}
}

func toClaimResponses(claims []*claim.Claim) []ClaimResponse {
	out := make([]ClaimResponse, 0, len(claims))
	for _, c := range claims {
		out = append(out, toClaimResponse(c))
	}
	return out
}

type createClaimRequest struct {
	Detail       string  `json:"detail" binding:"required"`
	DepartmentID *int64  `json:"department_id"`
	ImagePath    *string `json:"image_path"`
}

// Create files a new claim.  The Idempotency-Key header deduplicates retries.
func (h *ClaimHandler) Create(c *gin.Context) {
	var req createClaimRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, errors422(err))
		return
	}

	created, err := h.intake.CreateClaim(c.Request.Context(), intake.CreateClaimInput{
		CreatorID:      middleware.ContextActor(c).AccountID,
		Detail:         req.Detail,
		DepartmentID:   req.DepartmentID,
		ImagePath:      req.ImagePath,
		IdempotencyKey: c.GetHeader("Idempotency-Key"),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toClaimResponse(created))
}

type similarRequest struct {
	Detail    string `json:"detail" binding:"required"`
	ExcludeID int64  `json:"exclude_id"`
}

// SimilarMatch pairs a claim with its similarity score.
type SimilarMatch struct {
	Claim ClaimResponse `json:"claim"`
	Score float64       `json:"score"`
}

// Similar previews pending claims similar to a draft text.
func (h *ClaimHandler) Similar(c *gin.Context) {
	var req similarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, errors422(err))
		return
	}

	matches, err := h.intake.FindSimilar(c.Request.Context(), req.Detail, req.ExcludeID)
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]SimilarMatch, 0, len(matches))
	for _, m := range matches {
		out = append(out, SimilarMatch{Claim: toClaimResponse(m.Claim), Score: m.Score})
	}
	c.JSON(http.StatusOK, gin.H{"matches": out})
}

// Get returns one claim.
func (h *ClaimHandler) Get(c *gin.Context) {
	id, err := pathID(c, "claimID")
	if err != nil {
		respondError(c, err)
		return
	}

	found, err := h.claims.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toClaimResponse(found))
}

// Mine lists the claims the actor filed.
func (h *ClaimHandler) Mine(c *gin.Context) {
	claims, err := h.claims.ListByCreator(c.Request.Context(), middleware.ContextActor(c).AccountID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"claims": toClaimResponses(claims)})
}

// Supported lists the claims the actor adhered to.
func (h *ClaimHandler) Supported(c *gin.Context) {
	claims, err := h.claims.ListSupported(c.Request.Context(), middleware.ContextActor(c).AccountID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"claims": toClaimResponses(claims)})
}

// Support adheres the actor to a claim.
func (h *ClaimHandler) Support(c *gin.Context) {
	id, err := pathID(c, "claimID")
	if err != nil {
		respondError(c, err)
		return
	}

	if err := h.claims.AddSupporter(c.Request.Context(), id, middleware.ContextActor(c).AccountID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Unsupport removes the actor's adhesion from a claim.
func (h *ClaimHandler) Unsupport(c *gin.Context) {
	id, err := pathID(c, "claimID")
	if err != nil {
		respondError(c, err)
		return
	}

	if err := h.claims.RemoveSupporter(c.Request.Context(), id, middleware.ContextActor(c).AccountID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
