package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/SolBenven/proyecto-final/internal/application/analytics"
	"github.com/SolBenven/proyecto-final/internal/interfaces/http/middleware"
)

// AnalyticsHandler serves the administration dashboard aggregates.
type AnalyticsHandler struct {
	analytics analytics.Service
}

// NewAnalyticsHandler builds the analytics handler.
func NewAnalyticsHandler(svc analytics.Service) *AnalyticsHandler {
	return &AnalyticsHandler{analytics: svc}
}

// Dashboard returns the headline numbers over the actor's scope.
func (h *AnalyticsHandler) Dashboard(c *gin.Context) {
	counts, err := h.analytics.DashboardCounts(c.Request.Context(), middleware.ContextActor(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, counts)
}

// DepartmentDashboard returns per-department numbers over the actor's scope.
func (h *AnalyticsHandler) DepartmentDashboard(c *gin.Context) {
	perDept, err := h.analytics.DepartmentDashboard(c.Request.Context(), middleware.ContextActor(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"departments": perDept})
}

// StatusBreakdown returns counts and percentages by status.
func (h *AnalyticsHandler) StatusBreakdown(c *gin.Context) {
	breakdown, err := h.analytics.StatusBreakdown(c.Request.Context(), middleware.ContextActor(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, breakdown)
}

// Keywords returns the most frequent meaningful words in visible claims.
// ?limit caps the report; 0 or absent uses the default.
func (h *AnalyticsHandler) Keywords(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			limit = v
		}
	}

	keywords, err := h.analytics.KeywordFrequencies(c.Request.Context(), middleware.ContextActor(c), limit)
	if err != nil {
		respondError(c, err)
		return
	}
	if keywords == nil {
		keywords = []analytics.Keyword{}
	}
	c.JSON(http.StatusOK, gin.H{"keywords": keywords})
}
