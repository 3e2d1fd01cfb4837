package handlers

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/SolBenven/proyecto-final/internal/intelligence/deptclass"
)

// HealthHandler serves liveness and readiness probes.
type HealthHandler struct {
	db         *sql.DB
	classifier deptclass.Service
}

// NewHealthHandler builds the health handler.
func NewHealthHandler(db *sql.DB, classifier deptclass.Service) *HealthHandler {
	return &HealthHandler{db: db, classifier: classifier}
}

// Liveness reports that the process is up.
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Readiness reports whether the engine can serve requests.  The classifier is
// informational: the engine routes to the fallback department without it.
func (h *HealthHandler) Readiness(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := h.db.PingContext(ctx); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":   "unavailable",
			"database": "down",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     "ok",
		"database":   "up",
		"classifier": h.classifier.ModelAvailable(ctx),
	})
}
