package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SolBenven/proyecto-final/internal/domain/department"
	"github.com/SolBenven/proyecto-final/internal/interfaces/http/middleware"
)

// DepartmentHandler serves department lookups.
type DepartmentHandler struct {
	departments department.Service
}

// NewDepartmentHandler builds the department handler.
func NewDepartmentHandler(svc department.Service) *DepartmentHandler {
	return &DepartmentHandler{departments: svc}
}

// List returns every department, for the filing form's manual routing picker.
func (h *DepartmentHandler) List(c *gin.Context) {
	depts, err := h.departments.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"departments": toDepartmentResponses(depts)})
}

// Get returns one department.
func (h *DepartmentHandler) Get(c *gin.Context) {
	id, err := pathID(c, "departmentID")
	if err != nil {
		respondError(c, err)
		return
	}

	d, err := h.departments.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toDepartmentResponse(d))
}

// Visible returns the departments inside the actor's administrative scope.
func (h *DepartmentHandler) Visible(c *gin.Context) {
	depts, err := h.departments.ListVisible(c.Request.Context(), middleware.ContextActor(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"departments": toDepartmentResponses(depts)})
}
