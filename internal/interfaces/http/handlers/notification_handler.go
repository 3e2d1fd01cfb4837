package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/SolBenven/proyecto-final/internal/domain/notification"
	"github.com/SolBenven/proyecto-final/internal/interfaces/http/middleware"
)

// NotificationHandler serves the per-user notification surface.
type NotificationHandler struct {
	notifications notification.Service
}

// NewNotificationHandler builds the notification handler.
func NewNotificationHandler(svc notification.Service) *NotificationHandler {
	return &NotificationHandler{notifications: svc}
}

// NotificationResponse is the wire representation of an unread notification
// with its claim context.
type NotificationResponse struct {
	ID            int64  `json:"id"`
	ClaimID       int64  `json:"claim_id"`
	ClaimDetail   string `json:"claim_detail"`
	OldStatus     string `json:"old_status"`
	NewStatus     string `json:"new_status"`
	ChangedByName string `json:"changed_by_name"`
	ChangedAt     string `json:"changed_at"`
	CreatedAt     string `json:"created_at"`
}

// List returns the actor's unread notifications, newest first.
func (h *NotificationHandler) List(c *gin.Context) {
	details, err := h.notifications.ListPending(c.Request.Context(), middleware.ContextActor(c).AccountID)
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]NotificationResponse, 0, len(details))
	for _, d := range details {
		out = append(out, NotificationResponse{
			ID:            d.ID,
			ClaimID:       d.ClaimID,
			ClaimDetail:   d.ClaimDetail,
			OldStatus:     d.OldStatus,
			NewStatus:     d.NewStatus,
			ChangedByName: d.ChangedByName,
			ChangedAt:     d.ChangedAt.Format(time.RFC3339),
			CreatedAt:     d.CreatedAt.Format(time.RFC3339),
		})
	}
	c.JSON(http.StatusOK, gin.H{"notifications": out})
}

// UnreadCount returns the badge count.
func (h *NotificationHandler) UnreadCount(c *gin.Context) {
	count, err := h.notifications.UnreadCount(c.Request.Context(), middleware.ContextActor(c).AccountID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": count})
}

// MarkRead marks one notification as read.
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	id, err := pathID(c, "notificationID")
	if err != nil {
		respondError(c, err)
		return
	}

	if err := h.notifications.MarkRead(c.Request.Context(), id, middleware.ContextActor(c).AccountID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// MarkAllRead marks every unread notification of the actor.
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	affected, err := h.notifications.MarkAllRead(c.Request.Context(), middleware.ContextActor(c).AccountID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"marked": affected})
}
