package handlers

import (
	"io"
	"net/http"

	"tillpoint/services/notification"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NotificationHandler exposes the per-staff notification view.
type NotificationHandler struct {
	Service notification.NotificationService
}

func NewNotificationHandler(svc notification.NotificationService) *NotificationHandler {
	return &NotificationHandler{Service: svc}
}

// ListHandler returns the caller's current notification view: sorted,
// expired-filtered and unread-counted.
func (h *NotificationHandler) ListHandler(c *gin.Context) {
	staffID := c.GetString("staffID")
	if staffID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	view, err := h.Service.Snapshot(c.Request.Context(), staffID)
	if err != nil {
		getLogger(c).Error("Failed to load notifications", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load notifications"})
		return
	}
	c.JSON(http.StatusOK, view)
}

// AcknowledgeAllHandler flips every unread notification to read.
func (h *NotificationHandler) AcknowledgeAllHandler(c *gin.Context) {
	staffID := c.GetString("staffID")
	if staffID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.Service.AcknowledgeAll(c.Request.Context(), staffID); err != nil {
		getLogger(c).Error("Failed to acknowledge notifications", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to acknowledge notifications"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "All notifications marked read"})
}

// StreamHandler bridges a live subscription to the dashboard badge over SSE.
// The subscription is cancelled as soon as the client disconnects.
func (h *NotificationHandler) StreamHandler(c *gin.Context) {
	staffID := c.GetString("staffID")
	if staffID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	sub, err := h.Service.Start(c.Request.Context(), staffID)
	if err != nil {
		getLogger(c).Error("Failed to start notification stream", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Notification stream unavailable"})
		return
	}
	defer sub.Cancel()

	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Stream(func(w io.Writer) bool {
		select {
		case view, ok := <-sub.Updates():
			if !ok {
				return false
			}
			c.SSEvent("view", view)
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}
