package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/UCEM-2025/campus-event-service/internal/services"
	"github.com/UCEM-2025/campus-event-service/internal/utils"
)

type NotificationHandler struct {
	BaseHandler
	service services.NotificationService
}

func NewNotificationHandler(service services.NotificationService, logger utils.Logger) *NotificationHandler {
	return &NotificationHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// ListNotifications returns the caller's inbox. Fetching the inbox marks
// everything in it read.
func (h *NotificationHandler) ListNotifications(c *gin.Context) {
	userID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}

	response, err := h.service.ListForUser(c.Request.Context(), userID)
	if err != nil {
		h.HandleServiceError(c, err, "Failed to list notifications")
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *NotificationHandler) UnreadCount(c *gin.Context) {
	userID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}

	count, err := h.service.UnreadCount(c.Request.Context(), userID)
	if err != nil {
		h.HandleServiceError(c, err, "Failed to count notifications")
		return
	}

	c.JSON(http.StatusOK, gin.H{"unread_count": count})
}

func (h *NotificationHandler) MarkRead(c *gin.Context) {
	userID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}
	notificationID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.service.MarkRead(c.Request.Context(), notificationID, userID); err != nil {
		h.HandleServiceError(c, err, "Failed to mark notification read")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Notification marked read"})
}

// SendBulk pushes a notification to a set of users (admin only).
func (h *NotificationHandler) SendBulk(c *gin.Context) {
	var req services.BulkNotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid request body", Details: err.Error()})
		return
	}

	h.LogRequest(c, "Sending bulk notification", "recipients", len(req.UserIDs))

	if err := h.service.SendBulk(c.Request.Context(), &req); err != nil {
		h.HandleServiceError(c, err, "Failed to send notifications")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Notifications sent", "count": len(req.UserIDs)})
}
