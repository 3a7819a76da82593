package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/UCEM-2025/campus-event-service/internal/models"
	"github.com/UCEM-2025/campus-event-service/internal/repositories"
	"github.com/UCEM-2025/campus-event-service/internal/services"
	"github.com/UCEM-2025/campus-event-service/internal/utils"
)

type EventHandler struct {
	BaseHandler
	service services.EventService
}

func NewEventHandler(service services.EventService, logger utils.Logger) *EventHandler {
	return &EventHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// CreateEvent proposes a new event; it enters the approval pipeline.
func (h *EventHandler) CreateEvent(c *gin.Context) {
	userID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}

	var req services.CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid request body", Details: err.Error()})
		return
	}

	h.LogRequest(c, "Creating event", "name", req.Name)

	event, err := h.service.Create(c.Request.Context(), &req, userID)
	if err != nil {
		h.HandleServiceError(c, err, "Failed to create event")
		return
	}

	c.JSON(http.StatusCreated, event)
}

func (h *EventHandler) UpdateEvent(c *gin.Context) {
	userID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}
	eventID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	var req services.UpdateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid request body", Details: err.Error()})
		return
	}

	event, result, err := h.service.Update(c.Request.Context(), eventID, &req, userID)
	if err != nil {
		h.HandleServiceError(c, err, "Failed to update event")
		return
	}

	h.RespondWithResult(c, result, event, http.StatusOK)
}

func (h *EventHandler) GetEvent(c *gin.Context) {
	eventID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	response, err := h.service.GetByID(c.Request.Context(), eventID)
	if err != nil {
		h.HandleServiceError(c, err, "Failed to get event")
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *EventHandler) ListEvents(c *gin.Context) {
	filters := h.parseEventFilters(c)

	response, err := h.service.List(c.Request.Context(), filters)
	if err != nil {
		h.HandleServiceError(c, err, "Failed to list events")
		return
	}

	c.JSON(http.StatusOK, response)
}

// ===== APPROVAL PIPELINE =====

func (h *EventHandler) DSAApprove(c *gin.Context) {
	h.decide(c, h.service.DSAApprove)
}

func (h *EventHandler) DSAReject(c *gin.Context) {
	h.decide(c, h.service.DSAReject)
}

func (h *EventHandler) VCApprove(c *gin.Context) {
	h.decide(c, h.service.VCApprove)
}

func (h *EventHandler) VCReject(c *gin.Context) {
	h.decide(c, h.service.VCReject)
}

func (h *EventHandler) decide(c *gin.Context, op func(ctx context.Context, eventID, actorID uint, req *services.ApprovalDecisionRequest) (*models.Event, services.Result, error)) {
	userID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}
	eventID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	var req services.ApprovalDecisionRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid request body", Details: err.Error()})
			return
		}
	}

	event, result, err := op(c.Request.Context(), eventID, userID, &req)
	if err != nil {
		h.HandleServiceError(c, err, "Failed to record decision")
		return
	}

	h.RespondWithResult(c, result, event, http.StatusOK)
}

// ===== HELPERS =====

func (h *EventHandler) parseEventFilters(c *gin.Context) repositories.EventFilters {
	page := 1
	size := 20

	if pageStr := c.Query("page"); pageStr != "" {
		if p, err := strconv.Atoi(pageStr); err == nil && p > 0 {
			page = p
		}
	}
	if sizeStr := c.Query("size"); sizeStr != "" {
		if s, err := strconv.Atoi(sizeStr); err == nil && s > 0 && s <= 100 {
			size = s
		}
	}

	filters := repositories.EventFilters{
		Limit:     size,
		Offset:    (page - 1) * size,
		SortBy:    c.Query("sort_by"),
		SortOrder: c.Query("sort_order"),
	}

	if status := c.Query("status"); status != "" {
		s := models.EventStatus(status)
		filters.Status = &s
	}
	if from := c.Query("date_from"); from != "" {
		if t, err := time.Parse("2006-01-02", from); err == nil {
			filters.DateFrom = &t
		}
	}
	if to := c.Query("date_to"); to != "" {
		if t, err := time.Parse("2006-01-02", to); err == nil {
			filters.DateTo = &t
		}
	}

	return filters
}
