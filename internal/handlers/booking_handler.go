package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/UCEM-2025/campus-event-service/internal/models"
	"github.com/UCEM-2025/campus-event-service/internal/repositories"
	"github.com/UCEM-2025/campus-event-service/internal/services"
	"github.com/UCEM-2025/campus-event-service/internal/utils"
)

type hallDecisionFunc func(ctx context.Context, bookingID, adminID uint, req *services.BookingDecisionRequest) (*models.HallBooking, services.Result, error)

type busDecisionFunc func(ctx context.Context, bookingID, adminID uint, req *services.BookingDecisionRequest) (*models.BusBooking, services.Result, error)

type BookingHandler struct {
	BaseHandler
	service services.BookingService
}

func NewBookingHandler(service services.BookingService, logger utils.Logger) *BookingHandler {
	return &BookingHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// ===== SUBMISSION =====

func (h *BookingHandler) SubmitHallBooking(c *gin.Context) {
	userID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}

	var req services.CreateHallBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid request body", Details: err.Error()})
		return
	}

	h.LogRequest(c, "Submitting hall booking", "hall_id", req.HallID)

	booking, result, err := h.service.SubmitHallBooking(c.Request.Context(), &req, userID)
	if err != nil {
		h.HandleServiceError(c, err, "Failed to submit hall booking")
		return
	}

	h.RespondWithResult(c, result, booking, http.StatusCreated)
}

func (h *BookingHandler) SubmitBusBooking(c *gin.Context) {
	userID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}

	var req services.CreateBusBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid request body", Details: err.Error()})
		return
	}

	h.LogRequest(c, "Submitting bus booking", "bus_id", req.BusID)

	booking, result, err := h.service.SubmitBusBooking(c.Request.Context(), &req, userID)
	if err != nil {
		h.HandleServiceError(c, err, "Failed to submit bus booking")
		return
	}

	h.RespondWithResult(c, result, booking, http.StatusCreated)
}

// ===== DECISIONS =====

func (h *BookingHandler) ApproveHallBooking(c *gin.Context) {
	h.decideHall(c, h.service.ApproveHallBooking)
}

func (h *BookingHandler) RejectHallBooking(c *gin.Context) {
	h.decideHall(c, h.service.RejectHallBooking)
}

func (h *BookingHandler) ApproveBusBooking(c *gin.Context) {
	h.decideBus(c, h.service.ApproveBusBooking)
}

func (h *BookingHandler) RejectBusBooking(c *gin.Context) {
	h.decideBus(c, h.service.RejectBusBooking)
}

func (h *BookingHandler) decideHall(c *gin.Context, op hallDecisionFunc) {
	adminID, bookingID, req, ok := h.bindDecision(c)
	if !ok {
		return
	}

	booking, result, err := op(c.Request.Context(), bookingID, adminID, req)
	if err != nil {
		h.HandleServiceError(c, err, "Failed to record booking decision")
		return
	}

	h.RespondWithResult(c, result, booking, http.StatusOK)
}

func (h *BookingHandler) decideBus(c *gin.Context, op busDecisionFunc) {
	adminID, bookingID, req, ok := h.bindDecision(c)
	if !ok {
		return
	}

	booking, result, err := op(c.Request.Context(), bookingID, adminID, req)
	if err != nil {
		h.HandleServiceError(c, err, "Failed to record booking decision")
		return
	}

	h.RespondWithResult(c, result, booking, http.StatusOK)
}

func (h *BookingHandler) bindDecision(c *gin.Context) (adminID, bookingID uint, req *services.BookingDecisionRequest, ok bool) {
	adminID, ok = h.CurrentUserID(c)
	if !ok {
		return 0, 0, nil, false
	}
	bookingID, ok = h.ParseIDParam(c, "id")
	if !ok {
		return 0, 0, nil, false
	}

	req = &services.BookingDecisionRequest{}
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(req); err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid request body", Details: err.Error()})
			return 0, 0, nil, false
		}
	}
	return adminID, bookingID, req, true
}

// ===== LISTINGS =====

func (h *BookingHandler) ListHallBookings(c *gin.Context) {
	response, err := h.service.ListHallBookings(c.Request.Context(), h.parseBookingFilters(c))
	if err != nil {
		h.HandleServiceError(c, err, "Failed to list hall bookings")
		return
	}
	c.JSON(http.StatusOK, response)
}

func (h *BookingHandler) ListBusBookings(c *gin.Context) {
	response, err := h.service.ListBusBookings(c.Request.Context(), h.parseBookingFilters(c))
	if err != nil {
		h.HandleServiceError(c, err, "Failed to list bus bookings")
		return
	}
	c.JSON(http.StatusOK, response)
}

func (h *BookingHandler) MyHallBookings(c *gin.Context) {
	userID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}

	bookings, err := h.service.MyHallBookings(c.Request.Context(), userID)
	if err != nil {
		h.HandleServiceError(c, err, "Failed to list hall bookings")
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

func (h *BookingHandler) MyBusBookings(c *gin.Context) {
	userID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}

	bookings, err := h.service.MyBusBookings(c.Request.Context(), userID)
	if err != nil {
		h.HandleServiceError(c, err, "Failed to list bus bookings")
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

// DownloadBusTicket streams the passenger's bus ticket PDF.
func (h *BookingHandler) DownloadBusTicket(c *gin.Context) {
	userID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}
	bookingID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	path, err := h.service.BusTicketFile(c.Request.Context(), bookingID, userID)
	if err != nil {
		h.HandleServiceError(c, err, "Failed to fetch bus ticket")
		return
	}

	c.Header("Content-Disposition", `attachment; filename="bus_ticket.pdf"`)
	c.Header("Content-Type", "application/pdf")
	c.File(path)
}

// ===== HELPERS =====

func (h *BookingHandler) parseBookingFilters(c *gin.Context) repositories.BookingFilters {
	filters := repositories.BookingFilters{
		Limit:  50,
		Offset: 0,
	}

	if sizeStr := c.Query("size"); sizeStr != "" {
		if s, err := strconv.Atoi(sizeStr); err == nil && s > 0 && s <= 200 {
			filters.Limit = s
		}
	}
	if pageStr := c.Query("page"); pageStr != "" {
		if p, err := strconv.Atoi(pageStr); err == nil && p > 1 {
			filters.Offset = (p - 1) * filters.Limit
		}
	}
	if status := c.Query("status"); status != "" {
		s := models.BookingStatus(status)
		filters.Status = &s
	}

	return filters
}
