package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/UCEM-2025/campus-event-service/internal/services"
	"github.com/UCEM-2025/campus-event-service/internal/utils"
)

// ResourceHandler exposes hall and bus inventory management.
type ResourceHandler struct {
	BaseHandler
	service services.ResourceService
}

func NewResourceHandler(service services.ResourceService, logger utils.Logger) *ResourceHandler {
	return &ResourceHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// ===== HALLS =====

func (h *ResourceHandler) CreateHall(c *gin.Context) {
	var req services.CreateHallRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid request body", Details: err.Error()})
		return
	}

	hall, result, err := h.service.CreateHall(c.Request.Context(), &req)
	if err != nil {
		h.HandleServiceError(c, err, "Failed to create hall")
		return
	}

	h.RespondWithResult(c, result, hall, http.StatusCreated)
}

func (h *ResourceHandler) UpdateHall(c *gin.Context) {
	hallID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	var req services.UpdateHallRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid request body", Details: err.Error()})
		return
	}

	hall, result, err := h.service.UpdateHall(c.Request.Context(), hallID, &req)
	if err != nil {
		h.HandleServiceError(c, err, "Failed to update hall")
		return
	}

	h.RespondWithResult(c, result, hall, http.StatusOK)
}

func (h *ResourceHandler) DeleteHall(c *gin.Context) {
	hallID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.service.DeleteHall(c.Request.Context(), hallID); err != nil {
		h.HandleServiceError(c, err, "Failed to delete hall")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Hall deleted"})
}

func (h *ResourceHandler) ListHalls(c *gin.Context) {
	halls, err := h.service.ListHalls(c.Request.Context())
	if err != nil {
		h.HandleServiceError(c, err, "Failed to list halls")
		return
	}

	c.JSON(http.StatusOK, gin.H{"halls": halls})
}

func (h *ResourceHandler) GetHall(c *gin.Context) {
	hallID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	hall, err := h.service.GetHall(c.Request.Context(), hallID)
	if err != nil {
		h.HandleServiceError(c, err, "Failed to get hall")
		return
	}

	c.JSON(http.StatusOK, hall)
}

// ===== BUSES =====

func (h *ResourceHandler) CreateBus(c *gin.Context) {
	var req services.CreateBusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid request body", Details: err.Error()})
		return
	}

	bus, result, err := h.service.CreateBus(c.Request.Context(), &req)
	if err != nil {
		h.HandleServiceError(c, err, "Failed to create bus")
		return
	}

	h.RespondWithResult(c, result, bus, http.StatusCreated)
}

func (h *ResourceHandler) UpdateBus(c *gin.Context) {
	busID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	var req services.UpdateBusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid request body", Details: err.Error()})
		return
	}

	bus, result, err := h.service.UpdateBus(c.Request.Context(), busID, &req)
	if err != nil {
		h.HandleServiceError(c, err, "Failed to update bus")
		return
	}

	h.RespondWithResult(c, result, bus, http.StatusOK)
}

func (h *ResourceHandler) DeleteBus(c *gin.Context) {
	busID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.service.DeleteBus(c.Request.Context(), busID); err != nil {
		h.HandleServiceError(c, err, "Failed to delete bus")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Bus deleted"})
}

func (h *ResourceHandler) ListBuses(c *gin.Context) {
	buses, err := h.service.ListBuses(c.Request.Context())
	if err != nil {
		h.HandleServiceError(c, err, "Failed to list buses")
		return
	}

	c.JSON(http.StatusOK, gin.H{"buses": buses})
}

func (h *ResourceHandler) GetBus(c *gin.Context) {
	busID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	bus, err := h.service.GetBus(c.Request.Context(), busID)
	if err != nil {
		h.HandleServiceError(c, err, "Failed to get bus")
		return
	}

	c.JSON(http.StatusOK, bus)
}
