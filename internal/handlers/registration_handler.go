package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/UCEM-2025/campus-event-service/internal/services"
	"github.com/UCEM-2025/campus-event-service/internal/utils"
)

type RegistrationHandler struct {
	BaseHandler
	service services.RegistrationService
}

func NewRegistrationHandler(service services.RegistrationService, logger utils.Logger) *RegistrationHandler {
	return &RegistrationHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// RSVP registers the caller for an event. Registering twice is a no-op
// acknowledged with an informational response.
func (h *RegistrationHandler) RSVP(c *gin.Context) {
	userID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}
	eventID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	h.LogRequest(c, "RSVP", "event_id", eventID)

	registration, result, err := h.service.RSVP(c.Request.Context(), userID, eventID)
	if err != nil {
		h.HandleServiceError(c, err, "Failed to register for event")
		return
	}

	h.RespondWithResult(c, result, registration, http.StatusCreated)
}

func (h *RegistrationHandler) CancelRSVP(c *gin.Context) {
	userID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}
	eventID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	result, err := h.service.CancelRSVP(c.Request.Context(), userID, eventID)
	if err != nil {
		h.HandleServiceError(c, err, "Failed to cancel registration")
		return
	}

	h.RespondWithResult(c, result, nil, http.StatusOK)
}

func (h *RegistrationHandler) MyRegistrations(c *gin.Context) {
	userID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}

	registrations, err := h.service.MyRegistrations(c.Request.Context(), userID)
	if err != nil {
		h.HandleServiceError(c, err, "Failed to list registrations")
		return
	}

	c.JSON(http.StatusOK, gin.H{"registrations": registrations})
}

func (h *RegistrationHandler) EventRegistrations(c *gin.Context) {
	eventID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	registrations, err := h.service.EventRegistrations(c.Request.Context(), eventID)
	if err != nil {
		h.HandleServiceError(c, err, "Failed to list event registrations")
		return
	}

	c.JSON(http.StatusOK, gin.H{"registrations": registrations})
}

// DownloadCertificate streams the attendee's event certificate PDF.
func (h *RegistrationHandler) DownloadCertificate(c *gin.Context) {
	userID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}
	registrationID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	path, err := h.service.CertificateFile(c.Request.Context(), registrationID, userID)
	if err != nil {
		h.HandleServiceError(c, err, "Failed to fetch certificate")
		return
	}

	c.Header("Content-Disposition", `attachment; filename="certificate.pdf"`)
	c.Header("Content-Type", "application/pdf")
	c.File(path)
}
