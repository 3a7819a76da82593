package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/UCEM-2025/campus-event-service/internal/services"
	"github.com/UCEM-2025/campus-event-service/internal/utils"
	"github.com/UCEM-2025/campus-event-service/internal/validator"
)

type ErrorResponse struct {
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// BaseHandler carries shared logging and response helpers.
type BaseHandler struct {
	logger utils.Logger
}

func NewBaseHandler(logger utils.Logger) BaseHandler {
	return BaseHandler{logger: logger}
}

func (h *BaseHandler) LogRequest(c *gin.Context, msg string, args ...any) {
	utils.LoggerFromContext(c.Request.Context(), h.logger).Debug(msg, args...)
}

func (h *BaseHandler) LogError(c *gin.Context, err error, msg string, args ...any) {
	args = append(args, "error", err)
	utils.LoggerFromContext(c.Request.Context(), h.logger).Error(msg, args...)
}

// ParseIDParam parses a positive uint path parameter.
func (h *BaseHandler) ParseIDParam(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid " + name + " parameter",
		})
		return 0, false
	}
	return uint(id), true
}

// CurrentUserID returns the authenticated user's ID placed in the context
// by the auth middleware.
func (h *BaseHandler) CurrentUserID(c *gin.Context) (uint, bool) {
	value, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "User not authenticated"})
		return 0, false
	}
	id, ok := value.(uint)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "User not authenticated"})
		return 0, false
	}
	return id, true
}

// HandleServiceError maps service errors onto HTTP status codes.
func (h *BaseHandler) HandleServiceError(c *gin.Context, err error, msg string) {
	var ve validator.ValidationErrors
	switch {
	case errors.As(err, &ve):
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "Validation failed",
			"errors":  ve,
		})
	case services.IsPermissionError(err):
		c.JSON(http.StatusForbidden, ErrorResponse{Message: err.Error()})
	case errors.Is(err, services.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: err.Error()})
	case isNotFound(err):
		c.JSON(http.StatusNotFound, ErrorResponse{Message: err.Error()})
	default:
		h.LogError(c, err, msg)
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Message: msg,
			Details: err.Error(),
		})
	}
}

func isNotFound(err error) bool {
	for _, sentinel := range []error{
		services.ErrUserNotFound,
		services.ErrEventNotFound,
		services.ErrRegistrationNotFound,
		services.ErrHallNotFound,
		services.ErrBusNotFound,
		services.ErrBookingNotFound,
		services.ErrNotificationNotFound,
		services.ErrCertificateNotFound,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}

// RespondWithResult writes an outcome-carrying response. Refused
// preconditions (warnings) map to 409; informational no-ops to 200.
func (h *BaseHandler) RespondWithResult(c *gin.Context, result services.Result, payload interface{}, createdStatus int) {
	body := gin.H{
		"outcome": result.Outcome,
		"message": result.Message,
	}
	if payload != nil {
		body["data"] = payload
	}

	switch result.Outcome {
	case services.OutcomeWarning:
		c.JSON(http.StatusConflict, body)
	case services.OutcomeInfo:
		c.JSON(http.StatusOK, body)
	default:
		c.JSON(createdStatus, body)
	}
}
