package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/UCEM-2025/campus-event-service/internal/models"
	"github.com/UCEM-2025/campus-event-service/internal/repositories"
	"github.com/UCEM-2025/campus-event-service/internal/services"
	"github.com/UCEM-2025/campus-event-service/internal/utils"
)

type UserHandler struct {
	BaseHandler
	service services.UserService
}

func NewUserHandler(service services.UserService, logger utils.Logger) *UserHandler {
	return &UserHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// Register creates a student account. Open endpoint.
func (h *UserHandler) Register(c *gin.Context) {
	var req services.RegisterUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid request body", Details: err.Error()})
		return
	}

	user, result, err := h.service.Register(c.Request.Context(), &req)
	if err != nil {
		h.HandleServiceError(c, err, "Failed to register user")
		return
	}

	h.RespondWithResult(c, result, user, http.StatusCreated)
}

// Login verifies credentials and returns the account profile. Session
// issuance is the gateway's job; this endpoint only authenticates.
func (h *UserHandler) Login(c *gin.Context) {
	var req services.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid request body", Details: err.Error()})
		return
	}

	user, err := h.service.Authenticate(c.Request.Context(), &req)
	if err != nil {
		h.HandleServiceError(c, err, "Failed to authenticate")
		return
	}

	c.JSON(http.StatusOK, user)
}

// CreateStaff provisions a staff account (dsa, vc_office, admin).
func (h *UserHandler) CreateStaff(c *gin.Context) {
	actorID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}

	var req services.CreateStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid request body", Details: err.Error()})
		return
	}

	h.LogRequest(c, "Creating staff account", "role", req.Role)

	user, result, err := h.service.CreateStaff(c.Request.Context(), &req, actorID)
	if err != nil {
		h.HandleServiceError(c, err, "Failed to create staff account")
		return
	}

	h.RespondWithResult(c, result, user, http.StatusCreated)
}

func (h *UserHandler) GetUser(c *gin.Context) {
	userID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	user, err := h.service.GetByID(c.Request.Context(), userID)
	if err != nil {
		h.HandleServiceError(c, err, "Failed to get user")
		return
	}

	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) Me(c *gin.Context) {
	userID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}

	user, err := h.service.GetByID(c.Request.Context(), userID)
	if err != nil {
		h.HandleServiceError(c, err, "Failed to get user")
		return
	}

	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) ListUsers(c *gin.Context) {
	filters := repositories.UserFilters{Limit: 50}

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
	if role := c.Query("role"); role != "" {
		r := models.UserRole(role)
		filters.Role = &r
	}

	users, total, err := h.service.List(c.Request.Context(), filters)
	if err != nil {
		h.HandleServiceError(c, err, "Failed to list users")
		return
	}

	c.JSON(http.StatusOK, gin.H{"users": users, "total": total})
}
