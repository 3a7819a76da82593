package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/UCEM-2025/campus-event-service/internal/models"
	"github.com/UCEM-2025/campus-event-service/internal/repositories"
	"github.com/UCEM-2025/campus-event-service/internal/services"
	"github.com/UCEM-2025/campus-event-service/internal/utils"
)

type HandlerManager struct {
	userHandler         *UserHandler
	eventHandler        *EventHandler
	registrationHandler *RegistrationHandler
	bookingHandler      *BookingHandler
	resourceHandler     *ResourceHandler
	notificationHandler *NotificationHandler
	reportHandler       *ReportHandler
	authMiddleware      *GatewayAuthMiddleware

	serviceManager services.ServiceManager
}

func NewHandlerManager(
	serviceManager services.ServiceManager,
	logger utils.Logger,
	userRepo repositories.UserRepository,
) *HandlerManager {
	authMiddleware := NewGatewayAuthMiddleware(userRepo)

	return &HandlerManager{
		userHandler:         NewUserHandler(serviceManager.User(), logger),
		eventHandler:        NewEventHandler(serviceManager.Event(), logger),
		registrationHandler: NewRegistrationHandler(serviceManager.Registration(), logger),
		bookingHandler:      NewBookingHandler(serviceManager.Booking(), logger),
		resourceHandler:     NewResourceHandler(serviceManager.Resource(), logger),
		notificationHandler: NewNotificationHandler(serviceManager.Notification(), logger),
		reportHandler:       NewReportHandler(serviceManager.Report(), logger),
		authMiddleware:      authMiddleware,
		serviceManager:      serviceManager,
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	router.GET("/health", hm.healthCheck)

	// Open endpoints: account registration and credential check. Session
	// issuance is the gateway's responsibility.
	auth := router.Group("/api/v1/auth")
	{
		auth.POST("/register", hm.userHandler.Register)
		auth.POST("/login", hm.userHandler.Login)
	}

	v1 := router.Group("/api/v1")
	v1.Use(hm.authMiddleware.AuthMiddleware())
	{
		admin := hm.authMiddleware.RequireRoleMiddleware(models.RoleAdmin)
		dsa := hm.authMiddleware.RequireRoleMiddleware(models.RoleDSA)
		vcOffice := hm.authMiddleware.RequireRoleMiddleware(models.RoleVCOffice)

		// Event routes
		events := v1.Group("/events")
		{
			// Propose/modify events - Admins only
			events.POST("", admin, hm.eventHandler.CreateEvent)
			events.PUT("/:id", admin, hm.eventHandler.UpdateEvent)

			// View events - all authenticated users
			events.GET("", hm.eventHandler.ListEvents)
			events.GET("/:id", hm.eventHandler.GetEvent)

			// Approval pipeline - stage-specific roles
			events.POST("/:id/dsa/approve", dsa, hm.eventHandler.DSAApprove)
			events.POST("/:id/dsa/reject", dsa, hm.eventHandler.DSAReject)
			events.POST("/:id/vc/approve", vcOffice, hm.eventHandler.VCApprove)
			events.POST("/:id/vc/reject", vcOffice, hm.eventHandler.VCReject)

			// Registrations
			events.POST("/:id/rsvp", hm.registrationHandler.RSVP)
			events.DELETE("/:id/rsvp", hm.registrationHandler.CancelRSVP)
			events.GET("/:id/registrations", admin, hm.registrationHandler.EventRegistrations)
		}

		// Registration routes
		registrations := v1.Group("/registrations")
		{
			registrations.GET("/mine", hm.registrationHandler.MyRegistrations)
			registrations.GET("/:id/certificate", hm.registrationHandler.DownloadCertificate)
		}

		// Booking routes
		bookings := v1.Group("/bookings")
		{
			bookings.POST("/halls", hm.bookingHandler.SubmitHallBooking)
			bookings.POST("/buses", hm.bookingHandler.SubmitBusBooking)

			bookings.GET("/halls", admin, hm.bookingHandler.ListHallBookings)
			bookings.GET("/buses", admin, hm.bookingHandler.ListBusBookings)
			bookings.GET("/halls/mine", hm.bookingHandler.MyHallBookings)
			bookings.GET("/buses/mine", hm.bookingHandler.MyBusBookings)

			bookings.POST("/halls/:id/approve", admin, hm.bookingHandler.ApproveHallBooking)
			bookings.POST("/halls/:id/reject", admin, hm.bookingHandler.RejectHallBooking)
			bookings.POST("/buses/:id/approve", admin, hm.bookingHandler.ApproveBusBooking)
			bookings.POST("/buses/:id/reject", admin, hm.bookingHandler.RejectBusBooking)

			bookings.GET("/buses/:id/ticket", hm.bookingHandler.DownloadBusTicket)
		}

		// Resource inventory - view for everyone, management for admins
		halls := v1.Group("/halls")
		{
			halls.GET("", hm.resourceHandler.ListHalls)
			halls.GET("/:id", hm.resourceHandler.GetHall)
			halls.POST("", admin, hm.resourceHandler.CreateHall)
			halls.PUT("/:id", admin, hm.resourceHandler.UpdateHall)
			halls.DELETE("/:id", admin, hm.resourceHandler.DeleteHall)
		}

		buses := v1.Group("/buses")
		{
			buses.GET("", hm.resourceHandler.ListBuses)
			buses.GET("/:id", hm.resourceHandler.GetBus)
			buses.POST("", admin, hm.resourceHandler.CreateBus)
			buses.PUT("/:id", admin, hm.resourceHandler.UpdateBus)
			buses.DELETE("/:id", admin, hm.resourceHandler.DeleteBus)
		}

		// Notification routes
		notifications := v1.Group("/notifications")
		{
			notifications.GET("", hm.notificationHandler.ListNotifications)
			notifications.GET("/unread-count", hm.notificationHandler.UnreadCount)
			notifications.PUT("/:id/read", hm.notificationHandler.MarkRead)
			notifications.POST("/bulk", admin, hm.notificationHandler.SendBulk)
		}

		// User routes
		users := v1.Group("/users")
		{
			users.GET("/me", hm.userHandler.Me)
			users.GET("", admin, hm.userHandler.ListUsers)
			users.GET("/:id", admin, hm.userHandler.GetUser)
			users.POST("/staff", admin, hm.userHandler.CreateStaff)
		}

		// Report routes - Admins only
		reports := v1.Group("/reports", admin)
		{
			reports.GET("/registrations", hm.reportHandler.EventRegistrationsReport)
			reports.GET("/bookings", hm.reportHandler.BookingsReport)
		}
	}
}

func (hm *HandlerManager) healthCheck(c *gin.Context) {
	if err := hm.serviceManager.HealthCheck(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}
