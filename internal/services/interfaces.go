package services

import (
	"context"
	"time"

	"github.com/UCEM-2025/campus-event-service/internal/artifacts"
	"github.com/UCEM-2025/campus-event-service/internal/models"
	"github.com/UCEM-2025/campus-event-service/internal/repositories"
	"github.com/UCEM-2025/campus-event-service/internal/validator"
)

// ===== REQUEST/RESPONSE DTOs =====

// Use business validator types
type CreateEventRequest = validator.EventCreateRequest
type UpdateEventRequest = validator.EventUpdateRequest
type ApprovalDecisionRequest = validator.ApprovalDecisionRequest

type CreateHallRequest = validator.HallCreateRequest
type UpdateHallRequest = validator.HallUpdateRequest
type CreateBusRequest = validator.BusCreateRequest
type UpdateBusRequest = validator.BusUpdateRequest

type CreateHallBookingRequest = validator.HallBookingCreateRequest
type CreateBusBookingRequest = validator.BusBookingCreateRequest
type BookingDecisionRequest = validator.BookingDecisionRequest

type RegisterUserRequest = validator.RegisterRequest
type CreateStaffRequest = validator.StaffCreateRequest
type LoginRequest = validator.LoginRequest
type BulkNotificationRequest = validator.BulkNotificationRequest

type EventResponse struct {
	*models.Event
	Stats *repositories.EventStats `json:"stats,omitempty"`
}

type EventListResponse struct {
	Events []*models.Event `json:"events"`
	Total  int64           `json:"total"`
	Page   int             `json:"page"`
	Size   int             `json:"size"`
}

type HallBookingListResponse struct {
	Bookings []*models.HallBooking `json:"bookings"`
	Total    int64                 `json:"total"`
}

type BusBookingListResponse struct {
	Bookings []*models.BusBooking `json:"bookings"`
	Total    int64                `json:"total"`
}

type NotificationListResponse struct {
	Notifications []*models.Notification `json:"notifications"`
	UnreadCount   int64                  `json:"unread_count"`
}

type ReminderRunReport struct {
	EventsProcessed int `json:"events_processed"`
	EmailsSent      int `json:"emails_sent"`
	EmailsFailed    int `json:"emails_failed"`
}

// ===== CAPABILITY INTERFACES =====

// Clock is injected so time-dependent logic (reminder windows, processed
// timestamps) is testable.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now().UTC() }

func SystemClock() Clock { return systemClock{} }

// CertificateRenderer abstracts the PDF generator so services can be
// tested with a recording fake.
type CertificateRenderer interface {
	GenerateEventCertificate(data artifacts.EventCertificateData) (string, error)
	GenerateBusTicket(data artifacts.BusTicketData) (string, error)
}

// ===== SERVICE INTERFACES =====

type UserService interface {
	Register(ctx context.Context, req *RegisterUserRequest) (*models.User, Result, error)
	CreateStaff(ctx context.Context, req *CreateStaffRequest, actorID uint) (*models.User, Result, error)
	Authenticate(ctx context.Context, req *LoginRequest) (*models.User, error)
	GetByID(ctx context.Context, id uint) (*models.User, error)
	List(ctx context.Context, filters repositories.UserFilters) ([]*models.User, int64, error)
}

type EventService interface {
	Create(ctx context.Context, req *CreateEventRequest, creatorID uint) (*models.Event, error)
	Update(ctx context.Context, eventID uint, req *UpdateEventRequest, actorID uint) (*models.Event, Result, error)
	GetByID(ctx context.Context, eventID uint) (*EventResponse, error)
	List(ctx context.Context, filters repositories.EventFilters) (*EventListResponse, error)

	// Approval pipeline. A decision on an event not in the expected stage
	// returns a Warning result and leaves the event untouched.
	DSAApprove(ctx context.Context, eventID, actorID uint, req *ApprovalDecisionRequest) (*models.Event, Result, error)
	DSAReject(ctx context.Context, eventID, actorID uint, req *ApprovalDecisionRequest) (*models.Event, Result, error)
	VCApprove(ctx context.Context, eventID, actorID uint, req *ApprovalDecisionRequest) (*models.Event, Result, error)
	VCReject(ctx context.Context, eventID, actorID uint, req *ApprovalDecisionRequest) (*models.Event, Result, error)
}

type RegistrationService interface {
	RSVP(ctx context.Context, userID, eventID uint) (*models.Registration, Result, error)
	CancelRSVP(ctx context.Context, userID, eventID uint) (Result, error)
	MyRegistrations(ctx context.Context, userID uint) ([]*models.Registration, error)
	EventRegistrations(ctx context.Context, eventID uint) ([]*models.Registration, error)

	// CertificateFile resolves the on-disk path of a registration
	// certificate, enforcing ownership (owner or admin).
	CertificateFile(ctx context.Context, registrationID, actorID uint) (string, error)
}

type BookingService interface {
	SubmitHallBooking(ctx context.Context, req *CreateHallBookingRequest, studentID uint) (*models.HallBooking, Result, error)
	SubmitBusBooking(ctx context.Context, req *CreateBusBookingRequest, studentID uint) (*models.BusBooking, Result, error)

	ApproveHallBooking(ctx context.Context, bookingID, adminID uint, req *BookingDecisionRequest) (*models.HallBooking, Result, error)
	RejectHallBooking(ctx context.Context, bookingID, adminID uint, req *BookingDecisionRequest) (*models.HallBooking, Result, error)
	ApproveBusBooking(ctx context.Context, bookingID, adminID uint, req *BookingDecisionRequest) (*models.BusBooking, Result, error)
	RejectBusBooking(ctx context.Context, bookingID, adminID uint, req *BookingDecisionRequest) (*models.BusBooking, Result, error)

	ListHallBookings(ctx context.Context, filters repositories.BookingFilters) (*HallBookingListResponse, error)
	ListBusBookings(ctx context.Context, filters repositories.BookingFilters) (*BusBookingListResponse, error)
	MyHallBookings(ctx context.Context, studentID uint) ([]*models.HallBooking, error)
	MyBusBookings(ctx context.Context, studentID uint) ([]*models.BusBooking, error)

	// BusTicketFile resolves the on-disk path of a bus ticket, enforcing
	// ownership (owner or admin).
	BusTicketFile(ctx context.Context, bookingID, actorID uint) (string, error)
}

type ResourceService interface {
	CreateHall(ctx context.Context, req *CreateHallRequest) (*models.Hall, Result, error)
	UpdateHall(ctx context.Context, hallID uint, req *UpdateHallRequest) (*models.Hall, Result, error)
	DeleteHall(ctx context.Context, hallID uint) error
	ListHalls(ctx context.Context) ([]*models.Hall, error)
	GetHall(ctx context.Context, hallID uint) (*models.Hall, error)

	CreateBus(ctx context.Context, req *CreateBusRequest) (*models.Bus, Result, error)
	UpdateBus(ctx context.Context, busID uint, req *UpdateBusRequest) (*models.Bus, Result, error)
	DeleteBus(ctx context.Context, busID uint) error
	ListBuses(ctx context.Context) ([]*models.Bus, error)
	GetBus(ctx context.Context, busID uint) (*models.Bus, error)
}

type NotificationService interface {
	// ListForUser returns the user's inbox and marks every unread row read
	// in the same unit of work.
	ListForUser(ctx context.Context, userID uint) (*NotificationListResponse, error)
	UnreadCount(ctx context.Context, userID uint) (int64, error)
	MarkRead(ctx context.Context, notificationID, userID uint) error
	SendBulk(ctx context.Context, req *BulkNotificationRequest) error
}

type ReminderService interface {
	// Run executes one reminder sweep: approved events inside the lookahead
	// window get a reminder email per registrant, best-effort, and are
	// marked reminded regardless of individual delivery failures.
	Run(ctx context.Context) (*ReminderRunReport, error)
}

type ReportService interface {
	// EventRegistrationsReport renders an xlsx workbook of all events and
	// their registrations.
	EventRegistrationsReport(ctx context.Context) ([]byte, error)
	// BookingsReport renders an xlsx workbook with hall and bus booking
	// sheets.
	BookingsReport(ctx context.Context) ([]byte, error)
}

// ServiceManager owns service construction and lifecycle.
type ServiceManager interface {
	User() UserService
	Event() EventService
	Registration() RegistrationService
	Booking() BookingService
	Resource() ResourceService
	Notification() NotificationService
	Reminder() ReminderService
	Report() ReportService

	Initialize(ctx context.Context) error
	HealthCheck(ctx context.Context) error
	Shutdown(ctx context.Context) error
}
