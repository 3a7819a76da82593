package repositories

import (
	"time"

	"github.com/UCEM-2025/campus-event-service/internal/models"
)

// ===== SHARED FILTER STRUCTS =====

type EventFilters struct {
	Status    *models.EventStatus `json:"status"`
	CreatedBy *uint               `json:"created_by"`
	DateFrom  *time.Time          `json:"date_from"`
	DateTo    *time.Time          `json:"date_to"`
	Limit     int                 `json:"limit"`
	Offset    int                 `json:"offset"`
	SortBy    string              `json:"sort_by"`    // "date", "created_at", "name"
	SortOrder string              `json:"sort_order"` // "asc", "desc"
}

type BookingFilters struct {
	Status    *models.BookingStatus `json:"status"`
	StudentID *uint                 `json:"student_id"`
	Limit     int                   `json:"limit"`
	Offset    int                   `json:"offset"`
	SortBy    string                `json:"sort_by"`
	SortOrder string                `json:"sort_order"`
}

type NotificationFilters struct {
	Unread *bool `json:"unread"`
	Limit  int   `json:"limit"`
	Offset int   `json:"offset"`
}

type UserFilters struct {
	Role   *models.UserRole `json:"role"`
	Query  string           `json:"query"` // matches username or email
	Limit  int              `json:"limit"`
	Offset int              `json:"offset"`
}

// ===== SHARED STATISTICS STRUCTS =====

type EventStats struct {
	TotalRegistrations int  `json:"total_registrations"`
	ConfirmedTickets   int  `json:"confirmed_tickets"`
	PendingPayments    int  `json:"pending_payments"`
	RemainingCapacity  *int `json:"remaining_capacity"` // nil when unbounded
}

type BookingStats struct {
	Pending  int `json:"pending"`
	Approved int `json:"approved"`
	Rejected int `json:"rejected"`
}
