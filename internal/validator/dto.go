package validator

import (
	"time"

	"github.com/UCEM-2025/campus-event-service/internal/models"
)

// EventCreateRequest is the payload for proposing a new event. Every new
// event starts its life awaiting the first approval stage.
type EventCreateRequest struct {
	Name        string    `json:"name" validate:"required,min=3,max=200"`
	Description string    `json:"description" validate:"omitempty,max=2000"`
	Date        time.Time `json:"date" validate:"required"`
	Location    string    `json:"location" validate:"required,max=200"`
	Price       float64   `json:"price" validate:"event_price"`
	Capacity    *int      `json:"capacity" validate:"omitempty,gt=0"`
}

// EventUpdateRequest allows editing event details while the event is still
// in the approval pipeline.
type EventUpdateRequest struct {
	Name        *string    `json:"name" validate:"omitempty,min=3,max=200"`
	Description *string    `json:"description" validate:"omitempty,max=2000"`
	Date        *time.Time `json:"date"`
	Location    *string    `json:"location" validate:"omitempty,max=200"`
	Price       *float64   `json:"price" validate:"omitempty,event_price"`
	Capacity    *int       `json:"capacity" validate:"omitempty,gt=0"`
}

// ApprovalDecisionRequest carries optional remarks for an approve or
// reject action on an event.
type ApprovalDecisionRequest struct {
	Remarks *string `json:"remarks" validate:"omitempty,max=500"`
}

type HallCreateRequest struct {
	Name            string `json:"name" validate:"required,min=2,max=100"`
	Capacity        int    `json:"capacity" validate:"required,gt=0"`
	LocationDetails string `json:"location_details" validate:"omitempty,max=500"`
}

type HallUpdateRequest struct {
	Name            *string `json:"name" validate:"omitempty,min=2,max=100"`
	Capacity        *int    `json:"capacity" validate:"omitempty,gt=0"`
	LocationDetails *string `json:"location_details" validate:"omitempty,max=500"`
}

type BusCreateRequest struct {
	Identifier    string `json:"identifier" validate:"required,min=2,max=50"`
	Capacity      int    `json:"capacity" validate:"required,gt=0"`
	DriverContact string `json:"driver_contact" validate:"omitempty,max=100"`
	RouteDetails  string `json:"route_details" validate:"omitempty,max=500"`
}

type BusUpdateRequest struct {
	Identifier    *string `json:"identifier" validate:"omitempty,min=2,max=50"`
	Capacity      *int    `json:"capacity" validate:"omitempty,gt=0"`
	DriverContact *string `json:"driver_contact" validate:"omitempty,max=100"`
	RouteDetails  *string `json:"route_details" validate:"omitempty,max=500"`
}

// HallBookingCreateRequest is a student's request for a hall slot.
// RequestedDate uses the 2006-01-02 form; times use 24h HH:MM.
type HallBookingCreateRequest struct {
	HallID        uint   `json:"hall_id" validate:"required"`
	EventID       *uint  `json:"event_id"`
	RequestedDate string `json:"requested_date" validate:"required,datetime=2006-01-02"`
	StartTime     string `json:"start_time" validate:"required,clock_time"`
	EndTime       string `json:"end_time" validate:"required,clock_time"`
	Purpose       string `json:"purpose" validate:"required,min=5,max=500"`
}

type BusBookingCreateRequest struct {
	BusID              uint   `json:"bus_id" validate:"required"`
	EventID            *uint  `json:"event_id"`
	RequestedDate      string `json:"requested_date" validate:"required,datetime=2006-01-02"`
	PickupTime         string `json:"pickup_time" validate:"required,clock_time"`
	PickupLocation     string `json:"pickup_location" validate:"required,max=200"`
	Destination        string `json:"destination" validate:"required,max=200"`
	NumberOfPassengers *int   `json:"number_of_passengers" validate:"omitempty,gt=0"`
	Purpose            string `json:"purpose" validate:"required,min=5,max=500"`
}

// BookingDecisionRequest carries the admin's remarks when approving or
// rejecting a hall or bus booking.
type BookingDecisionRequest struct {
	Remarks *string `json:"remarks" validate:"omitempty,max=500"`
}

type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50,alphanum"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

type StaffCreateRequest struct {
	Username string          `json:"username" validate:"required,min=3,max=50,alphanum"`
	Email    string          `json:"email" validate:"required,email"`
	Password string          `json:"password" validate:"required,min=8,max=72"`
	Role     models.UserRole `json:"role" validate:"required,oneof=dsa vc_office admin"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// BulkNotificationRequest fans one message out to many users.
type BulkNotificationRequest struct {
	UserIDs []uint                  `json:"user_ids" validate:"required,min=1"`
	Type    models.NotificationType `json:"type" validate:"required"`
	Message string                  `json:"message" validate:"required,max=1000"`
}
