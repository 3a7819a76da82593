package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type BookingStatus string

const (
	BookingPending  BookingStatus = "Pending"
	BookingApproved BookingStatus = "Approved"
	BookingRejected BookingStatus = "Rejected"
)

// Terminal reports whether an admin decision has already been recorded.
func (s BookingStatus) Terminal() bool {
	return s == BookingApproved || s == BookingRejected
}

// Hall is a static bookable resource, unique by name.
type Hall struct {
	ID              uint    `json:"id" gorm:"primaryKey"`
	Name            string  `json:"name" gorm:"uniqueIndex;not null;size:100" validate:"required,max=100"`
	Capacity        int     `json:"capacity" gorm:"not null" validate:"required,min=1"`
	LocationDetails *string `json:"location_details" gorm:"type:text"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	Bookings []HallBooking `json:"-" gorm:"foreignKey:HallID;constraint:OnDelete:CASCADE"`
}

func (Hall) TableName() string {
	return "halls"
}

// Bus is a static bookable resource, unique by identifier.
type Bus struct {
	ID            uint    `json:"id" gorm:"primaryKey"`
	Identifier    string  `json:"identifier" gorm:"uniqueIndex;not null;size:100" validate:"required,max=100"`
	Capacity      int     `json:"capacity" gorm:"not null" validate:"required,min=1"`
	DriverContact *string `json:"driver_contact" gorm:"size:100"`
	RouteDetails  *string `json:"route_details" gorm:"type:text"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	Bookings []BusBooking `json:"-" gorm:"foreignKey:BusID;constraint:OnDelete:CASCADE"`
}

func (Bus) TableName() string {
	return "buses"
}

// HallBooking is a student request for a hall on a date/time window.
// Status moves at most once from Pending to a terminal state.
type HallBooking struct {
	ID        uint  `json:"id" gorm:"primaryKey"`
	HallID    uint  `json:"hall_id" gorm:"not null;index"`
	StudentID uint  `json:"student_id" gorm:"not null;index"`
	EventID   *uint `json:"event_id"`

	RequestedDate datatypes.Date `json:"requested_date" gorm:"not null"`
	StartTime     string         `json:"start_time" gorm:"not null;size:5"` // HH:MM
	EndTime       string         `json:"end_time" gorm:"not null;size:5"`
	Purpose       string         `json:"purpose" gorm:"type:text;not null"`

	Status             BookingStatus `json:"status" gorm:"not null;default:Pending;size:50;index"`
	ProcessedByAdminID *uint         `json:"processed_by_admin_id"`
	ProcessedTimestamp *time.Time    `json:"processed_timestamp"`
	AdminRemarks       *string       `json:"admin_remarks" gorm:"type:text"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Hall      *Hall  `json:"hall,omitempty" gorm:"foreignKey:HallID"`
	Requester *User  `json:"requester,omitempty" gorm:"foreignKey:StudentID"`
	Event     *Event `json:"event,omitempty" gorm:"foreignKey:EventID"`
	Processor *User  `json:"processor,omitempty" gorm:"foreignKey:ProcessedByAdminID"`
}

func (HallBooking) TableName() string {
	return "hall_bookings"
}

// BusBooking is a student request for a bus trip. Approved bus bookings
// carry a rendered ticket artifact.
type BusBooking struct {
	ID        uint  `json:"id" gorm:"primaryKey"`
	BusID     uint  `json:"bus_id" gorm:"not null;index"`
	StudentID uint  `json:"student_id" gorm:"not null;index"`
	EventID   *uint `json:"event_id"`

	RequestedDate      datatypes.Date `json:"requested_date" gorm:"not null"`
	PickupTime         string         `json:"pickup_time" gorm:"not null;size:5"` // HH:MM
	PickupLocation     string         `json:"pickup_location" gorm:"not null;size:200"`
	Destination        string         `json:"destination" gorm:"not null;size:200"`
	NumberOfPassengers *int           `json:"number_of_passengers"`
	Purpose            string         `json:"purpose" gorm:"type:text;not null"`

	Status             BookingStatus `json:"status" gorm:"not null;default:Pending;size:50;index"`
	ProcessedByAdminID *uint         `json:"processed_by_admin_id"`
	ProcessedTimestamp *time.Time    `json:"processed_timestamp"`
	AdminRemarks       *string       `json:"admin_remarks" gorm:"type:text"`

	CertificatePath        *string    `json:"certificate_path" gorm:"size:255"`
	CertificateGeneratedAt *time.Time `json:"certificate_generated_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Bus       *Bus   `json:"bus,omitempty" gorm:"foreignKey:BusID"`
	Requester *User  `json:"requester,omitempty" gorm:"foreignKey:StudentID"`
	Event     *Event `json:"event,omitempty" gorm:"foreignKey:EventID"`
	Processor *User  `json:"processor,omitempty" gorm:"foreignKey:ProcessedByAdminID"`
}

func (BusBooking) TableName() string {
	return "bus_bookings"
}
