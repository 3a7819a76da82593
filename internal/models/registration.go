package models

import (
	"time"
)

type PaymentStatus string

const (
	PaymentNotRequired PaymentStatus = "N/A"
	PaymentPending     PaymentStatus = "pending"
	PaymentPaid        PaymentStatus = "paid"
)

// Registration links a user to an event. The (user_id, event_id) pair is
// unique; a confirmed registration carries a ticket ID and, for free events,
// a rendered certificate artifact.
type Registration struct {
	ID      uint `json:"id" gorm:"primaryKey"`
	UserID  uint `json:"user_id" gorm:"not null;uniqueIndex:idx_registrations_user_event"`
	EventID uint `json:"event_id" gorm:"not null;uniqueIndex:idx_registrations_user_event;index"`

	RegistrationDate time.Time     `json:"registration_date" gorm:"not null;autoCreateTime"`
	TicketID         *string       `json:"ticket_id" gorm:"uniqueIndex;size:50"`
	PaymentStatus    PaymentStatus `json:"payment_status" gorm:"not null;default:pending;size:20"`

	CertificatePath        *string    `json:"certificate_path" gorm:"size:255"`
	CertificateGeneratedAt *time.Time `json:"certificate_generated_at"`

	// Relations
	User  *User  `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Event *Event `json:"event,omitempty" gorm:"foreignKey:EventID"`
}

func (Registration) TableName() string {
	return "registrations"
}

// Confirmed reports whether the registration holds an issued ticket.
func (r *Registration) Confirmed() bool {
	return r.TicketID != nil
}
