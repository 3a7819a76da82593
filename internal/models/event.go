package models

import (
	"time"

	"gorm.io/gorm"
)

type EventStatus string

const (
	EventPendingDSA  EventStatus = "PendingDSA"
	EventPendingVC   EventStatus = "PendingVC"
	EventApproved    EventStatus = "Approved"
	EventDSARejected EventStatus = "DSARejected"
	EventVCRejected  EventStatus = "VCRejected"
)

// Terminal reports whether no further approval transition is possible.
func (s EventStatus) Terminal() bool {
	return s == EventApproved || s == EventDSARejected || s == EventVCRejected
}

type Event struct {
	ID          uint        `json:"id" gorm:"primaryKey"`
	Name        string      `json:"name" gorm:"not null;size:100;index" validate:"required,min=1,max=100"`
	Description string      `json:"description" gorm:"type:text;not null" validate:"required"`
	Date        time.Time   `json:"date" gorm:"not null;index" validate:"required"`
	Location    string      `json:"location" gorm:"not null;size:100" validate:"required,max=100"`
	Price       float64     `json:"price" gorm:"not null;default:0" validate:"min=0"`
	Capacity    *int        `json:"capacity" validate:"omitempty,min=1"` // nil means unbounded
	Status      EventStatus `json:"status" gorm:"not null;default:PendingDSA;size:50;index" validate:"omitempty,oneof=PendingDSA PendingVC Approved DSARejected VCRejected"`

	CreatedBy     uint  `json:"created_by" gorm:"not null;index"`
	DSAApproverID *uint `json:"dsa_approver_id"`
	VCApproverID  *uint `json:"vc_approver_id"`

	ReminderSent bool `json:"reminder_sent" gorm:"not null;default:false;index"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	// Relations
	Creator       *User          `json:"creator,omitempty" gorm:"foreignKey:CreatedBy"`
	DSAApprover   *User          `json:"dsa_approver,omitempty" gorm:"foreignKey:DSAApproverID"`
	VCApprover    *User          `json:"vc_approver,omitempty" gorm:"foreignKey:VCApproverID"`
	Registrations []Registration `json:"registrations,omitempty" gorm:"foreignKey:EventID"`
}

func (Event) TableName() string {
	return "events"
}

// Free reports whether the event requires no payment.
func (e *Event) Free() bool {
	return e.Price == 0
}
