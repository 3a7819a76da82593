package models

import (
	"time"

	"gorm.io/gorm"
)

type UserRole string
type Role = UserRole // Alias for compatibility

const (
	RoleStudent  UserRole = "student"
	RoleDSA      UserRole = "dsa"
	RoleVCOffice UserRole = "vc_office"
	RoleAdmin    UserRole = "admin"
)

// StaffRoles are the roles only an admin may assign.
var StaffRoles = []UserRole{RoleDSA, RoleVCOffice, RoleAdmin}

type User struct {
	ID           uint     `json:"id" gorm:"primaryKey"`
	Username     string   `json:"username" gorm:"uniqueIndex;not null;size:80" validate:"required,min=3,max=80"`
	Email        string   `json:"email" gorm:"uniqueIndex;not null;size:255" validate:"required,email"`
	PasswordHash string   `json:"-" gorm:"not null;size:256"`
	Role         UserRole `json:"role" gorm:"not null;default:student;size:20;index" validate:"required,oneof=student dsa vc_office admin"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	// Relations
	Registrations []Registration `json:"-" gorm:"foreignKey:UserID"`
	Notifications []Notification `json:"-" gorm:"foreignKey:UserID"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) IsStaff() bool {
	return u.Role != RoleStudent
}
