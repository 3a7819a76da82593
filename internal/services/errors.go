package services

import (
	"errors"
	"fmt"
)

// ===== SENTINEL ERRORS =====

var (
	ErrUserNotFound         = errors.New("user not found")
	ErrEventNotFound        = errors.New("event not found")
	ErrRegistrationNotFound = errors.New("registration not found")
	ErrHallNotFound         = errors.New("hall not found")
	ErrBusNotFound          = errors.New("bus not found")
	ErrBookingNotFound      = errors.New("booking not found")
	ErrNotificationNotFound = errors.New("notification not found")
	ErrCertificateNotFound  = errors.New("certificate not found")

	ErrUsernameTaken      = errors.New("username already taken")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// PermissionError is returned when a caller acts on a resource they do not
// own or lack the role for.
type PermissionError struct {
	UserID     uint
	ResourceID uint
	Resource   string
	Action     string
	Reason     string
}

func NewPermissionError(userID, resourceID uint, resource, action, reason string) *PermissionError {
	return &PermissionError{
		UserID:     userID,
		ResourceID: resourceID,
		Resource:   resource,
		Action:     action,
		Reason:     reason,
	}
}

func (e *PermissionError) Error() string {
	return fmt.Sprintf("user %d cannot %s %s %d: %s", e.UserID, e.Action, e.Resource, e.ResourceID, e.Reason)
}

func IsPermissionError(err error) bool {
	var pe *PermissionError
	return errors.As(err, &pe)
}

// ===== OPERATION OUTCOMES =====

// Outcome classifies how an operation concluded. A refused precondition is
// a Warning, not an error: nothing was mutated and nothing failed. Side
// effect failures (mail, PDF render, event publish) leave the outcome
// Success but are noted in the message.
type Outcome string

const (
	OutcomeSuccess Outcome = "success"
	OutcomeWarning Outcome = "warning"
	OutcomeInfo    Outcome = "info"
)

type Result struct {
	Outcome Outcome `json:"outcome"`
	Message string  `json:"message"`
}

func SuccessResult(format string, args ...interface{}) Result {
	return Result{Outcome: OutcomeSuccess, Message: fmt.Sprintf(format, args...)}
}

func WarningResult(format string, args ...interface{}) Result {
	return Result{Outcome: OutcomeWarning, Message: fmt.Sprintf(format, args...)}
}

func InfoResult(format string, args ...interface{}) Result {
	return Result{Outcome: OutcomeInfo, Message: fmt.Sprintf(format, args...)}
}
