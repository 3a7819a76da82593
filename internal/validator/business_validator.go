package validator

import (
	"fmt"
	"time"

	"github.com/UCEM-2025/campus-event-service/internal/models"
)

// BusinessValidator handles rules that go beyond struct tags: the event
// approval pipeline, booking decisions and registration eligibility.
type BusinessValidator struct {
	validator *Validator
}

func NewBusinessValidator() *BusinessValidator {
	return &BusinessValidator{validator: New()}
}

func (bv *BusinessValidator) Validate(s interface{}) ValidationErrors {
	if err := bv.validator.Validate(s); err != nil {
		if ve, ok := err.(ValidationErrors); ok {
			return ve
		}
		return ValidationErrors{{Field: "request", Message: err.Error(), Rule: "invalid"}}
	}
	return nil
}

// eventTransitions is the approval pipeline. Rejections and final
// approval are terminal.
var eventTransitions = map[models.EventStatus][]models.EventStatus{
	models.EventPendingDSA:  {models.EventPendingVC, models.EventDSARejected},
	models.EventPendingVC:   {models.EventApproved, models.EventVCRejected},
	models.EventApproved:    {},
	models.EventDSARejected: {},
	models.EventVCRejected:  {},
}

// ValidateEventStatusTransition checks a proposed status change against
// the approval pipeline.
func (bv *BusinessValidator) ValidateEventStatusTransition(current, next models.EventStatus) ValidationErrors {
	for _, allowed := range eventTransitions[current] {
		if next == allowed {
			return nil
		}
	}
	return ValidationErrors{{
		Field:   "status",
		Message: fmt.Sprintf("cannot transition from %s to %s", current, next),
		Value:   next,
		Rule:    "status_transition",
	}}
}

// ValidateBookingDecision ensures only pending bookings can be decided.
func (bv *BusinessValidator) ValidateBookingDecision(current, next models.BookingStatus) ValidationErrors {
	if current == models.BookingPending &&
		(next == models.BookingApproved || next == models.BookingRejected) {
		return nil
	}
	return ValidationErrors{{
		Field:   "status",
		Message: fmt.Sprintf("cannot transition from %s to %s", current, next),
		Value:   next,
		Rule:    "status_transition",
	}}
}

// ValidateRegistrationOpen checks whether an event currently accepts
// registrations: it must be fully approved, not yet past, and below
// capacity when one is set.
func (bv *BusinessValidator) ValidateRegistrationOpen(event *models.Event, registered int64, now time.Time) ValidationErrors {
	var errors ValidationErrors

	if event.Status != models.EventApproved {
		errors = append(errors, ValidationError{
			Field:   "status",
			Message: "event is not approved for registration",
			Value:   event.Status,
			Rule:    "business_logic",
		})
	}

	if event.Date.Before(now) {
		errors = append(errors, ValidationError{
			Field:   "date",
			Message: "event has already taken place",
			Value:   event.Date,
			Rule:    "business_logic",
		})
	}

	if event.Capacity != nil && registered >= int64(*event.Capacity) {
		errors = append(errors, ValidationError{
			Field:   "capacity",
			Message: "event has reached capacity",
			Value:   *event.Capacity,
			Rule:    "business_logic",
		})
	}

	return errors
}

// ValidateBookingSlot checks the time window of a hall booking request.
func (bv *BusinessValidator) ValidateBookingSlot(requestedDate time.Time, startTime, endTime string, now time.Time) ValidationErrors {
	var errors ValidationErrors

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if requestedDate.Before(today) {
		errors = append(errors, ValidationError{
			Field:   "requested_date",
			Message: "must not be in the past",
			Value:   requestedDate,
			Rule:    "business_logic",
		})
	}

	if endTime <= startTime {
		errors = append(errors, ValidationError{
			Field:   "end_time",
			Message: "must be after start time",
			Value:   endTime,
			Rule:    "business_logic",
		})
	}

	return errors
}
