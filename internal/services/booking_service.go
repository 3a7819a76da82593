package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/UCEM-2025/campus-event-service/internal/artifacts"
	"github.com/UCEM-2025/campus-event-service/internal/events"
	"github.com/UCEM-2025/campus-event-service/internal/models"
	"github.com/UCEM-2025/campus-event-service/internal/repositories"
	"github.com/UCEM-2025/campus-event-service/internal/validator"
)

const bookingsTopic = "campus.bookings"

const defaultRejectionRemarks = "Rejected by Admin"

type bookingService struct {
	repo           repositories.Repository
	eventPublisher events.EventPublisher
	logger         *slog.Logger
	validator      *validator.Validator
	business       *validator.BusinessValidator
	renderer       CertificateRenderer
	clock          Clock
	resolver       func(relative string) (string, error)
}

func NewBookingService(repo repositories.Repository, publisher events.EventPublisher, renderer CertificateRenderer, clock Clock, resolver func(string) (string, error), logger *slog.Logger, v *validator.Validator) BookingService {
	return &bookingService{
		repo:           repo,
		eventPublisher: publisher,
		logger:         logger,
		validator:      v,
		business:       validator.NewBusinessValidator(),
		renderer:       renderer,
		clock:          clock,
		resolver:       resolver,
	}
}

// ===== SUBMISSION =====

func (s *bookingService) SubmitHallBooking(ctx context.Context, req *CreateHallBookingRequest, studentID uint) (*models.HallBooking, Result, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, Result{}, fmt.Errorf("validation failed: %w", err)
	}

	bookingDate, plainDate, err := parseBookingDate(req.RequestedDate)
	if err != nil {
		return nil, Result{}, fmt.Errorf("invalid requested date: %w", err)
	}
	if ve := s.business.ValidateBookingSlot(plainDate, req.StartTime, req.EndTime, s.clock.Now()); ve.HasErrors() {
		return nil, WarningResult("%s", ve.Error()), nil
	}

	hall, err := s.repo.Hall().GetByID(ctx, req.HallID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, Result{}, ErrHallNotFound
		}
		return nil, Result{}, fmt.Errorf("failed to get hall: %w", err)
	}

	if result, err := s.checkLinkedEvent(ctx, req.EventID); err != nil || result != nil {
		return nil, deref(result), err
	}

	booking := &models.HallBooking{
		HallID:        hall.ID,
		StudentID:     studentID,
		EventID:       req.EventID,
		RequestedDate: bookingDate,
		StartTime:     req.StartTime,
		EndTime:       req.EndTime,
		Purpose:       req.Purpose,
		Status:        models.BookingPending,
	}
	if err := s.repo.HallBooking().Create(ctx, booking); err != nil {
		return nil, Result{}, fmt.Errorf("failed to create hall booking: %w", err)
	}

	s.logger.Info("hall booking submitted",
		"booking_id", booking.ID,
		"hall_id", hall.ID,
		"student_id", studentID)
	s.publishBooking(ctx, events.BookingSubmitted, "hall", booking.ID, booking.Status)

	return booking, SuccessResult("booking request for %q submitted", hall.Name), nil
}

func (s *bookingService) SubmitBusBooking(ctx context.Context, req *CreateBusBookingRequest, studentID uint) (*models.BusBooking, Result, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, Result{}, fmt.Errorf("validation failed: %w", err)
	}

	bookingDate, plainDate, err := parseBookingDate(req.RequestedDate)
	if err != nil {
		return nil, Result{}, fmt.Errorf("invalid requested date: %w", err)
	}
	if ve := s.business.ValidateBookingSlot(plainDate, "00:00", "23:59", s.clock.Now()); ve.HasErrors() {
		return nil, WarningResult("%s", ve.Error()), nil
	}

	bus, err := s.repo.Bus().GetByID(ctx, req.BusID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, Result{}, ErrBusNotFound
		}
		return nil, Result{}, fmt.Errorf("failed to get bus: %w", err)
	}

	// Capacity is refused up front: no booking row is written.
	if req.NumberOfPassengers != nil && *req.NumberOfPassengers > bus.Capacity {
		return nil, WarningResult("bus %q seats %d passengers, %d requested",
			bus.Identifier, bus.Capacity, *req.NumberOfPassengers), nil
	}

	if result, err := s.checkLinkedEvent(ctx, req.EventID); err != nil || result != nil {
		return nil, deref(result), err
	}

	booking := &models.BusBooking{
		BusID:              bus.ID,
		StudentID:          studentID,
		EventID:            req.EventID,
		RequestedDate:      bookingDate,
		PickupTime:         req.PickupTime,
		PickupLocation:     req.PickupLocation,
		Destination:        req.Destination,
		NumberOfPassengers: req.NumberOfPassengers,
		Purpose:            req.Purpose,
		Status:             models.BookingPending,
	}
	if err := s.repo.BusBooking().Create(ctx, booking); err != nil {
		return nil, Result{}, fmt.Errorf("failed to create bus booking: %w", err)
	}

	s.logger.Info("bus booking submitted",
		"booking_id", booking.ID,
		"bus_id", bus.ID,
		"student_id", studentID)
	s.publishBooking(ctx, events.BookingSubmitted, "bus", booking.ID, booking.Status)

	return booking, SuccessResult("booking request for bus %q submitted", bus.Identifier), nil
}

// checkLinkedEvent validates an optional event link: the event must exist
// and be approved.
func (s *bookingService) checkLinkedEvent(ctx context.Context, eventID *uint) (*Result, error) {
	if eventID == nil {
		return nil, nil
	}
	event, err := s.repo.Event().GetByID(ctx, *eventID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to get linked event: %w", err)
	}
	if event.Status != models.EventApproved {
		r := WarningResult("linked event %q is not approved", event.Name)
		return &r, nil
	}
	return nil, nil
}

func deref(r *Result) Result {
	if r == nil {
		return Result{}
	}
	return *r
}

// ===== ADMIN DECISIONS =====

func (s *bookingService) ApproveHallBooking(ctx context.Context, bookingID, adminID uint, req *BookingDecisionRequest) (*models.HallBooking, Result, error) {
	return s.decideHall(ctx, bookingID, adminID, req, models.BookingApproved)
}

func (s *bookingService) RejectHallBooking(ctx context.Context, bookingID, adminID uint, req *BookingDecisionRequest) (*models.HallBooking, Result, error) {
	return s.decideHall(ctx, bookingID, adminID, req, models.BookingRejected)
}

func (s *bookingService) ApproveBusBooking(ctx context.Context, bookingID, adminID uint, req *BookingDecisionRequest) (*models.BusBooking, Result, error) {
	return s.decideBus(ctx, bookingID, adminID, req, models.BookingApproved)
}

func (s *bookingService) RejectBusBooking(ctx context.Context, bookingID, adminID uint, req *BookingDecisionRequest) (*models.BusBooking, Result, error) {
	return s.decideBus(ctx, bookingID, adminID, req, models.BookingRejected)
}

func (s *bookingService) checkAdmin(ctx context.Context, adminID, bookingID uint) error {
	isAdmin, err := s.repo.User().HasRole(ctx, adminID, models.RoleAdmin)
	if err != nil {
		return fmt.Errorf("failed to check actor role: %w", err)
	}
	if !isAdmin {
		return NewPermissionError(adminID, bookingID, "booking", "decide", "admin role required")
	}
	return nil
}

// stampDecision applies the shared decision fields for either booking kind.
func (s *bookingService) stampDecision(status *models.BookingStatus, processedBy **uint, processedAt **time.Time, remarks **string, adminID uint, decision models.BookingStatus, req *BookingDecisionRequest) {
	now := s.clock.Now()
	*status = decision
	*processedBy = &adminID
	*processedAt = &now
	if decision == models.BookingRejected {
		*remarks = strPtr(remarksOrDefault(req.Remarks, defaultRejectionRemarks))
	} else if req.Remarks != nil && *req.Remarks != "" {
		*remarks = req.Remarks
	}
}

func (s *bookingService) decideHall(ctx context.Context, bookingID, adminID uint, req *BookingDecisionRequest, decision models.BookingStatus) (*models.HallBooking, Result, error) {
	if req == nil {
		req = &BookingDecisionRequest{}
	}
	if err := s.validator.Validate(req); err != nil {
		return nil, Result{}, fmt.Errorf("validation failed: %w", err)
	}
	if err := s.checkAdmin(ctx, adminID, bookingID); err != nil {
		return nil, Result{}, err
	}

	var decided *models.HallBooking
	var result Result

	err := s.repo.WithTransaction(ctx, func(tx repositories.Repository) error {
		booking, err := tx.HallBooking().GetByIDWithDetails(ctx, bookingID)
		if err != nil {
			if repositories.IsNotFoundError(err) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("failed to get hall booking: %w", err)
		}

		if ve := s.business.ValidateBookingDecision(booking.Status, decision); ve.HasErrors() {
			decided = booking
			result = WarningResult("booking %d is already %s", booking.ID, booking.Status)
			return nil
		}

		s.stampDecision(&booking.Status, &booking.ProcessedByAdminID, &booking.ProcessedTimestamp, &booking.AdminRemarks, adminID, decision, req)

		if err := tx.HallBooking().Update(ctx, booking); err != nil {
			return fmt.Errorf("failed to update hall booking: %w", err)
		}

		hallName := "hall"
		if booking.Hall != nil {
			hallName = booking.Hall.Name
		}
		message := s.decisionMessage("hall booking", hallName, time.Time(booking.RequestedDate), decision, booking.AdminRemarks)
		if err := notify(ctx, tx, booking.StudentID, message, models.NotificationBookingStatusUpdate, &booking.ID); err != nil {
			return err
		}

		decided = booking
		result = SuccessResult("hall booking %d %s", booking.ID, decision)
		return nil
	})
	if err != nil {
		return nil, Result{}, err
	}

	if result.Outcome == OutcomeSuccess {
		s.logger.Info("hall booking decided",
			"booking_id", bookingID,
			"admin_id", adminID,
			"status", decision)
		s.publishBooking(ctx, publishBookingType(decision), "hall", bookingID, decision)
	}
	return decided, result, nil
}

func (s *bookingService) decideBus(ctx context.Context, bookingID, adminID uint, req *BookingDecisionRequest, decision models.BookingStatus) (*models.BusBooking, Result, error) {
	if req == nil {
		req = &BookingDecisionRequest{}
	}
	if err := s.validator.Validate(req); err != nil {
		return nil, Result{}, fmt.Errorf("validation failed: %w", err)
	}
	if err := s.checkAdmin(ctx, adminID, bookingID); err != nil {
		return nil, Result{}, err
	}

	var decided *models.BusBooking
	var result Result

	err := s.repo.WithTransaction(ctx, func(tx repositories.Repository) error {
		booking, err := tx.BusBooking().GetByIDWithDetails(ctx, bookingID)
		if err != nil {
			if repositories.IsNotFoundError(err) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("failed to get bus booking: %w", err)
		}

		if ve := s.business.ValidateBookingDecision(booking.Status, decision); ve.HasErrors() {
			decided = booking
			result = WarningResult("booking %d is already %s", booking.ID, booking.Status)
			return nil
		}

		s.stampDecision(&booking.Status, &booking.ProcessedByAdminID, &booking.ProcessedTimestamp, &booking.AdminRemarks, adminID, decision, req)

		busIdentifier := "bus"
		if booking.Bus != nil {
			busIdentifier = booking.Bus.Identifier
		}

		result = SuccessResult("bus booking %d %s", booking.ID, decision)

		// An approved bus booking gets a printable ticket. Render failure
		// is a side effect: the approval still commits.
		if decision == models.BookingApproved {
			passenger := ""
			if booking.Requester != nil {
				passenger = booking.Requester.Username
			}
			path, renderErr := s.renderer.GenerateBusTicket(artifacts.BusTicketData{
				BookingID:      booking.ID,
				PassengerName:  passenger,
				BusIdentifier:  busIdentifier,
				TravelDate:     time.Time(booking.RequestedDate),
				PickupTime:     booking.PickupTime,
				PickupLocation: booking.PickupLocation,
				Destination:    booking.Destination,
			})
			if renderErr != nil {
				s.logger.Error("failed to render bus ticket",
					"booking_id", booking.ID, "error", renderErr)
				result.Message += " (ticket generation failed)"
			} else {
				now := s.clock.Now()
				booking.CertificatePath = &path
				booking.CertificateGeneratedAt = &now
			}
		}

		if err := tx.BusBooking().Update(ctx, booking); err != nil {
			return fmt.Errorf("failed to update bus booking: %w", err)
		}

		message := s.decisionMessage("bus booking", busIdentifier, time.Time(booking.RequestedDate), decision, booking.AdminRemarks)
		if decision == models.BookingApproved && booking.CertificatePath != nil {
			message += " Your ticket is now available."
		}
		if err := notify(ctx, tx, booking.StudentID, message, models.NotificationBookingStatusUpdate, &booking.ID); err != nil {
			return err
		}

		decided = booking
		return nil
	})
	if err != nil {
		return nil, Result{}, err
	}

	if result.Outcome == OutcomeSuccess {
		s.logger.Info("bus booking decided",
			"booking_id", bookingID,
			"admin_id", adminID,
			"status", decision)
		s.publishBooking(ctx, publishBookingType(decision), "bus", bookingID, decision)
	}
	return decided, result, nil
}

func (s *bookingService) decisionMessage(kind, resourceName string, date time.Time, decision models.BookingStatus, remarks *string) string {
	verb := "APPROVED"
	if decision == models.BookingRejected {
		verb = "REJECTED"
	}
	message := fmt.Sprintf("Your %s for '%s' on %s has been %s.",
		kind, resourceName, date.Format("2006-01-02"), verb)
	if decision == models.BookingRejected && remarks != nil {
		message = fmt.Sprintf("%s Remarks: %s", message, *remarks)
	}
	return message
}

func publishBookingType(decision models.BookingStatus) string {
	if decision == models.BookingApproved {
		return events.BookingApproved
	}
	return events.BookingRejected
}

func (s *bookingService) publishBooking(ctx context.Context, eventType, kind string, bookingID uint, status models.BookingStatus) {
	payload := events.NewEvent(eventType, map[string]interface{}{
		"booking_id": bookingID,
		"kind":       kind,
		"status":     status,
	})
	if err := s.eventPublisher.Publish(ctx, bookingsTopic, payload); err != nil {
		s.logger.Error("failed to publish booking event",
			"event_type", eventType,
			"booking_id", bookingID,
			"error", err)
	}
}

// ===== LISTINGS =====

func (s *bookingService) ListHallBookings(ctx context.Context, filters repositories.BookingFilters) (*HallBookingListResponse, error) {
	bookings, total, err := s.repo.HallBooking().List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list hall bookings: %w", err)
	}
	return &HallBookingListResponse{Bookings: bookings, Total: total}, nil
}

func (s *bookingService) ListBusBookings(ctx context.Context, filters repositories.BookingFilters) (*BusBookingListResponse, error) {
	bookings, total, err := s.repo.BusBooking().List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list bus bookings: %w", err)
	}
	return &BusBookingListResponse{Bookings: bookings, Total: total}, nil
}

func (s *bookingService) MyHallBookings(ctx context.Context, studentID uint) ([]*models.HallBooking, error) {
	return s.repo.HallBooking().GetByStudent(ctx, studentID)
}

func (s *bookingService) MyBusBookings(ctx context.Context, studentID uint) ([]*models.BusBooking, error) {
	return s.repo.BusBooking().GetByStudent(ctx, studentID)
}

func (s *bookingService) BusTicketFile(ctx context.Context, bookingID, actorID uint) (string, error) {
	booking, err := s.repo.BusBooking().GetByID(ctx, bookingID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return "", ErrBookingNotFound
		}
		return "", fmt.Errorf("failed to get bus booking: %w", err)
	}

	if booking.StudentID != actorID {
		isAdmin, err := s.repo.User().HasRole(ctx, actorID, models.RoleAdmin)
		if err != nil {
			return "", fmt.Errorf("failed to check actor role: %w", err)
		}
		if !isAdmin {
			return "", NewPermissionError(actorID, bookingID, "ticket", "download", "not the owner")
		}
	}

	if booking.CertificatePath == nil || s.resolver == nil {
		return "", ErrCertificateNotFound
	}
	path, err := s.resolver(*booking.CertificatePath)
	if err != nil {
		return "", ErrCertificateNotFound
	}
	return path, nil
}
