package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/UCEM-2025/campus-event-service/internal/artifacts"
	"github.com/UCEM-2025/campus-event-service/internal/mailer"
	"github.com/UCEM-2025/campus-event-service/internal/models"
	"github.com/UCEM-2025/campus-event-service/internal/repositories"
	"github.com/UCEM-2025/campus-event-service/internal/validator"
)

type registrationService struct {
	repo     repositories.Repository
	logger   *slog.Logger
	renderer CertificateRenderer
	mailer   mailer.Mailer
	clock    Clock
	business *validator.BusinessValidator

	// PathResolver maps stored relative certificate paths to files on
	// disk. nil disables downloads (tests).
	resolver func(relative string) (string, error)
}

func NewRegistrationService(repo repositories.Repository, renderer CertificateRenderer, m mailer.Mailer, clock Clock, resolver func(string) (string, error), logger *slog.Logger) RegistrationService {
	return &registrationService{
		repo:     repo,
		logger:   logger,
		renderer: renderer,
		mailer:   m,
		clock:    clock,
		business: validator.NewBusinessValidator(),
		resolver: resolver,
	}
}

func (s *registrationService) RSVP(ctx context.Context, userID, eventID uint) (*models.Registration, Result, error) {
	var registration *models.Registration
	var result Result
	var confirmationEmail func()

	err := s.repo.WithTransaction(ctx, func(tx repositories.Repository) error {
		event, err := tx.Event().GetByID(ctx, eventID)
		if err != nil {
			if repositories.IsNotFoundError(err) {
				return ErrEventNotFound
			}
			return fmt.Errorf("failed to get event: %w", err)
		}

		user, err := tx.User().GetByID(ctx, userID)
		if err != nil {
			if repositories.IsNotFoundError(err) {
				return ErrUserNotFound
			}
			return fmt.Errorf("failed to get user: %w", err)
		}

		// Duplicate RSVP is informational, not a failure.
		if existing, err := tx.Registration().GetByUserAndEvent(ctx, userID, eventID); err == nil {
			registration = existing
			result = InfoResult("you are already registered for %q", event.Name)
			return nil
		} else if !repositories.IsNotFoundError(err) {
			return fmt.Errorf("failed to check existing registration: %w", err)
		}

		// The capacity count runs inside the unit of work so concurrent
		// RSVPs are serialized against it.
		count, err := tx.Registration().CountByEvent(ctx, eventID)
		if err != nil {
			return fmt.Errorf("failed to count registrations: %w", err)
		}
		if ve := s.business.ValidateRegistrationOpen(event, count, s.clock.Now()); ve.HasErrors() {
			result = WarningResult("%s", ve.Error())
			return nil
		}

		registration = &models.Registration{
			UserID:  userID,
			EventID: eventID,
		}

		if event.Free() {
			ticketID := uuid.New().String()
			registration.TicketID = &ticketID
			registration.PaymentStatus = models.PaymentPaid
		} else {
			registration.PaymentStatus = models.PaymentPending
		}

		if err := tx.Registration().Create(ctx, registration); err != nil {
			if repositories.IsDuplicateKeyError(err) {
				result = InfoResult("you are already registered for %q", event.Name)
				registration = nil
				return nil
			}
			return fmt.Errorf("failed to create registration: %w", err)
		}

		if !registration.Confirmed() {
			result = WarningResult("registration for %q is pending payment", event.Name)
			return nil
		}

		// Certificate and email are side effects: failures are reported
		// in the message but the registration commits regardless.
		result = SuccessResult("registered for %q, ticket %s", event.Name, *registration.TicketID)
		if path, renderErr := s.renderer.GenerateEventCertificate(artifacts.EventCertificateData{
			RegistrationID: registration.ID,
			TicketID:       *registration.TicketID,
			EventName:      event.Name,
			EventDate:      event.Date,
			EventLocation:  event.Location,
			AttendeeName:   user.Username,
		}); renderErr != nil {
			s.logger.Error("failed to render event certificate",
				"registration_id", registration.ID, "error", renderErr)
			result.Message += " (certificate generation failed)"
		} else {
			now := s.clock.Now()
			registration.CertificatePath = &path
			registration.CertificateGeneratedAt = &now
			if err := tx.Registration().Update(ctx, registration); err != nil {
				return fmt.Errorf("failed to store certificate path: %w", err)
			}
		}

		confirmationEmail = func() {
			subject := fmt.Sprintf("Registration confirmed: %s", event.Name)
			body := fmt.Sprintf("Hi %s,\n\nYou are registered for %s on %s at %s.\nTicket ID: %s\n",
				user.Username, event.Name, event.Date.Format("2006-01-02 15:04"), event.Location, *registration.TicketID)
			if err := s.mailer.Send(user.Email, subject, body); err != nil {
				s.logger.Error("failed to send confirmation email",
					"registration_id", registration.ID, "error", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, Result{}, err
	}

	if confirmationEmail != nil {
		confirmationEmail()
	}

	if result.Outcome == OutcomeSuccess && registration != nil {
		s.logger.Info("registration confirmed",
			"registration_id", registration.ID,
			"user_id", userID,
			"event_id", eventID)
	}
	return registration, result, nil
}

func (s *registrationService) CancelRSVP(ctx context.Context, userID, eventID uint) (Result, error) {
	var result Result
	var certificatePath *string

	err := s.repo.WithTransaction(ctx, func(tx repositories.Repository) error {
		registration, err := tx.Registration().GetByUserAndEvent(ctx, userID, eventID)
		if err != nil {
			if repositories.IsNotFoundError(err) {
				result = InfoResult("you are not registered for this event")
				return nil
			}
			return fmt.Errorf("failed to get registration: %w", err)
		}

		certificatePath = registration.CertificatePath
		if err := tx.Registration().Delete(ctx, registration.ID); err != nil {
			return fmt.Errorf("failed to delete registration: %w", err)
		}

		result = SuccessResult("registration cancelled")
		return nil
	})
	if err != nil {
		return Result{}, err
	}

	// Removing the artifact is a side effect of a committed cancellation.
	if result.Outcome == OutcomeSuccess && certificatePath != nil && s.resolver != nil {
		if abs, err := s.resolver(*certificatePath); err == nil {
			if err := removeFile(abs); err != nil {
				s.logger.Warn("failed to remove certificate file", "path", *certificatePath, "error", err)
			}
		}
	}

	return result, nil
}

func (s *registrationService) MyRegistrations(ctx context.Context, userID uint) ([]*models.Registration, error) {
	return s.repo.Registration().GetByUser(ctx, userID)
}

func (s *registrationService) EventRegistrations(ctx context.Context, eventID uint) ([]*models.Registration, error) {
	if _, err := s.repo.Event().GetByID(ctx, eventID); err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to get event: %w", err)
	}
	return s.repo.Registration().GetByEvent(ctx, eventID)
}

func (s *registrationService) CertificateFile(ctx context.Context, registrationID, actorID uint) (string, error) {
	registration, err := s.repo.Registration().GetByID(ctx, registrationID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return "", ErrRegistrationNotFound
		}
		return "", fmt.Errorf("failed to get registration: %w", err)
	}

	if registration.UserID != actorID {
		isAdmin, err := s.repo.User().HasRole(ctx, actorID, models.RoleAdmin)
		if err != nil {
			return "", fmt.Errorf("failed to check actor role: %w", err)
		}
		if !isAdmin {
			return "", NewPermissionError(actorID, registrationID, "certificate", "download", "not the owner")
		}
	}

	if registration.CertificatePath == nil || s.resolver == nil {
		return "", ErrCertificateNotFound
	}
	path, err := s.resolver(*registration.CertificatePath)
	if err != nil {
		return "", ErrCertificateNotFound
	}
	return path, nil
}
