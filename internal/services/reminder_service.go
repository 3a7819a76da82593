package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/UCEM-2025/campus-event-service/internal/events"
	"github.com/UCEM-2025/campus-event-service/internal/mailer"
	"github.com/UCEM-2025/campus-event-service/internal/models"
	"github.com/UCEM-2025/campus-event-service/internal/repositories"
)

type reminderService struct {
	repo           repositories.Repository
	mailer         mailer.Mailer
	eventPublisher events.EventPublisher
	clock          Clock
	window         time.Duration
	logger         *slog.Logger
}

func NewReminderService(repo repositories.Repository, m mailer.Mailer, publisher events.EventPublisher, clock Clock, window time.Duration, logger *slog.Logger) ReminderService {
	return &reminderService{
		repo:           repo,
		mailer:         m,
		eventPublisher: publisher,
		clock:          clock,
		window:         window,
		logger:         logger,
	}
}

// Run performs one sweep. Each qualifying event is handled in its own
// unit of work: reminder_sent flips to true together with the sweep over
// that event's registrants, and it flips regardless of how many
// individual emails fail — the next sweep must not re-mail an event.
func (s *reminderService) Run(ctx context.Context) (*ReminderRunReport, error) {
	now := s.clock.Now()
	report := &ReminderRunReport{}

	due, err := s.repo.Event().GetDueForReminder(ctx, now, now.Add(s.window))
	if err != nil {
		return nil, fmt.Errorf("failed to query events due for reminder: %w", err)
	}

	s.logger.Info("reminder sweep started", "candidates", len(due))

	for _, event := range due {
		if err := s.remindEvent(ctx, event.ID, report); err != nil {
			s.logger.Error("reminder sweep failed for event",
				"event_id", event.ID, "error", err)
			continue
		}
		report.EventsProcessed++
	}

	s.logger.Info("reminder sweep finished",
		"events_processed", report.EventsProcessed,
		"emails_sent", report.EmailsSent,
		"emails_failed", report.EmailsFailed)
	return report, nil
}

func (s *reminderService) remindEvent(ctx context.Context, eventID uint, report *ReminderRunReport) error {
	return s.repo.WithTransaction(ctx, func(tx repositories.Repository) error {
		event, err := tx.Event().GetByID(ctx, eventID)
		if err != nil {
			return fmt.Errorf("failed to get event: %w", err)
		}
		if event.ReminderSent {
			return nil
		}

		registrations, err := tx.Registration().GetByEvent(ctx, eventID)
		if err != nil {
			return fmt.Errorf("failed to get registrations: %w", err)
		}

		for _, registration := range registrations {
			if registration.User == nil || registration.User.Email == "" {
				continue
			}

			body := reminderBody(registration.User.Username, event)
			if err := s.mailer.Send(registration.User.Email,
				fmt.Sprintf("Reminder: Upcoming Event - %s", event.Name), body); err != nil {
				s.logger.Warn("failed to send reminder email",
					"event_id", event.ID,
					"user_id", registration.UserID,
					"error", err)
				report.EmailsFailed++
				continue
			}
			report.EmailsSent++

			if err := notify(ctx, tx, registration.UserID,
				fmt.Sprintf("Reminder: '%s' is coming up on %s.", event.Name, event.Date.Format("2006-01-02 15:04")),
				models.NotificationEventReminder, &event.ID); err != nil {
				return err
			}
		}

		event.ReminderSent = true
		if err := tx.Event().Update(ctx, event); err != nil {
			return fmt.Errorf("failed to mark reminder sent: %w", err)
		}

		payload := events.NewEvent(events.EventReminderSent, map[string]interface{}{
			"event_id":    event.ID,
			"registrants": len(registrations),
		})
		if err := s.eventPublisher.Publish(ctx, eventsTopic, payload); err != nil {
			s.logger.Error("failed to publish reminder event", "event_id", event.ID, "error", err)
		}
		return nil
	})
}

func reminderBody(username string, event *models.Event) string {
	return fmt.Sprintf(`Hello %s,

This is a friendly reminder for the upcoming event: %s!

Event Details:
Name: %s
Date: %s
Location: %s

Best regards,
The Campus Event Team
`, username, event.Name, event.Name, event.Date.Format("Monday, January 2, 2006 at 3:04 PM"), event.Location)
}
