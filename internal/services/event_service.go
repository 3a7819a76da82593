package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/UCEM-2025/campus-event-service/internal/events"
	"github.com/UCEM-2025/campus-event-service/internal/models"
	"github.com/UCEM-2025/campus-event-service/internal/repositories"
	"github.com/UCEM-2025/campus-event-service/internal/validator"
)

const eventsTopic = "campus.events"

type eventService struct {
	repo           repositories.Repository
	eventPublisher events.EventPublisher
	logger         *slog.Logger
	validator      *validator.Validator
	business       *validator.BusinessValidator
}

func NewEventService(repo repositories.Repository, publisher events.EventPublisher, logger *slog.Logger, v *validator.Validator) EventService {
	return &eventService{
		repo:           repo,
		eventPublisher: publisher,
		logger:         logger,
		validator:      v,
		business:       validator.NewBusinessValidator(),
	}
}

func (s *eventService) Create(ctx context.Context, req *CreateEventRequest, creatorID uint) (*models.Event, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	isAdmin, err := s.repo.User().HasRole(ctx, creatorID, models.RoleAdmin)
	if err != nil {
		return nil, fmt.Errorf("failed to check creator role: %w", err)
	}
	if !isAdmin {
		return nil, NewPermissionError(creatorID, 0, "event", "create", "admin role required")
	}

	event := &models.Event{
		Name:        req.Name,
		Description: req.Description,
		Date:        req.Date,
		Location:    req.Location,
		Price:       req.Price,
		Capacity:    req.Capacity,
		Status:      models.EventPendingDSA,
		CreatedBy:   creatorID,
	}

	if err := s.repo.Event().Create(ctx, event); err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}

	s.logger.Info("event created",
		"event_id", event.ID,
		"name", event.Name,
		"created_by", creatorID)

	s.publish(ctx, events.EventCreated, event)
	return event, nil
}

func (s *eventService) Update(ctx context.Context, eventID uint, req *UpdateEventRequest, actorID uint) (*models.Event, Result, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, Result{}, fmt.Errorf("validation failed: %w", err)
	}

	var updated *models.Event
	var result Result

	err := s.repo.WithTransaction(ctx, func(tx repositories.Repository) error {
		event, err := tx.Event().GetByID(ctx, eventID)
		if err != nil {
			if repositories.IsNotFoundError(err) {
				return ErrEventNotFound
			}
			return fmt.Errorf("failed to get event: %w", err)
		}

		if event.CreatedBy != actorID {
			isAdmin, err := tx.User().HasRole(ctx, actorID, models.RoleAdmin)
			if err != nil {
				return fmt.Errorf("failed to check actor role: %w", err)
			}
			if !isAdmin {
				return NewPermissionError(actorID, eventID, "event", "update", "not the creator")
			}
		}

		// Approved and rejected events are frozen.
		if event.Status.Terminal() {
			updated = event
			result = WarningResult("event %q is %s and can no longer be edited", event.Name, event.Status)
			return nil
		}

		applyEventUpdate(event, req)
		if err := tx.Event().Update(ctx, event); err != nil {
			return fmt.Errorf("failed to update event: %w", err)
		}

		updated = event
		result = SuccessResult("event %q updated", event.Name)
		return nil
	})
	if err != nil {
		return nil, Result{}, err
	}

	return updated, result, nil
}

func applyEventUpdate(event *models.Event, req *UpdateEventRequest) {
	if req.Name != nil {
		event.Name = *req.Name
	}
	if req.Description != nil {
		event.Description = *req.Description
	}
	if req.Date != nil {
		event.Date = *req.Date
	}
	if req.Location != nil {
		event.Location = *req.Location
	}
	if req.Price != nil {
		event.Price = *req.Price
	}
	if req.Capacity != nil {
		event.Capacity = req.Capacity
	}
}

func (s *eventService) GetByID(ctx context.Context, eventID uint) (*EventResponse, error) {
	event, err := s.repo.Event().GetByIDWithDetails(ctx, eventID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to get event: %w", err)
	}

	stats, err := s.repo.Event().GetStats(ctx, eventID)
	if err != nil {
		s.logger.Error("failed to compute event stats", "event_id", eventID, "error", err)
		stats = nil
	}

	return &EventResponse{Event: event, Stats: stats}, nil
}

func (s *eventService) List(ctx context.Context, filters repositories.EventFilters) (*EventListResponse, error) {
	eventList, total, err := s.repo.Event().List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}

	page := 1
	size := filters.Limit
	if size > 0 {
		page = (filters.Offset / size) + 1
	}

	return &EventListResponse{
		Events: eventList,
		Total:  total,
		Page:   page,
		Size:   size,
	}, nil
}

// ===== APPROVAL PIPELINE =====

func (s *eventService) DSAApprove(ctx context.Context, eventID, actorID uint, req *ApprovalDecisionRequest) (*models.Event, Result, error) {
	return s.decide(ctx, eventID, actorID, req, models.RoleDSA, models.EventPendingDSA, models.EventPendingVC)
}

func (s *eventService) DSAReject(ctx context.Context, eventID, actorID uint, req *ApprovalDecisionRequest) (*models.Event, Result, error) {
	return s.decide(ctx, eventID, actorID, req, models.RoleDSA, models.EventPendingDSA, models.EventDSARejected)
}

func (s *eventService) VCApprove(ctx context.Context, eventID, actorID uint, req *ApprovalDecisionRequest) (*models.Event, Result, error) {
	return s.decide(ctx, eventID, actorID, req, models.RoleVCOffice, models.EventPendingVC, models.EventApproved)
}

func (s *eventService) VCReject(ctx context.Context, eventID, actorID uint, req *ApprovalDecisionRequest) (*models.Event, Result, error) {
	return s.decide(ctx, eventID, actorID, req, models.RoleVCOffice, models.EventPendingVC, models.EventVCRejected)
}

// decide runs one approval stage as a single unit of work: the status
// check, the transition, the approver stamp and the creator's notification
// commit together or not at all.
func (s *eventService) decide(ctx context.Context, eventID, actorID uint, req *ApprovalDecisionRequest, requiredRole models.UserRole, fromStatus, toStatus models.EventStatus) (*models.Event, Result, error) {
	if req == nil {
		req = &ApprovalDecisionRequest{}
	}
	if err := s.validator.Validate(req); err != nil {
		return nil, Result{}, fmt.Errorf("validation failed: %w", err)
	}

	hasRole, err := s.repo.User().HasRole(ctx, actorID, requiredRole)
	if err != nil {
		return nil, Result{}, fmt.Errorf("failed to check actor role: %w", err)
	}
	if !hasRole {
		return nil, Result{}, NewPermissionError(actorID, eventID, "event", "decide", fmt.Sprintf("%s role required", requiredRole))
	}

	var decided *models.Event
	var result Result
	var publishType string

	err = s.repo.WithTransaction(ctx, func(tx repositories.Repository) error {
		event, err := tx.Event().GetByID(ctx, eventID)
		if err != nil {
			if repositories.IsNotFoundError(err) {
				return ErrEventNotFound
			}
			return fmt.Errorf("failed to get event: %w", err)
		}

		if event.Status != fromStatus {
			decided = event
			result = WarningResult("event %q is %s, expected %s", event.Name, event.Status, fromStatus)
			return nil
		}

		if ve := s.business.ValidateEventStatusTransition(event.Status, toStatus); ve.HasErrors() {
			decided = event
			result = WarningResult("%s", ve.Error())
			return nil
		}

		event.Status = toStatus
		switch requiredRole {
		case models.RoleDSA:
			event.DSAApproverID = &actorID
		case models.RoleVCOffice:
			event.VCApproverID = &actorID
		}

		if err := tx.Event().Update(ctx, event); err != nil {
			return fmt.Errorf("failed to update event status: %w", err)
		}

		message := transitionMessage(event, toStatus, req.Remarks)
		if err := notify(ctx, tx, event.CreatedBy, message, models.NotificationEventStatusUpdate, &event.ID); err != nil {
			return err
		}

		decided = event
		result = SuccessResult("event %q is now %s", event.Name, toStatus)
		publishType = publishTypeFor(toStatus)
		return nil
	})
	if err != nil {
		return nil, Result{}, err
	}

	if result.Outcome == OutcomeSuccess {
		s.logger.Info("event decision recorded",
			"event_id", eventID,
			"actor_id", actorID,
			"status", toStatus)
		s.publish(ctx, publishType, decided)
	}

	return decided, result, nil
}

func transitionMessage(event *models.Event, toStatus models.EventStatus, remarks *string) string {
	var message string
	switch toStatus {
	case models.EventPendingVC:
		message = fmt.Sprintf("Your event '%s' passed DSA review and is awaiting VC Office approval.", event.Name)
	case models.EventApproved:
		message = fmt.Sprintf("Your event '%s' has been APPROVED and is now live!", event.Name)
	case models.EventDSARejected:
		message = fmt.Sprintf("Your event '%s' was rejected by the DSA.", event.Name)
	case models.EventVCRejected:
		message = fmt.Sprintf("Your event '%s' was rejected by the VC Office.", event.Name)
	}
	if remarks != nil && *remarks != "" {
		message = fmt.Sprintf("%s Remarks: %s", message, *remarks)
	}
	return message
}

func publishTypeFor(status models.EventStatus) string {
	switch status {
	case models.EventApproved:
		return events.EventApproved
	case models.EventDSARejected, models.EventVCRejected:
		return events.EventRejected
	default:
		return events.EventStatusChanged
	}
}

// publish emits a domain event; failures are logged side effects.
func (s *eventService) publish(ctx context.Context, eventType string, event *models.Event) {
	payload := events.NewEvent(eventType, map[string]interface{}{
		"event_id": event.ID,
		"name":     event.Name,
		"status":   event.Status,
	})
	if err := s.eventPublisher.Publish(ctx, eventsTopic, payload); err != nil {
		s.logger.Error("failed to publish domain event",
			"event_type", eventType,
			"event_id", event.ID,
			"error", err)
	}
}
