package repositories

import (
	"context"
	"time"

	"github.com/UCEM-2025/campus-event-service/internal/models"
)

// EventRepository interface for event lifecycle operations. Status mutations
// go through Update inside a transaction; events are never hard-deleted.
type EventRepository interface {
	Create(ctx context.Context, event *models.Event) error
	GetByID(ctx context.Context, id uint) (*models.Event, error)
	GetByIDWithDetails(ctx context.Context, id uint) (*models.Event, error)
	Update(ctx context.Context, event *models.Event) error

	List(ctx context.Context, filters EventFilters) ([]*models.Event, int64, error)
	GetByStatus(ctx context.Context, status models.EventStatus) ([]*models.Event, error)

	// GetDueForReminder selects Approved, not-yet-reminded events whose date
	// falls within [from, to].
	GetDueForReminder(ctx context.Context, from, to time.Time) ([]*models.Event, error)

	GetStats(ctx context.Context, eventID uint) (*EventStats, error)
}

// RegistrationRepository interface for RSVP rows.
type RegistrationRepository interface {
	Create(ctx context.Context, registration *models.Registration) error
	Update(ctx context.Context, registration *models.Registration) error
	Delete(ctx context.Context, id uint) error

	GetByID(ctx context.Context, id uint) (*models.Registration, error)
	GetByUserAndEvent(ctx context.Context, userID, eventID uint) (*models.Registration, error)
	GetByUser(ctx context.Context, userID uint) ([]*models.Registration, error)
	GetByEvent(ctx context.Context, eventID uint) ([]*models.Registration, error)

	CountByEvent(ctx context.Context, eventID uint) (int64, error)
}
