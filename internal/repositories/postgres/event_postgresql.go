package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/UCEM-2025/campus-event-service/internal/cache"
	"github.com/UCEM-2025/campus-event-service/internal/models"
	"github.com/UCEM-2025/campus-event-service/internal/repositories"
)

type EventPostgreSQL struct {
	db           *gorm.DB
	helpers      *SharedHelpers
	cacheManager *cache.CacheManager
}

func NewEventPostgreSQL(db *gorm.DB, redisClient *redis.Client) repositories.EventRepository {
	return &EventPostgreSQL{
		db:           db,
		helpers:      NewSharedHelpers(db),
		cacheManager: cache.NewCacheManager(redisClient),
	}
}

func (e *EventPostgreSQL) Create(ctx context.Context, event *models.Event) error {
	if err := e.db.WithContext(ctx).Create(event).Error; err != nil {
		return err
	}
	return e.cacheManager.InvalidateEvent(ctx, event.ID)
}

func (e *EventPostgreSQL) GetByID(ctx context.Context, id uint) (*models.Event, error) {
	cacheKey := fmt.Sprintf("id:%d", id)
	var event models.Event

	err := e.cacheManager.Event.CacheOrExecute(ctx, cacheKey, &event, cache.EventCacheConfig.TTL, func() (interface{}, error) {
		var dbEvent models.Event
		if err := e.db.WithContext(ctx).First(&dbEvent, id).Error; err != nil {
			return nil, err
		}
		return &dbEvent, nil
	})

	if err != nil {
		return nil, err
	}
	return &event, nil
}

func (e *EventPostgreSQL) GetByIDWithDetails(ctx context.Context, id uint) (*models.Event, error) {
	var event models.Event
	if err := e.db.WithContext(ctx).
		Preload("Creator").
		Preload("DSAApprover").
		Preload("VCApprover").
		Preload("Registrations").
		First(&event, id).Error; err != nil {
		return nil, err
	}
	return &event, nil
}

func (e *EventPostgreSQL) Update(ctx context.Context, event *models.Event) error {
	if err := e.db.WithContext(ctx).Save(event).Error; err != nil {
		return err
	}
	return e.cacheManager.InvalidateEvent(ctx, event.ID)
}

func (e *EventPostgreSQL) List(ctx context.Context, filters repositories.EventFilters) ([]*models.Event, int64, error) {
	var events []*models.Event
	var total int64

	query := e.db.WithContext(ctx).Model(&models.Event{})
	query = e.helpers.ApplyEventFilters(query, filters)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	sortBy := filters.SortBy
	if sortBy == "" {
		sortBy = "date"
	}
	sortOrder := filters.SortOrder
	if sortOrder == "" {
		sortOrder = "asc"
	}
	query = e.helpers.ApplyPaginationAndSort(query, sortBy, sortOrder, filters.Limit, filters.Offset)

	if err := query.Preload("Creator").Find(&events).Error; err != nil {
		return nil, 0, err
	}

	return events, total, nil
}

func (e *EventPostgreSQL) GetByStatus(ctx context.Context, status models.EventStatus) ([]*models.Event, error) {
	var events []*models.Event
	if err := e.db.WithContext(ctx).
		Where("status = ?", status).
		Order("date ASC").
		Find(&events).Error; err != nil {
		return nil, fmt.Errorf("failed to get events by status: %w", err)
	}
	return events, nil
}

func (e *EventPostgreSQL) GetDueForReminder(ctx context.Context, from, to time.Time) ([]*models.Event, error) {
	var events []*models.Event
	if err := e.db.WithContext(ctx).
		Where("status = ? AND reminder_sent = ? AND date >= ? AND date <= ?",
			models.EventApproved, false, from, to).
		Find(&events).Error; err != nil {
		return nil, fmt.Errorf("failed to get events due for reminder: %w", err)
	}
	return events, nil
}

func (e *EventPostgreSQL) GetStats(ctx context.Context, eventID uint) (*repositories.EventStats, error) {
	stats := &repositories.EventStats{}

	var event models.Event
	if err := e.db.WithContext(ctx).Select("id, capacity").First(&event, eventID).Error; err != nil {
		return nil, err
	}

	var total, confirmed, pending int64
	base := e.db.WithContext(ctx).Model(&models.Registration{}).Where("event_id = ?", eventID)
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, err
	}
	if err := base.Session(&gorm.Session{}).Where("ticket_id IS NOT NULL").Count(&confirmed).Error; err != nil {
		return nil, err
	}
	if err := base.Session(&gorm.Session{}).Where("payment_status = ?", models.PaymentPending).Count(&pending).Error; err != nil {
		return nil, err
	}

	stats.TotalRegistrations = int(total)
	stats.ConfirmedTickets = int(confirmed)
	stats.PendingPayments = int(pending)
	if event.Capacity != nil {
		remaining := *event.Capacity - int(total)
		if remaining < 0 {
			remaining = 0
		}
		stats.RemainingCapacity = &remaining
	}

	return stats, nil
}
