package postgres

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/UCEM-2025/campus-event-service/internal/cache"
	"github.com/UCEM-2025/campus-event-service/internal/models"
	"github.com/UCEM-2025/campus-event-service/internal/repositories"
)

type HallPostgreSQL struct {
	db           *gorm.DB
	cacheManager *cache.CacheManager
}

func NewHallPostgreSQL(db *gorm.DB, redisClient *redis.Client) repositories.HallRepository {
	return &HallPostgreSQL{
		db:           db,
		cacheManager: cache.NewCacheManager(redisClient),
	}
}

func (h *HallPostgreSQL) Create(ctx context.Context, hall *models.Hall) error {
	if err := h.db.WithContext(ctx).Create(hall).Error; err != nil {
		return err
	}
	return h.cacheManager.InvalidateResource(ctx, "hall", hall.ID)
}

func (h *HallPostgreSQL) GetByID(ctx context.Context, id uint) (*models.Hall, error) {
	cacheKey := fmt.Sprintf("hall:id:%d", id)
	var hall models.Hall

	err := h.cacheManager.Resource.CacheOrExecute(ctx, cacheKey, &hall, cache.ResourceCacheConfig.TTL, func() (interface{}, error) {
		var dbHall models.Hall
		if err := h.db.WithContext(ctx).First(&dbHall, id).Error; err != nil {
			return nil, err
		}
		return &dbHall, nil
	})

	if err != nil {
		return nil, err
	}
	return &hall, nil
}

func (h *HallPostgreSQL) GetByName(ctx context.Context, name string) (*models.Hall, error) {
	var hall models.Hall
	if err := h.db.WithContext(ctx).Where("name = ?", name).First(&hall).Error; err != nil {
		return nil, err
	}
	return &hall, nil
}

func (h *HallPostgreSQL) Update(ctx context.Context, hall *models.Hall) error {
	if err := h.db.WithContext(ctx).Save(hall).Error; err != nil {
		return err
	}
	return h.cacheManager.InvalidateResource(ctx, "hall", hall.ID)
}

// Delete removes a hall and, via the FK cascade, its bookings.
func (h *HallPostgreSQL) Delete(ctx context.Context, id uint) error {
	if err := h.db.WithContext(ctx).
		Where("hall_id = ?", id).
		Delete(&models.HallBooking{}).Error; err != nil {
		return fmt.Errorf("failed to delete hall bookings: %w", err)
	}
	if err := h.db.WithContext(ctx).Delete(&models.Hall{}, id).Error; err != nil {
		return err
	}
	return h.cacheManager.InvalidateResource(ctx, "hall", id)
}

func (h *HallPostgreSQL) List(ctx context.Context) ([]*models.Hall, error) {
	var halls []*models.Hall
	if err := h.db.WithContext(ctx).Order("name ASC").Find(&halls).Error; err != nil {
		return nil, fmt.Errorf("failed to list halls: %w", err)
	}
	return halls, nil
}

func (h *HallPostgreSQL) ExistsByName(ctx context.Context, name string) (bool, error) {
	var count int64
	err := h.db.WithContext(ctx).Model(&models.Hall{}).Where("name = ?", name).Count(&count).Error
	return count > 0, err
}

type HallBookingPostgreSQL struct {
	db      *gorm.DB
	helpers *SharedHelpers
}

func NewHallBookingPostgreSQL(db *gorm.DB) repositories.HallBookingRepository {
	return &HallBookingPostgreSQL{
		db:      db,
		helpers: NewSharedHelpers(db),
	}
}

func (b *HallBookingPostgreSQL) Create(ctx context.Context, booking *models.HallBooking) error {
	return b.db.WithContext(ctx).Create(booking).Error
}

func (b *HallBookingPostgreSQL) GetByID(ctx context.Context, id uint) (*models.HallBooking, error) {
	var booking models.HallBooking
	if err := b.db.WithContext(ctx).First(&booking, id).Error; err != nil {
		return nil, err
	}
	return &booking, nil
}

func (b *HallBookingPostgreSQL) GetByIDWithDetails(ctx context.Context, id uint) (*models.HallBooking, error) {
	var booking models.HallBooking
	if err := b.db.WithContext(ctx).
		Preload("Hall").
		Preload("Requester").
		Preload("Processor").
		First(&booking, id).Error; err != nil {
		return nil, err
	}
	return &booking, nil
}

func (b *HallBookingPostgreSQL) Update(ctx context.Context, booking *models.HallBooking) error {
	return b.db.WithContext(ctx).Save(booking).Error
}

func (b *HallBookingPostgreSQL) List(ctx context.Context, filters repositories.BookingFilters) ([]*models.HallBooking, int64, error) {
	var bookings []*models.HallBooking
	var total int64

	query := b.db.WithContext(ctx).Model(&models.HallBooking{})
	query = b.helpers.ApplyBookingFilters(query, filters)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = b.helpers.ApplyPaginationAndSort(query, filters.SortBy, filters.SortOrder, filters.Limit, filters.Offset)
	if err := query.Preload("Hall").Preload("Requester").Find(&bookings).Error; err != nil {
		return nil, 0, err
	}

	return bookings, total, nil
}

func (b *HallBookingPostgreSQL) GetByStudent(ctx context.Context, studentID uint) ([]*models.HallBooking, error) {
	var bookings []*models.HallBooking
	if err := b.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Preload("Hall").
		Order("created_at DESC").
		Find(&bookings).Error; err != nil {
		return nil, fmt.Errorf("failed to get hall bookings by student: %w", err)
	}
	return bookings, nil
}

func (b *HallBookingPostgreSQL) GetStats(ctx context.Context) (*repositories.BookingStats, error) {
	return bookingStatusCounts(ctx, b.db, &models.HallBooking{})
}
