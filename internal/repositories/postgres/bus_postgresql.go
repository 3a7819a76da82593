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

type BusPostgreSQL struct {
	db           *gorm.DB
	cacheManager *cache.CacheManager
}

func NewBusPostgreSQL(db *gorm.DB, redisClient *redis.Client) repositories.BusRepository {
	return &BusPostgreSQL{
		db:           db,
		cacheManager: cache.NewCacheManager(redisClient),
	}
}

func (b *BusPostgreSQL) Create(ctx context.Context, bus *models.Bus) error {
	if err := b.db.WithContext(ctx).Create(bus).Error; err != nil {
		return err
	}
	return b.cacheManager.InvalidateResource(ctx, "bus", bus.ID)
}

func (b *BusPostgreSQL) GetByID(ctx context.Context, id uint) (*models.Bus, error) {
	cacheKey := fmt.Sprintf("bus:id:%d", id)
	var bus models.Bus

	err := b.cacheManager.Resource.CacheOrExecute(ctx, cacheKey, &bus, cache.ResourceCacheConfig.TTL, func() (interface{}, error) {
		var dbBus models.Bus
		if err := b.db.WithContext(ctx).First(&dbBus, id).Error; err != nil {
			return nil, err
		}
		return &dbBus, nil
	})

	if err != nil {
		return nil, err
	}
	return &bus, nil
}

func (b *BusPostgreSQL) GetByIdentifier(ctx context.Context, identifier string) (*models.Bus, error) {
	var bus models.Bus
	if err := b.db.WithContext(ctx).Where("identifier = ?", identifier).First(&bus).Error; err != nil {
		return nil, err
	}
	return &bus, nil
}

func (b *BusPostgreSQL) Update(ctx context.Context, bus *models.Bus) error {
	if err := b.db.WithContext(ctx).Save(bus).Error; err != nil {
		return err
	}
	return b.cacheManager.InvalidateResource(ctx, "bus", bus.ID)
}

// Delete removes a bus and its bookings (owned collection).
func (b *BusPostgreSQL) Delete(ctx context.Context, id uint) error {
	if err := b.db.WithContext(ctx).
		Where("bus_id = ?", id).
		Delete(&models.BusBooking{}).Error; err != nil {
		return fmt.Errorf("failed to delete bus bookings: %w", err)
	}
	if err := b.db.WithContext(ctx).Delete(&models.Bus{}, id).Error; err != nil {
		return err
	}
	return b.cacheManager.InvalidateResource(ctx, "bus", id)
}

func (b *BusPostgreSQL) List(ctx context.Context) ([]*models.Bus, error) {
	var buses []*models.Bus
	if err := b.db.WithContext(ctx).Order("identifier ASC").Find(&buses).Error; err != nil {
		return nil, fmt.Errorf("failed to list buses: %w", err)
	}
	return buses, nil
}

func (b *BusPostgreSQL) ExistsByIdentifier(ctx context.Context, identifier string) (bool, error) {
	var count int64
	err := b.db.WithContext(ctx).Model(&models.Bus{}).Where("identifier = ?", identifier).Count(&count).Error
	return count > 0, err
}

type BusBookingPostgreSQL struct {
	db      *gorm.DB
	helpers *SharedHelpers
}

func NewBusBookingPostgreSQL(db *gorm.DB) repositories.BusBookingRepository {
	return &BusBookingPostgreSQL{
		db:      db,
		helpers: NewSharedHelpers(db),
	}
}

func (b *BusBookingPostgreSQL) Create(ctx context.Context, booking *models.BusBooking) error {
	return b.db.WithContext(ctx).Create(booking).Error
}

func (b *BusBookingPostgreSQL) GetByID(ctx context.Context, id uint) (*models.BusBooking, error) {
	var booking models.BusBooking
	if err := b.db.WithContext(ctx).First(&booking, id).Error; err != nil {
		return nil, err
	}
	return &booking, nil
}

func (b *BusBookingPostgreSQL) GetByIDWithDetails(ctx context.Context, id uint) (*models.BusBooking, error) {
	var booking models.BusBooking
	if err := b.db.WithContext(ctx).
		Preload("Bus").
		Preload("Requester").
		Preload("Processor").
		First(&booking, id).Error; err != nil {
		return nil, err
	}
	return &booking, nil
}

func (b *BusBookingPostgreSQL) Update(ctx context.Context, booking *models.BusBooking) error {
	return b.db.WithContext(ctx).Save(booking).Error
}

func (b *BusBookingPostgreSQL) List(ctx context.Context, filters repositories.BookingFilters) ([]*models.BusBooking, int64, error) {
	var bookings []*models.BusBooking
	var total int64

	query := b.db.WithContext(ctx).Model(&models.BusBooking{})
	query = b.helpers.ApplyBookingFilters(query, filters)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = b.helpers.ApplyPaginationAndSort(query, filters.SortBy, filters.SortOrder, filters.Limit, filters.Offset)
	if err := query.Preload("Bus").Preload("Requester").Find(&bookings).Error; err != nil {
		return nil, 0, err
	}

	return bookings, total, nil
}

func (b *BusBookingPostgreSQL) GetByStudent(ctx context.Context, studentID uint) ([]*models.BusBooking, error) {
	var bookings []*models.BusBooking
	if err := b.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Preload("Bus").
		Order("created_at DESC").
		Find(&bookings).Error; err != nil {
		return nil, fmt.Errorf("failed to get bus bookings by student: %w", err)
	}
	return bookings, nil
}

func (b *BusBookingPostgreSQL) GetStats(ctx context.Context) (*repositories.BookingStats, error) {
	return bookingStatusCounts(ctx, b.db, &models.BusBooking{})
}

// bookingStatusCounts tallies rows per booking status for either booking table.
func bookingStatusCounts(ctx context.Context, db *gorm.DB, model interface{}) (*repositories.BookingStats, error) {
	type row struct {
		Status models.BookingStatus
		Count  int
	}
	var rows []row
	if err := db.WithContext(ctx).
		Model(model).
		Select("status, count(*) as count").
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	stats := &repositories.BookingStats{}
	for _, r := range rows {
		switch r.Status {
		case models.BookingPending:
			stats.Pending = r.Count
		case models.BookingApproved:
			stats.Approved = r.Count
		case models.BookingRejected:
			stats.Rejected = r.Count
		}
	}
	return stats, nil
}
