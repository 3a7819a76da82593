package repositories

import (
	"context"

	"github.com/UCEM-2025/campus-event-service/internal/models"
)

// HallRepository interface for hall resource records. Deleting a hall deletes
// its bookings (owned-collection invariant, enforced by the store).
type HallRepository interface {
	Create(ctx context.Context, hall *models.Hall) error
	GetByID(ctx context.Context, id uint) (*models.Hall, error)
	GetByName(ctx context.Context, name string) (*models.Hall, error)
	Update(ctx context.Context, hall *models.Hall) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context) ([]*models.Hall, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
}

// BusRepository interface for bus resource records.
type BusRepository interface {
	Create(ctx context.Context, bus *models.Bus) error
	GetByID(ctx context.Context, id uint) (*models.Bus, error)
	GetByIdentifier(ctx context.Context, identifier string) (*models.Bus, error)
	Update(ctx context.Context, bus *models.Bus) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context) ([]*models.Bus, error)
	ExistsByIdentifier(ctx context.Context, identifier string) (bool, error)
}

// HallBookingRepository interface for hall booking requests.
type HallBookingRepository interface {
	Create(ctx context.Context, booking *models.HallBooking) error
	GetByID(ctx context.Context, id uint) (*models.HallBooking, error)
	GetByIDWithDetails(ctx context.Context, id uint) (*models.HallBooking, error)
	Update(ctx context.Context, booking *models.HallBooking) error

	List(ctx context.Context, filters BookingFilters) ([]*models.HallBooking, int64, error)
	GetByStudent(ctx context.Context, studentID uint) ([]*models.HallBooking, error)
	GetStats(ctx context.Context) (*BookingStats, error)
}

// BusBookingRepository interface for bus booking requests.
type BusBookingRepository interface {
	Create(ctx context.Context, booking *models.BusBooking) error
	GetByID(ctx context.Context, id uint) (*models.BusBooking, error)
	GetByIDWithDetails(ctx context.Context, id uint) (*models.BusBooking, error)
	Update(ctx context.Context, booking *models.BusBooking) error

	List(ctx context.Context, filters BookingFilters) ([]*models.BusBooking, int64, error)
	GetByStudent(ctx context.Context, studentID uint) ([]*models.BusBooking, error)
	GetStats(ctx context.Context) (*BookingStats, error)
}
