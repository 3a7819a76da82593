package repositories

import "context"

// Repository aggregates all entity repositories. Implementations bound to a
// transaction are handed to the closure passed to WithTransaction; every
// state transition in the service layer runs as one such unit of work.
type Repository interface {
	User() UserRepository
	Event() EventRepository
	Registration() RegistrationRepository
	Hall() HallRepository
	HallBooking() HallBookingRepository
	Bus() BusRepository
	BusBooking() BusBookingRepository
	Notification() NotificationRepository

	// Transaction support
	WithTransaction(ctx context.Context, fn func(Repository) error) error

	// Health check
	Ping(ctx context.Context) error

	// Close connections
	Close() error
}

// RepositoryManager interface for managing repository lifecycle
type RepositoryManager interface {
	Initialize() error
	GetRepository() Repository
	HealthCheck(ctx context.Context) error
	Shutdown(ctx context.Context) error
}
