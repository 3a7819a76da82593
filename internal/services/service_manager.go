package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/UCEM-2025/campus-event-service/internal/events"
	"github.com/UCEM-2025/campus-event-service/internal/mailer"
	"github.com/UCEM-2025/campus-event-service/internal/repositories"
	"github.com/UCEM-2025/campus-event-service/internal/validator"
)

// ServiceManagerDeps bundles everything the services need. Clock and
// Resolver default to the real implementations when nil.
type ServiceManagerDeps struct {
	Repo           repositories.Repository
	Logger         *slog.Logger
	Validator      *validator.Validator
	EventPublisher events.EventPublisher
	Mailer         mailer.Mailer
	Renderer       CertificateRenderer
	Clock          Clock

	// Resolver maps stored relative certificate paths to absolute files.
	Resolver func(relative string) (string, error)

	// ReminderWindow is how far ahead the reminder sweep looks.
	ReminderWindow time.Duration
}

type serviceManager struct {
	deps ServiceManagerDeps

	userService         UserService
	eventService        EventService
	registrationService RegistrationService
	bookingService      BookingService
	resourceService     ResourceService
	notificationService NotificationService
	reminderService     ReminderService
	reportService       ReportService

	initialized bool
	shutdown    bool
	mu          sync.RWMutex
}

func NewServiceManager(deps ServiceManagerDeps) ServiceManager {
	if deps.Clock == nil {
		deps.Clock = SystemClock()
	}
	if deps.ReminderWindow == 0 {
		deps.ReminderWindow = 24 * time.Hour
	}
	return &serviceManager{deps: deps}
}

func (sm *serviceManager) Initialize(ctx context.Context) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	d := sm.deps
	d.Logger.Info("initializing service manager")

	sm.userService = NewUserService(d.Repo, d.Logger, d.Validator)
	sm.eventService = NewEventService(d.Repo, d.EventPublisher, d.Logger, d.Validator)
	sm.registrationService = NewRegistrationService(d.Repo, d.Renderer, d.Mailer, d.Clock, d.Resolver, d.Logger)
	sm.bookingService = NewBookingService(d.Repo, d.EventPublisher, d.Renderer, d.Clock, d.Resolver, d.Logger, d.Validator)
	sm.resourceService = NewResourceService(d.Repo, d.Logger, d.Validator)
	sm.notificationService = NewNotificationService(d.Repo, d.EventPublisher, d.Logger, d.Validator)
	sm.reminderService = NewReminderService(d.Repo, d.Mailer, d.EventPublisher, d.Clock, d.ReminderWindow, d.Logger)
	sm.reportService = NewReportService(d.Repo, d.Logger)

	sm.initialized = true
	d.Logger.Info("service manager initialized")
	return nil
}

func (sm *serviceManager) require(initialized bool) {
	if !initialized {
		panic("service manager not initialized")
	}
}

func (sm *serviceManager) User() UserService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.require(sm.initialized)
	return sm.userService
}

func (sm *serviceManager) Event() EventService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.require(sm.initialized)
	return sm.eventService
}

func (sm *serviceManager) Registration() RegistrationService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.require(sm.initialized)
	return sm.registrationService
}

func (sm *serviceManager) Booking() BookingService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.require(sm.initialized)
	return sm.bookingService
}

func (sm *serviceManager) Resource() ResourceService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.require(sm.initialized)
	return sm.resourceService
}

func (sm *serviceManager) Notification() NotificationService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.require(sm.initialized)
	return sm.notificationService
}

func (sm *serviceManager) Reminder() ReminderService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.require(sm.initialized)
	return sm.reminderService
}

func (sm *serviceManager) Report() ReportService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.require(sm.initialized)
	return sm.reportService
}

func (sm *serviceManager) HealthCheck(ctx context.Context) error {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		return fmt.Errorf("service manager not initialized")
	}
	if sm.shutdown {
		return fmt.Errorf("service manager is shut down")
	}

	if err := sm.deps.Repo.Ping(ctx); err != nil {
		return fmt.Errorf("repository health check failed: %w", err)
	}
	return nil
}

func (sm *serviceManager) Shutdown(ctx context.Context) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.shutdown {
		return nil
	}

	sm.deps.Logger.Info("shutting down service manager")

	if sm.deps.EventPublisher != nil {
		if err := sm.deps.EventPublisher.Close(); err != nil {
			sm.deps.Logger.Error("failed to close event publisher", "error", err)
		}
	}

	sm.shutdown = true
	sm.deps.Logger.Info("service manager shut down")
	return nil
}
