package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/UCEM-2025/campus-event-service/internal/models"
	"github.com/UCEM-2025/campus-event-service/internal/repositories"
	"github.com/UCEM-2025/campus-event-service/internal/validator"
)

// resourceService manages the static hall and bus inventory. Role
// enforcement (admin only) happens at the router.
type resourceService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
}

func NewResourceService(repo repositories.Repository, logger *slog.Logger, v *validator.Validator) ResourceService {
	return &resourceService{
		repo:      repo,
		logger:    logger,
		validator: v,
	}
}

// ===== HALLS =====

func (s *resourceService) CreateHall(ctx context.Context, req *CreateHallRequest) (*models.Hall, Result, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, Result{}, fmt.Errorf("validation failed: %w", err)
	}

	if exists, err := s.repo.Hall().ExistsByName(ctx, req.Name); err != nil {
		return nil, Result{}, fmt.Errorf("failed to check hall name: %w", err)
	} else if exists {
		return nil, WarningResult("a hall named %q already exists", req.Name), nil
	}

	hall := &models.Hall{
		Name:     req.Name,
		Capacity: req.Capacity,
	}
	if req.LocationDetails != "" {
		hall.LocationDetails = strPtr(req.LocationDetails)
	}

	if err := s.repo.Hall().Create(ctx, hall); err != nil {
		if repositories.IsDuplicateKeyError(err) {
			return nil, WarningResult("a hall named %q already exists", req.Name), nil
		}
		return nil, Result{}, fmt.Errorf("failed to create hall: %w", err)
	}

	s.logger.Info("hall created", "hall_id", hall.ID, "name", hall.Name)
	return hall, SuccessResult("hall %q created", hall.Name), nil
}

func (s *resourceService) UpdateHall(ctx context.Context, hallID uint, req *UpdateHallRequest) (*models.Hall, Result, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, Result{}, fmt.Errorf("validation failed: %w", err)
	}

	hall, err := s.repo.Hall().GetByID(ctx, hallID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, Result{}, ErrHallNotFound
		}
		return nil, Result{}, fmt.Errorf("failed to get hall: %w", err)
	}

	if req.Name != nil && *req.Name != hall.Name {
		if exists, err := s.repo.Hall().ExistsByName(ctx, *req.Name); err != nil {
			return nil, Result{}, fmt.Errorf("failed to check hall name: %w", err)
		} else if exists {
			return nil, WarningResult("a hall named %q already exists", *req.Name), nil
		}
		hall.Name = *req.Name
	}
	if req.Capacity != nil {
		hall.Capacity = *req.Capacity
	}
	if req.LocationDetails != nil {
		hall.LocationDetails = req.LocationDetails
	}

	if err := s.repo.Hall().Update(ctx, hall); err != nil {
		return nil, Result{}, fmt.Errorf("failed to update hall: %w", err)
	}
	return hall, SuccessResult("hall %q updated", hall.Name), nil
}

func (s *resourceService) DeleteHall(ctx context.Context, hallID uint) error {
	if _, err := s.repo.Hall().GetByID(ctx, hallID); err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrHallNotFound
		}
		return fmt.Errorf("failed to get hall: %w", err)
	}
	if err := s.repo.Hall().Delete(ctx, hallID); err != nil {
		return fmt.Errorf("failed to delete hall: %w", err)
	}
	s.logger.Info("hall deleted", "hall_id", hallID)
	return nil
}

func (s *resourceService) ListHalls(ctx context.Context) ([]*models.Hall, error) {
	return s.repo.Hall().List(ctx)
}

func (s *resourceService) GetHall(ctx context.Context, hallID uint) (*models.Hall, error) {
	hall, err := s.repo.Hall().GetByID(ctx, hallID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrHallNotFound
		}
		return nil, fmt.Errorf("failed to get hall: %w", err)
	}
	return hall, nil
}

// ===== BUSES =====

func (s *resourceService) CreateBus(ctx context.Context, req *CreateBusRequest) (*models.Bus, Result, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, Result{}, fmt.Errorf("validation failed: %w", err)
	}

	if exists, err := s.repo.Bus().ExistsByIdentifier(ctx, req.Identifier); err != nil {
		return nil, Result{}, fmt.Errorf("failed to check bus identifier: %w", err)
	} else if exists {
		return nil, WarningResult("a bus with identifier %q already exists", req.Identifier), nil
	}

	bus := &models.Bus{
		Identifier: req.Identifier,
		Capacity:   req.Capacity,
	}
	if req.DriverContact != "" {
		bus.DriverContact = strPtr(req.DriverContact)
	}
	if req.RouteDetails != "" {
		bus.RouteDetails = strPtr(req.RouteDetails)
	}

	if err := s.repo.Bus().Create(ctx, bus); err != nil {
		if repositories.IsDuplicateKeyError(err) {
			return nil, WarningResult("a bus with identifier %q already exists", req.Identifier), nil
		}
		return nil, Result{}, fmt.Errorf("failed to create bus: %w", err)
	}

	s.logger.Info("bus created", "bus_id", bus.ID, "identifier", bus.Identifier)
	return bus, SuccessResult("bus %q created", bus.Identifier), nil
}

func (s *resourceService) UpdateBus(ctx context.Context, busID uint, req *UpdateBusRequest) (*models.Bus, Result, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, Result{}, fmt.Errorf("validation failed: %w", err)
	}

	bus, err := s.repo.Bus().GetByID(ctx, busID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, Result{}, ErrBusNotFound
		}
		return nil, Result{}, fmt.Errorf("failed to get bus: %w", err)
	}

	if req.Identifier != nil && *req.Identifier != bus.Identifier {
		if exists, err := s.repo.Bus().ExistsByIdentifier(ctx, *req.Identifier); err != nil {
			return nil, Result{}, fmt.Errorf("failed to check bus identifier: %w", err)
		} else if exists {
			return nil, WarningResult("a bus with identifier %q already exists", *req.Identifier), nil
		}
		bus.Identifier = *req.Identifier
	}
	if req.Capacity != nil {
		bus.Capacity = *req.Capacity
	}
	if req.DriverContact != nil {
		bus.DriverContact = req.DriverContact
	}
	if req.RouteDetails != nil {
		bus.RouteDetails = req.RouteDetails
	}

	if err := s.repo.Bus().Update(ctx, bus); err != nil {
		return nil, Result{}, fmt.Errorf("failed to update bus: %w", err)
	}
	return bus, SuccessResult("bus %q updated", bus.Identifier), nil
}

func (s *resourceService) DeleteBus(ctx context.Context, busID uint) error {
	if _, err := s.repo.Bus().GetByID(ctx, busID); err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrBusNotFound
		}
		return fmt.Errorf("failed to get bus: %w", err)
	}
	if err := s.repo.Bus().Delete(ctx, busID); err != nil {
		return fmt.Errorf("failed to delete bus: %w", err)
	}
	s.logger.Info("bus deleted", "bus_id", busID)
	return nil
}

func (s *resourceService) ListBuses(ctx context.Context) ([]*models.Bus, error) {
	return s.repo.Bus().List(ctx)
}

func (s *resourceService) GetBus(ctx context.Context, busID uint) (*models.Bus, error) {
	bus, err := s.repo.Bus().GetByID(ctx, busID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrBusNotFound
		}
		return nil, fmt.Errorf("failed to get bus: %w", err)
	}
	return bus, nil
}
