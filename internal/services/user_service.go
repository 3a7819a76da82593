package services

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/UCEM-2025/campus-event-service/internal/models"
	"github.com/UCEM-2025/campus-event-service/internal/repositories"
	"github.com/UCEM-2025/campus-event-service/internal/validator"
)

type userService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
}

func NewUserService(repo repositories.Repository, logger *slog.Logger, v *validator.Validator) UserService {
	return &userService{
		repo:      repo,
		logger:    logger,
		validator: v,
	}
}

func (s *userService) Register(ctx context.Context, req *RegisterUserRequest) (*models.User, Result, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, Result{}, fmt.Errorf("validation failed: %w", err)
	}

	if taken, err := s.repo.User().ExistsByUsername(ctx, req.Username); err != nil {
		return nil, Result{}, fmt.Errorf("failed to check username: %w", err)
	} else if taken {
		return nil, WarningResult("username %q is already taken", req.Username), nil
	}

	if taken, err := s.repo.User().ExistsByEmail(ctx, req.Email); err != nil {
		return nil, Result{}, fmt.Errorf("failed to check email: %w", err)
	} else if taken {
		return nil, WarningResult("email %q is already registered", req.Email), nil
	}

	user, err := s.createUser(ctx, req.Username, req.Email, req.Password, models.RoleStudent)
	if err != nil {
		return nil, Result{}, err
	}

	s.logger.Info("user registered", "user_id", user.ID, "username", user.Username)
	return user, SuccessResult("account created for %s", user.Username), nil
}

func (s *userService) CreateStaff(ctx context.Context, req *CreateStaffRequest, actorID uint) (*models.User, Result, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, Result{}, fmt.Errorf("validation failed: %w", err)
	}

	isAdmin, err := s.repo.User().HasRole(ctx, actorID, models.RoleAdmin)
	if err != nil {
		return nil, Result{}, fmt.Errorf("failed to check actor role: %w", err)
	}
	if !isAdmin {
		return nil, Result{}, NewPermissionError(actorID, 0, "user", "create_staff", "admin role required")
	}

	if taken, err := s.repo.User().ExistsByUsername(ctx, req.Username); err != nil {
		return nil, Result{}, fmt.Errorf("failed to check username: %w", err)
	} else if taken {
		return nil, WarningResult("username %q is already taken", req.Username), nil
	}

	if taken, err := s.repo.User().ExistsByEmail(ctx, req.Email); err != nil {
		return nil, Result{}, fmt.Errorf("failed to check email: %w", err)
	} else if taken {
		return nil, WarningResult("email %q is already registered", req.Email), nil
	}

	user, err := s.createUser(ctx, req.Username, req.Email, req.Password, req.Role)
	if err != nil {
		return nil, Result{}, err
	}

	s.logger.Info("staff account created",
		"user_id", user.ID,
		"role", user.Role,
		"created_by", actorID)
	return user, SuccessResult("%s account created for %s", user.Role, user.Username), nil
}

func (s *userService) createUser(ctx context.Context, username, email, password string, role models.UserRole) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
	}
	if err := s.repo.User().Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

func (s *userService) Authenticate(ctx context.Context, req *LoginRequest) (*models.User, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	user, err := s.repo.User().GetByUsername(ctx, req.Username)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

func (s *userService) GetByID(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.repo.User().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

func (s *userService) List(ctx context.Context, filters repositories.UserFilters) ([]*models.User, int64, error) {
	return s.repo.User().List(ctx, filters)
}
