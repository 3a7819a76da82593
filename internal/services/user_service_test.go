package services

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/UCEM-2025/campus-event-service/internal/models"
	"github.com/UCEM-2025/campus-event-service/internal/validator"
)

func newUserServiceForTest(repo *fakeRepository) UserService {
	return NewUserService(repo, testLogger(), validator.New())
}

func TestUserService_Register(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepository()
	service := newUserServiceForTest(repo)

	req := &RegisterUserRequest{Username: "sam123", Email: "sam@ucem.edu", Password: "correcthorse"}

	t.Run("new account is a student", func(t *testing.T) {
		user, result, err := service.Register(ctx, req)
		if err != nil {
			t.Fatalf("Register: %v", err)
		}
		if result.Outcome != OutcomeSuccess {
			t.Fatalf("expected success, got %s", result.Outcome)
		}
		if user.Role != models.RoleStudent {
			t.Errorf("expected student role, got %s", user.Role)
		}
		if user.PasswordHash == "correcthorse" {
			t.Error("password must be hashed")
		}
		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("correcthorse")); err != nil {
			t.Errorf("stored hash does not verify: %v", err)
		}
	})

	t.Run("duplicate username is refused", func(t *testing.T) {
		_, result, err := service.Register(ctx, &RegisterUserRequest{
			Username: "sam123", Email: "sam2@ucem.edu", Password: "correcthorse",
		})
		if err != nil {
			t.Fatalf("Register: %v", err)
		}
		if result.Outcome != OutcomeWarning {
			t.Errorf("expected warning, got %s", result.Outcome)
		}
	})

	t.Run("duplicate email is refused", func(t *testing.T) {
		_, result, err := service.Register(ctx, &RegisterUserRequest{
			Username: "sam456", Email: "sam@ucem.edu", Password: "correcthorse",
		})
		if err != nil {
			t.Fatalf("Register: %v", err)
		}
		if result.Outcome != OutcomeWarning {
			t.Errorf("expected warning, got %s", result.Outcome)
		}
	})
}

func TestUserService_CreateStaff(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepository()
	service := newUserServiceForTest(repo)

	admin := repo.seedUser(&models.User{Username: "root2", Email: "root2@ucem.edu", Role: models.RoleAdmin})
	student := repo.seedUser(&models.User{Username: "stud6", Email: "stud6@ucem.edu", Role: models.RoleStudent})

	req := &CreateStaffRequest{
		Username: "dsaofficer", Email: "dsa@ucem.edu", Password: "sekrit-pass", Role: models.RoleDSA,
	}

	t.Run("admin provisions staff", func(t *testing.T) {
		user, result, err := service.CreateStaff(ctx, req, admin.ID)
		if err != nil {
			t.Fatalf("CreateStaff: %v", err)
		}
		if result.Outcome != OutcomeSuccess {
			t.Fatalf("expected success, got %s", result.Outcome)
		}
		if user.Role != models.RoleDSA {
			t.Errorf("expected role %s, got %s", models.RoleDSA, user.Role)
		}
	})

	t.Run("student cannot provision staff", func(t *testing.T) {
		_, _, err := service.CreateStaff(ctx, &CreateStaffRequest{
			Username: "vcofficer", Email: "vc@ucem.edu", Password: "sekrit-pass", Role: models.RoleVCOffice,
		}, student.ID)
		if !IsPermissionError(err) {
			t.Fatalf("expected permission error, got %v", err)
		}
	})
}

func TestUserService_Authenticate(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepository()
	service := newUserServiceForTest(repo)

	if _, _, err := service.Register(ctx, &RegisterUserRequest{
		Username: "tina42", Email: "tina@ucem.edu", Password: "opense-same",
	}); err != nil {
		t.Fatalf("Register: %v", err)
	}

	t.Run("valid credentials", func(t *testing.T) {
		user, err := service.Authenticate(ctx, &LoginRequest{Username: "tina42", Password: "opense-same"})
		if err != nil {
			t.Fatalf("Authenticate: %v", err)
		}
		if user.Username != "tina42" {
			t.Errorf("wrong user: %s", user.Username)
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := service.Authenticate(ctx, &LoginRequest{Username: "tina42", Password: "nope-nope"})
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := service.Authenticate(ctx, &LoginRequest{Username: "ghost99", Password: "whatever1"})
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("expected ErrInvalidCredentials, got %v", err)
		}
	})
}
