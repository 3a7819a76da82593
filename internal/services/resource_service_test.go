package services

import (
	"context"
	"errors"
	"testing"

	"github.com/UCEM-2025/campus-event-service/internal/models"
	"github.com/UCEM-2025/campus-event-service/internal/validator"
)

func newResourceServiceForTest(repo *fakeRepository) ResourceService {
	return NewResourceService(repo, testLogger(), validator.New())
}

func TestResourceService_Halls(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepository()
	service := newResourceServiceForTest(repo)

	t.Run("create", func(t *testing.T) {
		hall, result, err := service.CreateHall(ctx, &CreateHallRequest{Name: "Auditorium", Capacity: 500})
		if err != nil {
			t.Fatalf("CreateHall: %v", err)
		}
		if result.Outcome != OutcomeSuccess {
			t.Fatalf("expected success, got %s", result.Outcome)
		}
		if hall.ID == 0 {
			t.Error("hall should get an ID")
		}
	})

	t.Run("duplicate name is refused", func(t *testing.T) {
		_, result, err := service.CreateHall(ctx, &CreateHallRequest{Name: "Auditorium", Capacity: 200})
		if err != nil {
			t.Fatalf("CreateHall: %v", err)
		}
		if result.Outcome != OutcomeWarning {
			t.Errorf("expected warning, got %s", result.Outcome)
		}
	})

	t.Run("update capacity", func(t *testing.T) {
		hall, _ := repo.Hall().GetByName(ctx, "Auditorium")
		capacity := 450
		updated, result, err := service.UpdateHall(ctx, hall.ID, &UpdateHallRequest{Capacity: &capacity})
		if err != nil {
			t.Fatalf("UpdateHall: %v", err)
		}
		if result.Outcome != OutcomeSuccess || updated.Capacity != 450 {
			t.Errorf("unexpected update: %s, capacity %d", result.Outcome, updated.Capacity)
		}
	})

	t.Run("delete removes dependent bookings", func(t *testing.T) {
		hall, _ := repo.Hall().GetByName(ctx, "Auditorium")
		repo.seedHallBooking(&models.HallBooking{HallID: hall.ID, StudentID: 1, Status: models.BookingPending})

		if err := service.DeleteHall(ctx, hall.ID); err != nil {
			t.Fatalf("DeleteHall: %v", err)
		}
		if _, err := service.GetHall(ctx, hall.ID); !errors.Is(err, ErrHallNotFound) {
			t.Errorf("expected ErrHallNotFound, got %v", err)
		}
		bookings, _ := repo.HallBooking().GetByStudent(ctx, 1)
		if len(bookings) != 0 {
			t.Errorf("hall bookings should be gone with the hall, found %d", len(bookings))
		}
	})

	t.Run("delete missing hall", func(t *testing.T) {
		if err := service.DeleteHall(ctx, 404); !errors.Is(err, ErrHallNotFound) {
			t.Errorf("expected ErrHallNotFound, got %v", err)
		}
	})
}

func TestResourceService_Buses(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepository()
	service := newResourceServiceForTest(repo)

	bus, result, err := service.CreateBus(ctx, &CreateBusRequest{Identifier: "BUS-1", Capacity: 45})
	if err != nil {
		t.Fatalf("CreateBus: %v", err)
	}
	if result.Outcome != OutcomeSuccess {
		t.Fatalf("expected success, got %s", result.Outcome)
	}

	_, result, err = service.CreateBus(ctx, &CreateBusRequest{Identifier: "BUS-1", Capacity: 30})
	if err != nil {
		t.Fatalf("CreateBus: %v", err)
	}
	if result.Outcome != OutcomeWarning {
		t.Errorf("duplicate identifier should warn, got %s", result.Outcome)
	}

	identifier := "BUS-1A"
	updated, result, err := service.UpdateBus(ctx, bus.ID, &UpdateBusRequest{Identifier: &identifier})
	if err != nil {
		t.Fatalf("UpdateBus: %v", err)
	}
	if result.Outcome != OutcomeSuccess || updated.Identifier != "BUS-1A" {
		t.Errorf("unexpected update: %s, identifier %s", result.Outcome, updated.Identifier)
	}

	buses, err := service.ListBuses(ctx)
	if err != nil {
		t.Fatalf("ListBuses: %v", err)
	}
	if len(buses) != 1 {
		t.Errorf("expected 1 bus, got %d", len(buses))
	}
}
