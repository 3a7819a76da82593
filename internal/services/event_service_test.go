package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/UCEM-2025/campus-event-service/internal/events"
	"github.com/UCEM-2025/campus-event-service/internal/models"
	"github.com/UCEM-2025/campus-event-service/internal/validator"
)

func newEventServiceForTest(repo *fakeRepository) (EventService, *events.MockEventPublisher) {
	publisher := events.NewMockEventPublisher(testLogger())
	return NewEventService(repo, publisher, testLogger(), validator.New()), publisher
}

func seedAdmin(repo *fakeRepository) *models.User {
	return repo.seedUser(&models.User{Username: "admin1", Email: "admin1@ucem.edu", Role: models.RoleAdmin})
}

func seedDSA(repo *fakeRepository) *models.User {
	return repo.seedUser(&models.User{Username: "dsa1", Email: "dsa1@ucem.edu", Role: models.RoleDSA})
}

func seedVC(repo *fakeRepository) *models.User {
	return repo.seedUser(&models.User{Username: "vc1", Email: "vc1@ucem.edu", Role: models.RoleVCOffice})
}

func TestEventService_Create(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepository()
	service, publisher := newEventServiceForTest(repo)
	admin := seedAdmin(repo)
	student := repo.seedUser(&models.User{Username: "stud1", Email: "stud1@ucem.edu", Role: models.RoleStudent})

	req := &CreateEventRequest{
		Name:     "Tech Fair",
		Date:     time.Now().Add(30 * 24 * time.Hour),
		Location: "Main Auditorium",
	}

	t.Run("admin creates pending event", func(t *testing.T) {
		event, err := service.Create(ctx, req, admin.ID)
		if err != nil {
			t.Fatalf("Create: %v", err)
		}
		if event.Status != models.EventPendingDSA {
			t.Errorf("expected status %s, got %s", models.EventPendingDSA, event.Status)
		}
		if event.CreatedBy != admin.ID {
			t.Errorf("expected created_by %d, got %d", admin.ID, event.CreatedBy)
		}

		published := publisher.GetPublishedEvents()
		if len(published) != 1 || published[0].Type != events.EventCreated {
			t.Errorf("expected one %s event, got %v", events.EventCreated, published)
		}
	})

	t.Run("student cannot create", func(t *testing.T) {
		_, err := service.Create(ctx, req, student.ID)
		if !IsPermissionError(err) {
			t.Fatalf("expected permission error, got %v", err)
		}
	})
}

func TestEventService_ApprovalPipeline(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepository()
	service, publisher := newEventServiceForTest(repo)
	admin := seedAdmin(repo)
	dsa := seedDSA(repo)
	vc := seedVC(repo)

	event := repo.seedEvent(&models.Event{
		Name:      "Science Expo",
		Date:      time.Now().Add(14 * 24 * time.Hour),
		Location:  "Hall B",
		Status:    models.EventPendingDSA,
		CreatedBy: admin.ID,
	})

	t.Run("vc cannot decide the dsa stage", func(t *testing.T) {
		_, _, err := service.DSAApprove(ctx, event.ID, vc.ID, nil)
		if !IsPermissionError(err) {
			t.Fatalf("expected permission error, got %v", err)
		}
	})

	t.Run("dsa approval moves to pending vc", func(t *testing.T) {
		decided, result, err := service.DSAApprove(ctx, event.ID, dsa.ID, nil)
		if err != nil {
			t.Fatalf("DSAApprove: %v", err)
		}
		if result.Outcome != OutcomeSuccess {
			t.Fatalf("expected success, got %s: %s", result.Outcome, result.Message)
		}
		if decided.Status != models.EventPendingVC {
			t.Errorf("expected status %s, got %s", models.EventPendingVC, decided.Status)
		}
		if decided.DSAApproverID == nil || *decided.DSAApproverID != dsa.ID {
			t.Errorf("expected dsa approver stamp %d, got %v", dsa.ID, decided.DSAApproverID)
		}

		inbox := repo.notificationsFor(admin.ID)
		if len(inbox) != 1 {
			t.Fatalf("expected 1 creator notification, got %d", len(inbox))
		}
		if inbox[0].Type != models.NotificationEventStatusUpdate {
			t.Errorf("unexpected notification type %s", inbox[0].Type)
		}
	})

	t.Run("repeated dsa approval is a warning, not a mutation", func(t *testing.T) {
		publisher.ClearEvents()

		decided, result, err := service.DSAApprove(ctx, event.ID, dsa.ID, nil)
		if err != nil {
			t.Fatalf("DSAApprove: %v", err)
		}
		if result.Outcome != OutcomeWarning {
			t.Fatalf("expected warning, got %s", result.Outcome)
		}
		if decided.Status != models.EventPendingVC {
			t.Errorf("status changed on refused decision: %s", decided.Status)
		}
		if len(publisher.GetPublishedEvents()) != 0 {
			t.Error("refused decision must not publish a domain event")
		}
		if len(repo.notificationsFor(admin.ID)) != 1 {
			t.Error("refused decision must not add a notification")
		}
	})

	t.Run("vc approval finalizes", func(t *testing.T) {
		remarks := "Budget confirmed"
		decided, result, err := service.VCApprove(ctx, event.ID, vc.ID, &ApprovalDecisionRequest{Remarks: &remarks})
		if err != nil {
			t.Fatalf("VCApprove: %v", err)
		}
		if result.Outcome != OutcomeSuccess {
			t.Fatalf("expected success, got %s: %s", result.Outcome, result.Message)
		}
		if decided.Status != models.EventApproved {
			t.Errorf("expected status %s, got %s", models.EventApproved, decided.Status)
		}
		if decided.VCApproverID == nil || *decided.VCApproverID != vc.ID {
			t.Errorf("expected vc approver stamp %d, got %v", vc.ID, decided.VCApproverID)
		}

		inbox := repo.notificationsFor(admin.ID)
		last := inbox[len(inbox)-1]
		if !strings.Contains(last.Message, "APPROVED") || !strings.Contains(last.Message, remarks) {
			t.Errorf("unexpected approval message: %q", last.Message)
		}

		published := publisher.GetPublishedEvents()
		if len(published) != 1 || published[0].Type != events.EventApproved {
			t.Errorf("expected one %s event, got %v", events.EventApproved, published)
		}
	})

	t.Run("approved event is frozen", func(t *testing.T) {
		name := "Renamed Expo"
		_, result, err := service.Update(ctx, event.ID, &UpdateEventRequest{Name: &name}, admin.ID)
		if err != nil {
			t.Fatalf("Update: %v", err)
		}
		if result.Outcome != OutcomeWarning {
			t.Fatalf("expected warning, got %s", result.Outcome)
		}
		stored, _ := repo.Event().GetByID(ctx, event.ID)
		if stored.Name != "Science Expo" {
			t.Errorf("frozen event was edited: %q", stored.Name)
		}
	})
}

func TestEventService_Rejection(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepository()
	service, publisher := newEventServiceForTest(repo)
	admin := seedAdmin(repo)
	dsa := seedDSA(repo)

	event := repo.seedEvent(&models.Event{
		Name:      "Night Market",
		Date:      time.Now().Add(7 * 24 * time.Hour),
		Location:  "Quad",
		Status:    models.EventPendingDSA,
		CreatedBy: admin.ID,
	})

	remarks := "Insufficient safety plan"
	decided, result, err := service.DSAReject(ctx, event.ID, dsa.ID, &ApprovalDecisionRequest{Remarks: &remarks})
	if err != nil {
		t.Fatalf("DSAReject: %v", err)
	}
	if result.Outcome != OutcomeSuccess {
		t.Fatalf("expected success, got %s", result.Outcome)
	}
	if decided.Status != models.EventDSARejected {
		t.Errorf("expected status %s, got %s", models.EventDSARejected, decided.Status)
	}

	inbox := repo.notificationsFor(admin.ID)
	if len(inbox) != 1 || !strings.Contains(inbox[0].Message, remarks) {
		t.Errorf("expected rejection notification with remarks, got %v", inbox)
	}

	published := publisher.GetPublishedEvents()
	if len(published) != 1 || published[0].Type != events.EventRejected {
		t.Errorf("expected one %s event, got %v", events.EventRejected, published)
	}

	// A rejected event is terminal: the VC stage can never pick it up.
	_, result, err = service.VCApprove(ctx, event.ID, seedVC(repo).ID, nil)
	if err != nil {
		t.Fatalf("VCApprove: %v", err)
	}
	if result.Outcome != OutcomeWarning {
		t.Errorf("expected warning on terminal event, got %s", result.Outcome)
	}
}

func TestEventService_GetByID_WithStats(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepository()
	service, _ := newEventServiceForTest(repo)

	capacity := 100
	event := repo.seedEvent(&models.Event{
		Name:     "Career Day",
		Date:     time.Now().Add(48 * time.Hour),
		Location: "Hall A",
		Status:   models.EventApproved,
		Capacity: &capacity,
	})
	ticket := "t-1"
	repo.seedRegistration(&models.Registration{UserID: 11, EventID: event.ID, TicketID: &ticket, PaymentStatus: models.PaymentPaid})
	repo.seedRegistration(&models.Registration{UserID: 12, EventID: event.ID, PaymentStatus: models.PaymentPending})

	response, err := service.GetByID(ctx, event.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if response.Stats == nil {
		t.Fatal("expected stats")
	}
	if response.Stats.TotalRegistrations != 2 || response.Stats.ConfirmedTickets != 1 || response.Stats.PendingPayments != 1 {
		t.Errorf("unexpected stats: %+v", response.Stats)
	}
	if response.Stats.RemainingCapacity == nil || *response.Stats.RemainingCapacity != 98 {
		t.Errorf("unexpected remaining capacity: %v", response.Stats.RemainingCapacity)
	}
}

func TestEventService_GetByID_NotFound(t *testing.T) {
	repo := newFakeRepository()
	service, _ := newEventServiceForTest(repo)

	if _, err := service.GetByID(context.Background(), 999); err != ErrEventNotFound {
		t.Fatalf("expected ErrEventNotFound, got %v", err)
	}
}
