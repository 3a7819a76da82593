package services

import (
	"context"
	"errors"
	"testing"

	"github.com/UCEM-2025/campus-event-service/internal/events"
	"github.com/UCEM-2025/campus-event-service/internal/models"
	"github.com/UCEM-2025/campus-event-service/internal/validator"
)

func newNotificationServiceForTest(repo *fakeRepository) (NotificationService, *events.MockEventPublisher) {
	publisher := events.NewMockEventPublisher(testLogger())
	return NewNotificationService(repo, publisher, testLogger(), validator.New()), publisher
}

func TestNotificationService_ListForUser_MarksRead(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepository()
	service, _ := newNotificationServiceForTest(repo)

	user := repo.seedUser(&models.User{Username: "mia", Email: "mia@ucem.edu", Role: models.RoleStudent})
	other := repo.seedUser(&models.User{Username: "noah", Email: "noah@ucem.edu", Role: models.RoleStudent})

	for i := 0; i < 3; i++ {
		_ = repo.Notification().Create(ctx, &models.Notification{
			UserID: user.ID, Message: "update", Type: models.NotificationEventStatusUpdate,
		})
	}
	_ = repo.Notification().Create(ctx, &models.Notification{
		UserID: other.ID, Message: "not yours", Type: models.NotificationEventStatusUpdate,
	})

	response, err := service.ListForUser(ctx, user.ID)
	if err != nil {
		t.Fatalf("ListForUser: %v", err)
	}
	if len(response.Notifications) != 3 {
		t.Fatalf("expected 3 notifications, got %d", len(response.Notifications))
	}

	count, _ := service.UnreadCount(ctx, user.ID)
	if count != 0 {
		t.Errorf("viewing the inbox must mark it read, %d unread left", count)
	}

	// The other user's inbox is untouched.
	otherCount, _ := service.UnreadCount(ctx, other.ID)
	if otherCount != 1 {
		t.Errorf("other user's unread count changed: %d", otherCount)
	}
}

func TestNotificationService_MarkRead_Ownership(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepository()
	service, _ := newNotificationServiceForTest(repo)

	owner := repo.seedUser(&models.User{Username: "olga", Email: "olga@ucem.edu", Role: models.RoleStudent})
	stranger := repo.seedUser(&models.User{Username: "pete", Email: "pete@ucem.edu", Role: models.RoleStudent})

	notification := &models.Notification{
		UserID: owner.ID, Message: "hello", Type: models.NotificationEventStatusUpdate,
	}
	_ = repo.Notification().Create(ctx, notification)

	if err := service.MarkRead(ctx, notification.ID, stranger.ID); !errors.Is(err, ErrNotificationNotFound) {
		t.Fatalf("stranger must see not-found, got %v", err)
	}
	if err := service.MarkRead(ctx, notification.ID, owner.ID); err != nil {
		t.Fatalf("MarkRead: %v", err)
	}

	stored, _ := repo.Notification().GetByID(ctx, notification.ID)
	if !stored.IsRead {
		t.Error("notification should be read")
	}

	// Marking an already-read row is a no-op.
	if err := service.MarkRead(ctx, notification.ID, owner.ID); err != nil {
		t.Fatalf("second MarkRead: %v", err)
	}
}

func TestNotificationService_SendBulk(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepository()
	service, publisher := newNotificationServiceForTest(repo)

	a := repo.seedUser(&models.User{Username: "quinn", Email: "quinn@ucem.edu", Role: models.RoleStudent})
	b := repo.seedUser(&models.User{Username: "ruth", Email: "ruth@ucem.edu", Role: models.RoleStudent})

	err := service.SendBulk(ctx, &BulkNotificationRequest{
		UserIDs: []uint{a.ID, b.ID},
		Type:    models.NotificationEventStatusUpdate,
		Message: "Campus closed on Friday",
	})
	if err != nil {
		t.Fatalf("SendBulk: %v", err)
	}

	if len(repo.notificationsFor(a.ID)) != 1 || len(repo.notificationsFor(b.ID)) != 1 {
		t.Error("each recipient should get one inbox row")
	}

	published := publisher.GetPublishedEvents()
	if len(published) != 1 || published[0].Type != events.BulkNotification {
		t.Errorf("expected one %s event, got %v", events.BulkNotification, published)
	}
}
