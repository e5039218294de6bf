package services

import (
	"context"
	"errors"
	"testing"

	"github.com/studenthub/backend/internal/app/models"
	"github.com/studenthub/backend/internal/pkg/apperrors"
)

func TestMarkReadRecipientOnly(t *testing.T) {
	store := newMockNotificationStore()
	svc := NewNotificationService(store)

	id, err := store.CreateNotification(context.Background(), &models.Notification{
		RecipientID: 3,
		Title:       "Activity approved",
		Type:        models.NotificationApproved,
	})
	if err != nil {
		t.Fatalf("CreateNotification: %v", err)
	}

	// A foreign caller gets not-found, not forbidden, so the id leaks
	// nothing.
	if _, err := svc.MarkRead(context.Background(), 4, id); !errors.Is(err, apperrors.ErrNotificationNotFound) {
		t.Errorf("foreign mark-read err = %v, want ErrNotificationNotFound", err)
	}

	resp, err := svc.MarkRead(context.Background(), 3, id)
	if err != nil {
		t.Fatalf("MarkRead: %v", err)
	}
	if !resp.Read {
		t.Error("notification not marked read")
	}
}

func TestListForUserScopedToRecipient(t *testing.T) {
	store := newMockNotificationStore()
	svc := NewNotificationService(store)

	for _, recipient := range []int64{3, 3, 4} {
		if _, err := store.CreateNotification(context.Background(), &models.Notification{
			RecipientID: recipient,
			Title:       "n",
			Type:        models.NotificationRejected,
		}); err != nil {
			t.Fatalf("CreateNotification: %v", err)
		}
	}

	list, err := svc.ListForUser(context.Background(), 3)
	if err != nil {
		t.Fatalf("ListForUser: %v", err)
	}
	if len(list) != 2 {
		t.Errorf("notifications = %d, want 2", len(list))
	}
}
