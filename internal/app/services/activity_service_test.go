package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/studenthub/backend/internal/app/models"
	"github.com/studenthub/backend/internal/app/models/dto"
	"github.com/studenthub/backend/internal/pkg/apperrors"
)

func newActivityFixture() (*mockActivityStore, *mockNotificationStore, *mockStorage, ActivityService) {
	activityStore := newMockActivityStore()
	notificationStore := newMockNotificationStore()
	storage := &mockStorage{}
	svc := NewActivityService(activityStore, storage, NewNotificationService(notificationStore))
	return activityStore, notificationStore, storage, svc
}

func pendingActivity(store *mockActivityStore, studentID int64) *models.Activity {
	return store.add(&models.Activity{
		StudentID:   studentID,
		Title:       "Regional Hackathon",
		Type:        models.TypeCompetition,
		Description: "48h build",
		Date:        time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		CreatedAt:   time.Now(),
	})
}

func TestCreateForcesCallerOwnership(t *testing.T) {
	store, _, _, svc := newActivityFixture()

	resp, err := svc.Create(context.Background(), 7, &dto.CreateActivityRequest{
		Title:       "Cloud Certification",
		Type:        "certification",
		Description: "associate level",
		Date:        "2026-02-01",
	}, nil)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if resp.StudentID != 7 {
		t.Errorf("StudentID = %d, want caller id 7", resp.StudentID)
	}
	if resp.Status != models.StatusPending {
		t.Errorf("Status = %q, want pending", resp.Status)
	}
	if got := store.activities[resp.ID].StudentID; got != 7 {
		t.Errorf("stored StudentID = %d, want 7", got)
	}
}

func TestCreateRejectsUnknownType(t *testing.T) {
	_, _, _, svc := newActivityFixture()

	_, err := svc.Create(context.Background(), 7, &dto.CreateActivityRequest{
		Title:       "x",
		Type:        "webinar",
		Description: "x",
		Date:        "2026-02-01",
	}, nil)
	if !errors.Is(err, apperrors.ErrInvalidType) {
		t.Errorf("err = %v, want ErrInvalidType", err)
	}
}

func TestDecideApproveThenReject(t *testing.T) {
	store, _, _, svc := newActivityFixture()
	a := pendingActivity(store, 3)
	faculty := Caller{ID: 20, Role: models.RoleFaculty}

	approved, err := svc.Decide(context.Background(), faculty, a.ID, &dto.UpdateStatusRequest{Status: "approved", Credits: 5})
	if err != nil {
		t.Fatalf("approve: %v", err)
	}
	if approved.Status != models.StatusApproved || approved.Credits != 5 {
		t.Fatalf("got %s/%d, want approved/5", approved.Status, approved.Credits)
	}
	if approved.ApprovedBy == nil || *approved.ApprovedBy != 20 {
		t.Fatalf("ApprovedBy = %v, want 20", approved.ApprovedBy)
	}

	// Re-deciding an already approved activity is allowed; rejection
	// revokes the granted credits.
	rejected, err := svc.Decide(context.Background(), faculty, a.ID, &dto.UpdateStatusRequest{Status: "rejected"})
	if err != nil {
		t.Fatalf("reject: %v", err)
	}
	if rejected.Status != models.StatusRejected {
		t.Errorf("Status = %q, want rejected", rejected.Status)
	}
	if rejected.Credits != 0 {
		t.Errorf("Credits = %d, want 0 after rejection", rejected.Credits)
	}
}

func TestDecideInvalidCreditsBecomeZero(t *testing.T) {
	store, _, _, svc := newActivityFixture()
	a := pendingActivity(store, 3)

	resp, err := svc.Decide(context.Background(), Caller{ID: 20, Role: models.RoleAdmin}, a.ID,
		&dto.UpdateStatusRequest{Status: "approved", Credits: "not-a-number"})
	if err != nil {
		t.Fatalf("Decide: %v", err)
	}
	if resp.Status != models.StatusApproved {
		t.Errorf("Status = %q, want approved", resp.Status)
	}
	if resp.Credits != 0 {
		t.Errorf("Credits = %d, want 0 for unparseable input", resp.Credits)
	}
}

func TestDecideDeniedForStudent(t *testing.T) {
	store, _, _, svc := newActivityFixture()
	a := pendingActivity(store, 3)

	// Even the owner cannot decide their own submission.
	_, err := svc.Decide(context.Background(), Caller{ID: 3, Role: models.RoleStudent}, a.ID,
		&dto.UpdateStatusRequest{Status: "approved", Credits: 5})
	if !errors.Is(err, apperrors.ErrPermissionDenied) {
		t.Errorf("err = %v, want ErrPermissionDenied", err)
	}
	if store.activities[a.ID].Status != models.StatusPending {
		t.Error("activity changed despite denial")
	}
}

func TestDecideMissingActivityBeforeAccessCheck(t *testing.T) {
	_, _, _, svc := newActivityFixture()

	// A student who could never decide still sees not-found for a
	// missing id, not a permission error.
	_, err := svc.Decide(context.Background(), Caller{ID: 3, Role: models.RoleStudent}, 999,
		&dto.UpdateStatusRequest{Status: "approved"})
	if !errors.Is(err, apperrors.ErrActivityNotFound) {
		t.Errorf("err = %v, want ErrActivityNotFound", err)
	}
}

func TestDecideCreatesNotification(t *testing.T) {
	store, notifications, _, svc := newActivityFixture()
	a := pendingActivity(store, 3)

	_, err := svc.Decide(context.Background(), Caller{ID: 20, Role: models.RoleFaculty}, a.ID,
		&dto.UpdateStatusRequest{Status: "approved", Credits: 4})
	if err != nil {
		t.Fatalf("Decide: %v", err)
	}

	list, _ := notifications.ListByRecipient(context.Background(), 3, 50)
	if len(list) != 1 {
		t.Fatalf("notifications = %d, want 1", len(list))
	}
	if list[0].Type != models.NotificationApproved {
		t.Errorf("Type = %q, want approved", list[0].Type)
	}
	if list[0].RelatedActivityID == nil || *list[0].RelatedActivityID != a.ID {
		t.Errorf("RelatedActivityID = %v, want %d", list[0].RelatedActivityID, a.ID)
	}
}

func TestBulkDecideSkipsMissingIDs(t *testing.T) {
	store, _, _, svc := newActivityFixture()
	a := pendingActivity(store, 3)
	b := pendingActivity(store, 4)

	resp, err := svc.BulkDecide(context.Background(), Caller{ID: 20, Role: models.RoleFaculty}, &dto.BulkActionRequest{
		ActivityIDs: []int64{a.ID, 555, b.ID, 777},
		Action:      "approved",
		Credits:     3,
	})
	if err != nil {
		t.Fatalf("BulkDecide: %v", err)
	}
	if resp.ModifiedCount != 2 {
		t.Errorf("ModifiedCount = %d, want 2", resp.ModifiedCount)
	}
	for _, id := range []int64{a.ID, b.ID} {
		if got := store.activities[id]; got.Status != models.StatusApproved || got.Credits != 3 {
			t.Errorf("activity %d = %s/%d, want approved/3", id, got.Status, got.Credits)
		}
	}
}

func TestBulkDecideInvalidAction(t *testing.T) {
	_, _, _, svc := newActivityFixture()

	_, err := svc.BulkDecide(context.Background(), Caller{ID: 20, Role: models.RoleFaculty}, &dto.BulkActionRequest{
		ActivityIDs: []int64{1},
		Action:      "pending",
	})
	if !errors.Is(err, apperrors.ErrInvalidStatus) {
		t.Errorf("err = %v, want ErrInvalidStatus", err)
	}
}

func TestListScopesStudentsToOwnActivities(t *testing.T) {
	store, _, _, svc := newActivityFixture()
	pendingActivity(store, 3)
	pendingActivity(store, 4)

	own, err := svc.List(context.Background(), Caller{ID: 3, Role: models.RoleStudent}, ListActivitiesInput{Page: 1, Size: 10})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(own.Activities) != 1 || own.Activities[0].StudentID != 3 {
		t.Errorf("student sees %d activities, want only their own", len(own.Activities))
	}

	all, err := svc.List(context.Background(), Caller{ID: 20, Role: models.RoleFaculty}, ListActivitiesInput{Page: 1, Size: 10})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all.Activities) != 2 {
		t.Errorf("faculty sees %d activities, want 2", len(all.Activities))
	}
}

func TestGetDeniedForForeignStudent(t *testing.T) {
	store, _, _, svc := newActivityFixture()
	a := pendingActivity(store, 3)

	if _, err := svc.Get(context.Background(), Caller{ID: 4, Role: models.RoleStudent}, a.ID); !errors.Is(err, apperrors.ErrPermissionDenied) {
		t.Errorf("err = %v, want ErrPermissionDenied", err)
	}
	if _, err := svc.Get(context.Background(), Caller{ID: 3, Role: models.RoleStudent}, a.ID); err != nil {
		t.Errorf("owner read failed: %v", err)
	}
}

func TestDeleteRemovesCertificateFile(t *testing.T) {
	store, _, storage, svc := newActivityFixture()
	cert := "uploads/cert-1.pdf"
	a := store.add(&models.Activity{
		StudentID:   3,
		Title:       "Workshop",
		Type:        models.TypeWorkshop,
		Date:        time.Now(),
		Certificate: &cert,
	})

	if err := svc.Delete(context.Background(), Caller{ID: 3, Role: models.RoleStudent}, a.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, ok := store.activities[a.ID]; ok {
		t.Error("activity still present after delete")
	}
	if len(storage.deleted) != 1 || storage.deleted[0] != cert {
		t.Errorf("deleted files = %v, want [%s]", storage.deleted, cert)
	}
}

func TestCreateWithStoreFailureCleansUpFile(t *testing.T) {
	activityStore := newMockActivityStore()
	activityStore.createErr = apperrors.ErrInternal
	storage := &mockStorage{}
	svc := NewActivityService(activityStore, storage, NewNotificationService(newMockNotificationStore()))

	// SaveCertificate is exercised through the mock, so a fake header
	// with just a filename is enough.
	_, err := svc.Create(context.Background(), 7, &dto.CreateActivityRequest{
		Title:       "Conference",
		Type:        "conference",
		Description: "annual",
		Date:        "2026-05-01",
	}, fakeFileHeader("talk.pdf"))
	if !errors.Is(err, apperrors.ErrInternal) {
		t.Fatalf("err = %v, want ErrInternal", err)
	}
	if len(storage.saved) != 1 {
		t.Fatalf("saved = %v, want one stored file", storage.saved)
	}
	if len(storage.deleted) != 1 || storage.deleted[0] != storage.saved[0] {
		t.Errorf("deleted = %v, want the stored file cleaned up", storage.deleted)
	}
}
