package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/studenthub/backend/internal/app/models"
	"github.com/studenthub/backend/internal/app/models/dto"
	"github.com/studenthub/backend/internal/app/repositories"
	"github.com/studenthub/backend/internal/pkg/apperrors"
)

func studentUser(store *mockUserStore, id int64, name, department string) *models.User {
	studentID := "S" + name
	return store.add(&models.User{
		ID:         id,
		Name:       name,
		Email:      name + "@university.edu",
		Role:       models.RoleStudent,
		StudentID:  &studentID,
		Department: &department,
	})
}

func TestLeaderboardOrdering(t *testing.T) {
	userStore := newMockUserStore()
	cs := "CS"
	userStore.totals = []repositories.StudentTotals{
		{UserID: 1, Name: "A", Department: &cs, TotalCredits: 10, ApprovedActivities: 2},
		{UserID: 2, Name: "B", Department: &cs, TotalCredits: 10, ApprovedActivities: 3},
		{UserID: 3, Name: "C", Department: &cs, TotalCredits: 25, ApprovedActivities: 1},
	}
	svc := NewStudentService(userStore, newMockActivityStore(), &mockStorage{})

	entries, err := svc.Leaderboard(context.Background(), "", 10)
	if err != nil {
		t.Fatalf("Leaderboard: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("entries = %d, want 3", len(entries))
	}
	// Credits rank first; equal credits fall back to approved count.
	want := []int64{3, 2, 1}
	for i, id := range want {
		if entries[i].UserID != id {
			t.Errorf("rank %d = user %d, want %d", i, entries[i].UserID, id)
		}
	}
}

func TestLeaderboardLimitAndDepartmentScope(t *testing.T) {
	userStore := newMockUserStore()
	cs, ee := "CS", "EE"
	userStore.totals = []repositories.StudentTotals{
		{UserID: 1, Name: "A", Department: &cs, TotalCredits: 5},
		{UserID: 2, Name: "B", Department: &ee, TotalCredits: 9},
		{UserID: 3, Name: "C", Department: &cs, TotalCredits: 7},
	}
	svc := NewStudentService(userStore, newMockActivityStore(), &mockStorage{})

	entries, err := svc.Leaderboard(context.Background(), "CS", 1)
	if err != nil {
		t.Fatalf("Leaderboard: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("entries = %d, want 1", len(entries))
	}
	if entries[0].UserID != 3 {
		t.Errorf("top = user %d, want 3", entries[0].UserID)
	}
}

func TestGetProfileAccess(t *testing.T) {
	userStore := newMockUserStore()
	activityStore := newMockActivityStore()
	studentUser(userStore, 3, "jane", "CS")
	svc := NewStudentService(userStore, activityStore, &mockStorage{})

	if _, err := svc.GetProfile(context.Background(), Caller{ID: 3, Role: models.RoleStudent}, 3); err != nil {
		t.Errorf("own profile: %v", err)
	}
	if _, err := svc.GetProfile(context.Background(), Caller{ID: 4, Role: models.RoleStudent}, 3); !errors.Is(err, apperrors.ErrPermissionDenied) {
		t.Errorf("foreign profile err = %v, want ErrPermissionDenied", err)
	}
	if _, err := svc.GetProfile(context.Background(), Caller{ID: 20, Role: models.RoleFaculty}, 3); err != nil {
		t.Errorf("faculty read: %v", err)
	}
	// Missing users stay not-found even for callers without access.
	if _, err := svc.GetProfile(context.Background(), Caller{ID: 4, Role: models.RoleStudent}, 999); !errors.Is(err, apperrors.ErrUserNotFound) {
		t.Errorf("missing profile err = %v, want ErrUserNotFound", err)
	}
}

func TestGetProfileStats(t *testing.T) {
	userStore := newMockUserStore()
	activityStore := newMockActivityStore()
	studentUser(userStore, 3, "jane", "CS")
	now := time.Now()
	activityAt(activityStore, 3, now.AddDate(0, 0, -3), models.StatusApproved, 4)
	activityAt(activityStore, 3, now.AddDate(0, 0, -2), models.StatusPending, 0)
	activityAt(activityStore, 3, now.AddDate(0, 0, -1), models.StatusRejected, 0)
	svc := NewStudentService(userStore, activityStore, &mockStorage{})

	profile, err := svc.GetProfile(context.Background(), Caller{ID: 3, Role: models.RoleStudent}, 3)
	if err != nil {
		t.Fatalf("GetProfile: %v", err)
	}
	stats := profile.Statistics
	if stats.TotalActivities != 3 || stats.ApprovedActivities != 1 || stats.PendingActivities != 1 || stats.RejectedActivities != 1 {
		t.Errorf("stats = %+v", stats)
	}
	if stats.TotalCredits != 4 {
		t.Errorf("TotalCredits = %d, want 4 (approved only)", stats.TotalCredits)
	}
}

func TestListStudentsReviewerOnly(t *testing.T) {
	userStore := newMockUserStore()
	studentUser(userStore, 3, "jane", "CS")
	svc := NewStudentService(userStore, newMockActivityStore(), &mockStorage{})

	if _, err := svc.ListStudents(context.Background(), Caller{ID: 3, Role: models.RoleStudent}, ListStudentsInput{Page: 1, Size: 10}); !errors.Is(err, apperrors.ErrPermissionDenied) {
		t.Errorf("err = %v, want ErrPermissionDenied", err)
	}

	resp, err := svc.ListStudents(context.Background(), Caller{ID: 20, Role: models.RoleFaculty}, ListStudentsInput{Page: 1, Size: 10})
	if err != nil {
		t.Fatalf("ListStudents: %v", err)
	}
	if len(resp.Students) != 1 {
		t.Errorf("students = %d, want 1", len(resp.Students))
	}
}

func TestDeleteStudentAdminOnly(t *testing.T) {
	userStore := newMockUserStore()
	activityStore := newMockActivityStore()
	studentUser(userStore, 3, "jane", "CS")
	cert := "uploads/cert.pdf"
	activityStore.add(&models.Activity{StudentID: 3, Title: "w", Type: models.TypeWorkshop, Certificate: &cert})
	storage := &mockStorage{}
	svc := NewStudentService(userStore, activityStore, storage)

	// Faculty and admin diverge only here.
	if err := svc.DeleteStudent(context.Background(), Caller{ID: 20, Role: models.RoleFaculty}, 3); !errors.Is(err, apperrors.ErrPermissionDenied) {
		t.Fatalf("faculty delete err = %v, want ErrPermissionDenied", err)
	}
	if err := svc.DeleteStudent(context.Background(), Caller{ID: 1, Role: models.RoleAdmin}, 3); err != nil {
		t.Fatalf("admin delete: %v", err)
	}
	if _, ok := userStore.users[3]; ok {
		t.Error("student still present after delete")
	}
	if len(storage.deleted) != 1 || storage.deleted[0] != cert {
		t.Errorf("deleted files = %v, want [%s]", storage.deleted, cert)
	}
}

func TestUpdateProfileKeepsIdentityFields(t *testing.T) {
	userStore := newMockUserStore()
	u := studentUser(userStore, 3, "jane", "CS")
	originalEmail, originalRole := u.Email, u.Role
	svc := NewStudentService(userStore, newMockActivityStore(), &mockStorage{})

	year := 2
	resp, err := svc.UpdateProfile(context.Background(), 3, &dto.UpdateProfileRequest{
		Name:       "Jane D.",
		Department: "Math",
		Year:       &year,
	})
	if err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}
	if resp.Name != "Jane D." || resp.Department == nil || *resp.Department != "Math" {
		t.Errorf("resp = %+v", resp)
	}
	if resp.Email != originalEmail || resp.Role != originalRole {
		t.Error("identity fields changed through profile update")
	}
}
