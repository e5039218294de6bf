package services

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/studenthub/backend/internal/app/models"
	"github.com/studenthub/backend/internal/pkg/apperrors"
)

func newFacultyFixture() (*mockUserStore, *mockActivityStore, FacultyService) {
	userStore := newMockUserStore()
	activityStore := newMockActivityStore()
	return userStore, activityStore, NewFacultyService(userStore, activityStore)
}

func TestFacultyDashboard(t *testing.T) {
	userStore, activityStore, svc := newFacultyFixture()
	studentUser(userStore, 3, "jane", "CS")
	studentUser(userStore, 4, "john", "EE")
	now := time.Now()
	activityAt(activityStore, 3, now.AddDate(0, 0, -1), models.StatusPending, 0)
	activityAt(activityStore, 3, now.AddDate(0, 0, -2), models.StatusApproved, 5)
	activityAt(activityStore, 4, now.AddDate(0, 0, -3), models.StatusRejected, 0)

	resp, err := svc.Dashboard(context.Background(), Caller{ID: 20, Role: models.RoleFaculty})
	if err != nil {
		t.Fatalf("Dashboard: %v", err)
	}
	s := resp.Stats
	if s.TotalStudents != 2 || s.TotalActivities != 3 || s.PendingActivities != 1 || s.ApprovedActivities != 1 || s.RejectedActivities != 1 {
		t.Errorf("stats = %+v", s)
	}
	if len(resp.DepartmentStats) != 2 {
		t.Errorf("departments = %d, want 2", len(resp.DepartmentStats))
	}
	if len(resp.RecentActivities) != 1 || resp.RecentActivities[0].Status != models.StatusPending {
		t.Errorf("recent = %+v, want one pending activity", resp.RecentActivities)
	}
}

func TestFacultyDashboardDeniedForStudent(t *testing.T) {
	_, _, svc := newFacultyFixture()

	if _, err := svc.Dashboard(context.Background(), Caller{ID: 3, Role: models.RoleStudent}); !errors.Is(err, apperrors.ErrPermissionDenied) {
		t.Errorf("err = %v, want ErrPermissionDenied", err)
	}
}

func TestPendingQueueDepartmentFilter(t *testing.T) {
	userStore, activityStore, svc := newFacultyFixture()
	jane := studentUser(userStore, 3, "jane", "CS")
	john := studentUser(userStore, 4, "john", "EE")

	a := activityAt(activityStore, 3, time.Now().AddDate(0, 0, -1), models.StatusPending, 0)
	a.Student = jane
	b := activityAt(activityStore, 4, time.Now().AddDate(0, 0, -2), models.StatusPending, 0)
	b.Student = john
	c := activityAt(activityStore, 3, time.Now().AddDate(0, 0, -3), models.StatusApproved, 5)
	c.Student = jane

	resp, err := svc.PendingActivities(context.Background(), Caller{ID: 20, Role: models.RoleAdmin}, PendingQueueInput{
		Department: "CS",
		Page:       1,
		Size:       10,
	})
	if err != nil {
		t.Fatalf("PendingActivities: %v", err)
	}
	if len(resp.Activities) != 1 {
		t.Fatalf("activities = %d, want 1", len(resp.Activities))
	}
	if resp.Activities[0].ID != a.ID {
		t.Errorf("got activity %d, want %d", resp.Activities[0].ID, a.ID)
	}
}

func TestReportAggregates(t *testing.T) {
	userStore, activityStore, svc := newFacultyFixture()
	jane := studentUser(userStore, 3, "jane", "CS")

	first := activityStore.add(&models.Activity{
		StudentID: 3, Title: "Conf", Type: models.TypeConference,
		Date: time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC), Status: models.StatusApproved, Credits: 3,
	})
	first.Student = jane
	second := activityStore.add(&models.Activity{
		StudentID: 3, Title: "Workshop", Type: models.TypeWorkshop,
		Date: time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC), Status: models.StatusApproved, Credits: 2,
	})
	second.Student = jane
	// Outside the window.
	activityStore.add(&models.Activity{
		StudentID: 3, Title: "Old", Type: models.TypeWorkshop,
		Date: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), Status: models.StatusApproved, Credits: 9,
	})

	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC)
	resp, err := svc.Report(context.Background(), Caller{ID: 20, Role: models.RoleFaculty}, &from, &to)
	if err != nil {
		t.Fatalf("Report: %v", err)
	}
	if resp.Stats.TotalActivities != 2 || resp.Stats.TotalCredits != 5 {
		t.Errorf("stats = %+v", resp.Stats)
	}
	if resp.Stats.ByType["conference"] != 1 || resp.Stats.ByType["workshop"] != 1 {
		t.Errorf("ByType = %v", resp.Stats.ByType)
	}
	if resp.Stats.ByMonth["2026-02"] != 1 || resp.Stats.ByMonth["2026-03"] != 1 {
		t.Errorf("ByMonth = %v", resp.Stats.ByMonth)
	}
	if resp.Stats.ByDepartment["CS"] != 2 {
		t.Errorf("ByDepartment = %v", resp.Stats.ByDepartment)
	}
}

func TestExportReportProducesWorkbook(t *testing.T) {
	_, activityStore, svc := newFacultyFixture()
	activityStore.add(&models.Activity{
		StudentID: 3, Title: "Conf", Type: models.TypeConference,
		Date: time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC), Status: models.StatusApproved, Credits: 3,
	})

	data, err := svc.ExportReport(context.Background(), Caller{ID: 20, Role: models.RoleFaculty}, nil, nil)
	if err != nil {
		t.Fatalf("ExportReport: %v", err)
	}
	// xlsx files are zip archives.
	if !bytes.HasPrefix(data, []byte("PK")) {
		t.Error("output is not a zip-based workbook")
	}
}
