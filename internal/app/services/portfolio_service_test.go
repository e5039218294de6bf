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

func newPortfolioFixture(t *testing.T) (*mockUserStore, *mockActivityStore, PortfolioService) {
	t.Helper()
	userStore := newMockUserStore()
	activityStore := newMockActivityStore()
	studentUser(userStore, 3, "jane", "CS")
	return userStore, activityStore, NewPortfolioService(userStore, activityStore)
}

func TestPortfolioOnlyApprovedActivities(t *testing.T) {
	_, activityStore, svc := newPortfolioFixture(t)
	now := time.Now()
	activityAt(activityStore, 3, now.AddDate(0, 0, -5), models.StatusApproved, 4)
	activityAt(activityStore, 3, now.AddDate(0, 0, -4), models.StatusPending, 0)
	activityAt(activityStore, 3, now.AddDate(0, 0, -3), models.StatusRejected, 0)
	activityStore.add(&models.Activity{
		StudentID: 3,
		Title:     "Student Council",
		Type:      models.TypeLeadership,
		Date:      now.AddDate(0, 0, -2),
		Status:    models.StatusApproved,
		Credits:   2,
	})

	portfolio, err := svc.Build(context.Background(), Caller{ID: 3, Role: models.RoleStudent}, 3)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if portfolio.Summary.TotalActivities != 2 {
		t.Errorf("TotalActivities = %d, want 2", portfolio.Summary.TotalActivities)
	}
	if portfolio.Summary.TotalCredits != 6 {
		t.Errorf("TotalCredits = %d, want 6", portfolio.Summary.TotalCredits)
	}
	if len(portfolio.Activities[string(models.TypeWorkshop)]) != 1 {
		t.Errorf("workshop group = %d entries, want 1", len(portfolio.Activities[string(models.TypeWorkshop)]))
	}
	if len(portfolio.Activities[string(models.TypeLeadership)]) != 1 {
		t.Errorf("leadership group = %d entries, want 1", len(portfolio.Activities[string(models.TypeLeadership)]))
	}
}

func TestPortfolioAccess(t *testing.T) {
	_, _, svc := newPortfolioFixture(t)

	if _, err := svc.Build(context.Background(), Caller{ID: 4, Role: models.RoleStudent}, 3); !errors.Is(err, apperrors.ErrPermissionDenied) {
		t.Errorf("err = %v, want ErrPermissionDenied", err)
	}
	if _, err := svc.Build(context.Background(), Caller{ID: 20, Role: models.RoleFaculty}, 3); err != nil {
		t.Errorf("faculty build: %v", err)
	}
}

func TestGeneratePDFProducesDocument(t *testing.T) {
	_, activityStore, svc := newPortfolioFixture(t)
	activityAt(activityStore, 3, time.Now().AddDate(0, 0, -5), models.StatusApproved, 4)

	data, err := svc.GeneratePDF(context.Background(), Caller{ID: 3, Role: models.RoleStudent}, 3)
	if err != nil {
		t.Fatalf("GeneratePDF: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Errorf("output does not start with a PDF header")
	}
}
