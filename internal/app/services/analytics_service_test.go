package services

import (
	"context"
	"testing"
	"time"

	"github.com/studenthub/backend/internal/app/models"
)

func activityAt(store *mockActivityStore, studentID int64, createdAt time.Time, status models.ActivityStatus, credits int) *models.Activity {
	return store.add(&models.Activity{
		StudentID: studentID,
		Title:     "a",
		Type:      models.TypeWorkshop,
		Date:      createdAt,
		CreatedAt: createdAt,
		Status:    status,
		Credits:   credits,
	})
}

func TestAdvancedGrowthRateFewerThanTwoActivities(t *testing.T) {
	store := newMockActivityStore()
	svc := NewAnalyticsService(store)

	resp, err := svc.Advanced(context.Background(), 3, "6months")
	if err != nil {
		t.Fatalf("Advanced: %v", err)
	}
	if resp.GrowthRate != 0 {
		t.Errorf("GrowthRate = %d, want 0 for empty window", resp.GrowthRate)
	}

	activityAt(store, 3, time.Now().AddDate(0, 0, -1), models.StatusPending, 0)
	resp, err = svc.Advanced(context.Background(), 3, "6months")
	if err != nil {
		t.Fatalf("Advanced: %v", err)
	}
	if resp.GrowthRate != 0 {
		t.Errorf("GrowthRate = %d, want 0 for a single activity", resp.GrowthRate)
	}
}

func TestAdvancedGrowthRateEmptyFirstHalf(t *testing.T) {
	store := newMockActivityStore()
	svc := NewAnalyticsService(store)

	// Both activities sit in the recent half of the window.
	activityAt(store, 3, time.Now().AddDate(0, 0, -2), models.StatusPending, 0)
	activityAt(store, 3, time.Now().AddDate(0, 0, -1), models.StatusPending, 0)

	resp, err := svc.Advanced(context.Background(), 3, "6months")
	if err != nil {
		t.Fatalf("Advanced: %v", err)
	}
	if resp.GrowthRate != 100 {
		t.Errorf("GrowthRate = %d, want 100 when the first half is empty", resp.GrowthRate)
	}
}

func TestAdvancedGrowthRateComputed(t *testing.T) {
	store := newMockActivityStore()
	svc := NewAnalyticsService(store)

	// One activity early in the window, two late: (2-1)/1*100 = 100.
	// Then add one more early one for (2-2)/2*100 = 0.
	activityAt(store, 3, time.Now().AddDate(0, -5, 0), models.StatusPending, 0)
	activityAt(store, 3, time.Now().AddDate(0, 0, -2), models.StatusPending, 0)
	activityAt(store, 3, time.Now().AddDate(0, 0, -1), models.StatusPending, 0)

	resp, err := svc.Advanced(context.Background(), 3, "6months")
	if err != nil {
		t.Fatalf("Advanced: %v", err)
	}
	if resp.GrowthRate != 100 {
		t.Errorf("GrowthRate = %d, want 100", resp.GrowthRate)
	}

	activityAt(store, 3, time.Now().AddDate(0, -4, -15), models.StatusPending, 0)
	resp, err = svc.Advanced(context.Background(), 3, "6months")
	if err != nil {
		t.Fatalf("Advanced: %v", err)
	}
	if resp.GrowthRate != 0 {
		t.Errorf("GrowthRate = %d, want 0 for balanced halves", resp.GrowthRate)
	}
}

func TestAdvancedTimelineAndRates(t *testing.T) {
	store := newMockActivityStore()
	svc := NewAnalyticsService(store)

	now := time.Now()
	activityAt(store, 3, now.AddDate(0, 0, -1), models.StatusApproved, 5)
	activityAt(store, 3, now.AddDate(0, 0, -2), models.StatusRejected, 0)
	activityAt(store, 3, now.AddDate(0, -1, 0), models.StatusApproved, 3)
	// Another student's record stays out of the caller's analytics.
	activityAt(store, 4, now.AddDate(0, 0, -1), models.StatusApproved, 9)

	resp, err := svc.Advanced(context.Background(), 3, "3months")
	if err != nil {
		t.Fatalf("Advanced: %v", err)
	}

	if len(resp.Timeline) != 3 {
		t.Fatalf("timeline buckets = %d, want 3", len(resp.Timeline))
	}
	var bucketTotal int
	for _, p := range resp.Timeline {
		bucketTotal += p.Activities
	}
	if bucketTotal != 3 {
		t.Errorf("timeline total = %d, want 3", bucketTotal)
	}

	// 2 approved of 3 -> 67%.
	if resp.SuccessRate != 67 {
		t.Errorf("SuccessRate = %d, want 67", resp.SuccessRate)
	}
	// 2 approved of a 12 activity goal -> 17%.
	if resp.GoalProgress != 17 {
		t.Errorf("GoalProgress = %d, want 17", resp.GoalProgress)
	}
	if resp.AvgPerMonth != 1 {
		t.Errorf("AvgPerMonth = %d, want 1", resp.AvgPerMonth)
	}

	var workshopCredits int
	for _, s := range resp.CreditDistribution {
		if s.Name == string(models.TypeWorkshop) {
			workshopCredits = s.Value
		}
	}
	if workshopCredits != 8 {
		t.Errorf("workshop credits = %d, want 8 (approved only)", workshopCredits)
	}
}

func TestUserStatsDeniedForForeignStudent(t *testing.T) {
	store := newMockActivityStore()
	svc := NewAnalyticsService(store)

	if _, err := svc.UserStats(context.Background(), Caller{ID: 4, Role: models.RoleStudent}, 3); err == nil {
		t.Error("expected denial for a foreign student")
	}
	if _, err := svc.UserStats(context.Background(), Caller{ID: 20, Role: models.RoleFaculty}, 3); err != nil {
		t.Errorf("faculty read failed: %v", err)
	}
}
