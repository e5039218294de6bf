package services

import (
	"context"
	"math"
	"time"

	"github.com/studenthub/backend/internal/app/models"
	"github.com/studenthub/backend/internal/app/models/dto"
	"github.com/studenthub/backend/internal/app/policy"
	"github.com/studenthub/backend/internal/app/repositories"
	"github.com/studenthub/backend/internal/pkg/apperrors"
	"github.com/studenthub/backend/internal/pkg/helpers"
)

// yearlyActivityGoal is the approved-activity count treated as 100%
// goal progress.
const yearlyActivityGoal = 12

// AnalyticsService computes per-user aggregates and the caller's
// time-series view.
type AnalyticsService interface {
	UserStats(ctx context.Context, caller Caller, targetUserID int64) (*dto.UserAnalyticsResponse, error)
	Advanced(ctx context.Context, callerID int64, timeRange string) (*dto.AdvancedAnalyticsResponse, error)
}

type analyticsService struct {
	activityStore ActivityStore
}

// NewAnalyticsService creates a new AnalyticsService.
func NewAnalyticsService(activityStore ActivityStore) AnalyticsService {
	return &analyticsService{activityStore: activityStore}
}

// UserStats returns one user's activity aggregates, visible to that user
// and to reviewers.
func (s *analyticsService) UserStats(ctx context.Context, caller Caller, targetUserID int64) (*dto.UserAnalyticsResponse, error) {
	if !policy.CanPerform(caller.Role, policy.OpViewUserStats, targetUserID, caller.ID) {
		return nil, apperrors.ErrPermissionDenied
	}

	activities, _, err := s.activityStore.ListActivities(ctx, repositories.ListActivitiesParams{StudentID: &targetUserID})
	if err != nil {
		return nil, err
	}

	stats := computeStats(activities)
	return &dto.UserAnalyticsResponse{
		TotalActivities:    stats.TotalActivities,
		ApprovedActivities: stats.ApprovedActivities,
		PendingActivities:  stats.PendingActivities,
		RejectedActivities: stats.RejectedActivities,
		TotalCredits:       stats.TotalCredits,
		ActivityByType:     stats.ActivityByType,
	}, nil
}

// Advanced returns the caller's time-series analytics over a 3, 6 or 12
// month window.
func (s *analyticsService) Advanced(ctx context.Context, callerID int64, timeRange string) (*dto.AdvancedAnalyticsResponse, error) {
	months := windowMonths(timeRange)
	now := time.Now()
	// Window starts at the first day of the oldest bucket month.
	since := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -(months - 1), 0)

	activities, err := s.activityStore.ListByStudentSince(ctx, callerID, since)
	if err != nil {
		return nil, err
	}

	resp := &dto.AdvancedAnalyticsResponse{
		GrowthRate:          growthRate(activities, since, now),
		Timeline:            timeline(activities, since, months),
		CategoryPerformance: categoryPerformance(activities),
		CreditDistribution:  creditDistribution(activities),
	}
	resp.AvgPerMonth = int(math.Round(float64(len(activities)) / float64(months)))

	approved := 0
	for _, a := range activities {
		if a.Status == models.StatusApproved {
			approved++
		}
	}
	if len(activities) > 0 {
		resp.SuccessRate = roundPercent(float64(approved), float64(len(activities)))
	}
	goal := roundPercent(float64(approved), yearlyActivityGoal)
	if goal > 100 {
		goal = 100
	}
	resp.GoalProgress = goal

	return resp, nil
}

func windowMonths(timeRange string) int {
	switch timeRange {
	case "3months":
		return 3
	case "1year":
		return 12
	default:
		return 6
	}
}

// growthRate compares activity volume in the two halves of the window.
// The heuristic is coarse but kept as-is for client compatibility: 0
// when fewer than two activities exist, 100 when everything falls in
// the second half.
func growthRate(activities []*models.Activity, since, until time.Time) int {
	if len(activities) < 2 {
		return 0
	}
	mid := since.Add(until.Sub(since) / 2)

	firstHalf := 0
	for _, a := range activities {
		if a.CreatedAt.Before(mid) {
			firstHalf++
		}
	}
	secondHalf := len(activities) - firstHalf

	if firstHalf == 0 {
		return 100
	}
	return roundPercent(float64(secondHalf-firstHalf), float64(firstHalf))
}

// timeline buckets activities per calendar month across the window,
// including empty months.
func timeline(activities []*models.Activity, since time.Time, months int) []dto.TimelinePoint {
	counts := make(map[string]int)
	for _, a := range activities {
		counts[helpers.MonthKey(a.CreatedAt)]++
	}

	points := make([]dto.TimelinePoint, 0, months)
	for i := 0; i < months; i++ {
		month := since.AddDate(0, i, 0)
		points = append(points, dto.TimelinePoint{
			Month:      month.Format("Jan 06"),
			Activities: counts[helpers.MonthKey(month)],
		})
	}
	return points
}

func categoryPerformance(activities []*models.Activity) []dto.CategoryPerformance {
	counts := make(map[models.ActivityType]int)
	credits := make(map[models.ActivityType]int)
	for _, a := range activities {
		counts[a.Type]++
		if a.Status == models.StatusApproved {
			credits[a.Type] += a.Credits
		}
	}

	out := make([]dto.CategoryPerformance, 0, len(counts))
	for _, t := range models.ActivityTypes {
		if counts[t] == 0 {
			continue
		}
		out = append(out, dto.CategoryPerformance{
			Category: string(t),
			Count:    counts[t],
			Credits:  credits[t],
		})
	}
	return out
}

func creditDistribution(activities []*models.Activity) []dto.CreditSlice {
	credits := make(map[models.ActivityType]int)
	for _, a := range activities {
		if a.Status == models.StatusApproved {
			credits[a.Type] += a.Credits
		}
	}

	out := make([]dto.CreditSlice, 0, len(credits))
	for _, t := range models.ActivityTypes {
		if credits[t] == 0 {
			continue
		}
		out = append(out, dto.CreditSlice{Name: string(t), Value: credits[t]})
	}
	return out
}

// roundPercent rounds numerator/denominator*100 to the nearest integer.
func roundPercent(numerator, denominator float64) int {
	if denominator == 0 {
		return 0
	}
	return int(math.Round(numerator / denominator * 100))
}
