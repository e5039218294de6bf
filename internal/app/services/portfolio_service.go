package services

import (
	"context"

	"github.com/studenthub/backend/internal/app/models"
	"github.com/studenthub/backend/internal/app/models/dto"
	"github.com/studenthub/backend/internal/app/policy"
	"github.com/studenthub/backend/internal/pkg/apperrors"
	"github.com/studenthub/backend/internal/pkg/logger"
	"github.com/studenthub/backend/internal/pkg/metrics"
	"github.com/studenthub/backend/internal/pkg/pdf"
)

// PortfolioService assembles verified achievement portfolios from a
// student's approved activities.
type PortfolioService interface {
	Build(ctx context.Context, caller Caller, targetUserID int64) (*dto.PortfolioResponse, error)
	GeneratePDF(ctx context.Context, caller Caller, targetUserID int64) ([]byte, error)
}

type portfolioService struct {
	userStore     UserStore
	activityStore ActivityStore
}

// NewPortfolioService creates a new PortfolioService.
func NewPortfolioService(userStore UserStore, activityStore ActivityStore) PortfolioService {
	return &portfolioService{
		userStore:     userStore,
		activityStore: activityStore,
	}
}

// Build groups a student's approved activities by type. Pending and
// rejected submissions never appear in a portfolio.
func (s *portfolioService) Build(ctx context.Context, caller Caller, targetUserID int64) (*dto.PortfolioResponse, error) {
	user, err := s.userStore.GetUserByID(ctx, targetUserID)
	if err != nil {
		return nil, err
	}
	if !policy.CanPerform(caller.Role, policy.OpViewUserStats, targetUserID, caller.ID) {
		return nil, apperrors.ErrPermissionDenied
	}
	if user.Role != models.RoleStudent {
		return nil, apperrors.ErrStudentNotFound
	}

	activities, err := s.activityStore.ListApprovedByStudent(ctx, targetUserID)
	if err != nil {
		return nil, err
	}

	grouped := make(map[string][]dto.PortfolioActivity)
	summary := dto.PortfolioSummary{
		TotalActivities:  len(activities),
		ActivitiesByType: make(map[string]int),
	}
	for _, a := range activities {
		key := string(a.Type)
		grouped[key] = append(grouped[key], dto.PortfolioActivity{
			Title:       a.Title,
			Description: a.Description,
			Organizer:   a.Organizer,
			Date:        a.Date,
			Duration:    a.Duration,
			Credits:     a.Credits,
		})
		summary.ActivitiesByType[key]++
		summary.TotalCredits += a.Credits
	}

	return &dto.PortfolioResponse{
		Student: dto.PortfolioStudent{
			Name:       user.Name,
			StudentID:  user.StudentID,
			Department: user.Department,
			Year:       user.Year,
			Email:      user.Email,
		},
		Summary:    summary,
		Activities: grouped,
	}, nil
}

// GeneratePDF renders the portfolio as a PDF document.
func (s *portfolioService) GeneratePDF(ctx context.Context, caller Caller, targetUserID int64) ([]byte, error) {
	portfolio, err := s.Build(ctx, caller, targetUserID)
	if err != nil {
		return nil, err
	}

	data, err := pdf.RenderPortfolio(portfolio)
	if err != nil {
		logger.Error().Err(err).Int64("userID", targetUserID).Msg("Failed to render portfolio")
		return nil, apperrors.ErrInternal
	}
	metrics.PortfoliosGenerated.Inc()
	logger.Info().Int64("userID", targetUserID).Int("bytes", len(data)).Msg("Portfolio generated")
	return data, nil
}
