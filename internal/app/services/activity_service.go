package services

import (
	"context"
	"mime/multipart"

	"github.com/studenthub/backend/internal/app/lifecycle"
	"github.com/studenthub/backend/internal/app/models"
	"github.com/studenthub/backend/internal/app/models/dto"
	"github.com/studenthub/backend/internal/app/policy"
	"github.com/studenthub/backend/internal/app/repositories"
	"github.com/studenthub/backend/internal/pkg/apperrors"
	"github.com/studenthub/backend/internal/pkg/filestorage"
	"github.com/studenthub/backend/internal/pkg/helpers"
	"github.com/studenthub/backend/internal/pkg/logger"
	"github.com/studenthub/backend/internal/pkg/metrics"
)

// Caller identifies the authenticated user inside service calls.
type Caller struct {
	ID   int64
	Role models.RoleType
}

// ListActivitiesInput holds the list filters parsed from the request.
type ListActivitiesInput struct {
	Status string
	Type   string
	Page   int
	Size   int
}

// ActivityService handles the activity submission and review lifecycle.
type ActivityService interface {
	List(ctx context.Context, caller Caller, input ListActivitiesInput) (*dto.ActivityListResponse, error)
	ListForUser(ctx context.Context, caller Caller, targetUserID int64, page, size int) (*dto.ActivityListResponse, error)
	Get(ctx context.Context, caller Caller, id int64) (*dto.ActivityResponse, error)
	Create(ctx context.Context, callerID int64, req *dto.CreateActivityRequest, certificate *multipart.FileHeader) (*dto.ActivityResponse, error)
	Decide(ctx context.Context, caller Caller, id int64, req *dto.UpdateStatusRequest) (*dto.ActivityResponse, error)
	BulkDecide(ctx context.Context, caller Caller, req *dto.BulkActionRequest) (*dto.BulkActionResponse, error)
	Delete(ctx context.Context, caller Caller, id int64) error
}

type activityService struct {
	activityStore ActivityStore
	storage       filestorage.FileStorage
	notifications NotificationService
}

// NewActivityService creates a new ActivityService.
func NewActivityService(activityStore ActivityStore, storage filestorage.FileStorage, notifications NotificationService) ActivityService {
	return &activityService{
		activityStore: activityStore,
		storage:       storage,
		notifications: notifications,
	}
}

// List returns activities visible to the caller. Students only ever see
// their own submissions; reviewers see everyone's.
func (s *activityService) List(ctx context.Context, caller Caller, input ListActivitiesInput) (*dto.ActivityListResponse, error) {
	params := repositories.ListActivitiesParams{
		Page: input.Page,
		Size: input.Size,
	}
	if !policy.CanPerform(caller.Role, policy.OpListAllActivities, caller.ID, caller.ID) {
		studentID := caller.ID
		params.StudentID = &studentID
	}
	if input.Status != "" {
		status := models.ActivityStatus(input.Status)
		if !status.IsValid() {
			return nil, apperrors.ErrInvalidStatus
		}
		params.Status = &status
	}
	if input.Type != "" {
		activityType := models.ActivityType(input.Type)
		if !activityType.IsValid() {
			return nil, apperrors.ErrInvalidType
		}
		params.Type = &activityType
	}

	activities, total, err := s.activityStore.ListActivities(ctx, params)
	if err != nil {
		return nil, err
	}
	return &dto.ActivityListResponse{
		Activities: dto.FromActivities(activities),
		Pagination: helpers.NewPaginationInfo(total, input.Page, input.Size),
	}, nil
}

// ListForUser returns one user's activities, visible to that user and to
// reviewers.
func (s *activityService) ListForUser(ctx context.Context, caller Caller, targetUserID int64, page, size int) (*dto.ActivityListResponse, error) {
	if !policy.CanPerform(caller.Role, policy.OpViewUserStats, targetUserID, caller.ID) {
		return nil, apperrors.ErrPermissionDenied
	}

	activities, total, err := s.activityStore.ListActivities(ctx, repositories.ListActivitiesParams{
		StudentID: &targetUserID,
		Page:      page,
		Size:      size,
	})
	if err != nil {
		return nil, err
	}
	return &dto.ActivityListResponse{
		Activities: dto.FromActivities(activities),
		Pagination: helpers.NewPaginationInfo(total, page, size),
	}, nil
}

// Get returns a single activity. A missing activity reports not found
// even when the caller could not have read it, so existence is resolved
// before access.
func (s *activityService) Get(ctx context.Context, caller Caller, id int64) (*dto.ActivityResponse, error) {
	activity, err := s.activityStore.GetActivityByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !policy.CanPerform(caller.Role, policy.OpReadActivity, activity.StudentID, caller.ID) {
		return nil, apperrors.ErrPermissionDenied
	}
	resp := dto.FromActivity(activity)
	return &resp, nil
}

// Create submits a new activity owned by the caller. Any ownership field
// in the request is ignored. When a certificate accompanies the
// submission the file is stored first and removed again if the record
// cannot be created.
func (s *activityService) Create(ctx context.Context, callerID int64, req *dto.CreateActivityRequest, certificate *multipart.FileHeader) (*dto.ActivityResponse, error) {
	activityType := models.ActivityType(req.Type)
	if !activityType.IsValid() {
		return nil, apperrors.ErrInvalidType
	}
	date, err := helpers.ParseDate(req.Date)
	if err != nil {
		return nil, apperrors.NewValidationError("date must be formatted YYYY-MM-DD")
	}

	activity := &models.Activity{
		StudentID:   callerID,
		Title:       req.Title,
		Type:        activityType,
		Description: req.Description,
		Date:        date,
	}
	if req.Organizer != "" {
		organizer := req.Organizer
		activity.Organizer = &organizer
	}
	if req.Duration != "" {
		duration := req.Duration
		activity.Duration = &duration
	}

	var storedPath string
	if certificate != nil {
		storedPath, err = s.storage.SaveCertificate(certificate)
		if err != nil {
			return nil, err
		}
		activity.Certificate = &storedPath
	}

	id, err := s.activityStore.CreateActivity(ctx, activity)
	if err != nil {
		// Compensate: don't leave an orphaned certificate file behind.
		if storedPath != "" {
			if cleanupErr := s.storage.DeleteFile(storedPath); cleanupErr != nil {
				logger.Error().Err(cleanupErr).Str("path", storedPath).Msg("Failed to clean up certificate after store failure")
			}
		}
		return nil, err
	}
	activity.ID = id

	logger.Info().Int64("activityID", id).Int64("studentID", callerID).Msg("Activity submitted")
	resp := dto.FromActivity(activity)
	return &resp, nil
}

// Decide approves or rejects an activity and assigns credits. Decisions
// may be re-applied to move an activity between approved and rejected;
// rejection always revokes previously granted credits.
func (s *activityService) Decide(ctx context.Context, caller Caller, id int64, req *dto.UpdateStatusRequest) (*dto.ActivityResponse, error) {
	activity, err := s.activityStore.GetActivityByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !policy.CanPerform(caller.Role, policy.OpDecideActivity, activity.StudentID, caller.ID) {
		return nil, apperrors.ErrPermissionDenied
	}

	decision, err := lifecycle.Decide(models.ActivityStatus(req.Status), req.Credits, caller.ID)
	if err != nil {
		return nil, err
	}
	if err := s.activityStore.UpdateDecision(ctx, id, decision); err != nil {
		return nil, err
	}
	lifecycle.Apply(activity, decision)
	metrics.ActivityDecisions.WithLabelValues(string(decision.Status)).Inc()

	s.notifications.NotifyDecision(ctx, activity)

	logger.Info().
		Int64("activityID", id).
		Int64("reviewerID", caller.ID).
		Str("status", string(decision.Status)).
		Int("credits", decision.Credits).
		Msg("Activity decision recorded")
	resp := dto.FromActivity(activity)
	return &resp, nil
}

// BulkDecide applies one decision to a batch of activities. Ids that no
// longer exist are skipped; the response reports only how many records
// actually changed.
func (s *activityService) BulkDecide(ctx context.Context, caller Caller, req *dto.BulkActionRequest) (*dto.BulkActionResponse, error) {
	if !policy.CanPerform(caller.Role, policy.OpBulkDecide, caller.ID, caller.ID) {
		return nil, apperrors.ErrPermissionDenied
	}

	decision, err := lifecycle.Decide(models.ActivityStatus(req.Action), req.Credits, caller.ID)
	if err != nil {
		return nil, err
	}

	modified, err := s.activityStore.BulkUpdateDecision(ctx, req.ActivityIDs, decision)
	if err != nil {
		return nil, err
	}
	metrics.ActivityDecisions.WithLabelValues(string(decision.Status)).Add(float64(modified))

	logger.Info().
		Int64("reviewerID", caller.ID).
		Str("action", string(decision.Status)).
		Int64("modified", modified).
		Int("requested", len(req.ActivityIDs)).
		Msg("Bulk decision applied")
	return &dto.BulkActionResponse{
		Message:       "bulk action completed",
		ModifiedCount: modified,
	}, nil
}

// Delete removes an activity and, best effort, its certificate file.
// Students may delete their own submissions; reviewers may delete any.
func (s *activityService) Delete(ctx context.Context, caller Caller, id int64) error {
	activity, err := s.activityStore.GetActivityByID(ctx, id)
	if err != nil {
		return err
	}
	if !policy.CanPerform(caller.Role, policy.OpDeleteActivity, activity.StudentID, caller.ID) {
		return apperrors.ErrPermissionDenied
	}

	if err := s.activityStore.DeleteActivity(ctx, id); err != nil {
		return err
	}
	if activity.Certificate != nil {
		if err := s.storage.DeleteFile(*activity.Certificate); err != nil {
			logger.Warn().Err(err).Int64("activityID", id).Msg("Failed to delete certificate file")
		}
	}
	logger.Info().Int64("activityID", id).Int64("callerID", caller.ID).Msg("Activity deleted")
	return nil
}
