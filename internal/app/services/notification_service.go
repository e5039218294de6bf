package services

import (
	"context"
	"fmt"

	"github.com/studenthub/backend/internal/app/models"
	"github.com/studenthub/backend/internal/app/models/dto"
	"github.com/studenthub/backend/internal/pkg/apperrors"
	"github.com/studenthub/backend/internal/pkg/logger"
)

// notificationLimit caps how many notifications a listing returns.
const notificationLimit = 50

// NotificationService handles in-app notification reads and the
// decision notifications produced by activity reviews.
type NotificationService interface {
	ListForUser(ctx context.Context, userID int64) ([]dto.NotificationResponse, error)
	MarkRead(ctx context.Context, callerID, notificationID int64) (*dto.NotificationResponse, error)
	NotifyDecision(ctx context.Context, activity *models.Activity)
}

type notificationService struct {
	store NotificationStore
}

// NewNotificationService creates a new NotificationService.
func NewNotificationService(store NotificationStore) NotificationService {
	return &notificationService{store: store}
}

// ListForUser returns the caller's latest notifications.
func (s *notificationService) ListForUser(ctx context.Context, userID int64) ([]dto.NotificationResponse, error) {
	notifications, err := s.store.ListByRecipient(ctx, userID, notificationLimit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.NotificationResponse, 0, len(notifications))
	for _, n := range notifications {
		out = append(out, dto.FromNotification(n))
	}
	return out, nil
}

// MarkRead marks a notification as read. Only the recipient may do so;
// a foreign notification is reported as not found rather than forbidden
// to avoid confirming its existence.
func (s *notificationService) MarkRead(ctx context.Context, callerID, notificationID int64) (*dto.NotificationResponse, error) {
	n, err := s.store.GetNotificationByID(ctx, notificationID)
	if err != nil {
		return nil, err
	}
	if n.RecipientID != callerID {
		return nil, apperrors.ErrNotificationNotFound
	}
	if err := s.store.MarkRead(ctx, notificationID); err != nil {
		return nil, err
	}
	n.Read = true
	resp := dto.FromNotification(n)
	return &resp, nil
}

// NotifyDecision records a notification for the activity's student after
// an approve or reject decision. Failures are logged and swallowed; the
// decision itself already succeeded.
func (s *notificationService) NotifyDecision(ctx context.Context, activity *models.Activity) {
	var (
		nType   models.NotificationType
		title   string
		message string
	)
	switch activity.Status {
	case models.StatusApproved:
		nType = models.NotificationApproved
		title = "Activity approved"
		message = fmt.Sprintf("Your activity %q was approved for %d credits.", activity.Title, activity.Credits)
	case models.StatusRejected:
		nType = models.NotificationRejected
		title = "Activity rejected"
		message = fmt.Sprintf("Your activity %q was rejected.", activity.Title)
	default:
		return
	}

	activityID := activity.ID
	_, err := s.store.CreateNotification(ctx, &models.Notification{
		RecipientID:       activity.StudentID,
		Title:             title,
		Message:           message,
		Type:              nType,
		RelatedActivityID: &activityID,
	})
	if err != nil {
		logger.Error().Err(err).Int64("activityID", activity.ID).Msg("Failed to create decision notification")
	}
}
