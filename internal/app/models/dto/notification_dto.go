package dto

import (
	"time"

	"github.com/studenthub/backend/internal/app/models"
)

// NotificationResponse represents a notification returned to clients
type NotificationResponse struct {
	ID                int64                   `json:"id"`
	Title             string                  `json:"title"`
	Message           string                  `json:"message"`
	Type              models.NotificationType `json:"type"`
	RelatedActivityID *int64                  `json:"relatedActivityId,omitempty"`
	Read              bool                    `json:"read"`
	CreatedAt         time.Time               `json:"createdAt"`
}

// FromNotification converts a models.Notification to a NotificationResponse
func FromNotification(n *models.Notification) NotificationResponse {
	return NotificationResponse{
		ID:                n.ID,
		Title:             n.Title,
		Message:           n.Message,
		Type:              n.Type,
		RelatedActivityID: n.RelatedActivityID,
		Read:              n.Read,
		CreatedAt:         n.CreatedAt,
	}
}
