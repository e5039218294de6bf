package models

import (
	"time"
)

// Notification defines the notification model based on the 'notifications' table
type Notification struct {
	ID                int64            `json:"id" db:"id"`
	RecipientID       int64            `json:"recipientId" db:"recipient_id"`
	Title             string           `json:"title" db:"title"`
	Message           string           `json:"message" db:"message"`
	Type              NotificationType `json:"type" db:"type"`
	RelatedActivityID *int64           `json:"relatedActivityId,omitempty" db:"related_activity_id"`
	Read              bool             `json:"read" db:"read"`
	CreatedAt         time.Time        `json:"createdAt" db:"created_at"`
}
