package dto

import (
	"time"

	"github.com/studenthub/backend/internal/app/models"
)

// CreateActivityRequest represents a new activity submission. Any student
// field supplied by the client is ignored; ownership is forced to the
// caller. Bound from JSON or from multipart form fields when a
// certificate file accompanies the submission.
type CreateActivityRequest struct {
	Title       string `json:"title" form:"title" binding:"required"`
	Type        string `json:"type" form:"type" binding:"required"`
	Description string `json:"description" form:"description" binding:"required"`
	Date        string `json:"date" form:"date" binding:"required"` // YYYY-MM-DD
	Organizer   string `json:"organizer" form:"organizer"`
	Duration    string `json:"duration" form:"duration"`
}

// UpdateStatusRequest represents an approve/reject decision. Credits is
// left untyped on purpose: the API coerces whatever arrives to a
// non-negative integer instead of rejecting the request.
type UpdateStatusRequest struct {
	Status  string `json:"status" binding:"required"`
	Credits any    `json:"credits"`
}

// BulkActionRequest represents a batch approve/reject decision
type BulkActionRequest struct {
	ActivityIDs []int64 `json:"activityIds" binding:"required,min=1"`
	Action      string  `json:"action" binding:"required"`
	Credits     any     `json:"credits"`
}

// BulkActionResponse reports only the number of records actually
// modified; ids that no longer exist are skipped silently.
type BulkActionResponse struct {
	Message       string `json:"message"`
	ModifiedCount int64  `json:"modifiedCount"`
}

// ActivityResponse represents an activity returned to clients
type ActivityResponse struct {
	ID          int64                 `json:"id"`
	StudentID   int64                 `json:"studentId"`
	Title       string                `json:"title"`
	Type        models.ActivityType   `json:"type"`
	Description string                `json:"description"`
	Organizer   *string               `json:"organizer,omitempty"`
	Date        time.Time             `json:"date"`
	Duration    *string               `json:"duration,omitempty"`
	Certificate *string               `json:"certificate,omitempty"`
	Status      models.ActivityStatus `json:"status"`
	Credits     int                   `json:"credits"`
	ApprovedBy  *int64                `json:"approvedBy,omitempty"`
	CreatedAt   time.Time             `json:"createdAt"`
	Student     *UserResponse         `json:"student,omitempty"`
}

// FromActivity converts a models.Activity to an ActivityResponse
func FromActivity(a *models.Activity) ActivityResponse {
	if a == nil {
		return ActivityResponse{}
	}
	resp := ActivityResponse{
		ID:          a.ID,
		StudentID:   a.StudentID,
		Title:       a.Title,
		Type:        a.Type,
		Description: a.Description,
		Organizer:   a.Organizer,
		Date:        a.Date,
		Duration:    a.Duration,
		Certificate: a.Certificate,
		Status:      a.Status,
		Credits:     a.Credits,
		ApprovedBy:  a.ApprovedBy,
		CreatedAt:   a.CreatedAt,
	}
	if a.Student != nil {
		user := FromUser(a.Student)
		resp.Student = &user
	}
	return resp
}

// FromActivities converts a slice of activities
func FromActivities(activities []*models.Activity) []ActivityResponse {
	out := make([]ActivityResponse, 0, len(activities))
	for _, a := range activities {
		out = append(out, FromActivity(a))
	}
	return out
}

// ActivityListResponse represents a paginated list of activities
type ActivityListResponse struct {
	Activities []ActivityResponse `json:"activities"`
	Pagination PaginationInfo     `json:"pagination"`
}
