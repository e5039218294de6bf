package models

import (
	"time"
)

// Activity defines the activity model based on the 'activities' table.
//
// Status, Credits and ApprovedBy always change together through the
// lifecycle package; handlers never write them field by field.
type Activity struct {
	ID          int64          `json:"id" db:"id"`
	StudentID   int64          `json:"studentId" db:"student_id"`                // Owning student, set once at creation
	Title       string         `json:"title" db:"title"`
	Type        ActivityType   `json:"type" db:"type"`
	Description string         `json:"description" db:"description"`
	Organizer   *string        `json:"organizer,omitempty" db:"organizer"`
	Date        time.Time      `json:"date" db:"activity_date"`                  // When the activity took place, not when it was logged
	Duration    *string        `json:"duration,omitempty" db:"duration"`
	Certificate *string        `json:"certificate,omitempty" db:"certificate"`   // Stored file path of the uploaded certificate
	Status      ActivityStatus `json:"status" db:"status"`
	Credits     int            `json:"credits" db:"credits"`                     // Non-negative, meaningful only when approved
	ApprovedBy  *int64         `json:"approvedBy,omitempty" db:"approved_by"`    // Reviewer who made the last decision
	CreatedAt   time.Time      `json:"createdAt" db:"created_at"`

	Student *User `json:"student,omitempty"` // Relation, no db tag
}
