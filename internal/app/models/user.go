package models

import (
	"time"
)

// User defines the user model based on the 'users' table
type User struct {
	ID         int64     `json:"id" db:"id" example:"1"`                                  // Unique identifier for the user
	Name       string    `json:"name" db:"name" example:"Jane Doe"`                       // Full display name
	Email      string    `json:"email" db:"email" example:"jane@university.edu"`          // Email address, unique (case-insensitive lookup)
	Password   string    `json:"-" db:"password"`                                         // Bcrypt hash, never serialized to clients
	Role       RoleType  `json:"role" db:"role" example:"student"`                        // student, faculty or admin; immutable after creation
	StudentID  *string   `json:"studentId,omitempty" db:"student_id" example:"20210001"`  // Institutional student number, present iff role=student
	Department *string   `json:"department,omitempty" db:"department" example:"CS"`       // Department name (optional)
	Year       *int      `json:"year,omitempty" db:"year" example:"3"`                    // Study year 1-4 (student only, optional)
	CreatedAt  time.Time `json:"createdAt" db:"created_at" example:"2024-01-01T10:00:00Z"`
}
