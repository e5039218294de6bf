package dto

// UpdateProfileRequest represents a student profile update. Role, email
// and student number are not mutable through this endpoint.
type UpdateProfileRequest struct {
	Name       string `json:"name" binding:"required,min=2,max=100"`
	Department string `json:"department"`
	Year       *int   `json:"year" binding:"omitempty,min=1,max=4"`
}

// StudentStats summarizes a student's activity record
type StudentStats struct {
	TotalActivities    int            `json:"totalActivities"`
	ApprovedActivities int            `json:"approvedActivities"`
	PendingActivities  int            `json:"pendingActivities"`
	RejectedActivities int            `json:"rejectedActivities"`
	TotalCredits       int            `json:"totalCredits"`
	ActivityByType     map[string]int `json:"activityByType"`
}

// StudentProfileResponse combines a student with their statistics
type StudentProfileResponse struct {
	Student          UserResponse       `json:"student"`
	Statistics       StudentStats       `json:"statistics"`
	RecentActivities []ActivityResponse `json:"recentActivities"`
}

// StudentListItem is a directory row with per-student totals
type StudentListItem struct {
	UserResponse
	TotalCredits       int `json:"totalCredits"`
	TotalActivities    int `json:"totalActivities"`
	ApprovedActivities int `json:"approvedActivities"`
}

// StudentListResponse represents the paginated student directory
type StudentListResponse struct {
	Students   []StudentListItem `json:"students"`
	Pagination PaginationInfo    `json:"pagination"`
}

// StudentDashboardResponse is the student's own dashboard payload
type StudentDashboardResponse struct {
	Stats            StudentStats        `json:"stats"`
	ActivityByType   []TypeCount         `json:"activityByType"`
	RecentActivities []ActivityResponse  `json:"recentActivities"`
}

// TypeCount pairs an activity type with a count
type TypeCount struct {
	Type  string `json:"type"`
	Count int    `json:"count"`
}

// LeaderboardEntry is one ranked student. Ordering is by approved
// credits, ties broken by approved activity count.
type LeaderboardEntry struct {
	UserID             int64   `json:"userId"`
	Name               string  `json:"name"`
	StudentID          *string `json:"studentId,omitempty"`
	Department         *string `json:"department,omitempty"`
	Year               *int    `json:"year,omitempty"`
	TotalCredits       int     `json:"totalCredits"`
	TotalActivities    int     `json:"totalActivities"`
	ApprovedActivities int     `json:"approvedActivities"`
}
