package dto

// FacultyDashboardStats carries the institution-wide counters
type FacultyDashboardStats struct {
	TotalStudents      int64 `json:"totalStudents"`
	TotalActivities    int64 `json:"totalActivities"`
	PendingActivities  int64 `json:"pendingActivities"`
	ApprovedActivities int64 `json:"approvedActivities"`
	RejectedActivities int64 `json:"rejectedActivities"`
}

// DepartmentCount pairs a department with its student count
type DepartmentCount struct {
	Department string `json:"department"`
	Count      int64  `json:"count"`
}

// FacultyDashboardResponse is the reviewer dashboard payload
type FacultyDashboardResponse struct {
	Stats            FacultyDashboardStats `json:"stats"`
	DepartmentStats  []DepartmentCount     `json:"departmentStats"`
	RecentActivities []ActivityResponse    `json:"recentActivities"`
}

// ReportStats aggregates the approved activities of a report window
type ReportStats struct {
	TotalActivities int            `json:"totalActivities"`
	TotalCredits    int            `json:"totalCredits"`
	ByType          map[string]int `json:"byType"`
	ByDepartment    map[string]int `json:"byDepartment"`
	ByMonth         map[string]int `json:"byMonth"` // keyed YYYY-MM
}

// ReportResponse is the institution activity report
type ReportResponse struct {
	Activities []ActivityResponse `json:"activities"`
	Stats      ReportStats        `json:"stats"`
}
