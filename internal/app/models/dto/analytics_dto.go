package dto

// UserAnalyticsResponse is the per-user aggregate view
type UserAnalyticsResponse struct {
	TotalActivities    int            `json:"totalActivities"`
	ApprovedActivities int            `json:"approvedActivities"`
	PendingActivities  int            `json:"pendingActivities"`
	RejectedActivities int            `json:"rejectedActivities"`
	TotalCredits       int            `json:"totalCredits"`
	ActivityByType     map[string]int `json:"activityByType"`
}

// TimelinePoint is one month bucket of the advanced analytics window
type TimelinePoint struct {
	Month      string `json:"month"` // e.g. "Jan 25"
	Activities int    `json:"activities"`
}

// CategoryPerformance pairs a category with submission count and earned credits
type CategoryPerformance struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
	Credits  int    `json:"credits"`
}

// CreditSlice is one slice of the approved-credit distribution
type CreditSlice struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// AdvancedAnalyticsResponse is the caller's time-series analytics view
type AdvancedAnalyticsResponse struct {
	GrowthRate          int                   `json:"growthRate"`
	AvgPerMonth         int                   `json:"avgPerMonth"`
	SuccessRate         int                   `json:"successRate"`
	GoalProgress        int                   `json:"goalProgress"`
	Timeline            []TimelinePoint       `json:"timeline"`
	CategoryPerformance []CategoryPerformance `json:"categoryPerformance"`
	CreditDistribution  []CreditSlice         `json:"creditDistribution"`
}
