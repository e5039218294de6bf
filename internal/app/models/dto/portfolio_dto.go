package dto

import "time"

// PortfolioActivity is one approved activity inside a portfolio group
type PortfolioActivity struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Organizer   *string   `json:"organizer,omitempty"`
	Date        time.Time `json:"date"`
	Duration    *string   `json:"duration,omitempty"`
	Credits     int       `json:"credits"`
}

// PortfolioSummary totals the approved record
type PortfolioSummary struct {
	TotalActivities  int            `json:"totalActivities"`
	TotalCredits     int            `json:"totalCredits"`
	ActivitiesByType map[string]int `json:"activitiesByType"`
}

// PortfolioStudent carries the identity attributes handed to the renderer
type PortfolioStudent struct {
	Name       string  `json:"name"`
	StudentID  *string `json:"studentId,omitempty"`
	Department *string `json:"department,omitempty"`
	Year       *int    `json:"year,omitempty"`
	Email      string  `json:"email"`
}

// PortfolioResponse groups a student's approved activities by type
type PortfolioResponse struct {
	Student    PortfolioStudent               `json:"student"`
	Summary    PortfolioSummary               `json:"summary"`
	Activities map[string][]PortfolioActivity `json:"activities"`
}
