package models

// RoleType defines the user role type
type RoleType string

const (
	RoleStudent RoleType = "student"
	RoleFaculty RoleType = "faculty"
	RoleAdmin   RoleType = "admin"
)

// IsValid reports whether the role is one of the known roles.
func (r RoleType) IsValid() bool {
	switch r {
	case RoleStudent, RoleFaculty, RoleAdmin:
		return true
	}
	return false
}

// IsReviewer reports whether the role may review activities.
// Faculty and admin are interchangeable for every review decision.
func (r RoleType) IsReviewer() bool {
	return r == RoleFaculty || r == RoleAdmin
}

// ActivityStatus defines the review state of an activity
type ActivityStatus string

const (
	StatusPending  ActivityStatus = "pending"
	StatusApproved ActivityStatus = "approved"
	StatusRejected ActivityStatus = "rejected"
)

// IsValid reports whether the status is one of the known states.
func (s ActivityStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// ActivityType defines the category of an activity
type ActivityType string

const (
	TypeConference    ActivityType = "conference"
	TypeWorkshop      ActivityType = "workshop"
	TypeCertification ActivityType = "certification"
	TypeCompetition   ActivityType = "competition"
	TypeInternship    ActivityType = "internship"
	TypeVolunteer     ActivityType = "volunteer"
	TypeLeadership    ActivityType = "leadership"
	TypeCommunity     ActivityType = "community"
)

// ActivityTypes lists every valid activity category.
var ActivityTypes = []ActivityType{
	TypeConference, TypeWorkshop, TypeCertification, TypeCompetition,
	TypeInternship, TypeVolunteer, TypeLeadership, TypeCommunity,
}

// IsValid reports whether the type is one of the known categories.
func (t ActivityType) IsValid() bool {
	for _, known := range ActivityTypes {
		if t == known {
			return true
		}
	}
	return false
}

// NotificationType defines what a notification is about
type NotificationType string

const (
	NotificationApproved NotificationType = "approved"
	NotificationRejected NotificationType = "rejected"
)
