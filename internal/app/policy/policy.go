// Package policy holds the authorization decision logic for the whole API.
//
// Every handler used to repeat the same role comparisons inline; they are
// consolidated here into one pure decision function so the rules cannot
// drift between endpoints. The function takes everything it needs as
// arguments and touches no shared state, so a decision is always computed
// fresh for the request at hand.
package policy

import (
	"github.com/studenthub/backend/internal/app/models"
)

// Operation identifies an action a caller wants to perform.
type Operation string

const (
	// OpListAllActivities lists activities without an owner scope.
	OpListAllActivities Operation = "activities:list-all"
	// OpReadActivity reads a single activity.
	OpReadActivity Operation = "activities:read"
	// OpCreateActivity submits a new activity.
	OpCreateActivity Operation = "activities:create"
	// OpDecideActivity approves or rejects an activity and assigns credits.
	OpDecideActivity Operation = "activities:decide"
	// OpBulkDecide applies a decision to a batch of activities.
	OpBulkDecide Operation = "activities:bulk-decide"
	// OpDeleteActivity removes an activity and its certificate file.
	OpDeleteActivity Operation = "activities:delete"
	// OpViewUserStats reads another user's activity statistics or portfolio.
	OpViewUserStats Operation = "users:view-stats"
	// OpManageStudents browses the student directory and review queues.
	OpManageStudents Operation = "students:manage"
	// OpDeleteStudent removes a student account and everything it owns.
	OpDeleteStudent Operation = "students:delete"
)

// CanPerform decides whether a caller may perform op.
//
// resourceOwnerID is the id of the user owning the target resource (the
// activity's student, or the user whose stats are requested); pass the
// caller's own id for operations without a target. Faculty and admin are
// treated identically everywhere except student deletion.
func CanPerform(role models.RoleType, op Operation, resourceOwnerID, callerID int64) bool {
	switch op {
	case OpCreateActivity:
		// Any authenticated caller may create; ownership is forced to the
		// caller elsewhere, so there is nothing to check here.
		return true

	case OpReadActivity, OpDeleteActivity, OpViewUserStats:
		if role.IsReviewer() {
			return true
		}
		return resourceOwnerID == callerID

	case OpListAllActivities, OpDecideActivity, OpBulkDecide, OpManageStudents:
		return role.IsReviewer()

	case OpDeleteStudent:
		return role == models.RoleAdmin
	}

	return false
}
