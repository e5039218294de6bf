// Package lifecycle implements the activity review state machine.
//
// An activity's status, credits and reviewer reference always move
// together through a single transition; no caller may set them
// independently. Transitions are re-triggerable from any state so a
// reviewer can correct an earlier decision; the latest decision wins.
package lifecycle

import (
	"encoding/json"
	"strconv"

	"github.com/studenthub/backend/internal/app/models"
	"github.com/studenthub/backend/internal/pkg/apperrors"
)

// Decision is the result of applying a transition. The repository writes
// all three fields in one UPDATE so the invariants cannot be split across
// uncoordinated writes.
type Decision struct {
	Status     models.ActivityStatus
	Credits    int
	ApprovedBy int64
}

// Decide computes the state produced by applying action to an activity.
// action must be approved or rejected; credits are only honored on
// approval and are revoked on rejection.
func Decide(action models.ActivityStatus, rawCredits any, approverID int64) (Decision, error) {
	switch action {
	case models.StatusApproved:
		return Decision{
			Status:     models.StatusApproved,
			Credits:    CoerceCredits(rawCredits),
			ApprovedBy: approverID,
		}, nil
	case models.StatusRejected:
		return Decision{
			Status:     models.StatusRejected,
			Credits:    0,
			ApprovedBy: approverID,
		}, nil
	}
	return Decision{}, apperrors.ErrInvalidStatus
}

// Apply writes a decision onto an activity in memory.
func Apply(a *models.Activity, d Decision) {
	a.Status = d.Status
	a.Credits = d.Credits
	approvedBy := d.ApprovedBy
	a.ApprovedBy = &approvedBy
}

// CoerceCredits turns arbitrary request input into a non-negative credit
// count. Invalid numeric input becomes 0 instead of failing the request;
// the permissive parse is deliberate and kept for compatibility.
func CoerceCredits(raw any) int {
	switch v := raw.(type) {
	case nil:
		return 0
	case int:
		return clampCredits(v)
	case int64:
		return clampCredits(int(v))
	case float64:
		// JSON numbers decode as float64; fractional credits round down.
		return clampCredits(int(v))
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			return 0
		}
		return clampCredits(int(n))
	case string:
		n, err := strconv.Atoi(v)
		if err != nil {
			return 0
		}
		return clampCredits(n)
	}
	return 0
}

func clampCredits(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
