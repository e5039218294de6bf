package lifecycle

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/studenthub/backend/internal/app/models"
	"github.com/studenthub/backend/internal/pkg/apperrors"
)

func TestDecideApprove(t *testing.T) {
	d, err := Decide(models.StatusApproved, 5, 20)
	if err != nil {
		t.Fatalf("Decide: %v", err)
	}
	if d.Status != models.StatusApproved || d.Credits != 5 || d.ApprovedBy != 20 {
		t.Errorf("decision = %+v", d)
	}
}

func TestDecideRejectRevokesCredits(t *testing.T) {
	// Credits supplied with a rejection are ignored.
	d, err := Decide(models.StatusRejected, 7, 20)
	if err != nil {
		t.Fatalf("Decide: %v", err)
	}
	if d.Status != models.StatusRejected || d.Credits != 0 {
		t.Errorf("decision = %+v, want rejected with 0 credits", d)
	}
}

func TestDecideRejectsNonDecisionStatus(t *testing.T) {
	for _, status := range []models.ActivityStatus{models.StatusPending, "archived", ""} {
		if _, err := Decide(status, 1, 20); !errors.Is(err, apperrors.ErrInvalidStatus) {
			t.Errorf("status %q: err = %v, want ErrInvalidStatus", status, err)
		}
	}
}

func TestApplyWritesAllDecisionFields(t *testing.T) {
	a := &models.Activity{Status: models.StatusPending}
	Apply(a, Decision{Status: models.StatusApproved, Credits: 4, ApprovedBy: 20})

	if a.Status != models.StatusApproved || a.Credits != 4 {
		t.Errorf("activity = %+v", a)
	}
	if a.ApprovedBy == nil || *a.ApprovedBy != 20 {
		t.Errorf("ApprovedBy = %v, want 20", a.ApprovedBy)
	}

	// Moving back to rejected clears the credits but keeps the reviewer.
	Apply(a, Decision{Status: models.StatusRejected, Credits: 0, ApprovedBy: 21})
	if a.Status != models.StatusRejected || a.Credits != 0 {
		t.Errorf("activity = %+v after rejection", a)
	}
	if a.ApprovedBy == nil || *a.ApprovedBy != 21 {
		t.Errorf("ApprovedBy = %v, want 21", a.ApprovedBy)
	}
}

func TestCoerceCredits(t *testing.T) {
	tests := []struct {
		name string
		raw  any
		want int
	}{
		{"nil", nil, 0},
		{"int", 5, 5},
		{"int64", int64(7), 7},
		{"float", 4.0, 4},
		{"fractional float truncates", 4.9, 4},
		{"negative clamps", -3, 0},
		{"negative float clamps", -2.5, 0},
		{"numeric string", "6", 6},
		{"garbage string", "lots", 0},
		{"empty string", "", 0},
		{"json number", json.Number("8"), 8},
		{"json number garbage", json.Number("8.5.1"), 0},
		{"bool", true, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := CoerceCredits(tc.raw); got != tc.want {
				t.Errorf("CoerceCredits(%v) = %d, want %d", tc.raw, got, tc.want)
			}
		})
	}
}
