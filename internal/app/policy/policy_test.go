package policy

import (
	"testing"

	"github.com/studenthub/backend/internal/app/models"
)

func TestCanPerform(t *testing.T) {
	const (
		owner    = int64(3)
		stranger = int64(4)
	)

	tests := []struct {
		name     string
		role     models.RoleType
		op       Operation
		ownerID  int64
		callerID int64
		want     bool
	}{
		{"student creates", models.RoleStudent, OpCreateActivity, owner, owner, true},
		{"student reads own", models.RoleStudent, OpReadActivity, owner, owner, true},
		{"student reads foreign", models.RoleStudent, OpReadActivity, owner, stranger, false},
		{"student deletes own", models.RoleStudent, OpDeleteActivity, owner, owner, true},
		{"student deletes foreign", models.RoleStudent, OpDeleteActivity, owner, stranger, false},
		{"student views own stats", models.RoleStudent, OpViewUserStats, owner, owner, true},
		{"student views foreign stats", models.RoleStudent, OpViewUserStats, owner, stranger, false},
		{"student lists all", models.RoleStudent, OpListAllActivities, owner, owner, false},
		{"student decides own", models.RoleStudent, OpDecideActivity, owner, owner, false},
		{"student bulk decides", models.RoleStudent, OpBulkDecide, owner, owner, false},
		{"student browses directory", models.RoleStudent, OpManageStudents, owner, owner, false},
		{"student deletes student", models.RoleStudent, OpDeleteStudent, owner, owner, false},

		{"faculty reads any", models.RoleFaculty, OpReadActivity, owner, stranger, true},
		{"faculty decides", models.RoleFaculty, OpDecideActivity, owner, stranger, true},
		{"faculty bulk decides", models.RoleFaculty, OpBulkDecide, owner, stranger, true},
		{"faculty lists all", models.RoleFaculty, OpListAllActivities, owner, stranger, true},
		{"faculty views any stats", models.RoleFaculty, OpViewUserStats, owner, stranger, true},
		{"faculty browses directory", models.RoleFaculty, OpManageStudents, owner, stranger, true},
		{"faculty deletes activity", models.RoleFaculty, OpDeleteActivity, owner, stranger, true},
		{"faculty deletes student", models.RoleFaculty, OpDeleteStudent, owner, stranger, false},

		{"admin decides", models.RoleAdmin, OpDecideActivity, owner, stranger, true},
		{"admin deletes student", models.RoleAdmin, OpDeleteStudent, owner, stranger, true},

		{"unknown op denied", models.RoleAdmin, Operation("users:impersonate"), owner, stranger, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := CanPerform(tc.role, tc.op, tc.ownerID, tc.callerID); got != tc.want {
				t.Errorf("CanPerform(%s, %s) = %v, want %v", tc.role, tc.op, got, tc.want)
			}
		})
	}
}

// Faculty and admin answer identically for every operation except
// student deletion.
func TestFacultyAdminParity(t *testing.T) {
	ops := []Operation{
		OpListAllActivities, OpReadActivity, OpCreateActivity, OpDecideActivity,
		OpBulkDecide, OpDeleteActivity, OpViewUserStats, OpManageStudents,
	}
	for _, op := range ops {
		faculty := CanPerform(models.RoleFaculty, op, 3, 4)
		admin := CanPerform(models.RoleAdmin, op, 3, 4)
		if faculty != admin {
			t.Errorf("op %s: faculty=%v admin=%v", op, faculty, admin)
		}
	}

	if CanPerform(models.RoleFaculty, OpDeleteStudent, 3, 4) == CanPerform(models.RoleAdmin, OpDeleteStudent, 3, 4) {
		t.Error("student deletion should separate faculty from admin")
	}
}
