package services

import (
	"context"
	"time"

	"github.com/studenthub/backend/internal/app/models"
	"github.com/studenthub/backend/internal/app/models/dto"
	"github.com/studenthub/backend/internal/app/policy"
	"github.com/studenthub/backend/internal/app/repositories"
	"github.com/studenthub/backend/internal/pkg/apperrors"
	"github.com/studenthub/backend/internal/pkg/helpers"
	"github.com/studenthub/backend/internal/pkg/report"
)

// PendingQueueInput holds the review queue filters parsed from the
// request.
type PendingQueueInput struct {
	Department string
	Type       string
	Page       int
	Size       int
}

// FacultyService handles the reviewer dashboard, the pending queue and
// institution reports.
type FacultyService interface {
	Dashboard(ctx context.Context, caller Caller) (*dto.FacultyDashboardResponse, error)
	PendingActivities(ctx context.Context, caller Caller, input PendingQueueInput) (*dto.ActivityListResponse, error)
	Report(ctx context.Context, caller Caller, from, to *time.Time) (*dto.ReportResponse, error)
	ExportReport(ctx context.Context, caller Caller, from, to *time.Time) ([]byte, error)
}

type facultyService struct {
	userStore     UserStore
	activityStore ActivityStore
}

// NewFacultyService creates a new FacultyService.
func NewFacultyService(userStore UserStore, activityStore ActivityStore) FacultyService {
	return &facultyService{
		userStore:     userStore,
		activityStore: activityStore,
	}
}

// Dashboard returns institution-wide counters, department breakdown and
// the most recent pending submissions.
func (s *facultyService) Dashboard(ctx context.Context, caller Caller) (*dto.FacultyDashboardResponse, error) {
	if !policy.CanPerform(caller.Role, policy.OpManageStudents, caller.ID, caller.ID) {
		return nil, apperrors.ErrPermissionDenied
	}

	statusCounts, err := s.activityStore.StatusCounts(ctx)
	if err != nil {
		return nil, err
	}
	totalStudents, err := s.userStore.CountStudents(ctx)
	if err != nil {
		return nil, err
	}
	departments, err := s.userStore.CountStudentsByDepartment(ctx)
	if err != nil {
		return nil, err
	}

	pending := models.StatusPending
	recent, _, err := s.activityStore.ListActivities(ctx, repositories.ListActivitiesParams{
		Status: &pending,
		Page:   1,
		Size:   recentActivityCount,
	})
	if err != nil {
		return nil, err
	}

	departmentStats := make([]dto.DepartmentCount, 0, len(departments))
	for department, count := range departments {
		departmentStats = append(departmentStats, dto.DepartmentCount{Department: department, Count: count})
	}

	total := statusCounts[models.StatusPending] + statusCounts[models.StatusApproved] + statusCounts[models.StatusRejected]
	return &dto.FacultyDashboardResponse{
		Stats: dto.FacultyDashboardStats{
			TotalStudents:      totalStudents,
			TotalActivities:    total,
			PendingActivities:  statusCounts[models.StatusPending],
			ApprovedActivities: statusCounts[models.StatusApproved],
			RejectedActivities: statusCounts[models.StatusRejected],
		},
		DepartmentStats:  departmentStats,
		RecentActivities: dto.FromActivities(recent),
	}, nil
}

// PendingActivities returns the paginated review queue. The department
// filter matches the submitting student's department, so filtering and
// paging happen after the join rather than in SQL.
func (s *facultyService) PendingActivities(ctx context.Context, caller Caller, input PendingQueueInput) (*dto.ActivityListResponse, error) {
	if !policy.CanPerform(caller.Role, policy.OpManageStudents, caller.ID, caller.ID) {
		return nil, apperrors.ErrPermissionDenied
	}

	pending := models.StatusPending
	params := repositories.ListActivitiesParams{Status: &pending}
	if input.Type != "" {
		activityType := models.ActivityType(input.Type)
		if !activityType.IsValid() {
			return nil, apperrors.ErrInvalidType
		}
		params.Type = &activityType
	}

	activities, _, err := s.activityStore.ListActivities(ctx, params)
	if err != nil {
		return nil, err
	}

	if input.Department != "" {
		filtered := activities[:0]
		for _, a := range activities {
			if a.Student != nil && a.Student.Department != nil && *a.Student.Department == input.Department {
				filtered = append(filtered, a)
			}
		}
		activities = filtered
	}

	total := int64(len(activities))
	offset, limit := helpers.CalculateOffsetLimit(input.Page, input.Size)
	start := int(offset)
	if start > len(activities) {
		start = len(activities)
	}
	end := start + limit
	if end > len(activities) {
		end = len(activities)
	}

	return &dto.ActivityListResponse{
		Activities: dto.FromActivities(activities[start:end]),
		Pagination: helpers.NewPaginationInfo(total, input.Page, input.Size),
	}, nil
}

// Report summarizes approved activities in a date range.
func (s *facultyService) Report(ctx context.Context, caller Caller, from, to *time.Time) (*dto.ReportResponse, error) {
	if !policy.CanPerform(caller.Role, policy.OpManageStudents, caller.ID, caller.ID) {
		return nil, apperrors.ErrPermissionDenied
	}

	activities, err := s.activityStore.ListApprovedBetween(ctx, from, to)
	if err != nil {
		return nil, err
	}

	stats := dto.ReportStats{
		TotalActivities: len(activities),
		ByType:          make(map[string]int),
		ByDepartment:    make(map[string]int),
		ByMonth:         make(map[string]int),
	}
	for _, a := range activities {
		stats.TotalCredits += a.Credits
		stats.ByType[string(a.Type)]++
		stats.ByMonth[helpers.MonthKey(a.Date)]++
		if a.Student != nil && a.Student.Department != nil {
			stats.ByDepartment[*a.Student.Department]++
		}
	}

	return &dto.ReportResponse{
		Activities: dto.FromActivities(activities),
		Stats:      stats,
	}, nil
}

// ExportReport renders the same report as an xlsx workbook.
func (s *facultyService) ExportReport(ctx context.Context, caller Caller, from, to *time.Time) ([]byte, error) {
	reportData, err := s.Report(ctx, caller, from, to)
	if err != nil {
		return nil, err
	}

	rows := make([]report.ActivityRow, 0, len(reportData.Activities))
	for _, a := range reportData.Activities {
		row := report.ActivityRow{
			Title:   a.Title,
			Type:    string(a.Type),
			Status:  string(a.Status),
			Credits: a.Credits,
			Date:    a.Date.Format(helpers.DateLayout),
		}
		if a.Student != nil {
			row.StudentName = a.Student.Name
			if a.Student.Department != nil {
				row.Department = *a.Student.Department
			}
		}
		rows = append(rows, row)
	}

	workbook, err := report.NewWorkbook(rows, reportData.Stats.ByType, reportData.Stats.ByDepartment, reportData.Stats.ByMonth)
	if err != nil {
		return nil, err
	}
	return workbook.Bytes()
}
