package services

import (
	"context"
	"sort"

	"github.com/studenthub/backend/internal/app/models"
	"github.com/studenthub/backend/internal/app/models/dto"
	"github.com/studenthub/backend/internal/app/policy"
	"github.com/studenthub/backend/internal/app/repositories"
	"github.com/studenthub/backend/internal/pkg/apperrors"
	"github.com/studenthub/backend/internal/pkg/filestorage"
	"github.com/studenthub/backend/internal/pkg/helpers"
	"github.com/studenthub/backend/internal/pkg/logger"
)

// recentActivityCount is how many recent submissions profile and
// dashboard views include.
const recentActivityCount = 5

// defaultLeaderboardSize caps the leaderboard when no limit is given.
const defaultLeaderboardSize = 10

// ListStudentsInput holds the directory filters parsed from the request.
type ListStudentsInput struct {
	Department string
	Year       *int
	Search     string
	Page       int
	Size       int
}

// StudentService handles student profiles, the directory, dashboards and
// the leaderboard.
type StudentService interface {
	GetProfile(ctx context.Context, caller Caller, targetID int64) (*dto.StudentProfileResponse, error)
	UpdateProfile(ctx context.Context, callerID int64, req *dto.UpdateProfileRequest) (*dto.UserResponse, error)
	ListStudents(ctx context.Context, caller Caller, input ListStudentsInput) (*dto.StudentListResponse, error)
	Dashboard(ctx context.Context, callerID int64) (*dto.StudentDashboardResponse, error)
	Leaderboard(ctx context.Context, department string, limit int) ([]dto.LeaderboardEntry, error)
	DeleteStudent(ctx context.Context, caller Caller, studentID int64) error
}

type studentService struct {
	userStore     UserStore
	activityStore ActivityStore
	storage       filestorage.FileStorage
}

// NewStudentService creates a new StudentService.
func NewStudentService(userStore UserStore, activityStore ActivityStore, storage filestorage.FileStorage) StudentService {
	return &studentService{
		userStore:     userStore,
		activityStore: activityStore,
		storage:       storage,
	}
}

// GetProfile returns a student profile with statistics and recent
// submissions. Students see their own profile; reviewers see any.
func (s *studentService) GetProfile(ctx context.Context, caller Caller, targetID int64) (*dto.StudentProfileResponse, error) {
	user, err := s.userStore.GetUserByID(ctx, targetID)
	if err != nil {
		return nil, err
	}
	if !policy.CanPerform(caller.Role, policy.OpViewUserStats, targetID, caller.ID) {
		return nil, apperrors.ErrPermissionDenied
	}
	if user.Role != models.RoleStudent {
		return nil, apperrors.ErrStudentNotFound
	}

	activities, _, err := s.activityStore.ListActivities(ctx, repositories.ListActivitiesParams{StudentID: &targetID})
	if err != nil {
		return nil, err
	}

	recent := activities
	if len(recent) > recentActivityCount {
		recent = recent[:recentActivityCount]
	}
	return &dto.StudentProfileResponse{
		Student:          dto.FromUser(user),
		Statistics:       computeStats(activities),
		RecentActivities: dto.FromActivities(recent),
	}, nil
}

// UpdateProfile changes the caller's display attributes. Role, email and
// student number are not mutable here.
func (s *studentService) UpdateProfile(ctx context.Context, callerID int64, req *dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	var department *string
	if req.Department != "" {
		department = &req.Department
	}
	if err := s.userStore.UpdateProfile(ctx, callerID, req.Name, department, req.Year); err != nil {
		return nil, err
	}

	user, err := s.userStore.GetUserByID(ctx, callerID)
	if err != nil {
		return nil, err
	}
	logger.Info().Int64("userID", callerID).Msg("Profile updated")
	resp := dto.FromUser(user)
	return &resp, nil
}

// ListStudents returns the paginated student directory with per-student
// activity totals. Reviewer only.
func (s *studentService) ListStudents(ctx context.Context, caller Caller, input ListStudentsInput) (*dto.StudentListResponse, error) {
	if !policy.CanPerform(caller.Role, policy.OpManageStudents, caller.ID, caller.ID) {
		return nil, apperrors.ErrPermissionDenied
	}

	params := repositories.ListStudentsParams{
		Page: input.Page,
		Size: input.Size,
	}
	if input.Department != "" {
		params.Department = &input.Department
	}
	params.Year = input.Year
	if input.Search != "" {
		params.Search = &input.Search
	}

	students, total, err := s.userStore.ListStudents(ctx, params)
	if err != nil {
		return nil, err
	}

	totals, err := s.userStore.StudentCreditTotals(ctx, nil)
	if err != nil {
		return nil, err
	}
	byUser := make(map[int64]repositories.StudentTotals, len(totals))
	for _, t := range totals {
		byUser[t.UserID] = t
	}

	items := make([]dto.StudentListItem, 0, len(students))
	for _, student := range students {
		item := dto.StudentListItem{UserResponse: dto.FromUser(student)}
		if t, ok := byUser[student.ID]; ok {
			item.TotalCredits = t.TotalCredits
			item.TotalActivities = t.TotalActivities
			item.ApprovedActivities = t.ApprovedActivities
		}
		items = append(items, item)
	}

	return &dto.StudentListResponse{
		Students:   items,
		Pagination: helpers.NewPaginationInfo(total, input.Page, input.Size),
	}, nil
}

// Dashboard returns the caller's own statistics, type breakdown and
// recent submissions.
func (s *studentService) Dashboard(ctx context.Context, callerID int64) (*dto.StudentDashboardResponse, error) {
	activities, _, err := s.activityStore.ListActivities(ctx, repositories.ListActivitiesParams{StudentID: &callerID})
	if err != nil {
		return nil, err
	}

	stats := computeStats(activities)

	byType := make([]dto.TypeCount, 0, len(stats.ActivityByType))
	for _, t := range models.ActivityTypes {
		if count, ok := stats.ActivityByType[string(t)]; ok {
			byType = append(byType, dto.TypeCount{Type: string(t), Count: count})
		}
	}

	recent := activities
	if len(recent) > recentActivityCount {
		recent = recent[:recentActivityCount]
	}
	return &dto.StudentDashboardResponse{
		Stats:            stats,
		ActivityByType:   byType,
		RecentActivities: dto.FromActivities(recent),
	}, nil
}

// Leaderboard ranks students by approved credits, ties broken by
// approved activity count, optionally scoped to a department.
func (s *studentService) Leaderboard(ctx context.Context, department string, limit int) ([]dto.LeaderboardEntry, error) {
	var departmentFilter *string
	if department != "" {
		departmentFilter = &department
	}

	totals, err := s.userStore.StudentCreditTotals(ctx, departmentFilter)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(totals, func(i, j int) bool {
		if totals[i].TotalCredits != totals[j].TotalCredits {
			return totals[i].TotalCredits > totals[j].TotalCredits
		}
		return totals[i].ApprovedActivities > totals[j].ApprovedActivities
	})

	if limit <= 0 {
		limit = defaultLeaderboardSize
	}
	if len(totals) > limit {
		totals = totals[:limit]
	}

	entries := make([]dto.LeaderboardEntry, 0, len(totals))
	for _, t := range totals {
		entries = append(entries, dto.LeaderboardEntry{
			UserID:             t.UserID,
			Name:               t.Name,
			StudentID:          t.StudentID,
			Department:         t.Department,
			Year:               t.Year,
			TotalCredits:       t.TotalCredits,
			TotalActivities:    t.TotalActivities,
			ApprovedActivities: t.ApprovedActivities,
		})
	}
	return entries, nil
}

// DeleteStudent removes a student account with everything it owns.
// Admin only; certificate files of the student's activities are removed
// best effort after the records go.
func (s *studentService) DeleteStudent(ctx context.Context, caller Caller, studentID int64) error {
	if !policy.CanPerform(caller.Role, policy.OpDeleteStudent, studentID, caller.ID) {
		return apperrors.ErrPermissionDenied
	}

	user, err := s.userStore.GetUserByID(ctx, studentID)
	if err != nil {
		return err
	}
	if user.Role != models.RoleStudent {
		return apperrors.ErrStudentNotFound
	}

	certificates, err := s.activityStore.ListCertificatesByStudent(ctx, studentID)
	if err != nil {
		return err
	}

	if err := s.userStore.DeleteUser(ctx, studentID); err != nil {
		return err
	}

	for _, path := range certificates {
		if err := s.storage.DeleteFile(path); err != nil {
			logger.Warn().Err(err).Str("path", path).Msg("Failed to delete certificate during student removal")
		}
	}
	logger.Info().Int64("studentID", studentID).Int64("adminID", caller.ID).Msg("Student account deleted")
	return nil
}

// computeStats aggregates an activity list into the stats block shared
// by profile and dashboard views. Credits only count once approved.
func computeStats(activities []*models.Activity) dto.StudentStats {
	stats := dto.StudentStats{
		TotalActivities: len(activities),
		ActivityByType:  make(map[string]int),
	}
	for _, a := range activities {
		stats.ActivityByType[string(a.Type)]++
		switch a.Status {
		case models.StatusApproved:
			stats.ApprovedActivities++
			stats.TotalCredits += a.Credits
		case models.StatusPending:
			stats.PendingActivities++
		case models.StatusRejected:
			stats.RejectedActivities++
		}
	}
	return stats
}
