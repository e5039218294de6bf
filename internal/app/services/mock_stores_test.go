package services

import (
	"context"
	"mime/multipart"
	"sort"
	"strings"
	"time"

	"github.com/studenthub/backend/internal/app/lifecycle"
	"github.com/studenthub/backend/internal/app/models"
	"github.com/studenthub/backend/internal/app/repositories"
	"github.com/studenthub/backend/internal/pkg/apperrors"
)

// In-memory stores backing the service tests. They mirror the repository
// contracts, including the sentinel errors.

type mockUserStore struct {
	users  map[int64]*models.User
	totals []repositories.StudentTotals
	nextID int64
}

func newMockUserStore() *mockUserStore {
	return &mockUserStore{users: make(map[int64]*models.User), nextID: 1}
}

func (m *mockUserStore) add(u *models.User) *models.User {
	if u.ID == 0 {
		u.ID = m.nextID
		m.nextID++
	} else if u.ID >= m.nextID {
		m.nextID = u.ID + 1
	}
	m.users[u.ID] = u
	return u
}

func (m *mockUserStore) CreateUser(_ context.Context, user *models.User) (int64, error) {
	for _, existing := range m.users {
		if existing.Email == user.Email {
			return 0, apperrors.ErrEmailAlreadyExists
		}
	}
	m.add(user)
	return user.ID, nil
}

func (m *mockUserStore) GetUserByID(_ context.Context, id int64) (*models.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return u, nil
}

func (m *mockUserStore) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (m *mockUserStore) UpdateProfile(_ context.Context, id int64, name string, department *string, year *int) error {
	u, ok := m.users[id]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	u.Name = name
	u.Department = department
	u.Year = year
	return nil
}

func (m *mockUserStore) DeleteUser(_ context.Context, id int64) error {
	if _, ok := m.users[id]; !ok {
		return apperrors.ErrUserNotFound
	}
	delete(m.users, id)
	return nil
}

func (m *mockUserStore) ListStudents(_ context.Context, params repositories.ListStudentsParams) ([]*models.User, int64, error) {
	var out []*models.User
	for _, u := range m.users {
		if u.Role != models.RoleStudent {
			continue
		}
		if params.Department != nil && (u.Department == nil || *u.Department != *params.Department) {
			continue
		}
		if params.Year != nil && (u.Year == nil || *u.Year != *params.Year) {
			continue
		}
		if params.Search != nil && !strings.Contains(strings.ToLower(u.Name), strings.ToLower(*params.Search)) {
			continue
		}
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, int64(len(out)), nil
}

func (m *mockUserStore) CountStudents(_ context.Context) (int64, error) {
	var n int64
	for _, u := range m.users {
		if u.Role == models.RoleStudent {
			n++
		}
	}
	return n, nil
}

func (m *mockUserStore) CountStudentsByDepartment(_ context.Context) (map[string]int64, error) {
	out := make(map[string]int64)
	for _, u := range m.users {
		if u.Role == models.RoleStudent && u.Department != nil {
			out[*u.Department]++
		}
	}
	return out, nil
}

func (m *mockUserStore) StudentCreditTotals(_ context.Context, department *string) ([]repositories.StudentTotals, error) {
	if department == nil {
		return m.totals, nil
	}
	var out []repositories.StudentTotals
	for _, t := range m.totals {
		if t.Department != nil && *t.Department == *department {
			out = append(out, t)
		}
	}
	return out, nil
}

type mockActivityStore struct {
	activities map[int64]*models.Activity
	nextID     int64
	createErr  error
}

func newMockActivityStore() *mockActivityStore {
	return &mockActivityStore{activities: make(map[int64]*models.Activity), nextID: 1}
}

func (m *mockActivityStore) add(a *models.Activity) *models.Activity {
	if a.ID == 0 {
		a.ID = m.nextID
		m.nextID++
	} else if a.ID >= m.nextID {
		m.nextID = a.ID + 1
	}
	if a.Status == "" {
		a.Status = models.StatusPending
	}
	m.activities[a.ID] = a
	return a
}

func (m *mockActivityStore) CreateActivity(_ context.Context, activity *models.Activity) (int64, error) {
	if m.createErr != nil {
		return 0, m.createErr
	}
	m.add(activity)
	return activity.ID, nil
}

func (m *mockActivityStore) GetActivityByID(_ context.Context, id int64) (*models.Activity, error) {
	a, ok := m.activities[id]
	if !ok {
		return nil, apperrors.ErrActivityNotFound
	}
	return a, nil
}

func (m *mockActivityStore) ListActivities(_ context.Context, params repositories.ListActivitiesParams) ([]*models.Activity, int64, error) {
	var out []*models.Activity
	for _, a := range m.activities {
		if params.StudentID != nil && a.StudentID != *params.StudentID {
			continue
		}
		if params.Status != nil && a.Status != *params.Status {
			continue
		}
		if params.Type != nil && a.Type != *params.Type {
			continue
		}
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, int64(len(out)), nil
}

func (m *mockActivityStore) ListByStudentSince(_ context.Context, studentID int64, since time.Time) ([]*models.Activity, error) {
	var out []*models.Activity
	for _, a := range m.activities {
		if a.StudentID == studentID && !a.CreatedAt.Before(since) {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (m *mockActivityStore) ListApprovedByStudent(_ context.Context, studentID int64) ([]*models.Activity, error) {
	var out []*models.Activity
	for _, a := range m.activities {
		if a.StudentID == studentID && a.Status == models.StatusApproved {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

func (m *mockActivityStore) ListApprovedBetween(_ context.Context, from, to *time.Time) ([]*models.Activity, error) {
	var out []*models.Activity
	for _, a := range m.activities {
		if a.Status != models.StatusApproved {
			continue
		}
		if from != nil && a.Date.Before(*from) {
			continue
		}
		if to != nil && a.Date.After(*to) {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

func (m *mockActivityStore) UpdateDecision(_ context.Context, id int64, decision lifecycle.Decision) error {
	a, ok := m.activities[id]
	if !ok {
		return apperrors.ErrActivityNotFound
	}
	lifecycle.Apply(a, decision)
	return nil
}

func (m *mockActivityStore) BulkUpdateDecision(_ context.Context, ids []int64, decision lifecycle.Decision) (int64, error) {
	var modified int64
	for _, id := range ids {
		if a, ok := m.activities[id]; ok {
			lifecycle.Apply(a, decision)
			modified++
		}
	}
	return modified, nil
}

func (m *mockActivityStore) DeleteActivity(_ context.Context, id int64) error {
	if _, ok := m.activities[id]; !ok {
		return apperrors.ErrActivityNotFound
	}
	delete(m.activities, id)
	return nil
}

func (m *mockActivityStore) StatusCounts(_ context.Context) (map[models.ActivityStatus]int64, error) {
	out := make(map[models.ActivityStatus]int64)
	for _, a := range m.activities {
		out[a.Status]++
	}
	return out, nil
}

func (m *mockActivityStore) ListCertificatesByStudent(_ context.Context, studentID int64) ([]string, error) {
	var out []string
	for _, a := range m.activities {
		if a.StudentID == studentID && a.Certificate != nil {
			out = append(out, *a.Certificate)
		}
	}
	return out, nil
}

type mockNotificationStore struct {
	notifications map[int64]*models.Notification
	nextID        int64
}

func newMockNotificationStore() *mockNotificationStore {
	return &mockNotificationStore{notifications: make(map[int64]*models.Notification), nextID: 1}
}

func (m *mockNotificationStore) CreateNotification(_ context.Context, n *models.Notification) (int64, error) {
	n.ID = m.nextID
	m.nextID++
	n.CreatedAt = time.Now()
	m.notifications[n.ID] = n
	return n.ID, nil
}

func (m *mockNotificationStore) GetNotificationByID(_ context.Context, id int64) (*models.Notification, error) {
	n, ok := m.notifications[id]
	if !ok {
		return nil, apperrors.ErrNotificationNotFound
	}
	return n, nil
}

func (m *mockNotificationStore) ListByRecipient(_ context.Context, recipientID int64, limit int) ([]*models.Notification, error) {
	var out []*models.Notification
	for _, n := range m.notifications {
		if n.RecipientID == recipientID {
			out = append(out, n)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *mockNotificationStore) MarkRead(_ context.Context, id int64) error {
	n, ok := m.notifications[id]
	if !ok {
		return apperrors.ErrNotificationNotFound
	}
	n.Read = true
	return nil
}

// mockStorage records saved and deleted certificate paths.
type mockStorage struct {
	saved   []string
	deleted []string
	saveErr error
}

func (m *mockStorage) SaveCertificate(fileHeader *multipart.FileHeader) (string, error) {
	if m.saveErr != nil {
		return "", m.saveErr
	}
	path := "uploads/cert-" + fileHeader.Filename
	m.saved = append(m.saved, path)
	return path, nil
}

func (m *mockStorage) DeleteFile(filePath string) error {
	m.deleted = append(m.deleted, filePath)
	return nil
}

func (m *mockStorage) GetFullPath(filePath string) string {
	return "/tmp/" + filePath
}

// fakeFileHeader builds a header the mock storage accepts; only the
// filename matters because the mock never opens the file.
func fakeFileHeader(name string) *multipart.FileHeader {
	return &multipart.FileHeader{Filename: name, Size: 1024}
}
