// Package services contains the business logic between HTTP handlers and
// repositories. Services hold the authorization decisions; handlers only
// translate HTTP to service calls.
package services

import (
	"context"
	"time"

	"github.com/studenthub/backend/internal/app/lifecycle"
	"github.com/studenthub/backend/internal/app/models"
	"github.com/studenthub/backend/internal/app/repositories"
	"github.com/studenthub/backend/internal/pkg/auth"
	"github.com/studenthub/backend/internal/pkg/filestorage"
)

// UserStore is the slice of the user repository the services consume.
type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) (int64, error)
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateProfile(ctx context.Context, id int64, name string, department *string, year *int) error
	DeleteUser(ctx context.Context, id int64) error
	ListStudents(ctx context.Context, params repositories.ListStudentsParams) ([]*models.User, int64, error)
	CountStudents(ctx context.Context) (int64, error)
	CountStudentsByDepartment(ctx context.Context) (map[string]int64, error)
	StudentCreditTotals(ctx context.Context, department *string) ([]repositories.StudentTotals, error)
}

// ActivityStore is the slice of the activity repository the services consume.
type ActivityStore interface {
	CreateActivity(ctx context.Context, activity *models.Activity) (int64, error)
	GetActivityByID(ctx context.Context, id int64) (*models.Activity, error)
	ListActivities(ctx context.Context, params repositories.ListActivitiesParams) ([]*models.Activity, int64, error)
	ListByStudentSince(ctx context.Context, studentID int64, since time.Time) ([]*models.Activity, error)
	ListApprovedByStudent(ctx context.Context, studentID int64) ([]*models.Activity, error)
	ListApprovedBetween(ctx context.Context, from, to *time.Time) ([]*models.Activity, error)
	UpdateDecision(ctx context.Context, id int64, decision lifecycle.Decision) error
	BulkUpdateDecision(ctx context.Context, ids []int64, decision lifecycle.Decision) (int64, error)
	DeleteActivity(ctx context.Context, id int64) error
	StatusCounts(ctx context.Context) (map[models.ActivityStatus]int64, error)
	ListCertificatesByStudent(ctx context.Context, studentID int64) ([]string, error)
}

// NotificationStore is the slice of the notification repository the
// services consume.
type NotificationStore interface {
	CreateNotification(ctx context.Context, n *models.Notification) (int64, error)
	GetNotificationByID(ctx context.Context, id int64) (*models.Notification, error)
	ListByRecipient(ctx context.Context, recipientID int64, limit int) ([]*models.Notification, error)
	MarkRead(ctx context.Context, id int64) error
}

// Services bundles every service for dependency injection.
type Services struct {
	Auth         AuthService
	Activity     ActivityService
	Student      StudentService
	Analytics    AnalyticsService
	Portfolio    PortfolioService
	Notification NotificationService
	Faculty      FacultyService
}

// NewServices wires the services onto the repositories.
func NewServices(repos *repositories.Repositories, jwtService *auth.JWTService, storage filestorage.FileStorage) *Services {
	notification := NewNotificationService(repos.Notification)
	return &Services{
		Auth:         NewAuthService(repos.User, jwtService),
		Activity:     NewActivityService(repos.Activity, storage, notification),
		Student:      NewStudentService(repos.User, repos.Activity, storage),
		Analytics:    NewAnalyticsService(repos.Activity),
		Portfolio:    NewPortfolioService(repos.User, repos.Activity),
		Notification: notification,
		Faculty:      NewFacultyService(repos.User, repos.Activity),
	}
}
