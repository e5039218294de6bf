package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories bundles every repository for dependency injection
type Repositories struct {
	User         *UserRepository
	Activity     *ActivityRepository
	Notification *NotificationRepository
}

// NewRepositories creates the repository container
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		User:         NewUserRepository(db),
		Activity:     NewActivityRepository(db),
		Notification: NewNotificationRepository(db),
	}
}
