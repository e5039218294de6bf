package repositories

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/studenthub/backend/internal/app/models"
	"github.com/studenthub/backend/internal/pkg/apperrors"
	"github.com/studenthub/backend/internal/pkg/logger"
)

// NotificationRepository handles database operations for notifications.
type NotificationRepository struct {
	DB *pgxpool.Pool
}

// NewNotificationRepository creates a new instance of NotificationRepository.
func NewNotificationRepository(db *pgxpool.Pool) *NotificationRepository {
	return &NotificationRepository{DB: db}
}

// CreateNotification inserts a new notification.
func (r *NotificationRepository) CreateNotification(ctx context.Context, n *models.Notification) (int64, error) {
	sql, args, err := squirrel.Insert("notifications").
		Columns("recipient_id", "title", "message", "type", "related_activity_id").
		Values(n.RecipientID, n.Title, n.Message, n.Type, n.RelatedActivityID).
		Suffix("RETURNING id, created_at").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create notification SQL")
		return 0, err
	}

	err = r.DB.QueryRow(ctx, sql, args...).Scan(&n.ID, &n.CreatedAt)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing create notification query")
		return 0, err
	}
	return n.ID, nil
}

// GetNotificationByID retrieves a single notification.
func (r *NotificationRepository) GetNotificationByID(ctx context.Context, id int64) (*models.Notification, error) {
	sqlStr, args, err := squirrel.Select(
		"id", "recipient_id", "title", "message", "type", "related_activity_id", "read", "created_at",
	).From("notifications").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get notification SQL")
		return nil, err
	}

	var n models.Notification
	err = r.DB.QueryRow(ctx, sqlStr, args...).Scan(
		&n.ID, &n.RecipientID, &n.Title, &n.Message, &n.Type,
		&n.RelatedActivityID, &n.Read, &n.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrNotificationNotFound
		}
		logger.Error().Err(err).Msg("Error scanning notification row")
		return nil, err
	}
	return &n, nil
}

// ListByRecipient retrieves a recipient's notifications, newest first,
// capped at limit.
func (r *NotificationRepository) ListByRecipient(ctx context.Context, recipientID int64, limit int) ([]*models.Notification, error) {
	if limit <= 0 {
		limit = 50
	}
	sqlStr, args, err := squirrel.Select(
		"id", "recipient_id", "title", "message", "type", "related_activity_id", "read", "created_at",
	).From("notifications").
		Where(squirrel.Eq{"recipient_id": recipientID}).
		OrderBy("created_at DESC").
		Limit(uint64(limit)).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list notifications SQL")
		return nil, err
	}

	rows, err := r.DB.Query(ctx, sqlStr, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list notifications query")
		return nil, err
	}
	defer rows.Close()

	notifications := make([]*models.Notification, 0)
	for rows.Next() {
		var n models.Notification
		if err := rows.Scan(&n.ID, &n.RecipientID, &n.Title, &n.Message, &n.Type,
			&n.RelatedActivityID, &n.Read, &n.CreatedAt); err != nil {
			logger.Error().Err(err).Msg("Error scanning one notification during list")
			continue
		}
		notifications = append(notifications, &n)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return notifications, nil
}

// MarkRead flags a notification as read.
func (r *NotificationRepository) MarkRead(ctx context.Context, id int64) error {
	sql, args, err := squirrel.Update("notifications").
		Set("read", true).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building mark read SQL")
		return err
	}

	cmdTag, err := r.DB.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing mark read query")
		return err
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotificationNotFound
	}
	return nil
}
