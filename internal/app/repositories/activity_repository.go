package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/studenthub/backend/internal/app/lifecycle"
	"github.com/studenthub/backend/internal/app/models"
	"github.com/studenthub/backend/internal/pkg/apperrors"
	"github.com/studenthub/backend/internal/pkg/logger"
)

// ListActivitiesParams holds activity list filters and pagination. A zero
// Size disables pagination and returns every match.
type ListActivitiesParams struct {
	StudentID *int64
	Status    *models.ActivityStatus
	Type      *models.ActivityType
	Page      int
	Size      int
}

// ActivityRepository handles database operations for activities.
type ActivityRepository struct {
	DB *pgxpool.Pool
}

// NewActivityRepository creates a new instance of ActivityRepository.
func NewActivityRepository(db *pgxpool.Pool) *ActivityRepository {
	return &ActivityRepository{DB: db}
}

// Common select query builder joining the owning student.
func (r *ActivityRepository) selectActivityQuery() squirrel.SelectBuilder {
	return squirrel.Select(
		"a.id", "a.student_id", "a.title", "a.type", "a.description", "a.organizer",
		"a.activity_date", "a.duration", "a.certificate", "a.status", "a.credits",
		"a.approved_by", "a.created_at",
		"u.id", "u.name", "u.email", "u.role", "u.student_id", "u.department", "u.year", "u.created_at",
	).From("activities a").
		Join("users u ON a.student_id = u.id").
		PlaceholderFormat(squirrel.Dollar)
}

func scanActivity(row pgx.Row) (*models.Activity, error) {
	var a models.Activity
	var u models.User
	err := row.Scan(
		&a.ID, &a.StudentID, &a.Title, &a.Type, &a.Description, &a.Organizer,
		&a.Date, &a.Duration, &a.Certificate, &a.Status, &a.Credits,
		&a.ApprovedBy, &a.CreatedAt,
		&u.ID, &u.Name, &u.Email, &u.Role, &u.StudentID, &u.Department, &u.Year, &u.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrActivityNotFound
		}
		logger.Error().Err(err).Msg("Error scanning activity row")
		return nil, err
	}
	a.Student = &u
	return &a, nil
}

// CreateActivity inserts a new activity. Status, credits and approved_by
// take their column defaults (pending, 0, NULL); the caller cannot set
// them at creation.
func (r *ActivityRepository) CreateActivity(ctx context.Context, activity *models.Activity) (int64, error) {
	sql, args, err := squirrel.Insert("activities").
		Columns("student_id", "title", "type", "description", "organizer",
			"activity_date", "duration", "certificate").
		Values(activity.StudentID, activity.Title, activity.Type, activity.Description,
			activity.Organizer, activity.Date, activity.Duration, activity.Certificate).
		Suffix("RETURNING id, status, credits, created_at").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create activity SQL")
		return 0, err
	}

	err = r.DB.QueryRow(ctx, sql, args...).
		Scan(&activity.ID, &activity.Status, &activity.Credits, &activity.CreatedAt)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing create activity query")
		return 0, err
	}

	return activity.ID, nil
}

// GetActivityByID retrieves a single activity with its student.
func (r *ActivityRepository) GetActivityByID(ctx context.Context, id int64) (*models.Activity, error) {
	sqlStr, args, err := r.selectActivityQuery().Where(squirrel.Eq{"a.id": id}).ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get activity by ID SQL")
		return nil, err
	}
	return scanActivity(r.DB.QueryRow(ctx, sqlStr, args...))
}

// ListActivities retrieves a filtered list of activities, newest first,
// plus the total match count.
func (r *ActivityRepository) ListActivities(ctx context.Context, params ListActivitiesParams) ([]*models.Activity, int64, error) {
	base := r.selectActivityQuery()
	countBuilder := squirrel.Select("count(*)").From("activities a").
		PlaceholderFormat(squirrel.Dollar)

	if params.StudentID != nil {
		base = base.Where(squirrel.Eq{"a.student_id": *params.StudentID})
		countBuilder = countBuilder.Where(squirrel.Eq{"a.student_id": *params.StudentID})
	}
	if params.Status != nil {
		base = base.Where(squirrel.Eq{"a.status": *params.Status})
		countBuilder = countBuilder.Where(squirrel.Eq{"a.status": *params.Status})
	}
	if params.Type != nil {
		base = base.Where(squirrel.Eq{"a.type": *params.Type})
		countBuilder = countBuilder.Where(squirrel.Eq{"a.type": *params.Type})
	}

	countSql, countArgs, err := countBuilder.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building count activities SQL")
		return nil, 0, err
	}
	var total int64
	if err := r.DB.QueryRow(ctx, countSql, countArgs...).Scan(&total); err != nil {
		logger.Error().Err(err).Msg("Error executing count activities query")
		return nil, 0, err
	}

	base = base.OrderBy("a.created_at DESC")
	if params.Size > 0 {
		page := params.Page
		if page < 1 {
			page = 1
		}
		base = base.Limit(uint64(params.Size)).Offset(uint64((page - 1) * params.Size))
	}

	sqlStr, args, err := base.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list activities SQL")
		return nil, 0, err
	}

	activities, err := r.queryActivities(ctx, sqlStr, args)
	if err != nil {
		return nil, 0, err
	}
	return activities, total, nil
}

// ListByStudentSince retrieves a student's activities created at or after
// the given time, chronologically ascending. Used by the analytics window.
func (r *ActivityRepository) ListByStudentSince(ctx context.Context, studentID int64, since time.Time) ([]*models.Activity, error) {
	sqlStr, args, err := r.selectActivityQuery().
		Where(squirrel.Eq{"a.student_id": studentID}).
		Where(squirrel.GtOrEq{"a.created_at": since}).
		OrderBy("a.created_at ASC").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list by student since SQL")
		return nil, err
	}
	return r.queryActivities(ctx, sqlStr, args)
}

// ListApprovedByStudent retrieves a student's approved activities,
// newest occurrence first. Used by portfolio assembly.
func (r *ActivityRepository) ListApprovedByStudent(ctx context.Context, studentID int64) ([]*models.Activity, error) {
	sqlStr, args, err := r.selectActivityQuery().
		Where(squirrel.Eq{"a.student_id": studentID, "a.status": models.StatusApproved}).
		OrderBy("a.activity_date DESC").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list approved by student SQL")
		return nil, err
	}
	return r.queryActivities(ctx, sqlStr, args)
}

// ListApprovedBetween retrieves approved activities whose occurrence date
// falls in the window, newest first. Nil bounds are open.
func (r *ActivityRepository) ListApprovedBetween(ctx context.Context, from, to *time.Time) ([]*models.Activity, error) {
	builder := r.selectActivityQuery().
		Where(squirrel.Eq{"a.status": models.StatusApproved}).
		OrderBy("a.activity_date DESC")
	if from != nil {
		builder = builder.Where(squirrel.GtOrEq{"a.activity_date": *from})
	}
	if to != nil {
		builder = builder.Where(squirrel.LtOrEq{"a.activity_date": *to})
	}

	sqlStr, args, err := builder.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list approved between SQL")
		return nil, err
	}
	return r.queryActivities(ctx, sqlStr, args)
}

func (r *ActivityRepository) queryActivities(ctx context.Context, sqlStr string, args []interface{}) ([]*models.Activity, error) {
	rows, err := r.DB.Query(ctx, sqlStr, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing activity list query")
		return nil, err
	}
	defer rows.Close()

	activities := make([]*models.Activity, 0)
	for rows.Next() {
		a, err := scanActivity(rows)
		if err != nil {
			logger.Error().Err(err).Msg("Error scanning one activity during list")
			continue
		}
		activities = append(activities, a)
	}
	if err = rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error after iterating activity rows")
		return nil, fmt.Errorf("database iteration error: %w", err)
	}
	return activities, nil
}

// UpdateDecision writes a lifecycle decision. Status, credits and
// approved_by move in one statement so they can never diverge.
func (r *ActivityRepository) UpdateDecision(ctx context.Context, id int64, decision lifecycle.Decision) error {
	sql, args, err := squirrel.Update("activities").
		Set("status", decision.Status).
		Set("credits", decision.Credits).
		Set("approved_by", decision.ApprovedBy).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building update decision SQL")
		return err
	}

	cmdTag, err := r.DB.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing update decision query")
		return err
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrActivityNotFound
	}
	return nil
}

// BulkUpdateDecision applies one decision to every listed activity that
// still exists and returns how many rows were modified. Vanished ids are
// skipped, not reported.
func (r *ActivityRepository) BulkUpdateDecision(ctx context.Context, ids []int64, decision lifecycle.Decision) (int64, error) {
	sql, args, err := squirrel.Update("activities").
		Set("status", decision.Status).
		Set("credits", decision.Credits).
		Set("approved_by", decision.ApprovedBy).
		Where(squirrel.Eq{"id": ids}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building bulk update SQL")
		return 0, err
	}

	cmdTag, err := r.DB.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing bulk update query")
		return 0, err
	}
	return cmdTag.RowsAffected(), nil
}

// DeleteActivity deletes an activity by id.
func (r *ActivityRepository) DeleteActivity(ctx context.Context, id int64) error {
	sql, args, err := squirrel.Delete("activities").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building delete activity SQL")
		return err
	}

	cmdTag, err := r.DB.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing delete activity query")
		return err
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrActivityNotFound
	}
	return nil
}

// StatusCounts counts activities grouped by status across the whole
// store.
func (r *ActivityRepository) StatusCounts(ctx context.Context) (map[models.ActivityStatus]int64, error) {
	rows, err := r.DB.Query(ctx, `SELECT status, count(*) FROM activities GROUP BY status`)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing status counts query")
		return nil, err
	}
	defer rows.Close()

	counts := make(map[models.ActivityStatus]int64)
	for rows.Next() {
		var status models.ActivityStatus
		var count int64
		if err := rows.Scan(&status, &count); err != nil {
			logger.Error().Err(err).Msg("Error scanning status count row")
			continue
		}
		counts[status] = count
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return counts, nil
}

// ListCertificatesByStudent returns the stored certificate paths of a
// student's activities. Used for best-effort file cleanup before a
// cascade delete.
func (r *ActivityRepository) ListCertificatesByStudent(ctx context.Context, studentID int64) ([]string, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT certificate FROM activities WHERE student_id = $1 AND certificate IS NOT NULL`,
		studentID)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list certificates query")
		return nil, err
	}
	defer rows.Close()

	paths := make([]string, 0)
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			logger.Error().Err(err).Msg("Error scanning certificate row")
			continue
		}
		paths = append(paths, p)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return paths, nil
}
