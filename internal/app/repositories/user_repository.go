package repositories

import (
	"context"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/studenthub/backend/internal/app/models"
	"github.com/studenthub/backend/internal/pkg/apperrors"
	"github.com/studenthub/backend/internal/pkg/dberrors"
	"github.com/studenthub/backend/internal/pkg/logger"
)

// StudentTotals is one leaderboard row: a student joined with their
// activity aggregates. Rows come back unordered; ranking happens in the
// service layer.
type StudentTotals struct {
	UserID             int64
	Name               string
	StudentID          *string
	Department         *string
	Year               *int
	TotalCredits       int
	TotalActivities    int
	ApprovedActivities int
}

// ListStudentsParams holds student directory filters and pagination.
type ListStudentsParams struct {
	Department *string
	Year       *int
	Search     *string
	Page       int
	Size       int
}

// UserRepository handles database operations for users.
type UserRepository struct {
	DB *pgxpool.Pool
}

// NewUserRepository creates a new instance of UserRepository.
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) selectUserQuery() squirrel.SelectBuilder {
	return squirrel.Select(
		"id", "name", "email", "password", "role", "student_id", "department", "year", "created_at",
	).From("users").PlaceholderFormat(squirrel.Dollar)
}

func scanUser(row pgx.Row) (*models.User, error) {
	var u models.User
	err := row.Scan(
		&u.ID, &u.Name, &u.Email, &u.Password, &u.Role,
		&u.StudentID, &u.Department, &u.Year, &u.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrUserNotFound
		}
		logger.Error().Err(err).Msg("Error scanning user row")
		return nil, err
	}
	return &u, nil
}

// CreateUser inserts a new user and returns its id.
func (r *UserRepository) CreateUser(ctx context.Context, user *models.User) (int64, error) {
	sql, args, err := squirrel.Insert("users").
		Columns("name", "email", "password", "role", "student_id", "department", "year").
		Values(user.Name, strings.ToLower(user.Email), user.Password, user.Role,
			user.StudentID, user.Department, user.Year).
		Suffix("RETURNING id, created_at").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create user SQL")
		return 0, err
	}

	err = r.DB.QueryRow(ctx, sql, args...).Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		if dberrors.IsUniqueViolation(err, "users_email_key") {
			return 0, apperrors.ErrEmailAlreadyExists
		}
		logger.Error().Err(err).Msg("Error executing create user query")
		return 0, err
	}

	return user.ID, nil
}

// GetUserByID retrieves a single user by id.
func (r *UserRepository) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	sqlStr, args, err := r.selectUserQuery().Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get user by ID SQL")
		return nil, err
	}
	return scanUser(r.DB.QueryRow(ctx, sqlStr, args...))
}

// GetUserByEmail retrieves a single user by email, case-insensitively.
func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	sqlStr, args, err := r.selectUserQuery().
		Where(squirrel.Eq{"email": strings.ToLower(email)}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get user by email SQL")
		return nil, err
	}
	return scanUser(r.DB.QueryRow(ctx, sqlStr, args...))
}

// UpdateProfile updates the mutable profile fields of a user. Role,
// email and student number are deliberately not part of this statement.
func (r *UserRepository) UpdateProfile(ctx context.Context, id int64, name string, department *string, year *int) error {
	sql, args, err := squirrel.Update("users").
		Set("name", name).
		Set("department", department).
		Set("year", year).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building update profile SQL")
		return err
	}

	cmdTag, err := r.DB.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing update profile query")
		return err
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

// DeleteUser removes a user. Owned activities and notifications go with
// it through ON DELETE CASCADE.
func (r *UserRepository) DeleteUser(ctx context.Context, id int64) error {
	sql, args, err := squirrel.Delete("users").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building delete user SQL")
		return err
	}

	cmdTag, err := r.DB.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing delete user query")
		return err
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

// ListStudents retrieves a filtered, paginated slice of student users
// plus the total match count.
func (r *UserRepository) ListStudents(ctx context.Context, params ListStudentsParams) ([]*models.User, int64, error) {
	base := r.selectUserQuery().Where(squirrel.Eq{"role": models.RoleStudent})
	countBuilder := squirrel.Select("count(*)").From("users").
		Where(squirrel.Eq{"role": models.RoleStudent}).
		PlaceholderFormat(squirrel.Dollar)

	if params.Department != nil && *params.Department != "" {
		base = base.Where(squirrel.Eq{"department": *params.Department})
		countBuilder = countBuilder.Where(squirrel.Eq{"department": *params.Department})
	}
	if params.Year != nil {
		base = base.Where(squirrel.Eq{"year": *params.Year})
		countBuilder = countBuilder.Where(squirrel.Eq{"year": *params.Year})
	}
	if params.Search != nil && *params.Search != "" {
		pattern := "%" + *params.Search + "%"
		search := squirrel.Or{
			squirrel.ILike{"name": pattern},
			squirrel.ILike{"email": pattern},
			squirrel.ILike{"student_id": pattern},
		}
		base = base.Where(search)
		countBuilder = countBuilder.Where(search)
	}

	countSql, countArgs, err := countBuilder.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building count students SQL")
		return nil, 0, err
	}
	var total int64
	if err := r.DB.QueryRow(ctx, countSql, countArgs...).Scan(&total); err != nil {
		logger.Error().Err(err).Msg("Error executing count students query")
		return nil, 0, err
	}

	size := params.Size
	if size <= 0 {
		size = 10
	}
	page := params.Page
	if page < 1 {
		page = 1
	}
	base = base.OrderBy("created_at DESC").
		Limit(uint64(size)).
		Offset(uint64((page - 1) * size))

	sqlStr, args, err := base.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list students SQL")
		return nil, 0, err
	}

	rows, err := r.DB.Query(ctx, sqlStr, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list students query")
		return nil, 0, err
	}
	defer rows.Close()

	students := make([]*models.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			logger.Error().Err(err).Msg("Error scanning one student during list")
			continue
		}
		students = append(students, u)
	}
	if err = rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error after iterating student rows")
		return nil, 0, fmt.Errorf("database iteration error: %w", err)
	}

	return students, total, nil
}

// CountStudents counts all users with the student role.
func (r *UserRepository) CountStudents(ctx context.Context) (int64, error) {
	var total int64
	err := r.DB.QueryRow(ctx,
		`SELECT count(*) FROM users WHERE role = $1`, models.RoleStudent).Scan(&total)
	if err != nil {
		logger.Error().Err(err).Msg("Error counting students")
		return 0, err
	}
	return total, nil
}

// CountStudentsByDepartment groups student counts by department. Students
// without a department are reported under the empty string.
func (r *UserRepository) CountStudentsByDepartment(ctx context.Context) (map[string]int64, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT COALESCE(department, ''), count(*) FROM users WHERE role = $1 GROUP BY department`,
		models.RoleStudent)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing department stats query")
		return nil, err
	}
	defer rows.Close()

	stats := make(map[string]int64)
	for rows.Next() {
		var dept string
		var count int64
		if err := rows.Scan(&dept, &count); err != nil {
			logger.Error().Err(err).Msg("Error scanning department stat row")
			continue
		}
		stats[dept] = count
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return stats, nil
}

// StudentCreditTotals joins students with their activity aggregates,
// optionally scoped to a department.
func (r *UserRepository) StudentCreditTotals(ctx context.Context, department *string) ([]StudentTotals, error) {
	builder := squirrel.Select(
		"u.id", "u.name", "u.student_id", "u.department", "u.year",
		"COALESCE(SUM(a.credits) FILTER (WHERE a.status = 'approved'), 0) AS total_credits",
		"COUNT(a.id) AS total_activities",
		"COUNT(a.id) FILTER (WHERE a.status = 'approved') AS approved_activities",
	).From("users u").
		LeftJoin("activities a ON a.student_id = u.id").
		Where(squirrel.Eq{"u.role": models.RoleStudent}).
		GroupBy("u.id", "u.name", "u.student_id", "u.department", "u.year").
		PlaceholderFormat(squirrel.Dollar)

	if department != nil && *department != "" {
		builder = builder.Where(squirrel.Eq{"u.department": *department})
	}

	sqlStr, args, err := builder.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building student credit totals SQL")
		return nil, err
	}

	rows, err := r.DB.Query(ctx, sqlStr, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing student credit totals query")
		return nil, err
	}
	defer rows.Close()

	totals := make([]StudentTotals, 0)
	for rows.Next() {
		var t StudentTotals
		if err := rows.Scan(&t.UserID, &t.Name, &t.StudentID, &t.Department, &t.Year,
			&t.TotalCredits, &t.TotalActivities, &t.ApprovedActivities); err != nil {
			logger.Error().Err(err).Msg("Error scanning student totals row")
			continue
		}
		totals = append(totals, t)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return totals, nil
}
