package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/yigit/mentorium/internal/app/models"
	"github.com/yigit/mentorium/internal/db"
	"github.com/yigit/mentorium/internal/pkg/apperrors"
	"github.com/yigit/mentorium/internal/pkg/dberrors"
	"github.com/yigit/mentorium/internal/pkg/logger"
)

const usersEmailKey = "users_pkey"

var userColumns = []string{
	"email", "name", "photo", "role", "teacher_application",
	"enrolled_classes::text[]", "created_at", "updated_at",
}

// UserRepository handles user database operations
type UserRepository struct {
	db *db.PostgresDB
	sb squirrel.StatementBuilderType
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(database *db.PostgresDB) *UserRepository {
	return &UserRepository{
		db: database,
		sb: statementBuilder(),
	}
}

func scanUser(row pgx.Row) (*models.User, error) {
	user := &models.User{}
	err := row.Scan(
		&user.Email, &user.Name, &user.Photo, &user.Role, &user.TeacherApplication,
		&user.EnrolledClasses, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if user.EnrolledClasses == nil {
		user.EnrolledClasses = []string{}
	}
	return user, nil
}

func (r *UserRepository) queryUsers(ctx context.Context, query squirrel.SelectBuilder) ([]*models.User, error) {
	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build users query: %w", err)
	}

	rows, err := r.db.Conn(ctx).Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]*models.User, 0)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user row: %w", err)
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

// CreateUser inserts a new user
func (r *UserRepository) CreateUser(ctx context.Context, user *models.User) error {
	row := r.db.Conn(ctx).QueryRow(ctx, `
		INSERT INTO users (email, name, photo, role)
		VALUES ($1, $2, $3, $4)
		RETURNING `+joinColumns(userColumns),
		user.Email, user.Name, user.Photo, user.Role)

	created, err := scanUser(row)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, usersEmailKey) {
			return apperrors.ErrEmailAlreadyExists
		}
		return fmt.Errorf("error creating user: %w", err)
	}

	*user = *created
	return nil
}

// GetUserByEmail retrieves a user by email
func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	query := r.sb.Select(userColumns...).From("users").Where(squirrel.Eq{"email": email})
	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build user query: %w", err)
	}

	user, err := scanUser(r.db.Conn(ctx).QueryRow(ctx, sql, args...))
	if err != nil {
		if dberrors.IsNoRows(err) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error fetching user: %w", err)
	}
	return user, nil
}

// GetUsersByEmails returns the users matching emails keyed by email. Unknown emails are
// absent from the map.
func (r *UserRepository) GetUsersByEmails(ctx context.Context, emails []string) (map[string]*models.User, error) {
	result := make(map[string]*models.User, len(emails))
	if len(emails) == 0 {
		return result, nil
	}

	users, err := r.queryUsers(ctx, r.sb.Select(userColumns...).From("users").Where(squirrel.Eq{"email": emails}))
	if err != nil {
		return nil, fmt.Errorf("error fetching users by email: %w", err)
	}
	for _, u := range users {
		result[u.Email] = u
	}
	return result, nil
}

// ListUsers returns one page of users, newest first, with the total count.
func (r *UserRepository) ListUsers(ctx context.Context, offset, limit uint64) ([]*models.User, int64, error) {
	var total int64
	if err := r.db.Conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&total); err != nil {
		logger.Error().Err(err).Msg("Error counting users")
		return nil, 0, fmt.Errorf("failed to count users: %w", err)
	}

	query := r.sb.Select(userColumns...).From("users").
		OrderBy("created_at DESC", "email").
		Offset(offset).Limit(limit)

	users, err := r.queryUsers(ctx, query)
	if err != nil {
		logger.Error().Err(err).Msg("Error listing users")
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}
	return users, total, nil
}

// SearchUsers matches pattern as a case-insensitive regular expression against name or email,
// newest first. An empty pattern returns every user.
func (r *UserRepository) SearchUsers(ctx context.Context, pattern string) ([]*models.User, error) {
	query := r.sb.Select(userColumns...).From("users").OrderBy("created_at DESC", "email")
	if pattern != "" {
		query = query.Where(squirrel.Or{
			squirrel.Expr("name ~* ?", pattern),
			squirrel.Expr("email ~* ?", pattern),
		})
	}

	users, err := r.queryUsers(ctx, query)
	if err != nil {
		if dberrors.IsInvalidRegexError(err) {
			return nil, apperrors.NewCustomError(apperrors.ErrInvalidSearchPattern, err.Error())
		}
		return nil, fmt.Errorf("failed to search users: %w", err)
	}
	return users, nil
}

// SubmitTeacherApplication moves a student to pending and stores the application. It
// returns ErrApplicationNotAllowed when the user is no longer a student.
func (r *UserRepository) SubmitTeacherApplication(ctx context.Context, email string, app *models.TeacherApplication) (*models.User, error) {
	row := r.db.Conn(ctx).QueryRow(ctx, `
		UPDATE users
		SET role = $2, teacher_application = $3, updated_at = NOW()
		WHERE email = $1 AND role = $4
		RETURNING `+joinColumns(userColumns),
		email, models.RolePending, app, models.RoleStudent)

	user, err := scanUser(row)
	if err != nil {
		if dberrors.IsNoRows(err) {
			return nil, apperrors.ErrApplicationNotAllowed
		}
		return nil, fmt.Errorf("failed to submit teacher application: %w", err)
	}
	return user, nil
}

// ListPendingApplications returns users whose teacher application awaits review.
func (r *UserRepository) ListPendingApplications(ctx context.Context) ([]*models.User, error) {
	query := r.sb.Select(userColumns...).From("users").
		Where(squirrel.Expr("teacher_application->>'status' = ?", string(models.ApplicationPending))).
		OrderBy("(teacher_application->>'appliedAt') DESC")

	users, err := r.queryUsers(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending applications: %w", err)
	}
	return users, nil
}

// ResolveApplication sets role and application status in one statement, only if the
// application is still pending. It reports whether a row changed.
func (r *UserRepository) ResolveApplication(ctx context.Context, email string, role models.RoleType, status models.ApplicationStatus) (bool, error) {
	tag, err := r.db.Conn(ctx).Exec(ctx, `
		UPDATE users
		SET role = $2,
		    teacher_application = jsonb_set(teacher_application, '{status}', to_jsonb($3::text)),
		    updated_at = NOW()
		WHERE email = $1 AND teacher_application->>'status' = $4`,
		email, role, string(status), string(models.ApplicationPending))
	if err != nil {
		return false, fmt.Errorf("failed to resolve teacher application: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// MakeAdmin promotes a user. It reports false when the user is missing or already admin.
func (r *UserRepository) MakeAdmin(ctx context.Context, email string) (bool, error) {
	tag, err := r.db.Conn(ctx).Exec(ctx, `
		UPDATE users SET role = $2, updated_at = NOW()
		WHERE email = $1 AND role <> $2`,
		email, models.RoleAdmin)
	if err != nil {
		return false, fmt.Errorf("failed to promote user: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// AddEnrolledClass adds classID to the user's enrolled set. Adding an existing id is a no-op.
func (r *UserRepository) AddEnrolledClass(ctx context.Context, email, classID string) error {
	_, err := r.db.Conn(ctx).Exec(ctx, `
		UPDATE users
		SET enrolled_classes = array_append(enrolled_classes, $2::uuid), updated_at = NOW()
		WHERE email = $1 AND NOT ($2::uuid = ANY(enrolled_classes))`,
		email, classID)
	if err != nil {
		return fmt.Errorf("failed to add enrolled class: %w", err)
	}
	return nil
}

// CountUsers returns the number of registered users.
func (r *UserRepository) CountUsers(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.Conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return count, nil
}
