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

var classColumns = []string{
	"id::text", "title", "description", "image", "category", "price::float8",
	"available_seats", "total_enrolled", "assignment_count", "status",
	"instructor_name", "instructor_email", "created_at", "updated_at",
}

// ClassRepository handles class database operations
type ClassRepository struct {
	db *db.PostgresDB
	sb squirrel.StatementBuilderType
}

// NewClassRepository creates a new ClassRepository
func NewClassRepository(database *db.PostgresDB) *ClassRepository {
	return &ClassRepository{
		db: database,
		sb: statementBuilder(),
	}
}

func scanClass(row pgx.Row) (*models.Class, error) {
	class := &models.Class{}
	err := row.Scan(
		&class.ID, &class.Title, &class.Description, &class.Image, &class.Category, &class.Price,
		&class.AvailableSeats, &class.TotalEnrolled, &class.AssignmentCount, &class.Status,
		&class.InstructorName, &class.InstructorEmail, &class.CreatedAt, &class.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return class, nil
}

func (r *ClassRepository) queryClasses(ctx context.Context, query squirrel.SelectBuilder) ([]*models.Class, error) {
	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build classes query: %w", err)
	}

	rows, err := r.db.Conn(ctx).Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	classes := make([]*models.Class, 0)
	for rows.Next() {
		class, err := scanClass(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan class row: %w", err)
		}
		classes = append(classes, class)
	}
	return classes, rows.Err()
}

func (r *ClassRepository) queryClass(ctx context.Context, sql string, args ...any) (*models.Class, error) {
	class, err := scanClass(r.db.Conn(ctx).QueryRow(ctx, sql, args...))
	if err != nil {
		if dberrors.IsNoRows(err) {
			return nil, apperrors.ErrClassNotFound
		}
		if dberrors.IsInvalidTextRepresentation(err) {
			return nil, apperrors.ErrInvalidClassID
		}
		return nil, err
	}
	return class, nil
}

// CreateClass inserts a class and fills in its generated fields
func (r *ClassRepository) CreateClass(ctx context.Context, class *models.Class) error {
	created, err := r.queryClass(ctx, `
		INSERT INTO classes (title, description, image, category, price, available_seats,
		                     status, instructor_name, instructor_email)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING `+joinColumns(classColumns),
		class.Title, class.Description, class.Image, class.Category, class.Price,
		class.AvailableSeats, class.Status, class.InstructorName, class.InstructorEmail)
	if err != nil {
		logger.Error().Err(err).Str("instructorEmail", class.InstructorEmail).Msg("Error creating class")
		return fmt.Errorf("error creating class: %w", err)
	}

	*class = *created
	return nil
}

// GetClassByID retrieves a class by id
func (r *ClassRepository) GetClassByID(ctx context.Context, id string) (*models.Class, error) {
	query := r.sb.Select(classColumns...).From("classes").Where(squirrel.Eq{"id": id})
	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build class query: %w", err)
	}

	class, err := r.queryClass(ctx, sql, args...)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrClassNotFound, apperrors.ErrInvalidClassID) {
			return nil, err
		}
		return nil, fmt.Errorf("error fetching class: %w", err)
	}
	return class, nil
}

// GetClassesByIDs fetches every class in ids in one round trip. Missing ids are skipped.
func (r *ClassRepository) GetClassesByIDs(ctx context.Context, ids []string) ([]*models.Class, error) {
	if len(ids) == 0 {
		return []*models.Class{}, nil
	}

	query := r.sb.Select(classColumns...).From("classes").
		Where("id = ANY(?::uuid[])", ids).
		OrderBy("created_at DESC")

	classes, err := r.queryClasses(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error fetching classes by id: %w", err)
	}
	return classes, nil
}

// ListClasses returns classes matching the given filters, newest first. A nil status lists
// every status.
func (r *ClassRepository) ListClasses(ctx context.Context, status *models.ClassStatus, instructorEmail string) ([]*models.Class, error) {
	query := r.sb.Select(classColumns...).From("classes").OrderBy("created_at DESC")

	where := squirrel.And{}
	if status != nil {
		where = append(where, squirrel.Eq{"status": *status})
	}
	if instructorEmail != "" {
		where = append(where, squirrel.Eq{"instructor_email": instructorEmail})
	}
	if len(where) > 0 {
		query = query.Where(where)
	}

	classes, err := r.queryClasses(ctx, query)
	if err != nil {
		logger.Error().Err(err).Msg("Error listing classes")
		return nil, fmt.Errorf("failed to list classes: %w", err)
	}
	return classes, nil
}

// ListPopularClasses returns the approved classes with the most enrollments.
func (r *ClassRepository) ListPopularClasses(ctx context.Context, limit uint64) ([]*models.Class, error) {
	query := r.sb.Select(classColumns...).From("classes").
		Where(squirrel.Eq{"status": models.ClassApproved}).
		OrderBy("total_enrolled DESC", "created_at DESC").
		Limit(limit)

	classes, err := r.queryClasses(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list popular classes: %w", err)
	}
	return classes, nil
}

// UpdateClass applies the non-nil fields of patch and returns the updated class.
func (r *ClassRepository) UpdateClass(ctx context.Context, id string, patch models.ClassPatch) (*models.Class, error) {
	set := map[string]interface{}{"updated_at": squirrel.Expr("NOW()")}
	if patch.Title != nil {
		set["title"] = *patch.Title
	}
	if patch.Description != nil {
		set["description"] = *patch.Description
	}
	if patch.Image != nil {
		set["image"] = *patch.Image
	}
	if patch.Category != nil {
		set["category"] = *patch.Category
	}
	if patch.Price != nil {
		set["price"] = *patch.Price
	}
	if patch.AvailableSeats != nil {
		set["available_seats"] = *patch.AvailableSeats
	}
	if patch.InstructorName != nil {
		set["instructor_name"] = *patch.InstructorName
	}

	query := r.sb.Update("classes").SetMap(set).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING " + joinColumns(classColumns))
	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build class update: %w", err)
	}

	class, err := r.queryClass(ctx, sql, args...)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrClassNotFound, apperrors.ErrInvalidClassID) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update class: %w", err)
	}
	return class, nil
}

// DeleteClass removes a class. Enrollments and coursework keep their references.
func (r *ClassRepository) DeleteClass(ctx context.Context, id string) error {
	tag, err := r.db.Conn(ctx).Exec(ctx, `DELETE FROM classes WHERE id = $1`, id)
	if err != nil {
		if dberrors.IsInvalidTextRepresentation(err) {
			return apperrors.ErrInvalidClassID
		}
		return fmt.Errorf("failed to delete class: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrClassNotFound
	}
	return nil
}

// SetClassStatus sets the moderation status of a class.
func (r *ClassRepository) SetClassStatus(ctx context.Context, id string, status models.ClassStatus) (*models.Class, error) {
	class, err := r.queryClass(ctx, `
		UPDATE classes SET status = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING `+joinColumns(classColumns),
		id, status)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrClassNotFound, apperrors.ErrInvalidClassID) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to set class status: %w", err)
	}
	return class, nil
}

// IncrementTotalEnrolled bumps the enrollment counter of a class by one.
func (r *ClassRepository) IncrementTotalEnrolled(ctx context.Context, id string) error {
	return r.increment(ctx, id, "total_enrolled")
}

// IncrementAssignmentCount bumps the assignment counter of a class by one.
func (r *ClassRepository) IncrementAssignmentCount(ctx context.Context, id string) error {
	return r.increment(ctx, id, "assignment_count")
}

func (r *ClassRepository) increment(ctx context.Context, id, column string) error {
	tag, err := r.db.Conn(ctx).Exec(ctx,
		`UPDATE classes SET `+column+` = `+column+` + 1, updated_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to increment %s: %w", column, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrClassNotFound
	}
	return nil
}

// CountClasses counts classes, optionally restricted to one status.
func (r *ClassRepository) CountClasses(ctx context.Context, status *models.ClassStatus) (int64, error) {
	query := r.sb.Select("COUNT(*)").From("classes")
	if status != nil {
		query = query.Where(squirrel.Eq{"status": *status})
	}
	sql, args, err := query.ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build class count: %w", err)
	}

	var count int64
	if err := r.db.Conn(ctx).QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count classes: %w", err)
	}
	return count, nil
}
