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
)

var assignmentColumns = []string{
	"id::text", "class_id::text", "teacher_email", "title", "description", "deadline",
	"submission_count", "created_at", "updated_at",
}

// AssignmentRepository handles assignment database operations
type AssignmentRepository struct {
	db *db.PostgresDB
	sb squirrel.StatementBuilderType
}

// NewAssignmentRepository creates a new AssignmentRepository
func NewAssignmentRepository(database *db.PostgresDB) *AssignmentRepository {
	return &AssignmentRepository{
		db: database,
		sb: statementBuilder(),
	}
}

func scanAssignment(row pgx.Row) (*models.Assignment, error) {
	a := &models.Assignment{}
	err := row.Scan(
		&a.ID, &a.ClassID, &a.TeacherEmail, &a.Title, &a.Description, &a.Deadline,
		&a.SubmissionCount, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return a, nil
}

// CreateAssignment inserts an assignment
func (r *AssignmentRepository) CreateAssignment(ctx context.Context, a *models.Assignment) error {
	row := r.db.Conn(ctx).QueryRow(ctx, `
		INSERT INTO assignments (class_id, teacher_email, title, description, deadline)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+joinColumns(assignmentColumns),
		a.ClassID, a.TeacherEmail, a.Title, a.Description, a.Deadline)

	created, err := scanAssignment(row)
	if err != nil {
		return fmt.Errorf("error creating assignment: %w", err)
	}

	*a = *created
	return nil
}

// GetAssignmentByID retrieves an assignment by id
func (r *AssignmentRepository) GetAssignmentByID(ctx context.Context, id string) (*models.Assignment, error) {
	sql, args, err := r.sb.Select(assignmentColumns...).From("assignments").
		Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build assignment query: %w", err)
	}

	a, err := scanAssignment(r.db.Conn(ctx).QueryRow(ctx, sql, args...))
	if err != nil {
		if dberrors.IsNoRows(err) {
			return nil, apperrors.ErrAssignmentNotFound
		}
		if dberrors.IsInvalidTextRepresentation(err) {
			return nil, apperrors.ErrInvalidAssignmentID
		}
		return nil, fmt.Errorf("error fetching assignment: %w", err)
	}
	return a, nil
}

// ListAssignmentsByClass returns the assignments of a class, newest first.
func (r *AssignmentRepository) ListAssignmentsByClass(ctx context.Context, classID string) ([]*models.Assignment, error) {
	sql, args, err := r.sb.Select(assignmentColumns...).From("assignments").
		Where(squirrel.Eq{"class_id": classID}).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build assignments query: %w", err)
	}

	rows, err := r.db.Conn(ctx).Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list assignments: %w", err)
	}
	defer rows.Close()

	assignments := make([]*models.Assignment, 0)
	for rows.Next() {
		a, err := scanAssignment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan assignment row: %w", err)
		}
		assignments = append(assignments, a)
	}
	return assignments, rows.Err()
}

// IncrementSubmissionCount bumps the submission counter of an assignment by one.
func (r *AssignmentRepository) IncrementSubmissionCount(ctx context.Context, id string) error {
	tag, err := r.db.Conn(ctx).Exec(ctx, `
		UPDATE assignments SET submission_count = submission_count + 1, updated_at = NOW()
		WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to increment submission count: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrAssignmentNotFound
	}
	return nil
}

// SumSubmissionCounts adds up the submission counters of a class's assignments.
func (r *AssignmentRepository) SumSubmissionCounts(ctx context.Context, classID string) (int64, error) {
	var total int64
	err := r.db.Conn(ctx).QueryRow(ctx, `
		SELECT COALESCE(SUM(submission_count), 0)::bigint FROM assignments WHERE class_id = $1`,
		classID).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("failed to sum submission counts: %w", err)
	}
	return total, nil
}
