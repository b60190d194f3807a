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

const enrollmentUniqueKey = "enrollments_class_student_key"

var enrollmentColumns = []string{
	"id::text", "class_id::text", "student_email", "teacher_email", "transaction_id", "amount",
	"enrolled_at", "status", "class_name", "class_image", "instructor_name",
}

// EnrollmentRepository handles enrollment database operations
type EnrollmentRepository struct {
	db *db.PostgresDB
	sb squirrel.StatementBuilderType
}

// NewEnrollmentRepository creates a new EnrollmentRepository
func NewEnrollmentRepository(database *db.PostgresDB) *EnrollmentRepository {
	return &EnrollmentRepository{
		db: database,
		sb: statementBuilder(),
	}
}

func scanEnrollment(row pgx.Row) (*models.Enrollment, error) {
	e := &models.Enrollment{}
	err := row.Scan(
		&e.ID, &e.ClassID, &e.StudentEmail, &e.TeacherEmail, &e.TransactionID, &e.Amount,
		&e.EnrolledAt, &e.Status, &e.ClassName, &e.ClassImage, &e.InstructorName)
	if err != nil {
		return nil, err
	}
	return e, nil
}

// CreateEnrollment inserts an enrollment. A second enrollment for the same class and
// student fails with ErrAlreadyEnrolled.
func (r *EnrollmentRepository) CreateEnrollment(ctx context.Context, e *models.Enrollment) error {
	row := r.db.Conn(ctx).QueryRow(ctx, `
		INSERT INTO enrollments (class_id, student_email, teacher_email, transaction_id, amount,
		                         enrolled_at, status, class_name, class_image, instructor_name)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING `+joinColumns(enrollmentColumns),
		e.ClassID, e.StudentEmail, e.TeacherEmail, e.TransactionID, e.Amount,
		e.EnrolledAt, e.Status, e.ClassName, e.ClassImage, e.InstructorName)

	created, err := scanEnrollment(row)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, enrollmentUniqueKey) {
			return apperrors.ErrAlreadyEnrolled
		}
		return fmt.Errorf("error creating enrollment: %w", err)
	}

	*e = *created
	return nil
}

// EnrollmentExists reports whether the student is enrolled in the class.
func (r *EnrollmentRepository) EnrollmentExists(ctx context.Context, classID, studentEmail string) (bool, error) {
	var exists bool
	err := r.db.Conn(ctx).QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM enrollments WHERE class_id = $1 AND student_email = $2)`,
		classID, studentEmail).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking enrollment: %w", err)
	}
	return exists, nil
}

// ListEnrollmentsByStudent returns every enrollment of a student, newest first.
func (r *EnrollmentRepository) ListEnrollmentsByStudent(ctx context.Context, studentEmail string) ([]*models.Enrollment, error) {
	sql, args, err := r.sb.Select(enrollmentColumns...).From("enrollments").
		Where(squirrel.Eq{"student_email": studentEmail}).
		OrderBy("enrolled_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build enrollments query: %w", err)
	}

	rows, err := r.db.Conn(ctx).Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list enrollments: %w", err)
	}
	defer rows.Close()

	enrollments := make([]*models.Enrollment, 0)
	for rows.Next() {
		e, err := scanEnrollment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan enrollment row: %w", err)
		}
		enrollments = append(enrollments, e)
	}
	return enrollments, rows.Err()
}

// CountEnrollments returns the total number of enrollments.
func (r *EnrollmentRepository) CountEnrollments(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.Conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM enrollments`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count enrollments: %w", err)
	}
	return count, nil
}
