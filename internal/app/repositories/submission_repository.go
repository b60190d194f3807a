package repositories

import (
	"context"
	"fmt"

	"github.com/yigit/mentorium/internal/app/models"
	"github.com/yigit/mentorium/internal/db"
)

// SubmissionRepository handles submission database operations
type SubmissionRepository struct {
	db *db.PostgresDB
}

// NewSubmissionRepository creates a new SubmissionRepository
func NewSubmissionRepository(database *db.PostgresDB) *SubmissionRepository {
	return &SubmissionRepository{db: database}
}

// CreateSubmission inserts a submission. Repeated submissions are kept.
func (r *SubmissionRepository) CreateSubmission(ctx context.Context, s *models.Submission) error {
	err := r.db.Conn(ctx).QueryRow(ctx, `
		INSERT INTO submissions (assignment_id, class_id, student_email, submission_link, submitted_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id::text`,
		s.AssignmentID, s.ClassID, s.StudentEmail, s.SubmissionLink, s.SubmittedAt).Scan(&s.ID)
	if err != nil {
		return fmt.Errorf("error creating submission: %w", err)
	}
	return nil
}
