package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/yigit/mentorium/internal/app/models"
	"github.com/yigit/mentorium/internal/db"
)

var feedbackColumns = []string{
	"id::text", "class_id::text", "class_name", "instructor_email", "student_email",
	"rating", "description", "submitted_at",
}

// FeedbackRepository handles feedback database operations
type FeedbackRepository struct {
	db *db.PostgresDB
	sb squirrel.StatementBuilderType
}

// NewFeedbackRepository creates a new FeedbackRepository
func NewFeedbackRepository(database *db.PostgresDB) *FeedbackRepository {
	return &FeedbackRepository{
		db: database,
		sb: statementBuilder(),
	}
}

// CreateFeedback inserts a feedback
func (r *FeedbackRepository) CreateFeedback(ctx context.Context, f *models.Feedback) error {
	err := r.db.Conn(ctx).QueryRow(ctx, `
		INSERT INTO feedbacks (class_id, class_name, instructor_email, student_email, rating,
		                       description, submitted_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id::text`,
		f.ClassID, f.ClassName, f.InstructorEmail, f.StudentEmail, f.Rating,
		f.Description, f.SubmittedAt).Scan(&f.ID)
	if err != nil {
		return fmt.Errorf("error creating feedback: %w", err)
	}
	return nil
}

// ListFeedbacks returns rated feedbacks newest first, restricted to one class when classID
// is not empty.
func (r *FeedbackRepository) ListFeedbacks(ctx context.Context, classID string) ([]*models.Feedback, error) {
	query := r.sb.Select(feedbackColumns...).From("feedbacks").
		Where(squirrel.NotEq{"rating": nil}).
		OrderBy("submitted_at DESC")
	if classID != "" {
		query = query.Where(squirrel.Eq{"class_id": classID})
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build feedbacks query: %w", err)
	}

	rows, err := r.db.Conn(ctx).Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list feedbacks: %w", err)
	}
	defer rows.Close()

	feedbacks := make([]*models.Feedback, 0)
	for rows.Next() {
		f := &models.Feedback{}
		if err := rows.Scan(&f.ID, &f.ClassID, &f.ClassName, &f.InstructorEmail, &f.StudentEmail,
			&f.Rating, &f.Description, &f.SubmittedAt); err != nil {
			return nil, fmt.Errorf("failed to scan feedback row: %w", err)
		}
		feedbacks = append(feedbacks, f)
	}
	return feedbacks, rows.Err()
}
