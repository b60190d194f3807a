package services

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/yigit/mentorium/internal/app/models"
	"github.com/yigit/mentorium/internal/app/models/dto"
	"github.com/yigit/mentorium/internal/pkg/apperrors"
	"github.com/yigit/mentorium/internal/pkg/helpers"
)

const (
	anonymousStudentName = "Anonymous"
	defaultStudentPhoto  = "https://img.icons8.com/?size=100&id=124204&format=png&color=000000"
)

// FeedbackService defines the interface for feedback operations
type FeedbackService interface {
	SubmitEvaluation(ctx context.Context, email string, req *dto.EvaluationRequest) (*models.Feedback, error)
	ListFeedbacks(ctx context.Context) ([]*dto.FeedbackResponse, error)
	ListClassFeedbacks(ctx context.Context, classID string) ([]*dto.FeedbackResponse, error)
}

// feedbackServiceImpl implements FeedbackService
type feedbackServiceImpl struct {
	feedbackRepo FeedbackStore
	userRepo     UserStore
	logger       zerolog.Logger
}

// NewFeedbackService creates a new FeedbackService
func NewFeedbackService(feedbackRepo FeedbackStore, userRepo UserStore, logger zerolog.Logger) FeedbackService {
	return &feedbackServiceImpl{
		feedbackRepo: feedbackRepo,
		userRepo:     userRepo,
		logger:       logger,
	}
}

// SubmitEvaluation stores a rating by the student identified by email
func (s *feedbackServiceImpl) SubmitEvaluation(ctx context.Context, email string, req *dto.EvaluationRequest) (*models.Feedback, error) {
	classID, err := parseID(strings.TrimSpace(req.ClassID), apperrors.ErrInvalidClassID)
	if err != nil {
		return nil, err
	}
	if req.Rating < 1 || req.Rating > 5 {
		return nil, apperrors.ErrInvalidRating
	}

	className := strings.TrimSpace(req.ClassName)
	instructorEmail := helpers.NormalizeEmail(req.InstructorEmail)
	if className == "" || instructorEmail == "" {
		return nil, apperrors.NewCustomError(apperrors.ErrValidationFailed, "className and instructorEmail are required")
	}

	feedback := &models.Feedback{
		ClassID:         classID,
		ClassName:       className,
		InstructorEmail: instructorEmail,
		StudentEmail:    helpers.NormalizeEmail(email),
		Rating:          req.Rating,
		Description:     strings.TrimSpace(req.Description),
		SubmittedAt:     time.Now().UTC(),
	}

	if err := s.feedbackRepo.CreateFeedback(ctx, feedback); err != nil {
		s.logger.Error().Err(err).Str("classId", classID).Msg("Failed to submit evaluation")
		return nil, err
	}

	s.logger.Info().Str("classId", classID).Int("rating", feedback.Rating).Msg("Evaluation submitted")
	return feedback, nil
}

// ListFeedbacks lists every rated feedback with its author's name and photo
func (s *feedbackServiceImpl) ListFeedbacks(ctx context.Context) ([]*dto.FeedbackResponse, error) {
	return s.list(ctx, "")
}

// ListClassFeedbacks lists the rated feedbacks of one class
func (s *feedbackServiceImpl) ListClassFeedbacks(ctx context.Context, classID string) ([]*dto.FeedbackResponse, error) {
	id, err := parseID(classID, apperrors.ErrInvalidClassID)
	if err != nil {
		return nil, err
	}
	return s.list(ctx, id)
}

func (s *feedbackServiceImpl) list(ctx context.Context, classID string) ([]*dto.FeedbackResponse, error) {
	feedbacks, err := s.feedbackRepo.ListFeedbacks(ctx, classID)
	if err != nil {
		return nil, err
	}

	emails := make([]string, 0, len(feedbacks))
	seen := make(map[string]struct{}, len(feedbacks))
	for _, f := range feedbacks {
		if _, ok := seen[f.StudentEmail]; ok {
			continue
		}
		seen[f.StudentEmail] = struct{}{}
		emails = append(emails, f.StudentEmail)
	}

	students, err := s.userRepo.GetUsersByEmails(ctx, emails)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.FeedbackResponse, 0, len(feedbacks))
	for _, f := range feedbacks {
		item := &dto.FeedbackResponse{
			Feedback:     *f,
			StudentName:  anonymousStudentName,
			StudentPhoto: defaultStudentPhoto,
		}
		if student, ok := students[f.StudentEmail]; ok {
			if student.Name != "" {
				item.StudentName = student.Name
			}
			if student.Photo != "" {
				item.StudentPhoto = student.Photo
			}
		}
		result = append(result, item)
	}
	return result, nil
}
