package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/yigit/mentorium/internal/app/auth"
	"github.com/yigit/mentorium/internal/app/models"
	"github.com/yigit/mentorium/internal/app/models/dto"
	"github.com/yigit/mentorium/internal/pkg/apperrors"
	"github.com/yigit/mentorium/internal/pkg/helpers"
)

// CourseworkService defines the interface for assignment and submission operations
type CourseworkService interface {
	CreateAssignment(ctx context.Context, email string, req *dto.CreateAssignmentRequest) (*models.Assignment, error)
	ListAssignments(ctx context.Context, classID string) ([]*models.Assignment, error)
	GetAssignment(ctx context.Context, id string) (*models.Assignment, error)
	AssignmentCount(ctx context.Context, classID string) (int64, error)
	SubmitAssignment(ctx context.Context, email string, req *dto.SubmitAssignmentRequest) (*models.Submission, error)
	SubmissionCount(ctx context.Context, classID string) (int64, error)
}

// courseworkServiceImpl implements CourseworkService
type courseworkServiceImpl struct {
	tx             Transactor
	classRepo      ClassStore
	assignmentRepo AssignmentStore
	submissionRepo SubmissionStore
	authzService   *auth.AuthorizationService
	logger         zerolog.Logger
}

// NewCourseworkService creates a new CourseworkService
func NewCourseworkService(
	tx Transactor,
	classRepo ClassStore,
	assignmentRepo AssignmentStore,
	submissionRepo SubmissionStore,
	authzService *auth.AuthorizationService,
	logger zerolog.Logger,
) CourseworkService {
	return &courseworkServiceImpl{
		tx:             tx,
		classRepo:      classRepo,
		assignmentRepo: assignmentRepo,
		submissionRepo: submissionRepo,
		authzService:   authzService,
		logger:         logger,
	}
}

// CreateAssignment posts an assignment to a class owned by email and bumps the class's
// assignment counter.
func (s *courseworkServiceImpl) CreateAssignment(ctx context.Context, email string, req *dto.CreateAssignmentRequest) (*models.Assignment, error) {
	classID, err := parseID(strings.TrimSpace(req.ClassID), apperrors.ErrInvalidClassID)
	if err != nil {
		return nil, err
	}

	title := strings.TrimSpace(req.Title)
	description := strings.TrimSpace(req.Description)
	if title == "" || description == "" {
		return nil, apperrors.NewCustomError(apperrors.ErrValidationFailed, "Missing required assignment fields.")
	}

	deadline, err := time.Parse(time.RFC3339, strings.TrimSpace(req.Deadline))
	if err != nil {
		return nil, apperrors.ErrInvalidDeadline
	}

	if _, err := s.authzService.ValidateClassOwnership(ctx, classID, email); err != nil {
		return nil, err
	}

	assignment := &models.Assignment{
		ClassID:      classID,
		TeacherEmail: helpers.NormalizeEmail(email),
		Title:        title,
		Description:  description,
		Deadline:     deadline.UTC(),
	}

	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.assignmentRepo.CreateAssignment(ctx, assignment); err != nil {
			return err
		}
		return s.classRepo.IncrementAssignmentCount(ctx, classID)
	})
	if err != nil {
		if apperrors.Is(err, apperrors.ErrClassNotFound) {
			return nil, err
		}
		s.logger.Error().Err(err).Str("classId", classID).Msg("Failed to create assignment")
		return nil, fmt.Errorf("failed to create assignment: %w", err)
	}

	s.logger.Info().Str("assignmentId", assignment.ID).Str("classId", classID).Msg("Assignment created")
	return assignment, nil
}

// ListAssignments lists the assignments of a class, newest first
func (s *courseworkServiceImpl) ListAssignments(ctx context.Context, classID string) ([]*models.Assignment, error) {
	id, err := parseID(classID, apperrors.ErrInvalidClassID)
	if err != nil {
		return nil, err
	}
	return s.assignmentRepo.ListAssignmentsByClass(ctx, id)
}

// GetAssignment fetches one assignment
func (s *courseworkServiceImpl) GetAssignment(ctx context.Context, id string) (*models.Assignment, error) {
	assignmentID, err := parseID(id, apperrors.ErrInvalidAssignmentID)
	if err != nil {
		return nil, err
	}
	return s.assignmentRepo.GetAssignmentByID(ctx, assignmentID)
}

// AssignmentCount reads the class's assignment counter. Unknown classes count zero.
func (s *courseworkServiceImpl) AssignmentCount(ctx context.Context, classID string) (int64, error) {
	id, err := parseID(classID, apperrors.ErrInvalidClassID)
	if err != nil {
		return 0, nil
	}

	class, err := s.classRepo.GetClassByID(ctx, id)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrClassNotFound) {
			return 0, nil
		}
		return 0, err
	}
	return int64(class.AssignmentCount), nil
}

// SubmitAssignment records a submission and bumps the assignment's submission counter.
// Repeated submissions are all kept.
func (s *courseworkServiceImpl) SubmitAssignment(ctx context.Context, email string, req *dto.SubmitAssignmentRequest) (*models.Submission, error) {
	assignmentID, err := parseID(strings.TrimSpace(req.AssignmentID), apperrors.ErrInvalidAssignmentID)
	if err != nil {
		return nil, err
	}

	link := strings.TrimSpace(req.SubmissionLink)
	if link == "" {
		return nil, apperrors.NewCustomError(apperrors.ErrValidationFailed, "submissionLink is required")
	}

	assignment, err := s.assignmentRepo.GetAssignmentByID(ctx, assignmentID)
	if err != nil {
		return nil, err
	}

	classID := assignment.ClassID
	if raw := strings.TrimSpace(req.ClassID); raw != "" {
		given, err := parseID(raw, apperrors.ErrInvalidClassID)
		if err != nil {
			return nil, err
		}
		if given != classID {
			return nil, apperrors.NewCustomError(apperrors.ErrValidationFailed, "classId does not match the assignment's class")
		}
	}

	submission := &models.Submission{
		AssignmentID:   assignmentID,
		ClassID:        classID,
		StudentEmail:   helpers.NormalizeEmail(email),
		SubmissionLink: link,
		SubmittedAt:    time.Now().UTC(),
	}

	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.submissionRepo.CreateSubmission(ctx, submission); err != nil {
			return err
		}
		return s.assignmentRepo.IncrementSubmissionCount(ctx, assignmentID)
	})
	if err != nil {
		if apperrors.Is(err, apperrors.ErrAssignmentNotFound) {
			return nil, err
		}
		s.logger.Error().Err(err).Str("assignmentId", assignmentID).Msg("Failed to submit assignment")
		return nil, fmt.Errorf("failed to submit assignment: %w", err)
	}

	s.logger.Info().Str("assignmentId", assignmentID).Str("email", submission.StudentEmail).Msg("Assignment submitted")
	return submission, nil
}

// SubmissionCount sums the submission counters of a class's assignments
func (s *courseworkServiceImpl) SubmissionCount(ctx context.Context, classID string) (int64, error) {
	id, err := parseID(classID, apperrors.ErrInvalidClassID)
	if err != nil {
		return 0, nil
	}
	return s.assignmentRepo.SumSubmissionCounts(ctx, id)
}
