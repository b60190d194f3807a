package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/yigit/mentorium/internal/app/auth"
	"github.com/yigit/mentorium/internal/app/models"
	"github.com/yigit/mentorium/internal/app/models/dto"
	"github.com/yigit/mentorium/internal/pkg/apperrors"
)

const (
	popularClassLimit = 6
	defaultCategory   = "General"
	defaultExperience = "N/A"
)

// ClassService defines the interface for class operations
type ClassService interface {
	CreateClass(ctx context.Context, email string, req *dto.CreateClassRequest) (*models.Class, error)
	ListMyClasses(ctx context.Context, email string) ([]*models.Class, error)
	UpdateMyClass(ctx context.Context, email, id string, req *dto.UpdateClassRequest) (*models.Class, error)
	DeleteMyClass(ctx context.Context, email, id string) error
	ListApprovedClasses(ctx context.Context) ([]*models.Class, error)
	ListPopularClasses(ctx context.Context) ([]*models.Class, error)
	ListAllClasses(ctx context.Context) ([]*models.Class, error)
	SetClassStatus(ctx context.Context, id string, status models.ClassStatus) (*models.Class, error)
	GetClassDetail(ctx context.Context, id string) (*dto.ClassDetailResponse, error)
}

// classServiceImpl implements ClassService
type classServiceImpl struct {
	classRepo    ClassStore
	userRepo     UserStore
	authzService *auth.AuthorizationService
	logger       zerolog.Logger
}

// NewClassService creates a new ClassService
func NewClassService(classRepo ClassStore, userRepo UserStore, authzService *auth.AuthorizationService, logger zerolog.Logger) ClassService {
	return &classServiceImpl{
		classRepo:    classRepo,
		userRepo:     userRepo,
		authzService: authzService,
		logger:       logger,
	}
}

// CreateClass creates a class owned by the teacher identified by email. New classes always
// wait for moderation.
func (s *classServiceImpl) CreateClass(ctx context.Context, email string, req *dto.CreateClassRequest) (*models.Class, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, apperrors.NewCustomError(apperrors.ErrValidationFailed, "title is required")
	}
	if req.Price == nil || *req.Price < 0 {
		return nil, apperrors.NewCustomError(apperrors.ErrValidationFailed, "price must be zero or greater")
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		owner, err := s.userRepo.GetUserByEmail(ctx, email)
		if err != nil && !apperrors.Is(err, apperrors.ErrUserNotFound) {
			return nil, fmt.Errorf("error loading instructor profile: %w", err)
		}
		if owner != nil {
			name = owner.Name
		}
	}

	seats := models.DefaultAvailableSeats
	if req.AvailableSeats != nil {
		seats = *req.AvailableSeats
	}

	class := &models.Class{
		Title:           title,
		Description:     req.Description,
		Image:           req.Image,
		Category:        strings.TrimSpace(req.Category),
		Price:           *req.Price,
		AvailableSeats:  seats,
		Status:          models.ClassPending,
		InstructorName:  name,
		InstructorEmail: email,
	}

	if err := s.classRepo.CreateClass(ctx, class); err != nil {
		s.logger.Error().Err(err).Str("email", email).Msg("Failed to create class")
		return nil, err
	}

	s.logger.Info().Str("classId", class.ID).Str("email", email).Msg("Class created")
	return class, nil
}

// ListMyClasses lists every class owned by email, newest first
func (s *classServiceImpl) ListMyClasses(ctx context.Context, email string) ([]*models.Class, error) {
	return s.classRepo.ListClasses(ctx, nil, email)
}

// UpdateMyClass edits a class owned by email. Moderation status cannot be changed here.
func (s *classServiceImpl) UpdateMyClass(ctx context.Context, email, id string, req *dto.UpdateClassRequest) (*models.Class, error) {
	classID, err := parseID(id, apperrors.ErrInvalidClassID)
	if err != nil {
		return nil, err
	}

	patch := req.ToPatch()
	if patch.IsEmpty() {
		return nil, apperrors.NewCustomError(apperrors.ErrValidationFailed, "no updatable fields provided")
	}
	if patch.Title != nil {
		trimmed := strings.TrimSpace(*patch.Title)
		if trimmed == "" {
			return nil, apperrors.NewCustomError(apperrors.ErrValidationFailed, "title cannot be empty")
		}
		patch.Title = &trimmed
	}
	if patch.Price != nil && *patch.Price < 0 {
		return nil, apperrors.NewCustomError(apperrors.ErrValidationFailed, "price must be zero or greater")
	}

	if _, err := s.authzService.ValidateClassOwnership(ctx, classID, email); err != nil {
		return nil, err
	}

	class, err := s.classRepo.UpdateClass(ctx, classID, patch)
	if err != nil {
		s.logger.Error().Err(err).Str("classId", classID).Msg("Failed to update class")
		return nil, err
	}
	return class, nil
}

// DeleteMyClass deletes a class owned by email, whatever its status
func (s *classServiceImpl) DeleteMyClass(ctx context.Context, email, id string) error {
	classID, err := parseID(id, apperrors.ErrInvalidClassID)
	if err != nil {
		return err
	}

	if _, err := s.authzService.ValidateClassOwnership(ctx, classID, email); err != nil {
		return err
	}

	if err := s.classRepo.DeleteClass(ctx, classID); err != nil {
		s.logger.Error().Err(err).Str("classId", classID).Msg("Failed to delete class")
		return err
	}

	s.logger.Info().Str("classId", classID).Str("email", email).Msg("Class deleted")
	return nil
}

// ListApprovedClasses lists the public catalog
func (s *classServiceImpl) ListApprovedClasses(ctx context.Context) ([]*models.Class, error) {
	approved := models.ClassApproved
	return s.classRepo.ListClasses(ctx, &approved, "")
}

// ListPopularClasses lists the approved classes with the most enrollments
func (s *classServiceImpl) ListPopularClasses(ctx context.Context) ([]*models.Class, error) {
	return s.classRepo.ListPopularClasses(ctx, popularClassLimit)
}

// ListAllClasses lists classes in every status
func (s *classServiceImpl) ListAllClasses(ctx context.Context) ([]*models.Class, error) {
	return s.classRepo.ListClasses(ctx, nil, "")
}

// SetClassStatus moves a class to any moderation status
func (s *classServiceImpl) SetClassStatus(ctx context.Context, id string, status models.ClassStatus) (*models.Class, error) {
	if !status.Valid() {
		return nil, apperrors.ErrInvalidClassStatus
	}

	classID, err := parseID(id, apperrors.ErrInvalidClassID)
	if err != nil {
		return nil, err
	}

	class, err := s.classRepo.SetClassStatus(ctx, classID, status)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("classId", classID).Str("status", string(status)).Msg("Class status updated")
	return class, nil
}

// GetClassDetail returns a class with its instructor's public profile
func (s *classServiceImpl) GetClassDetail(ctx context.Context, id string) (*dto.ClassDetailResponse, error) {
	classID, err := parseID(id, apperrors.ErrInvalidClassID)
	if err != nil {
		return nil, err
	}

	class, err := s.classRepo.GetClassByID(ctx, classID)
	if err != nil {
		return nil, err
	}

	detail := &dto.ClassDetailResponse{
		Class:    *class,
		Category: class.Category,
		Instructor: dto.InstructorInfo{
			Name:               class.InstructorName,
			Email:              class.InstructorEmail,
			TeacherApplication: dto.InstructorApplication{Experience: defaultExperience},
		},
	}
	if detail.Category == "" {
		detail.Category = defaultCategory
	}

	owner, err := s.userRepo.GetUserByEmail(ctx, class.InstructorEmail)
	switch {
	case err == nil:
		detail.Instructor.Photo = owner.Photo
		if detail.Instructor.Name == "" {
			detail.Instructor.Name = owner.Name
		}
		if owner.TeacherApplication != nil && owner.TeacherApplication.Experience != "" {
			detail.Instructor.TeacherApplication.Experience = owner.TeacherApplication.Experience
		}
	case apperrors.Is(err, apperrors.ErrUserNotFound):
	default:
		s.logger.Warn().Err(err).Str("classId", classID).Msg("Could not load instructor profile for class")
	}

	return detail, nil
}
