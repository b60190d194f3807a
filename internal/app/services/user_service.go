package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/yigit/mentorium/internal/app/models"
	"github.com/yigit/mentorium/internal/app/models/dto"
	"github.com/yigit/mentorium/internal/pkg/apperrors"
	"github.com/yigit/mentorium/internal/pkg/helpers"
)

// UserService defines the interface for user operations
type UserService interface {
	CreateUser(ctx context.Context, req *dto.CreateUserRequest) (*models.User, error)
	GetUser(ctx context.Context, email string) (*models.User, error)
	GetRole(ctx context.Context, email string) (models.RoleType, error)
	ListUsers(ctx context.Context, page, limit int) ([]*models.User, dto.PaginationInfo, error)
	SearchUsers(ctx context.Context, search string) ([]*models.User, error)
	ApplyForTeacher(ctx context.Context, email string, req *dto.TeacherApplicationRequest) (*models.User, error)
	ListPendingApplications(ctx context.Context) ([]*models.User, error)
	ApproveApplication(ctx context.Context, email string) error
	RejectApplication(ctx context.Context, email string) error
	MakeAdmin(ctx context.Context, email string) error
}

// userServiceImpl implements UserService
type userServiceImpl struct {
	userRepo UserStore
	logger   zerolog.Logger
}

// NewUserService creates a new UserService
func NewUserService(userRepo UserStore, logger zerolog.Logger) UserService {
	return &userServiceImpl{
		userRepo: userRepo,
		logger:   logger,
	}
}

// CreateUser registers a new account. Every account starts as a student.
func (s *userServiceImpl) CreateUser(ctx context.Context, req *dto.CreateUserRequest) (*models.User, error) {
	user := &models.User{
		Email: helpers.NormalizeEmail(req.Email),
		Name:  strings.TrimSpace(req.Name),
		Photo: strings.TrimSpace(req.Photo),
		Role:  models.RoleStudent,
	}

	if err := s.userRepo.CreateUser(ctx, user); err != nil {
		if apperrors.Is(err, apperrors.ErrEmailAlreadyExists) {
			return nil, err
		}
		s.logger.Error().Err(err).Str("email", user.Email).Msg("Failed to create user")
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	s.logger.Info().Str("email", user.Email).Msg("User created")
	return user, nil
}

// GetUser fetches a user by email
func (s *userServiceImpl) GetUser(ctx context.Context, email string) (*models.User, error) {
	return s.userRepo.GetUserByEmail(ctx, helpers.NormalizeEmail(email))
}

// GetRole returns the role of a user
func (s *userServiceImpl) GetRole(ctx context.Context, email string) (models.RoleType, error) {
	user, err := s.GetUser(ctx, email)
	if err != nil {
		return "", err
	}
	return user.Role, nil
}

// ListUsers returns one page of users, newest first
func (s *userServiceImpl) ListUsers(ctx context.Context, page, limit int) ([]*models.User, dto.PaginationInfo, error) {
	offset, size := helpers.CalculateOffsetLimit(page, limit)

	users, total, err := s.userRepo.ListUsers(ctx, offset, size)
	if err != nil {
		s.logger.Error().Err(err).Int("page", page).Msg("Failed to list users")
		return nil, dto.PaginationInfo{}, err
	}

	return users, helpers.NewPaginationInfo(total, page, int(size)), nil
}

// SearchUsers matches search as a case-insensitive pattern against name or email
func (s *userServiceImpl) SearchUsers(ctx context.Context, search string) ([]*models.User, error) {
	return s.userRepo.SearchUsers(ctx, strings.TrimSpace(search))
}

// ApplyForTeacher moves a student to pending with a new teacher application
func (s *userServiceImpl) ApplyForTeacher(ctx context.Context, email string, req *dto.TeacherApplicationRequest) (*models.User, error) {
	experience := strings.TrimSpace(req.Experience)
	title := strings.TrimSpace(req.Title)
	category := strings.TrimSpace(req.Category)
	if experience == "" || title == "" || category == "" {
		return nil, apperrors.ErrApplicationFieldsEmpty
	}

	email = helpers.NormalizeEmail(email)
	user, err := s.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user.Role != models.RoleStudent {
		return nil, apperrors.ErrApplicationNotAllowed
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		name = user.Name
	}

	app := &models.TeacherApplication{
		Name:       name,
		Email:      email,
		Experience: experience,
		Title:      title,
		Category:   category,
		Status:     models.ApplicationPending,
		AppliedAt:  time.Now().UTC(),
	}

	updated, err := s.userRepo.SubmitTeacherApplication(ctx, email, app)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrApplicationNotAllowed) {
			return nil, err
		}
		s.logger.Error().Err(err).Str("email", email).Msg("Failed to submit teacher application")
		return nil, fmt.Errorf("failed to submit teacher application: %w", err)
	}

	s.logger.Info().Str("email", email).Str("category", category).Msg("Teacher application submitted")
	return updated, nil
}

// ListPendingApplications returns users awaiting teacher approval
func (s *userServiceImpl) ListPendingApplications(ctx context.Context) ([]*models.User, error) {
	return s.userRepo.ListPendingApplications(ctx)
}

// ApproveApplication grants the teacher role to a pending applicant
func (s *userServiceImpl) ApproveApplication(ctx context.Context, email string) error {
	return s.resolveApplication(ctx, email, models.RoleTeacher, models.ApplicationApproved)
}

// RejectApplication returns a pending applicant to the student role
func (s *userServiceImpl) RejectApplication(ctx context.Context, email string) error {
	return s.resolveApplication(ctx, email, models.RoleStudent, models.ApplicationRejected)
}

func (s *userServiceImpl) resolveApplication(ctx context.Context, email string, role models.RoleType, status models.ApplicationStatus) error {
	email = helpers.NormalizeEmail(email)

	changed, err := s.userRepo.ResolveApplication(ctx, email, role, status)
	if err != nil {
		s.logger.Error().Err(err).Str("email", email).Str("status", string(status)).Msg("Failed to resolve teacher application")
		return err
	}
	if !changed {
		return apperrors.ErrApplicationNotPending
	}

	s.logger.Info().Str("email", email).Str("status", string(status)).Msg("Teacher application resolved")
	return nil
}

// MakeAdmin promotes a user to admin
func (s *userServiceImpl) MakeAdmin(ctx context.Context, email string) error {
	email = helpers.NormalizeEmail(email)

	changed, err := s.userRepo.MakeAdmin(ctx, email)
	if err != nil {
		s.logger.Error().Err(err).Str("email", email).Msg("Failed to promote user")
		return err
	}
	if !changed {
		return apperrors.ErrUserAlreadyAdmin
	}

	s.logger.Info().Str("email", email).Msg("User promoted to admin")
	return nil
}
