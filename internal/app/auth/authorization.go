package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/yigit/mentorium/internal/app/models"
	"github.com/yigit/mentorium/internal/pkg/apperrors"
	"github.com/yigit/mentorium/internal/pkg/logger"
)

// UserReader is the user lookup the authorization checks need.
type UserReader interface {
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}

// ClassReader is the class lookup the ownership checks need.
type ClassReader interface {
	GetClassByID(ctx context.Context, id string) (*models.Class, error)
}

// AuthorizationService handles authorization operations
type AuthorizationService struct {
	userRepo  UserReader
	classRepo ClassReader
}

// NewAuthorizationService creates a new AuthorizationService
func NewAuthorizationService(userRepo UserReader, classRepo ClassReader) *AuthorizationService {
	return &AuthorizationService{
		userRepo:  userRepo,
		classRepo: classRepo,
	}
}

// HasRole checks whether the stored user for email currently holds role. A missing user
// has no role.
func (s *AuthorizationService) HasRole(ctx context.Context, email string, role models.RoleType) (bool, error) {
	user, err := s.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return false, nil
		}
		logger.Error().Err(err).Str("email", email).Msg("Error getting user by email in HasRole")
		return false, err
	}
	return user.Role == role, nil
}

// ValidateRole returns a permission error unless the user holds role.
func (s *AuthorizationService) ValidateRole(ctx context.Context, email string, role models.RoleType) error {
	ok, err := s.HasRole(ctx, email, role)
	if err != nil {
		return fmt.Errorf("failed to check role: %w", err)
	}
	if !ok {
		return apperrors.NewCustomError(apperrors.ErrPermissionDenied, fmt.Sprintf("Forbidden - %s only", role)).
			WithDetails(map[string]interface{}{"requiredRole": role})
	}
	return nil
}

// ValidateClassOwnership loads a class and checks that email is its instructor.
func (s *AuthorizationService) ValidateClassOwnership(ctx context.Context, classID, email string) (*models.Class, error) {
	class, err := s.classRepo.GetClassByID(ctx, classID)
	if err != nil {
		return nil, err
	}

	if class.InstructorEmail != email {
		logger.Warn().Str("classId", classID).Str("email", email).Msg("Class ownership check failed")
		return nil, apperrors.ErrNotClassOwner
	}
	return class, nil
}
