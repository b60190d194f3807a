package services

import (
	"context"

	"github.com/yigit/mentorium/internal/app/models"
	"github.com/yigit/mentorium/internal/app/models/dto"
)

// StatsService defines the interface for landing page counters
type StatsService interface {
	GetStats(ctx context.Context) (*dto.StatsResponse, error)
}

// statsServiceImpl implements StatsService
type statsServiceImpl struct {
	userRepo       UserStore
	classRepo      ClassStore
	enrollmentRepo EnrollmentStore
}

// NewStatsService creates a new StatsService
func NewStatsService(userRepo UserStore, classRepo ClassStore, enrollmentRepo EnrollmentStore) StatsService {
	return &statsServiceImpl{
		userRepo:       userRepo,
		classRepo:      classRepo,
		enrollmentRepo: enrollmentRepo,
	}
}

// GetStats counts users, approved classes and enrollments
func (s *statsServiceImpl) GetStats(ctx context.Context) (*dto.StatsResponse, error) {
	users, err := s.userRepo.CountUsers(ctx)
	if err != nil {
		return nil, err
	}

	approved := models.ClassApproved
	classes, err := s.classRepo.CountClasses(ctx, &approved)
	if err != nil {
		return nil, err
	}

	enrollments, err := s.enrollmentRepo.CountEnrollments(ctx)
	if err != nil {
		return nil, err
	}

	return &dto.StatsResponse{
		TotalUsers:       users,
		TotalClasses:     classes,
		TotalEnrollments: enrollments,
	}, nil
}
