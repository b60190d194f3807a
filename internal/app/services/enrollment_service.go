package services

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/yigit/mentorium/internal/app/models"
	"github.com/yigit/mentorium/internal/app/models/dto"
	"github.com/yigit/mentorium/internal/pkg/apperrors"
	"github.com/yigit/mentorium/internal/pkg/helpers"
	"github.com/yigit/mentorium/internal/pkg/payment"
)

// EnrollmentService defines the interface for payment and enrollment operations
type EnrollmentService interface {
	CreatePaymentIntent(ctx context.Context, amount string) (*dto.PaymentIntentResponse, error)
	VerifyPayment(ctx context.Context, paymentIntentID string) (*dto.PaymentDetails, error)
	Enroll(ctx context.Context, callerEmail string, req *dto.EnrollRequest) (*dto.EnrollResponse, error)
	GetEnrolledClasses(ctx context.Context, callerEmail, email string) ([]*dto.EnrolledClassResponse, error)
}

// enrollmentServiceImpl implements EnrollmentService
type enrollmentServiceImpl struct {
	tx             Transactor
	classRepo      ClassStore
	userRepo       UserStore
	enrollmentRepo EnrollmentStore
	payments       payment.Provider
	currency       string
	logger         zerolog.Logger
}

// NewEnrollmentService creates a new EnrollmentService
func NewEnrollmentService(
	tx Transactor,
	classRepo ClassStore,
	userRepo UserStore,
	enrollmentRepo EnrollmentStore,
	payments payment.Provider,
	currency string,
	logger zerolog.Logger,
) EnrollmentService {
	return &enrollmentServiceImpl{
		tx:             tx,
		classRepo:      classRepo,
		userRepo:       userRepo,
		enrollmentRepo: enrollmentRepo,
		payments:       payments,
		currency:       strings.ToLower(currency),
		logger:         logger,
	}
}

// parseAmount reads a positive, finite decimal amount in major currency units and converts
// it to minor units. Hexadecimal literals are rejected.
func parseAmount(literal string) (int64, error) {
	literal = strings.TrimSpace(literal)
	if strings.ContainsAny(literal, "xX") {
		return 0, apperrors.ErrInvalidAmount
	}

	amount, err := strconv.ParseFloat(literal, 64)
	if err != nil || math.IsNaN(amount) || math.IsInf(amount, 0) || amount <= 0 {
		return 0, apperrors.ErrInvalidAmount
	}

	minor := math.Round(amount * 100)
	if minor < 1 || minor > math.MaxInt64 {
		return 0, apperrors.ErrInvalidAmount
	}
	return int64(minor), nil
}

// CreatePaymentIntent asks the payment provider for an intent and returns its client secret
func (s *enrollmentServiceImpl) CreatePaymentIntent(ctx context.Context, amount string) (*dto.PaymentIntentResponse, error) {
	minor, err := parseAmount(amount)
	if err != nil {
		return nil, err
	}

	intent, err := s.payments.CreateIntent(ctx, minor, s.currency)
	if err != nil {
		s.logger.Error().Err(err).Int64("amount", minor).Msg("Failed to create payment intent")
		return nil, apperrors.NewExternalServiceError(err)
	}

	s.logger.Info().Str("paymentIntentId", intent.ID).Int64("amount", minor).Msg("Payment intent created")
	return &dto.PaymentIntentResponse{ClientSecret: intent.ClientSecret}, nil
}

// VerifyPayment reports the settled facts of a succeeded payment intent. It never touches
// enrollments.
func (s *enrollmentServiceImpl) VerifyPayment(ctx context.Context, paymentIntentID string) (*dto.PaymentDetails, error) {
	paymentIntentID = strings.TrimSpace(paymentIntentID)
	if paymentIntentID == "" {
		return nil, apperrors.ErrMissingPaymentID
	}

	intent, err := s.payments.GetIntent(ctx, paymentIntentID)
	if err != nil {
		s.logger.Error().Err(err).Str("paymentIntentId", paymentIntentID).Msg("Failed to retrieve payment intent")
		return nil, apperrors.NewExternalServiceError(err)
	}

	if intent.Status != payment.StatusSucceeded {
		s.logger.Warn().Str("paymentIntentId", paymentIntentID).Str("status", intent.Status).Msg("Payment not completed")
		return nil, apperrors.ErrPaymentIncomplete
	}

	return &dto.PaymentDetails{
		PaymentStatus: intent.Status,
		AmountPaid:    float64(intent.Amount) / 100,
		Currency:      intent.Currency,
		CreatedAt:     intent.CreatedAt,
	}, nil
}

// Enroll enrolls the caller in a class. The enrollment record, the class counter and the
// student's enrolled set are written in one transaction; a second enrollment for the same
// class fails with ErrAlreadyEnrolled.
func (s *enrollmentServiceImpl) Enroll(ctx context.Context, callerEmail string, req *dto.EnrollRequest) (*dto.EnrollResponse, error) {
	callerEmail = helpers.NormalizeEmail(callerEmail)
	studentEmail := helpers.NormalizeEmail(req.StudentEmail)
	if studentEmail == "" {
		studentEmail = callerEmail
	}
	if studentEmail != callerEmail {
		return nil, apperrors.ErrStudentMismatch
	}

	classID, err := parseID(strings.TrimSpace(req.ClassID), apperrors.ErrInvalidClassID)
	if err != nil {
		return nil, err
	}

	class, err := s.classRepo.GetClassByID(ctx, classID)
	if err != nil {
		return nil, err
	}

	exists, err := s.enrollmentRepo.EnrollmentExists(ctx, classID, studentEmail)
	if err != nil {
		return nil, fmt.Errorf("error checking enrollment: %w", err)
	}
	if exists {
		return nil, apperrors.ErrAlreadyEnrolled
	}

	enrollment := &models.Enrollment{
		ClassID:        classID,
		StudentEmail:   studentEmail,
		TeacherEmail:   class.InstructorEmail,
		TransactionID:  strings.TrimSpace(req.TransactionID),
		Amount:         req.AmountLiteral(),
		EnrolledAt:     time.Now().UTC(),
		Status:         models.EnrollmentActive,
		ClassName:      class.Title,
		ClassImage:     class.Image,
		InstructorName: class.InstructorName,
	}

	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.enrollmentRepo.CreateEnrollment(ctx, enrollment); err != nil {
			return err
		}
		if err := s.classRepo.IncrementTotalEnrolled(ctx, classID); err != nil {
			return err
		}
		return s.userRepo.AddEnrolledClass(ctx, studentEmail, classID)
	})
	if err != nil {
		if apperrors.Is(err, apperrors.ErrAlreadyEnrolled, apperrors.ErrClassNotFound) {
			return nil, err
		}
		s.logger.Error().Err(err).Str("classId", classID).Str("email", studentEmail).Msg("Failed to enroll")
		return nil, fmt.Errorf("failed to enroll: %w", err)
	}

	s.logger.Info().
		Str("classId", classID).
		Str("email", studentEmail).
		Str("transactionId", enrollment.TransactionID).
		Msg("Student enrolled")

	return &dto.EnrollResponse{
		EnrollmentID: enrollment.ID,
		ClassID:      classID,
		ClassName:    class.Title,
	}, nil
}

// GetEnrolledClasses lists the classes in the student's enrolled set, each annotated with
// the matching enrollment. Classes deleted since enrollment are skipped.
func (s *enrollmentServiceImpl) GetEnrolledClasses(ctx context.Context, callerEmail, email string) ([]*dto.EnrolledClassResponse, error) {
	email = helpers.NormalizeEmail(email)
	if email != helpers.NormalizeEmail(callerEmail) {
		return nil, apperrors.ErrStudentMismatch
	}

	user, err := s.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.EnrolledClassResponse, 0, len(user.EnrolledClasses))
	if len(user.EnrolledClasses) == 0 {
		return result, nil
	}

	classes, err := s.classRepo.GetClassesByIDs(ctx, user.EnrolledClasses)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*models.Class, len(classes))
	for _, c := range classes {
		byID[c.ID] = c
	}

	enrollments, err := s.enrollmentRepo.ListEnrollmentsByStudent(ctx, email)
	if err != nil {
		return nil, err
	}
	byClass := make(map[string]*models.Enrollment, len(enrollments))
	for _, e := range enrollments {
		if _, seen := byClass[e.ClassID]; !seen {
			byClass[e.ClassID] = e
		}
	}

	for _, id := range user.EnrolledClasses {
		class, ok := byID[id]
		if !ok {
			continue
		}

		item := &dto.EnrolledClassResponse{Class: *class}
		if e, ok := byClass[id]; ok {
			enrolledAt := e.EnrolledAt
			item.EnrollmentDate = &enrolledAt
			item.TransactionID = &e.TransactionID
			item.AmountPaid = &e.Amount
		}
		result = append(result, item)
	}

	return result, nil
}
