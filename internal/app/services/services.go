package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/yigit/mentorium/internal/app/models"
)

// Services defined in this package:
// - UserService: accounts, teacher applications and admin promotion
// - ClassService: class catalog and moderation
// - EnrollmentService: payment intents, payment verification and enrollment
// - CourseworkService: assignments, submissions and their counters
// - FeedbackService: class evaluations joined with student identity
// - StatsService: landing page counters

// UserStore is the user persistence the services depend on.
type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUsersByEmails(ctx context.Context, emails []string) (map[string]*models.User, error)
	ListUsers(ctx context.Context, offset, limit uint64) ([]*models.User, int64, error)
	SearchUsers(ctx context.Context, pattern string) ([]*models.User, error)
	SubmitTeacherApplication(ctx context.Context, email string, app *models.TeacherApplication) (*models.User, error)
	ListPendingApplications(ctx context.Context) ([]*models.User, error)
	ResolveApplication(ctx context.Context, email string, role models.RoleType, status models.ApplicationStatus) (bool, error)
	MakeAdmin(ctx context.Context, email string) (bool, error)
	AddEnrolledClass(ctx context.Context, email, classID string) error
	CountUsers(ctx context.Context) (int64, error)
}

// ClassStore is the class persistence the services depend on.
type ClassStore interface {
	CreateClass(ctx context.Context, class *models.Class) error
	GetClassByID(ctx context.Context, id string) (*models.Class, error)
	GetClassesByIDs(ctx context.Context, ids []string) ([]*models.Class, error)
	ListClasses(ctx context.Context, status *models.ClassStatus, instructorEmail string) ([]*models.Class, error)
	ListPopularClasses(ctx context.Context, limit uint64) ([]*models.Class, error)
	UpdateClass(ctx context.Context, id string, patch models.ClassPatch) (*models.Class, error)
	DeleteClass(ctx context.Context, id string) error
	SetClassStatus(ctx context.Context, id string, status models.ClassStatus) (*models.Class, error)
	IncrementTotalEnrolled(ctx context.Context, id string) error
	IncrementAssignmentCount(ctx context.Context, id string) error
	CountClasses(ctx context.Context, status *models.ClassStatus) (int64, error)
}

// EnrollmentStore is the enrollment persistence the services depend on.
type EnrollmentStore interface {
	CreateEnrollment(ctx context.Context, e *models.Enrollment) error
	EnrollmentExists(ctx context.Context, classID, studentEmail string) (bool, error)
	ListEnrollmentsByStudent(ctx context.Context, studentEmail string) ([]*models.Enrollment, error)
	CountEnrollments(ctx context.Context) (int64, error)
}

// AssignmentStore is the assignment persistence the services depend on.
type AssignmentStore interface {
	CreateAssignment(ctx context.Context, a *models.Assignment) error
	GetAssignmentByID(ctx context.Context, id string) (*models.Assignment, error)
	ListAssignmentsByClass(ctx context.Context, classID string) ([]*models.Assignment, error)
	IncrementSubmissionCount(ctx context.Context, id string) error
	SumSubmissionCounts(ctx context.Context, classID string) (int64, error)
}

// SubmissionStore is the submission persistence the services depend on.
type SubmissionStore interface {
	CreateSubmission(ctx context.Context, s *models.Submission) error
}

// FeedbackStore is the feedback persistence the services depend on.
type FeedbackStore interface {
	CreateFeedback(ctx context.Context, f *models.Feedback) error
	ListFeedbacks(ctx context.Context, classID string) ([]*models.Feedback, error)
}

// Transactor runs fn inside a single database transaction carried by ctx.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// parseID validates a uuid and returns it in canonical form, or invalid.
func parseID(raw string, invalid error) (string, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return "", invalid
	}
	return id.String(), nil
}
