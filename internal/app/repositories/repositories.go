package repositories

import (
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/yigit/mentorium/internal/db"
)

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository       *UserRepository
	ClassRepository      *ClassRepository
	EnrollmentRepository *EnrollmentRepository
	AssignmentRepository *AssignmentRepository
	SubmissionRepository *SubmissionRepository
	FeedbackRepository   *FeedbackRepository
}

// NewRepositories initializes all repositories
func NewRepositories(database *db.PostgresDB) *Repositories {
	return &Repositories{
		UserRepository:       NewUserRepository(database),
		ClassRepository:      NewClassRepository(database),
		EnrollmentRepository: NewEnrollmentRepository(database),
		AssignmentRepository: NewAssignmentRepository(database),
		SubmissionRepository: NewSubmissionRepository(database),
		FeedbackRepository:   NewFeedbackRepository(database),
	}
}

func statementBuilder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

func joinColumns(columns []string) string {
	return strings.Join(columns, ", ")
}
