package models

import (
	"time"
)

// TeacherApplication is stored as a JSONB document on the user row.
type TeacherApplication struct {
	Name       string            `json:"name,omitempty"`
	Email      string            `json:"email,omitempty"`
	Experience string            `json:"experience"`
	Title      string            `json:"title"`
	Category   string            `json:"category"`
	Status     ApplicationStatus `json:"status"`
	AppliedAt  time.Time         `json:"appliedAt"`
}

// User defines the user model based on the 'users' table
type User struct {
	Email              string              `json:"email" db:"email" example:"student@mentorium.dev"` // Lowercased, unique
	Name               string              `json:"name" db:"name" example:"Jane Doe"`
	Photo              string              `json:"photo,omitempty" db:"photo"`
	Role               RoleType            `json:"role" db:"role" example:"student"`
	TeacherApplication *TeacherApplication `json:"teacherApplication" db:"teacher_application"`
	EnrolledClasses    []string            `json:"enrolledClasses" db:"enrolled_classes"` // Class ids, set semantics
	CreatedAt          time.Time           `json:"createdAt" db:"created_at"`
	UpdatedAt          time.Time           `json:"updatedAt" db:"updated_at"`
}
