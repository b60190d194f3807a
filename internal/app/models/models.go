package models

// RoleType defines the user role type
type RoleType string

const (
	RoleStudent RoleType = "student"
	RolePending RoleType = "pending"
	RoleTeacher RoleType = "teacher"
	RoleAdmin   RoleType = "admin"
)

// ApplicationStatus is the moderation state of a teacher application.
type ApplicationStatus string

const (
	ApplicationPending  ApplicationStatus = "pending"
	ApplicationApproved ApplicationStatus = "approved"
	ApplicationRejected ApplicationStatus = "rejected"
)

// ClassStatus is the moderation state of a class listing.
type ClassStatus string

const (
	ClassPending  ClassStatus = "pending"
	ClassApproved ClassStatus = "approved"
	ClassRejected ClassStatus = "rejected"
)

// Valid reports whether s is one of the known class statuses.
func (s ClassStatus) Valid() bool {
	switch s {
	case ClassPending, ClassApproved, ClassRejected:
		return true
	}
	return false
}

// EnrollmentStatus is reserved for a cancellation flow; every enrollment is created active.
type EnrollmentStatus string

const (
	EnrollmentActive    EnrollmentStatus = "active"
	EnrollmentCancelled EnrollmentStatus = "cancelled"
)
